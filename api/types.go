// Package api - API types for the netback service
// These types define the JSON contract of the session and quote endpoints.
package api

import (
	"github.com/shopspring/decimal"

	"freight-netback/core/types"
)

// QuoteRequest is the input to POST /sessions/{id}/quote
type QuoteRequest struct {
	Country         string `json:"country" validate:"required"`
	DestinationPort string `json:"destination_port" validate:"required"`
	Unit            string `json:"unit" validate:"required"`

	// Cost is the CIF value; absent means 0, which yields needs_cost
	Cost decimal.Decimal `json:"cost" validate:"gte=0"`

	// LocalRate overrides the session default when present
	LocalRate decimal.NullDecimal `json:"local_rate" validate:"omitempty,gte=0"`
}

// Key returns the selection of the request
func (r *QuoteRequest) Key() types.SelectionKey {
	return types.SelectionKey{
		Country:         r.Country,
		DestinationPort: r.DestinationPort,
		Unit:            r.Unit,
	}
}

// CountriesResponse is the output of GET /sessions/{id}/countries
type CountriesResponse struct {
	Order     string   `json:"order"`
	Countries []string `json:"countries"`
}

// UnitsResponse is the output of GET /sessions/{id}/units
type UnitsResponse struct {
	Units []string `json:"units"`
}

// PortsResponse is the output of GET /sessions/{id}/ports
type PortsResponse struct {
	Country string   `json:"country"`
	Ports   []string `json:"ports"`
}

// ErrorResponse is the error envelope of every failed request
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody describes a failure
type ErrorBody struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error codes returned by the API
const (
	CodeInvalidJSON      = "INVALID_JSON"
	CodeValidation       = "VALIDATION_ERROR"
	CodeInvalidUpload    = "INVALID_UPLOAD"
	CodePayloadTooLarge  = "PAYLOAD_TOO_LARGE"
	CodeNotFound         = "NOT_FOUND"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeInternal         = "INTERNAL_ERROR"
)
