// Package types - Lookup and netback types
package types

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SelectionKey is the (country, destination port, unit) triple chosen by the user
type SelectionKey struct {
	Country         string `json:"country" yaml:"country"`
	DestinationPort string `json:"destination_port" yaml:"destination_port"`
	Unit            string `json:"unit" yaml:"unit"`
}

// Complete reports whether all three parts are set. Empty cells never
// take part in a match.
func (k SelectionKey) Complete() bool {
	return k.Country != "" && k.DestinationPort != "" && k.Unit != ""
}

// String returns a human-readable form
func (k SelectionKey) String() string {
	return fmt.Sprintf("%s / %s / %s", k.Country, k.DestinationPort, k.Unit)
}

// LookupStatus is the outcome of a rate lookup. None of these are errors.
type LookupStatus string

const (
	// LookupFound means a matching row carried a numeric rate
	LookupFound LookupStatus = "found"

	// LookupNotFound means no row matched the selection
	LookupNotFound LookupStatus = "not_found"

	// LookupInvalid means the first matching row had a missing rate
	LookupInvalid LookupStatus = "invalid"
)

// Message returns the user-facing explanation for non-found outcomes
func (s LookupStatus) Message() string {
	switch s {
	case LookupInvalid:
		return fmt.Sprintf("No valid freight rate found (or rate is empty/non-numeric) for the selected combination. "+
			"Please adjust your selections or check your data in column '%s'.", ColumnRate)
	case LookupNotFound:
		return "No freight rate data found for the selected combination. Please adjust your selections."
	default:
		return ""
	}
}

// LookupResult is the result of filtering a table by a SelectionKey
type LookupResult struct {
	// Key is the selection that was looked up
	Key SelectionKey

	// Status is the outcome
	Status LookupStatus

	// Rate is set only when Status is LookupFound
	Rate decimal.Decimal

	// Matches is how many rows matched the selection
	Matches int

	// Line is the source line of the deciding row, 0 when nothing matched
	Line int
}

// Found reports whether a usable rate was found
func (r LookupResult) Found() bool {
	return r.Status == LookupFound
}

// NetbackInput holds the user-supplied figures for the netback formula
type NetbackInput struct {
	// Cost is the CIF value (cost, insurance, freight), non-negative
	Cost decimal.Decimal

	// LocalRate is subtracted as-is, non-negative
	LocalRate decimal.Decimal
}

// NetbackStatus tells whether a netback value was produced
type NetbackStatus string

const (
	// NetbackComputed means Value holds the netback
	NetbackComputed NetbackStatus = "computed"

	// NetbackNeedsCost means a valid rate exists but cost is not positive
	NetbackNeedsCost NetbackStatus = "needs_cost"

	// NetbackUnavailable means there is no valid rate to work from
	NetbackUnavailable NetbackStatus = "unavailable"
)

// Message returns the user-facing hint for non-computed outcomes
func (s NetbackStatus) Message() string {
	switch s {
	case NetbackNeedsCost:
		return "Enter a CIF value greater than 0 to calculate netback."
	case NetbackUnavailable:
		return "Select a valid combination of Unit, Destination Port, and Country with an existing and valid freight rate to proceed with Netback calculation."
	default:
		return ""
	}
}

// NetbackResult is cost - rate/divisor - localRate when Status is NetbackComputed
type NetbackResult struct {
	Status  NetbackStatus
	Value   decimal.Decimal
	Rate    decimal.Decimal
	Divisor decimal.Decimal
	Input   NetbackInput
}

// Computed reports whether Value is meaningful
func (r NetbackResult) Computed() bool {
	return r.Status == NetbackComputed
}

// Quote pairs a lookup with the netback derived from it
type Quote struct {
	Lookup  LookupResult
	Netback NetbackResult
}
