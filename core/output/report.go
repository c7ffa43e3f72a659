package output

import (
	"freight-netback/core/determinism"
	"freight-netback/core/input"
	"freight-netback/core/types"
)

// QuoteReport is a rendered quote with its context
type QuoteReport struct {
	// Source identifies the rate table
	Source input.SourceInfo `json:"source" yaml:"source"`

	// Session is the session id, when served
	Session string `json:"session,omitempty" yaml:"session,omitempty"`

	QuoteView `yaml:",inline"`
}

// NewQuoteReport builds a report for a quote
func NewQuoteReport(source input.SourceInfo, q types.Quote) *QuoteReport {
	return &QuoteReport{Source: source, QuoteView: NewQuoteView(q)}
}

// QuoteView is the display form of a Quote. Amounts are exact decimal
// strings; Display fields are rounded for people.
type QuoteView struct {
	Selection types.SelectionKey `json:"selection" yaml:"selection"`
	Lookup    LookupView         `json:"lookup" yaml:"lookup"`
	Netback   NetbackView        `json:"netback" yaml:"netback"`
}

// LookupView is the display form of a LookupResult
type LookupView struct {
	Status  types.LookupStatus `json:"status" yaml:"status"`
	Rate    string             `json:"rate,omitempty" yaml:"rate,omitempty"`
	Display string             `json:"display,omitempty" yaml:"display,omitempty"`
	Message string             `json:"message,omitempty" yaml:"message,omitempty"`
	Matches int                `json:"matches" yaml:"matches"`
	Line    int                `json:"line,omitempty" yaml:"line,omitempty"`
}

// NetbackView is the display form of a NetbackResult
type NetbackView struct {
	Status    types.NetbackStatus `json:"status" yaml:"status"`
	Value     string              `json:"value,omitempty" yaml:"value,omitempty"`
	Display   string              `json:"display,omitempty" yaml:"display,omitempty"`
	Message   string              `json:"message,omitempty" yaml:"message,omitempty"`
	Cost      string              `json:"cost" yaml:"cost"`
	LocalRate string              `json:"local_rate" yaml:"local_rate"`
	Divisor   string              `json:"divisor" yaml:"divisor"`
}

// NewQuoteView converts a quote for display
func NewQuoteView(q types.Quote) QuoteView {
	v := QuoteView{
		Selection: q.Lookup.Key,
		Lookup: LookupView{
			Status:  q.Lookup.Status,
			Message: q.Lookup.Status.Message(),
			Matches: q.Lookup.Matches,
			Line:    q.Lookup.Line,
		},
		Netback: NetbackView{
			Status:    q.Netback.Status,
			Message:   q.Netback.Status.Message(),
			Cost:      q.Netback.Input.Cost.String(),
			LocalRate: q.Netback.Input.LocalRate.String(),
			Divisor:   q.Netback.Divisor.String(),
		},
	}
	if q.Lookup.Found() {
		v.Lookup.Rate = q.Lookup.Rate.String()
		v.Lookup.Display = determinism.NewMoney(q.Lookup.Rate).String()
	}
	if q.Netback.Computed() {
		v.Netback.Value = q.Netback.Value.String()
		v.Netback.Display = determinism.NewMoney(q.Netback.Value).String()
	}
	return v
}

// OptionsReport lists the dropdown values of a table
type OptionsReport struct {
	Source    input.SourceInfo `json:"source" yaml:"source"`
	Countries []string         `json:"countries" yaml:"countries"`
	Units     []string         `json:"units" yaml:"units"`
	Country   string           `json:"country,omitempty" yaml:"country,omitempty"`
	Ports     []string         `json:"ports" yaml:"ports"`

	// PortsByCountry lists the ports of every country, when requested
	PortsByCountry []CountryPorts `json:"ports_by_country,omitempty" yaml:"ports_by_country,omitempty"`
}

// CountryPorts is one row of the country to ports cascade
type CountryPorts struct {
	Country string   `json:"country" yaml:"country"`
	Ports   []string `json:"ports" yaml:"ports"`
}
