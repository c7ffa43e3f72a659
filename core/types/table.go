// Package types - Rate table types
package types

import (
	"github.com/shopspring/decimal"
)

// Column names a rate table must carry. Matching is exact and case-sensitive.
const (
	ColumnUnit            = "Unit"
	ColumnDestinationPort = "Destination Port"
	ColumnCountry         = "Country"
	ColumnRate            = "Rate 1st Half of Month"
)

// RequiredColumns returns the required columns in reporting order
func RequiredColumns() []string {
	return []string{ColumnUnit, ColumnDestinationPort, ColumnCountry, ColumnRate}
}

// Row is a single data row of a rate table.
// The rate column is held only in coerced form.
type Row struct {
	// Line is the 1-based source line (CSV) or sheet row (XLSX)
	Line int

	values map[string]string
	rate   decimal.NullDecimal
}

// NewRow builds a row. The raw rate cell, if present in values, is dropped
// in favour of the coerced rate.
func NewRow(line int, values map[string]string, rate decimal.NullDecimal) Row {
	copied := make(map[string]string, len(values))
	for k, v := range values {
		if k == ColumnRate {
			continue
		}
		copied[k] = v
	}
	return Row{Line: line, values: copied, rate: rate}
}

// Value returns a cell by column name. The rate column renders its coerced
// value, or "" when missing.
func (r Row) Value(column string) string {
	if column == ColumnRate {
		if !r.rate.Valid {
			return ""
		}
		return r.rate.Decimal.String()
	}
	return r.values[column]
}

// Rate returns the coerced rate and whether it is present
func (r Row) Rate() (decimal.Decimal, bool) {
	return r.rate.Decimal, r.rate.Valid
}

// Key returns the row's selection triple
func (r Row) Key() SelectionKey {
	return SelectionKey{
		Country:         r.values[ColumnCountry],
		DestinationPort: r.values[ColumnDestinationPort],
		Unit:            r.values[ColumnUnit],
	}
}

func (r Row) equal(o Row) bool {
	if r.Line != o.Line || r.rate.Valid != o.rate.Valid || len(r.values) != len(o.values) {
		return false
	}
	if r.rate.Valid && !r.rate.Decimal.Equal(o.rate.Decimal) {
		return false
	}
	for k, v := range r.values {
		if ov, ok := o.values[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// RateTable is a validated, read-only freight rate table.
// It is never mutated after construction and may be shared between sessions.
type RateTable struct {
	columns     []string
	rows        []Row
	fingerprint string
}

// NewRateTable builds a table from header columns and rows
func NewRateTable(columns []string, rows []Row, fingerprint string) *RateTable {
	return &RateTable{
		columns:     append([]string(nil), columns...),
		rows:        append([]Row(nil), rows...),
		fingerprint: fingerprint,
	}
}

// Columns returns the header in source order
func (t *RateTable) Columns() []string {
	return append([]string(nil), t.columns...)
}

// HasColumn reports whether the header contains the column
func (t *RateTable) HasColumn(column string) bool {
	for _, c := range t.columns {
		if c == column {
			return true
		}
	}
	return false
}

// Len returns the number of data rows
func (t *RateTable) Len() int {
	return len(t.rows)
}

// Row returns the i-th data row in table order
func (t *RateTable) Row(i int) Row {
	return t.rows[i]
}

// Range iterates rows in table order until fn returns false
func (t *RateTable) Range(fn func(Row) bool) {
	for _, r := range t.rows {
		if !fn(r) {
			return
		}
	}
}

// Fingerprint is the content hash of the bytes the table was loaded from
func (t *RateTable) Fingerprint() string {
	return t.fingerprint
}

// MissingRates counts rows whose rate is missing
func (t *RateTable) MissingRates() int {
	n := 0
	for _, r := range t.rows {
		if !r.rate.Valid {
			n++
		}
	}
	return n
}

// Equal reports whether two tables hold the same header, rows and fingerprint
func (t *RateTable) Equal(o *RateTable) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.fingerprint != o.fingerprint || len(t.columns) != len(o.columns) || len(t.rows) != len(o.rows) {
		return false
	}
	for i := range t.columns {
		if t.columns[i] != o.columns[i] {
			return false
		}
	}
	for i := range t.rows {
		if !t.rows[i].equal(o.rows[i]) {
			return false
		}
	}
	return true
}
