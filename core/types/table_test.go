package types

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func row(line int, country, port, unit string, rate decimal.NullDecimal) Row {
	return NewRow(line, map[string]string{
		ColumnCountry:         country,
		ColumnDestinationPort: port,
		ColumnUnit:            unit,
		ColumnRate:            "raw text that must not survive",
	}, rate)
}

func TestRowDropsRawRate(t *testing.T) {
	r := row(2, "India", "Nhava Sheva", "20ft", decimal.NewNullDecimal(decimal.NewFromInt(4600)))

	assert.Equal(t, "4600", r.Value(ColumnRate))
	rate, ok := r.Rate()
	assert.True(t, ok)
	assert.True(t, rate.Equal(decimal.NewFromInt(4600)))

	missing := row(3, "India", "Nhava Sheva", "40ft", decimal.NullDecimal{})
	assert.Equal(t, "", missing.Value(ColumnRate))
	_, ok = missing.Rate()
	assert.False(t, ok)
}

func TestRowKey(t *testing.T) {
	r := row(2, "India", "Mundra", "20ft", decimal.NullDecimal{})
	assert.Equal(t, SelectionKey{Country: "India", DestinationPort: "Mundra", Unit: "20ft"}, r.Key())
	assert.Equal(t, "India / Mundra / 20ft", r.Key().String())
}

func TestRateTableIsolation(t *testing.T) {
	cols := []string{ColumnUnit, ColumnDestinationPort, ColumnCountry, ColumnRate}
	rows := []Row{row(2, "India", "Mundra", "20ft", decimal.NullDecimal{})}

	table := NewRateTable(cols, rows, "abc")
	cols[0] = "mutated"
	got := table.Columns()
	got[1] = "mutated too"

	assert.Equal(t, []string{ColumnUnit, ColumnDestinationPort, ColumnCountry, ColumnRate}, table.Columns())
	assert.True(t, table.HasColumn(ColumnCountry))
	assert.False(t, table.HasColumn("country"))
	assert.Equal(t, 1, table.Len())
	assert.Equal(t, 1, table.MissingRates())
	assert.Equal(t, "abc", table.Fingerprint())
}

func TestRateTableEqual(t *testing.T) {
	cols := RequiredColumns()
	a := NewRateTable(cols, []Row{row(2, "India", "Mundra", "20ft", decimal.NewNullDecimal(decimal.RequireFromString("12.50")))}, "h")
	b := NewRateTable(cols, []Row{row(2, "India", "Mundra", "20ft", decimal.NewNullDecimal(decimal.RequireFromString("12.5")))}, "h")
	c := NewRateTable(cols, []Row{row(2, "India", "Mundra", "40ft", decimal.NewNullDecimal(decimal.RequireFromString("12.5")))}, "h")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
}

func TestStatusMessages(t *testing.T) {
	assert.Contains(t, LookupInvalid.Message(), "'Rate 1st Half of Month'")
	assert.Contains(t, LookupNotFound.Message(), "No freight rate data found")
	assert.Empty(t, LookupFound.Message())
	assert.Contains(t, NetbackNeedsCost.Message(), "greater than 0")
	assert.Empty(t, NetbackComputed.Message())
}
