// Package catalog - Dropdown values of a rate table
// Extracts the distinct countries, destination ports and units a user can
// choose from. Ports cascade from the chosen country.
package catalog

import (
	"fmt"

	"freight-netback/core/determinism"
	"freight-netback/core/types"
)

// Order controls how the country list is ordered
type Order string

const (
	// OrderSorted lists countries in code point order
	OrderSorted Order = "sorted"
	// OrderFirstSeen lists countries in the order they first appear in the table
	OrderFirstSeen Order = "first_seen"
)

// DefaultOrder is used when no order is configured
const DefaultOrder = OrderSorted

// ParseOrder validates an order name; empty means DefaultOrder
func ParseOrder(s string) (Order, error) {
	switch Order(s) {
	case "":
		return DefaultOrder, nil
	case OrderSorted, OrderFirstSeen:
		return Order(s), nil
	default:
		return "", fmt.Errorf("unknown country order %q (want %s or %s)", s, OrderSorted, OrderFirstSeen)
	}
}

// Distinct returns the distinct non-empty values of a column in first-seen
// order. A column the table does not have yields nil.
func Distinct(table *types.RateTable, column string) []string {
	if !table.HasColumn(column) {
		return nil
	}
	seen := make(map[string]bool)
	var values []string
	table.Range(func(r types.Row) bool {
		v := r.Value(column)
		if v != "" && !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
		return true
	})
	return values
}

// Countries returns the distinct countries in the given order
func Countries(table *types.RateTable, order Order) []string {
	countries := Distinct(table, types.ColumnCountry)
	if order == OrderFirstSeen {
		return countries
	}
	determinism.SortStrings(countries)
	return countries
}

// Units returns the distinct units, sorted
func Units(table *types.RateTable) []string {
	units := Distinct(table, types.ColumnUnit)
	determinism.SortStrings(units)
	return units
}

// Ports returns the distinct destination ports among rows whose country is
// exactly country, sorted
func Ports(table *types.RateTable, country string) []string {
	seen := make(map[string]bool)
	var ports []string
	table.Range(func(r types.Row) bool {
		key := r.Key()
		if key.Country == country && key.DestinationPort != "" && !seen[key.DestinationPort] {
			seen[key.DestinationPort] = true
			ports = append(ports, key.DestinationPort)
		}
		return true
	})
	determinism.SortStrings(ports)
	return ports
}

// Catalog holds the dropdown values of one table, computed once.
// The table is immutable, so a Catalog never goes stale.
type Catalog struct {
	order     Order
	countries []string
	units     []string
	ports     map[string][]string
}

// New indexes a table
func New(table *types.RateTable, order Order) *Catalog {
	c := &Catalog{
		order:     order,
		countries: Countries(table, order),
		units:     Units(table),
		ports:     make(map[string][]string),
	}
	for _, country := range c.countries {
		c.ports[country] = Ports(table, country)
	}
	return c
}

// Order returns the country ordering in use
func (c *Catalog) Order() Order {
	return c.order
}

// Countries returns the country dropdown values
func (c *Catalog) Countries() []string {
	return append([]string(nil), c.countries...)
}

// Units returns the unit dropdown values
func (c *Catalog) Units() []string {
	return append([]string(nil), c.units...)
}

// DefaultCountry is the country preselected before the user chooses one:
// the first entry of the country list, or "" for an empty table
func (c *Catalog) DefaultCountry() string {
	if len(c.countries) == 0 {
		return ""
	}
	return c.countries[0]
}

// Ports returns the port dropdown values for a country. An empty country
// falls back to DefaultCountry; an unknown one yields an empty list.
func (c *Catalog) Ports(country string) []string {
	if country == "" {
		country = c.DefaultCountry()
	}
	return append([]string(nil), c.ports[country]...)
}

// HasCountry reports whether country appears in the table
func (c *Catalog) HasCountry(country string) bool {
	_, ok := c.ports[country]
	return ok
}

// Stats returns catalog statistics
func (c *Catalog) Stats() Stats {
	stats := Stats{
		Countries: len(c.countries),
		Units:     len(c.units),
	}
	for _, ports := range c.ports {
		stats.Ports += len(ports)
	}
	return stats
}

// Stats holds catalog statistics
type Stats struct {
	Countries int `json:"countries" yaml:"countries"`
	Ports     int `json:"ports" yaml:"ports"`
	Units     int `json:"units" yaml:"units"`
}
