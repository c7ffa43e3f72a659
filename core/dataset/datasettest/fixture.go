// Package datasettest provides rate-table fixtures for tests.
package datasettest

import (
	"strings"
	"testing"

	"freight-netback/core/dataset"
	"freight-netback/core/types"
)

// SampleCSV mirrors testdata/sample_rates.csv: a duplicate India/Nhava Sheva/20ft
// row (first wins at 4600), three unusable rate cells, and an extra rate
// column the loader ignores.
const SampleCSV = `Shipper,Country,Destination Port,Unit,Rate 1st Half of Month,Rate 2nd Half of Month
Acme,India,Nhava Sheva,20ft,4600,4700
Acme,India,Mundra,20ft,4400,4500
Acme,India,Chennai,40ft,N/A,6100
Acme,Vietnam,Ho Chi Minh,20ft,3900,3950
Acme,Vietnam,Haiphong,40ft,5200,5300
Acme,Bangladesh,Chittagong,20ft, ,5000
Acme,India,Nhava Sheva,20ft,9999,9999
Acme,India,Nhava Sheva,40ft,"6,800",7000
`

// Load parses CSV text or fails the test
func Load(t testing.TB, csv string) *types.RateTable {
	t.Helper()
	table, err := dataset.ParseCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	return table
}

// Sample loads SampleCSV
func Sample(t testing.TB) *types.RateTable {
	t.Helper()
	return Load(t, SampleCSV)
}
