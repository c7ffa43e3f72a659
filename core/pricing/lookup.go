// Package pricing resolves freight rates from a rate table and derives the
// netback from them.
//
// Not-found and invalid lookups, and a cost of zero, are outcomes rather
// than errors: every call returns a status the caller can show to a user.
package pricing

import (
	"freight-netback/core/types"
)

// Lookup finds the rate for a selection. Rows match on exact string equality
// of all three key columns; when several rows match, the first in table
// order decides. A deciding row with a missing rate is LookupInvalid.
// A key with an empty part matches nothing.
func Lookup(table *types.RateTable, key types.SelectionKey) types.LookupResult {
	result := types.LookupResult{
		Key:    key,
		Status: types.LookupNotFound,
	}
	if !key.Complete() {
		return result
	}

	for i := 0; i < table.Len(); i++ {
		r := table.Row(i)
		if r.Key() != key {
			continue
		}
		result.Matches++
		if result.Matches > 1 {
			continue
		}

		result.Line = r.Line
		if rate, ok := r.Rate(); ok {
			result.Status = types.LookupFound
			result.Rate = rate
		} else {
			result.Status = types.LookupInvalid
		}
	}

	return result
}
