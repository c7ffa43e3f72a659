package pricing

import (
	"github.com/shopspring/decimal"

	"freight-netback/core/types"
)

var (
	// Divisor converts the freight rate of a unit into the per-quantity
	// amount subtracted from the cost
	Divisor = decimal.NewFromInt(23000)

	// DefaultLocalRate is the local rate used when none is given
	DefaultLocalRate = decimal.RequireFromString("0.02")
)

// Netback computes cost - rate/Divisor - localRate. A cost that is not
// positive leaves the result uncomputed with NetbackNeedsCost.
// The value is never rounded here.
func Netback(rate decimal.Decimal, in types.NetbackInput) types.NetbackResult {
	result := types.NetbackResult{
		Status:  types.NetbackNeedsCost,
		Rate:    rate,
		Divisor: Divisor,
		Input:   in,
	}
	if !in.Cost.IsPositive() {
		return result
	}

	result.Status = types.NetbackComputed
	result.Value = in.Cost.Sub(rate.Div(Divisor)).Sub(in.LocalRate)
	return result
}
