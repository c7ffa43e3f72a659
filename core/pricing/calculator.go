package pricing

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"freight-netback/core/types"
	"freight-netback/internal/errors"
	"freight-netback/internal/logging"
)

// Calculator turns a selection and user figures into a Quote.
// It holds no table state; the same Calculator serves any table.
type Calculator struct {
	localRate decimal.Decimal
	log       *zap.Logger
}

// NewCalculator creates a calculator whose default local rate is localRate
func NewCalculator(localRate decimal.Decimal) *Calculator {
	return &Calculator{
		localRate: localRate,
		log:       logging.Named("pricing"),
	}
}

// DefaultLocalRate returns the local rate applied when the caller gives none
func (c *Calculator) DefaultLocalRate() decimal.Decimal {
	return c.localRate
}

// Input validates user figures. A missing local rate takes the calculator
// default. Negative figures are rejected with an input error.
func (c *Calculator) Input(cost decimal.Decimal, localRate decimal.NullDecimal) (types.NetbackInput, error) {
	in := types.NetbackInput{Cost: cost, LocalRate: c.localRate}
	if localRate.Valid {
		in.LocalRate = localRate.Decimal
	}

	if in.Cost.IsNegative() {
		return types.NetbackInput{}, errors.Input("cost must not be negative").
			WithContext(errors.ContextField, "cost")
	}
	if in.LocalRate.IsNegative() {
		return types.NetbackInput{}, errors.Input("local rate must not be negative").
			WithContext(errors.ContextField, "local_rate")
	}
	return in, nil
}

// Quote looks up the selection and, when a valid rate was found, computes
// the netback. Without a valid rate the netback is NetbackUnavailable.
func (c *Calculator) Quote(table *types.RateTable, key types.SelectionKey, in types.NetbackInput) types.Quote {
	lookup := Lookup(table, key)

	var netback types.NetbackResult
	if lookup.Found() {
		netback = Netback(lookup.Rate, in)
	} else {
		netback = types.NetbackResult{
			Status:  types.NetbackUnavailable,
			Divisor: Divisor,
			Input:   in,
		}
	}

	c.log.Debug("quote",
		zap.Stringer("selection", key),
		zap.String("lookup", string(lookup.Status)),
		zap.Int("matches", lookup.Matches),
		zap.String("netback", string(netback.Status)),
	)

	return types.Quote{Lookup: lookup, Netback: netback}
}
