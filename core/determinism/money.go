package determinism

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Money is a US dollar amount with full precision.
// NEVER use float64 for money calculations.
type Money struct {
	amount decimal.Decimal
}

// NewMoney creates Money from a decimal
func NewMoney(amount decimal.Decimal) Money {
	return Money{amount: amount}
}

// Rounded returns the amount rounded half away from zero to cents
func (m Money) Rounded() decimal.Decimal {
	return m.amount.Round(2)
}

var displayPrinter = message.NewPrinter(language.English)

// String renders the amount for display: "$4,600.00". The stored amount is
// not changed. Negative amounts render as "$-1.23".
func (m Money) String() string {
	rounded := m.Rounded()
	whole, cents, _ := strings.Cut(rounded.Abs().StringFixed(2), ".")

	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}
	return "$" + sign + groupThousands(whole) + "." + cents
}

// groupThousands inserts separators into a string of decimal digits
func groupThousands(digits string) string {
	if n, err := strconv.ParseInt(digits, 10, 64); err == nil {
		return displayPrinter.Sprint(number.Decimal(n))
	}

	// Beyond int64: group by hand
	var b strings.Builder
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
