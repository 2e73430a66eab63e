package cart

import (
	"math"

	"github.com/shopspring/decimal"
)

var maxCents = decimal.NewFromInt(math.MaxInt64)

// FormatCents renders an amount in cents as dollars with two decimals, e.g. "$19.99".
func FormatCents(cents int64) string {
	return FormatAmount(decimal.New(cents, -2))
}

func FormatAmount(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Abs().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

// sumCents totals items exactly and reports false when the result does not
// fit in int64 cents.
func sumCents(items []LineItem) (int64, bool) {
	total := decimal.Zero
	for _, it := range items {
		if it.PriceCents < 0 || it.Quantity < 0 {
			return 0, false
		}
		total = total.Add(decimal.NewFromInt(it.PriceCents).Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	if total.GreaterThan(maxCents) {
		return 0, false
	}
	return total.IntPart(), true
}
