// Package pricing derives the prices a shopper sees from catalog values.
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencySymbol prefixes every displayed amount
const CurrencySymbol = "₱"

var (
	hundred = decimal.NewFromInt(100)
	zero    = decimal.Zero
)

// SellingPrice returns price minus the discount, where discount is a percentage
// in [0, 100]. Out-of-range discounts are clamped so the result is never negative
// and never above price.
func SellingPrice(price, discount decimal.Decimal) decimal.Decimal {
	if price.IsNegative() {
		return zero
	}

	pct := discount
	if pct.IsNegative() {
		pct = zero
	}
	if pct.GreaterThan(hundred) {
		pct = hundred
	}

	off := price.Mul(pct).Div(hundred)
	return price.Sub(off)
}

// LineTotal returns quantity × unit price. No rounding is applied.
func LineTotal(quantity int, unit decimal.Decimal) decimal.Decimal {
	if quantity <= 0 {
		return zero
	}
	return unit.Mul(decimal.NewFromInt(int64(quantity)))
}

// Peso formats an amount the way the cart shows it: symbol plus two decimals.
func Peso(amount decimal.Decimal) string {
	return CurrencySymbol + amount.StringFixed(2)
}

// PesoGrouped formats an amount with thousands separators, as order history does.
func PesoGrouped(amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	sign := ""
	if amount.IsNegative() && !amount.Round(2).IsZero() {
		sign = "-"
	}
	return sign + CurrencySymbol + b.String() + "." + frac
}
