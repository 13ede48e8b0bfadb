package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSellingPrice(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		discount string
		want     string
	}{
		{"no discount", "100", "0", "100"},
		{"twenty percent", "100", "20", "80"},
		{"full discount", "59.90", "100", "0"},
		{"fractional percent", "200", "12.5", "175"},
		{"discount above range clamps", "100", "150", "0"},
		{"negative discount clamps", "100", "-5", "100"},
		{"negative price", "-10", "10", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SellingPrice(d(tt.price), d(tt.discount))
			assert.True(t, got.Equal(d(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestSellingPrice_NeverNegative(t *testing.T) {
	price := d("37.45")
	for pct := 0; pct <= 100; pct++ {
		got := SellingPrice(price, decimal.NewFromInt(int64(pct)))
		assert.False(t, got.IsNegative(), "discount %d", pct)
		want := price.Mul(decimal.NewFromInt(1).Sub(decimal.NewFromInt(int64(pct)).Div(decimal.NewFromInt(100))))
		assert.True(t, got.Equal(want), "discount %d: got %s want %s", pct, got, want)
	}
}

func TestLineTotalAndFormatting(t *testing.T) {
	unit := SellingPrice(d("100"), d("20"))

	assert.Equal(t, "₱80.00", Peso(unit))
	assert.Equal(t, "₱320.00", Peso(LineTotal(4, unit)))
	assert.Equal(t, "₱0.00", Peso(LineTotal(0, unit)))
	assert.Equal(t, "₱33.33", Peso(d("33.333")))
}

func TestPesoGrouped(t *testing.T) {
	assert.Equal(t, "₱530.00", PesoGrouped(d("530")))
	assert.Equal(t, "₱1,530.50", PesoGrouped(d("1530.5")))
	assert.Equal(t, "₱1,234,567.89", PesoGrouped(d("1234567.891")))
	assert.Equal(t, "-₱1,000.00", PesoGrouped(d("-1000")))
	assert.Equal(t, "₱0.00", PesoGrouped(decimal.Zero))
}
