package pdf

import (
	"testing"
	"time"

	"github.com/Voidkillxx/FinalCaseStudy/internal/config"
	"github.com/Voidkillxx/FinalCaseStudy/internal/domain/order"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testService() *Service {
	s := NewService(&config.Config{Receipt: config.ReceiptConfig{StoreName: "JAKE STORE", DPI: 300}})
	s.now = func() time.Time { return time.Date(2025, 3, 4, 15, 30, 0, 0, time.UTC) }
	return s
}

func sampleOrder() order.Order {
	return order.Order{
		ID:          42,
		Status:      "delivered",
		TotalAmount: decimal.RequireFromString("1530.00"),
		CreatedAt:   time.Date(2025, 3, 1, 9, 0, 0, 0, time.Local),
		OrderItems: []order.OrderItem{
			{ID: 1, Product: &order.ProductRef{ID: 9, ProductName: "Rice <5kg>"}, Quantity: 2, PriceAtPurchase: decimal.NewFromInt(765)},
			{ID: 2, Quantity: 1, PriceAtPurchase: decimal.Zero},
		},
	}
}

func TestService_BuildReceipt(t *testing.T) {
	data := testService().BuildReceipt(sampleOrder())

	assert.Equal(t, "JAKE STORE", data.StoreName)
	assert.Equal(t, "OR-000042", data.ReceiptNumber)
	assert.Equal(t, "DELIVERED", data.Status)
	assert.Equal(t, "N/A", data.PaymentType)
	assert.Equal(t, "03/01/2025 at 9:00:00 AM", data.PlacedOn)
	assert.Equal(t, "₱1,530.00", data.Total)

	require.Len(t, data.Lines, 2)
	assert.Equal(t, "₱765.00", data.Lines[0].UnitPrice)
	assert.Equal(t, "₱1,530.00", data.Lines[0].Subtotal)
	assert.Equal(t, "Product Not Found", data.Lines[1].ProductName)
}

func TestService_RenderHTMLEscapes(t *testing.T) {
	s := testService()

	html, err := s.RenderHTML(s.BuildReceipt(sampleOrder()))
	require.NoError(t, err)

	assert.Contains(t, html, "Receipt OR-000042")
	assert.Contains(t, html, "Rice &lt;5kg&gt;")
	assert.NotContains(t, html, "Ship to")
}
