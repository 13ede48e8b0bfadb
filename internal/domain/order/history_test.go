package order_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Voidkillxx/FinalCaseStudy/internal/domain/order"
	"github.com/Voidkillxx/FinalCaseStudy/internal/mocks"
	"github.com/Voidkillxx/FinalCaseStudy/internal/pkg/dialog"
	"github.com/Voidkillxx/FinalCaseStudy/internal/pkg/logger"
	"github.com/Voidkillxx/FinalCaseStudy/internal/pkg/notice"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func sampleOrders() []order.Order {
	return []order.Order{
		{ID: 40, Status: "Delivered", TotalAmount: decimal.NewFromInt(120), CreatedAt: base},
		{ID: 42, Status: "Pending", TotalAmount: decimal.RequireFromString("530.00"), CreatedAt: base.Add(48 * time.Hour)},
		{ID: 43, Status: "delivered", TotalAmount: decimal.NewFromInt(75), CreatedAt: base.Add(72 * time.Hour)},
		{ID: 41, Status: "Processing", TotalAmount: decimal.NewFromInt(1530), CreatedAt: base.Add(24 * time.Hour),
			OrderItems: []order.OrderItem{
				{ID: 1, Product: &order.ProductRef{ID: 9, ProductName: "Rice 5kg"}, Quantity: 2, PriceAtPurchase: decimal.NewFromInt(765)},
				{ID: 2, Product: nil, Quantity: 1, PriceAtPurchase: decimal.Zero},
			}},
		{ID: 44, Status: "Cancelled", TotalAmount: decimal.NewFromInt(10), CreatedAt: base.Add(48 * time.Hour)},
	}
}

func loadedHistory(t *testing.T) (*order.History, *mocks.MockBackend) {
	t.Helper()
	backend := new(mocks.MockBackend)
	backend.On("FetchOrders", mock.Anything).Return(sampleOrders(), nil).Once()

	h := order.NewHistory(backend, logger.Discard())
	require.NoError(t, h.Load(context.Background()))
	return h, backend
}

func reversed(orders []order.Order) []order.Order {
	out := make([]order.Order, 0, len(orders))
	for i := len(orders) - 1; i >= 0; i-- {
		out = append(out, orders[i])
	}
	return out
}

func ids(orders []order.Order) []uint {
	out := make([]uint, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID)
	}
	return out
}

func TestHistory_LoadSortsNewestFirst(t *testing.T) {
	h, _ := loadedHistory(t)

	// 42 and 44 share a timestamp and keep their fetch order
	assert.Equal(t, []uint{43, 42, 44, 41, 40}, ids(h.Orders()))

	orders := h.Orders()
	for i := 1; i < len(orders); i++ {
		assert.False(t, orders[i].CreatedAt.After(orders[i-1].CreatedAt))
	}
}

func TestHistory_InitialStateIsLoading(t *testing.T) {
	h := order.NewHistory(new(mocks.MockBackend), logger.Discard())
	view := h.Render()
	assert.Equal(t, order.ViewLoading, view.State)
	assert.Empty(t, view.Orders)
	assert.Empty(t, view.Tabs)
}

func TestHistory_FetchFailureReplacesView(t *testing.T) {
	backend := new(mocks.MockBackend)
	backend.On("FetchOrders", mock.Anything).Return(nil, errors.New("network down"))

	h := order.NewHistory(backend, logger.Discard())
	require.Error(t, h.Load(context.Background()))

	view := h.Render()
	assert.Equal(t, order.ViewError, view.State)
	assert.Equal(t, "Failed to fetch orders. Please check your network or try logging in again.", view.Error)
	assert.Nil(t, view.Orders)
}

func TestHistory_Tabs(t *testing.T) {
	h, _ := loadedHistory(t)

	tabs := h.Tabs()
	require.Len(t, tabs, 6)

	want := []struct {
		key   order.Filter
		label string
		count int
	}{
		{order.FilterAll, "All", 5},
		{"Pending", "To Pay / Pending", 1},
		{"Processing", "To Ship / Processed", 1},
		{"Shipped", "Shipping", 0},
		{"Delivered", "Completed", 2},
		{"Cancelled", "Cancelled", 1},
	}
	for i, w := range want {
		assert.Equal(t, w.key, tabs[i].Key)
		assert.Equal(t, w.label, tabs[i].Label)
		assert.Equal(t, w.count, tabs[i].Count, "tab %s", w.key)
	}
	assert.True(t, tabs[0].Active)
}

func TestHistory_FilterIsClientSide(t *testing.T) {
	h, backend := loadedHistory(t)

	assert.Len(t, h.Visible(), len(h.Orders()))

	for _, tab := range h.Tabs() {
		h.SetFilter(tab.Key)
		visible := h.Visible()
		assert.Len(t, visible, tab.Count)
		for _, o := range visible {
			assert.True(t, tab.Key.Matches(o))
		}
	}

	h.SetFilter("Shipped")
	view := h.Render()
	assert.Empty(t, view.Orders)
	assert.Equal(t, "No orders found in the Shipping category.", view.EmptyMessage)

	backend.AssertNumberOfCalls(t, "FetchOrders", 1)
}

func TestParseFilter(t *testing.T) {
	f, err := order.ParseFilter("")
	require.NoError(t, err)
	assert.Equal(t, order.FilterAll, f)

	f, err = order.ParseFilter("delivered")
	require.NoError(t, err)
	assert.Equal(t, order.Filter("Delivered"), f)

	_, err = order.ParseFilter("Lost")
	assert.ErrorIs(t, err, order.ErrUnknownFilter)
}

func TestHistory_CancelAffordance(t *testing.T) {
	h, _ := loadedHistory(t)

	cards := map[uint]bool{}
	for _, card := range h.Render().Orders {
		cards[card.ID] = card.CanCancel
	}
	assert.True(t, cards[42])
	assert.True(t, cards[41])
	assert.False(t, cards[43])
	assert.False(t, cards[40])
	assert.False(t, cards[44])

	assert.ErrorIs(t, h.RequestCancel(43), order.ErrNotCancellable)
	assert.ErrorIs(t, h.RequestCancel(999), order.ErrOrderNotFound)
}

func TestHistory_ConfirmCancel(t *testing.T) {
	tests := []struct {
		name       string
		cancelErr  error
		wantLevel  notice.Level
		wantNotice string
	}{
		{
			name:       "success",
			wantLevel:  notice.LevelSuccess,
			wantNotice: "Order successfully cancelled! The product stock has been restored.",
		},
		{
			name:       "backend reason",
			cancelErr:  &mocks.PublicError{Message: "Order already shipped."},
			wantLevel:  notice.LevelDanger,
			wantNotice: "Cancellation Error: Order already shipped.",
		},
		{
			name:       "generic failure",
			cancelErr:  errors.New("connection reset"),
			wantLevel:  notice.LevelDanger,
			wantNotice: "Cancellation Error: Failed to cancel order due to an unexpected server issue.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, backend := loadedHistory(t)
			backend.On("CancelOrder", mock.Anything, uint(42)).Return(tt.cancelErr).Once()
			backend.On("FetchOrders", mock.Anything).Return(reversed(sampleOrders()), nil).Once()

			require.NoError(t, h.RequestCancel(42))
			view := h.Render()
			assert.Equal(t, dialog.PendingConfirmation, view.CancelDialog.State)
			assert.Equal(t, "Are you sure you want to cancel Order #42?", view.CancelDialog.Prompt)
			backend.AssertNotCalled(t, "CancelOrder", mock.Anything, mock.Anything)

			n, err := h.ConfirmCancel(context.Background())
			if tt.cancelErr != nil {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantLevel, n.Level)
			assert.Equal(t, tt.wantNotice, n.Message)

			// initial load plus exactly one refetch
			backend.AssertNumberOfCalls(t, "FetchOrders", 2)
			backend.AssertNumberOfCalls(t, "CancelOrder", 1)
			assert.Equal(t, dialog.Idle, h.Render().CancelDialog.State)

			// the refetch is sorted again; 44 and 42 tie and keep the new fetch order
			assert.Equal(t, []uint{43, 44, 42, 41, 40}, ids(h.Orders()))
		})
	}
}

func TestHistory_DeclineCancel(t *testing.T) {
	h, backend := loadedHistory(t)

	require.NoError(t, h.RequestCancel(41))
	h.DeclineCancel()

	_, err := h.ConfirmCancel(context.Background())
	assert.ErrorIs(t, err, dialog.ErrNotPending)

	backend.AssertNotCalled(t, "CancelOrder", mock.Anything, mock.Anything)
	backend.AssertNumberOfCalls(t, "FetchOrders", 1)
	assert.Len(t, h.Orders(), 5)
}

func TestHistory_RenderOrderCard(t *testing.T) {
	h, _ := loadedHistory(t)

	var card order.OrderView
	for _, c := range h.Render().Orders {
		if c.ID == 41 {
			card = c
		}
	}

	assert.Equal(t, "₱1,530.00", card.TotalAmount)
	require.Len(t, card.Items, 2)
	assert.Equal(t, "Rice 5kg", card.Items[0].ProductName)
	assert.Equal(t, "₱765.00", card.Items[0].PriceAtPurchase)
	assert.Equal(t, "Product Not Found", card.Items[1].ProductName)
}

func TestOrderItem_Subtotal(t *testing.T) {
	item := order.OrderItem{Quantity: 3, PriceAtPurchase: decimal.RequireFromString("19.99")}
	assert.True(t, item.Subtotal().Equal(decimal.RequireFromString("59.97")))
}
