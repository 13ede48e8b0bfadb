// internal/domain/order/history.go
package order

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/Voidkillxx/FinalCaseStudy/internal/pkg/dialog"
	"github.com/Voidkillxx/FinalCaseStudy/internal/pkg/notice"
	"github.com/Voidkillxx/FinalCaseStudy/internal/pkg/pricing"
	"github.com/sirupsen/logrus"
)

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrNotCancellable = errors.New("order can no longer be cancelled")
	ErrUnknownFilter  = errors.New("unknown order status filter")
)

const (
	fetchErrorMessage    = "Failed to fetch orders. Please check your network or try logging in again."
	cancelSuccessMessage = "Order successfully cancelled! The product stock has been restored."
	cancelFallback       = "Failed to cancel order due to an unexpected server issue."
)

// Filter selects which orders the history shows
type Filter string

// FilterAll is the synthetic filter that matches every order
const FilterAll Filter = "All"

type tabDef struct {
	key   Filter
	label string
}

// Tab order is fixed
var tabs = []tabDef{
	{FilterAll, "All"},
	{Filter(OrderStatusPending), "To Pay / Pending"},
	{Filter(OrderStatusProcessing), "To Ship / Processed"},
	{Filter(OrderStatusShipped), "Shipping"},
	{Filter(OrderStatusDelivered), "Completed"},
	{Filter(OrderStatusCancelled), "Cancelled"},
}

// ParseFilter maps a tab key (any case) to a Filter; empty means All
func ParseFilter(s string) (Filter, error) {
	if s == "" {
		return FilterAll, nil
	}
	for _, t := range tabs {
		if OrderStatus(t.key).Is(OrderStatus(s)) {
			return t.key, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFilter, s)
}

// Matches reports whether an order belongs under this filter
func (f Filter) Matches(o Order) bool {
	if f == FilterAll {
		return true
	}
	return o.Status.Is(OrderStatus(f))
}

func (f Filter) label() string {
	for _, t := range tabs {
		if t.key == f {
			return t.label
		}
	}
	return string(f)
}

// History is the shopper's order history screen
type History struct {
	mu      sync.Mutex
	backend Backend
	logger  *logrus.Logger
	orders  []Order
	filter  Filter
	loading bool
	err     string
	cancel  *dialog.Confirmation[uint]
}

// NewHistory creates a history view that shows the spinner until Load resolves
func NewHistory(backend Backend, logger *logrus.Logger) *History {
	return &History{
		backend: backend,
		logger:  logger,
		filter:  FilterAll,
		loading: true,
		cancel:  dialog.New[uint](),
	}
}

// Load fetches every order and sorts them newest first. A failure replaces the
// whole view with a terminal error message.
func (h *History) Load(ctx context.Context) error {
	h.mu.Lock()
	h.loading = true
	h.err = ""
	h.mu.Unlock()

	orders, err := h.backend.FetchOrders(ctx)

	h.mu.Lock()
	defer h.mu.Unlock()

	h.loading = false
	if err != nil {
		h.err = fetchErrorMessage
		h.logger.WithError(err).Error("Failed to fetch orders")
		return fmt.Errorf("failed to fetch orders: %w", err)
	}

	sorted := append([]Order(nil), orders...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	h.orders = sorted
	return nil
}

// SetFilter switches the active tab; no refetch happens
func (h *History) SetFilter(f Filter) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.filter = f
}

// ActiveFilter returns the selected tab
func (h *History) ActiveFilter() Filter {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.filter
}

// Orders returns every fetched order, newest first
func (h *History) Orders() []Order {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Order(nil), h.orders...)
}

// Visible returns the orders under the active filter
func (h *History) Visible() []Order {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.visibleLocked()
}

func (h *History) visibleLocked() []Order {
	out := make([]Order, 0, len(h.orders))
	for _, o := range h.orders {
		if h.filter.Matches(o) {
			out = append(out, o)
		}
	}
	return out
}

// Tab is one status tab with its live count
type Tab struct {
	Key    Filter `json:"key"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
	Active bool   `json:"active"`
}

// Tabs returns the six tabs in fixed order with counts over the fetched list
func (h *History) Tabs() []Tab {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.tabsLocked()
}

func (h *History) tabsLocked() []Tab {
	out := make([]Tab, 0, len(tabs))
	for _, t := range tabs {
		count := 0
		for _, o := range h.orders {
			if t.key.Matches(o) {
				count++
			}
		}
		out = append(out, Tab{Key: t.key, Label: t.label, Count: count, Active: t.key == h.filter})
	}
	return out
}

// RequestCancel opens the cancellation prompt for a Pending or Processing order
func (h *History) RequestCancel(orderID uint) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	o, ok := h.findLocked(orderID)
	if !ok {
		return ErrOrderNotFound
	}
	if !o.CanBeCancelled() {
		return ErrNotCancellable
	}

	h.cancel.Open(orderID)
	return nil
}

// DeclineCancel closes the prompt and keeps the order
func (h *History) DeclineCancel() {
	h.cancel.Cancel()
}

// ConfirmCancel asks the backend to cancel the pending order and then refetches
// exactly once whatever the outcome. The returned notice describes the result.
func (h *History) ConfirmCancel(ctx context.Context) (notice.Notice, error) {
	orderID, err := h.cancel.Confirm()
	if err != nil {
		return notice.Notice{}, err
	}

	var result notice.Notice
	cancelErr := h.backend.CancelOrder(ctx, orderID)
	if cancelErr != nil {
		h.logger.WithError(cancelErr).WithField("order_id", orderID).Error("Cancellation failed")
		result = notice.Danger("Cancellation Error: " + notice.MessageOf(cancelErr, cancelFallback))
	} else {
		h.logger.WithField("order_id", orderID).Info("Order cancelled")
		result = notice.Success(cancelSuccessMessage)
	}

	// The refetch error is already reflected in the view state
	_ = h.Load(ctx)

	return result, cancelErr
}

// Find returns one fetched order
func (h *History) Find(orderID uint) (Order, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.findLocked(orderID)
}

func (h *History) findLocked(orderID uint) (Order, bool) {
	for _, o := range h.orders {
		if o.ID == orderID {
			return o, true
		}
	}
	return Order{}, false
}

// ViewState tells the renderer which of the three screens to draw
type ViewState string

const (
	ViewLoading ViewState = "loading"
	ViewError   ViewState = "error"
	ViewReady   ViewState = "ready"
)

// View is the rendered order history screen
type View struct {
	State        ViewState   `json:"state"`
	Error        string      `json:"error,omitempty"`
	Tabs         []Tab       `json:"tabs,omitempty"`
	ActiveFilter Filter      `json:"active_filter,omitempty"`
	Orders       []OrderView `json:"orders,omitempty"`
	EmptyMessage string      `json:"empty_message,omitempty"`
	CancelDialog CancelView  `json:"cancel_dialog"`
}

// CancelView describes the cancellation prompt
type CancelView struct {
	State   dialog.State `json:"state"`
	OrderID uint         `json:"order_id,omitempty"`
	Prompt  string       `json:"prompt,omitempty"`
	Warning string       `json:"warning,omitempty"`
}

// OrderView is one rendered order card
type OrderView struct {
	ID              uint           `json:"id"`
	Status          OrderStatus    `json:"status"`
	TotalAmount     string         `json:"total_amount"`
	PaymentType     string         `json:"payment_type"`
	ShippingAddress string         `json:"shipping_address"`
	PlacedOn        string         `json:"placed_on"`
	Items           []LineItemView `json:"items"`
	CanCancel       bool           `json:"can_cancel"`
}

// LineItemView is one rendered order line
type LineItemView struct {
	ID              uint   `json:"id"`
	ProductName     string `json:"product_name"`
	Quantity        int    `json:"quantity"`
	PriceAtPurchase string `json:"price_at_purchase"`
}

// Render builds the view model. While loading or after a failed fetch no list
// is rendered at all.
func (h *History) Render() View {
	h.mu.Lock()
	defer h.mu.Unlock()

	view := View{CancelDialog: CancelView{State: dialog.Idle}}
	if orderID, ok := h.cancel.Pending(); ok {
		view.CancelDialog = CancelView{
			State:   dialog.PendingConfirmation,
			OrderID: orderID,
			Prompt:  fmt.Sprintf("Are you sure you want to cancel Order #%d?", orderID),
			Warning: "This action cannot be undone, and the product stock will be returned to inventory.",
		}
	}

	switch {
	case h.loading:
		view.State = ViewLoading
		return view
	case h.err != "":
		view.State = ViewError
		view.Error = h.err
		return view
	}

	view.State = ViewReady
	view.Tabs = h.tabsLocked()
	view.ActiveFilter = h.filter

	visible := h.visibleLocked()
	view.Orders = make([]OrderView, 0, len(visible))
	for _, o := range visible {
		view.Orders = append(view.Orders, renderOrder(o))
	}
	if len(visible) == 0 {
		view.EmptyMessage = fmt.Sprintf("No orders found in the %s category.", h.filter.label())
	}
	return view
}

func renderOrder(o Order) OrderView {
	items := make([]LineItemView, 0, len(o.OrderItems))
	for _, item := range o.OrderItems {
		items = append(items, LineItemView{
			ID:              item.ID,
			ProductName:     item.ProductName(),
			Quantity:        item.Quantity,
			PriceAtPurchase: pricing.PesoGrouped(item.PriceAtPurchase),
		})
	}

	return OrderView{
		ID:              o.ID,
		Status:          o.Status,
		TotalAmount:     pricing.PesoGrouped(o.TotalAmount),
		PaymentType:     o.PaymentType,
		ShippingAddress: o.ShippingAddress,
		PlacedOn:        o.CreatedAt.Local().Format("01/02/2006 at 3:04:05 PM"),
		Items:           items,
		CanCancel:       o.CanBeCancelled(),
	}
}
