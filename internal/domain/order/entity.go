// internal/domain/order/entity.go
package order

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state the backend reports for an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// Is compares statuses the way the history tabs do, ignoring case
func (s OrderStatus) Is(other OrderStatus) bool {
	return strings.EqualFold(string(s), string(other))
}

// Order is a placed order as returned by the backend. Only the backend changes
// its status; the storefront may only ask for a cancellation.
type Order struct {
	ID              uint            `json:"id"`
	Status          OrderStatus     `json:"status"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	PaymentType     string          `json:"payment_type"`
	ShippingAddress string          `json:"shipping_address"`
	CreatedAt       time.Time       `json:"created_at"`
	OrderItems      []OrderItem     `json:"order_items"`
}

// OrderItem is one purchased line. PriceAtPurchase is the snapshot taken when
// the order was placed and is never recomputed from the current product price.
type OrderItem struct {
	ID              uint            `json:"id"`
	Product         *ProductRef     `json:"product"`
	Quantity        int             `json:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"price_at_purchase"`
}

// ProductRef is the product an order line points at; it may have been deleted
type ProductRef struct {
	ID          uint   `json:"id"`
	ProductName string `json:"product_name"`
}

// ProductName returns the line's product name or a placeholder
func (i OrderItem) ProductName() string {
	if i.Product == nil || i.Product.ProductName == "" {
		return "Product Not Found"
	}
	return i.Product.ProductName
}

// Subtotal is quantity × price at purchase
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.PriceAtPurchase.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CanBeCancelled reports whether the shopper may request cancellation
func (o *Order) CanBeCancelled() bool {
	return o.Status.Is(OrderStatusPending) || o.Status.Is(OrderStatusProcessing)
}

// Backend is the orders resource of the grocery REST API
type Backend interface {
	FetchOrders(ctx context.Context) ([]Order, error)
	CancelOrder(ctx context.Context, orderID uint) error
}
