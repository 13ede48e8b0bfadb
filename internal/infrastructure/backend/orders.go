package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Voidkillxx/FinalCaseStudy/internal/domain/order"
)

// FetchOrders lists every order of the signed-in shopper
func (c *Client) FetchOrders(ctx context.Context) ([]order.Order, error) {
	var orders []order.Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// CancelOrder asks the backend to cancel an order and restore its stock
func (c *Client) CancelOrder(ctx context.Context, orderID uint) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/orders/%d/cancel", orderID), nil, nil)
}
