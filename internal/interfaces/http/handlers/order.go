// internal/interfaces/http/handlers/order.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/Voidkillxx/FinalCaseStudy/internal/domain/order"
	"github.com/Voidkillxx/FinalCaseStudy/internal/pkg/dialog"
	"github.com/Voidkillxx/FinalCaseStudy/internal/pkg/notice"
	"github.com/gin-gonic/gin"
)

// OrderHandler handles order history endpoints
type OrderHandler struct{}

// NewOrderHandler creates a new order handler
func NewOrderHandler() *OrderHandler {
	return &OrderHandler{}
}

// GetOrders handles GET /orders?status=. Switching tabs never refetches.
func (h *OrderHandler) GetOrders(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	history := ws.Orders()
	if status, given := c.GetQuery("status"); given {
		filter, err := order.ParseFilter(status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid status filter",
			})
			return
		}
		history.SetFilter(filter)
	}

	respond(c, "Orders retrieved successfully", notice.Notice{}, history.Render())
}

// RefreshOrders handles POST /orders/refresh
func (h *OrderHandler) RefreshOrders(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	history := ws.Orders()
	if err := history.Load(c.Request.Context()); err != nil {
		view := history.Render()
		respondFailure(c, err, notice.Danger(view.Error), view)
		return
	}
	respond(c, "Orders refreshed", notice.Notice{}, history.Render())
}

// RequestCancel handles POST /orders/:id/cancel
func (h *OrderHandler) RequestCancel(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}
	orderID, ok := parseID(c, "id", "order")
	if !ok {
		return
	}

	history := ws.Orders()
	err := history.RequestCancel(orderID)
	switch {
	case err == nil:
		respond(c, "Confirm cancellation", notice.Notice{}, history.Render())
	case errors.Is(err, order.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Order not found",
		})
	case errors.Is(err, order.ErrNotCancellable):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Only pending or processing orders can be cancelled",
			"data":  history.Render(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to start cancellation",
		})
	}
}

// ConfirmCancel handles POST /orders/cancel/confirm
func (h *OrderHandler) ConfirmCancel(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	history := ws.Orders()
	n, err := history.ConfirmCancel(c.Request.Context())
	switch {
	case err == nil:
		respond(c, "Order cancelled successfully", n, history.Render())
	case errors.Is(err, dialog.ErrNotPending):
		c.JSON(http.StatusConflict, gin.H{
			"error": "No cancellation is awaiting confirmation",
			"data":  history.Render(),
		})
	default:
		respondFailure(c, err, n, history.Render())
	}
}

// DeclineCancel handles POST /orders/cancel/decline
func (h *OrderHandler) DeclineCancel(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	history := ws.Orders()
	history.DeclineCancel()
	respond(c, "Cancellation dismissed", notice.Notice{}, history.Render())
}
