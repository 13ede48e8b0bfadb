// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/Voidkillxx/FinalCaseStudy/internal/domain/cart"
	"github.com/Voidkillxx/FinalCaseStudy/internal/pkg/dialog"
	"github.com/Voidkillxx/FinalCaseStudy/internal/pkg/notice"
	"github.com/gin-gonic/gin"
)

// CartHandler handles cart endpoints
type CartHandler struct{}

// NewCartHandler creates a new cart handler
func NewCartHandler() *CartHandler {
	return &CartHandler{}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}
	respond(c, "Cart retrieved successfully", notice.Notice{}, ws.CartPage().Render())
}

// RefreshCart handles POST /cart/refresh
func (h *CartHandler) RefreshCart(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	page := ws.CartPage()
	if err := page.Store().Load(c.Request.Context()); err != nil {
		respondFailure(c, err, notice.Danger(notice.MessageOf(err, "Failed to load your cart.")), page.Render())
		return
	}
	respond(c, "Cart refreshed", notice.Notice{}, page.Render())
}

type addToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	page := ws.CartPage()
	if err := page.Store().AddToCart(c.Request.Context(), req.ProductID, req.Quantity); err != nil {
		respondFailure(c, err, notice.Danger(notice.MessageOf(err, "Failed to add item to cart.")), page.Render())
		return
	}
	respond(c, "Item added to cart successfully", notice.Success("Item added to cart."), page.Render())
}

// item resolves the :id line, writing a 404 when it is not in the cart
func (h *CartHandler) item(c *gin.Context) (*cart.Page, *cart.ItemView, bool) {
	ws, ok := workspace(c)
	if !ok {
		return nil, nil, false
	}
	itemID, ok := parseID(c, "id", "cart item")
	if !ok {
		return nil, nil, false
	}

	page := ws.CartPage()
	view, err := page.Item(itemID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Cart item not found",
		})
		return nil, nil, false
	}
	return page, view, true
}

// IncreaseQuantity handles POST /cart/items/:id/increase
func (h *CartHandler) IncreaseQuantity(c *gin.Context) {
	page, view, ok := h.item(c)
	if !ok {
		return
	}

	err := view.Increase(c.Request.Context())
	switch {
	case err == nil:
		respond(c, "Quantity updated", notice.Notice{}, page.Render())
	case errors.Is(err, cart.ErrBusy):
		respondBusy(c, page)
	case errors.Is(err, cart.ErrStockExceeded):
		n := notice.Warning(notice.MessageOf(err, "Not enough stock."))
		c.JSON(http.StatusConflict, gin.H{
			"error":  n.Message,
			"notice": n,
			"data":   page.Render(),
		})
	default:
		respondFailure(c, err, notice.Danger(notice.MessageOf(err, "Failed to update quantity.")), page.Render())
	}
}

// DecreaseQuantity handles POST /cart/items/:id/decrease. At quantity one the
// removal dialog opens instead.
func (h *CartHandler) DecreaseQuantity(c *gin.Context) {
	page, view, ok := h.item(c)
	if !ok {
		return
	}

	opened, err := view.Decrease(c.Request.Context())
	if errors.Is(err, cart.ErrBusy) {
		respondBusy(c, page)
		return
	}
	if err != nil {
		respondFailure(c, err, notice.Danger(notice.MessageOf(err, "Failed to update quantity.")), page.Render())
		return
	}

	message := "Quantity updated"
	if opened {
		message = "Confirm removal"
	}
	respond(c, message, notice.Notice{}, page.Render())
}

// RequestRemove handles POST /cart/items/:id/remove
func (h *CartHandler) RequestRemove(c *gin.Context) {
	page, view, ok := h.item(c)
	if !ok {
		return
	}

	if err := view.RequestRemove(); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Cart item not found",
		})
		return
	}
	respond(c, "Confirm removal", notice.Notice{}, page.Render())
}

// ToggleSelect handles POST /cart/items/:id/select
func (h *CartHandler) ToggleSelect(c *gin.Context) {
	page, view, ok := h.item(c)
	if !ok {
		return
	}
	view.ToggleSelect()
	respond(c, "Selection updated", notice.Notice{}, page.Render())
}

// ConfirmRemove handles POST /cart/dialog/confirm
func (h *CartHandler) ConfirmRemove(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	page := ws.CartPage()
	n, err := page.ConfirmRemove(c.Request.Context())
	switch {
	case err == nil:
		respond(c, "Item removed from cart successfully", n, page.Render())
	case errors.Is(err, dialog.ErrNotPending):
		c.JSON(http.StatusConflict, gin.H{
			"error": "No removal is awaiting confirmation",
			"data":  page.Render(),
		})
	default:
		respondFailure(c, err, n, page.Render())
	}
}

// CancelRemove handles POST /cart/dialog/cancel
func (h *CartHandler) CancelRemove(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	page := ws.CartPage()
	page.CancelRemove()
	respond(c, "Removal cancelled", notice.Notice{}, page.Render())
}

// respondBusy turns away a quantity change while the cart is still updating
func respondBusy(c *gin.Context, page *cart.Page) {
	n := notice.Info("Your cart is still updating. Please try again.")
	c.JSON(http.StatusConflict, gin.H{
		"error":  n.Message,
		"notice": n,
		"data":   page.Render(),
	})
}
