// internal/domain/cart/entity.go
package cart

import (
	"context"

	"github.com/shopspring/decimal"
)

// Product is the catalog record embedded in a cart line. The cart never edits it.
type Product struct {
	ID          uint            `json:"id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	Discount    decimal.Decimal `json:"discount"` // percent, 0-100
	Stock       int             `json:"stock"`
	ImageURL    string          `json:"image_url"`
}

// CartItem is one line of the shopper's cart
type CartItem struct {
	ID        uint    `json:"id"`
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Product   Product `json:"product"`
}

// DisplayName returns the product name shown for the line
func (i CartItem) DisplayName() string {
	if i.Product.ProductName == "" {
		return "Unknown Product"
	}
	return i.Product.ProductName
}

// Backend is the cart resource of the grocery REST API
type Backend interface {
	FetchCart(ctx context.Context) ([]CartItem, error)
	AddToCart(ctx context.Context, productID uint, quantity int) (*CartItem, error)
	UpdateQuantity(ctx context.Context, itemID uint, quantity int) (*CartItem, error)
	RemoveFromCart(ctx context.Context, itemID uint) error
}
