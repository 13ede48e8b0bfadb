package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Voidkillxx/FinalCaseStudy/internal/domain/cart"
)

type cartItemRequest struct {
	ProductID uint `json:"product_id,omitempty"`
	Quantity  int  `json:"quantity"`
}

// FetchCart lists the shopper's cart lines
func (c *Client) FetchCart(ctx context.Context) ([]cart.CartItem, error) {
	var items []cart.CartItem
	if err := c.do(ctx, http.MethodGet, "/cart", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AddToCart adds units of a product; the backend merges into an existing line
func (c *Client) AddToCart(ctx context.Context, productID uint, quantity int) (*cart.CartItem, error) {
	var item cart.CartItem
	req := cartItemRequest{ProductID: productID, Quantity: quantity}
	if err := c.do(ctx, http.MethodPost, "/cart", req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateQuantity sets a line's quantity
func (c *Client) UpdateQuantity(ctx context.Context, itemID uint, quantity int) (*cart.CartItem, error) {
	var item cart.CartItem
	req := cartItemRequest{Quantity: quantity}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/cart/%d", itemID), req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveFromCart deletes a line
func (c *Client) RemoveFromCart(ctx context.Context, itemID uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/cart/%d", itemID), nil, nil)
}

// SearchProducts queries the catalog; an empty term lists everything
func (c *Client) SearchProducts(ctx context.Context, term string) ([]cart.Product, error) {
	path := "/products"
	if q := escape(term); q != "" {
		path += "?search=" + q
	}

	var products []cart.Product
	if err := c.do(ctx, http.MethodGet, path, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}
