// internal/interfaces/http/handlers/product.go
package handlers

import (
	"github.com/Voidkillxx/FinalCaseStudy/internal/domain/cart"
	"github.com/Voidkillxx/FinalCaseStudy/internal/pkg/notice"
	"github.com/Voidkillxx/FinalCaseStudy/internal/pkg/pricing"
	"github.com/gin-gonic/gin"
)

// ProductHandler serves the catalog search behind the navbar
type ProductHandler struct{}

// NewProductHandler creates a new product handler
func NewProductHandler() *ProductHandler {
	return &ProductHandler{}
}

// ProductView is one catalog card
type ProductView struct {
	ID           uint   `json:"id"`
	ProductName  string `json:"product_name"`
	ImageURL     string `json:"image_url"`
	Price        string `json:"price"`
	SellingPrice string `json:"selling_price"`
	Discount     string `json:"discount,omitempty"`
	Stock        int    `json:"stock"`
	InStock      bool   `json:"in_stock"`
}

func renderProduct(p cart.Product) ProductView {
	view := ProductView{
		ID:           p.ID,
		ProductName:  p.ProductName,
		ImageURL:     p.ImageURL,
		Price:        pricing.Peso(p.Price),
		SellingPrice: pricing.Peso(pricing.SellingPrice(p.Price, p.Discount)),
		Stock:        p.Stock,
		InStock:      p.Stock > 0,
	}
	if p.Discount.IsPositive() {
		view.Discount = p.Discount.String() + "%"
	}
	return view
}

// ListProducts handles GET /products. Without ?search= the navbar's current
// term is used.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	term, given := c.GetQuery("search")
	if given {
		ws.Navbar().SetSearchTerm(term)
	}
	term = ws.Navbar().SearchTerm()

	products, err := ws.Backend().SearchProducts(c.Request.Context(), term)
	if err != nil {
		respondFailure(c, err, notice.Danger(notice.MessageOf(err, "Failed to load products.")), nil)
		return
	}

	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, renderProduct(p))
	}

	respond(c, "Products retrieved successfully", notice.Notice{}, gin.H{
		"search_term": term,
		"products":    views,
	})
}
