// internal/domain/cart/view.go
package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/Voidkillxx/FinalCaseStudy/internal/pkg/dialog"
	"github.com/Voidkillxx/FinalCaseStudy/internal/pkg/notice"
	"github.com/Voidkillxx/FinalCaseStudy/internal/pkg/pricing"
)

var (
	// ErrStockExceeded is matched by StockExceededError
	ErrStockExceeded = errors.New("quantity exceeds available stock")
	// ErrBusy rejects quantity changes while another cart call is in flight
	ErrBusy = errors.New("cart is updating, please wait")
)

// StockExceededError is raised before any backend call when an increase would
// go past the product's stock.
type StockExceededError struct {
	Stock       int
	ProductName string
}

func (e *StockExceededError) Error() string {
	return e.PublicMessage()
}

// PublicMessage is the text shown to the shopper
func (e *StockExceededError) PublicMessage() string {
	return fmt.Sprintf("Cannot add more than %d units of %s.", e.Stock, e.ProductName)
}

func (e *StockExceededError) Is(target error) bool {
	return target == ErrStockExceeded
}

// Page is the cart screen: every line rendered against one store, sharing a
// single removal dialog.
type Page struct {
	store   *Store
	removal *dialog.Confirmation[CartItem]
}

// NewPage binds a cart page to a store
func NewPage(store *Store) *Page {
	return &Page{
		store:   store,
		removal: dialog.New[CartItem](),
	}
}

// Store returns the backing cart store
func (p *Page) Store() *Store {
	return p.store
}

// Item returns the view for one cart line
func (p *Page) Item(itemID uint) (*ItemView, error) {
	if _, ok := p.store.Item(itemID); !ok {
		return nil, ErrItemNotFound
	}
	return &ItemView{page: p, itemID: itemID}, nil
}

// ConfirmRemove closes the removal dialog and deletes the pending line
func (p *Page) ConfirmRemove(ctx context.Context) (notice.Notice, error) {
	item, err := p.removal.Confirm()
	if err != nil {
		return notice.Notice{}, err
	}

	if err := p.store.RemoveFromCart(ctx, item.ID); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return notice.Warning(fmt.Sprintf("%s is no longer in your cart.", item.DisplayName())), err
		}
		return notice.Danger(notice.MessageOf(err, "Failed to remove item from cart.")), err
	}
	return notice.Success(fmt.Sprintf("%s was removed from your cart.", item.DisplayName())), nil
}

// CancelRemove closes the removal dialog without touching the cart
func (p *Page) CancelRemove() {
	p.removal.Cancel()
}

// PageView is the rendered cart screen
type PageView struct {
	Items         []ItemRender `json:"items"`
	SelectedItems []uint       `json:"selected_items"`
	SelectedTotal string       `json:"selected_total"`
	ItemCount     int          `json:"item_count"`
	Loading       bool         `json:"loading"`
	RemoveDialog  DialogView   `json:"remove_dialog"`
}

// pendingRemoval returns the line awaiting removal. A subject that a reload
// dropped from the cart closes the dialog.
func (p *Page) pendingRemoval() (CartItem, bool) {
	item, ok := p.removal.Pending()
	if !ok {
		return CartItem{}, false
	}
	if _, exists := p.store.Item(item.ID); !exists {
		p.removal.Cancel()
		return CartItem{}, false
	}
	return item, true
}

// DialogView describes the removal dialog
type DialogView struct {
	State  dialog.State `json:"state"`
	ItemID uint         `json:"item_id,omitempty"`
	Prompt string       `json:"prompt,omitempty"`
}

// Render builds the full cart view model
func (p *Page) Render() PageView {
	items := p.store.CartItems()
	rendered := make([]ItemRender, 0, len(items))
	for _, item := range items {
		rendered = append(rendered, p.renderItem(item))
	}

	view := PageView{
		Items:         rendered,
		SelectedItems: p.store.SelectedItems(),
		SelectedTotal: pricing.Peso(p.store.SelectedTotal()),
		ItemCount:     p.store.ItemCount(),
		Loading:       p.store.Loading(),
		RemoveDialog:  DialogView{State: dialog.Idle},
	}

	if item, ok := p.pendingRemoval(); ok {
		view.RemoveDialog = DialogView{
			State:  dialog.PendingConfirmation,
			ItemID: item.ID,
			Prompt: fmt.Sprintf("Remove %s from your cart?", item.DisplayName()),
		}
	}
	return view
}

// ItemRender is one rendered cart line. Prices are display strings only; the
// stored values are never rounded.
type ItemRender struct {
	ID               uint   `json:"id"`
	ProductName      string `json:"product_name"`
	ImageURL         string `json:"image_url"`
	Quantity         int    `json:"quantity"`
	Stock            int    `json:"stock"`
	UnitPrice        string `json:"unit_price"`
	LineTotal        string `json:"line_total"`
	Selected         bool   `json:"selected"`
	ControlsDisabled bool   `json:"controls_disabled"`
}

func (p *Page) renderItem(item CartItem) ItemRender {
	unit := pricing.SellingPrice(item.Product.Price, item.Product.Discount)
	return ItemRender{
		ID:               item.ID,
		ProductName:      item.DisplayName(),
		ImageURL:         item.Product.ImageURL,
		Quantity:         item.Quantity,
		Stock:            item.Product.Stock,
		UnitPrice:        pricing.Peso(unit),
		LineTotal:        pricing.Peso(pricing.LineTotal(item.Quantity, unit)),
		Selected:         p.store.IsSelected(item.ID),
		ControlsDisabled: p.store.Loading(),
	}
}

// ItemView handles the controls of a single cart line
type ItemView struct {
	page   *Page
	itemID uint
}

// Render returns the current rendering of the line
func (v *ItemView) Render() (ItemRender, error) {
	item, ok := v.page.store.Item(v.itemID)
	if !ok {
		return ItemRender{}, ErrItemNotFound
	}
	return v.page.renderItem(item), nil
}

// Increase adds one unit unless that would exceed stock, in which case no
// backend call is made. The controls are disabled while the store is loading.
func (v *ItemView) Increase(ctx context.Context) error {
	if v.page.store.Loading() {
		return ErrBusy
	}

	item, ok := v.page.store.Item(v.itemID)
	if !ok {
		return ErrItemNotFound
	}

	if item.Quantity+1 > item.Product.Stock {
		return &StockExceededError{Stock: item.Product.Stock, ProductName: item.Product.ProductName}
	}
	return v.page.store.IncreaseQuantity(ctx, item.ID)
}

// Decrease removes one unit. At quantity 1 it opens the removal dialog instead
// and reports true.
func (v *ItemView) Decrease(ctx context.Context) (bool, error) {
	if v.page.store.Loading() {
		return false, ErrBusy
	}

	item, ok := v.page.store.Item(v.itemID)
	if !ok {
		return false, ErrItemNotFound
	}

	if item.Quantity <= 1 {
		v.page.removal.Open(item)
		return true, nil
	}
	return false, v.page.store.DecreaseQuantity(ctx, item.ID)
}

// RequestRemove opens the removal dialog for this line
func (v *ItemView) RequestRemove() error {
	item, ok := v.page.store.Item(v.itemID)
	if !ok {
		return ErrItemNotFound
	}
	v.page.removal.Open(item)
	return nil
}

// ToggleSelect flips the line's checkout selection
func (v *ItemView) ToggleSelect() {
	v.page.store.ToggleSelectItem(v.itemID)
}
