// internal/domain/cart/store.go
package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Voidkillxx/FinalCaseStudy/internal/pkg/pricing"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	ErrItemNotFound         = errors.New("cart item not found")
	ErrInvalidQuantity      = errors.New("quantity must be at least 1")
	ErrConfirmationRequired = errors.New("removing the last unit requires confirmation")
)

// Store is the single source of truth for a shopper's cart. Every view of the
// cart reads the same snapshot, and a mutation becomes visible to all of them
// once the backend accepts it.
type Store struct {
	mu       sync.RWMutex
	backend  Backend
	logger   *logrus.Logger
	items    []CartItem
	selected []uint
	inflight int
}

// NewStore creates an empty cart store
func NewStore(backend Backend, logger *logrus.Logger) *Store {
	return &Store{
		backend: backend,
		logger:  logger,
	}
}

// Load replaces the cart with the backend's current contents
func (s *Store) Load(ctx context.Context) error {
	s.begin()
	defer s.end()

	items, err := s.backend.FetchCart(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to fetch cart")
		return fmt.Errorf("failed to fetch cart: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append([]CartItem(nil), items...)

	// Drop selections that point at lines which no longer exist
	kept := s.selected[:0]
	for _, id := range s.selected {
		if s.indexOf(id) >= 0 {
			kept = append(kept, id)
		}
	}
	s.selected = kept

	return nil
}

// AddToCart adds quantity units of a product, merging into an existing line
func (s *Store) AddToCart(ctx context.Context, productID uint, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	s.begin()
	defer s.end()

	item, err := s.backend.AddToCart(ctx, productID, quantity)
	if err != nil {
		s.logger.WithError(err).WithField("product_id", productID).Error("Failed to add item to cart")
		return fmt.Errorf("failed to add to cart: %w", err)
	}

	// Some backends answer with a bare message; pick the line up from a refetch
	if item == nil || item.ID == 0 {
		return s.Load(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexOf(item.ID); idx >= 0 {
		s.items[idx] = mergeLine(s.items[idx], *item)
	} else {
		s.items = append(s.items, *item)
	}
	return nil
}

// RemoveFromCart deletes a line and forgets its selection
func (s *Store) RemoveFromCart(ctx context.Context, itemID uint) error {
	if _, ok := s.Item(itemID); !ok {
		return ErrItemNotFound
	}

	s.begin()
	defer s.end()

	if err := s.backend.RemoveFromCart(ctx, itemID); err != nil {
		s.logger.WithError(err).WithField("item_id", itemID).Error("Failed to remove cart item")
		return fmt.Errorf("failed to remove item: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexOf(itemID); idx >= 0 {
		s.items = append(s.items[:idx], s.items[idx+1:]...)
	}
	s.deselect(itemID)
	return nil
}

// IncreaseQuantity adds one unit to a line. Stock is not checked here; see ItemView.
func (s *Store) IncreaseQuantity(ctx context.Context, itemID uint) error {
	item, ok := s.Item(itemID)
	if !ok {
		return ErrItemNotFound
	}
	return s.setQuantity(ctx, item, item.Quantity+1)
}

// DecreaseQuantity removes one unit from a line. A line at quantity 1 is never
// dropped here; the caller must confirm and call RemoveFromCart instead.
func (s *Store) DecreaseQuantity(ctx context.Context, itemID uint) error {
	item, ok := s.Item(itemID)
	if !ok {
		return ErrItemNotFound
	}
	if item.Quantity <= 1 {
		return ErrConfirmationRequired
	}
	return s.setQuantity(ctx, item, item.Quantity-1)
}

func (s *Store) setQuantity(ctx context.Context, item CartItem, quantity int) error {
	s.begin()
	defer s.end()

	updated, err := s.backend.UpdateQuantity(ctx, item.ID, quantity)
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"item_id":  item.ID,
			"quantity": quantity,
		}).Error("Failed to update cart quantity")
		return fmt.Errorf("failed to update quantity: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(item.ID)
	if idx < 0 {
		return nil
	}
	if updated != nil {
		if updated.Quantity <= 0 {
			updated.Quantity = quantity
		}
		s.items[idx] = mergeLine(s.items[idx], *updated)
	} else {
		s.items[idx].Quantity = quantity
	}
	return nil
}

// ToggleSelectItem flips a line in or out of the checkout selection
func (s *Store) ToggleSelectItem(itemID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.selected {
		if id == itemID {
			s.deselect(itemID)
			return
		}
	}
	if s.indexOf(itemID) >= 0 {
		s.selected = append(s.selected, itemID)
	}
}

// IsSelected reports whether a line is part of the checkout selection
func (s *Store) IsSelected(itemID uint) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.selected {
		if id == itemID {
			return true
		}
	}
	return false
}

// CartItems returns a copy of the cart lines
func (s *Store) CartItems() []CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]CartItem(nil), s.items...)
}

// SelectedItems returns the selected line ids in selection order
func (s *Store) SelectedItems() []uint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]uint(nil), s.selected...)
}

// Loading is true while any backend call started by the store is in flight
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inflight > 0
}

// Item looks up a single line
func (s *Store) Item(itemID uint) (CartItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := s.indexOf(itemID); idx >= 0 {
		return s.items[idx], true
	}
	return CartItem{}, false
}

// ItemCount is the total number of units across all lines
func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// SelectedTotal sums the line totals of the selected lines at selling price
func (s *Store) SelectedTotal() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, id := range s.selected {
		idx := s.indexOf(id)
		if idx < 0 {
			continue
		}
		item := s.items[idx]
		unit := pricing.SellingPrice(item.Product.Price, item.Product.Discount)
		total = total.Add(pricing.LineTotal(item.Quantity, unit))
	}
	return total
}

// Clear forgets all lines and selections without calling the backend
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.selected = nil
}

func (s *Store) begin() {
	s.mu.Lock()
	s.inflight++
	s.mu.Unlock()
}

func (s *Store) end() {
	s.mu.Lock()
	s.inflight--
	s.mu.Unlock()
}

// indexOf must be called with mu held
func (s *Store) indexOf(itemID uint) int {
	for i, item := range s.items {
		if item.ID == itemID {
			return i
		}
	}
	return -1
}

// deselect must be called with mu held
func (s *Store) deselect(itemID uint) {
	for i, id := range s.selected {
		if id == itemID {
			s.selected = append(s.selected[:i], s.selected[i+1:]...)
			return
		}
	}
}

// mergeLine applies a backend response to a line, keeping the known product
// when the response omits it.
func mergeLine(current, updated CartItem) CartItem {
	if updated.ID == 0 {
		updated.ID = current.ID
	}
	if updated.Product.ID == 0 && updated.Product.ProductName == "" {
		updated.Product = current.Product
	}
	if updated.ProductID == 0 {
		updated.ProductID = current.ProductID
	}
	if updated.Quantity <= 0 {
		updated.Quantity = current.Quantity
	}
	return updated
}
