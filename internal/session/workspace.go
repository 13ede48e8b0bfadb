// internal/session/workspace.go
package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Voidkillxx/FinalCaseStudy/internal/domain/cart"
	"github.com/Voidkillxx/FinalCaseStudy/internal/domain/navigation"
	"github.com/Voidkillxx/FinalCaseStudy/internal/domain/order"
	"github.com/Voidkillxx/FinalCaseStudy/internal/domain/registration"
	"github.com/Voidkillxx/FinalCaseStudy/internal/domain/user"
	"github.com/sirupsen/logrus"
)

// Backend is everything a workspace needs from the grocery API
type Backend interface {
	cart.Backend
	order.Backend
	registration.Backend
	Login(ctx context.Context, email, password string) (*user.AuthResult, error)
	SearchProducts(ctx context.Context, term string) ([]cart.Product, error)
}

// ClientFactory returns a backend bound to a bearer token; "" is anonymous
type ClientFactory func(token string) Backend

// Workspace is one browser session's view state
type Workspace struct {
	id        string
	createdAt time.Time
	logger    *logrus.Logger
	lastSeen  atomic.Int64

	mu           sync.RWMutex
	user         *user.User
	backend      Backend
	cart         *cart.Store
	cartPage     *cart.Page
	orders       *order.History
	registration *registration.Flow
	navbar       *navigation.Navbar
}

func newWorkspace(id string, createdAt time.Time, anonymous Backend, logger *logrus.Logger) *Workspace {
	w := &Workspace{
		id:           id,
		createdAt:    createdAt,
		logger:       logger,
		registration: registration.NewFlow(anonymous, logger),
		navbar:       navigation.NewNavbar(),
	}
	w.bind(anonymous, nil)
	w.touch()
	return w
}

func (w *Workspace) touch() {
	w.lastSeen.Store(time.Now().UnixNano())
}

// LastSeen returns when the session was last resolved
func (w *Workspace) LastSeen() time.Time {
	return time.Unix(0, w.lastSeen.Load())
}

// bind swaps the credentialed views over to a new backend. Cart and history
// start empty; the caller loads them.
func (w *Workspace) bind(backend Backend, current *user.User) {
	store := cart.NewStore(backend, w.logger)
	w.user = current
	w.backend = backend
	w.cart = store
	w.cartPage = cart.NewPage(store)
	w.orders = order.NewHistory(backend, w.logger)
}

// ID returns the session id
func (w *Workspace) ID() string {
	return w.id
}

// CreatedAt returns when the session started
func (w *Workspace) CreatedAt() time.Time {
	return w.createdAt
}

// User returns a copy of the signed-in shopper, nil for guests
func (w *Workspace) User() *user.User {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.user == nil {
		return nil
	}
	u := *w.user
	return &u
}

// LoggedIn reports whether backend credentials are attached
func (w *Workspace) LoggedIn() bool {
	return w.User() != nil
}

// Backend returns the client the session currently talks through
func (w *Workspace) Backend() Backend {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.backend
}

// Cart returns the cart store bound to the current credentials
func (w *Workspace) Cart() *cart.Store {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.cart
}

// CartPage returns the cart screen over Cart
func (w *Workspace) CartPage() *cart.Page {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.cartPage
}

// Orders returns the order history bound to the current credentials
func (w *Workspace) Orders() *order.History {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.orders
}

// Registration returns the sign-up flow. It always talks to the backend
// anonymously and survives login.
func (w *Workspace) Registration() *registration.Flow {
	return w.registration
}

// Navbar returns the session's navigation state
func (w *Workspace) Navbar() *navigation.Navbar {
	return w.navbar
}

// Gate checks that the shopper may open dest
func (w *Workspace) Gate(dest navigation.Destination) error {
	return navigation.Gate(dest, w.User())
}

// RenderNav draws the navbar with the live cart count
func (w *Workspace) RenderNav() navigation.View {
	return w.navbar.Render(w.User(), w.Cart().ItemCount())
}
