// Package navigation holds the state behind the storefront's top bar.
package navigation

import (
	"strconv"
	"strings"
	"sync"

	"github.com/Voidkillxx/FinalCaseStudy/internal/domain/user"
	"github.com/Voidkillxx/FinalCaseStudy/internal/pkg/dialog"
)

// Destination is a page that needs a signed-in shopper
type Destination string

const (
	DestinationCart   Destination = "cart"
	DestinationOrders Destination = "orders"
)

// maxBadge is the largest count the cart badge shows exactly
const maxBadge = 99

// LoginRequiredError is returned when a guest opens a signed-in page
type LoginRequiredError struct {
	Destination Destination
}

func (e *LoginRequiredError) Error() string {
	return "login required for " + string(e.Destination)
}

// PublicMessage is the warning shown to the shopper
func (e *LoginRequiredError) PublicMessage() string {
	switch e.Destination {
	case DestinationOrders:
		return "Please log in to view your order history."
	default:
		return "Please log in to view the cart."
	}
}

// Gate lets signed-in shoppers through and turns guests away with a warning
func Gate(dest Destination, current *user.User) error {
	if current == nil {
		return &LoginRequiredError{Destination: dest}
	}
	return nil
}

// BadgeText renders the cart count badge
func BadgeText(count int) string {
	if count > maxBadge {
		return strconv.Itoa(maxBadge) + "+"
	}
	return strconv.Itoa(count)
}

// Navbar keeps the search term and the logout prompt
type Navbar struct {
	mu         sync.Mutex
	searchTerm string
	logout     *dialog.Confirmation[struct{}]
}

// NewNavbar creates a navbar with an empty search
func NewNavbar() *Navbar {
	return &Navbar{logout: dialog.New[struct{}]()}
}

// SetSearchTerm updates the product search box
func (n *Navbar) SetSearchTerm(term string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.searchTerm = strings.TrimSpace(term)
}

// SearchTerm returns the current search text
func (n *Navbar) SearchTerm() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.searchTerm
}

// ResetFilters clears the search, as clicking the logo or a nav link does
func (n *Navbar) ResetFilters() {
	n.SetSearchTerm("")
}

// RequestLogout opens the logout prompt
func (n *Navbar) RequestLogout() {
	n.logout.Open(struct{}{})
}

// CancelLogout closes the prompt and stays signed in
func (n *Navbar) CancelLogout() {
	n.logout.Cancel()
}

// ConfirmLogout closes the prompt; the caller then ends the session
func (n *Navbar) ConfirmLogout() error {
	_, err := n.logout.Confirm()
	return err
}

// View is the rendered navbar
type View struct {
	LoggedIn      bool         `json:"logged_in"`
	DisplayName   string       `json:"display_name,omitempty"`
	ShowAdminLink bool         `json:"show_admin_link"`
	HomePath      string       `json:"home_path"`
	SearchTerm    string       `json:"search_term"`
	CartCount     int          `json:"cart_count"`
	CartBadge     string       `json:"cart_badge"`
	LogoutDialog  dialog.State `json:"logout_dialog"`
}

// Render builds the navbar for the current shopper and cart unit count
func (n *Navbar) Render(current *user.User, cartCount int) View {
	view := View{
		HomePath:     "/",
		SearchTerm:   n.SearchTerm(),
		CartCount:    cartCount,
		CartBadge:    BadgeText(cartCount),
		LogoutDialog: n.logout.State(),
	}

	if current != nil {
		view.LoggedIn = true
		view.DisplayName = current.GetDisplayName()
		view.ShowAdminLink = current.IsAdmin
		if current.IsAdmin {
			view.HomePath = "/admin"
		}
	}
	return view
}
