package navigation

import (
	"testing"

	"github.com/Voidkillxx/FinalCaseStudy/internal/domain/user"
	"github.com/Voidkillxx/FinalCaseStudy/internal/pkg/dialog"
	"github.com/Voidkillxx/FinalCaseStudy/internal/pkg/notice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBadgeText(t *testing.T) {
	assert.Equal(t, "0", BadgeText(0))
	assert.Equal(t, "99", BadgeText(99))
	assert.Equal(t, "99+", BadgeText(100))
}

func TestGate(t *testing.T) {
	assert.NoError(t, Gate(DestinationCart, &user.User{ID: 1}))

	err := Gate(DestinationCart, nil)
	require.Error(t, err)
	assert.Equal(t, "Please log in to view the cart.", notice.MessageOf(err, ""))

	err = Gate(DestinationOrders, nil)
	require.Error(t, err)
	assert.Equal(t, "Please log in to view your order history.", notice.MessageOf(err, ""))
}

func TestNavbar_Render(t *testing.T) {
	n := NewNavbar()
	n.SetSearchTerm("  apples ")

	guest := n.Render(nil, 3)
	assert.False(t, guest.LoggedIn)
	assert.Equal(t, "apples", guest.SearchTerm)
	assert.Equal(t, "3", guest.CartBadge)
	assert.Equal(t, "/", guest.HomePath)

	admin := n.Render(&user.User{FirstName: "Jake", IsAdmin: true}, 150)
	assert.True(t, admin.LoggedIn)
	assert.True(t, admin.ShowAdminLink)
	assert.Equal(t, "/admin", admin.HomePath)
	assert.Equal(t, "99+", admin.CartBadge)
	assert.Equal(t, "Jake", admin.DisplayName)

	n.ResetFilters()
	assert.Empty(t, n.SearchTerm())
}

func TestNavbar_LogoutDialog(t *testing.T) {
	n := NewNavbar()
	assert.ErrorIs(t, n.ConfirmLogout(), dialog.ErrNotPending)

	n.RequestLogout()
	assert.Equal(t, dialog.PendingConfirmation, n.Render(nil, 0).LogoutDialog)

	n.CancelLogout()
	assert.Equal(t, dialog.Idle, n.Render(nil, 0).LogoutDialog)

	n.RequestLogout()
	assert.NoError(t, n.ConfirmLogout())
	assert.Equal(t, dialog.Idle, n.Render(nil, 0).LogoutDialog)
}
