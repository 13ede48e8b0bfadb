package dialog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmation_Lifecycle(t *testing.T) {
	d := New[int]()
	assert.Equal(t, Idle, d.State())

	_, err := d.Confirm()
	assert.ErrorIs(t, err, ErrNotPending)

	d.Open(42)
	assert.Equal(t, PendingConfirmation, d.State())
	subject, ok := d.Pending()
	assert.True(t, ok)
	assert.Equal(t, 42, subject)

	got, err := d.Confirm()
	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, Idle, d.State())

	_, err = d.Confirm()
	assert.ErrorIs(t, err, ErrNotPending, "confirm fires at most once per open")
}

func TestConfirmation_CancelHasNoSubject(t *testing.T) {
	d := New[string]()
	d.Open("order-7")
	d.Cancel()

	subject, ok := d.Pending()
	assert.False(t, ok)
	assert.Empty(t, subject)
	assert.Equal(t, "idle", d.State().String())
}

func TestConfirmation_ReopenReplacesSubject(t *testing.T) {
	d := New[int]()
	d.Open(1)
	d.Open(2)

	got, err := d.Confirm()
	require.NoError(t, err)
	assert.Equal(t, 2, got)
}

func TestState_MarshalText(t *testing.T) {
	b, err := PendingConfirmation.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "pending_confirmation", string(b))
}
