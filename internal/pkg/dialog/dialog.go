// Package dialog models confirm-then-mutate prompts. A dialog is either Idle or
// PendingConfirmation; the guarded mutation runs only on the confirm transition.
package dialog

import (
	"errors"
	"sync"
)

// ErrNotPending is returned when confirming a dialog that is not open
var ErrNotPending = errors.New("no confirmation is pending")

// State of a confirmation dialog
type State int

const (
	Idle State = iota
	PendingConfirmation
)

func (s State) String() string {
	switch s {
	case PendingConfirmation:
		return "pending_confirmation"
	default:
		return "idle"
	}
}

// MarshalText renders the state name in JSON view models
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Confirmation holds the subject awaiting a yes/no answer
type Confirmation[T any] struct {
	mu      sync.Mutex
	state   State
	subject T
}

// New returns an idle confirmation dialog
func New[T any]() *Confirmation[T] {
	return &Confirmation[T]{}
}

// Open moves the dialog to PendingConfirmation for subject. Opening an already
// open dialog replaces the subject.
func (d *Confirmation[T]) Open(subject T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = PendingConfirmation
	d.subject = subject
}

// Cancel closes the dialog without side effects
func (d *Confirmation[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reset()
}

// Confirm closes the dialog and hands back the subject the caller must act on
func (d *Confirmation[T]) Confirm() (T, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != PendingConfirmation {
		var zero T
		return zero, ErrNotPending
	}

	subject := d.subject
	d.reset()
	return subject, nil
}

// Pending returns the subject awaiting confirmation, if any
func (d *Confirmation[T]) Pending() (T, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.subject, d.state == PendingConfirmation
}

// State returns the current dialog state
func (d *Confirmation[T]) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *Confirmation[T]) reset() {
	var zero T
	d.state = Idle
	d.subject = zero
}
