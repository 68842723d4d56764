// Package optimistic tracks tentative view-state mutations against a shared
// collection: apply locally first, commit or roll back once the backing
// write settles.
package optimistic

import "errors"

// ErrPending is returned when a mutation is started while another one is
// still in flight for the same collection. Callers are expected to disable
// the initiating gesture while Pending.
var ErrPending = errors.New("a mutation is already pending")

type State int

const (
	Idle State = iota
	Pending
	Committed
	RolledBack
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Committed:
		return "committed"
	case RolledBack:
		return "rolled back"
	}
	return "unknown"
}

// Controller holds the locally rendered view of one collection and the state
// of its single in-flight mutation. The view is ground truth for rendering
// at all times: Apply replaces it immediately, Commit keeps or refreshes it,
// Rollback discards it for an authoritative snapshot.
type Controller[S any] struct {
	state   State
	view    S
	onError func(error)
}

// New seeds the controller with the authoritative view. onError fires on
// rollback and may be nil.
func New[S any](initial S, onError func(error)) *Controller[S] {
	return &Controller[S]{state: Idle, view: initial, onError: onError}
}

func (c *Controller[S]) View() S {
	return c.view
}

func (c *Controller[S]) State() State {
	return c.state
}

// Busy reports whether a mutation is awaiting its terminal state.
func (c *Controller[S]) Busy() bool {
	return c.state == Pending
}

// Reset replaces the view outside any mutation, e.g. after a plain refetch.
func (c *Controller[S]) Reset(view S) {
	if c.state == Pending {
		return
	}
	c.state = Idle
	c.view = view
}

// Apply renders the tentative state and marks the mutation Pending. The
// caller then issues the durable write and settles with Commit or Rollback.
func (c *Controller[S]) Apply(next S) error {
	if c.state == Pending {
		return ErrPending
	}
	c.state = Pending
	c.view = next
	return nil
}

// Commit keeps the tentative state, refreshed from the authoritative
// response.
func (c *Controller[S]) Commit(authoritative S) {
	if c.state != Pending {
		return
	}
	c.state = Committed
	c.view = authoritative
}

// Rollback replaces the view with a freshly fetched authoritative snapshot
// (not a negation of the tentative change) and reports the cause.
func (c *Controller[S]) Rollback(snapshot S, cause error) {
	if c.state != Pending {
		return
	}
	c.state = RolledBack
	c.view = snapshot
	if c.onError != nil && cause != nil {
		c.onError(cause)
	}
}
