package session

import (
	"errors"
	"sync"
)

// ErrNotOwned is returned when an operation requires a handle in the Owned
// state but the handle has been relinquished, lost, or never claimed.
var ErrNotOwned = errors.New("session handle does not hold ownership")

// State is the position of a Handle in the ownership lifecycle.
type State string

const (
	Unclaimed     State = "unclaimed"
	Claiming      State = "claiming"
	Owned         State = "owned"
	Relinquishing State = "relinquishing"
	Lost          State = "lost"
)

// Handle is an exclusively-owned session credential. It wraps the opaque
// token issued by the backend together with the persist intent it was
// claimed with. A Handle becomes invalid the instant the backend reports
// loss of ownership.
type Handle struct {
	mu      sync.Mutex
	token   string
	state   State
	persist bool
}

// Token returns the opaque ownership token, or "" when not owned.
func (h *Handle) Token() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != Owned && h.state != Relinquishing {
		return ""
	}
	return h.token
}

// State returns the handle's current lifecycle state.
func (h *Handle) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Owned reports whether the handle currently holds exclusive access.
func (h *Handle) Owned() bool {
	return h.State() == Owned
}

// Persist returns the persist intent the session was claimed with.
func (h *Handle) Persist() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.persist
}

// MarkLost transitions the handle to Lost. Callers invoke it when the
// backend rejects the token; every subsequent operation through the handle
// fails with ErrNotOwned until a fresh claim is made.
func (h *Handle) MarkLost() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = ""
	h.state = Lost
}

func (h *Handle) transition(from, to State) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != from {
		return false
	}
	h.state = to
	return true
}

func (h *Handle) setOwned(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = token
	h.state = Owned
}

func (h *Handle) setUnclaimed() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = ""
	h.state = Unclaimed
}
