package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tobheim/patchbay/internal/logging"
	"github.com/tobheim/patchbay/pkg/domain"
	"github.com/tobheim/patchbay/pkg/ports"
)

// ClaimOptions are the intent flags of an ownership claim.
type ClaimOptions struct {
	// Force invalidates a prior holder's token server-side; that holder
	// observes domain.ErrOwnershipLost on its next operation.
	Force bool

	// IgnoreBusy proceeds with the claim despite an existing session.
	IgnoreBusy bool

	// Persist asks the device to retain slot and routing state across the
	// relinquish/re-claim cycle.
	Persist bool
}

// Manager drives the ownership state machine against a device backend.
// Managers hold no cross-device state; independent devices are driven
// through independent Managers and Handles.
type Manager struct {
	backend ports.DeviceBackend
	logger  *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a logger for session lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a session manager for one device backend.
func NewManager(backend ports.DeviceBackend, opts ...Option) *Manager {
	m := &Manager{
		backend: backend,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Claim acquires exclusive ownership and returns a fresh Handle in the Owned
// state. A domain.ErrBusy result is a semantic rejection from the device and
// is never retried here; transient network faults may be retried by the
// caller.
func (m *Manager) Claim(ctx context.Context, opts ClaimOptions) (*Handle, error) {
	h := &Handle{state: Claiming, persist: opts.Persist}

	token, err := m.backend.ClaimOwnership(ctx, ports.ClaimRequest{
		Force:      opts.Force,
		IgnoreBusy: opts.IgnoreBusy,
		Persist:    opts.Persist,
	})
	if err != nil {
		h.setUnclaimed()
		if errors.Is(err, domain.ErrBusy) {
			m.logger.Info("claim rejected: device busy", "force", opts.Force, "ignore_busy", opts.IgnoreBusy)
			return nil, err
		}
		return nil, fmt.Errorf("claim ownership: %w", err)
	}

	h.setOwned(token)
	m.logger.Debug("ownership claimed", "persist", opts.Persist)
	return h, nil
}

// Relinquish releases ownership and invalidates the handle's token. Valid
// from the Owned state (or a previous Relinquish attempt that failed on a
// network fault). A handle the backend already invalidated moves to Lost.
func (m *Manager) Relinquish(ctx context.Context, h *Handle) error {
	if !h.transition(Owned, Relinquishing) && h.State() != Relinquishing {
		return ErrNotOwned
	}

	if err := m.backend.RelinquishOwnership(ctx, h.Token()); err != nil {
		if errors.Is(err, domain.ErrOwnershipLost) {
			h.MarkLost()
			return err
		}
		// Handle stays in Relinquishing; the caller may retry.
		return fmt.Errorf("relinquish ownership: %w", err)
	}

	h.setUnclaimed()
	m.logger.Debug("ownership relinquished")
	return nil
}

// WithSession claims ownership, runs fn with the owned handle, and
// guarantees the claim is released on every exit path: normal completion,
// error return, panic, and context cancellation. The release uses a context
// detached from ctx's cancellation so an aborted deployment still frees the
// device.
//
// If fn loses ownership (the handle is in Lost when fn returns), there is
// nothing left to release and the loss error propagates unchanged.
func (m *Manager) WithSession(ctx context.Context, opts ClaimOptions, fn func(ctx context.Context, h *Handle) error) error {
	h, err := m.Claim(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if h.State() == Lost {
			return
		}
		if err := m.Relinquish(context.WithoutCancel(ctx), h); err != nil {
			m.logger.Warn("failed to release session", "err", err)
		}
	}()

	return fn(ctx, h)
}
