package ports

import (
	"context"

	"github.com/tobheim/patchbay/pkg/domain"
)

// ClaimRequest carries the intent flags of an ownership claim.
type ClaimRequest struct {
	// Force invalidates a prior holder's token server-side. That holder
	// observes domain.ErrOwnershipLost on its next write.
	Force bool

	// IgnoreBusy proceeds with the claim even if the device reports itself
	// busy with an existing session.
	IgnoreBusy bool

	// Persist asks the device to retain slot and routing state across the
	// relinquish/re-claim cycle. Without it, relinquish resets the device.
	Persist bool
}

// DeviceBackend is the remote device capability consumed by the core.
//
// Write operations carry the ownership token from a successful claim; the
// backend rejects a stale token with domain.ErrOwnershipLost. Inspection
// calls (GetInstruments, GetConnections) need no ownership, which lets a
// client re-query true device state after a timeout left its mirror
// indeterminate.
//
// All calls are blocking and honor context cancellation. Implementations
// report faults through the shared error taxonomy in pkg/domain.
type DeviceBackend interface {
	// ClaimOwnership acquires exclusive write access and returns a fresh
	// opaque token. Fails with domain.ErrBusy when another holder owns the
	// device and neither Force nor IgnoreBusy is set.
	ClaimOwnership(ctx context.Context, req ClaimRequest) (token string, err error)

	// RelinquishOwnership releases exclusive access and invalidates token.
	RelinquishOwnership(ctx context.Context, token string) error

	// GetInstruments returns one entry per slot in slot order; an empty
	// string marks an unoccupied slot.
	GetInstruments(ctx context.Context) ([]string, error)

	// GetConnections returns the device's current routing set.
	GetConnections(ctx context.Context) ([]domain.Connection, error)

	// SetInstrument deploys an instrument into a slot. Fails with
	// domain.ErrSlotConflict or domain.ErrBitstream.
	SetInstrument(ctx context.Context, token string, slot int, instrument string, settings map[string]any) error

	// SetConnections replaces the device's routing set. Fails with
	// domain.ErrRoutingRejected.
	SetConnections(ctx context.Context, token string, conns []domain.Connection) error
}

// DiscoveryStore persists discovered device records keyed by serial.
type DiscoveryStore interface {
	Save(ctx context.Context, info domain.DeviceInfo) error

	// Load retrieves a record by serial, or domain.ErrDeviceNotFound.
	Load(ctx context.Context, serial string) (domain.DeviceInfo, error)

	List(ctx context.Context) ([]domain.DeviceInfo, error)
	Delete(ctx context.Context, serial string) error
}
