// Package memory provides in-memory adapter implementations: a simulated
// device backend with full ownership semantics, and a discovery store. They
// back the device simulator and the test suites.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/tobheim/patchbay/pkg/domain"
	"github.com/tobheim/patchbay/pkg/platform"
	"github.com/tobheim/patchbay/pkg/ports"
	"github.com/tobheim/patchbay/pkg/routing"
)

var _ ports.DeviceBackend = (*Device)(nil)

// Device implements ports.DeviceBackend entirely in memory. It enforces the
// same ownership and routing rules a real device would: exclusive tokens,
// force-claim invalidation, persist-aware relinquish, and rejection of
// connection sets that do not resolve against its platform.
type Device struct {
	spec platform.Spec

	// OnSetInstrument, when set, is consulted before a slot deployment and
	// may inject a failure. Tests use it to exercise partial deployments.
	OnSetInstrument func(slot int, instrument string) error

	mu          sync.Mutex
	owner       string
	persist     bool
	instruments []string
	connections []domain.Connection
}

// NewDevice creates an unowned, empty device of the given platform.
func NewDevice(spec platform.Spec) *Device {
	return &Device{
		spec:        spec,
		instruments: make([]string, spec.Slots),
	}
}

// Spec returns the device's platform topology.
func (d *Device) Spec() platform.Spec {
	return d.spec
}

// ClaimOwnership issues a fresh token. With neither Force nor IgnoreBusy
// set, an owned device rejects the claim with domain.ErrBusy. A forced (or
// ignore-busy) claim replaces the prior holder's token, which from then on
// fails with domain.ErrOwnershipLost.
func (d *Device) ClaimOwnership(ctx context.Context, req ports.ClaimRequest) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.owner != "" && !req.Force && !req.IgnoreBusy {
		return "", domain.ErrBusy
	}

	d.owner = uuid.NewString()
	d.persist = req.Persist
	return d.owner, nil
}

// RelinquishOwnership releases the device. Without persist, slot and routing
// state reset to empty.
func (d *Device) RelinquishOwnership(ctx context.Context, token string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.checkToken(token); err != nil {
		return err
	}

	d.owner = ""
	if !d.persist {
		d.instruments = make([]string, d.spec.Slots)
		d.connections = nil
	}
	return nil
}

// GetInstruments returns the slot occupancy. Inspection needs no ownership.
func (d *Device) GetInstruments(ctx context.Context) ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.instruments...), nil
}

// GetConnections returns the current routing set. Inspection needs no ownership.
func (d *Device) GetConnections(ctx context.Context) ([]domain.Connection, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return domain.CloneConnections(d.connections), nil
}

// SetInstrument deploys an instrument into a slot.
func (d *Device) SetInstrument(ctx context.Context, token string, slot int, inst string, settings map[string]any) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.checkToken(token); err != nil {
		return err
	}
	if !d.spec.ValidSlot(slot) {
		return fmt.Errorf("%w: slot %d out of range 1-%d", domain.ErrSlotConflict, slot, d.spec.Slots)
	}
	if inst == "CloudCompile" {
		if bs, _ := settings["bitstream"].(string); bs == "" {
			return fmt.Errorf("%w: CloudCompile deployment without bitstream", domain.ErrBitstream)
		}
	}
	if d.OnSetInstrument != nil {
		if err := d.OnSetInstrument(slot, inst); err != nil {
			return err
		}
	}

	d.instruments[slot-1] = inst
	return nil
}

// SetConnections replaces the routing set after re-checking it against the
// device's own topology, mirroring the device-side guard of real hardware.
func (d *Device) SetConnections(ctx context.Context, token string, conns []domain.Connection) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.checkToken(token); err != nil {
		return err
	}
	if d.spec.MaxConnections > 0 && len(conns) > d.spec.MaxConnections {
		return fmt.Errorf("%w: %d connections exceed platform limit %d",
			domain.ErrRoutingRejected, len(conns), d.spec.MaxConnections)
	}

	deployed := domain.DeviceState{Instruments: d.instruments}.DeployedSlots()
	if verrs := routing.Validate(d.spec, deployed, conns); len(verrs) > 0 {
		return fmt.Errorf("%w: %v", domain.ErrRoutingRejected, verrs)
	}

	d.connections = domain.CloneConnections(conns)
	return nil
}

func (d *Device) checkToken(token string) error {
	if token == "" || token != d.owner {
		return domain.ErrOwnershipLost
	}
	return nil
}
