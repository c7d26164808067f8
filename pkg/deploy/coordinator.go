/*
Package deploy orchestrates configuration changes against a device.

The Coordinator sequences a deployment: ensure each configured slot holds the
right instrument, validate the proposed routing locally against the resulting
slot occupancy, and only then hand the connection set to the device. Routing
problems are caught exhaustively before any routing hardware is touched, and
backend failures surface as a PartialError identifying exactly how far the
deployment got, so a caller can decide whether to re-apply the remainder
(Apply is idempotent over already-deployed slots) or roll back. The
coordinator never retries on its own.
*/
package deploy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tobheim/patchbay/internal/logging"
	"github.com/tobheim/patchbay/pkg/domain"
	"github.com/tobheim/patchbay/pkg/instrument"
	"github.com/tobheim/patchbay/pkg/platform"
	"github.com/tobheim/patchbay/pkg/ports"
	"github.com/tobheim/patchbay/pkg/routing"
	"github.com/tobheim/patchbay/pkg/session"
)

// Coordinator applies deployment configurations to one device. It holds no
// state of its own beyond wiring; the device remains the source of truth.
type Coordinator struct {
	backend   ports.DeviceBackend
	spec      platform.Spec
	logger    *slog.Logger
	manifests map[string]instrument.Manifest
}

// Option configures the Coordinator.
type Option func(*Coordinator)

// WithLogger configures a logger for deployment progress events.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

// WithManifests registers instrument manifests keyed by instrument type
// name. When a deployed instrument has a manifest, routing validation only
// exposes the slot port letters its declared input/output counts cover.
func WithManifests(manifests map[string]instrument.Manifest) Option {
	return func(c *Coordinator) {
		c.manifests = manifests
	}
}

// NewCoordinator creates a coordinator for a device of the given platform.
func NewCoordinator(backend ports.DeviceBackend, spec platform.Spec, opts ...Option) *Coordinator {
	c := &Coordinator{
		backend: backend,
		spec:    spec,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State fetches the device's current slot and routing state through the
// backend's inspection calls. This is the only trustworthy way to refresh a
// local mirror, e.g. after a timeout left the device state indeterminate.
func (c *Coordinator) State(ctx context.Context) (domain.DeviceState, error) {
	instruments, err := c.backend.GetInstruments(ctx)
	if err != nil {
		return domain.DeviceState{}, fmt.Errorf("get instruments: %w", err)
	}
	conns, err := c.backend.GetConnections(ctx)
	if err != nil {
		return domain.DeviceState{}, fmt.Errorf("get connections: %w", err)
	}
	return domain.DeviceState{Instruments: instruments, Connections: conns}, nil
}

// Validate runs routing validation for cfg locally, assuming all configured
// slots deployed, without touching the device.
func (c *Coordinator) Validate(cfg *domain.DeployConfig) routing.Errors {
	return routing.ValidateSlots(c.spec, c.slotPorts(cfg.SlotNumbers(), func(slot int) string {
		return cfg.Slots[slot].Instrument
	}), cfg.Routing)
}

// Apply deploys cfg through a valid session handle:
//
//  1. For each configured slot, deploy the instrument unless the slot
//     already holds it.
//  2. Recompute the deployed slot set from the result and validate the
//     routing locally; on any violation, abort before touching routing
//     hardware and surface every violation together.
//  3. Hand the connection set to the device.
//
// A backend failure at step 1 or 3 returns a *PartialError naming what had
// already succeeded. A backend-reported ownership loss additionally marks
// the handle Lost.
func (c *Coordinator) Apply(ctx context.Context, h *session.Handle, cfg *domain.DeployConfig) error {
	if !h.Owned() {
		return session.ErrNotOwned
	}

	for _, slot := range cfg.SlotNumbers() {
		if !c.spec.ValidSlot(slot) {
			return fmt.Errorf("%w: slot %d out of range 1-%d for platform %s",
				domain.ErrSlotConflict, slot, c.spec.Slots, c.spec.ID)
		}
	}

	current, err := c.backend.GetInstruments(ctx)
	if err != nil {
		return fmt.Errorf("get instruments: %w", err)
	}
	occupancy := make([]string, c.spec.Slots)
	copy(occupancy, current)

	var applied []int
	for _, slot := range cfg.SlotNumbers() {
		want := cfg.Slots[slot]
		if occupancy[slot-1] == want.Instrument {
			c.logger.Debug("slot already holds instrument", "slot", slot, "instrument", want.Instrument)
			continue
		}

		err := c.backend.SetInstrument(ctx, h.Token(), slot, want.Instrument, want.Settings)
		if err != nil {
			c.markLost(h, err)
			return &PartialError{AppliedSlots: applied, FailedSlot: slot, Err: err}
		}
		occupancy[slot-1] = want.Instrument
		applied = append(applied, slot)
		c.logger.Info("instrument deployed", "slot", slot, "instrument", want.Instrument)
	}

	deployed := domain.DeviceState{Instruments: occupancy}.DeployedSlots()
	if verrs := routing.ValidateSlots(c.spec, c.slotPorts(deployed, func(slot int) string {
		return occupancy[slot-1]
	}), cfg.Routing); len(verrs) > 0 {
		c.logger.Warn("routing validation failed", "violations", len(verrs))
		return verrs
	}

	if err := c.backend.SetConnections(ctx, h.Token(), cfg.Routing); err != nil {
		c.markLost(h, err)
		return &PartialError{AppliedSlots: applied, Err: err}
	}

	c.logger.Info("deployment applied", "slots", len(cfg.Slots), "connections", len(cfg.Routing))
	return nil
}

// slotPorts builds the per-slot port exposure for validation: the full
// letter set, narrowed by the instrument's manifest when one is registered.
func (c *Coordinator) slotPorts(slots []int, instrumentAt func(slot int) string) map[int]routing.SlotPorts {
	out := make(map[int]routing.SlotPorts, len(slots))
	for _, slot := range slots {
		ports := routing.FullSlotPorts()
		if m, ok := c.manifests[instrumentAt(slot)]; ok {
			ports = routing.SlotPorts{Inputs: m.InputLetters(), Outputs: m.OutputLetters()}
		}
		out[slot] = ports
	}
	return out
}

func (c *Coordinator) markLost(h *session.Handle, err error) {
	if errors.Is(err, domain.ErrOwnershipLost) {
		h.MarkLost()
	}
}
