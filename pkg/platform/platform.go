// Package platform provides the static catalog of device platform topologies:
// how many instrument slots a platform has, which physical ports it exposes,
// and the projection of those into routing-matrix port sets.
package platform

import (
	"fmt"

	"github.com/tobheim/patchbay/pkg/domain"
)

// Spec is the immutable topology of one device platform. Specs are static
// data loaded once; nothing in this package mutates them.
type Spec struct {
	// ID is the catalog key, e.g. "go" or "delta".
	ID string

	// Name is the marketing name, e.g. "Moku:Go".
	Name string

	// Slots is the number of instrument slots the platform offers.
	Slots int

	// PhysicalInputs and PhysicalOutputs list the front-panel analog port
	// identifiers in panel order.
	PhysicalInputs  []string
	PhysicalOutputs []string

	// MaxConnections is the per-platform limit on the size of a connection
	// set, 0 meaning unlimited.
	MaxConnections int
}

// PortsFor projects the spec into the full set of port identifiers of one
// category. Slot virtual ports are enumerated for every slot the platform
// offers, whether or not an instrument is deployed; deployment narrows the
// set at validation time, not here.
func (s Spec) PortsFor(category domain.PortCategory) []string {
	switch category {
	case domain.PhysicalInput:
		return append([]string(nil), s.PhysicalInputs...)
	case domain.PhysicalOutput:
		return append([]string(nil), s.PhysicalOutputs...)
	case domain.SlotInput:
		return s.slotPorts(domain.SlotInputID)
	case domain.SlotOutput:
		return s.slotPorts(domain.SlotOutputID)
	}
	return nil
}

func (s Spec) slotPorts(id func(int, byte) string) []string {
	ports := make([]string, 0, s.Slots*len(domain.SlotPortLetters))
	for slot := 1; slot <= s.Slots; slot++ {
		for _, letter := range domain.SlotPortLetters {
			ports = append(ports, id(slot, letter))
		}
	}
	return ports
}

// ValidSlot reports whether a slot number is within the platform's range.
func (s Spec) ValidSlot(slot int) bool {
	return slot >= 1 && slot <= s.Slots
}

func (s Spec) String() string {
	return fmt.Sprintf("%s: %d slots, %dIN/%dOUT",
		s.Name, s.Slots, len(s.PhysicalInputs), len(s.PhysicalOutputs))
}
