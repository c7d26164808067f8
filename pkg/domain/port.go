package domain

import (
	"fmt"
	"strings"
)

// PortCategory classifies a port within the routing matrix. The category
// decides which side of a connection a port may appear on: physical inputs
// and slot outputs drive signals, slot inputs and physical outputs sink them.
type PortCategory string

const (
	PhysicalInput  PortCategory = "physical_input"
	PhysicalOutput PortCategory = "physical_output"
	SlotInput      PortCategory = "slot_input"
	SlotOutput     PortCategory = "slot_output"
)

// SourceCategory reports whether ports of this category may drive a connection.
func (c PortCategory) SourceCategory() bool {
	return c == PhysicalInput || c == SlotOutput
}

// DestinationCategory reports whether ports of this category may sink a connection.
func (c PortCategory) DestinationCategory() bool {
	return c == PhysicalOutput || c == SlotInput
}

// SlotPortLetters is the fixed per-slot virtual port letter set. Every
// deployed slot exposes up to four virtual inputs (Slot<N>InA..InD) and four
// virtual outputs (Slot<N>OutA..OutD).
var SlotPortLetters = []byte{'A', 'B', 'C', 'D'}

// Port is a resolved point in the routing matrix.
type Port struct {
	// ID is the platform-scoped identifier, e.g. "IN1" or "Slot2OutA".
	ID string

	Category PortCategory

	// Slot is the owning slot number for virtual ports, 0 for physical ports.
	Slot int
}

// SlotInputID builds the identifier of a slot virtual input, e.g. SlotInputID(1, 'A') = "Slot1InA".
func SlotInputID(slot int, letter byte) string {
	return fmt.Sprintf("Slot%dIn%c", slot, letter)
}

// SlotOutputID builds the identifier of a slot virtual output, e.g. SlotOutputID(2, 'C') = "Slot2OutC".
func SlotOutputID(slot int, letter byte) string {
	return fmt.Sprintf("Slot%dOut%c", slot, letter)
}

// ParseSlotPort decodes a slot virtual port identifier of the form
// Slot<N>In<L> or Slot<N>Out<L>. It returns the decoded Port and true on
// success; any other identifier (including physical port ids) returns false.
func ParseSlotPort(id string) (Port, bool) {
	rest, ok := strings.CutPrefix(id, "Slot")
	if !ok {
		return Port{}, false
	}

	// Slot number: one or more leading digits.
	i := 0
	for i < len(rest) && rest[i] >= '0' && rest[i] <= '9' {
		i++
	}
	if i == 0 {
		return Port{}, false
	}
	slot := 0
	for _, d := range rest[:i] {
		slot = slot*10 + int(d-'0')
	}
	rest = rest[i:]

	var category PortCategory
	switch {
	case strings.HasPrefix(rest, "In"):
		category = SlotInput
		rest = rest[len("In"):]
	case strings.HasPrefix(rest, "Out"):
		category = SlotOutput
		rest = rest[len("Out"):]
	default:
		return Port{}, false
	}

	if len(rest) != 1 || !validSlotPortLetter(rest[0]) {
		return Port{}, false
	}

	return Port{ID: id, Category: category, Slot: slot}, true
}

func validSlotPortLetter(l byte) bool {
	for _, allowed := range SlotPortLetters {
		if l == allowed {
			return true
		}
	}
	return false
}
