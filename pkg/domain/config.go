package domain

import "sort"

// SlotConfig describes what to deploy into one instrument slot.
type SlotConfig struct {
	// Instrument is the instrument type name, e.g. "Oscilloscope" or "CloudCompile".
	Instrument string `json:"instrument" yaml:"instrument"`

	// Settings is the opaque instrument settings bag, passed through to the
	// backend untouched. Instrument variants the deployment layer reasons
	// about (e.g. CloudCompile) are decoded into typed structures from this
	// bag; everything else stays opaque.
	Settings map[string]any `json:"settings,omitempty" yaml:"settings,omitempty"`
}

// DeployConfig is the deployment description for a device: which platform it
// is, which instruments go into which slots, and how the routing matrix
// connects them.
type DeployConfig struct {
	Platform string             `json:"platform" yaml:"platform"`
	Slots    map[int]SlotConfig `json:"slots" yaml:"slots"`
	Routing  []Connection       `json:"routing,omitempty" yaml:"routing,omitempty"`
	Metadata map[string]string  `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// SlotNumbers returns the configured slot numbers in ascending order.
func (c *DeployConfig) SlotNumbers() []int {
	slots := make([]int, 0, len(c.Slots))
	for n := range c.Slots {
		slots = append(slots, n)
	}
	sort.Ints(slots)
	return slots
}

// DeviceState is a client-side mirror of the remote device's configuration.
// It is fetched through the backend's inspection calls and must never be
// treated as a second source of truth; after a timeout or lost session the
// mirror is stale until re-fetched.
type DeviceState struct {
	// Instruments holds one entry per slot, index 0 = slot 1. An empty
	// string marks an unoccupied slot.
	Instruments []string `json:"instruments"`

	Connections []Connection `json:"connections"`
}

// DeployedSlots returns the slot numbers that currently hold an instrument,
// in ascending order.
func (s DeviceState) DeployedSlots() []int {
	var slots []int
	for i, inst := range s.Instruments {
		if inst != "" {
			slots = append(slots, i+1)
		}
	}
	return slots
}
