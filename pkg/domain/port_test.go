package domain

import (
	"testing"
)

func TestSlotPortIDs(t *testing.T) {
	if got := SlotInputID(1, 'A'); got != "Slot1InA" {
		t.Errorf("SlotInputID(1, 'A') = %q, want Slot1InA", got)
	}
	if got := SlotOutputID(2, 'C'); got != "Slot2OutC" {
		t.Errorf("SlotOutputID(2, 'C') = %q, want Slot2OutC", got)
	}
}

func TestParseSlotPort(t *testing.T) {
	tests := []struct {
		id       string
		ok       bool
		category PortCategory
		slot     int
	}{
		{"Slot1InA", true, SlotInput, 1},
		{"Slot4OutD", true, SlotOutput, 4},
		{"Slot12InB", true, SlotInput, 12},
		{"IN1", false, "", 0},
		{"OUT2", false, "", 0},
		{"Slot1InE", false, "", 0},
		{"Slot1In", false, "", 0},
		{"SlotInA", false, "", 0},
		{"Slot1Sideways", false, "", 0},
		{"slot1InA", false, "", 0},
		{"", false, "", 0},
	}

	for _, tt := range tests {
		port, ok := ParseSlotPort(tt.id)
		if ok != tt.ok {
			t.Errorf("ParseSlotPort(%q) ok = %v, want %v", tt.id, ok, tt.ok)
			continue
		}
		if !ok {
			continue
		}
		if port.Category != tt.category || port.Slot != tt.slot || port.ID != tt.id {
			t.Errorf("ParseSlotPort(%q) = %+v, want category %s slot %d", tt.id, port, tt.category, tt.slot)
		}
	}
}

func TestPortCategorySides(t *testing.T) {
	sources := map[PortCategory]bool{
		PhysicalInput:  true,
		SlotOutput:     true,
		PhysicalOutput: false,
		SlotInput:      false,
	}
	for category, want := range sources {
		if got := category.SourceCategory(); got != want {
			t.Errorf("%s.SourceCategory() = %v, want %v", category, got, want)
		}
		// Every category is exactly one of source or destination.
		if got := category.DestinationCategory(); got == want {
			t.Errorf("%s is both (or neither) source and destination", category)
		}
	}
}

func TestCloneConnectionsIsIndependent(t *testing.T) {
	orig := []Connection{{Source: "IN1", Destination: "Slot1InA"}}
	clone := CloneConnections(orig)
	clone[0].Source = "IN2"
	if orig[0].Source != "IN1" {
		t.Error("CloneConnections must not share backing storage")
	}
}

func TestDeployConfigSlotNumbersSorted(t *testing.T) {
	cfg := DeployConfig{
		Slots: map[int]SlotConfig{
			3: {Instrument: "Oscilloscope"},
			1: {Instrument: "WaveformGenerator"},
			2: {Instrument: "Phasemeter"},
		},
	}
	got := cfg.SlotNumbers()
	want := []int{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("SlotNumbers() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("SlotNumbers() = %v, want %v", got, want)
		}
	}
}

func TestDeviceStateDeployedSlots(t *testing.T) {
	state := DeviceState{Instruments: []string{"Oscilloscope", "", "Phasemeter"}}
	got := state.DeployedSlots()
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("DeployedSlots() = %v, want [1 3]", got)
	}
}
