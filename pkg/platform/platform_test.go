package platform

import (
	"errors"
	"testing"

	"github.com/tobheim/patchbay/pkg/domain"
)

func TestBuiltinCatalog(t *testing.T) {
	tests := []struct {
		id      string
		slots   int
		inputs  int
		outputs int
	}{
		{"go", 2, 2, 2},
		{"lab", 4, 4, 4},
		{"pro", 4, 4, 4},
		{"delta", 3, 8, 8},
	}

	catalog := Builtin()
	for _, tt := range tests {
		spec, err := catalog.Lookup(tt.id)
		if err != nil {
			t.Fatalf("Lookup(%q) error = %v", tt.id, err)
		}
		if spec.Slots != tt.slots {
			t.Errorf("%s: Slots = %d, want %d", tt.id, spec.Slots, tt.slots)
		}
		if len(spec.PhysicalInputs) != tt.inputs {
			t.Errorf("%s: %d physical inputs, want %d", tt.id, len(spec.PhysicalInputs), tt.inputs)
		}
		if len(spec.PhysicalOutputs) != tt.outputs {
			t.Errorf("%s: %d physical outputs, want %d", tt.id, len(spec.PhysicalOutputs), tt.outputs)
		}
	}
}

func TestLookupUnknownPlatform(t *testing.T) {
	_, err := Builtin().Lookup("quantum")
	if !errors.Is(err, domain.ErrUnknownPlatform) {
		t.Errorf("Lookup(quantum) error = %v, want ErrUnknownPlatform", err)
	}
}

// Every port is either a legal source or a legal destination, never both and
// never neither, on every built-in platform.
func TestPortCategoryPartition(t *testing.T) {
	for _, id := range Builtin().IDs() {
		spec, err := Builtin().Lookup(id)
		if err != nil {
			t.Fatal(err)
		}

		categories := []domain.PortCategory{
			domain.PhysicalInput, domain.PhysicalOutput,
			domain.SlotInput, domain.SlotOutput,
		}
		for _, category := range categories {
			ports := spec.PortsFor(category)
			if len(ports) == 0 {
				t.Errorf("%s: no ports in category %s", id, category)
			}
			for _, port := range ports {
				src := category.SourceCategory()
				dst := category.DestinationCategory()
				if src == dst {
					t.Errorf("%s: port %s is source=%v destination=%v", id, port, src, dst)
				}
			}
		}
	}
}

func TestPortsForSlotCategories(t *testing.T) {
	spec, err := Builtin().Lookup("go")
	if err != nil {
		t.Fatal(err)
	}

	// 2 slots x 4 letters.
	inputs := spec.PortsFor(domain.SlotInput)
	if len(inputs) != 8 {
		t.Fatalf("PortsFor(SlotInput) = %d ports, want 8", len(inputs))
	}
	if inputs[0] != "Slot1InA" || inputs[7] != "Slot2InD" {
		t.Errorf("slot inputs out of order: %v", inputs)
	}

	outputs := spec.PortsFor(domain.SlotOutput)
	if len(outputs) != 8 {
		t.Fatalf("PortsFor(SlotOutput) = %d ports, want 8", len(outputs))
	}
}

func TestValidSlot(t *testing.T) {
	spec, _ := Builtin().Lookup("delta")
	for slot, want := range map[int]bool{0: false, 1: true, 3: true, 4: false, -1: false} {
		if got := spec.ValidSlot(slot); got != want {
			t.Errorf("ValidSlot(%d) = %v, want %v", slot, got, want)
		}
	}
}

func TestCatalogIDsSorted(t *testing.T) {
	ids := Builtin().IDs()
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Fatalf("IDs() not sorted: %v", ids)
		}
	}
}
