/*
Package routing validates proposed connection sets against a platform
topology before they are sent to hardware.

Validation is pure and runs entirely locally: it derives the legal port index
from the platform spec and the deployed slots, checks every connection
against the category, resolution, loopback and multi-driver rules, and runs
cycle detection over the slot-level routing graph. All violations are
collected and reported together; hardware deployment is slow, so a caller
should learn every problem in one pass.
*/
package routing

import (
	"sort"

	"github.com/tobheim/patchbay/pkg/domain"
	"github.com/tobheim/patchbay/pkg/platform"
)

// SlotPorts narrows the virtual ports a deployed slot exposes. Instruments
// that use fewer than four inputs or outputs (per their manifest) expose a
// prefix of the letter set.
type SlotPorts struct {
	Inputs  []byte
	Outputs []byte
}

// FullSlotPorts exposes the complete letter set in both directions.
func FullSlotPorts() SlotPorts {
	return SlotPorts{
		Inputs:  append([]byte(nil), domain.SlotPortLetters...),
		Outputs: append([]byte(nil), domain.SlotPortLetters...),
	}
}

// Validate checks a connection set against a platform spec with the given
// slots deployed, each exposing the full virtual port letter set. It returns
// every violation found; an empty result means the set is safe to apply.
func Validate(spec platform.Spec, deployedSlots []int, conns []domain.Connection) Errors {
	slots := make(map[int]SlotPorts, len(deployedSlots))
	for _, n := range deployedSlots {
		slots[n] = FullSlotPorts()
	}
	return ValidateSlots(spec, slots, conns)
}

// ValidateSlots is Validate with per-slot port narrowing.
func ValidateSlots(spec platform.Spec, slots map[int]SlotPorts, conns []domain.Connection) Errors {
	index := buildPortIndex(spec, slots)

	var errs Errors

	// Per-connection checks, in input order.
	for _, conn := range conns {
		src, srcOK := index[conn.Source]
		dst, dstOK := index[conn.Destination]

		if !srcOK {
			errs = append(errs, Error{Code: CodeUnknownPort, Connection: conn, Port: conn.Source})
		} else if !src.Category.SourceCategory() {
			errs = append(errs, Error{Code: CodeSourceNotAllowed, Connection: conn, Port: conn.Source})
		}

		if !dstOK {
			errs = append(errs, Error{Code: CodeUnknownPort, Connection: conn, Port: conn.Destination})
		} else if !dst.Category.DestinationCategory() {
			errs = append(errs, Error{Code: CodeDestinationNotAllowed, Connection: conn, Port: conn.Destination})
		}

		if srcOK && dstOK && src.Slot != 0 && src.Slot == dst.Slot {
			errs = append(errs, Error{Code: CodeSameSlotLoopback, Connection: conn})
		}
	}

	errs = append(errs, multipleDrivers(conns)...)
	errs = append(errs, slotCycles(index, conns)...)

	return errs
}

func buildPortIndex(spec platform.Spec, slots map[int]SlotPorts) map[string]domain.Port {
	index := make(map[string]domain.Port)
	for _, id := range spec.PhysicalInputs {
		index[id] = domain.Port{ID: id, Category: domain.PhysicalInput}
	}
	for _, id := range spec.PhysicalOutputs {
		index[id] = domain.Port{ID: id, Category: domain.PhysicalOutput}
	}
	for slot, ports := range slots {
		if !spec.ValidSlot(slot) {
			continue
		}
		for _, letter := range ports.Inputs {
			id := domain.SlotInputID(slot, letter)
			index[id] = domain.Port{ID: id, Category: domain.SlotInput, Slot: slot}
		}
		for _, letter := range ports.Outputs {
			id := domain.SlotOutputID(slot, letter)
			index[id] = domain.Port{ID: id, Category: domain.SlotOutput, Slot: slot}
		}
	}
	return index
}

// multipleDrivers reports every destination driven by more than one distinct
// source. Duplicate connections of the same pair do not count as a conflict.
func multipleDrivers(conns []domain.Connection) Errors {
	drivers := make(map[string]map[string]struct{})
	for _, conn := range conns {
		set, ok := drivers[conn.Destination]
		if !ok {
			set = make(map[string]struct{})
			drivers[conn.Destination] = set
		}
		set[conn.Source] = struct{}{}
	}

	dests := make([]string, 0, len(drivers))
	for dest, sources := range drivers {
		if len(sources) > 1 {
			dests = append(dests, dest)
		}
	}
	sort.Strings(dests)

	var errs Errors
	for _, dest := range dests {
		errs = append(errs, Error{Code: CodeMultipleDrivers, Port: dest})
	}
	return errs
}

// slotCycles collapses SlotOutput→SlotInput connections to slot granularity
// and reports every cycle found by depth-first traversal.
func slotCycles(index map[string]domain.Port, conns []domain.Connection) Errors {
	adjacency := make(map[int]map[int]struct{})
	for _, conn := range conns {
		src, srcOK := index[conn.Source]
		dst, dstOK := index[conn.Destination]
		if !srcOK || !dstOK {
			continue
		}
		if src.Category != domain.SlotOutput || dst.Category != domain.SlotInput {
			continue
		}
		if src.Slot == dst.Slot {
			// Loopbacks are reported separately; a self-edge is not a cycle
			// in the slot graph.
			continue
		}
		if adjacency[src.Slot] == nil {
			adjacency[src.Slot] = make(map[int]struct{})
		}
		adjacency[src.Slot][dst.Slot] = struct{}{}
	}

	nodes := make([]int, 0, len(adjacency))
	for n := range adjacency {
		nodes = append(nodes, n)
	}
	sort.Ints(nodes)

	d := cycleDetector{adjacency: adjacency, onPath: make(map[int]bool), done: make(map[int]bool)}
	for _, n := range nodes {
		if !d.done[n] {
			d.visit(n)
		}
	}
	return d.errs
}

type cycleDetector struct {
	adjacency map[int]map[int]struct{}
	onPath    map[int]bool
	done      map[int]bool
	path      []int
	errs      Errors
}

func (d *cycleDetector) visit(slot int) {
	d.onPath[slot] = true
	d.path = append(d.path, slot)

	next := make([]int, 0, len(d.adjacency[slot]))
	for n := range d.adjacency[slot] {
		next = append(next, n)
	}
	sort.Ints(next)

	for _, n := range next {
		if d.onPath[n] {
			// Back-edge: the cycle is the path segment from n to slot.
			start := 0
			for i, p := range d.path {
				if p == n {
					start = i
					break
				}
			}
			cycle := append([]int(nil), d.path[start:]...)
			d.errs = append(d.errs, Error{Code: CodeRoutingCycle, Cycle: cycle})
			continue
		}
		if !d.done[n] {
			d.visit(n)
		}
	}

	d.path = d.path[:len(d.path)-1]
	d.onPath[slot] = false
	d.done[slot] = true
}
