package routing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tobheim/patchbay/pkg/domain"
)

// Code identifies one class of routing violation.
type Code string

const (
	// CodeUnknownPort marks a port that does not resolve against the
	// platform spec and the currently deployed slots.
	CodeUnknownPort Code = "unknown_port"

	// CodeSourceNotAllowed marks a connection driven by a port that can
	// only sink signals (a physical output or slot input).
	CodeSourceNotAllowed Code = "source_not_allowed"

	// CodeDestinationNotAllowed marks a connection sinking into a port that
	// can only drive signals (a physical input or slot output).
	CodeDestinationNotAllowed Code = "destination_not_allowed"

	// CodeSameSlotLoopback marks a connection from a slot back into itself.
	CodeSameSlotLoopback Code = "same_slot_loopback"

	// CodeMultipleDrivers marks a destination driven by more than one
	// distinct source.
	CodeMultipleDrivers Code = "multiple_drivers"

	// CodeRoutingCycle marks a cycle in the slot-level routing graph.
	CodeRoutingCycle Code = "routing_cycle"
)

// Error is a single routing violation. Validate reports every violation it
// finds; callers get the complete picture in one pass.
type Error struct {
	Code Code

	// Connection is the offending connection for per-connection violations.
	Connection domain.Connection

	// Port is the offending port for port-scoped violations (unknown port,
	// disallowed source/destination, multiply driven destination).
	Port string

	// Cycle names the slot sequence of a routing cycle, in traversal order.
	Cycle []int
}

func (e Error) Error() string {
	switch e.Code {
	case CodeUnknownPort:
		return fmt.Sprintf("%s: unknown port %q", e.Connection, e.Port)
	case CodeSourceNotAllowed:
		return fmt.Sprintf("%s: port %q cannot be a source", e.Connection, e.Port)
	case CodeDestinationNotAllowed:
		return fmt.Sprintf("%s: port %q cannot be a destination", e.Connection, e.Port)
	case CodeSameSlotLoopback:
		return fmt.Sprintf("%s: connection loops back into its own slot", e.Connection)
	case CodeMultipleDrivers:
		return fmt.Sprintf("destination %q is driven by multiple sources", e.Port)
	case CodeRoutingCycle:
		return fmt.Sprintf("routing cycle through slots %s", formatCycle(e.Cycle))
	}
	return string(e.Code)
}

func formatCycle(slots []int) string {
	parts := make([]string, len(slots))
	for i, s := range slots {
		parts[i] = strconv.Itoa(s)
	}
	return "[" + strings.Join(parts, " -> ") + "]"
}

// Errors aggregates every violation found in one validation pass. A nil or
// empty Errors means the connection set is valid.
type Errors []Error

func (e Errors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d routing errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, err.Error())
	}
	return b.String()
}

// Has reports whether any aggregated violation carries the given code.
func (e Errors) Has(code Code) bool {
	for _, err := range e {
		if err.Code == code {
			return true
		}
	}
	return false
}

// ByCode returns the aggregated violations carrying the given code.
func (e Errors) ByCode(code Code) []Error {
	var out []Error
	for _, err := range e {
		if err.Code == code {
			out = append(out, err)
		}
	}
	return out
}
