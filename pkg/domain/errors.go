package domain

import "errors"

// Configuration errors, resolved locally before any network call.
var (
	// ErrUnknownPlatform is returned when a platform id is not in the catalog.
	ErrUnknownPlatform = errors.New("unknown platform")
)

// Session errors. These always propagate to the caller; a Busy response is a
// semantic rejection, not a fault, and must never be retried automatically.
var (
	// ErrBusy is returned when another holder owns the device and the claim
	// was made without force or ignore-busy.
	ErrBusy = errors.New("device is owned by another client")

	// ErrOwnershipLost is returned when the backend reports the session
	// token invalid, typically after another client force-claimed the device.
	ErrOwnershipLost = errors.New("device ownership lost")

	// ErrNetwork is returned for transport-level faults talking to the device.
	ErrNetwork = errors.New("network error")
)

// Deployment errors reported by the backend.
var (
	// ErrSlotConflict is returned when an instrument cannot be placed into
	// the requested slot.
	ErrSlotConflict = errors.New("slot conflict")

	// ErrBitstream is returned when the instrument bitstream is missing or
	// cannot be loaded on the device.
	ErrBitstream = errors.New("bitstream error")

	// ErrRoutingRejected is returned when the device refuses a connection set.
	ErrRoutingRejected = errors.New("routing rejected by device")
)

// Discovery errors.
var (
	// ErrDeviceNotFound is returned when no cached device matches a lookup.
	ErrDeviceNotFound = errors.New("device not found")
)
