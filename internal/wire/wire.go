// Package wire defines the device HTTP protocol shared by the client
// backend and the device simulator: POST /api/<group>/<operation> with JSON
// bodies, responses wrapped in a success/data/code envelope, and the
// ownership token carried in a client-key header.
package wire

import (
	"encoding/json"
	"errors"

	"github.com/tobheim/patchbay/pkg/domain"
)

// ClientKeyHeader carries the ownership token on write operations.
const ClientKeyHeader = "X-Client-Key"

// Envelope is the uniform response wrapper. Success carries Data; failure
// carries a Code from the table below plus human-readable Messages.
type Envelope struct {
	Success  bool            `json:"success"`
	Data     json.RawMessage `json:"data,omitempty"`
	Code     string          `json:"code,omitempty"`
	Messages []string        `json:"messages,omitempty"`
}

// Error codes on the wire.
const (
	CodeBusy            = "DEVICE_BUSY"
	CodeNotOwner        = "NOT_OWNER"
	CodeSlotConflict    = "SLOT_CONFLICT"
	CodeBitstream       = "NO_BIT_STREAM"
	CodeRoutingRejected = "ROUTING_REJECTED"
	CodeInvalidParam    = "INVALID_PARAM"
	CodeUnknown         = "UNKNOWN"
)

// ErrorCode maps a domain error to its wire code.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrBusy):
		return CodeBusy
	case errors.Is(err, domain.ErrOwnershipLost):
		return CodeNotOwner
	case errors.Is(err, domain.ErrSlotConflict):
		return CodeSlotConflict
	case errors.Is(err, domain.ErrBitstream):
		return CodeBitstream
	case errors.Is(err, domain.ErrRoutingRejected):
		return CodeRoutingRejected
	}
	return CodeUnknown
}

// CodeError maps a wire code back to its domain error sentinel. Unknown
// codes map to nil; callers fall back to a generic error with the messages.
func CodeError(code string) error {
	switch code {
	case CodeBusy:
		return domain.ErrBusy
	case CodeNotOwner:
		return domain.ErrOwnershipLost
	case CodeSlotConflict:
		return domain.ErrSlotConflict
	case CodeBitstream:
		return domain.ErrBitstream
	case CodeRoutingRejected:
		return domain.ErrRoutingRejected
	}
	return nil
}

// ClaimRequest is the body of POST /api/device/claim_ownership.
type ClaimRequest struct {
	ForceConnect bool `json:"force_connect"`
	IgnoreBusy   bool `json:"ignore_busy"`
	PersistState bool `json:"persist_state"`
}

// ClaimData is the success payload of a claim.
type ClaimData struct {
	Token string `json:"token"`
}

// SetInstrumentRequest is the body of POST /api/slots/set_instrument.
type SetInstrumentRequest struct {
	Slot       int            `json:"slot"`
	Instrument string         `json:"instrument"`
	Settings   map[string]any `json:"settings,omitempty"`
}

// InstrumentsData is the success payload of get_instruments.
type InstrumentsData struct {
	Instruments []string `json:"instruments"`
}

// ConnectionsPayload carries a connection set in either direction.
type ConnectionsPayload struct {
	Connections []domain.Connection `json:"connections"`
}

// DescribeData is the success payload of GET /api/device/describe.
type DescribeData struct {
	Hardware string `json:"hardware"`
	Platform string `json:"platform"`
	Slots    int    `json:"slots"`
	Serial   string `json:"serial,omitempty"`
}
