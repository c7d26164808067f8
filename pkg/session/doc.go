/*
Package session owns the exclusive-access lifecycle for a device.

A successful claim issues an opaque ownership token wrapped in a Handle; the
token is the single source of truth for who may write to the device, so no
local locking is needed beyond refusing to operate through an invalid handle.
The handle walks a small state machine:

	Unclaimed → Claiming → Owned → Relinquishing → Unclaimed

with one additional reachable state, Lost: the backend reporting the token
invalid (typically after another client force-claimed the device) moves an
Owned handle to Lost, and the caller must re-claim before retrying.

WithSession provides scoped acquisition: ownership is released on every exit
path of the supplied function, including error returns, panics, and context
cancellation, so a partial failure never leaks a claim.
*/
package session
