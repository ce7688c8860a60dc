package gateway

import "errors"

// Domain errors surfaced by a gateway transaction. The HTTP layer maps these
// onto its own timeout/protocol-error/transport-error response kinds.
var (
	// ErrTimeout is returned when a transaction's deadline elapses before a
	// complete reply is available.
	ErrTimeout = errors.New("gateway: timeout")

	// ErrProtocol is returned in frame mode when the remote closes the
	// connection before a complete, delimited frame has been read.
	ErrProtocol = errors.New("gateway: protocol error")

	// ErrNoReply is returned in raw mode when the remote closes the
	// connection before the expected number of bytes has been read.
	ErrNoReply = errors.New("gateway: no reply")

	// ErrTransport wraps a socket-level connect/read/write failure.
	ErrTransport = errors.New("gateway: transport error")
)
