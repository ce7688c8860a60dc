package protocol

import "errors"

// Domain errors for the frame codec.
var (
	// ErrNoFrame is returned by ExtractFrame when the buffer does not yet
	// contain a complete, delimited frame.
	ErrNoFrame = errors.New("protocol: no frame yet")

	// ErrInvalidAction is returned when a light or shutter action is not a
	// key of the relevant action table.
	ErrInvalidAction = errors.New("protocol: invalid action")

	// ErrInvalidChannel is returned by RelayCommand when a relay channel
	// falls outside [1,8].
	ErrInvalidChannel = errors.New("protocol: invalid channel")
)
