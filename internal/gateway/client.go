// Package gateway implements the TCP transaction layer to an Algo_Domo
// field-bus gateway: one fresh connection per transaction, a framed or raw
// read with a deadline, and a per-address mutual-exclusion registry so at
// most one frame is ever in flight to a given board.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/filippobenozzi/algodomo-bridge/internal/protocol"
)

// readChunkSize is the size of each read() call while accumulating a reply.
const readChunkSize = 256

// Settings describes how to reach the gateway.
type Settings struct {
	Host      string
	Port      int
	TimeoutMs int
}

// Addr renders the gateway's dial address.
func (s Settings) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Timeout returns the configured timeout as a time.Duration.
func (s Settings) Timeout() time.Duration {
	return time.Duration(s.TimeoutMs) * time.Millisecond
}

// Options configures a single transaction.
type Options struct {
	// ExpectFrame selects frame mode (set by FrameOptions; the zero value
	// selects raw mode): the transaction finishes as soon as ExtractFrame
	// succeeds on the accumulated buffer.
	// When false, raw mode is used instead: the transaction finishes once
	// ExpectedBytes bytes have been read, and exactly that many are
	// returned.
	ExpectFrame bool

	// ExpectedBytes is the number of raw bytes to wait for in raw mode.
	// Ignored in frame mode.
	ExpectedBytes int

	// Timeout overrides the gateway's configured timeout for this
	// transaction if non-zero. The effective deadline is
	// min(Settings.Timeout(), Timeout) when both are set.
	Timeout time.Duration
}

// FrameOptions returns Options for a standard framed transaction.
func FrameOptions() Options {
	return Options{ExpectFrame: true}
}

// RawOptions returns Options for a raw transaction expecting exactly n
// bytes, used for the address-programming acknowledgement.
func RawOptions(n int) Options {
	return Options{ExpectFrame: false, ExpectedBytes: n}
}

// effectiveTimeout picks the tighter of the gateway's configured timeout and
// a per-call override.
func effectiveTimeout(settings Settings, override time.Duration) time.Duration {
	base := settings.Timeout()
	if override <= 0 {
		return base
	}
	if base <= 0 || override < base {
		return override
	}
	return base
}

// Transact opens a fresh TCP connection to the gateway, writes payload once,
// and reads the reply according to opts. The deadline is
// min(settings.TimeoutMs, opts.Timeout). The connection is unconditionally
// closed on every exit path.
func Transact(ctx context.Context, settings Settings, payload []byte, opts Options) ([]byte, error) {
	timeout := effectiveTimeout(settings, opts.Timeout)
	deadline := time.Now().Add(timeout)

	dialCtx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()

	var dialer net.Dialer
	conn, err := dialer.DialContext(dialCtx, "tcp", settings.Addr())
	if err != nil {
		if errors.Is(dialCtx.Err(), context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("%w: dial %s: %w", ErrTransport, settings.Addr(), err)
	}
	defer conn.Close()

	if err := conn.SetDeadline(deadline); err != nil {
		return nil, fmt.Errorf("%w: set deadline: %w", ErrTransport, err)
	}

	if _, err := conn.Write(payload); err != nil {
		if isTimeout(err) {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("%w: write: %w", ErrTransport, err)
	}

	return readReply(conn, opts)
}

// readReply accumulates bytes from conn until the transaction's mode is
// satisfied, a timeout fires, or the remote closes the connection.
func readReply(conn net.Conn, opts Options) ([]byte, error) {
	var buf []byte
	chunk := make([]byte, readChunkSize)

	for {
		n, err := conn.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)

			if opts.ExpectFrame {
				if frame, extractErr := protocol.ExtractFrame(buf); extractErr == nil {
					return frame, nil
				}
			} else if len(buf) >= opts.ExpectedBytes {
				return buf[:opts.ExpectedBytes], nil
			}
		}

		if err != nil {
			return finishOnClose(buf, opts, err)
		}
	}
}

// finishOnClose handles the remote closing (or erroring on) the connection
// before the mode's completion condition was met: one final extraction
// attempt, then the appropriate failure.
func finishOnClose(buf []byte, opts Options, readErr error) ([]byte, error) {
	if isTimeout(readErr) {
		return nil, ErrTimeout
	}

	if opts.ExpectFrame {
		if frame, err := protocol.ExtractFrame(buf); err == nil {
			return frame, nil
		}
		if errors.Is(readErr, io.EOF) {
			return nil, ErrProtocol
		}
		return nil, fmt.Errorf("%w: read: %w", ErrTransport, readErr)
	}

	if len(buf) >= opts.ExpectedBytes {
		return buf[:opts.ExpectedBytes], nil
	}
	if errors.Is(readErr, io.EOF) {
		return nil, ErrNoReply
	}
	return nil, fmt.Errorf("%w: read: %w", ErrTransport, readErr)
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
