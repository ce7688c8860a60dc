// Package logging wraps log/slog with the bridge's default fields and
// level/format selection.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options configures a Logger.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // json, text
	Output string // stdout, stderr
}

// Logger wraps slog.Logger with bridge-specific defaults.
//
// Thread safety: all methods are safe for concurrent use from multiple
// goroutines, same as slog.Logger.
type Logger struct {
	*slog.Logger
}

// New creates a Logger from opts, tagging every record with the running
// service name and version.
func New(opts Options, version string) *Logger {
	var output io.Writer
	switch strings.ToLower(opts.Output) {
	case "stderr":
		output = os.Stderr
	default:
		output = os.Stdout
	}

	handlerOpts := &slog.HandlerOptions{Level: parseLevel(opts.Level)}

	var handler slog.Handler
	switch strings.ToLower(opts.Format) {
	case "text":
		handler = slog.NewTextHandler(output, handlerOpts)
	default:
		handler = slog.NewJSONHandler(output, handlerOpts)
	}

	handler = handler.WithAttrs([]slog.Attr{
		slog.String("service", "algodomo-bridge"),
		slog.String("version", version),
	})

	return &Logger{Logger: slog.New(handler)}
}

// parseLevel converts level to slog.Level, defaulting to info.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// With returns a new Logger with additional default attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

// Transaction logs the outcome of one gateway transaction: success at
// debug, failure at warn with the address and command involved. Every
// command handler and the status aggregator's poll sweep call this right
// after their gateway.Transact, so a failed transaction is always
// traceable back to the address and command that caused it.
func (l *Logger) Transaction(address int, command string, err error) {
	if err != nil {
		l.Warn("gateway transaction failed", "address", address, "command", command, "error", err)
		return
	}
	l.Debug("gateway transaction ok", "address", address, "command", command)
}

// Default returns a JSON/info/stdout logger, for use before configuration
// has loaded.
func Default() *Logger {
	return New(Options{Level: "info", Format: "json", Output: "stdout"}, "dev")
}
