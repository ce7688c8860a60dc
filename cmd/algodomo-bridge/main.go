// Command algodomo-bridge is the HTTP-to-TCP gateway bridge for an
// Algo_Domo v1.6 field bus: it exposes a fixed JSON API over the home's
// lights, shutters, thermostats, and opto inputs, translating each command
// into a 14-byte frame and brokering one fresh TCP connection per
// transaction to the field-bus gateway.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"gopkg.in/yaml.v3"

	"github.com/filippobenozzi/algodomo-bridge/internal/api"
	"github.com/filippobenozzi/algodomo-bridge/internal/gateway"
	"github.com/filippobenozzi/algodomo-bridge/internal/logging"
	"github.com/filippobenozzi/algodomo-bridge/internal/status"
	"github.com/filippobenozzi/algodomo-bridge/internal/store"
)

// Version information, set at build time via ldflags, e.g.
// go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2026-07-29".
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

const (
	defaultPort       = 8080
	defaultHost       = "0.0.0.0"
	defaultDataDir    = "data"
	defaultControlDir = "web"
)

func main() {
	dumpYAML := flag.Bool("dump-yaml", false, "print the normalised configuration as YAML and exit")
	flag.Parse()

	logger := logging.New(logging.Options{Level: envOr("LOG_LEVEL", "info"), Format: envOr("LOG_FORMAT", "json"), Output: "stdout"}, version)

	if *dumpYAML {
		if err := runDumpYAML(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	logger.Info("starting algodomo-bridge", "version", version, "commit", commit, "date", date)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, logger); err != nil {
		logger.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

// run wires every component and blocks until ctx is cancelled, then shuts
// the HTTP server down gracefully. Separated from main for testability.
func run(ctx context.Context, logger *logging.Logger) error {
	dataDir := envOr("ALGODOMO_DATA_DIR", defaultDataDir)
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data directory %s: %w", dataDir, err)
	}

	configStore, err := store.LoadConfigStore(filepath.Join(dataDir, "config.json"))
	if err != nil {
		return fmt.Errorf("loading config store: %w", err)
	}

	stateStore, err := store.LoadStateStore(filepath.Join(dataDir, "state.json"))
	if err != nil {
		return fmt.Errorf("loading state store: %w", err)
	}

	locks := gateway.NewAddressLocks()
	aggregator := status.New(configStore, stateStore, locks, logger)

	webDir := envOr("ALGODOMO_WEB_DIR", defaultControlDir)
	srv, err := api.New(api.Deps{
		Host:        defaultHost,
		Port:        httpPort(),
		Logger:      logger,
		ConfigStore: configStore,
		StateStore:  stateStore,
		Locks:       locks,
		Aggregator:  aggregator,
		ControlPage: filepath.Join(webDir, "control.html"),
		ConfigPage:  filepath.Join(webDir, "config.html"),
		Version:     version,
	})
	if err != nil {
		return fmt.Errorf("building api server: %w", err)
	}

	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("starting api server: %w", err)
	}

	<-ctx.Done()
	logger.Info("shutdown signal received")

	if err := stateStore.Flush(); err != nil {
		logger.Error("failed to flush state on shutdown", "error", err)
	}

	if err := srv.Close(); err != nil {
		return fmt.Errorf("closing api server: %w", err)
	}

	logger.Info("algodomo-bridge stopped")
	return nil
}

// runDumpYAML loads the current configuration and renders it as YAML to
// stdout, for an operator without a JSON viewer handy.
func runDumpYAML() error {
	dataDir := envOr("ALGODOMO_DATA_DIR", defaultDataDir)
	configStore, err := store.LoadConfigStore(filepath.Join(dataDir, "config.json"))
	if err != nil {
		return fmt.Errorf("loading config store: %w", err)
	}

	out, err := yaml.Marshal(configStore.Get())
	if err != nil {
		return fmt.Errorf("marshalling config as yaml: %w", err)
	}
	_, err = os.Stdout.Write(out)
	return err
}

// httpPort resolves the HTTP listen port from PORT, clamped to [1,65535],
// defaulting to defaultPort on absence or an unparsable value.
func httpPort() int {
	raw := os.Getenv("PORT")
	if raw == "" {
		return defaultPort
	}
	n := 0
	if _, err := fmt.Sscanf(raw, "%d", &n); err != nil {
		return defaultPort
	}
	if n < 1 {
		return 1
	}
	if n > 65535 {
		return 65535
	}
	return n
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
