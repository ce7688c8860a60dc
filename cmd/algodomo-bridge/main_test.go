package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/filippobenozzi/algodomo-bridge/internal/logging"
)

func TestHTTPPortDefaultsWhenUnset(t *testing.T) {
	orig := os.Getenv("PORT")
	defer os.Setenv("PORT", orig)
	os.Unsetenv("PORT")

	if got := httpPort(); got != defaultPort {
		t.Fatalf("httpPort() = %d, want %d", got, defaultPort)
	}
}

func TestHTTPPortClampsOutOfRange(t *testing.T) {
	orig := os.Getenv("PORT")
	defer os.Setenv("PORT", orig)

	os.Setenv("PORT", "0")
	if got := httpPort(); got != 1 {
		t.Fatalf("httpPort() = %d, want 1 (clamped)", got)
	}

	os.Setenv("PORT", "99999")
	if got := httpPort(); got != 65535 {
		t.Fatalf("httpPort() = %d, want 65535 (clamped)", got)
	}
}

func TestHTTPPortFallsBackOnUnparsable(t *testing.T) {
	orig := os.Getenv("PORT")
	defer os.Setenv("PORT", orig)

	os.Setenv("PORT", "not-a-number")
	if got := httpPort(); got != defaultPort {
		t.Fatalf("httpPort() = %d, want %d (fallback)", got, defaultPort)
	}
}

func TestEnvOrFallsBackWhenUnset(t *testing.T) {
	if got := envOr("ALGODOMO_DOES_NOT_EXIST", "fallback"); got != "fallback" {
		t.Fatalf("envOr() = %q, want %q", got, "fallback")
	}
}

func TestRunStartsAndStopsOnCancel(t *testing.T) {
	dataDir := t.TempDir()
	origData := os.Getenv("ALGODOMO_DATA_DIR")
	defer os.Setenv("ALGODOMO_DATA_DIR", origData)
	os.Setenv("ALGODOMO_DATA_DIR", dataDir)

	origPort := os.Getenv("PORT")
	defer os.Setenv("PORT", origPort)
	os.Setenv("PORT", "18532")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- run(ctx, logging.Default()) }()

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run() returned error: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("run() did not return after context cancellation")
	}

	if _, err := os.Stat(filepath.Join(dataDir, "config.json")); err != nil {
		t.Fatalf("expected config.json to be seeded: %v", err)
	}
}
