package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/filippobenozzi/algodomo-bridge/internal/gateway"
	"github.com/filippobenozzi/algodomo-bridge/internal/logging"
	"github.com/filippobenozzi/algodomo-bridge/internal/status"
	"github.com/filippobenozzi/algodomo-bridge/internal/store"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// Deps holds the dependencies required by the API server.
type Deps struct {
	Host        string
	Port        int
	Logger      *logging.Logger
	ConfigStore *store.ConfigStore
	StateStore  *store.StateStore
	Locks       *gateway.AddressLocks
	Aggregator  *status.Aggregator
	ControlPage string // path to the static control.html page
	ConfigPage  string // path to the static config.html page
	Version     string
}

// Server is the bridge's HTTP API server: a fixed route table dispatching
// to command handlers, the status aggregator, and the config store.
type Server struct {
	host        string
	port        int
	logger      *logging.Logger
	configStore *store.ConfigStore
	stateStore  *store.StateStore
	locks       *gateway.AddressLocks
	aggregator  *status.Aggregator
	controlPage string
	configPage  string
	version     string
	startTime   time.Time
	server      *http.Server
}

// New creates a Server. The server is not started until Start() is called.
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("api: logger is required")
	}
	if deps.ConfigStore == nil {
		return nil, fmt.Errorf("api: config store is required")
	}
	if deps.StateStore == nil {
		return nil, fmt.Errorf("api: state store is required")
	}
	if deps.Locks == nil {
		return nil, fmt.Errorf("api: address locks are required")
	}
	if deps.Aggregator == nil {
		return nil, fmt.Errorf("api: aggregator is required")
	}

	return &Server{
		host:        deps.Host,
		port:        deps.Port,
		logger:      deps.Logger,
		configStore: deps.ConfigStore,
		stateStore:  deps.StateStore,
		locks:       deps.Locks,
		aggregator:  deps.Aggregator,
		controlPage: deps.ControlPage,
		configPage:  deps.ConfigPage,
		version:     deps.Version,
		startTime:   time.Now(),
	}, nil
}

// Start begins listening for HTTP connections in a background goroutine.
func (s *Server) Start(ctx context.Context) error {
	router := s.buildRouter()

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.host, s.port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		err := s.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", "error", err)
		}
	}()

	s.logger.Info("api server listening", "address", s.server.Addr)
	return nil
}

// Close gracefully shuts down the server, waiting up to
// gracefulShutdownTimeout for in-flight requests to complete.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("api server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down api server: %w", err)
	}
	return nil
}

// gatewaySettings builds gateway.Settings from the current configuration.
func (s *Server) gatewaySettings() gateway.Settings {
	cfg := s.configStore.Get()
	return gateway.Settings{
		Host:      cfg.Gateway.Host,
		Port:      cfg.Gateway.Port,
		TimeoutMs: cfg.Gateway.TimeoutMs,
	}
}
