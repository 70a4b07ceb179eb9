// SPDX-License-Identifier: MIT

// Package daemon manages the kugiri process lifecycle: the API and metrics
// listeners, background workers and ordered shutdown.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/net/netutil"

	"github.com/ManuGH/kugiri/internal/config"
)

// ErrManagerNotStarted is returned by Shutdown before Start has run.
var ErrManagerNotStarted = errors.New("manager not started")

// ShutdownHook performs cleanup during graceful shutdown. Hooks run in
// reverse registration order (LIFO).
type ShutdownHook func(ctx context.Context) error

// Deps carries the handlers the manager serves.
type Deps struct {
	APIHandler     http.Handler
	MetricsHandler http.Handler
	Logger         zerolog.Logger
}

// Validate checks the required dependencies.
func (d Deps) Validate() error {
	if d.APIHandler == nil {
		return fmt.Errorf("api handler is required")
	}
	return nil
}

type namedHook struct {
	name string
	hook ShutdownHook
}

// Manager runs the HTTP servers and coordinates shutdown.
type Manager struct {
	serverCfg config.ServerConfig
	deps      Deps

	apiServer     *http.Server
	metricsServer *http.Server
	apiAddr       string

	mu            sync.Mutex
	shutdownHooks []namedHook
	started       bool
	stopping      bool

	logger zerolog.Logger
}

// NewManager creates a daemon manager.
func NewManager(serverCfg config.ServerConfig, deps Deps) (*Manager, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dependencies: %w", err)
	}

	return &Manager{
		serverCfg: serverCfg,
		deps:      deps,
		logger:    deps.Logger.With().Str("component", "manager").Logger(),
	}, nil
}

// Start starts the servers and blocks until the context is cancelled or a
// server fails, then performs a bounded graceful shutdown.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return fmt.Errorf("manager already started")
	}
	m.started = true
	m.mu.Unlock()

	m.logger.Info().
		Str("listen", m.serverCfg.ListenAddr).
		Dur("read_timeout", m.serverCfg.ReadTimeout).
		Dur("shutdown_timeout", m.serverCfg.ShutdownTimeout).
		Msg("starting daemon manager")

	errChan := make(chan error, 2)

	if m.deps.MetricsHandler != nil && m.serverCfg.MetricsAddr != "" {
		m.startMetricsServer(errChan)
	}
	if err := m.startAPIServer(errChan); err != nil {
		return err
	}

	select {
	case err := <-errChan:
		m.logger.Error().Err(err).Msg("server error, initiating shutdown")
		shutdownCtx, cancel := m.detachedShutdownContext(ctx)
		defer cancel()
		if shutdownErr := m.Shutdown(shutdownCtx); shutdownErr != nil {
			return errors.Join(err, shutdownErr)
		}
		return err
	case <-ctx.Done():
		m.logger.Info().Msg("shutdown signal received")
		shutdownCtx, cancel := m.detachedShutdownContext(ctx)
		defer cancel()
		return m.Shutdown(shutdownCtx)
	}
}

// detachedShutdownContext is bounded but survives parent cancellation, so
// in-flight requests can drain after the signal context is done.
func (m *Manager) detachedShutdownContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := m.serverCfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return context.WithTimeout(context.WithoutCancel(ctx), timeout)
}

func (m *Manager) startAPIServer(errChan chan<- error) error {
	m.apiServer = &http.Server{
		Handler:           m.deps.APIHandler,
		ReadTimeout:       m.serverCfg.ReadTimeout,
		ReadHeaderTimeout: m.serverCfg.ReadTimeout / 2,
		WriteTimeout:      m.serverCfg.WriteTimeout,
		IdleTimeout:       m.serverCfg.IdleTimeout,
		MaxHeaderBytes:    m.serverCfg.MaxHeaderBytes,
	}

	ln, err := net.Listen("tcp", m.serverCfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("api listen on %s: %w", m.serverCfg.ListenAddr, err)
	}
	if m.serverCfg.MaxConns > 0 {
		ln = netutil.LimitListener(ln, m.serverCfg.MaxConns)
	}

	m.mu.Lock()
	m.apiAddr = ln.Addr().String()
	m.mu.Unlock()

	go func() {
		m.logger.Info().
			Str("addr", ln.Addr().String()).
			Int("max_conns", m.serverCfg.MaxConns).
			Msg("api server listening")

		if err := m.apiServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("api server: %w", err)
		}
	}()

	return nil
}

func (m *Manager) startMetricsServer(errChan chan<- error) {
	m.metricsServer = &http.Server{
		Addr:              m.serverCfg.MetricsAddr,
		Handler:           m.deps.MetricsHandler,
		ReadHeaderTimeout: m.serverCfg.ReadTimeout / 2,
	}

	go func() {
		m.logger.Info().
			Str("addr", m.serverCfg.MetricsAddr).
			Msg("metrics server listening")

		if err := m.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("metrics server: %w", err)
		}
	}()
}

// Shutdown drains the servers and runs the registered hooks LIFO. Calling
// it twice is a no-op.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	if m.stopping {
		m.mu.Unlock()
		return nil
	}
	if !m.started {
		m.mu.Unlock()
		return ErrManagerNotStarted
	}
	m.stopping = true
	hooks := make([]namedHook, len(m.shutdownHooks))
	copy(hooks, m.shutdownHooks)
	m.mu.Unlock()

	m.logger.Info().Msg("shutting down")

	var errs []error

	if m.apiServer != nil {
		if err := m.apiServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("api server shutdown: %w", err))
		}
	}
	if m.metricsServer != nil {
		if err := m.metricsServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	for i := len(hooks) - 1; i >= 0; i-- {
		h := hooks[i]
		start := time.Now()
		if err := h.hook(ctx); err != nil {
			m.logger.Error().Err(err).
				Str("hook", h.name).
				Dur("duration", time.Since(start)).
				Msg("shutdown hook failed")
			errs = append(errs, fmt.Errorf("hook %s: %w", h.name, err))
			continue
		}
		m.logger.Debug().
			Str("hook", h.name).
			Dur("duration", time.Since(start)).
			Msg("shutdown hook completed")
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %w", errors.Join(errs...))
	}

	m.logger.Info().Msg("stopped cleanly")
	return nil
}

// Addr reports the bound API listener address, useful when the configured
// port is 0. Empty until Start has opened the listener.
func (m *Manager) Addr() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.apiAddr
}

// RegisterShutdownHook registers a cleanup function executed during
// Shutdown in reverse registration order.
func (m *Manager) RegisterShutdownHook(name string, hook ShutdownHook) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shutdownHooks = append(m.shutdownHooks, namedHook{name: name, hook: hook})
}
