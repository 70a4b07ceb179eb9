// SPDX-License-Identifier: MIT

package daemon

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ManuGH/kugiri/internal/modelstore"
)

// App owns the long-lived runtime: the model directory watcher, the reload
// signal handler and the server lifecycle via Manager.
type App struct {
	logger       zerolog.Logger
	manager      *Manager
	store        *modelstore.Store
	reloadSignal os.Signal
}

// NewApp creates the runtime orchestrator. store may be nil when no model
// directory is configured.
func NewApp(logger zerolog.Logger, manager *Manager, store *modelstore.Store) *App {
	return &App{
		logger:       logger,
		manager:      manager,
		store:        store,
		reloadSignal: syscall.SIGHUP,
	}
}

// Run starts the background subsystems and blocks until ctx is cancelled or
// a fatal error occurs.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	// Model directory watcher is best-effort: a missing inotify backend
	// should not prevent startup. SIGHUP still forces a rescan.
	if a.store != nil {
		g.Go(func() error {
			if err := a.store.Watch(ctx); err != nil {
				a.logger.Warn().Err(err).
					Str("event", "models.watch_failed").
					Msg("model watcher stopped, falling back to reload signal")
			}
			return nil
		})

		g.Go(func() error {
			hup := make(chan os.Signal, 1)
			signal.Notify(hup, a.reloadSignal)
			defer signal.Stop(hup)

			for {
				select {
				case <-ctx.Done():
					return nil
				case <-hup:
					a.logger.Info().
						Str("event", "models.reload_signal").
						Str("signal", a.reloadSignal.String()).
						Msg("received reload signal, rescanning models")
					if err := a.store.Scan(); err != nil {
						a.logger.Warn().Err(err).
							Str("event", "models.rescan_failed").
							Msg("model rescan failed")
					}
				}
			}
		})
	}

	g.Go(func() error {
		return a.manager.Start(ctx)
	})

	return g.Wait()
}
