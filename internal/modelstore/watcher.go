// SPDX-License-Identifier: MIT

package modelstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/ManuGH/kugiri/internal/metrics"
)

// debounce is how long the watcher waits after the last relevant event
// before rescanning, so multi-file copies trigger one reload.
const debounce = 250 * time.Millisecond

// Watch rescans the model directory whenever its JSON files change. It
// blocks until ctx is cancelled. Rescans are additionally limited to one per
// second so a runaway writer cannot monopolise the store lock.
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(s.dir); err != nil {
		return fmt.Errorf("watch model dir: %w", err)
	}

	limiter := rate.NewLimiter(rate.Every(time.Second), 1)

	var timer *time.Timer
	var timerC <-chan time.Time

	arm := func() {
		if timer == nil {
			timer = time.NewTimer(debounce)
			timerC = timer.C
			return
		}
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(debounce)
	}

	s.logger.Info().Str("dir", s.dir).Msg("watching model directory")

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(event.Name, ".json") {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			arm()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn().Err(err).Msg("model watcher error")

		case <-timerC:
			timerC = nil
			if err := limiter.Wait(ctx); err != nil {
				return nil
			}
			if err := s.Scan(); err != nil {
				s.logger.Warn().Err(err).Msg("model rescan failed")
				continue
			}
			metrics.RecordModelReload()
		}
	}
}
