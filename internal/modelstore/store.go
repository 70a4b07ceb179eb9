// SPDX-License-Identifier: MIT

// Package modelstore manages operator-supplied segmentation models on disk.
// Models are JSON files in a single directory; the store keeps them loaded,
// installs new ones atomically and picks up external changes via fsnotify.
package modelstore

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/google/renameio/v2"
	"github.com/rs/zerolog"

	"github.com/ManuGH/kugiri/internal/metrics"
	"github.com/ManuGH/kugiri/internal/segment"
)

// nameRe restricts model names so they can never escape the model directory.
var nameRe = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

// ErrNotFound is returned when a named model does not exist in the store.
var ErrNotFound = fmt.Errorf("model not found")

// MaxModelBytes caps uploaded model files. Trained models are a few hundred
// kilobytes; anything beyond this is a mistake or abuse.
const MaxModelBytes = 16 << 20

// Store is a thread-safe registry of custom models backed by a directory.
type Store struct {
	dir    string
	logger zerolog.Logger

	mu     sync.RWMutex
	models map[string]segment.Model
	gen    uint64
}

// New creates a store over dir, creating the directory if needed, and loads
// every model already present.
func New(dir string, logger zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create model dir: %w", err)
	}

	s := &Store{
		dir:    dir,
		logger: logger,
		models: make(map[string]segment.Model),
	}
	if err := s.Scan(); err != nil {
		return nil, err
	}
	return s, nil
}

// Dir returns the directory backing the store.
func (s *Store) Dir() string {
	return s.dir
}

// Scan rebuilds the in-memory registry from the directory contents. Files
// that fail to parse are skipped with a warning so one broken upload cannot
// take every custom model offline.
func (s *Store) Scan() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("read model dir: %w", err)
	}

	next := make(map[string]segment.Model)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ".json")
		if !nameRe.MatchString(name) {
			s.logger.Warn().Str("file", e.Name()).Msg("skipping model with invalid name")
			continue
		}

		m, err := segment.LoadModelFile(filepath.Join(s.dir, e.Name()))
		if err != nil {
			s.logger.Warn().Err(err).Str("file", e.Name()).Msg("skipping unreadable model")
			continue
		}
		next[name] = m
	}

	s.mu.Lock()
	s.models = next
	s.gen++
	s.mu.Unlock()

	metrics.SetCustomModels(len(next))
	s.logger.Info().Int("models", len(next)).Msg("model directory scanned")
	return nil
}

// Generation returns a counter that increments whenever the registry
// changes. Cache keys fold it in so that installing or removing a model
// invalidates results cached under the old registry state.
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen
}

// Get returns the model with the given name.
func (s *Store) Get(name string) (segment.Model, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.models[name]
	return m, ok
}

// Names returns all custom model names in sorted order.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.models))
	for name := range s.models {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Install validates the model read from r and writes it to disk atomically
// (temp file, fsync, rename), then registers it. An existing model of the
// same name is replaced.
func (s *Store) Install(name string, r io.Reader) error {
	if !nameRe.MatchString(name) {
		return fmt.Errorf("invalid model name %q", name)
	}

	raw, err := io.ReadAll(io.LimitReader(r, MaxModelBytes+1))
	if err != nil {
		return fmt.Errorf("read model: %w", err)
	}
	if len(raw) > MaxModelBytes {
		return fmt.Errorf("model exceeds %d bytes", MaxModelBytes)
	}

	m, err := segment.LoadModel(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("invalid model: %w", err)
	}

	path := filepath.Join(s.dir, name+".json")
	pending, err := renameio.NewPendingFile(path)
	if err != nil {
		return fmt.Errorf("create pending model file: %w", err)
	}
	defer func() {
		if err := pending.Cleanup(); err != nil {
			s.logger.Debug().Err(err).Msg("cleanup pending model file")
		}
	}()

	if _, err := pending.Write(raw); err != nil {
		return fmt.Errorf("write model data: %w", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace model file: %w", err)
	}

	s.mu.Lock()
	s.models[name] = m
	s.gen++
	size := len(s.models)
	s.mu.Unlock()

	metrics.SetCustomModels(size)
	s.logger.Info().
		Str("model", name).
		Int("features", len(m)).
		Msg("custom model installed")
	return nil
}

// Remove deletes a custom model from disk and the registry.
func (s *Store) Remove(name string) error {
	if !nameRe.MatchString(name) {
		return fmt.Errorf("invalid model name %q", name)
	}

	s.mu.Lock()
	_, ok := s.models[name]
	if ok {
		delete(s.models, name)
		s.gen++
	}
	size := len(s.models)
	s.mu.Unlock()

	if !ok {
		return ErrNotFound
	}

	if err := os.Remove(filepath.Join(s.dir, name+".json")); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove model file: %w", err)
	}

	metrics.SetCustomModels(size)
	s.logger.Info().Str("model", name).Msg("custom model removed")
	return nil
}
