// SPDX-License-Identifier: MIT

package modelstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const tinyModel = `{"UW4:x": 1500, "UW3:y": -200}`

func newStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	return s
}

func TestScanLoadsExistingModels(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "custom-ja.json"), []byte(tinyModel), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600))

	s, err := New(dir, zerolog.Nop())
	require.NoError(t, err)

	require.Equal(t, []string{"custom-ja"}, s.Names())

	m, ok := s.Get("custom-ja")
	require.True(t, ok)
	require.Equal(t, 1500, m["UW4:x"])
}

func TestScanSkipsBrokenModel(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "good.json"), []byte(tinyModel), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{oops"), 0o600))

	s, err := New(dir, zerolog.Nop())
	require.NoError(t, err)

	require.Equal(t, []string{"good"}, s.Names())
}

func TestInstallAndRemove(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.Install("tuned", strings.NewReader(tinyModel)))

	// On disk and in memory.
	_, err := os.Stat(filepath.Join(s.Dir(), "tuned.json"))
	require.NoError(t, err)
	_, ok := s.Get("tuned")
	require.True(t, ok)

	require.NoError(t, s.Remove("tuned"))
	_, ok = s.Get("tuned")
	require.False(t, ok)
	_, err = os.Stat(filepath.Join(s.Dir(), "tuned.json"))
	require.True(t, os.IsNotExist(err))
}

func TestGenerationAdvancesOnChange(t *testing.T) {
	s := newStore(t)
	gen := s.Generation()

	require.NoError(t, s.Install("tuned", strings.NewReader(tinyModel)))
	require.Greater(t, s.Generation(), gen)
	gen = s.Generation()

	require.NoError(t, s.Remove("tuned"))
	require.Greater(t, s.Generation(), gen)
	gen = s.Generation()

	require.NoError(t, s.Scan())
	require.Greater(t, s.Generation(), gen)

	// A failed removal leaves the registry, and the counter, untouched.
	gen = s.Generation()
	require.ErrorIs(t, s.Remove("ghost"), ErrNotFound)
	require.Equal(t, gen, s.Generation())
}

func TestInstallRejectsInvalid(t *testing.T) {
	s := newStore(t)

	require.Error(t, s.Install("bad", strings.NewReader("not json")), "malformed json")
	require.Error(t, s.Install("empty", strings.NewReader("{}")), "model without features")
	require.Error(t, s.Install("../escape", strings.NewReader(tinyModel)), "path traversal in name")
	require.Error(t, s.Install("UPPER", strings.NewReader(tinyModel)), "uppercase name")

	require.Empty(t, s.Names())
}

func TestRemoveMissing(t *testing.T) {
	s := newStore(t)
	require.ErrorIs(t, s.Remove("ghost"), ErrNotFound)
}

func TestWatchPicksUpNewModel(t *testing.T) {
	s := newStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = s.Watch(ctx)
	}()

	// Give the watcher a moment to register before writing.
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "dropped.json"), []byte(tinyModel), 0o600))

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if _, ok := s.Get("dropped"); ok {
			cancel()
			<-done
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("watcher never loaded the dropped model")
}
