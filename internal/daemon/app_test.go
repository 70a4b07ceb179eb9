// SPDX-License-Identifier: MIT

package daemon

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/goleak"

	"github.com/ManuGH/kugiri/internal/modelstore"
)

func TestAppRunStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	store, err := modelstore.New(t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("modelstore.New() error = %v", err)
	}

	mgr, err := NewManager(testServerConfig(), Deps{
		APIHandler: http.NotFoundHandler(),
		Logger:     zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}

	app := NewApp(zerolog.Nop(), mgr, store)

	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)
	go func() {
		errChan <- app.Run(ctx)
	}()

	waitForAddr(t, mgr)
	cancel()

	select {
	case err := <-errChan:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after context cancellation")
	}
}
