// SPDX-License-Identifier: MIT

package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/kugiri/internal/cache"
	"github.com/ManuGH/kugiri/internal/config"
	"github.com/ManuGH/kugiri/internal/dictionary"
	"github.com/ManuGH/kugiri/internal/health"
	"github.com/ManuGH/kugiri/internal/modelstore"
	"github.com/ManuGH/kugiri/internal/segment"
)

const testToken = "test-token"

func newTestServer(t *testing.T, mutate func(*config.AppConfig)) (*Server, http.Handler) {
	t.Helper()

	dir := t.TempDir()
	store, err := modelstore.New(filepath.Join(dir, "models"), zerolog.Nop())
	require.NoError(t, err)

	dict, err := dictionary.Open(filepath.Join(dir, "dict.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = dict.Close() })

	cfg := config.AppConfig{
		DefaultLang:  "ja",
		Threshold:    segment.DefaultThreshold,
		MaxTextBytes: 4096,
		MaxBatchSize: 16,
		APIToken:     testToken,
		Cache:        config.CacheConfig{Backend: config.CacheMemory, TTL: time.Minute},
	}
	if mutate != nil {
		mutate(&cfg)
	}
	require.NoError(t, cfg.Validate())

	srv := NewServer(Deps{
		Config:  cfg,
		Store:   store,
		Dict:    dict,
		Cache:   cache.NewMemoryCache(time.Minute),
		Health:  health.NewManager("test"),
		Version: "test",
	})
	return srv, srv.Routes()
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func doRaw(t *testing.T, h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

func TestHealthEndpoints(t *testing.T) {
	_, h := newTestServer(t, nil)

	rec := doJSON(t, h, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[health.HealthResponse](t, rec)
	require.Equal(t, health.StatusHealthy, resp.Status)

	rec = doJSON(t, h, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	ready := decode[health.ReadinessResponse](t, rec)
	require.True(t, ready.Ready)
}

func TestStatusEndpoint(t *testing.T) {
	_, h := newTestServer(t, nil)

	rec := doJSON(t, h, http.MethodGet, "/api/v1/status", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	st := decode[statusResponse](t, rec)
	require.Equal(t, "test", st.Version)
	require.Equal(t, "ja", st.DefaultLang)
	require.Contains(t, st.Bundled, "ja")
	require.Contains(t, st.Bundled, "th")
	require.Empty(t, st.Custom)
}

func TestRequestIDPropagation(t *testing.T) {
	_, h := newTestServer(t, nil)

	rec := doJSON(t, h, http.MethodGet, "/healthz", "", nil)
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "caller-supplied")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, "caller-supplied", rec.Header().Get("X-Request-ID"))
}

func TestRateLimit(t *testing.T) {
	_, h := newTestServer(t, func(cfg *config.AppConfig) {
		cfg.RateLimit = 2
		cfg.RateWindow = time.Minute
	})

	body := segmentRequest{Text: "こんにちは"}
	for i := 0; i < 2; i++ {
		rec := doJSON(t, h, http.MethodPost, "/api/v1/segment", "", body)
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}

	rec := doJSON(t, h, http.MethodPost, "/api/v1/segment", "", body)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestMutationsRequireToken(t *testing.T) {
	_, h := newTestServer(t, nil)

	rec := doJSON(t, h, http.MethodPut, "/api/v1/dictionary/ja", "", phraseRequest{Phrase: "東京都"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, h, http.MethodPut, "/api/v1/dictionary/ja", "wrong", phraseRequest{Phrase: "東京都"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, h, http.MethodPut, "/api/v1/dictionary/ja", testToken, phraseRequest{Phrase: "東京都"})
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestMutationsDisabledWithoutConfiguredToken(t *testing.T) {
	_, h := newTestServer(t, func(cfg *config.AppConfig) {
		cfg.APIToken = ""
	})

	rec := doJSON(t, h, http.MethodPut, "/api/v1/dictionary/ja", "anything", phraseRequest{Phrase: "東京都"})
	require.Equal(t, http.StatusForbidden, rec.Code)
}
