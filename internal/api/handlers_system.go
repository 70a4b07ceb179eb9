// SPDX-License-Identifier: MIT

package api

import (
	"net/http"

	"github.com/ManuGH/kugiri/internal/cache"
	"github.com/ManuGH/kugiri/internal/health"
	"github.com/ManuGH/kugiri/internal/models"
)

type statusResponse struct {
	Version      string      `json:"version"`
	DefaultLang  string      `json:"default_lang"`
	Threshold    int         `json:"threshold"`
	Bundled      []string    `json:"bundled_models"`
	Custom       []string    `json:"custom_models"`
	CacheBackend string      `json:"cache_backend"`
	Cache        cache.Stats `json:"cache"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.health.Health(r.Context()))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	resp := s.health.Ready(r.Context())
	status := http.StatusOK
	if resp.Status != health.StatusHealthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{
		Version:      s.version,
		DefaultLang:  s.cfg.DefaultLang,
		Threshold:    s.cfg.Threshold,
		Bundled:      models.Names(),
		Custom:       s.store.Names(),
		CacheBackend: s.cfg.Cache.Backend,
		Cache:        s.cache.Stats(),
	})
}
