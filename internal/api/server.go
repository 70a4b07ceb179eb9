// SPDX-License-Identifier: MIT

// Package api implements the kugiri HTTP API: phrase segmentation,
// model management and dictionary management.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/ManuGH/kugiri/internal/cache"
	"github.com/ManuGH/kugiri/internal/config"
	"github.com/ManuGH/kugiri/internal/dictionary"
	"github.com/ManuGH/kugiri/internal/health"
	xlog "github.com/ManuGH/kugiri/internal/log"
	"github.com/ManuGH/kugiri/internal/modelstore"
)

// Deps carries everything the server needs. All fields except Dict are
// required; a nil Dict disables dictionary merging and the dictionary
// endpoints return 503.
type Deps struct {
	Config  config.AppConfig
	Store   *modelstore.Store
	Dict    *dictionary.Store
	Cache   cache.Cache
	Health  *health.Manager
	Version string
}

// Server holds the route handlers and their dependencies.
type Server struct {
	cfg     config.AppConfig
	store   *modelstore.Store
	dict    *dictionary.Store
	cache   cache.Cache
	health  *health.Manager
	version string
	logger  zerolog.Logger
}

// NewServer wires the handlers. Call Routes to obtain the handler tree.
func NewServer(deps Deps) *Server {
	return &Server{
		cfg:     deps.Config,
		store:   deps.Store,
		dict:    deps.Dict,
		cache:   deps.Cache,
		health:  deps.Health,
		version: deps.Version,
		logger:  xlog.WithComponent("api"),
	}
}

// Routes builds the chi router with the full middleware stack.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(s.requestLogger)
	r.Use(otelHTTP("kugiri"))
	if s.cfg.RateLimit > 0 {
		r.Use(rateLimit(s.cfg.RateLimit, s.cfg.RateWindow))
	}

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/segment", s.handleSegment)
		r.Post("/segment/batch", s.handleSegmentBatch)

		r.Get("/models", s.handleListModels)
		r.Get("/status", s.handleStatus)

		r.Group(func(r chi.Router) {
			r.Use(s.requireToken)
			r.Put("/models/{name}", s.handleInstallModel)
			r.Delete("/models/{name}", s.handleRemoveModel)
			r.Put("/dictionary/{lang}", s.handleAddPhrase)
			r.Delete("/dictionary/{lang}", s.handleRemovePhrase)
		})
		r.Get("/dictionary/{lang}", s.handleListPhrases)
	})

	return r
}
