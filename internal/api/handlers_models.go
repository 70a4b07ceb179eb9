// SPDX-License-Identifier: MIT

package api

import (
	"errors"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	xlog "github.com/ManuGH/kugiri/internal/log"
	"github.com/ManuGH/kugiri/internal/models"
	"github.com/ManuGH/kugiri/internal/modelstore"
)

type modelInfo struct {
	Name   string `json:"name"`
	Source string `json:"source"` // "bundled" or "custom"
}

type modelListResponse struct {
	Models []modelInfo `json:"models"`
}

func (s *Server) handleListModels(w http.ResponseWriter, r *http.Request) {
	list := make([]modelInfo, 0, 8)
	for _, name := range models.Names() {
		list = append(list, modelInfo{Name: name, Source: "bundled"})
	}
	for _, name := range s.store.Names() {
		list = append(list, modelInfo{Name: name, Source: "custom"})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })

	writeJSON(w, http.StatusOK, modelListResponse{Models: list})
}

func (s *Server) handleInstallModel(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	r.Body = http.MaxBytesReader(w, r.Body, modelstore.MaxModelBytes+1)
	if err := s.store.Install(name, r.Body); err != nil {
		writeError(w, http.StatusBadRequest, "model_install_failed", err.Error())
		return
	}

	logger := xlog.WithContext(r.Context(), s.logger)
	logger.Info().
		Str(xlog.FieldModel, name).Msg("model installed")
	writeJSON(w, http.StatusCreated, modelInfo{Name: name, Source: "custom"})
}

func (s *Server) handleRemoveModel(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := s.store.Remove(name); err != nil {
		if errors.Is(err, modelstore.ErrNotFound) {
			writeError(w, http.StatusNotFound, "model_not_found", "no custom model named "+name)
			return
		}
		writeError(w, http.StatusBadRequest, "model_remove_failed", err.Error())
		return
	}

	logger := xlog.WithContext(r.Context(), s.logger)
	logger.Info().
		Str(xlog.FieldModel, name).Msg("model removed")
	w.WriteHeader(http.StatusNoContent)
}
