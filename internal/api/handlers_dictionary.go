// SPDX-License-Identifier: MIT

package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	xlog "github.com/ManuGH/kugiri/internal/log"
)

type phraseRequest struct {
	Phrase string `json:"phrase"`
}

type phraseListResponse struct {
	Lang    string   `json:"lang"`
	Phrases []string `json:"phrases"`
}

// dictReady reports whether the dictionary store is available and writes
// the 503 itself when it is not.
func (s *Server) dictReady(w http.ResponseWriter) bool {
	if s.dict == nil {
		writeError(w, http.StatusServiceUnavailable, "dictionary_disabled",
			"dictionary store is not configured")
		return false
	}
	return true
}

func (s *Server) handleListPhrases(w http.ResponseWriter, r *http.Request) {
	if !s.dictReady(w) {
		return
	}
	lang := chi.URLParam(r, "lang")

	phrases, err := s.dict.List(r.Context(), lang)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "dictionary_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, phraseListResponse{Lang: lang, Phrases: phrases})
}

func (s *Server) handleAddPhrase(w http.ResponseWriter, r *http.Request) {
	if !s.dictReady(w) {
		return
	}
	lang := chi.URLParam(r, "lang")

	var req phraseRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if err := s.dict.Add(r.Context(), lang, req.Phrase); err != nil {
		writeError(w, http.StatusBadRequest, "phrase_rejected", err.Error())
		return
	}

	logger := xlog.WithContext(r.Context(), s.logger)
	logger.Info().
		Str(xlog.FieldLang, lang).Msg("dictionary phrase added")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemovePhrase(w http.ResponseWriter, r *http.Request) {
	if !s.dictReady(w) {
		return
	}
	lang := chi.URLParam(r, "lang")

	phrase := strings.TrimSpace(r.URL.Query().Get("phrase"))
	if phrase == "" {
		writeError(w, http.StatusBadRequest, "missing_phrase", "phrase query parameter is required")
		return
	}

	removed, err := s.dict.Remove(r.Context(), lang, phrase)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "dictionary_error", err.Error())
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "phrase_not_found", "phrase is not in the dictionary")
		return
	}

	logger := xlog.WithContext(r.Context(), s.logger)
	logger.Info().
		Str(xlog.FieldLang, lang).Msg("dictionary phrase removed")
	w.WriteHeader(http.StatusNoContent)
}
