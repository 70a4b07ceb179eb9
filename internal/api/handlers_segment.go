// SPDX-License-Identifier: MIT

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/ManuGH/kugiri/internal/cache"
	"github.com/ManuGH/kugiri/internal/dictionary"
	xlog "github.com/ManuGH/kugiri/internal/log"
	"github.com/ManuGH/kugiri/internal/metrics"
	"github.com/ManuGH/kugiri/internal/models"
	"github.com/ManuGH/kugiri/internal/segment"
)

// segmentRequest is the body of POST /api/v1/segment. Exactly one of
// Model and Lang may be set; with neither, the configured default
// language is used.
type segmentRequest struct {
	Text      string `json:"text"`
	Model     string `json:"model,omitempty"`
	Lang      string `json:"lang,omitempty"`
	Threshold *int   `json:"threshold,omitempty"`
}

type segmentResponse struct {
	Model     string   `json:"model"`
	Threshold int      `json:"threshold"`
	Phrases   []string `json:"phrases"`
	Cached    bool     `json:"cached"`
}

type batchRequest struct {
	Texts     []string `json:"texts"`
	Model     string   `json:"model,omitempty"`
	Lang      string   `json:"lang,omitempty"`
	Threshold *int     `json:"threshold,omitempty"`
}

type batchResponse struct {
	Model   string     `json:"model"`
	Results [][]string `json:"results"`
}

// resolveModel picks the model for a request. An explicit model name is
// looked up in the custom store first, then among the bundled models. A
// language tag is matched against the bundled models.
func (s *Server) resolveModel(modelName, lang string) (segment.Model, string, error) {
	if modelName != "" && lang != "" {
		return nil, "", fmt.Errorf("model and lang are mutually exclusive")
	}
	if modelName != "" {
		if m, ok := s.store.Get(modelName); ok {
			return m, modelName, nil
		}
		m, err := models.ByName(modelName)
		if err != nil {
			return nil, "", fmt.Errorf("unknown model %q", modelName)
		}
		return m, modelName, nil
	}
	if lang == "" {
		lang = s.cfg.DefaultLang
	}
	m, name, err := models.ByLanguage(lang)
	if err != nil {
		return nil, "", fmt.Errorf("no model for language %q", lang)
	}
	return m, name, nil
}

// segmentOne runs the full pipeline for a single text: normalize,
// cache lookup, parse, dictionary merge.
func (s *Server) segmentOne(r *http.Request, m segment.Model, name, text string, threshold int) ([]string, bool) {
	if s.cfg.Normalize {
		text = norm.NFC.String(text)
	}

	key := cache.Key(name, s.store.Generation(), threshold, text)
	phrases, hit := s.cache.Get(key)
	metrics.RecordCacheLookup(hit)
	if !hit {
		phrases = segment.ParseWithThreshold(m, text, threshold)
		s.cache.Set(key, phrases, s.cfg.Cache.TTL)
	}

	if s.dict != nil {
		protected, err := s.dict.List(r.Context(), name)
		if err != nil {
			xlog.FromContext(r.Context()).Warn().Err(err).
				Str(xlog.FieldModel, name).Msg("dictionary lookup failed, merge skipped")
		} else if len(protected) > 0 {
			var merges int
			phrases, merges = dictionary.Apply(text, protected, phrases)
			if merges > 0 {
				metrics.RecordDictionaryMerges(merges)
			}
		}
	}

	return phrases, hit
}

func (s *Server) handleSegment(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req segmentRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if len(req.Text) > s.cfg.MaxTextBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "text_too_large",
			fmt.Sprintf("text exceeds %d bytes", s.cfg.MaxTextBytes))
		return
	}

	m, name, err := s.resolveModel(req.Model, req.Lang)
	if err != nil {
		status := http.StatusNotFound
		if req.Model != "" && req.Lang != "" {
			status = http.StatusBadRequest
		}
		writeError(w, status, "model_resolution_failed", err.Error())
		metrics.RecordSegment(req.Model, err, time.Since(start), 0)
		return
	}

	threshold := s.cfg.Threshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}

	phrases, cached := s.segmentOne(r, m, name, req.Text, threshold)
	metrics.RecordSegment(name, nil, time.Since(start), len(phrases))

	logger := xlog.WithContext(r.Context(), s.logger)
	logger.Debug().
		Str(xlog.FieldModel, name).
		Int(xlog.FieldThreshold, threshold).
		Int(xlog.FieldPhrases, len(phrases)).
		Int(xlog.FieldTextBytes, len(req.Text)).
		Msg("segmented")

	writeJSON(w, http.StatusOK, segmentResponse{
		Model:     name,
		Threshold: threshold,
		Phrases:   phrases,
		Cached:    cached,
	})
}

func (s *Server) handleSegmentBatch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req batchRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if len(req.Texts) == 0 {
		writeError(w, http.StatusBadRequest, "empty_batch", "texts must not be empty")
		return
	}
	if len(req.Texts) > s.cfg.MaxBatchSize {
		writeError(w, http.StatusRequestEntityTooLarge, "batch_too_large",
			fmt.Sprintf("batch exceeds %d texts", s.cfg.MaxBatchSize))
		return
	}
	for i, text := range req.Texts {
		if len(text) > s.cfg.MaxTextBytes {
			writeError(w, http.StatusRequestEntityTooLarge, "text_too_large",
				fmt.Sprintf("texts[%d] exceeds %d bytes", i, s.cfg.MaxTextBytes))
			return
		}
	}

	m, name, err := s.resolveModel(req.Model, req.Lang)
	if err != nil {
		status := http.StatusNotFound
		if req.Model != "" && req.Lang != "" {
			status = http.StatusBadRequest
		}
		writeError(w, status, "model_resolution_failed", err.Error())
		return
	}

	threshold := s.cfg.Threshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}

	results := make([][]string, len(req.Texts))
	total := 0
	for i, text := range req.Texts {
		phrases, _ := s.segmentOne(r, m, name, text, threshold)
		results[i] = phrases
		total += len(phrases)
	}
	metrics.RecordSegment(name, nil, time.Since(start), total)

	writeJSON(w, http.StatusOK, batchResponse{Model: name, Results: results})
}

// decodeBody reads a JSON body with the configured size cap. It writes
// the error response itself and reports whether decoding succeeded.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, int64(s.cfg.MaxTextBytes)*int64(s.cfg.MaxBatchSize)+4096)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "body_too_large",
				fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit))
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return false
	}
	return true
}
