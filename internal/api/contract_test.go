// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

const openapiPath = "../../api/openapi.yaml"

var (
	openapiOnce sync.Once
	openapiDoc  *openapi3.T
	openapiErr  error
)

func loadOpenAPIDoc(t *testing.T) *openapi3.T {
	t.Helper()
	openapiOnce.Do(func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromFile(openapiPath)
		if err != nil {
			openapiErr = err
			return
		}
		if err := doc.Validate(context.Background()); err != nil {
			openapiErr = err
			return
		}
		openapiDoc = doc
	})
	if openapiErr != nil {
		t.Fatalf("openapi load failed: %v", openapiErr)
	}
	return openapiDoc
}

// Every route the router serves must be documented, and every documented
// path must be served. Drift in either direction fails here.
func TestRouterMatchesOpenAPIDoc(t *testing.T) {
	doc := loadOpenAPIDoc(t)
	srv, _ := newTestServer(t, nil)

	served := map[string]struct{}{}
	router := srv.Routes().(chi.Routes)
	err := chi.Walk(router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		served[method+" "+strings.TrimSuffix(route, "/")] = struct{}{}
		return nil
	})
	require.NoError(t, err)

	for path, item := range doc.Paths.Map() {
		for method := range item.Operations() {
			key := strings.ToUpper(method) + " " + path
			require.Contains(t, served, key, "documented but not served: %s", key)
			delete(served, key)
		}
	}
	require.Empty(t, served, "served but undocumented routes")
}

func TestRequestsValidateAgainstSchema(t *testing.T) {
	doc := loadOpenAPIDoc(t)
	router, err := legacy.NewRouter(doc)
	require.NoError(t, err)

	validate := func(t *testing.T, method, path, body string, wantErr bool) {
		t.Helper()
		req, err := http.NewRequest(method, "http://localhost"+path, strings.NewReader(body))
		require.NoError(t, err)
		if body != "" {
			req.Header.Set("Content-Type", "application/json")
		}

		route, pathParams, err := router.FindRoute(req)
		require.NoError(t, err)

		err = openapi3filter.ValidateRequest(context.Background(), &openapi3filter.RequestValidationInput{
			Request:    req,
			PathParams: pathParams,
			Route:      route,
			Options:    &openapi3filter.Options{AuthenticationFunc: openapi3filter.NoopAuthenticationFunc},
		})
		if wantErr {
			require.Error(t, err)
		} else {
			require.NoError(t, err)
		}
	}

	t.Run("segment request", func(t *testing.T) {
		validate(t, http.MethodPost, "/api/v1/segment", `{"text":"これはテストです。","lang":"ja"}`, false)
	})
	t.Run("segment without text", func(t *testing.T) {
		validate(t, http.MethodPost, "/api/v1/segment", `{"lang":"ja"}`, true)
	})
	t.Run("batch request", func(t *testing.T) {
		validate(t, http.MethodPost, "/api/v1/segment/batch", `{"texts":["a","b"],"threshold":500}`, false)
	})
	t.Run("phrase request", func(t *testing.T) {
		validate(t, http.MethodPut, "/api/v1/dictionary/ja", `{"phrase":"東京都"}`, false)
	})
	t.Run("model upload", func(t *testing.T) {
		validate(t, http.MethodPut, "/api/v1/models/custom1", `{"UW4:x":5000}`, false)
	})
}
