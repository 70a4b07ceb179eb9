// SPDX-License-Identifier: MIT

package api

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"

	xlog "github.com/ManuGH/kugiri/internal/log"
)

// requestID assigns every request an ID (honouring X-Request-ID from the
// caller) and carries it in the context and response header.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get("X-Request-ID"))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		ctx := xlog.ContextWithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestLogger logs one line per request with status and duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/healthz" || r.URL.Path == "/readyz" {
			next.ServeHTTP(w, r)
			return
		}

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		logger := xlog.WithContext(r.Context(), s.logger)
		logger.Info().
			Str("method", r.Method).
			Str(xlog.FieldPath, r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Int("bytes", ww.BytesWritten()).
			Msg("request")
	})
}

// rateLimit limits requests per client IP using a sliding window counter.
func rateLimit(requestLimit int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(
		requestLimit,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
			writeError(w, http.StatusTooManyRequests, "rate_limit_exceeded",
				"Too many requests. Please try again later.")
		}),
	)
}

// otelHTTP wraps the handler with OpenTelemetry HTTP instrumentation.
// Health and metrics probes are filtered out to reduce noise.
func otelHTTP(serviceName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(
			next,
			serviceName,
			otelhttp.WithTracerProvider(otel.GetTracerProvider()),
			otelhttp.WithFilter(func(r *http.Request) bool {
				switch r.URL.Path {
				case "/healthz", "/readyz", "/metrics":
					return false
				}
				return true
			}),
			otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
				return operation + " " + r.URL.Path
			}),
		)
	}
}

// requireToken gates mutating endpoints behind the configured API token.
// Without a configured token, mutations are rejected outright: an open
// write surface is never the default.
func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.APIToken == "" {
			writeError(w, http.StatusForbidden, "mutations_disabled",
				"Set KUGIRI_API_TOKEN to enable model and dictionary management.")
			return
		}

		auth := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(s.cfg.APIToken)) != 1 {
			writeError(w, http.StatusUnauthorized, "unauthorized", "invalid or missing bearer token")
			return
		}

		next.ServeHTTP(w, r)
	})
}
