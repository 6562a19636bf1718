package httpserver

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/newsfold/news-service/internal/observability"
)

type contextKey string

const ctxKeyCorrelationID contextKey = "correlation_id"

// maxRequestBodySize caps request bodies at 1 MB. Every payload this API
// accepts is a small JSON object.
const maxRequestBodySize = 1 << 20

// correlationIDMiddleware ensures every request carries a correlation ID,
// echoing a client-supplied X-Correlation-ID or minting a fresh one.
func correlationIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		correlationID := r.Header.Get("X-Correlation-ID")
		if correlationID == "" {
			correlationID = middleware.GetReqID(r.Context())
		}
		if correlationID == "" {
			correlationID = uuid.NewString()
		}

		w.Header().Set("X-Correlation-ID", correlationID)
		ctx := context.WithValue(r.Context(), ctxKeyCorrelationID, correlationID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// correlationIDFromContext extracts the correlation ID from the request context.
func correlationIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyCorrelationID).(string); ok {
		return v
	}
	return ""
}

// jsonContentTypeMiddleware sets Content-Type: application/json for all responses.
func jsonContentTypeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// bodyLimitMiddleware rejects request bodies larger than maxRequestBodySize
// before a handler ever reads them.
func bodyLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		}
		next.ServeHTTP(w, r)
	})
}

// requestLoggerMiddleware logs one line per request with status and latency,
// and records the HTTP request metrics. The route pattern (not the raw path)
// labels the metrics so ids do not explode cardinality.
func requestLoggerMiddleware(logger zerolog.Logger, metrics *observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			elapsed := time.Since(start)
			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = "unmatched"
			}

			reqLogger := observability.WithRequestContext(
				logger, correlationIDFromContext(r.Context()), r.Method, r.URL.Path,
			)
			reqLogger.Info().
				Str("route", route).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", elapsed).
				Msg("request completed")

			if metrics != nil {
				metrics.HTTPRequestsTotal.WithLabelValues(
					r.Method, route, strconv.Itoa(ww.Status()),
				).Inc()
				metrics.HTTPRequestDuration.WithLabelValues(
					r.Method, route,
				).Observe(elapsed.Seconds())
			}
		})
	}
}
