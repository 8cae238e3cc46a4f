// Package middleware provides HTTP middleware for the API.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/stride-risk/internal/api/shared"
	"github.com/phrazzld/stride-risk/internal/platform/logger"
)

// TraceMiddleware adds a trace ID to the request context, along with a
// logger carrying it, and echoes the trace ID in the response header.
// A well-formed X-Trace-ID sent by the caller is reused.
func TraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if incoming := r.Header.Get(shared.TraceIDHeader); shared.IsValidTraceID(incoming) {
				ctx = shared.WithTraceID(ctx, incoming)
			} else {
				ctx = shared.SetTraceID(ctx)
			}

			traceID := shared.GetTraceID(ctx)
			log := base.With(slog.String("trace_id", traceID))
			ctx = logger.WithLogger(ctx, log)

			w.Header().Set(shared.TraceIDHeader, traceID)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
