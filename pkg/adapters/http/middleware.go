package http

import (
	"net/http"
	"time"

	"github.com/aretw0/conform/pkg/domain"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// withTraceID propagates the caller's X-Trace-ID, or a fresh uuid, through
// the request context and echoes it on the response.
func (s *Server) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(domain.HeaderTraceID)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx := domain.WithTraceID(r.Context(), traceID)
		ctx = domain.WithSource(ctx, domain.SourceHTTP)

		w.Header().Set(domain.HeaderTraceID, traceID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.InfoContext(r.Context(), "request",
			"method", r.Method,
			"uri", r.RequestURI,
			"status", ww.Status(),
			"size", ww.BytesWritten(),
			"duration", time.Since(start),
			"trace_id", domain.TraceID(r.Context()),
		)
	})
}
