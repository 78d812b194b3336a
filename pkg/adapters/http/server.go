package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/conform"
	"github.com/aretw0/conform/pkg/domain"
	"github.com/aretw0/conform/pkg/ports"
	"github.com/aretw0/conform/pkg/schema"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// APIVersion is reported by GET /info.
const APIVersion = "v1"

const maxBodyBytes = 4 << 20

// Engine defines the validation core served over HTTP.
type Engine interface {
	Validate(ctx context.Context, subject any, node *schema.Node) bool
	ValidateNamed(ctx context.Context, name string, subject any) (bool, error)
	Store() ports.SchemaStore
}

// ValidateRequest is the body of POST /validate.
// Exactly one of Schema and SchemaName must be set.
type ValidateRequest struct {
	Schema     json.RawMessage `json:"schema,omitempty"`
	SchemaName string          `json:"schema_name,omitempty"`
	Subject    any             `json:"subject"`
}

// ValidateResponse is returned by POST /validate.
type ValidateResponse struct {
	Valid      bool   `json:"valid"`
	SchemaName string `json:"schema_name,omitempty"`
}

// SchemaList is returned by GET /schemas.
type SchemaList struct {
	Schemas []string `json:"schemas"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Server holds the handlers of the HTTP API.
type Server struct {
	Engine  Engine
	Streams *StreamManager

	logger     *slog.Logger
	gatherer   prometheus.Gatherer
	decodeOpts []schema.DecodeOption
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithStreams shares a StreamManager with the caller. Events reach
// GET /events only when the manager's Hooks are registered on the engine.
func WithStreams(streams *StreamManager) Option {
	return func(s *Server) {
		s.Streams = streams
	}
}

// WithGatherer exposes the gatherer on GET /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithStrictRules rejects schemas carrying unknown rule names.
func WithStrictRules() Option {
	return func(s *Server) {
		s.decodeOpts = append(s.decodeOpts, schema.WithStrictRules())
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	server := &Server{
		Engine: engine,
	}
	for _, opt := range opts {
		opt(server)
	}
	if server.logger == nil {
		server.logger = slog.Default()
	}
	if server.Streams == nil {
		server.Streams = NewStreamManager()
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(server.withTraceID)
	r.Use(server.withLogging)

	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Get("/events", server.SubscribeEvents)
	r.Post("/validate", server.Validate)
	r.Get("/schemas", server.ListSchemas)
	r.Get("/schemas/{name}", server.GetSchema)
	r.Put("/schemas/{name}", server.PutSchema)
	r.Delete("/schemas/{name}", server.DeleteSchema)

	if server.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(server.gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+domain.HeaderTraceID)
		w.Header().Set("Access-Control-Expose-Headers", domain.HeaderTraceID)
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Validate handles the POST /validate request.
func (s *Server) Validate(w http.ResponseWriter, r *http.Request) {
	var body ValidateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	inline := len(body.Schema) > 0 && string(body.Schema) != "null"
	switch {
	case inline && body.SchemaName != "":
		s.writeError(w, r, http.StatusBadRequest, errors.New("schema and schema_name are mutually exclusive"))
		return
	case !inline && body.SchemaName == "":
		s.writeError(w, r, http.StatusBadRequest, domain.ErrSchemaRequired)
		return
	}

	resp := ValidateResponse{SchemaName: body.SchemaName}
	if inline {
		node, err := schema.Parse(body.Schema, s.decodeOpts...)
		if err != nil {
			s.writeError(w, r, http.StatusBadRequest, err)
			return
		}
		resp.Valid = s.Engine.Validate(r.Context(), body.Subject, node)
	} else {
		valid, err := s.Engine.ValidateNamed(r.Context(), body.SchemaName, body.Subject)
		if err != nil {
			s.writeError(w, r, statusFor(err), err)
			return
		}
		resp.Valid = valid
	}

	s.writeJSON(w, r, http.StatusOK, resp)
}

// ListSchemas handles the GET /schemas request.
func (s *Server) ListSchemas(w http.ResponseWriter, r *http.Request) {
	names, err := s.Engine.Store().List(r.Context())
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}
	if names == nil {
		names = []string{}
	}
	s.writeJSON(w, r, http.StatusOK, SchemaList{Schemas: names})
}

// GetSchema handles the GET /schemas/{name} request.
func (s *Server) GetSchema(w http.ResponseWriter, r *http.Request) {
	node, err := s.Engine.Store().Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, node)
}

// PutSchema handles the PUT /schemas/{name} request. The body may be JSON or YAML.
func (s *Server) PutSchema(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	node, err := schema.Parse(data, s.decodeOpts...)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	if err := s.Engine.Store().Put(r.Context(), chi.URLParam(r, "name"), node); err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteSchema handles the DELETE /schemas/{name} request.
func (s *Server) DeleteSchema(w http.ResponseWriter, r *http.Request) {
	if err := s.Engine.Store().Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{
		"app":         "conform-http",
		"version":     strings.TrimSpace(conform.Version),
		"api_version": APIVersion,
	})
}

// statusFor maps store and engine errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSchemaNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidSchemaName), errors.Is(err, domain.ErrSchemaRequired):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrReadOnlyStore):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.ErrorContext(r.Context(), "response encode failed", "path", r.URL.Path, "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	} else {
		s.logger.WarnContext(r.Context(), "request rejected", "path", r.URL.Path, "error", err)
	}
	s.writeJSON(w, r, status, ErrorResponse{Error: err.Error()})
}
