// Package server exposes filter resolution and ledger analytics over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/etnz/ledgerview"
	"github.com/etnz/ledgerview/config"
	"github.com/etnz/ledgerview/date"
	"github.com/etnz/ledgerview/logger"
	"github.com/etnz/ledgerview/source"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Server serves the ledgerview API.
type Server struct {
	src        source.Provider
	businessID string
	limit      int
	bounds     date.Range
	analyze    ledgerview.AnalyzeOptions
	now        func() time.Time
	log        zerolog.Logger
	router     chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithClock sets the clock deciding what "today" is.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithBounds restricts every request to the given dates.
func WithBounds(r date.Range) Option {
	return func(s *Server) { s.bounds = r }
}

// New returns a server reading lines from src.
func New(src source.Provider, cfg *config.Config, log zerolog.Logger, opts ...Option) *Server {
	s := &Server{
		src:        src,
		businessID: cfg.Source.BusinessID,
		limit:      cfg.Source.Limit,
		analyze:    ledgerview.AnalyzeOptions{UnfilteredRollups: cfg.Server.UnfilteredRollups},
		now:        cfg.Now,
		log:        log,
	}
	if bounds, ok, err := cfg.Bounds(); err == nil && ok {
		s.bounds = bounds
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)
	r.Get("/api/filters", s.filters)
	r.Get("/api/analytics", s.analytics)
	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.router.ServeHTTP(w, r) }

// requestLogger logs every request and stores a request scoped logger in
// the request context.
func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqLog := log.With().Str("request_id", middleware.GetReqID(r.Context())).Logger()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r.WithContext(logger.WithContext(r.Context(), reqLog)))

			reqLog.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Msg("http request")
		})
	}
}

// writeJSON writes v as the response body. The status is already sent when
// encoding fails, so the error is only logged.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		log := logger.FromContext(r.Context())
		log.Error().Err(err).Str("path", r.URL.Path).Msg("cannot encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	writeJSON(w, r, status, map[string]string{"error": err.Error()})
}

// statusOf maps a fetch error to an HTTP status.
func statusOf(err error) int {
	switch {
	case errors.Is(err, ledgerview.ErrInvalidRange):
		return http.StatusBadRequest
	case errors.Is(err, source.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
