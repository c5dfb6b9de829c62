// Package server exposes optimizer runs over HTTP
package server

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/lixenwraith/evolve/genetic"
	"github.com/lixenwraith/evolve/genetic/batch"
	"github.com/lixenwraith/evolve/genetic/export"
	"github.com/lixenwraith/evolve/parameter"
)

// Server routes run requests to the optimizer
type Server struct {
	router  *chi.Mux
	log     *zap.Logger
	timeout time.Duration
}

// Option customizes a Server
type Option func(*Server)

// WithTimeout bounds the optimizer work of each request
func WithTimeout(d time.Duration) Option {
	return func(s *Server) { s.timeout = d }
}

// New creates a server; a nil logger discards output
func New(log *zap.Logger, opts ...Option) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		router:  chi.NewRouter(),
		log:     log,
		timeout: parameter.ServeRunTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/summary", s.handleSummary)
	s.router.Get("/report", s.handleReport)
	s.router.Get("/batch", s.handleBatch)
}

// requestLogger writes one debug entry per request
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.log.Debug("request",
			zap.String("id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("query", r.URL.RawQuery),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok\n"))
}

// handleSummary prints the same block as the primary command
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	config, err := configFromQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := s.runOne(r.Context(), config, 0)
	if err != nil {
		s.fail(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := genetic.WriteSummary(w, config, res.Stats); err != nil {
		s.log.Warn("write summary", zap.Error(err))
	}
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	config, err := configFromQuery(q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	every, err := intParam(q, "every", parameter.TraceEvery, 0, parameter.ServeMaxSteps)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	format, err := formatParam(q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := s.runOne(r.Context(), config, every)
	if err != nil {
		s.fail(w, err)
		return
	}

	dto := export.FromRun(res.Config, res.Population, res.Trace)
	var buf bytes.Buffer
	if err := export.Render(&buf, dto, format); err != nil {
		s.renderFailed(w, err)
		return
	}
	s.send(w, format, buf.Bytes())
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	config, err := configFromQuery(q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	runs, err := intParam(q, "runs", 4, 1, parameter.ServeMaxRuns)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	format, err := formatParam(q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	results, err := batch.Run(ctx, batch.Seeds(config, runs), batch.Options{Logger: s.log})
	if err != nil {
		s.fail(w, err)
		return
	}

	var dto export.BatchDTO
	for _, res := range results {
		dto.Runs = append(dto.Runs, export.FromRun(res.Config, res.Population, nil))
	}

	var buf bytes.Buffer
	if err := export.RenderBatch(&buf, dto, format); err != nil {
		s.renderFailed(w, err)
		return
	}
	s.send(w, format, buf.Bytes())
}

// send writes a fully rendered body
func (s *Server) send(w http.ResponseWriter, format export.Format, body []byte) {
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	if _, err := w.Write(body); err != nil {
		s.log.Debug("write response", zap.Error(err))
	}
}

func (s *Server) renderFailed(w http.ResponseWriter, err error) {
	s.log.Error("render failed", zap.Error(err))
	http.Error(w, "render failed", http.StatusInternalServerError)
}

func (s *Server) runOne(ctx context.Context, config genetic.Config, every int) (batch.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return batch.RunOne(ctx, config, batch.Options{TraceEvery: every, Logger: s.log})
}

// fail maps run errors to a status; config was validated, so only cancellation remains
func (s *Server) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		http.Error(w, "run timed out", http.StatusGatewayTimeout)
	case errors.Is(err, context.Canceled):
		// Client went away
		s.log.Debug("request cancelled", zap.Error(err))
	default:
		s.log.Error("run failed", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// configFromQuery overlays query parameters on the default configuration
func configFromQuery(q url.Values) (genetic.Config, error) {
	config := genetic.DefaultConfig()

	var err error
	if config.PopulationCount, err = intParam(q, "count", config.PopulationCount, 1, parameter.ServeMaxCount); err != nil {
		return config, err
	}
	if config.StepCount, err = intParam(q, "steps", config.StepCount, 0, parameter.ServeMaxSteps); err != nil {
		return config, err
	}
	if v := q.Get("seed"); v != "" {
		if config.Seed, err = strconv.ParseUint(v, 10, 64); err != nil {
			return config, errors.Errorf("seed: %q is not an unsigned integer", v)
		}
	}
	if v := q.Get("mutate_best"); v != "" {
		if config.MutateBest, err = strconv.ParseBool(v); err != nil {
			return config, errors.Errorf("mutate_best: %q is not a boolean", v)
		}
	}
	return config, config.Validate()
}

func intParam(q url.Values, key string, def, min, max int) (int, error) {
	v := q.Get(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, errors.Errorf("%s: %q is not an integer", key, v)
	}
	if n < min || n > max {
		return def, errors.Errorf("%s: %d outside [%d, %d]", key, n, min, max)
	}
	return n, nil
}

func formatParam(q url.Values) (export.Format, error) {
	v := q.Get("format")
	if v == "" {
		return export.FormatTOML, nil
	}
	return export.ParseFormat(v)
}
