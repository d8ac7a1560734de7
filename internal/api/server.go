// Package api serves the recompute engine over HTTP. Stateless endpoints compute from the
// request body; the /state endpoints read and replace the single tracked state.
package api

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rgehrsitz/finfree/internal/calculation"
	"github.com/rgehrsitz/finfree/internal/config"
	"github.com/rgehrsitz/finfree/internal/tracker"
	"github.com/sirupsen/logrus"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 1 << 20

// Server holds the router dependencies
type Server struct {
	engine   *calculation.CalculationEngine
	parser   *config.InputParser
	log      logrus.FieldLogger
	metrics  *Metrics
	registry *prometheus.Registry

	// mu guards tracker, which is not safe for concurrent use
	mu      sync.Mutex
	tracker *tracker.Tracker
}

// Option configures a Server
type Option func(*Server)

// WithTracker enables the /api/v1/state endpoints
func WithTracker(t *tracker.Tracker) Option {
	return func(s *Server) { s.tracker = t }
}

// WithLogger sets the request logger
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Server) { s.log = l }
}

// NewServer creates a server; a nil engine gets a default one
func NewServer(engine *calculation.CalculationEngine, opts ...Option) *Server {
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}
	reg := prometheus.NewRegistry()
	s := &Server{
		engine:   engine,
		parser:   config.NewInputParser(),
		registry: reg,
		metrics:  NewMetrics(reg),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		s.log = l
	}
	if s.tracker != nil {
		s.observe(s.tracker.Summary())
	}
	return s
}

// Router builds the HTTP routes
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(s.logRequests, s.metrics.instrument)

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	r.HandleFunc("/api/v1/summary", s.handleSummary).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/ff/depletion", s.handleDepletion).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/ff/accumulation", s.handleAccumulation).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/risk", s.handleRisk).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/state", s.handleGetState).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/state", s.handlePutState).Methods(http.MethodPut)

	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("Starting server on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Infof("Shutting down server on %s", addr)
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start).String(),
		}).Debug("request handled")
	})
}
