// Package api - Thin, stateless HTTP layer over the pricing engine
// The API is ONLY responsible for: request decoding, engine invocation, response encoding.
// The API NEVER performs cost logic.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"bandwidth-cost/core/pricing"
	"bandwidth-cost/internal/errors"
	"bandwidth-cost/internal/logging"
)

// RequestIDHeader carries the per-request correlation ID
const RequestIDHeader = "X-Request-ID"

// unmatchedRoute labels requests no route matched, keeping raw paths out of metrics
const unmatchedRoute = "unmatched"

// maxBodyBytes caps request bodies
const maxBodyBytes = 1 << 20

const shutdownTimeout = 5 * time.Second

type contextKey string

const requestIDKey contextKey = "request_id"

// Server is the API server
type Server struct {
	engine   *pricing.Engine
	router   *mux.Router
	version  string
	registry *prometheus.Registry
	metrics  *Metrics
}

// NewServer creates an API server over engine with its own metrics registry
func NewServer(version string, engine *pricing.Engine) *Server {
	registry := prometheus.NewRegistry()

	s := &Server{
		engine:   engine,
		router:   mux.NewRouter(),
		version:  version,
		registry: registry,
		metrics:  NewMetrics(registry),
	}

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.Use(s.requestID, s.instrument)

	s.router.HandleFunc("/calculate", s.handleCalculate).Methods(http.MethodPost)
	s.router.HandleFunc("/recommend", s.handleRecommend).Methods(http.MethodPost)
	s.router.HandleFunc("/plans", s.handlePlans).Methods(http.MethodGet)

	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/version", s.handleVersion).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	// mux skips Use middleware when no route matches
	s.router.NotFoundHandler = s.requestID(s.instrument(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		notFound := errors.NotFound("endpoint", r.URL.Path)
		s.writeError(w, r, string(notFound.Type), notFound.Message, http.StatusNotFound)
	})))
	s.router.MethodNotAllowedHandler = s.requestID(s.instrument(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, "METHOD_NOT_ALLOWED", r.Method+" not allowed on "+r.URL.Path, http.StatusMethodNotAllowed)
	})))
}

// Registry exposes the server's metrics registry
func (s *Server) Registry() *prometheus.Registry {
	return s.registry
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status":  "healthy",
		"version": s.version,
		"plans":   s.engine.Catalog().Len(),
		"time":    time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version":     s.version,
		"engine":      "bandwidth-cost",
		"api_version": "v1",
	}, http.StatusOK)
}

// requestID assigns or propagates X-Request-ID
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// instrument records metrics and an access log line per request
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := unmatchedRoute
		if current := mux.CurrentRoute(r); current != nil {
			if tmpl, err := current.GetPathTemplate(); err == nil {
				route = tmpl
			}
		}
		elapsed := time.Since(start)

		s.metrics.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		s.metrics.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(elapsed.Seconds())

		logging.Info("HTTP request",
			zap.String("request_id", requestIDFrom(r.Context())),
			zap.String("method", r.Method),
			zap.String("route", route),
			zap.Int("status", rec.status),
			zap.Duration("duration", elapsed),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.Warn("Failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, code, message string, status int) {
	s.writeJSON(w, ErrorResponse{
		Error: ErrorBody{
			Code:      code,
			Message:   message,
			RequestID: requestIDFrom(r.Context()),
		},
	}, status)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves the API at addr until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string, readTimeout, writeTimeout time.Duration) error {
	return Serve(ctx, &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	})
}

// Mount returns a handler serving the API under prefix, e.g. "/api"
func (s *Server) Mount(prefix string) http.Handler {
	mux := http.NewServeMux()
	mux.Handle(prefix+"/", http.StripPrefix(prefix, s))
	return mux
}

// Serve runs srv until ctx is cancelled, then shuts down gracefully
func Serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		logging.Info("API listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logging.Info("API shutting down", zap.String("addr", srv.Addr))
		return srv.Shutdown(shutdownCtx)
	}
}
