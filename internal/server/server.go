// Package server exposes RCA suggestions and ingestion over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Kavirubc/rca-assist/pkg/models"
)

// Suggester proposes an RCA for a bug
type Suggester interface {
	SuggestRCA(ctx context.Context, bugID int, threshold float64) (*models.Suggestion, error)
}

// Ingester runs one ingestion pass
type Ingester interface {
	IngestNewBugs(ctx context.Context) (*models.IngestStats, error)
}

// Options configures a Server
type Options struct {
	DefaultThreshold float64
	RequestTimeout   time.Duration
}

// Server handles HTTP requests
type Server struct {
	suggester Suggester
	ingester  Ingester
	opts      Options
	logger    *zap.Logger
}

// New creates a new server
func New(suggester Suggester, ingester Ingester, opts Options, logger *zap.Logger) *Server {
	return &Server{
		suggester: suggester,
		ingester:  ingester,
		opts:      opts,
		logger:    logger,
	}
}

// Router configures the routes
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/healthz", s.Health).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/bugs/{id}/rca", s.SuggestRCA).Methods(http.MethodGet)
	api.HandleFunc("/ingest", s.Ingest).Methods(http.MethodPost)

	router.Use(s.loggingMiddleware)
	return router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	s.logger.Info("shutting down http server")
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
