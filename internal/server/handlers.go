package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/Kavirubc/rca-assist/internal/pipeline"
	"github.com/Kavirubc/rca-assist/internal/tracker"
)

// Health handles GET /healthz
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// SuggestRCA handles GET /api/v1/bugs/{id}/rca?threshold=1.0
func (s *Server) SuggestRCA(w http.ResponseWriter, r *http.Request) {
	bugID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || bugID <= 0 {
		respondError(w, http.StatusBadRequest, "bug id must be a positive integer")
		return
	}

	threshold := s.opts.DefaultThreshold
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		threshold, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "threshold must be a number")
			return
		}
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	result, err := s.suggester.SuggestRCA(ctx, bugID, threshold)
	if err != nil {
		s.respondFailure(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Ingest handles POST /api/v1/ingest
func (s *Server) Ingest(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.requestContext(r)
	defer cancel()

	stats, err := s.ingester.IngestNewBugs(ctx)
	if err != nil {
		s.respondFailure(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (s *Server) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	if s.opts.RequestTimeout > 0 {
		return context.WithTimeout(r.Context(), s.opts.RequestTimeout)
	}
	return context.WithCancel(r.Context())
}

// respondFailure maps errors onto status codes; the message is passed
// through unchanged
func (s *Server) respondFailure(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Int("status", status), zap.Error(err))
	}
	respondError(w, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, pipeline.ErrInvalidThreshold):
		return http.StatusBadRequest
	case errors.Is(err, tracker.ErrBugNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
