package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/physlab/problem-relay/apimodels"
	"github.com/physlab/problem-relay/internal/relay"
)

const maxBodyBytes = 1 << 20

func (s *Server) handleParseProblem(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	var req apimodels.ParseRequest
	// An empty body is treated like an empty description.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, &relay.ValidationError{Err: fmt.Errorf("invalid request body: %w", err)})
		return
	}

	slog.Debug("Received parse request", "description", req.Input())

	// The completion call outlives a caller that hangs up; it is bounded by
	// the client's own request timeout instead.
	ctx := context.WithoutCancel(r.Context())

	result, err := s.relay.Parse(ctx, req.Input())
	if err != nil {
		writeError(w, err)
		return
	}

	slog.Debug("Parse request completed successfully", "type", result.Type)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, apimodels.HealthResponse{
		Status:           "ok",
		APIKeyConfigured: s.relay.APIKeyConfigured(),
	})
}

func failure(message string) apimodels.ErrorResponse {
	return apimodels.ErrorResponse{Success: false, Error: message}
}

func writeError(w http.ResponseWriter, err error) {
	status := relay.StatusCode(err)
	if status >= http.StatusInternalServerError {
		slog.Error("Parse request failed", "status", status, "error", err)
	} else {
		slog.Warn("Rejected parse request", "status", status, "error", err)
	}

	resp := failure(err.Error())
	if raw, ok := relay.RawResponse(err); ok {
		resp.RawResponse = &raw
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
