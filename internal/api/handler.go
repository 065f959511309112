// Package api provides HTTP handlers for the Career Compass application API.
//
//nolint:revive // "api" package name is intentionally concise for this layer.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vedika48/career-compass/internal/auth"
	"github.com/vedika48/career-compass/internal/careerapi"
	"github.com/vedika48/career-compass/internal/chat"
	"github.com/vedika48/career-compass/internal/jobs"
	"github.com/vedika48/career-compass/internal/resume"
	"github.com/vedika48/career-compass/internal/salary"
)

// maxRequestBodySize is the maximum allowed request body size (1MB).
const maxRequestBodySize = 1 << 20

// Handler bundles the application components behind the HTTP surface.
type Handler struct {
	auth       *auth.Manager
	chat       *chat.Session
	jobs       *jobs.Panel
	builder    *resume.Builder
	negotiator *salary.Negotiator
	logger     *slog.Logger
}

// NewHandler creates a Handler with all application components.
func NewHandler(authMgr *auth.Manager, chatSession *chat.Session, jobsPanel *jobs.Panel, builder *resume.Builder, negotiator *salary.Negotiator, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		auth:       authMgr,
		chat:       chatSession,
		jobs:       jobsPanel,
		builder:    builder,
		negotiator: negotiator,
		logger:     logger,
	}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// decodeBody decodes a bounded JSON request body into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	return json.NewDecoder(r.Body).Decode(v)
}

// writeOperationError maps component errors onto HTTP responses: local
// validation → 400, missing session → 401, backend-reported status →
// passthrough, anything else → 502.
func (h *Handler) writeOperationError(w http.ResponseWriter, err error) {
	if auth.IsValidationError(err) {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errors.Is(err, auth.ErrNotAuthenticated) {
		Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	var apiErr *careerapi.APIError
	if errors.As(err, &apiErr) {
		Error(w, apiErr.Status, apiErr.Error())
		return
	}
	Error(w, http.StatusBadGateway, err.Error())
}
