package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vedika48/career-compass/internal/domain"
)

// RegisterJobRoutes registers job search routes.
func (h *Handler) RegisterJobRoutes(r chi.Router) {
	r.Route("/api/jobs", func(r chi.Router) {
		r.Post("/search", h.JobSearch)
		r.Get("/results", h.JobResults)
	})
}

// JobSearch runs a search; a search already in flight drops this one.
func (h *Handler) JobSearch(w http.ResponseWriter, r *http.Request) {
	var filters domain.JobFilters
	if err := decodeBody(w, r, &filters); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !h.jobs.Search(r.Context(), filters) {
		Error(w, http.StatusConflict, "a search is already in progress")
		return
	}
	h.JobResults(w, r)
}

// JobResults returns the current search state.
func (h *Handler) JobResults(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, map[string]interface{}{
		"jobs":             h.jobs.Results(),
		"filters":          h.jobs.Filters(),
		"search_performed": h.jobs.SearchPerformed(),
		"used_fallback":    h.jobs.UsedFallback(),
	})
}
