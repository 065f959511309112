package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vedika48/career-compass/internal/domain"
	"github.com/vedika48/career-compass/internal/wizard"
)

// RegisterResumeRoutes registers the resume-builder wizard routes.
func (h *Handler) RegisterResumeRoutes(r chi.Router) {
	r.Route("/api/resume", func(r chi.Router) {
		r.Get("/wizard", h.ResumeWizardState)
		r.Post("/wizard/goto", h.ResumeGoToStep)
		r.Post("/wizard/next", h.ResumeNext)
		r.Post("/wizard/previous", h.ResumePrevious)
		r.Post("/wizard/fields", h.ResumeUpdateFields)
		r.Post("/wizard/experiences", h.ResumeEditExperiences)
		r.Post("/build", h.ResumeBuild)
		r.Post("/reset", h.ResumeReset)
		r.Get("/score", h.ResumeScore)
	})
}

// RegisterSalaryRoutes registers the salary-negotiator wizard routes.
func (h *Handler) RegisterSalaryRoutes(r chi.Router) {
	r.Route("/api/salary", func(r chi.Router) {
		r.Get("/wizard", h.SalaryWizardState)
		r.Post("/wizard/goto", h.SalaryGoToStep)
		r.Post("/wizard/next", h.SalaryNext)
		r.Post("/wizard/previous", h.SalaryPrevious)
		r.Post("/wizard/fields", h.SalaryUpdateFields)
		r.Post("/predict", h.SalaryPredict)
		r.Get("/strategies", h.SalaryStrategies)
	})
}

type gotoStepRequest struct {
	Step int `json:"step"`
}

func (h *Handler) resumeState() map[string]interface{} {
	return map[string]interface{}{
		"steps":        h.builder.Steps(),
		"current_step": h.builder.Current(),
		"form":         h.builder.Form(),
		"flight":       h.builder.FlightState(),
		"result":       h.builder.Result(),
		"last_error":   h.builder.LastError(),
		"ats_score":    h.builder.Score(),
	}
}

// ResumeWizardState returns the full resume wizard state.
func (h *Handler) ResumeWizardState(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, h.resumeState())
}

// ResumeGoToStep jumps to a step, clamped into range.
func (h *Handler) ResumeGoToStep(w http.ResponseWriter, r *http.Request) {
	var req gotoStepRequest
	if err := decodeBody(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.builder.GoToStep(req.Step)
	JSON(w, http.StatusOK, h.resumeState())
}

// ResumeNext advances one step.
func (h *Handler) ResumeNext(w http.ResponseWriter, _ *http.Request) {
	h.builder.Next()
	JSON(w, http.StatusOK, h.resumeState())
}

// ResumePrevious moves back one step.
func (h *Handler) ResumePrevious(w http.ResponseWriter, _ *http.Request) {
	h.builder.Previous()
	JSON(w, http.StatusOK, h.resumeState())
}

// ResumeUpdateFields merges scalar fields into the form. The experiences
// list has its own structured endpoint.
func (h *Handler) ResumeUpdateFields(w http.ResponseWriter, r *http.Request) {
	var fields map[string]interface{}
	if err := decodeBody(w, r, &fields); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if _, ok := fields["experiences"]; ok {
		Error(w, http.StatusBadRequest, "experiences are edited via /api/resume/wizard/experiences")
		return
	}
	h.builder.UpdateFields(fields)
	JSON(w, http.StatusOK, h.resumeState())
}

type experienceEditRequest struct {
	Op         string             `json:"op"` // add, set, remove
	Index      int                `json:"index"`
	Experience *domain.Experience `json:"experience,omitempty"`
}

// ResumeEditExperiences applies a structured edit to the experience list.
func (h *Handler) ResumeEditExperiences(w http.ResponseWriter, r *http.Request) {
	var req experienceEditRequest
	if err := decodeBody(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	switch req.Op {
	case "add":
		h.builder.AddExperience()
	case "set":
		if req.Experience == nil {
			Error(w, http.StatusBadRequest, "experience entry required for set")
			return
		}
		h.builder.SetExperience(req.Index, *req.Experience)
	case "remove":
		h.builder.RemoveExperience(req.Index)
	default:
		Error(w, http.StatusBadRequest, "op must be add, set, or remove")
		return
	}
	JSON(w, http.StatusOK, h.resumeState())
}

// ResumeBuild submits the accumulated form to the resume backend.
func (h *Handler) ResumeBuild(w http.ResponseWriter, r *http.Request) {
	if _, err := h.builder.Submit(r.Context()); err != nil {
		h.writeWizardError(w, err)
		return
	}
	JSON(w, http.StatusOK, h.resumeState())
}

// ResumeReset clears the result and returns to editing with the form intact.
func (h *Handler) ResumeReset(w http.ResponseWriter, _ *http.Request) {
	h.builder.Reset()
	JSON(w, http.StatusOK, h.resumeState())
}

// ResumeScore returns the current ATS score.
func (h *Handler) ResumeScore(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, map[string]int{"ats_score": h.builder.Score()})
}

func (h *Handler) salaryState() map[string]interface{} {
	return map[string]interface{}{
		"steps":        h.negotiator.Steps(),
		"current_step": h.negotiator.Current(),
		"form":         h.negotiator.Form(),
		"flight":       h.negotiator.FlightState(),
		"result":       h.negotiator.Result(),
		"last_error":   h.negotiator.LastError(),
	}
}

// SalaryWizardState returns the full salary wizard state.
func (h *Handler) SalaryWizardState(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, h.salaryState())
}

// SalaryGoToStep jumps to a step, clamped into range.
func (h *Handler) SalaryGoToStep(w http.ResponseWriter, r *http.Request) {
	var req gotoStepRequest
	if err := decodeBody(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.negotiator.GoToStep(req.Step)
	JSON(w, http.StatusOK, h.salaryState())
}

// SalaryNext advances one step.
func (h *Handler) SalaryNext(w http.ResponseWriter, _ *http.Request) {
	h.negotiator.Next()
	JSON(w, http.StatusOK, h.salaryState())
}

// SalaryPrevious moves back one step.
func (h *Handler) SalaryPrevious(w http.ResponseWriter, _ *http.Request) {
	h.negotiator.Previous()
	JSON(w, http.StatusOK, h.salaryState())
}

// SalaryUpdateFields merges fields into the form.
func (h *Handler) SalaryUpdateFields(w http.ResponseWriter, r *http.Request) {
	var fields map[string]interface{}
	if err := decodeBody(w, r, &fields); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.negotiator.UpdateFields(fields)
	JSON(w, http.StatusOK, h.salaryState())
}

// SalaryPredict submits the accumulated form for prediction.
func (h *Handler) SalaryPredict(w http.ResponseWriter, r *http.Request) {
	if _, err := h.negotiator.Submit(r.Context()); err != nil {
		h.writeWizardError(w, err)
		return
	}
	JSON(w, http.StatusOK, h.salaryState())
}

// SalaryStrategies returns the derived negotiation strategies.
func (h *Handler) SalaryStrategies(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, map[string]interface{}{"strategies": h.negotiator.Strategies()})
}

func (h *Handler) writeWizardError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, wizard.ErrNotLastStep):
		Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, wizard.ErrSubmitInFlight):
		Error(w, http.StatusConflict, err.Error())
	default:
		h.writeOperationError(w, err)
	}
}
