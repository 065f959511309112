package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vedika48/career-compass/internal/auth"
	"github.com/vedika48/career-compass/internal/careerapi"
)

// RegisterAuthRoutes registers authentication and profile routes.
func (h *Handler) RegisterAuthRoutes(r chi.Router) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/register", h.Register)
		r.Post("/logout", h.Logout)
		r.Get("/session", h.SessionState)
	})
	r.Put("/api/user/profile", h.UpdateProfile)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates against the identity backend and persists the session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeOperationError(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// Register validates the form locally, then creates an account.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var form auth.RegisterForm
	if err := decodeBody(w, r, &form); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.auth.Register(r.Context(), form)
	if err != nil {
		h.writeOperationError(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// Logout clears the persisted session. Always succeeds.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.auth.Logout(r.Context())
	JSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

// SessionState reports the current session for the UI shell.
func (h *Handler) SessionState(w http.ResponseWriter, _ *http.Request) {
	session := h.auth.Current()
	if !session.LoggedIn() {
		JSON(w, http.StatusOK, map[string]interface{}{"logged_in": false})
		return
	}
	JSON(w, http.StatusOK, map[string]interface{}{
		"logged_in": true,
		"user":      session.User,
	})
}

// UpdateProfile replaces the stored user record via the identity backend.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var update careerapi.ProfileUpdate
	if err := decodeBody(w, r, &update); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.auth.UpdateProfile(r.Context(), update)
	if err != nil {
		h.writeOperationError(w, err)
		return
	}
	JSON(w, http.StatusOK, user)
}
