package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterChatRoutes registers assistant conversation routes.
func (h *Handler) RegisterChatRoutes(r chi.Router) {
	r.Route("/api/chat", func(r chi.Router) {
		r.Get("/history", h.ChatHistory)
		r.Post("/message", h.ChatMessage)
		r.Post("/clear", h.ChatClear)
		r.Get("/suggestions", h.ChatSuggestions)
	})
}

// ChatHistory returns the transcript in append order.
func (h *Handler) ChatHistory(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, map[string]interface{}{
		"messages": h.chat.History(),
		"pending":  h.chat.Pending(),
	})
}

type chatMessageRequest struct {
	Message string `json:"message"`
}

// ChatMessage submits a user message. Sends that trim to empty or arrive
// while a request is pending are dropped.
func (h *Handler) ChatMessage(w http.ResponseWriter, r *http.Request) {
	var req chatMessageRequest
	if err := decodeBody(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reply, sent := h.chat.Send(r.Context(), req.Message)
	if !sent {
		Error(w, http.StatusConflict, "message dropped: empty or a request is already pending")
		return
	}
	JSON(w, http.StatusOK, map[string]interface{}{
		"reply":    reply,
		"messages": h.chat.History(),
	})
}

// ChatClear reseeds the transcript with the assistant greeting.
func (h *Handler) ChatClear(w http.ResponseWriter, _ *http.Request) {
	h.chat.Clear()
	JSON(w, http.StatusOK, map[string]interface{}{"messages": h.chat.History()})
}

// ChatSuggestions returns the fixed suggested queries.
func (h *Handler) ChatSuggestions(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, map[string]interface{}{"suggestions": h.chat.Suggestions()})
}
