// Package chat maintains the assistant conversation: an append-only
// transcript and a single-flight request/response cycle against the remote
// assistant endpoint.
package chat

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/vedika48/career-compass/internal/careerapi"
	"github.com/vedika48/career-compass/internal/domain"
	"github.com/vedika48/career-compass/internal/flight"
)

// Greeting seeds every fresh transcript. Clear never leaves the transcript
// empty; it reseeds exactly this message.
const Greeting = "Hi there! I'm your AI career assistant. How can I help you today? You can ask me about job searches, resume tips, interview preparation, or companies that are known for supporting women in the Indian workplace."

const (
	// fallbackReply is used when the backend envelope carries no message.
	fallbackReply = "I'm not sure how to respond to that. Could you rephrase your question?"
	// connectionTroubleReply is appended instead of surfacing a send failure.
	connectionTroubleReply = "I'm having trouble connecting right now. Please check your connection and try again."
)

var suggestedQueries = []string{
	"Find software engineer jobs in Bangalore",
	"How to prepare for a technical interview",
	"Companies with good maternity leave policies in India",
	"Salary negotiation tips for women in tech",
	"Remote work opportunities for Indian companies",
}

// AssistantAPI is the slice of the backend client the session depends on.
type AssistantAPI interface {
	SendMessage(ctx context.Context, token string, req careerapi.ChatRequest) (*careerapi.ChatResponse, error)
}

// IdentityFunc supplies the credential and user id for outbound messages.
// The user id falls back to the anonymous client id when logged out.
type IdentityFunc func(ctx context.Context) (token, userID string)

// Session is the chat conversation state. At most one assistant request is
// in flight at a time; sends during flight are dropped, so transcript order
// always matches user-perceived causal order.
type Session struct {
	api      AssistantAPI
	identity IdentityFunc
	logger   *slog.Logger
	gate     *flight.Gate

	mu         sync.Mutex
	transcript []domain.ChatMessage
}

// NewSession creates a session seeded with the assistant greeting.
func NewSession(api AssistantAPI, identity IdentityFunc, logger *slog.Logger) *Session {
	if identity == nil {
		identity = func(context.Context) (string, string) { return "", "" }
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		api:      api,
		identity: identity,
		logger:   logger,
		gate:     flight.NewGate(),
		transcript: []domain.ChatMessage{
			{Type: domain.MessageTypeAssistant, Message: Greeting},
		},
	}
}

// Send submits a user message. A message that trims to empty, or a send
// while a prior request is pending, is dropped and reported via sent=false.
// Failures never propagate: a fixed apologetic assistant message is appended
// instead.
func (s *Session) Send(ctx context.Context, message string) (reply domain.ChatMessage, sent bool) {
	message = strings.TrimSpace(message)
	if message == "" {
		return domain.ChatMessage{}, false
	}
	if !s.gate.Begin() {
		return domain.ChatMessage{}, false
	}

	s.append(domain.ChatMessage{Type: domain.MessageTypeUser, Message: message})

	token, userID := s.identity(ctx)
	resp, err := s.api.SendMessage(ctx, token, careerapi.ChatRequest{Message: message, UserID: userID})
	s.gate.Finish(err)

	if err != nil {
		s.logger.Warn("assistant request failed", "error", err)
		reply = domain.ChatMessage{Type: domain.MessageTypeAssistant, Message: connectionTroubleReply}
	} else {
		reply = domain.ChatMessage{Type: domain.MessageTypeAssistant, Message: resp.AssistantMessage(fallbackReply)}
	}
	s.append(reply)
	return reply, true
}

// History returns a copy of the transcript in append order.
func (s *Session) History() []domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ChatMessage, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Pending reports whether an assistant request is in flight.
func (s *Session) Pending() bool {
	return s.gate.Pending()
}

// Clear replaces the transcript with the seeded greeting, never with an
// empty sequence.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = []domain.ChatMessage{
		{Type: domain.MessageTypeAssistant, Message: Greeting},
	}
}

// Suggestions returns the fixed suggested queries.
func (s *Session) Suggestions() []string {
	out := make([]string, len(suggestedQueries))
	copy(out, suggestedQueries)
	return out
}

func (s *Session) append(msg domain.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = append(s.transcript, msg)
}
