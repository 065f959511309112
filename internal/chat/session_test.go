package chat

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/vedika48/career-compass/internal/careerapi"
	"github.com/vedika48/career-compass/internal/domain"
)

type fakeAssistant struct {
	mu      sync.Mutex
	calls   int
	lastReq careerapi.ChatRequest
	resp    *careerapi.ChatResponse
	err     error
	started chan struct{} // closed when the first call arrives
	block   chan struct{} // when set, SendMessage waits until closed
}

func (f *fakeAssistant) SendMessage(_ context.Context, _ string, req careerapi.ChatRequest) (*careerapi.ChatResponse, error) {
	f.mu.Lock()
	f.calls++
	f.lastReq = req
	if f.started != nil && f.calls == 1 {
		close(f.started)
	}
	block := f.block
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	return f.resp, f.err
}

func (f *fakeAssistant) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestSessionStartsWithGreeting(t *testing.T) {
	t.Parallel()

	s := NewSession(&fakeAssistant{}, nil, nil)
	history := s.History()
	if len(history) != 1 {
		t.Fatalf("expected 1 seeded message, got %d", len(history))
	}
	if history[0].Type != domain.MessageTypeAssistant || history[0].Message != Greeting {
		t.Fatalf("unexpected seed: %+v", history[0])
	}
}

func TestSendAppendsUserAndAssistantMessages(t *testing.T) {
	t.Parallel()

	api := &fakeAssistant{
		resp: &careerapi.ChatResponse{Response: &careerapi.ChatPayload{Message: "Here are some tips."}},
	}
	s := NewSession(api, func(context.Context) (string, string) { return "tok-123", "u-1" }, nil)

	reply, sent := s.Send(context.Background(), "  resume tips please  ")
	if !sent {
		t.Fatal("expected message to be sent")
	}
	if reply.Message != "Here are some tips." {
		t.Fatalf("unexpected reply: %+v", reply)
	}
	if api.lastReq.Message != "resume tips please" {
		t.Fatalf("expected trimmed message, got %q", api.lastReq.Message)
	}
	if api.lastReq.UserID != "u-1" {
		t.Fatalf("expected user id forwarded, got %q", api.lastReq.UserID)
	}

	history := s.History()
	if len(history) != 3 {
		t.Fatalf("expected greeting+user+assistant, got %d", len(history))
	}
	if history[1].Type != domain.MessageTypeUser || history[2].Type != domain.MessageTypeAssistant {
		t.Fatalf("unexpected ordering: %+v", history)
	}
}

func TestSendEmptyMessageIsDropped(t *testing.T) {
	t.Parallel()

	api := &fakeAssistant{}
	s := NewSession(api, nil, nil)

	if _, sent := s.Send(context.Background(), "   "); sent {
		t.Fatal("whitespace message should be dropped")
	}
	if api.callCount() != 0 {
		t.Fatal("no network call should be made")
	}
	if got := len(s.History()); got != 1 {
		t.Fatalf("transcript should be untouched, got %d entries", got)
	}
}

func TestSendEnvelopeFallbacks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		resp *careerapi.ChatResponse
		want string
	}{
		{
			name: "nested envelope",
			resp: &careerapi.ChatResponse{Response: &careerapi.ChatPayload{Message: "nested"}},
			want: "nested",
		},
		{
			name: "top-level message",
			resp: &careerapi.ChatResponse{Message: "flat"},
			want: "flat",
		},
		{
			name: "neither present",
			resp: &careerapi.ChatResponse{},
			want: "I'm not sure how to respond to that. Could you rephrase your question?",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			s := NewSession(&fakeAssistant{resp: tc.resp}, nil, nil)
			reply, sent := s.Send(context.Background(), "hello")
			if !sent {
				t.Fatal("expected send")
			}
			if reply.Message != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, reply.Message)
			}
		})
	}
}

func TestSendFailureAppendsApology(t *testing.T) {
	t.Parallel()

	s := NewSession(&fakeAssistant{err: errors.New("connection refused")}, nil, nil)
	reply, sent := s.Send(context.Background(), "hello")
	if !sent {
		t.Fatal("expected send to be attempted")
	}
	if reply.Message != "I'm having trouble connecting right now. Please check your connection and try again." {
		t.Fatalf("unexpected reply: %q", reply.Message)
	}
	if got := len(s.History()); got != 3 {
		t.Fatalf("expected apology appended, got %d entries", got)
	}
}

func TestSecondSendWhilePendingIsDropped(t *testing.T) {
	t.Parallel()

	block := make(chan struct{})
	started := make(chan struct{})
	api := &fakeAssistant{
		resp:    &careerapi.ChatResponse{Message: "done"},
		started: started,
		block:   block,
	}
	s := NewSession(api, nil, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, sent := s.Send(context.Background(), "first"); !sent {
			t.Error("first send should go through")
		}
	}()

	// Wait until the first send is in flight.
	<-started

	if _, sent := s.Send(context.Background(), "second"); sent {
		t.Fatal("second send while pending should be dropped")
	}

	userCount := 0
	for _, msg := range s.History() {
		if msg.Type == domain.MessageTypeUser {
			userCount++
		}
	}
	if userCount != 1 {
		t.Fatalf("expected exactly one user message while pending, got %d", userCount)
	}

	close(block)
	wg.Wait()

	if api.callCount() != 1 {
		t.Fatalf("expected one backend call, got %d", api.callCount())
	}

	// After the round trip completes, sends are accepted again.
	if _, sent := s.Send(context.Background(), "third"); !sent {
		t.Fatal("send after completion should go through")
	}
}

func TestClearReseedsGreeting(t *testing.T) {
	t.Parallel()

	s := NewSession(&fakeAssistant{resp: &careerapi.ChatResponse{Message: "ok"}}, nil, nil)
	if _, sent := s.Send(context.Background(), "hello"); !sent {
		t.Fatal("expected send")
	}

	s.Clear()
	history := s.History()
	if len(history) != 1 || history[0].Message != Greeting {
		t.Fatalf("Clear should reseed exactly the greeting, got %+v", history)
	}
}

func TestSuggestionsFixedList(t *testing.T) {
	t.Parallel()

	s := NewSession(&fakeAssistant{}, nil, nil)
	got := s.Suggestions()
	if len(got) != 5 {
		t.Fatalf("expected 5 suggestions, got %d", len(got))
	}
	if got[0] != "Find software engineer jobs in Bangalore" {
		t.Fatalf("unexpected first suggestion: %q", got[0])
	}
}
