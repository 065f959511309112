// Package auth owns the authentication session lifecycle: login,
// registration, logout, profile updates, and restoring persisted state at
// startup. It is the only writer of session state; every other component
// reads the session through Current.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/vedika48/career-compass/internal/careerapi"
	"github.com/vedika48/career-compass/internal/domain"
	"github.com/vedika48/career-compass/internal/store"
)

// Fixed persistence keys. Token and user are always written and cleared
// together; a lone survivor of either is treated as corrupt state.
const (
	keyToken    = "auth.token"
	keyUser     = "auth.user"
	keyClientID = "client.id"
)

// IdentityAPI is the slice of the backend client the manager depends on.
type IdentityAPI interface {
	Login(ctx context.Context, req careerapi.LoginRequest) (*careerapi.AuthResponse, error)
	Register(ctx context.Context, req careerapi.RegisterRequest) (*careerapi.AuthResponse, error)
	UpdateProfile(ctx context.Context, token string, req careerapi.ProfileUpdate) (*domain.User, error)
}

// Manager owns the session and its persistence.
type Manager struct {
	store  store.Store
	api    IdentityAPI
	logger *slog.Logger

	mu      sync.RWMutex
	session *domain.Session
}

// NewManager creates a session manager. The session starts logged out;
// call Restore once at startup to load persisted state.
func NewManager(st store.Store, api IdentityAPI, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{store: st, api: api, logger: logger}
}

// Current returns a snapshot of the session, or nil when logged out.
func (m *Manager) Current() *domain.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session == nil {
		return nil
	}
	snapshot := *m.session
	return &snapshot
}

// Token returns the current credential, or empty when logged out.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session == nil {
		return ""
	}
	return m.session.Token
}

// Login exchanges credentials for a session. On success the token and user
// are persisted together before the in-memory session is replaced; on any
// failure no state changes.
func (m *Manager) Login(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, &ValidationError{Message: "Email and password are required"}
	}

	resp, err := m.api.Login(ctx, careerapi.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if resp.Token == "" || resp.User == nil {
		return nil, fmt.Errorf("login: backend returned incomplete session")
	}

	if err := m.persistSession(ctx, resp.Token, resp.User); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	m.setSession(&domain.Session{Token: resp.Token, User: resp.User})
	m.logger.Info("user logged in", "user_id", resp.User.ID)
	return resp.User, nil
}

// Register validates the form locally, then creates an account remotely.
// Local validation failures never reach the network.
func (m *Manager) Register(ctx context.Context, form RegisterForm) (*domain.User, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	resp, err := m.api.Register(ctx, form.toRequest())
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if resp.Token == "" || resp.User == nil {
		return nil, fmt.Errorf("register: backend returned incomplete session")
	}

	if err := m.persistSession(ctx, resp.Token, resp.User); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	m.setSession(&domain.Session{Token: resp.Token, User: resp.User})
	m.logger.Info("user registered", "user_id", resp.User.ID)
	return resp.User, nil
}

// Logout unconditionally clears persisted and in-memory session state.
// It cannot fail: store errors are logged and the in-memory session is
// cleared regardless.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.store.Delete(ctx, keyToken, keyUser); err != nil {
		m.logger.Error("failed to clear persisted session", "error", err)
	}
	m.setSession(nil)
	m.logger.Info("user logged out")
}

// UpdateProfile replaces the stored user record. Requires a live session;
// on failure the prior session is left untouched.
func (m *Manager) UpdateProfile(ctx context.Context, update careerapi.ProfileUpdate) (*domain.User, error) {
	token := m.Token()
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	user, err := m.api.UpdateProfile(ctx, token, update)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	payload, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("encode user record: %w", err)
	}
	if err := m.store.Set(ctx, keyUser, string(payload)); err != nil {
		return nil, fmt.Errorf("persist user record: %w", err)
	}

	m.mu.Lock()
	if m.session != nil {
		m.session.User = user
	}
	m.mu.Unlock()

	m.logger.Info("profile updated", "user_id", user.ID)
	return user, nil
}

// Restore loads persisted session state at startup. Corrupt or partial
// state is self-healing: the entries are removed and the process continues
// logged out. Restore never fails startup and is idempotent.
func (m *Manager) Restore(ctx context.Context) {
	token, hasToken, err := m.store.Get(ctx, keyToken)
	if err != nil {
		m.logger.Error("failed to read persisted token", "error", err)
		return
	}
	userJSON, hasUser, err := m.store.Get(ctx, keyUser)
	if err != nil {
		m.logger.Error("failed to read persisted user", "error", err)
		return
	}

	if !hasToken && !hasUser {
		return
	}

	if hasToken != hasUser {
		m.logger.Warn("partial persisted session found, clearing")
		m.clearPersisted(ctx)
		return
	}

	var user domain.User
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil || user.ID == "" {
		m.logger.Warn("corrupt persisted user record, clearing", "error", err)
		m.clearPersisted(ctx)
		return
	}

	m.setSession(&domain.Session{Token: token, User: &user})
	m.logger.Info("session restored", "user_id", user.ID)
}

// ClientID returns a stable anonymous identifier for this installation,
// minting and persisting one on first use. It identifies chat traffic when
// no user is logged in.
func (m *Manager) ClientID(ctx context.Context) string {
	id, ok, err := m.store.Get(ctx, keyClientID)
	if err == nil && ok && id != "" {
		return id
	}
	if err != nil {
		m.logger.Warn("failed to read client id", "error", err)
	}

	id = uuid.NewString()
	if err := m.store.Set(ctx, keyClientID, id); err != nil {
		m.logger.Warn("failed to persist client id", "error", err)
	}
	return id
}

func (m *Manager) setSession(s *domain.Session) {
	m.mu.Lock()
	m.session = s
	m.mu.Unlock()
}

func (m *Manager) clearPersisted(ctx context.Context) {
	if err := m.store.Delete(ctx, keyToken, keyUser); err != nil {
		m.logger.Error("failed to clear corrupt session state", "error", err)
	}
}

// persistSession writes token and user together. If the second write fails,
// the first is rolled back so the both-or-neither invariant holds.
func (m *Manager) persistSession(ctx context.Context, token string, user *domain.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user record: %w", err)
	}
	if err := m.store.Set(ctx, keyToken, token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	if err := m.store.Set(ctx, keyUser, string(payload)); err != nil {
		if delErr := m.store.Delete(ctx, keyToken); delErr != nil {
			m.logger.Error("failed to roll back token after user persist failure", "error", delErr)
		}
		return fmt.Errorf("persist user record: %w", err)
	}
	return nil
}
