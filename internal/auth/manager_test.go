package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/vedika48/career-compass/internal/careerapi"
	"github.com/vedika48/career-compass/internal/domain"
	"github.com/vedika48/career-compass/internal/store"
)

type fakeIdentityAPI struct {
	loginCalls    int
	registerCalls int
	updateCalls   int

	authResp *careerapi.AuthResponse
	user     *domain.User
	err      error

	lastUpdateToken string
}

func (f *fakeIdentityAPI) Login(_ context.Context, _ careerapi.LoginRequest) (*careerapi.AuthResponse, error) {
	f.loginCalls++
	return f.authResp, f.err
}

func (f *fakeIdentityAPI) Register(_ context.Context, _ careerapi.RegisterRequest) (*careerapi.AuthResponse, error) {
	f.registerCalls++
	return f.authResp, f.err
}

func (f *fakeIdentityAPI) UpdateProfile(_ context.Context, token string, _ careerapi.ProfileUpdate) (*domain.User, error) {
	f.updateCalls++
	f.lastUpdateToken = token
	return f.user, f.err
}

func testUser() *domain.User {
	return &domain.User{
		ID:        "u-1",
		Email:     "priya@example.com",
		FirstName: "Priya",
		LastName:  "Sharma",
	}
}

func TestLoginPersistsSession(t *testing.T) {
	t.Parallel()

	st := store.NewMemory()
	api := &fakeIdentityAPI{authResp: &careerapi.AuthResponse{Token: "tok-123", User: testUser()}}
	m := NewManager(st, api, nil)

	user, err := m.Login(context.Background(), "priya@example.com", "secret1")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user.ID != "u-1" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if got := m.Token(); got != "tok-123" {
		t.Fatalf("expected in-memory token, got %q", got)
	}
	if _, ok, _ := st.Get(context.Background(), "auth.token"); !ok {
		t.Fatal("token not persisted")
	}
	if _, ok, _ := st.Get(context.Background(), "auth.user"); !ok {
		t.Fatal("user not persisted")
	}
}

func TestLoginFailureMutatesNothing(t *testing.T) {
	t.Parallel()

	st := store.NewMemory()
	api := &fakeIdentityAPI{err: &careerapi.APIError{Status: 401, Message: "Invalid email or password"}}
	m := NewManager(st, api, nil)

	if _, err := m.Login(context.Background(), "priya@example.com", "wrong"); err == nil {
		t.Fatal("expected error")
	}
	if m.Current() != nil {
		t.Fatal("session should remain logged out")
	}
	if _, ok, _ := st.Get(context.Background(), "auth.token"); ok {
		t.Fatal("no token should be persisted on failure")
	}
}

func TestLoginThenLogoutLeavesStorageEmpty(t *testing.T) {
	t.Parallel()

	st := store.NewMemory()
	api := &fakeIdentityAPI{authResp: &careerapi.AuthResponse{Token: "tok-123", User: testUser()}}
	m := NewManager(st, api, nil)

	if _, err := m.Login(context.Background(), "priya@example.com", "secret1"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	m.Logout(context.Background())

	if m.Current() != nil {
		t.Fatal("expected logged-out session")
	}
	for _, key := range []string{"auth.token", "auth.user"} {
		if _, ok, _ := st.Get(context.Background(), key); ok {
			t.Fatalf("expected %s to be cleared", key)
		}
	}
}

func TestRegisterMismatchedPasswordsRejectedLocally(t *testing.T) {
	t.Parallel()

	api := &fakeIdentityAPI{}
	m := NewManager(store.NewMemory(), api, nil)

	_, err := m.Register(context.Background(), RegisterForm{
		FirstName:       "Priya",
		LastName:        "Sharma",
		Email:           "priya@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret2",
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !IsValidationError(err) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if err.Error() != "Passwords do not match" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
	if api.registerCalls != 0 {
		t.Fatalf("no network call should be made, got %d", api.registerCalls)
	}
}

func TestRegisterLocalValidationRules(t *testing.T) {
	t.Parallel()

	base := RegisterForm{
		FirstName:       "Priya",
		LastName:        "Sharma",
		Email:           "priya@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}

	tests := []struct {
		name    string
		mutate  func(f *RegisterForm)
		wantMsg string
	}{
		{
			name:    "missing email",
			mutate:  func(f *RegisterForm) { f.Email = "" },
			wantMsg: "Please fill in all required fields",
		},
		{
			name:    "missing first name",
			mutate:  func(f *RegisterForm) { f.FirstName = "" },
			wantMsg: "Please fill in all required fields",
		},
		{
			name:    "short password",
			mutate:  func(f *RegisterForm) { f.Password = "abc"; f.ConfirmPassword = "abc" },
			wantMsg: "Password must be at least 6 characters long",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			form := base
			tc.mutate(&form)
			err := form.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if err.Error() != tc.wantMsg {
				t.Fatalf("expected %q, got %q", tc.wantMsg, err.Error())
			}
		})
	}
}

func TestRestoreCorruptUserClearsState(t *testing.T) {
	t.Parallel()

	st := store.NewMemory()
	ctx := context.Background()
	_ = st.Set(ctx, "auth.token", "tok-123")
	_ = st.Set(ctx, "auth.user", "{not json")

	m := NewManager(st, &fakeIdentityAPI{}, nil)
	m.Restore(ctx)

	if m.Current() != nil {
		t.Fatal("expected logged-out session after corrupt restore")
	}
	for _, key := range []string{"auth.token", "auth.user"} {
		if _, ok, _ := st.Get(ctx, key); ok {
			t.Fatalf("expected %s removed", key)
		}
	}

	// Idempotent: a second restore is still logged out, still clean.
	m.Restore(ctx)
	if m.Current() != nil {
		t.Fatal("second restore should also be logged out")
	}
}

func TestRestorePartialStateClears(t *testing.T) {
	t.Parallel()

	st := store.NewMemory()
	ctx := context.Background()
	_ = st.Set(ctx, "auth.token", "tok-123")

	m := NewManager(st, &fakeIdentityAPI{}, nil)
	m.Restore(ctx)

	if m.Current() != nil {
		t.Fatal("token without user should restore as logged out")
	}
	if _, ok, _ := st.Get(ctx, "auth.token"); ok {
		t.Fatal("orphan token should be removed")
	}
}

func TestRestoreValidSession(t *testing.T) {
	t.Parallel()

	st := store.NewMemory()
	ctx := context.Background()
	_ = st.Set(ctx, "auth.token", "tok-123")
	_ = st.Set(ctx, "auth.user", `{"id":"u-1","email":"priya@example.com","first_name":"Priya","last_name":"Sharma","experience_years":4}`)

	m := NewManager(st, &fakeIdentityAPI{}, nil)
	m.Restore(ctx)

	session := m.Current()
	if !session.LoggedIn() {
		t.Fatal("expected restored session")
	}
	if session.User.FirstName != "Priya" {
		t.Fatalf("unexpected user: %+v", session.User)
	}
}

func TestUpdateProfileRequiresSession(t *testing.T) {
	t.Parallel()

	m := NewManager(store.NewMemory(), &fakeIdentityAPI{}, nil)
	_, err := m.UpdateProfile(context.Background(), careerapi.ProfileUpdate{FirstName: "Priya"})
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestUpdateProfileReplacesStoredUser(t *testing.T) {
	t.Parallel()

	st := store.NewMemory()
	updated := testUser()
	updated.Location = "Bangalore"
	api := &fakeIdentityAPI{
		authResp: &careerapi.AuthResponse{Token: "tok-123", User: testUser()},
		user:     updated,
	}
	m := NewManager(st, api, nil)

	if _, err := m.Login(context.Background(), "priya@example.com", "secret1"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	user, err := m.UpdateProfile(context.Background(), careerapi.ProfileUpdate{Location: "Bangalore"})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if user.Location != "Bangalore" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if api.lastUpdateToken != "tok-123" {
		t.Fatalf("expected bearer token forwarded, got %q", api.lastUpdateToken)
	}
	if got := m.Current().User.Location; got != "Bangalore" {
		t.Fatalf("in-memory user not replaced: %q", got)
	}
}

func TestUpdateProfileFailureKeepsSession(t *testing.T) {
	t.Parallel()

	st := store.NewMemory()
	api := &fakeIdentityAPI{authResp: &careerapi.AuthResponse{Token: "tok-123", User: testUser()}}
	m := NewManager(st, api, nil)

	if _, err := m.Login(context.Background(), "priya@example.com", "secret1"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	api.err = &careerapi.APIError{Status: 500, Message: "backend down"}
	api.user = nil
	if _, err := m.UpdateProfile(context.Background(), careerapi.ProfileUpdate{}); err == nil {
		t.Fatal("expected error")
	}
	if got := m.Current().User.ID; got != "u-1" {
		t.Fatalf("session should be untouched, got user %q", got)
	}
}

func TestClientIDIsStable(t *testing.T) {
	t.Parallel()

	m := NewManager(store.NewMemory(), &fakeIdentityAPI{}, nil)
	ctx := context.Background()

	first := m.ClientID(ctx)
	if first == "" {
		t.Fatal("expected a client id")
	}
	if second := m.ClientID(ctx); second != first {
		t.Fatalf("client id should be stable: %q vs %q", first, second)
	}
}
