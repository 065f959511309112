// Package domain contains core domain types for the Career Compass application.
package domain

import (
	"strings"
)

// User represents the authenticated user profile as issued by the identity backend.
type User struct {
	ID              string   `json:"id"`
	Email           string   `json:"email"`
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	Name            string   `json:"name,omitempty"`
	Phone           string   `json:"phone,omitempty"`
	Location        string   `json:"location,omitempty"`
	CurrentRole     string   `json:"current_role,omitempty"`
	ExperienceYears int      `json:"experience_years"`
	Skills          []string `json:"skills,omitempty"`
}

// FullName returns the display name, falling back to first+last when the
// backend omitted the combined name field.
func (u *User) FullName() string {
	if u.Name != "" {
		return u.Name
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Session is the authenticated-identity state persisted across restarts.
// Token and User are always both set or both nil.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// LoggedIn returns true if the session carries a credential.
func (s *Session) LoggedIn() bool {
	return s != nil && s.Token != "" && s.User != nil
}
