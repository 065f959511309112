package auth

import (
	"errors"
	"strings"

	"github.com/vedika48/career-compass/internal/careerapi"
)

// ErrNotAuthenticated is returned by operations that require a live session.
var ErrNotAuthenticated = errors.New("not authenticated")

// ValidationError is a local form validation failure, caught before any
// network call and surfaced to the user verbatim.
type ValidationError struct {
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string { return e.Message }

// IsValidationError reports whether err is a local validation failure.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// RegisterForm is the registration input as entered, including the password
// confirmation that never leaves the process.
type RegisterForm struct {
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	Email           string   `json:"email"`
	Password        string   `json:"password"`
	ConfirmPassword string   `json:"confirm_password"`
	Phone           string   `json:"phone"`
	Location        string   `json:"location"`
	CurrentRole     string   `json:"current_role"`
	ExperienceYears int      `json:"experience_years"`
	Skills          []string `json:"skills"`
}

// Validate applies the local registration rules.
func (f *RegisterForm) Validate() error {
	if f.FirstName == "" || f.LastName == "" || f.Email == "" || f.Password == "" {
		return &ValidationError{Message: "Please fill in all required fields"}
	}
	if f.Password != f.ConfirmPassword {
		return &ValidationError{Message: "Passwords do not match"}
	}
	if len(f.Password) < 6 {
		return &ValidationError{Message: "Password must be at least 6 characters long"}
	}
	return nil
}

func (f *RegisterForm) toRequest() careerapi.RegisterRequest {
	skills := make([]string, 0, len(f.Skills))
	for _, s := range f.Skills {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	return careerapi.RegisterRequest{
		FirstName:       f.FirstName,
		LastName:        f.LastName,
		Email:           f.Email,
		Password:        f.Password,
		Phone:           f.Phone,
		Location:        f.Location,
		CurrentRole:     f.CurrentRole,
		ExperienceYears: f.ExperienceYears,
		Skills:          skills,
	}
}
