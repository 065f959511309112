// Package careerapi implements the HTTP client for the remote identity and
// computation backend. Every operation is a single JSON request/response
// round trip: no retries, no pagination, no streaming.
package careerapi

import (
	"encoding/json"
	"fmt"

	"github.com/vedika48/career-compass/internal/domain"
)

// LoginRequest is the credentials payload for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the profile payload for POST /api/auth/register.
type RegisterRequest struct {
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	Email           string   `json:"email"`
	Password        string   `json:"password"`
	Phone           string   `json:"phone"`
	Location        string   `json:"location"`
	CurrentRole     string   `json:"current_role"`
	ExperienceYears int      `json:"experience_years"`
	Skills          []string `json:"skills"`
}

// AuthResponse is the success envelope for login and registration.
type AuthResponse struct {
	Message string       `json:"message,omitempty"`
	Token   string       `json:"token"`
	User    *domain.User `json:"user"`
}

// ProfileUpdate carries the mutable profile fields for PUT /api/user/profile.
type ProfileUpdate struct {
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	Phone           string   `json:"phone"`
	Location        string   `json:"location"`
	CurrentRole     string   `json:"current_role"`
	ExperienceYears int      `json:"experience_years"`
	Skills          []string `json:"skills"`
}

// ChatRequest is the payload for POST /api/chat/message.
type ChatRequest struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

// ChatPayload is the nested assistant response body.
type ChatPayload struct {
	Message     string   `json:"message"`
	Intent      string   `json:"intent,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// ChatResponse is the envelope for chat replies. The backend has shipped two
// shapes over time: a nested response object and a top-level message field.
// Both are retained here until the backend contract settles.
type ChatResponse struct {
	Response *ChatPayload `json:"response,omitempty"`
	Message  string       `json:"message,omitempty"`
}

// AssistantMessage extracts the assistant text from whichever envelope shape
// the backend used, falling back to defaultText when neither is present.
func (r *ChatResponse) AssistantMessage(defaultText string) string {
	if r.Response != nil && r.Response.Message != "" {
		return r.Response.Message
	}
	if r.Message != "" {
		return r.Message
	}
	return defaultText
}

// JobSearchResponse is the envelope for POST /api/jobs/search.
type JobSearchResponse struct {
	Jobs []domain.Job `json:"jobs"`
}

// SalaryPredictRequest carries job and candidate attributes for prediction.
type SalaryPredictRequest struct {
	JobTitle        string   `json:"job_title"`
	Location        string   `json:"location"`
	ExperienceYears int      `json:"experience_years"`
	Company         string   `json:"company"`
	Industry        string   `json:"industry"`
	CompanySize     string   `json:"company_size"`
	Skills          []string `json:"skills"`
}

// SalaryRange is the predicted compensation band.
type SalaryRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// SalaryPrediction is the model output for a single prediction.
type SalaryPrediction struct {
	Salary     float64     `json:"salary"`
	Range      SalaryRange `json:"range"`
	Confidence float64     `json:"confidence"`
}

// SalaryPredictResponse is the envelope for POST /api/salary/predict.
type SalaryPredictResponse struct {
	Prediction     *SalaryPrediction `json:"prediction"`
	MarketAnalysis json.RawMessage   `json:"market_analysis,omitempty"`
}

// SalaryComparisonRequest asks for base salaries across locations.
type SalaryComparisonRequest struct {
	JobTitle  string   `json:"job_title"`
	Locations []string `json:"locations"`
}

// LocationSalary is one entry of a location comparison.
type LocationSalary struct {
	Location   string  `json:"location"`
	BaseSalary float64 `json:"base_salary"`
}

// SalaryComparisonResponse is the envelope for POST /api/salary/comparison.
type SalaryComparisonResponse struct {
	LocationComparison []LocationSalary `json:"location_comparison"`
}

// ResumeProfile is the user_profile object sent to the resume builder.
type ResumeProfile struct {
	Name            string              `json:"name"`
	Email           string              `json:"email"`
	Phone           string              `json:"phone"`
	Location        string              `json:"location"`
	LinkedIn        string              `json:"linkedin"`
	GitHub          string              `json:"github"`
	Portfolio       string              `json:"portfolio"`
	CurrentRole     string              `json:"current_role"`
	ExperienceYears int                 `json:"experience_years"`
	Skills          []string            `json:"skills"`
	Education       []string            `json:"education"`
	Experiences     []domain.Experience `json:"experiences"`
	Projects        []string            `json:"projects"`
	Certifications  []string            `json:"certifications"`
	Achievements    []string            `json:"achievements"`
	TargetRole      string              `json:"target_role"`
}

// ResumeBuildRequest is the payload for POST /api/resume/build.
type ResumeBuildRequest struct {
	UserProfile ResumeProfile `json:"user_profile"`
	Template    string        `json:"template"`
	TargetRole  string        `json:"target_role"`
}

// ResumeBuildResponse is the envelope for a built resume. PDFData, when
// present, is base64-encoded.
type ResumeBuildResponse struct {
	OptimizationTips []string `json:"optimization_tips"`
	PDFData          string   `json:"pdf_data,omitempty"`
}

// APIError is a backend-reported failure: a non-success HTTP status with the
// backend's error or message field when one was provided.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned status %d", e.Status)
}
