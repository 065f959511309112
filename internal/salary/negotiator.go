// Package salary implements the salary-negotiator wizard: two form steps,
// submission to the remote prediction endpoint, a best-effort location
// comparison, and locally derived negotiation strategies.
package salary

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/vedika48/career-compass/internal/careerapi"
	"github.com/vedika48/career-compass/internal/wizard"
)

// comparisonLocations are always compared against the entered location.
var comparisonLocations = []string{"Bangalore", "Mumbai", "Hyderabad"}

// BackendAPI is the slice of the backend client the negotiator depends on.
type BackendAPI interface {
	PredictSalary(ctx context.Context, token string, req careerapi.SalaryPredictRequest) (*careerapi.SalaryPredictResponse, error)
	CompareSalaries(ctx context.Context, token string, req careerapi.SalaryComparisonRequest) (*careerapi.SalaryComparisonResponse, error)
}

// TokenFunc supplies the current session credential at submit time.
type TokenFunc func() string

// Result is the terminal state of the negotiator wizard. Comparison is
// best-effort and may be nil even on success.
type Result struct {
	Prediction *careerapi.SalaryPredictResponse    `json:"prediction"`
	Comparison *careerapi.SalaryComparisonResponse `json:"comparison,omitempty"`
}

// Steps returns the salary wizard step descriptors.
func Steps() []wizard.Step {
	return []wizard.Step{
		{ID: "current", Title: "Current Situation", RequiredFields: []string{"currentSalary", "targetSalary"}},
		{ID: "job", Title: "Job Details", RequiredFields: []string{"jobTitle", "location"}},
	}
}

// Negotiator is the salary wizard instance.
type Negotiator struct {
	*wizard.Controller[Result]
}

// NewNegotiator creates a salary negotiator wired to the backend.
func NewNegotiator(api BackendAPI, token TokenFunc, logger *slog.Logger) (*Negotiator, error) {
	if token == nil {
		token = func() string { return "" }
	}
	if logger == nil {
		logger = slog.Default()
	}

	submit := func(ctx context.Context, form map[string]any) (*Result, error) {
		req := careerapi.SalaryPredictRequest{
			JobTitle:        str(form, "jobTitle"),
			Location:        str(form, "location"),
			ExperienceYears: intField(form, "experience"),
			Company:         str(form, "company"),
			Industry:        str(form, "industry"),
			CompanySize:     str(form, "companySize"),
			Skills:          strList(form, "skills"),
		}

		prediction, err := api.PredictSalary(ctx, token(), req)
		if err != nil {
			return nil, fmt.Errorf("predict salary: %w", err)
		}

		result := &Result{Prediction: prediction}

		// The comparison enriches the result but never fails the submission.
		if req.JobTitle != "" && req.Location != "" {
			comparison, cmpErr := api.CompareSalaries(ctx, token(), careerapi.SalaryComparisonRequest{
				JobTitle:  req.JobTitle,
				Locations: append([]string{req.Location}, comparisonLocations...),
			})
			if cmpErr != nil {
				logger.Warn("salary comparison unavailable", "error", cmpErr)
			} else {
				result.Comparison = comparison
			}
		}

		return result, nil
	}

	ctrl, err := wizard.New(Steps(), submit)
	if err != nil {
		return nil, err
	}

	n := &Negotiator{Controller: ctrl}
	n.UpdateFields(map[string]any{
		"industry":    "Technology",
		"companySize": "large",
	})
	return n, nil
}

// Strategies derives negotiation advice from the terminal result and the
// entered current salary. Empty until a prediction exists.
func (n *Negotiator) Strategies() []string {
	result := n.Result()
	if result == nil || result.Prediction == nil || result.Prediction.Prediction == nil {
		return nil
	}
	current := floatField(n.Form(), "currentSalary")
	if current <= 0 {
		return nil
	}
	return StrategiesFor(current, result.Prediction.Prediction.Salary)
}

func str(form map[string]any, key string) string {
	if value, ok := form[key].(string); ok {
		return value
	}
	return ""
}

func intField(form map[string]any, key string) int {
	switch value := form[key].(type) {
	case int:
		return value
	case float64:
		return int(value)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func floatField(form map[string]any, key string) float64 {
	switch value := form[key].(type) {
	case float64:
		return value
	case int:
		return float64(value)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func strList(form map[string]any, key string) []string {
	switch value := form[key].(type) {
	case []string:
		return value
	case []any:
		out := make([]string, 0, len(value))
		for _, v := range value {
			if s, ok := v.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		if value == "" {
			return nil
		}
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	default:
		return nil
	}
}
