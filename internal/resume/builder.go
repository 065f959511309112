// Package resume implements the resume-builder wizard: four form steps, a
// locally derived ATS compatibility score, and submission to the remote
// resume optimization endpoint.
package resume

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/vedika48/career-compass/internal/careerapi"
	"github.com/vedika48/career-compass/internal/domain"
	"github.com/vedika48/career-compass/internal/wizard"
)

// BackendAPI is the slice of the backend client the builder depends on.
type BackendAPI interface {
	BuildResume(ctx context.Context, token string, req careerapi.ResumeBuildRequest) (*careerapi.ResumeBuildResponse, error)
}

// TokenFunc supplies the current session credential at submit time.
type TokenFunc func() string

// Steps returns the resume wizard step descriptors.
func Steps() []wizard.Step {
	return []wizard.Step{
		{ID: "personal", Title: "Personal Info", RequiredFields: []string{"name", "email"}},
		{ID: "summary", Title: "Summary", RequiredFields: []string{"summary"}},
		{ID: "experience", Title: "Experience"},
		{ID: "skills", Title: "Skills", RequiredFields: []string{"technicalSkills"}},
	}
}

// Builder is the resume wizard instance. It embeds the generic controller
// and adds experience-list editing and score derivation.
type Builder struct {
	*wizard.Controller[careerapi.ResumeBuildResponse]
}

// NewBuilder creates a resume builder wired to the backend.
func NewBuilder(api BackendAPI, token TokenFunc) (*Builder, error) {
	if token == nil {
		token = func() string { return "" }
	}
	submit := func(ctx context.Context, form map[string]any) (*careerapi.ResumeBuildResponse, error) {
		result, err := api.BuildResume(ctx, token(), buildRequest(form))
		if err != nil {
			return nil, fmt.Errorf("build resume: %w", err)
		}
		return result, nil
	}

	ctrl, err := wizard.New(Steps(), submit)
	if err != nil {
		return nil, err
	}

	b := &Builder{Controller: ctrl}
	// The form starts with a single blank experience entry, as the original
	// editor did.
	b.UpdateField("experiences", []domain.Experience{{Achievements: []string{""}}})
	return b, nil
}

// Experiences returns the current experience entries.
func (b *Builder) Experiences() []domain.Experience {
	value, _ := b.Field("experiences")
	entries, _ := value.([]domain.Experience)
	out := make([]domain.Experience, len(entries))
	copy(out, entries)
	return out
}

// AddExperience appends a blank experience entry.
func (b *Builder) AddExperience() {
	entries := b.Experiences()
	entries = append(entries, domain.Experience{Achievements: []string{""}})
	b.UpdateField("experiences", entries)
}

// SetExperience replaces the entry at index i. Out-of-range indexes are
// ignored.
func (b *Builder) SetExperience(i int, entry domain.Experience) {
	entries := b.Experiences()
	if i < 0 || i >= len(entries) {
		return
	}
	entries[i] = entry
	b.UpdateField("experiences", entries)
}

// RemoveExperience deletes the entry at index i. Out-of-range indexes are
// ignored.
func (b *Builder) RemoveExperience(i int) {
	entries := b.Experiences()
	if i < 0 || i >= len(entries) {
		return
	}
	b.UpdateField("experiences", append(entries[:i:i], entries[i+1:]...))
}

// Score returns the current ATS score for the accumulated form.
func (b *Builder) Score() int {
	return Score(b.Form())
}

// buildRequest maps the accumulated form onto the backend payload:
// comma-separated skill fields become arrays and the experience-years figure
// is derived from the earliest start date.
func buildRequest(form map[string]any) careerapi.ResumeBuildRequest {
	technical := splitList(str(form, "technicalSkills"))
	soft := splitList(str(form, "softSkills"))
	tools := splitList(str(form, "tools"))

	skills := make([]string, 0, len(technical)+len(soft)+len(tools))
	skills = append(skills, technical...)
	skills = append(skills, soft...)
	skills = append(skills, tools...)

	entries := experiences(form)
	currentRole := ""
	if len(entries) > 0 {
		currentRole = entries[0].Role
	}

	targetRole := str(form, "targetRole")
	return careerapi.ResumeBuildRequest{
		UserProfile: careerapi.ResumeProfile{
			Name:            str(form, "name"),
			Email:           str(form, "email"),
			Phone:           str(form, "phone"),
			Location:        str(form, "location"),
			LinkedIn:        str(form, "linkedin"),
			GitHub:          str(form, "github"),
			Portfolio:       str(form, "portfolio"),
			CurrentRole:     currentRole,
			ExperienceYears: experienceYears(entries, time.Now()),
			Skills:          skills,
			Education:       []string{},
			Experiences:     entries,
			Projects:        []string{},
			Certifications:  []string{},
			Achievements:    []string{},
			TargetRole:      targetRole,
		},
		Template:   "professional",
		TargetRole: targetRole,
	}
}

// experienceYears rounds the span from the earliest experience start date to
// now, in years. Entries without a parsable start date are skipped.
func experienceYears(entries []domain.Experience, now time.Time) int {
	var earliest time.Time
	for _, entry := range entries {
		start, ok := parseStartDate(entry.StartDate)
		if !ok {
			continue
		}
		if earliest.IsZero() || start.Before(earliest) {
			earliest = start
		}
	}
	if earliest.IsZero() {
		return 0
	}
	years := now.Sub(earliest).Hours() / (365 * 24)
	return int(math.Round(years))
}

func parseStartDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"2006-01-02", "2006-01", "2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// splitList turns a comma-separated field into a trimmed list with empty
// entries dropped.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func str(form map[string]any, key string) string {
	if value, ok := form[key].(string); ok {
		return value
	}
	return ""
}

func experiences(form map[string]any) []domain.Experience {
	entries, _ := form["experiences"].([]domain.Experience)
	return entries
}
