package resume

import "strings"

// ATS score weights. Four independent presence/length checks, capped at 100.
const (
	basicInfoPoints  = 20
	experiencePoints = 30
	skillsPoints     = 30
	summaryPoints    = 20
	maxScore         = 100

	minSkillCount    = 3
	minSummaryLength = 50
)

// Score computes the ATS compatibility heuristic from the accumulated form.
// The derivation is pure: it reads the form and touches nothing else.
func Score(form map[string]any) int {
	score := 0

	// Basic information.
	if str(form, "name") != "" && str(form, "email") != "" {
		score += basicInfoPoints
	}

	// First work experience entry.
	if entries := experiences(form); len(entries) > 0 && entries[0].Company != "" && entries[0].Role != "" {
		score += experiencePoints
	}

	// Comma-separated technical skills.
	if technical := str(form, "technicalSkills"); technical != "" && len(strings.Split(technical, ",")) >= minSkillCount {
		score += skillsPoints
	}

	// Professional summary.
	if len(str(form, "summary")) > minSummaryLength {
		score += summaryPoints
	}

	if score > maxScore {
		score = maxScore
	}
	return score
}
