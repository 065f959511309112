package domain

// JobFilters are the search criteria sent to the job search backend.
type JobFilters struct {
	Query      string   `json:"query"`
	Location   string   `json:"location"`
	Skills     []string `json:"skills"`
	Experience int      `json:"experience"`
}

// Job is a single job posting returned by the search backend.
type Job struct {
	ID                 string   `json:"_id"`
	Title              string   `json:"title"`
	Company            string   `json:"company"`
	Location           string   `json:"location"`
	Experience         string   `json:"experience,omitempty"`
	SalaryRange        string   `json:"salary_range,omitempty"`
	SkillsRequired     []string `json:"skills_required,omitempty"`
	JobURL             string   `json:"job_url,omitempty"`
	PostedDate         string   `json:"posted_date,omitempty"`
	JobType            string   `json:"job_type,omitempty"`
	RemoteOption       bool     `json:"remote_option"`
	WomenFriendlyScore float64  `json:"women_friendly_score,omitempty"`
}
