package domain

// Experience is a single work-experience entry on the resume form.
type Experience struct {
	Company      string   `json:"company"`
	Role         string   `json:"role"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	Current      bool     `json:"current"`
	Location     string   `json:"location"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements"`
}
