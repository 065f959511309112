package jobs

import "github.com/vedika48/career-compass/internal/domain"

// SampleJobs returns the fixed demo dataset substituted when the search
// backend is unreachable. Returned fresh on each call so callers can't
// mutate the canonical entries.
func SampleJobs() []domain.Job {
	return []domain.Job{
		{
			ID:                 "1",
			Title:              "Senior Software Engineer - Python",
			Company:            "Flipkart",
			Location:           "Bangalore",
			Experience:         "3-5 years",
			SalaryRange:        "15-25 LPA",
			SkillsRequired:     []string{"Python", "Django", "REST APIs", "PostgreSQL"},
			JobURL:             "https://www.flipkartcareers.com/job123",
			PostedDate:         "2024-01-15",
			JobType:            "Full-time",
			RemoteOption:       false,
			WomenFriendlyScore: 4.5,
		},
		{
			ID:                 "2",
			Title:              "Frontend Developer - React",
			Company:            "Swiggy",
			Location:           "Bangalore",
			Experience:         "2-4 years",
			SalaryRange:        "12-20 LPA",
			SkillsRequired:     []string{"React", "JavaScript", "HTML/CSS", "Redux"},
			JobURL:             "https://careers.swiggy.com/job456",
			PostedDate:         "2024-01-14",
			JobType:            "Full-time",
			RemoteOption:       true,
			WomenFriendlyScore: 4.3,
		},
		{
			ID:                 "3",
			Title:              "Data Scientist",
			Company:            "Zomato",
			Location:           "Delhi",
			Experience:         "2-5 years",
			SalaryRange:        "18-28 LPA",
			SkillsRequired:     []string{"Python", "Machine Learning", "SQL", "Tableau"},
			JobURL:             "https://www.zomato.com/careers/job789",
			PostedDate:         "2024-01-13",
			JobType:            "Full-time",
			RemoteOption:       true,
			WomenFriendlyScore: 4.2,
		},
	}
}
