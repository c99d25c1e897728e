package jobs

import "time"

// Job is an open position candidates are screened against. Jobs are
// visible to every signed-in recruiter; UserID records the creator.
type Job struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	JobName        string    `json:"jobName"`
	JobDescription string    `json:"jobDescription"`
	ExpectedSkills []string  `json:"expectedSkills"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
