package candidates

import "time"

// Candidate is an applicant attached to a job, together with the state of
// their resume scan. Score columns stay NULL until a scan writes them.
type Candidate struct {
	ID    string `json:"id"`
	JobID string `json:"jobId"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`

	ResumeFilename string `json:"resumeFilename"`
	ResumeKey      string `json:"-"`

	SkillsMatchScore             *float64 `json:"skillsMatchScore"`
	ResumeRelevancyScore         *float64 `json:"resumeRelevancyScore"`
	JobDescriptionRelevancyScore *float64 `json:"jobDescriptionRelevancyScore"`
	ScoresFallback               bool     `json:"scoresFallback"`

	GuideFilename string `json:"guideFilename,omitempty"`
	GuideKey      string `json:"-"`

	ScanStatus      string `json:"scanStatus"`
	ScanFailedStage string `json:"scanFailedStage,omitempty"`
	ScanError       string `json:"scanError,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
