package screening

import "context"

// Scan statuses. A scan walks created -> extracting -> scoring ->
// generating -> rendering -> done, or lands in failed with the stage that
// broke recorded alongside.
const (
	StatusCreated    = "created"
	StatusExtracting = "extracting"
	StatusScoring    = "scoring"
	StatusGenerating = "generating"
	StatusRendering  = "rendering"
	StatusDone       = "done"
	StatusFailed     = "failed"
)

// ScoreRecord holds the three screening metrics, each on a 0-10 scale.
// Fallback marks records written when the provider could not produce
// usable scores.
type ScoreRecord struct {
	SkillsMatch             float64 `json:"skills_match_score"`
	ResumeRelevancy         float64 `json:"resume_relevancy_score"`
	JobDescriptionRelevancy float64 `json:"job_description_relevancy_score"`
	Fallback                bool    `json:"-"`
}

// FallbackScores is the record persisted when scoring fails outright.
func FallbackScores() ScoreRecord {
	return ScoreRecord{Fallback: true}
}

// Subject is the slice of candidate and job state the pipeline needs.
type Subject struct {
	CandidateID   string
	CandidateName string
	ResumeKey     string

	JobDescription string
	ExpectedSkills []string
}

// Repo is the persistence surface the pipeline drives. The candidates
// repository implements it.
type Repo interface {
	GetSubject(ctx context.Context, candidateID string) (Subject, error)
	SetScanStatus(ctx context.Context, candidateID, status string) error
	SetScanFailure(ctx context.Context, candidateID, stage, message string) error
	SetScores(ctx context.Context, candidateID string, scores ScoreRecord) error
	SetGuide(ctx context.Context, candidateID, fileName, storageKey string) error
}
