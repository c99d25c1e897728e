package candidates

import (
	"context"

	"github.com/chaudhari-piyush/talentlens/internal/screening"
)

// Repo defines persistence operations for candidates, including the scan
// state updates the pipeline writes.
type Repo interface {
	Create(ctx context.Context, cand Candidate) error
	GetByID(ctx context.Context, candidateID string) (Candidate, error)
	List(ctx context.Context, jobID string, limit, offset int) ([]Candidate, error)
	Delete(ctx context.Context, candidateID string) error

	SetScanStatus(ctx context.Context, candidateID, status string) error
	SetScanFailure(ctx context.Context, candidateID, stage, message string) error
	SetScores(ctx context.Context, candidateID string, scores screening.ScoreRecord) error
	SetGuide(ctx context.Context, candidateID, fileName, storageKey string) error

	// ResetScan clears scores, guide references, and failure state, and puts
	// the candidate back in the created status. Used before a rescan.
	ResetScan(ctx context.Context, candidateID string) error
}
