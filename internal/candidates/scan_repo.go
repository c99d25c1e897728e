package candidates

import (
	"context"

	"github.com/chaudhari-piyush/talentlens/internal/jobs"
	"github.com/chaudhari-piyush/talentlens/internal/screening"
)

// ScanRepo adapts the candidate and job repositories to the scan
// pipeline's persistence surface.
type ScanRepo struct {
	Candidates Repo
	Jobs       jobs.Repo
}

func (r *ScanRepo) GetSubject(ctx context.Context, candidateID string) (screening.Subject, error) {
	cand, err := r.Candidates.GetByID(ctx, candidateID)
	if err != nil {
		return screening.Subject{}, err
	}
	job, err := r.Jobs.GetByID(ctx, cand.JobID)
	if err != nil {
		return screening.Subject{}, err
	}
	return screening.Subject{
		CandidateID:    cand.ID,
		CandidateName:  cand.Name,
		ResumeKey:      cand.ResumeKey,
		JobDescription: job.JobDescription,
		ExpectedSkills: job.ExpectedSkills,
	}, nil
}

func (r *ScanRepo) SetScanStatus(ctx context.Context, candidateID, status string) error {
	return r.Candidates.SetScanStatus(ctx, candidateID, status)
}

func (r *ScanRepo) SetScanFailure(ctx context.Context, candidateID, stage, message string) error {
	return r.Candidates.SetScanFailure(ctx, candidateID, stage, message)
}

func (r *ScanRepo) SetScores(ctx context.Context, candidateID string, scores screening.ScoreRecord) error {
	return r.Candidates.SetScores(ctx, candidateID, scores)
}

func (r *ScanRepo) SetGuide(ctx context.Context, candidateID, fileName, storageKey string) error {
	return r.Candidates.SetGuide(ctx, candidateID, fileName, storageKey)
}

var _ screening.Repo = (*ScanRepo)(nil)
