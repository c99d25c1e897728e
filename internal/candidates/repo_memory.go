package candidates

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/chaudhari-piyush/talentlens/internal/screening"
)

// MemoryRepo is an in-memory implementation of Repo, used in dev mode and
// tests.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Candidate
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Candidate)}
}

func (r *MemoryRepo) Create(ctx context.Context, cand Candidate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cand.ScanStatus = screening.StatusCreated
	r.data[cand.ID] = cand
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, candidateID string) (Candidate, error) {
	if err := ctx.Err(); err != nil {
		return Candidate{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	cand, ok := r.data[candidateID]
	if !ok {
		return Candidate{}, ErrNotFound
	}
	return cand, nil
}

func (r *MemoryRepo) List(ctx context.Context, jobID string, limit, offset int) ([]Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	r.mu.RLock()
	all := make([]Candidate, 0, len(r.data))
	for _, cand := range r.data {
		if jobID != "" && cand.JobID != jobID {
			continue
		}
		all = append(all, cand)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if offset >= len(all) {
		return []Candidate{}, nil
	}
	end := len(all)
	if offset+limit < end {
		end = offset + limit
	}
	return all[offset:end], nil
}

func (r *MemoryRepo) Delete(ctx context.Context, candidateID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[candidateID]; !ok {
		return ErrNotFound
	}
	delete(r.data, candidateID)
	return nil
}

func (r *MemoryRepo) SetScanStatus(ctx context.Context, candidateID, status string) error {
	return r.update(ctx, candidateID, func(cand *Candidate) {
		cand.ScanStatus = status
	})
}

func (r *MemoryRepo) SetScanFailure(ctx context.Context, candidateID, stage, message string) error {
	return r.update(ctx, candidateID, func(cand *Candidate) {
		cand.ScanStatus = screening.StatusFailed
		cand.ScanFailedStage = stage
		cand.ScanError = message
	})
}

func (r *MemoryRepo) SetScores(ctx context.Context, candidateID string, scores screening.ScoreRecord) error {
	return r.update(ctx, candidateID, func(cand *Candidate) {
		skills := scores.SkillsMatch
		resume := scores.ResumeRelevancy
		jd := scores.JobDescriptionRelevancy
		cand.SkillsMatchScore = &skills
		cand.ResumeRelevancyScore = &resume
		cand.JobDescriptionRelevancyScore = &jd
		cand.ScoresFallback = scores.Fallback
	})
}

func (r *MemoryRepo) SetGuide(ctx context.Context, candidateID, fileName, storageKey string) error {
	return r.update(ctx, candidateID, func(cand *Candidate) {
		cand.GuideFilename = fileName
		cand.GuideKey = storageKey
	})
}

func (r *MemoryRepo) ResetScan(ctx context.Context, candidateID string) error {
	return r.update(ctx, candidateID, func(cand *Candidate) {
		cand.SkillsMatchScore = nil
		cand.ResumeRelevancyScore = nil
		cand.JobDescriptionRelevancyScore = nil
		cand.ScoresFallback = false
		cand.GuideFilename = ""
		cand.GuideKey = ""
		cand.ScanStatus = screening.StatusCreated
		cand.ScanFailedStage = ""
		cand.ScanError = ""
	})
}

func (r *MemoryRepo) update(ctx context.Context, candidateID string, apply func(*Candidate)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cand, ok := r.data[candidateID]
	if !ok {
		return ErrNotFound
	}
	apply(&cand)
	cand.UpdatedAt = time.Now().UTC()
	r.data[candidateID] = cand
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
