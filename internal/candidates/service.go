package candidates

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chaudhari-piyush/talentlens/internal/jobs"
	"github.com/chaudhari-piyush/talentlens/internal/screening"
	"github.com/chaudhari-piyush/talentlens/internal/shared/storage/object"
	"github.com/chaudhari-piyush/talentlens/internal/shared/telemetry"
)

// Service contains business logic for candidates: CRUD, resume and guide
// downloads, and the hand-off into the scan pipeline.
type Service struct {
	Repo  Repo
	Jobs  jobs.Repo
	Store object.ObjectStore
	Scans *screening.Service
}

// Create stores the resume, persists the candidate, and kicks off the
// asynchronous scan. A scan start failure is logged, not surfaced; the
// candidate record stands on its own.
func (s *Service) Create(ctx context.Context, jobID, name, email, phone, resumeFilename string, resume io.Reader) (Candidate, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)
	if jobID == "" || name == "" || email == "" {
		return Candidate{}, fmt.Errorf("%w: job id, name, and email are required", ErrInvalidInput)
	}
	if !strings.HasSuffix(strings.ToLower(resumeFilename), ".pdf") {
		return Candidate{}, ErrNotPDF
	}
	if _, err := s.Jobs.GetByID(ctx, jobID); err != nil {
		return Candidate{}, err
	}

	storageKey, _, _, err := s.Store.Save(ctx, jobID, resumeFilename, resume)
	if err != nil {
		return Candidate{}, fmt.Errorf("store resume: %w", err)
	}

	cand := Candidate{
		ID:             uuid.NewString(),
		JobID:          jobID,
		Name:           name,
		Email:          email,
		Phone:          phone,
		ResumeFilename: resumeFilename,
		ResumeKey:      storageKey,
		ScanStatus:     screening.StatusCreated,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, cand); err != nil {
		return Candidate{}, err
	}

	if err := s.Scans.StartScan(ctx, cand.ID); err != nil {
		telemetry.Error("candidate.scan_start", map[string]any{
			"candidate_id": cand.ID,
			"error":        err.Error(),
		})
	}

	return cand, nil
}

func (s *Service) Get(ctx context.Context, candidateID string) (Candidate, error) {
	if candidateID == "" {
		return Candidate{}, fmt.Errorf("%w: candidate id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, candidateID)
}

// List returns candidates, optionally filtered by job. A filter naming a
// missing job is an error rather than an empty list.
func (s *Service) List(ctx context.Context, jobID string, limit, offset int) ([]Candidate, error) {
	if jobID != "" {
		if _, err := s.Jobs.GetByID(ctx, jobID); err != nil {
			return nil, err
		}
	}
	return s.Repo.List(ctx, jobID, limit, offset)
}

// OpenResume streams the stored resume for download.
func (s *Service) OpenResume(ctx context.Context, candidateID string) (Candidate, io.ReadCloser, error) {
	cand, err := s.Get(ctx, candidateID)
	if err != nil {
		return Candidate{}, nil, err
	}
	if cand.ResumeKey == "" {
		return Candidate{}, nil, ErrNotFound
	}
	body, err := s.Store.Open(ctx, cand.ResumeKey)
	if err != nil {
		return Candidate{}, nil, fmt.Errorf("open resume: %w", err)
	}
	return cand, body, nil
}

// OpenGuide streams the rendered interview guide for download.
func (s *Service) OpenGuide(ctx context.Context, candidateID string) (Candidate, io.ReadCloser, error) {
	cand, err := s.Get(ctx, candidateID)
	if err != nil {
		return Candidate{}, nil, err
	}
	if cand.GuideKey == "" {
		return Candidate{}, nil, ErrGuideNotReady
	}
	body, err := s.Store.Open(ctx, cand.GuideKey)
	if err != nil {
		return Candidate{}, nil, fmt.Errorf("open guide: %w", err)
	}
	return cand, body, nil
}

// Rescan wipes the previous scan output and runs the pipeline again. The
// fresh scan wholesale-replaces scores and guide.
func (s *Service) Rescan(ctx context.Context, candidateID string) error {
	cand, err := s.Get(ctx, candidateID)
	if err != nil {
		return err
	}
	if cand.GuideKey != "" {
		if err := s.Store.Delete(ctx, cand.GuideKey); err != nil {
			telemetry.Warn("candidate.guide_delete", map[string]any{
				"candidate_id": candidateID,
				"guide_key":    cand.GuideKey,
				"error":        err.Error(),
			})
		}
	}
	if err := s.Repo.ResetScan(ctx, candidateID); err != nil {
		return err
	}
	return s.Scans.StartScan(ctx, candidateID)
}

// Delete removes the candidate and its stored objects.
func (s *Service) Delete(ctx context.Context, candidateID string) error {
	cand, err := s.Get(ctx, candidateID)
	if err != nil {
		return err
	}
	for _, key := range []string{cand.ResumeKey, cand.GuideKey} {
		if key == "" {
			continue
		}
		if err := s.Store.Delete(ctx, key); err != nil {
			telemetry.Warn("candidate.object_delete", map[string]any{
				"candidate_id": candidateID,
				"storage_key":  key,
				"error":        err.Error(),
			})
		}
	}
	return s.Repo.Delete(ctx, candidateID)
}
