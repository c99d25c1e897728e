package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service contains business logic for jobs.
type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Create validates and persists a new job for a recruiter.
func (s *Service) Create(ctx context.Context, userID, name, description string, skills []string) (Job, error) {
	if strings.TrimSpace(userID) == "" {
		return Job{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" {
		return Job{}, fmt.Errorf("%w: job name is required", ErrInvalidInput)
	}
	if description == "" {
		return Job{}, fmt.Errorf("%w: job description is required", ErrInvalidInput)
	}

	job := Job{
		ID:             uuid.NewString(),
		UserID:         userID,
		JobName:        name,
		JobDescription: description,
		ExpectedSkills: cleanSkills(skills),
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, job); err != nil {
		return Job{}, err
	}
	return job, nil
}

func (s *Service) Get(ctx context.Context, jobID string) (Job, error) {
	if jobID == "" {
		return Job{}, fmt.Errorf("%w: job id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, jobID)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]Job, error) {
	return s.Repo.List(ctx, limit, offset)
}

// Update replaces the mutable fields of a job. Empty fields keep their
// previous value.
func (s *Service) Update(ctx context.Context, jobID, name, description string, skills []string) (Job, error) {
	job, err := s.Get(ctx, jobID)
	if err != nil {
		return Job{}, err
	}
	if name = strings.TrimSpace(name); name != "" {
		job.JobName = name
	}
	if description = strings.TrimSpace(description); description != "" {
		job.JobDescription = description
	}
	if skills != nil {
		job.ExpectedSkills = cleanSkills(skills)
	}
	if err := s.Repo.Update(ctx, job); err != nil {
		return Job{}, err
	}
	return s.Repo.GetByID(ctx, jobID)
}

func (s *Service) Delete(ctx context.Context, jobID string) error {
	if jobID == "" {
		return fmt.Errorf("%w: job id is required", ErrInvalidInput)
	}
	return s.Repo.Delete(ctx, jobID)
}

func cleanSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, skill := range skills {
		if skill = strings.TrimSpace(skill); skill != "" {
			out = append(out, skill)
		}
	}
	return out
}
