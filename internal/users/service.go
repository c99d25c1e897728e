package users

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrTermsAlreadyAccepted is returned when a recruiter accepts the terms a
// second time.
var ErrTermsAlreadyAccepted = errors.New("terms already accepted")

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// UpsertFromAuth persists the user identity from OAuth so jobs and
// candidates have a stable owner.
func (s *Service) UpsertFromAuth(ctx context.Context, user User) error {
	if s == nil || s.Repo == nil {
		return errors.New("users service not configured")
	}
	if strings.TrimSpace(user.ID) == "" || strings.TrimSpace(user.Email) == "" {
		return errors.New("user id and email are required")
	}
	return s.Repo.Upsert(ctx, user)
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, errors.New("user id is required")
	}
	return s.Repo.GetByID(ctx, userID)
}

// AcceptTerms marks the terms as accepted exactly once and returns the
// updated account.
func (s *Service) AcceptTerms(ctx context.Context, userID string) (User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return User{}, err
	}
	if user.TermsAccepted {
		return User{}, ErrTermsAlreadyAccepted
	}
	if err := s.Repo.SetTermsAccepted(ctx, userID, time.Now().UTC()); err != nil {
		return User{}, err
	}
	return s.Repo.GetByID(ctx, userID)
}
