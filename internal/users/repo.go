package users

import (
	"context"
	"time"
)

// ErrNotFound is returned when no recruiter account matches the given id.
var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "user not found" }

// Repo persists recruiter accounts keyed by their OAuth subject id.
type Repo interface {
	Upsert(ctx context.Context, user User) error
	GetByID(ctx context.Context, userID string) (User, error)
	SetTermsAccepted(ctx context.Context, userID string, at time.Time) error
}
