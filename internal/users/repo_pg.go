package users

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Upsert(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, email, full_name, created_at, updated_at)
VALUES ($1, $2, $3, now(), now())
ON CONFLICT (id) DO UPDATE SET
  email = EXCLUDED.email,
  full_name = EXCLUDED.full_name,
  updated_at = now()`
	_, err := r.DB.ExecContext(ctx, query, user.ID, user.Email, user.FullName)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	const query = `
SELECT id, email, full_name, terms_accepted, terms_accepted_at, created_at, updated_at
FROM users
WHERE id = $1
LIMIT 1`
	var user User
	var termsAt sql.NullTime
	var updatedAt sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&user.ID,
		&user.Email,
		&user.FullName,
		&user.TermsAccepted,
		&termsAt,
		&user.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	if termsAt.Valid {
		user.TermsAcceptedAt = &termsAt.Time
	}
	if updatedAt.Valid {
		user.UpdatedAt = updatedAt.Time
	} else {
		user.UpdatedAt = time.Now().UTC()
	}
	return user, nil
}

func (r *PGRepo) SetTermsAccepted(ctx context.Context, userID string, at time.Time) error {
	const query = `
UPDATE users
SET terms_accepted = TRUE, terms_accepted_at = $1, updated_at = now()
WHERE id = $2`
	res, err := r.DB.ExecContext(ctx, query, at, userID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)
