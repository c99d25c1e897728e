package candidates

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/chaudhari-piyush/talentlens/internal/screening"
)

const candidateColumns = `
id, job_id, name, email, phone,
resume_filename, resume_key,
skills_match_score, resume_relevancy_score, job_description_relevancy_score, scores_fallback,
guide_filename, guide_key,
scan_status, scan_failed_stage, scan_error,
created_at, updated_at`

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, cand Candidate) error {
	const query = `
INSERT INTO candidates (
    id, job_id, name, email, phone,
    resume_filename, resume_key,
    scan_status, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)`
	_, err := r.DB.ExecContext(ctx, query,
		cand.ID,
		cand.JobID,
		cand.Name,
		cand.Email,
		cand.Phone,
		cand.ResumeFilename,
		cand.ResumeKey,
		screening.StatusCreated,
		cand.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, candidateID string) (Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = $1 LIMIT 1`
	cand, err := scanCandidate(r.DB.QueryRowContext(ctx, query, candidateID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Candidate{}, ErrNotFound
		}
		return Candidate{}, err
	}
	return cand, nil
}

func (r *PGRepo) List(ctx context.Context, jobID string, limit, offset int) ([]Candidate, error) {
	if limit <= 0 {
		limit = 100
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + candidateColumns + ` FROM candidates`
	args := []any{}
	if jobID != "" {
		query += ` WHERE job_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		args = append(args, jobID, limit, offset)
	} else {
		query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Candidate
	for rows.Next() {
		cand, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, cand)
	}
	return out, rows.Err()
}

func (r *PGRepo) Delete(ctx context.Context, candidateID string) error {
	const query = `DELETE FROM candidates WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, candidateID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) SetScanStatus(ctx context.Context, candidateID, status string) error {
	const query = `
UPDATE candidates
SET scan_status = $1, updated_at = now()
WHERE id = $2`
	return r.exec(ctx, query, status, candidateID)
}

func (r *PGRepo) SetScanFailure(ctx context.Context, candidateID, stage, message string) error {
	const query = `
UPDATE candidates
SET scan_status = $1, scan_failed_stage = $2, scan_error = $3, updated_at = now()
WHERE id = $4`
	return r.exec(ctx, query, screening.StatusFailed, stage, message, candidateID)
}

func (r *PGRepo) SetScores(ctx context.Context, candidateID string, scores screening.ScoreRecord) error {
	const query = `
UPDATE candidates
SET skills_match_score = $1,
    resume_relevancy_score = $2,
    job_description_relevancy_score = $3,
    scores_fallback = $4,
    updated_at = now()
WHERE id = $5`
	return r.exec(ctx, query,
		scores.SkillsMatch,
		scores.ResumeRelevancy,
		scores.JobDescriptionRelevancy,
		scores.Fallback,
		candidateID,
	)
}

func (r *PGRepo) SetGuide(ctx context.Context, candidateID, fileName, storageKey string) error {
	const query = `
UPDATE candidates
SET guide_filename = $1, guide_key = $2, updated_at = now()
WHERE id = $3`
	return r.exec(ctx, query, fileName, storageKey, candidateID)
}

func (r *PGRepo) ResetScan(ctx context.Context, candidateID string) error {
	const query = `
UPDATE candidates
SET skills_match_score = NULL,
    resume_relevancy_score = NULL,
    job_description_relevancy_score = NULL,
    scores_fallback = FALSE,
    guide_filename = '',
    guide_key = '',
    scan_status = $1,
    scan_failed_stage = '',
    scan_error = '',
    updated_at = now()
WHERE id = $2`
	return r.exec(ctx, query, screening.StatusCreated, candidateID)
}

func (r *PGRepo) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCandidate(row rowScanner) (Candidate, error) {
	var cand Candidate
	var skillsMatch, resumeRel, jdRel sql.NullFloat64
	var failedStage, scanErr, guideName, guideKey sql.NullString
	var updatedAt sql.NullTime
	if err := row.Scan(
		&cand.ID,
		&cand.JobID,
		&cand.Name,
		&cand.Email,
		&cand.Phone,
		&cand.ResumeFilename,
		&cand.ResumeKey,
		&skillsMatch,
		&resumeRel,
		&jdRel,
		&cand.ScoresFallback,
		&guideName,
		&guideKey,
		&cand.ScanStatus,
		&failedStage,
		&scanErr,
		&cand.CreatedAt,
		&updatedAt,
	); err != nil {
		return Candidate{}, err
	}
	if skillsMatch.Valid {
		cand.SkillsMatchScore = &skillsMatch.Float64
	}
	if resumeRel.Valid {
		cand.ResumeRelevancyScore = &resumeRel.Float64
	}
	if jdRel.Valid {
		cand.JobDescriptionRelevancyScore = &jdRel.Float64
	}
	if guideName.Valid {
		cand.GuideFilename = guideName.String
	}
	if guideKey.Valid {
		cand.GuideKey = guideKey.String
	}
	if failedStage.Valid {
		cand.ScanFailedStage = failedStage.String
	}
	if scanErr.Valid {
		cand.ScanError = scanErr.String
	}
	if updatedAt.Valid {
		cand.UpdatedAt = updatedAt.Time
	} else {
		cand.UpdatedAt = time.Now().UTC()
	}
	return cand, nil
}

var _ Repo = (*PGRepo)(nil)
