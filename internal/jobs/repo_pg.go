package jobs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres. Expected skills live in a JSONB
// column.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, job Job) error {
	const query = `
INSERT INTO jobs (id, user_id, job_name, job_description, expected_skills, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $6)`
	skills, err := marshalSkills(job.ExpectedSkills)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		job.ID,
		job.UserID,
		job.JobName,
		job.JobDescription,
		skills,
		job.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, jobID string) (Job, error) {
	const query = `
SELECT id, user_id, job_name, job_description, expected_skills, created_at, updated_at
FROM jobs
WHERE id = $1
LIMIT 1`
	return r.scanRow(r.DB.QueryRowContext(ctx, query, jobID))
}

func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Job, error) {
	if limit <= 0 {
		limit = 100
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT id, user_id, job_name, job_description, expected_skills, created_at, updated_at
FROM jobs
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Job
	for rows.Next() {
		job, err := r.scanRows(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, job)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, job Job) error {
	const query = `
UPDATE jobs
SET job_name = $1, job_description = $2, expected_skills = $3, updated_at = now()
WHERE id = $4`
	skills, err := marshalSkills(job.ExpectedSkills)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, query, job.JobName, job.JobDescription, skills, job.ID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) Delete(ctx context.Context, jobID string) error {
	const query = `DELETE FROM jobs WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, jobID)
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

func (r *PGRepo) scanRow(row rowScanner) (Job, error) {
	job, err := r.scanRows(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Job{}, ErrNotFound
		}
		return Job{}, err
	}
	return job, nil
}

func (r *PGRepo) scanRows(row rowScanner) (Job, error) {
	var job Job
	var skillsRaw []byte
	var updatedAt sql.NullTime
	if err := row.Scan(
		&job.ID,
		&job.UserID,
		&job.JobName,
		&job.JobDescription,
		&skillsRaw,
		&job.CreatedAt,
		&updatedAt,
	); err != nil {
		return Job{}, err
	}
	if len(skillsRaw) > 0 {
		if err := json.Unmarshal(skillsRaw, &job.ExpectedSkills); err != nil {
			return Job{}, err
		}
	}
	if updatedAt.Valid {
		job.UpdatedAt = updatedAt.Time
	} else {
		job.UpdatedAt = time.Now().UTC()
	}
	return job, nil
}

func marshalSkills(skills []string) ([]byte, error) {
	if skills == nil {
		skills = []string{}
	}
	return json.Marshal(skills)
}

var _ Repo = (*PGRepo)(nil)
