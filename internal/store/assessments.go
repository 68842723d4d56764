package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"talentflow/internal/models"
)

type AssessmentRepo struct {
	q querier
}

// Get returns the job's assessment, or nil when none has been created yet.
func (r *AssessmentRepo) Get(ctx context.Context, jobID string) (*models.Assessment, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT job_id, sections, updated_at FROM assessments WHERE job_id = ?`, jobID)

	var a models.Assessment
	var sectionsJSON string
	err := row.Scan(&a.JobID, &sectionsJSON, &a.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(sectionsJSON), &a.Sections); err != nil {
		return nil, err
	}
	if a.Sections == nil {
		a.Sections = []models.Section{}
	}
	return &a, nil
}

func (r *AssessmentRepo) Put(ctx context.Context, a models.Assessment) error {
	sectionsJSON, err := json.Marshal(a.Sections)
	if err != nil {
		return err
	}
	_, err = r.q.ExecContext(ctx, `
		INSERT INTO assessments (job_id, sections, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(job_id) DO UPDATE SET
			sections = excluded.sections,
			updated_at = excluded.updated_at
	`, a.JobID, string(sectionsJSON), a.UpdatedAt)
	return err
}

func (r *AssessmentRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM assessments`).Scan(&n)
	return n, err
}
