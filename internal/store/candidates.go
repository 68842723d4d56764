package store

import (
	"context"
	"database/sql"

	"talentflow/internal/models"
)

type CandidateRepo struct {
	q querier
}

const candidateColumns = `id, job_id, name, email, stage, applied_at, avatar_color, phone`

func (r *CandidateRepo) Get(ctx context.Context, id string) (*models.Candidate, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE id = ?`, id)
	var c models.Candidate
	err := row.Scan(&c.ID, &c.JobID, &c.Name, &c.Email, &c.Stage, &c.AppliedAt, &c.AvatarColor, &c.Phone)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CandidateRepo) Put(ctx context.Context, c models.Candidate) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO candidates (`+candidateColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			job_id = excluded.job_id,
			name = excluded.name,
			email = excluded.email,
			stage = excluded.stage,
			applied_at = excluded.applied_at,
			avatar_color = excluded.avatar_color,
			phone = excluded.phone
	`, c.ID, c.JobID, c.Name, c.Email, c.Stage, c.AppliedAt, c.AvatarColor, c.Phone)
	return err
}

// All returns a snapshot of every candidate.
func (r *CandidateRepo) All(ctx context.Context) ([]models.Candidate, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+candidateColumns+` FROM candidates`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []models.Candidate
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.ID, &c.JobID, &c.Name, &c.Email, &c.Stage, &c.AppliedAt, &c.AvatarColor, &c.Phone); err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

func (r *CandidateRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM candidates`).Scan(&n)
	return n, err
}

// CountByStage tallies the pipeline for the dashboard.
func (r *CandidateRepo) CountByStage(ctx context.Context) (map[models.Stage]int, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT stage, COUNT(*) FROM candidates GROUP BY stage`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[models.Stage]int)
	for rows.Next() {
		var stage models.Stage
		var n int
		if err := rows.Scan(&stage, &n); err != nil {
			return nil, err
		}
		counts[stage] = n
	}
	return counts, rows.Err()
}
