package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"talentflow/internal/models"
)

type JobRepo struct {
	q   querier
	now func() time.Time
}

const jobColumns = `id, title, slug, status, tags, "order", description, openings, created_at, updated_at`

func (r *JobRepo) Get(ctx context.Context, id string) (*models.Job, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id)
	job, err := scanJob(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return job, nil
}

// BySlug returns the job owning the slug, or nil.
func (r *JobRepo) BySlug(ctx context.Context, slug string) (*models.Job, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE slug = ? LIMIT 1`, slug)
	job, err := scanJob(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return job, nil
}

// Put upserts the job record as given.
func (r *JobRepo) Put(ctx context.Context, job models.Job) error {
	tagsJSON, err := json.Marshal(job.Tags)
	if err != nil {
		return err
	}
	_, err = r.q.ExecContext(ctx, `
		INSERT INTO jobs (`+jobColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			slug = excluded.slug,
			status = excluded.status,
			tags = excluded.tags,
			"order" = excluded."order",
			description = excluded.description,
			openings = excluded.openings,
			updated_at = excluded.updated_at
	`, job.ID, job.Title, job.Slug, job.Status, string(tagsJSON), job.Order,
		job.Description, job.Openings, job.CreatedAt, job.UpdatedAt)
	return err
}

// All returns a snapshot of every job sorted by order rank.
func (r *JobRepo) All(ctx context.Context) ([]models.Job, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY "order"`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []models.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

func (r *JobRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&n)
	return n, err
}

func (r *JobRepo) CountByStatus(ctx context.Context, status models.JobStatus) (int, error) {
	var n int
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs WHERE status = ?`, status).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*models.Job, error) {
	var j models.Job
	var tagsJSON string
	if err := row.Scan(&j.ID, &j.Title, &j.Slug, &j.Status, &tagsJSON, &j.Order,
		&j.Description, &j.Openings, &j.CreatedAt, &j.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(tagsJSON), &j.Tags); err != nil {
		return nil, err
	}
	return &j, nil
}

// ReorderJob moves one job to a new position and rewrites every order rank
// to its positional index, inside a single transaction. The collection is
// re-read inside the transaction, so the fromOrder hint from the caller is
// not trusted. Assumes a single active reorder per collection.
func (s *Store) ReorderJob(ctx context.Context, jobID string, toOrder int) error {
	return s.WithTx(ctx, func(tx *Tx) error {
		jobs, err := tx.Jobs().All(ctx)
		if err != nil {
			return err
		}

		from := -1
		for i, job := range jobs {
			if job.ID == jobID {
				from = i
				break
			}
		}
		if from == -1 {
			return fmt.Errorf("reorder job %s: %w", jobID, ErrNotFound)
		}

		moving := jobs[from]
		jobs = append(jobs[:from], jobs[from+1:]...)
		if toOrder < 0 {
			toOrder = 0
		}
		if toOrder > len(jobs) {
			toOrder = len(jobs)
		}
		jobs = append(jobs[:toOrder], append([]models.Job{moving}, jobs[toOrder:]...)...)

		now := s.now()
		for index, job := range jobs {
			if _, err := tx.q.ExecContext(ctx,
				`UPDATE jobs SET "order" = ?, updated_at = ? WHERE id = ?`,
				index, now, job.ID); err != nil {
				return err
			}
		}
		return nil
	})
}
