package store

import (
	"context"

	"talentflow/internal/models"
)

// TimelineRepo is append-only: events are never updated or deleted.
type TimelineRepo struct {
	q querier
}

func (r *TimelineRepo) Append(ctx context.Context, event models.TimelineEvent) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO candidate_timelines (id, candidate_id, stage, changed_at, note)
		VALUES (?, ?, ?, ?, ?)
	`, event.ID, event.CandidateID, event.Stage, event.ChangedAt, event.Note)
	return err
}

// ByCandidate returns the candidate's events, most recent first.
func (r *TimelineRepo) ByCandidate(ctx context.Context, candidateID string) ([]models.TimelineEvent, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, candidate_id, stage, changed_at, note
		FROM candidate_timelines
		WHERE candidate_id = ?
		ORDER BY changed_at DESC
	`, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.TimelineEvent
	for rows.Next() {
		var e models.TimelineEvent
		if err := rows.Scan(&e.ID, &e.CandidateID, &e.Stage, &e.ChangedAt, &e.Note); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *TimelineRepo) CountByCandidate(ctx context.Context, candidateID string) (int, error) {
	var n int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM candidate_timelines WHERE candidate_id = ?`, candidateID).Scan(&n)
	return n, err
}
