package store

import (
	"context"

	"talentflow/internal/models"
)

// NoteRepo is append-only.
type NoteRepo struct {
	q querier
}

func (r *NoteRepo) Append(ctx context.Context, note models.Note) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO notes (id, candidate_id, author, content, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, note.ID, note.CandidateID, note.Author, note.Content, note.CreatedAt)
	return err
}

// ByCandidate returns the candidate's notes, most recent first.
func (r *NoteRepo) ByCandidate(ctx context.Context, candidateID string) ([]models.Note, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, candidate_id, author, content, created_at
		FROM notes
		WHERE candidate_id = ?
		ORDER BY created_at DESC
	`, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.CandidateID, &n.Author, &n.Content, &n.CreatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}
