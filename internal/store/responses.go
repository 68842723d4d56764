package store

import (
	"context"
	"encoding/json"

	"talentflow/internal/models"
)

// ResponseRepo stores submitted answer sets. Responses are immutable once
// created; Add never overwrites.
type ResponseRepo struct {
	q querier
}

func (r *ResponseRepo) Add(ctx context.Context, resp models.Response) error {
	answersJSON, err := json.Marshal(resp.Answers)
	if err != nil {
		return err
	}
	_, err = r.q.ExecContext(ctx, `
		INSERT INTO assessment_responses (id, job_id, candidate_id, answers, submitted_at)
		VALUES (?, ?, ?, ?, ?)
	`, resp.ID, resp.JobID, resp.CandidateID, string(answersJSON), resp.SubmittedAt)
	return err
}

// ByJob returns the job's responses, optionally narrowed to one candidate.
func (r *ResponseRepo) ByJob(ctx context.Context, jobID, candidateID string) ([]models.Response, error) {
	query := `SELECT id, job_id, candidate_id, answers, submitted_at
		FROM assessment_responses WHERE job_id = ?`
	args := []any{jobID}
	if candidateID != "" {
		query += ` AND candidate_id = ?`
		args = append(args, candidateID)
	}
	query += ` ORDER BY submitted_at DESC`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var responses []models.Response
	for rows.Next() {
		var resp models.Response
		var answersJSON string
		if err := rows.Scan(&resp.ID, &resp.JobID, &resp.CandidateID, &answersJSON, &resp.SubmittedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(answersJSON), &resp.Answers); err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, rows.Err()
}
