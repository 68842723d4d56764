package transport

import (
	"context"
	"fmt"
	"strings"

	"talentflow/internal/models"
	"talentflow/internal/query"
)

type CreateCandidateInput struct {
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	JobID       string       `json:"jobId"`
	Stage       models.Stage `json:"stage,omitempty"`
	Phone       string       `json:"phone,omitempty"`
	AvatarColor string       `json:"avatarColor,omitempty"`
}

// UpdateCandidateInput is a partial patch; nil fields are left untouched.
type UpdateCandidateInput struct {
	Name        *string       `json:"name,omitempty"`
	Email       *string       `json:"email,omitempty"`
	JobID       *string       `json:"jobId,omitempty"`
	Stage       *models.Stage `json:"stage,omitempty"`
	Phone       *string       `json:"phone,omitempty"`
	AvatarColor *string       `json:"avatarColor,omitempty"`
}

const defaultAvatarColor = "#8884d8"

func (c *Client) ListCandidates(ctx context.Context, filter query.CandidateFilter, page query.Page) (query.Result[models.Candidate], error) {
	if err := c.delay(ctx); err != nil {
		return query.Result[models.Candidate]{}, err
	}
	snapshot, err := c.store.Candidates().All(ctx)
	if err != nil {
		return query.Result[models.Candidate]{}, err
	}
	return query.Candidates(snapshot, filter, page), nil
}

func (c *Client) GetCandidate(ctx context.Context, candidateID string) (*models.Candidate, error) {
	if err := c.delay(ctx); err != nil {
		return nil, err
	}
	candidate, err := c.store.Candidates().Get(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	if candidate == nil {
		return nil, notFound("Candidate not found")
	}
	return candidate, nil
}

// CreateCandidate stores the candidate and appends the implicit
// "Application submitted" timeline event.
func (c *Client) CreateCandidate(ctx context.Context, input CreateCandidateInput) (*models.Candidate, error) {
	if err := c.guardWrite(ctx); err != nil {
		return nil, err
	}

	if input.Name == "" || input.Email == "" || input.JobID == "" {
		return nil, validation("Missing required fields")
	}
	job, err := c.store.Jobs().Get(ctx, input.JobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, validation("Job does not exist")
	}

	stage := input.Stage
	if stage == "" {
		stage = models.StageApplied
	}
	if !stage.Valid() {
		return nil, validation("Unknown stage")
	}
	color := input.AvatarColor
	if color == "" {
		color = defaultAvatarColor
	}

	candidate := models.Candidate{
		ID:          c.store.NewID("cand"),
		JobID:       input.JobID,
		Name:        input.Name,
		Email:       strings.ToLower(input.Email),
		Stage:       stage,
		AppliedAt:   c.store.Now(),
		AvatarColor: color,
		Phone:       input.Phone,
	}
	if err := c.store.Candidates().Put(ctx, candidate); err != nil {
		return nil, err
	}

	event := models.TimelineEvent{
		ID:          c.store.NewID("timeline"),
		CandidateID: candidate.ID,
		Stage:       candidate.Stage,
		ChangedAt:   candidate.AppliedAt,
		Note:        "Application submitted",
	}
	if err := c.store.Timelines().Append(ctx, event); err != nil {
		return nil, err
	}
	return &candidate, nil
}

// UpdateCandidate applies the patch; a changed stage appends exactly one
// timeline event, an unchanged one appends none.
func (c *Client) UpdateCandidate(ctx context.Context, candidateID string, input UpdateCandidateInput) (*models.Candidate, error) {
	if err := c.guardWrite(ctx); err != nil {
		return nil, err
	}

	candidate, err := c.store.Candidates().Get(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	if candidate == nil {
		return nil, notFound("Candidate not found")
	}

	stageChanged := false
	if input.Stage != nil && *input.Stage != candidate.Stage {
		if !input.Stage.Valid() {
			return nil, validation("Unknown stage")
		}
		candidate.Stage = *input.Stage
		stageChanged = true
	}
	if input.Name != nil {
		candidate.Name = *input.Name
	}
	if input.Email != nil {
		candidate.Email = strings.ToLower(*input.Email)
	}
	if input.JobID != nil && *input.JobID != candidate.JobID {
		job, err := c.store.Jobs().Get(ctx, *input.JobID)
		if err != nil {
			return nil, err
		}
		if job == nil {
			return nil, validation("Job does not exist")
		}
		candidate.JobID = *input.JobID
	}
	if input.Phone != nil {
		candidate.Phone = *input.Phone
	}
	if input.AvatarColor != nil {
		candidate.AvatarColor = *input.AvatarColor
	}

	if err := c.store.Candidates().Put(ctx, *candidate); err != nil {
		return nil, err
	}
	if stageChanged {
		event := models.TimelineEvent{
			ID:          c.store.NewID("timeline"),
			CandidateID: candidateID,
			Stage:       candidate.Stage,
			ChangedAt:   c.store.Now(),
			Note:        fmt.Sprintf("Stage moved to %s", candidate.Stage),
		}
		if err := c.store.Timelines().Append(ctx, event); err != nil {
			return nil, err
		}
	}
	return candidate, nil
}

// CandidateTimeline returns events most recent first.
func (c *Client) CandidateTimeline(ctx context.Context, candidateID string) ([]models.TimelineEvent, error) {
	if err := c.delay(ctx); err != nil {
		return nil, err
	}
	return c.store.Timelines().ByCandidate(ctx, candidateID)
}

// CandidateNotes returns notes most recent first.
func (c *Client) CandidateNotes(ctx context.Context, candidateID string) ([]models.Note, error) {
	if err := c.delay(ctx); err != nil {
		return nil, err
	}
	return c.store.Notes().ByCandidate(ctx, candidateID)
}

func (c *Client) AddCandidateNote(ctx context.Context, candidateID, author, content string) (*models.Note, error) {
	if err := c.guardWrite(ctx); err != nil {
		return nil, err
	}
	if author == "" || content == "" {
		return nil, validation("Author and content are required")
	}
	candidate, err := c.store.Candidates().Get(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	if candidate == nil {
		return nil, notFound("Candidate not found")
	}

	note := models.Note{
		ID:          c.store.NewID("note"),
		CandidateID: candidateID,
		Author:      author,
		Content:     content,
		CreatedAt:   c.store.Now(),
	}
	if err := c.store.Notes().Append(ctx, note); err != nil {
		return nil, err
	}
	return &note, nil
}
