package transport

import (
	"context"

	"talentflow/internal/assess"
	"talentflow/internal/models"
)

// GetAssessment returns the job's assessment, creating an empty one on
// first access. The auto-create is part of the read path and is not subject
// to failure injection.
func (c *Client) GetAssessment(ctx context.Context, jobID string) (*models.Assessment, error) {
	if err := c.delay(ctx); err != nil {
		return nil, err
	}
	assessment, err := c.store.Assessments().Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if assessment == nil {
		empty := models.Assessment{
			JobID:     jobID,
			Sections:  []models.Section{},
			UpdatedAt: c.store.Now(),
		}
		if err := c.store.Assessments().Put(ctx, empty); err != nil {
			return nil, err
		}
		return &empty, nil
	}
	return assessment, nil
}

// SaveAssessment replaces the job's question tree and refreshes updatedAt.
// Malformed questions (settings payload not matching the type) are rejected
// before anything is written.
func (c *Client) SaveAssessment(ctx context.Context, jobID string, sections []models.Section) (*models.Assessment, error) {
	if err := c.guardWrite(ctx); err != nil {
		return nil, err
	}
	for _, section := range sections {
		for _, q := range section.Questions {
			if err := q.Validate(); err != nil {
				return nil, validation(err.Error())
			}
		}
	}

	assessment := models.Assessment{
		JobID:     jobID,
		Sections:  sections,
		UpdatedAt: c.store.Now(),
	}
	if err := c.store.Assessments().Put(ctx, assessment); err != nil {
		return nil, err
	}
	return &assessment, nil
}

// SubmitAssessment validates the answers against the visible question tree
// and records an immutable response.
func (c *Client) SubmitAssessment(ctx context.Context, jobID, candidateID string, answers models.Answers) (*models.Response, error) {
	if err := c.guardWrite(ctx); err != nil {
		return nil, err
	}
	if candidateID == "" {
		return nil, validation("Candidate is required")
	}
	candidate, err := c.store.Candidates().Get(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	if candidate == nil {
		return nil, validation("Candidate does not exist")
	}

	assessment, err := c.store.Assessments().Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if assessment != nil {
		if fieldErrors := assess.Validate(assessment.Sections, answers); len(fieldErrors) > 0 {
			return nil, validationFields("Answers failed validation", fieldErrors)
		}
	}

	response := models.Response{
		ID:          c.store.NewID("response"),
		JobID:       jobID,
		CandidateID: candidateID,
		Answers:     answers,
		SubmittedAt: c.store.Now(),
	}
	if err := c.store.Responses().Add(ctx, response); err != nil {
		return nil, err
	}
	return &response, nil
}

// ListResponses returns the job's responses, optionally narrowed to one
// candidate.
func (c *Client) ListResponses(ctx context.Context, jobID, candidateID string) ([]models.Response, error) {
	if err := c.delay(ctx); err != nil {
		return nil, err
	}
	return c.store.Responses().ByJob(ctx, jobID, candidateID)
}
