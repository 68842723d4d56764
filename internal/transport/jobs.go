package transport

import (
	"context"
	"errors"
	"strings"

	"talentflow/internal/models"
	"talentflow/internal/query"
	"talentflow/internal/slug"
	"talentflow/internal/store"
)

type CreateJobInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Openings    int      `json:"openings"`
}

// UpdateJobInput is a partial patch; nil fields are left untouched.
type UpdateJobInput struct {
	Title       *string           `json:"title,omitempty"`
	Description *string           `json:"description,omitempty"`
	Tags        *[]string         `json:"tags,omitempty"`
	Openings    *int              `json:"openings,omitempty"`
	Status      *models.JobStatus `json:"status,omitempty"`
}

func (c *Client) ListJobs(ctx context.Context, filter query.JobFilter, page query.Page) (query.Result[models.Job], error) {
	if err := c.delay(ctx); err != nil {
		return query.Result[models.Job]{}, err
	}
	snapshot, err := c.store.Jobs().All(ctx)
	if err != nil {
		return query.Result[models.Job]{}, err
	}
	return query.Jobs(snapshot, filter, page), nil
}

func (c *Client) GetJob(ctx context.Context, jobID string) (*models.Job, error) {
	if err := c.delay(ctx); err != nil {
		return nil, err
	}
	job, err := c.store.Jobs().Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, notFound("Job not found")
	}
	return job, nil
}

func (c *Client) CreateJob(ctx context.Context, input CreateJobInput) (*models.Job, error) {
	if err := c.guardWrite(ctx); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, validation("Title is required")
	}
	jobSlug := slug.Make(title)
	if existing, err := c.store.Jobs().BySlug(ctx, jobSlug); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, validation("Slug already exists")
	}

	order, err := c.store.Jobs().Count(ctx)
	if err != nil {
		return nil, err
	}
	openings := input.Openings
	if openings <= 0 {
		openings = 1
	}
	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	now := c.store.Now()
	job := models.Job{
		ID:          c.store.NewID("job"),
		Title:       title,
		Slug:        jobSlug,
		Status:      models.JobActive,
		Tags:        tags,
		Order:       order,
		Description: input.Description,
		Openings:    openings,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := c.store.Jobs().Put(ctx, job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (c *Client) UpdateJob(ctx context.Context, jobID string, input UpdateJobInput) (*models.Job, error) {
	if err := c.guardWrite(ctx); err != nil {
		return nil, err
	}

	job, err := c.store.Jobs().Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, notFound("Job not found")
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, validation("Title is required")
		}
		if title != job.Title {
			newSlug := slug.Make(title)
			conflict, err := c.store.Jobs().BySlug(ctx, newSlug)
			if err != nil {
				return nil, err
			}
			if conflict != nil && conflict.ID != jobID {
				return nil, validation("Slug already exists")
			}
			job.Slug = newSlug
		}
		job.Title = title
	}
	if input.Description != nil {
		job.Description = *input.Description
	}
	if input.Tags != nil {
		job.Tags = *input.Tags
	}
	if input.Openings != nil {
		if *input.Openings <= 0 {
			return nil, validation("Openings must be positive")
		}
		job.Openings = *input.Openings
	}
	if input.Status != nil {
		if *input.Status != models.JobActive && *input.Status != models.JobArchived {
			return nil, validation("Unknown job status")
		}
		job.Status = *input.Status
	}

	job.UpdatedAt = c.store.Now()
	if err := c.store.Jobs().Put(ctx, *job); err != nil {
		return nil, err
	}
	return job, nil
}

// ReorderJob moves the job from its current position to toOrder. The
// fromOrder the caller observed is a hint only; the transaction re-reads the
// collection and trusts the position it finds.
func (c *Client) ReorderJob(ctx context.Context, jobID string, fromOrder, toOrder int) error {
	_ = fromOrder
	if err := c.guardWrite(ctx); err != nil {
		return err
	}
	if err := c.store.ReorderJob(ctx, jobID, toOrder); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound("Job not found")
		}
		return err
	}
	return nil
}

// ToggleArchiveJob flips the job between active and archived.
func (c *Client) ToggleArchiveJob(ctx context.Context, jobID string) (*models.Job, error) {
	if err := c.guardWrite(ctx); err != nil {
		return nil, err
	}
	job, err := c.store.Jobs().Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, notFound("Job not found")
	}
	if job.Status == models.JobArchived {
		job.Status = models.JobActive
	} else {
		job.Status = models.JobArchived
	}
	job.UpdatedAt = c.store.Now()
	if err := c.store.Jobs().Put(ctx, *job); err != nil {
		return nil, err
	}
	return job, nil
}
