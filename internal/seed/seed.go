// Package seed fills an empty store with plausible jobs, candidates,
// timelines, notes, and assessments. The whole load is one transaction.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"talentflow/internal/models"
	"talentflow/internal/slug"
	"talentflow/internal/store"
)

type Options struct {
	Jobs       int
	Candidates int
}

const day = 24 * time.Hour

// Run seeds the store. It is a no-op when jobs already exist.
func Run(ctx context.Context, st *store.Store, rng *rand.Rand, opts Options) error {
	existing, err := st.Jobs().Count(ctx)
	if err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}
	if opts.Jobs <= 0 {
		return fmt.Errorf("seed needs at least one job")
	}

	now := st.Now()
	stages := models.Stages()

	return st.WithTx(ctx, func(tx *store.Tx) error {
		var jobs []models.Job
		for i := 0; i < opts.Jobs; i++ {
			title := fmt.Sprintf("%s %d", randomItem(rng, jobTitles), i+1)
			status := models.JobActive
			if i%5 == 0 {
				status = models.JobArchived
			}
			job := models.Job{
				ID:          st.NewID("job"),
				Title:       title,
				Slug:        fmt.Sprintf("%s-%d", slug.Make(title), i+1),
				Status:      status,
				Tags:        randomTags(rng),
				Order:       i,
				Description: fmt.Sprintf("We are hiring a %s to join our growing team and solve complex business challenges.", title),
				Openings:    randomInt(rng, 1, 4),
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := tx.Jobs().Put(ctx, job); err != nil {
				return err
			}
			if err := tx.Assessments().Put(ctx, buildAssessment(st, i, job.ID)); err != nil {
				return err
			}
			jobs = append(jobs, job)
		}

		for i := 0; i < opts.Candidates; i++ {
			job := jobs[i%len(jobs)]
			name := randomName(rng)
			stage := stages[rng.Intn(len(stages))]
			appliedAt := now.Add(-time.Duration(randomInt(rng, 1, 45)) * day)

			candidate := models.Candidate{
				ID:          st.NewID("cand"),
				JobID:       job.ID,
				Name:        name,
				Email:       randomEmail(rng, name),
				Stage:       stage,
				AppliedAt:   appliedAt,
				AvatarColor: randomAvatarColor(rng),
				Phone:       randomPhone(rng),
			}
			if err := tx.Candidates().Put(ctx, candidate); err != nil {
				return err
			}

			// One event per stage the candidate has passed through.
			history := stages[:stage.Rank()+1]
			for h, historyStage := range history {
				event := models.TimelineEvent{
					ID:          st.NewID("timeline"),
					CandidateID: candidate.ID,
					Stage:       historyStage,
					ChangedAt:   appliedAt.Add(time.Duration(h) * day),
				}
				if h == len(history)-1 {
					event.Note = fmt.Sprintf("Moved to %s", historyStage)
				}
				if err := tx.Timelines().Append(ctx, event); err != nil {
					return err
				}
			}

			if i%4 == 0 {
				note := models.Note{
					ID:          st.NewID("note"),
					CandidateID: candidate.ID,
					Author:      randomName(rng),
					Content:     fmt.Sprintf("@%s please review portfolio before the next round.", randomItem(rng, mentionAuthors)),
					CreatedAt:   appliedAt.Add(3 * day),
				}
				if err := tx.Notes().Append(ctx, note); err != nil {
					return err
				}
			}
		}

		return nil
	})
}
