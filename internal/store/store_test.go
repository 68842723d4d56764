package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"talentflow/internal/db"
	"talentflow/internal/id"
	"talentflow/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("open memory db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	gen := id.NewGeneratorWithSuffix(func() string { return "test" })
	return NewWithClock(database, gen, func() time.Time { return clock })
}

func seedJobs(t *testing.T, st *Store, n int) []models.Job {
	t.Helper()
	ctx := context.Background()
	jobs := make([]models.Job, 0, n)
	for i := 0; i < n; i++ {
		job := models.Job{
			ID:        fmt.Sprintf("job_%d", i),
			Title:     fmt.Sprintf("Role %d", i),
			Slug:      fmt.Sprintf("role-%d", i),
			Status:    models.JobActive,
			Tags:      []string{"go"},
			Order:     i,
			Openings:  1,
			CreatedAt: st.Now(),
			UpdatedAt: st.Now(),
		}
		if err := st.Jobs().Put(ctx, job); err != nil {
			t.Fatalf("put job %d: %v", i, err)
		}
		jobs = append(jobs, job)
	}
	return jobs
}

func TestJobRepoRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	job := models.Job{
		ID:          "job_1",
		Title:       "Senior Engineer",
		Slug:        "senior-engineer",
		Status:      models.JobActive,
		Tags:        []string{"remote", "go"},
		Order:       0,
		Description: "Build things",
		Openings:    2,
		CreatedAt:   st.Now(),
		UpdatedAt:   st.Now(),
	}
	if err := st.Jobs().Put(ctx, job); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := st.Jobs().Get(ctx, "job_1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.Title != job.Title || len(got.Tags) != 2 || got.Tags[1] != "go" {
		t.Errorf("round trip mismatch: %+v", got)
	}

	bySlug, err := st.Jobs().BySlug(ctx, "senior-engineer")
	if err != nil || bySlug == nil || bySlug.ID != "job_1" {
		t.Errorf("BySlug = %+v, %v", bySlug, err)
	}

	missing, err := st.Jobs().Get(ctx, "job_nope")
	if err != nil || missing != nil {
		t.Errorf("missing job should be nil, nil; got %+v, %v", missing, err)
	}

	// Put is an upsert.
	job.Title = "Staff Engineer"
	if err := st.Jobs().Put(ctx, job); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	got, _ = st.Jobs().Get(ctx, "job_1")
	if got.Title != "Staff Engineer" {
		t.Errorf("upsert did not stick: %q", got.Title)
	}
	if n, _ := st.Jobs().Count(ctx); n != 1 {
		t.Errorf("upsert duplicated the row: count %d", n)
	}
}

func TestReorderJobRewritesContiguousRanks(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	seedJobs(t, st, 5)

	if err := st.ReorderJob(ctx, "job_1", 3); err != nil {
		t.Fatalf("reorder: %v", err)
	}

	jobs, err := st.Jobs().All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}

	wantIDs := []string{"job_0", "job_2", "job_3", "job_1", "job_4"}
	for i, want := range wantIDs {
		if jobs[i].ID != want {
			t.Errorf("position %d = %s, want %s", i, jobs[i].ID, want)
		}
		// Ranks are rewritten to the positional index, no gaps.
		if jobs[i].Order != i {
			t.Errorf("job %s order = %d, want %d", jobs[i].ID, jobs[i].Order, i)
		}
	}
}

func TestReorderJobClampsTarget(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	seedJobs(t, st, 3)

	if err := st.ReorderJob(ctx, "job_0", 99); err != nil {
		t.Fatalf("reorder past end: %v", err)
	}
	jobs, _ := st.Jobs().All(ctx)
	if jobs[len(jobs)-1].ID != "job_0" {
		t.Errorf("job_0 not moved to end: %+v", jobs)
	}

	if err := st.ReorderJob(ctx, "job_2", -5); err != nil {
		t.Fatalf("reorder before start: %v", err)
	}
	jobs, _ = st.Jobs().All(ctx)
	if jobs[0].ID != "job_2" {
		t.Errorf("job_2 not moved to front: %+v", jobs)
	}
}

func TestReorderJobUnknownIDLeavesOrderIntact(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	seedJobs(t, st, 3)

	err := st.ReorderJob(ctx, "job_missing", 1)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	jobs, _ := st.Jobs().All(ctx)
	for i, job := range jobs {
		if job.ID != fmt.Sprintf("job_%d", i) || job.Order != i {
			t.Errorf("order disturbed by failed reorder: %+v", jobs)
			break
		}
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := st.WithTx(ctx, func(tx *Tx) error {
		job := models.Job{ID: "job_tx", Title: "T", Slug: "t", Status: models.JobActive,
			Tags: []string{}, Openings: 1, CreatedAt: st.Now(), UpdatedAt: st.Now()}
		if err := tx.Jobs().Put(ctx, job); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}

	if n, _ := st.Jobs().Count(ctx); n != 0 {
		t.Errorf("rolled-back write is visible: count %d", n)
	}
}

func TestTimelineMostRecentFirst(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	base := st.Now()
	events := []models.TimelineEvent{
		{ID: "t1", CandidateID: "cand_1", Stage: models.StageApplied, ChangedAt: base, Note: "Application submitted"},
		{ID: "t2", CandidateID: "cand_1", Stage: models.StageScreen, ChangedAt: base.Add(time.Hour), Note: "Stage moved to screen"},
		{ID: "t3", CandidateID: "cand_2", Stage: models.StageApplied, ChangedAt: base, Note: "Application submitted"},
	}
	for _, ev := range events {
		if err := st.Timelines().Append(ctx, ev); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := st.Timelines().ByCandidate(ctx, "cand_1")
	if err != nil {
		t.Fatalf("by candidate: %v", err)
	}
	if len(got) != 2 || got[0].ID != "t2" || got[1].ID != "t1" {
		t.Errorf("wrong order: %+v", got)
	}

	if n, _ := st.Timelines().CountByCandidate(ctx, "cand_1"); n != 2 {
		t.Errorf("count = %d", n)
	}
}

func TestCandidateCountByStage(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	stages := []models.Stage{models.StageApplied, models.StageApplied, models.StageTech}
	for i, stage := range stages {
		c := models.Candidate{
			ID: fmt.Sprintf("cand_%d", i), JobID: "job_1", Name: "N", Email: "n@example.com",
			Stage: stage, AppliedAt: st.Now(),
		}
		if err := st.Candidates().Put(ctx, c); err != nil {
			t.Fatalf("put: %v", err)
		}
	}

	counts, err := st.Candidates().CountByStage(ctx)
	if err != nil {
		t.Fatalf("count by stage: %v", err)
	}
	if counts[models.StageApplied] != 2 || counts[models.StageTech] != 1 {
		t.Errorf("counts = %v", counts)
	}
}

func TestAssessmentAbsentThenPut(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	got, err := st.Assessments().Get(ctx, "job_1")
	if err != nil || got != nil {
		t.Fatalf("absent assessment: %+v, %v", got, err)
	}

	a := models.Assessment{
		JobID: "job_1",
		Sections: []models.Section{{
			ID:    "s1",
			Title: "Basics",
			Questions: []models.Question{
				models.NewTextQuestion("q1", "Why us?", models.ShortText, true, models.TextSettings{MaxLength: 100}),
			},
		}},
		UpdatedAt: st.Now(),
	}
	if err := st.Assessments().Put(ctx, a); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err = st.Assessments().Get(ctx, "job_1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Sections) != 1 || got.Sections[0].Questions[0].ID != "q1" {
		t.Errorf("sections mismatch: %+v", got.Sections)
	}
	if got.Sections[0].Questions[0].Text == nil {
		t.Error("question settings lost in storage")
	}
}

func TestResponsesByJobAndCandidate(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	base := st.Now()
	responses := []models.Response{
		{ID: "r1", JobID: "job_1", CandidateID: "cand_1", Answers: models.Answers{"q1": models.TextAnswer("Yes")}, SubmittedAt: base},
		{ID: "r2", JobID: "job_1", CandidateID: "cand_2", Answers: models.Answers{}, SubmittedAt: base.Add(time.Minute)},
		{ID: "r3", JobID: "job_2", CandidateID: "cand_1", Answers: models.Answers{}, SubmittedAt: base},
	}
	for _, r := range responses {
		if err := st.Responses().Add(ctx, r); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	got, err := st.Responses().ByJob(ctx, "job_1", "")
	if err != nil {
		t.Fatalf("by job: %v", err)
	}
	if len(got) != 2 || got[0].ID != "r2" {
		t.Errorf("by job wrong: %+v", got)
	}
	if answer := got[1].Answers["q1"]; !answer.Matches("Yes") {
		t.Errorf("answers lost in storage: %+v", got[1].Answers)
	}

	got, err = st.Responses().ByJob(ctx, "job_1", "cand_1")
	if err != nil || len(got) != 1 || got[0].ID != "r1" {
		t.Errorf("candidate filter wrong: %+v, %v", got, err)
	}
}
