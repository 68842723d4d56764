package transport

import (
	"context"
	"errors"
	"testing"
	"time"

	"talentflow/internal/db"
	"talentflow/internal/id"
	"talentflow/internal/models"
	"talentflow/internal/query"
	"talentflow/internal/store"
)

// stubSampler runs with zero latency and fails writes on demand.
type stubSampler struct {
	fail bool
}

func (s *stubSampler) Latency() time.Duration { return 0 }
func (s *stubSampler) FailWrite() bool        { return s.fail }

func newTestClient(t *testing.T) (*Client, *stubSampler) {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("open memory db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	// Each Now() call ticks forward so ordering by timestamp is stable.
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		now = now.Add(time.Second)
		return now
	}
	gen := id.NewGeneratorWithSuffix(func() string { return "t" })
	st := store.NewWithClock(database, gen, clock)

	sampler := &stubSampler{}
	return NewClient(st, sampler), sampler
}

func TestCreateJobSlugLifecycle(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	job, err := client.CreateJob(ctx, CreateJobInput{Title: "  Senior Engineer  "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if job.Title != "Senior Engineer" || job.Slug != "senior-engineer" {
		t.Errorf("job = %q / %q", job.Title, job.Slug)
	}
	if job.Status != models.JobActive || job.Openings != 1 || job.Order != 0 {
		t.Errorf("defaults wrong: %+v", job)
	}

	// A second job with the same slug is rejected and nothing is written.
	_, err = client.CreateJob(ctx, CreateJobInput{Title: "Senior Engineer"})
	if !IsValidation(err) || err.Error() != "Slug already exists" {
		t.Fatalf("duplicate slug err = %v", err)
	}
	if n, _ := client.Store().Jobs().Count(ctx); n != 1 {
		t.Errorf("rejected create wrote a row: count %d", n)
	}

	// Renaming the holder re-slugs it and frees the old slug.
	newTitle := "Staff Engineer"
	renamed, err := client.UpdateJob(ctx, job.ID, UpdateJobInput{Title: &newTitle})
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if renamed.Slug != "staff-engineer" {
		t.Errorf("slug after rename = %q", renamed.Slug)
	}

	again, err := client.CreateJob(ctx, CreateJobInput{Title: "Senior Engineer"})
	if err != nil {
		t.Fatalf("recreate after rename: %v", err)
	}
	if again.Slug != "senior-engineer" || again.Order != 1 {
		t.Errorf("recreated job = %+v", again)
	}
}

func TestCreateJobRequiresTitle(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := client.CreateJob(context.Background(), CreateJobInput{Title: "   "})
	if !IsValidation(err) || err.Error() != "Title is required" {
		t.Fatalf("err = %v", err)
	}
}

func TestInjectedFailureLeavesStoreUntouched(t *testing.T) {
	client, sampler := newTestClient(t)
	ctx := context.Background()

	job, err := client.CreateJob(ctx, CreateJobInput{Title: "Backend Engineer"})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	cand, err := client.CreateCandidate(ctx, CreateCandidateInput{Name: "Ada", Email: "ada@example.com", JobID: job.ID})
	if err != nil {
		t.Fatalf("create candidate: %v", err)
	}

	sampler.fail = true

	if _, err := client.CreateJob(ctx, CreateJobInput{Title: "Another Role"}); !IsTransient(err) {
		t.Fatalf("create under failure = %v", err)
	}
	stage := models.StageScreen
	if _, err := client.UpdateCandidate(ctx, cand.ID, UpdateCandidateInput{Stage: &stage}); !IsTransient(err) {
		t.Fatalf("update under failure = %v", err)
	}
	if err := client.ReorderJob(ctx, job.ID, 0, 5); !IsTransient(err) {
		t.Fatalf("reorder under failure = %v", err)
	}

	// Reads are never failure-injected.
	if _, err := client.ListJobs(ctx, query.JobFilter{}, query.Page{}); err != nil {
		t.Fatalf("read under failure = %v", err)
	}

	sampler.fail = false

	if n, _ := client.Store().Jobs().Count(ctx); n != 1 {
		t.Errorf("failed create left a row: count %d", n)
	}
	fresh, _ := client.GetCandidate(ctx, cand.ID)
	if fresh.Stage != models.StageApplied {
		t.Errorf("failed update changed stage to %s", fresh.Stage)
	}
	if n, _ := client.Store().Timelines().CountByCandidate(ctx, cand.ID); n != 1 {
		t.Errorf("failed update appended a timeline event: %d", n)
	}
}

func TestReorderUnknownJobIsNotFound(t *testing.T) {
	client, _ := newTestClient(t)

	err := client.ReorderJob(context.Background(), "job_missing", 0, 1)
	if !IsNotFound(err) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestCandidateLifecycleTimeline(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	_, err := client.CreateCandidate(ctx, CreateCandidateInput{Name: "Ada"})
	if !IsValidation(err) || err.Error() != "Missing required fields" {
		t.Fatalf("missing fields err = %v", err)
	}

	_, err = client.CreateCandidate(ctx, CreateCandidateInput{Name: "Ada", Email: "a@b.co", JobID: "job_missing"})
	if !IsValidation(err) || err.Error() != "Job does not exist" {
		t.Fatalf("missing job err = %v", err)
	}

	job, err := client.CreateJob(ctx, CreateJobInput{Title: "Platform Engineer"})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	cand, err := client.CreateCandidate(ctx, CreateCandidateInput{Name: "Ada Smith", Email: "Ada@Example.COM", JobID: job.ID})
	if err != nil {
		t.Fatalf("create candidate: %v", err)
	}
	if cand.Email != "ada@example.com" {
		t.Errorf("email not normalized: %q", cand.Email)
	}
	if cand.Stage != models.StageApplied || cand.AvatarColor == "" {
		t.Errorf("defaults wrong: %+v", cand)
	}

	timeline, err := client.CandidateTimeline(ctx, cand.ID)
	if err != nil || len(timeline) != 1 || timeline[0].Note != "Application submitted" {
		t.Fatalf("implicit event missing: %+v, %v", timeline, err)
	}

	// A stage change appends exactly one event.
	stage := models.StageScreen
	if _, err := client.UpdateCandidate(ctx, cand.ID, UpdateCandidateInput{Stage: &stage}); err != nil {
		t.Fatalf("stage move: %v", err)
	}
	timeline, _ = client.CandidateTimeline(ctx, cand.ID)
	if len(timeline) != 2 || timeline[0].Note != "Stage moved to screen" {
		t.Fatalf("stage event wrong: %+v", timeline)
	}

	// A patch without a stage change appends none; same stage counts as
	// unchanged.
	phone := "555-0100"
	if _, err := client.UpdateCandidate(ctx, cand.ID, UpdateCandidateInput{Phone: &phone, Stage: &stage}); err != nil {
		t.Fatalf("patch: %v", err)
	}
	if n, _ := client.Store().Timelines().CountByCandidate(ctx, cand.ID); n != 2 {
		t.Errorf("no-op stage appended an event: %d", n)
	}
}

func TestAddCandidateNote(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	job, _ := client.CreateJob(ctx, CreateJobInput{Title: "Designer"})
	cand, _ := client.CreateCandidate(ctx, CreateCandidateInput{Name: "Grace", Email: "g@x.co", JobID: job.ID})

	if _, err := client.AddCandidateNote(ctx, cand.ID, "", "hello"); !IsValidation(err) {
		t.Fatalf("empty author err = %v", err)
	}
	if _, err := client.AddCandidateNote(ctx, "cand_missing", "hr", "hello"); !IsNotFound(err) {
		t.Fatalf("missing candidate err = %v", err)
	}

	note, err := client.AddCandidateNote(ctx, cand.ID, "hr", "Strong take-home, loop with @sam")
	if err != nil {
		t.Fatalf("add note: %v", err)
	}

	notes, err := client.CandidateNotes(ctx, cand.ID)
	if err != nil || len(notes) != 1 || notes[0].ID != note.ID {
		t.Errorf("notes = %+v, %v", notes, err)
	}
}

func TestAssessmentAutoCreateAndSave(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	job, _ := client.CreateJob(ctx, CreateJobInput{Title: "Data Engineer"})

	// First read materializes an empty assessment.
	a, err := client.GetAssessment(ctx, job.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if a.JobID != job.ID || len(a.Sections) != 0 {
		t.Errorf("auto-created assessment = %+v", a)
	}
	if n, _ := client.Store().Assessments().Count(ctx); n != 1 {
		t.Errorf("auto-create not persisted: %d", n)
	}

	// A malformed question rejects the whole save.
	bad := []models.Section{{ID: "s1", Title: "Bad", Questions: []models.Question{
		{ID: "q1", Prompt: "No settings", Type: models.Numeric},
	}}}
	if _, err := client.SaveAssessment(ctx, job.ID, bad); !IsValidation(err) {
		t.Fatalf("bad save err = %v", err)
	}

	sections := []models.Section{{ID: "s1", Title: "Screen", Questions: []models.Question{
		models.NewChoiceQuestion("q1", "Open to relocation?", models.SingleChoice, true,
			models.ChoiceSettings{Options: []string{"Yes", "No"}}),
	}}}
	saved, err := client.SaveAssessment(ctx, job.ID, sections)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.UpdatedAt.Before(a.UpdatedAt) || len(saved.Sections) != 1 {
		t.Errorf("saved assessment = %+v", saved)
	}
}

func TestSubmitAssessmentValidatesAnswers(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	job, _ := client.CreateJob(ctx, CreateJobInput{Title: "SRE"})
	cand, _ := client.CreateCandidate(ctx, CreateCandidateInput{Name: "Alan", Email: "alan@x.co", JobID: job.ID})

	sections := []models.Section{{ID: "s1", Title: "Screen", Questions: []models.Question{
		models.NewChoiceQuestion("q1", "On call before?", models.SingleChoice, true,
			models.ChoiceSettings{Options: []string{"Yes", "No"}}),
		models.NewTextQuestion("q2", "Worst incident", models.LongText, true,
			models.TextSettings{MaxLength: 500}).WithConditional("q1", "Yes"),
	}}}
	if _, err := client.SaveAssessment(ctx, job.ID, sections); err != nil {
		t.Fatalf("save: %v", err)
	}

	if _, err := client.SubmitAssessment(ctx, job.ID, "", nil); !IsValidation(err) {
		t.Fatalf("missing candidate err = %v", err)
	}
	if _, err := client.SubmitAssessment(ctx, job.ID, "cand_missing", nil); !IsValidation(err) {
		t.Fatalf("unknown candidate err = %v", err)
	}

	// q1=Yes reveals q2, which is required and unanswered.
	_, err := client.SubmitAssessment(ctx, job.ID, cand.ID, models.Answers{"q1": models.TextAnswer("Yes")})
	var terr *Error
	if !errors.As(err, &terr) || terr.Fields["q2"] != "This field is required" {
		t.Fatalf("field errors = %v", err)
	}
	if got, _ := client.ListResponses(ctx, job.ID, ""); len(got) != 0 {
		t.Fatalf("rejected submit was recorded: %+v", got)
	}

	// q1=No hides q2, so the same missing answer now passes.
	resp, err := client.SubmitAssessment(ctx, job.ID, cand.ID, models.Answers{"q1": models.TextAnswer("No")})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if resp.CandidateID != cand.ID {
		t.Errorf("response = %+v", resp)
	}

	got, err := client.ListResponses(ctx, job.ID, cand.ID)
	if err != nil || len(got) != 1 || got[0].ID != resp.ID {
		t.Errorf("responses = %+v, %v", got, err)
	}
}
