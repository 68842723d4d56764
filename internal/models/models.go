package models

import "time"

type JobStatus string

const (
	JobActive   JobStatus = "active"
	JobArchived JobStatus = "archived"
)

type Job struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Status      JobStatus `json:"status"`
	Tags        []string  `json:"tags"`
	Order       int       `json:"order"`
	Description string    `json:"description"`
	Openings    int       `json:"openings"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Stage string

const (
	StageApplied  Stage = "applied"
	StageScreen   Stage = "screen"
	StageTech     Stage = "tech"
	StageOffer    Stage = "offer"
	StageHired    Stage = "hired"
	StageRejected Stage = "rejected"
)

var stageOrder = []Stage{StageApplied, StageScreen, StageTech, StageOffer, StageHired, StageRejected}

// Stages returns the pipeline stages in board order.
func Stages() []Stage {
	out := make([]Stage, len(stageOrder))
	copy(out, stageOrder)
	return out
}

// Rank returns the position of the stage in the pipeline, or -1 for unknown values.
func (s Stage) Rank() int {
	for i, stage := range stageOrder {
		if stage == s {
			return i
		}
	}
	return -1
}

func (s Stage) Valid() bool {
	return s.Rank() >= 0
}

func (s Stage) Label() string {
	switch s {
	case StageApplied:
		return "Applied"
	case StageScreen:
		return "Screen"
	case StageTech:
		return "Technical"
	case StageOffer:
		return "Offer"
	case StageHired:
		return "Hired"
	case StageRejected:
		return "Rejected"
	}
	return string(s)
}

type Candidate struct {
	ID          string    `json:"id"`
	JobID       string    `json:"jobId"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Stage       Stage     `json:"stage"`
	AppliedAt   time.Time `json:"appliedAt"`
	AvatarColor string    `json:"avatarColor"`
	Phone       string    `json:"phone"`
}

// TimelineEvent is an append-only record of a candidate entering a stage.
type TimelineEvent struct {
	ID          string    `json:"id"`
	CandidateID string    `json:"candidateId"`
	Stage       Stage     `json:"stage"`
	ChangedAt   time.Time `json:"changedAt"`
	Note        string    `json:"note,omitempty"`
}

type Note struct {
	ID          string    `json:"id"`
	CandidateID string    `json:"candidateId"`
	Author      string    `json:"author"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Assessment is the per-job question tree, one per job.
type Assessment struct {
	JobID     string    `json:"jobId"`
	Sections  []Section `json:"sections"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Section struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Questions   []Question `json:"questions"`
}

// Response is an immutable submitted answer set for a job's assessment.
type Response struct {
	ID          string    `json:"id"`
	JobID       string    `json:"jobId"`
	CandidateID string    `json:"candidateId"`
	Answers     Answers   `json:"answers"`
	SubmittedAt time.Time `json:"submittedAt"`
}
