// Package store holds the embedded entity tables behind the simulated
// backend. Repos read snapshots and upsert single records; multi-record
// writes (seed bulk load, reorder) go through WithTx so they land
// all-or-nothing. The store does not enforce cross-table references;
// callers validate them before writing.
package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"talentflow/internal/id"
)

// ErrNotFound is returned when an id does not resolve to a record.
var ErrNotFound = errors.New("record not found")

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db  *sql.DB
	ids *id.Generator
	now func() time.Time
}

func New(db *sql.DB, ids *id.Generator) *Store {
	return &Store{db: db, ids: ids, now: func() time.Time { return time.Now().UTC() }}
}

// NewWithClock injects the clock, for tests.
func NewWithClock(db *sql.DB, ids *id.Generator, now func() time.Time) *Store {
	return &Store{db: db, ids: ids, now: now}
}

// NewID mints an identifier with the injected generator.
func (s *Store) NewID(prefix string) string {
	return s.ids.New(prefix)
}

func (s *Store) Now() time.Time {
	return s.now()
}

func (s *Store) Jobs() *JobRepo {
	return &JobRepo{q: s.db, now: s.now}
}

func (s *Store) Candidates() *CandidateRepo {
	return &CandidateRepo{q: s.db}
}

func (s *Store) Timelines() *TimelineRepo {
	return &TimelineRepo{q: s.db}
}

func (s *Store) Notes() *NoteRepo {
	return &NoteRepo{q: s.db}
}

func (s *Store) Assessments() *AssessmentRepo {
	return &AssessmentRepo{q: s.db}
}

func (s *Store) Responses() *ResponseRepo {
	return &ResponseRepo{q: s.db}
}

// Tx exposes the same repos bound to one transaction.
type Tx struct {
	store *Store
	q     querier
}

func (t *Tx) Jobs() *JobRepo             { return &JobRepo{q: t.q, now: t.store.now} }
func (t *Tx) Candidates() *CandidateRepo { return &CandidateRepo{q: t.q} }
func (t *Tx) Timelines() *TimelineRepo   { return &TimelineRepo{q: t.q} }
func (t *Tx) Notes() *NoteRepo           { return &NoteRepo{q: t.q} }
func (t *Tx) Assessments() *AssessmentRepo {
	return &AssessmentRepo{q: t.q}
}
func (t *Tx) Responses() *ResponseRepo { return &ResponseRepo{q: t.q} }

// WithTx runs fn inside a transaction. Every write inside fn becomes
// visible together, or not at all.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Tx) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(&Tx{store: s, q: sqlTx}); err != nil {
		_ = sqlTx.Rollback()
		return err
	}
	return sqlTx.Commit()
}
