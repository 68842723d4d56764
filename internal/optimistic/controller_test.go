package optimistic

import (
	"errors"
	"testing"
)

func TestApplyCommitLifecycle(t *testing.T) {
	c := New([]string{"a", "b"}, nil)

	if c.State() != Idle || c.Busy() {
		t.Fatalf("fresh controller: state %v busy %v", c.State(), c.Busy())
	}

	if err := c.Apply([]string{"b", "a"}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !c.Busy() {
		t.Error("controller should be busy after Apply")
	}
	if got := c.View(); got[0] != "b" {
		t.Errorf("view not tentative: %v", got)
	}

	c.Commit([]string{"b", "a"})
	if c.State() != Committed || c.Busy() {
		t.Errorf("after commit: state %v", c.State())
	}
}

func TestSecondApplyRejectedWhilePending(t *testing.T) {
	c := New(0, nil)

	if err := c.Apply(1); err != nil {
		t.Fatalf("first Apply: %v", err)
	}
	if err := c.Apply(2); !errors.Is(err, ErrPending) {
		t.Fatalf("second Apply = %v, want ErrPending", err)
	}
	if c.View() != 1 {
		t.Errorf("rejected Apply changed the view to %d", c.View())
	}
}

func TestRollbackReplacesViewAndReports(t *testing.T) {
	var reported error
	c := New([]string{"a", "b"}, func(err error) { reported = err })

	if err := c.Apply([]string{"b", "a"}); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	cause := errors.New("Temporary failure")
	// The snapshot is the freshly fetched truth, not an undo of the change.
	c.Rollback([]string{"a", "b", "c"}, cause)

	if c.State() != RolledBack {
		t.Errorf("state = %v", c.State())
	}
	if got := c.View(); len(got) != 3 {
		t.Errorf("view not replaced by snapshot: %v", got)
	}
	if !errors.Is(reported, cause) {
		t.Errorf("onError got %v", reported)
	}
}

func TestResetIgnoredWhilePending(t *testing.T) {
	c := New("settled", nil)

	if err := c.Apply("tentative"); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	// A refetch landing mid-flight must not clobber the tentative view.
	c.Reset("stale refetch")
	if c.View() != "tentative" || c.State() != Pending {
		t.Errorf("Reset clobbered pending state: %q %v", c.View(), c.State())
	}

	c.Commit("committed")
	c.Reset("fresh")
	if c.View() != "fresh" || c.State() != Idle {
		t.Errorf("Reset after settle: %q %v", c.View(), c.State())
	}
}

func TestSettleOutsidePendingIsNoop(t *testing.T) {
	c := New(1, nil)
	c.Commit(9)
	c.Rollback(9, errors.New("late"))
	if c.View() != 1 || c.State() != Idle {
		t.Errorf("settle without Apply mutated state: %d %v", c.View(), c.State())
	}
}

func TestReadGuardDiscardsStaleTickets(t *testing.T) {
	var g ReadGuard

	first := g.Begin()
	second := g.Begin()

	if g.Current(first) {
		t.Error("superseded ticket still current")
	}
	if !g.Current(second) {
		t.Error("latest ticket not current")
	}

	third := g.Begin()
	if g.Current(second) || !g.Current(third) {
		t.Error("guard did not advance")
	}
}
