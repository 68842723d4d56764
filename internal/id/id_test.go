package id

import (
	"strings"
	"sync"
	"testing"
)

func TestNewFormat(t *testing.T) {
	gen := NewGeneratorWithSuffix(func() string { return "abc123" })

	if got := gen.New("job"); got != "job_abc1231" {
		t.Errorf("New(job) = %q, want job_abc1231", got)
	}
	if got := gen.New("cand"); got != "cand_abc1232" {
		t.Errorf("second New(cand) = %q, want cand_abc1232", got)
	}
}

func TestNewUniqueUnderContention(t *testing.T) {
	gen := NewGenerator()

	const workers = 8
	const perWorker = 200

	var mu sync.Mutex
	seen := make(map[string]bool, workers*perWorker)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				id := gen.New("x")
				mu.Lock()
				if seen[id] {
					t.Errorf("duplicate id %q", id)
				}
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
}

func TestDefaultSuffixShape(t *testing.T) {
	gen := NewGenerator()
	id := gen.New("note")

	if !strings.HasPrefix(id, "note_") {
		t.Fatalf("id %q missing prefix", id)
	}
	rest := strings.TrimPrefix(id, "note_")
	if len(rest) < 7 {
		t.Errorf("id %q has short body %q", id, rest)
	}
	if strings.Contains(rest, "-") {
		t.Errorf("id %q contains hyphen", id)
	}
}
