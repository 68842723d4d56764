// Package id issues opaque record identifiers. A Generator is passed
// explicitly to the store and seed paths instead of living as process-wide
// state.
package id

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

type Generator struct {
	counter atomic.Uint64
	suffix  func() string
}

func NewGenerator() *Generator {
	return &Generator{suffix: randomSuffix}
}

// NewGeneratorWithSuffix injects the random part, for deterministic tests.
func NewGeneratorWithSuffix(suffix func() string) *Generator {
	return &Generator{suffix: suffix}
}

// New returns an id of the form prefix_suffixN where N is a monotonic
// counter, so ids stay unique even if two suffixes collide.
func (g *Generator) New(prefix string) string {
	n := g.counter.Add(1)
	return fmt.Sprintf("%s_%s%d", prefix, g.suffix(), n)
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
}
