package transport

import (
	"math/rand"
	"time"

	"talentflow/internal/config"
)

// Sampler decides how long a call waits and whether a write is dropped.
// Injected so tests can force the failure path deterministically.
type Sampler interface {
	Latency() time.Duration
	FailWrite() bool
}

type randomSampler struct {
	rng      *rand.Rand
	min      time.Duration
	span     time.Duration
	failRate float64
}

// NewSampler draws latency uniformly from [LatencyMinMs, LatencyMaxMs) and
// fails writes with probability WriteFailureRate.
func NewSampler(cfg *config.Config) Sampler {
	min := time.Duration(cfg.LatencyMinMs) * time.Millisecond
	max := time.Duration(cfg.LatencyMaxMs) * time.Millisecond
	return &randomSampler{
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		min:      min,
		span:     max - min,
		failRate: cfg.WriteFailureRate,
	}
}

func (s *randomSampler) Latency() time.Duration {
	if s.span <= 0 {
		return s.min
	}
	return s.min + time.Duration(s.rng.Int63n(int64(s.span)))
}

func (s *randomSampler) FailWrite() bool {
	return s.rng.Float64() < s.failRate
}

// instantSampler never waits and never fails, for callers that want the
// client surface without the simulated delays.
type instantSampler struct{}

func (instantSampler) Latency() time.Duration { return 0 }
func (instantSampler) FailWrite() bool        { return false }

func InstantSampler() Sampler {
	return instantSampler{}
}
