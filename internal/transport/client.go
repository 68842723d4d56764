// Package transport is the simulated backend. It exposes one method per
// endpoint of the logical API, backed by the embedded store. Every call is
// delayed by sampled latency; every write independently samples a failure
// before touching the store, so failed calls have no observable side
// effect. Reads never fail through this mechanism. Successful calls map to
// 200/201; failures carry an Error with a 404/422/500 status.
package transport

import (
	"context"
	"time"

	"talentflow/internal/store"
)

type Client struct {
	store   *store.Store
	sampler Sampler
}

func NewClient(st *store.Store, sampler Sampler) *Client {
	return &Client{store: st, sampler: sampler}
}

// Store exposes the backing store for the seed path, which bypasses the
// simulated transport.
func (c *Client) Store() *store.Store {
	return c.store
}

// delay waits the sampled latency, honoring cancellation.
func (c *Client) delay(ctx context.Context) error {
	latency := c.sampler.Latency()
	if latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(latency)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// guardWrite injects latency and then, before any store access, the random
// write failure.
func (c *Client) guardWrite(ctx context.Context) error {
	if err := c.delay(ctx); err != nil {
		return err
	}
	if c.sampler.FailWrite() {
		return transient()
	}
	return nil
}
