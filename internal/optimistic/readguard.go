package optimistic

// ReadGuard discards stale query results. Each fetch takes a ticket from
// Begin; when the result arrives, Current tells whether it is still the
// newest fetch for this key. Superseded results must be dropped, never
// applied to view state.
type ReadGuard struct {
	seq uint64
}

// Begin registers a new fetch and returns its ticket.
func (g *ReadGuard) Begin() uint64 {
	g.seq++
	return g.seq
}

// Current reports whether the ticket still names the latest fetch.
func (g *ReadGuard) Current(ticket uint64) bool {
	return ticket == g.seq
}
