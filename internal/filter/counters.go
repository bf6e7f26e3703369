package filter

import "sync"

// CostPerDrop is the estimated cost of one agent invocation, in the
// operator's accounting unit. Every dropped message saves this much.
const CostPerDrop = 2500

// Counters holds process-lifetime admission totals. Not persisted; reset
// only by process restart.
type Counters struct {
	mu        sync.Mutex
	dropped   int64
	allowed   int64
	costSaved int64
}

// CountersSnapshot is a point-in-time copy of the totals.
type CountersSnapshot struct {
	Dropped   int64
	Allowed   int64
	CostSaved int64
}

func (c *Counters) RecordDrop() {
	c.mu.Lock()
	c.dropped++
	c.costSaved += CostPerDrop
	c.mu.Unlock()
}

func (c *Counters) RecordAllow() {
	c.mu.Lock()
	c.allowed++
	c.mu.Unlock()
}

func (c *Counters) Snapshot() CountersSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CountersSnapshot{
		Dropped:   c.dropped,
		Allowed:   c.allowed,
		CostSaved: c.costSaved,
	}
}
