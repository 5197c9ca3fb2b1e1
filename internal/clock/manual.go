package clock

import "time"

type manualEntry struct {
	due time.Duration
	fn  func()
}

// Manual is a deterministic Clock for tests. Time only moves on Advance.
type Manual struct {
	now     time.Duration
	next    Handle
	pending map[Handle]*manualEntry
}

// NewManual returns a Manual clock at time zero.
func NewManual() *Manual {
	return &Manual{pending: map[Handle]*manualEntry{}}
}

// Schedule registers fn to run once Advance reaches delay from now.
func (m *Manual) Schedule(delay time.Duration, fn func()) Handle {
	if delay < 0 {
		delay = 0
	}
	m.next++
	m.pending[m.next] = &manualEntry{due: m.now + delay, fn: fn}
	return m.next
}

// Cancel drops h. Unknown handles are ignored.
func (m *Manual) Cancel(h Handle) {
	delete(m.pending, h)
}

// Advance moves time forward by d, running every callback that falls due in
// order of due time, then scheduling order. Callbacks scheduled while
// advancing run too when they fall inside the window.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	for {
		h, entry, ok := m.earliest()
		if !ok || entry.due > target {
			break
		}
		delete(m.pending, h)
		m.now = entry.due
		entry.fn()
	}
	m.now = target
}

func (m *Manual) earliest() (Handle, *manualEntry, bool) {
	var (
		best      Handle
		bestEntry *manualEntry
	)
	for h, entry := range m.pending {
		if bestEntry == nil || entry.due < bestEntry.due || (entry.due == bestEntry.due && h < best) {
			best, bestEntry = h, entry
		}
	}
	return best, bestEntry, bestEntry != nil
}

// Now reports the elapsed virtual time.
func (m *Manual) Now() time.Duration { return m.now }

// Pending reports how many callbacks are waiting.
func (m *Manual) Pending() int { return len(m.pending) }
