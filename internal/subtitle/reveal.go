package subtitle

import (
	"time"

	"github.com/csheth/textcraft/internal/clock"
)

// Timing controls a reveal run. The first character appears after
// Delay+CharInterval, each further one CharInterval after the previous, and
// OnComplete fires CompletionPause after the last.
type Timing struct {
	Delay           time.Duration
	CharInterval    time.Duration
	CompletionPause time.Duration
}

// Reveal types a string onto a Surface one rune per tick.
type Reveal struct {
	clock   clock.Clock
	surface Surface

	// OnComplete runs once per finished run, after the completion pause.
	OnComplete func()

	text    []rune
	cursor  int
	timing  Timing
	run     uint64
	pending map[clock.Handle]struct{}
}

// NewReveal returns an idle Reveal.
func NewReveal(c clock.Clock, surface Surface) *Reveal {
	return &Reveal{
		clock:   c,
		surface: surface,
		pending: map[clock.Handle]struct{}{},
	}
}

// Stop cancels every outstanding timer, rewinds the cursor and clears the
// surface text. Safe to call while idle.
func (r *Reveal) Stop() {
	for h := range r.pending {
		r.clock.Cancel(h)
	}
	r.pending = map[clock.Handle]struct{}{}
	r.run++
	r.cursor = 0
	r.text = nil
	r.surface.ClearRevealedText()
}

// Start supersedes any previous run and begins revealing text.
func (r *Reveal) Start(text string, timing Timing) {
	r.Stop()
	r.text = []rune(text)
	r.timing = timing
	if len(r.text) == 0 {
		r.schedule(timing.Delay+timing.CompletionPause, r.complete)
		return
	}
	r.schedule(timing.Delay+timing.CharInterval, r.step)
}

func (r *Reveal) schedule(delay time.Duration, fn func()) {
	run := r.run
	var h clock.Handle
	h = r.clock.Schedule(delay, func() {
		delete(r.pending, h)
		// Handles from a stopped run are canceled; the run check covers clocks
		// that deliver a callback anyway.
		if run != r.run {
			return
		}
		fn()
	})
	r.pending[h] = struct{}{}
}

func (r *Reveal) step() {
	if r.cursor >= len(r.text) {
		return
	}
	r.cursor++
	r.surface.SetRevealedText(string(r.text[:r.cursor]))
	if r.cursor < len(r.text) {
		r.schedule(r.timing.CharInterval, r.step)
		return
	}
	r.schedule(r.timing.CompletionPause, r.complete)
}

func (r *Reveal) complete() {
	if r.OnComplete != nil {
		r.OnComplete()
	}
}

// Cursor is the number of runes revealed so far in the current run.
func (r *Reveal) Cursor() int { return r.cursor }

// Pending is the number of timers the current run still holds.
func (r *Reveal) Pending() int { return len(r.pending) }

// Running reports whether a run still has work scheduled.
func (r *Reveal) Running() bool { return len(r.pending) > 0 }
