// Package clock provides the cancellable timer source that drives the
// subtitle animations.
//
// Callbacks never run on a timer goroutine. Loop hands fired handles to the
// owner of the event loop (the bubbletea update loop), which executes them
// through Fire; Manual runs them synchronously from Advance. Either way every
// callback runs on the goroutine that owns the scheduled state.
package clock

import (
	"sync"
	"time"
)

// Handle identifies a scheduled callback. The zero Handle is never issued.
type Handle uint64

// Clock schedules callbacks after a delay.
type Clock interface {
	Schedule(delay time.Duration, fn func()) Handle
	Cancel(h Handle)
}

type loopEntry struct {
	timer *time.Timer
	fn    func()
}

// Loop is a Clock backed by time.AfterFunc. Timers only publish their handle
// on Fired; the consumer calls Fire to run the callback, which is skipped when
// the handle was canceled in the meantime.
type Loop struct {
	mu      sync.Mutex
	next    Handle
	pending map[Handle]*loopEntry

	fired     chan Handle
	done      chan struct{}
	closeOnce sync.Once
}

// NewLoop returns a running Loop. Call Close to release its timers.
func NewLoop() *Loop {
	return &Loop{
		pending: map[Handle]*loopEntry{},
		fired:   make(chan Handle, 64),
		done:    make(chan struct{}),
	}
}

// Schedule arms a timer that publishes its handle after delay.
func (l *Loop) Schedule(delay time.Duration, fn func()) Handle {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.next++
	h := l.next
	entry := &loopEntry{fn: fn}
	l.pending[h] = entry
	entry.timer = time.AfterFunc(delay, func() {
		select {
		case l.fired <- h:
		case <-l.done:
		}
	})
	return h
}

// Cancel forgets h. A handle already sitting in Fired is dropped by Fire.
func (l *Loop) Cancel(h Handle) {
	l.mu.Lock()
	entry, ok := l.pending[h]
	delete(l.pending, h)
	l.mu.Unlock()
	if ok {
		entry.timer.Stop()
	}
}

// Fired delivers handles whose delay elapsed.
func (l *Loop) Fired() <-chan Handle {
	return l.fired
}

// Done is closed by Close.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Fire runs the callback registered for h and reports whether it ran.
func (l *Loop) Fire(h Handle) bool {
	l.mu.Lock()
	entry, ok := l.pending[h]
	delete(l.pending, h)
	l.mu.Unlock()
	if !ok {
		return false
	}
	entry.fn()
	return true
}

// Pending reports how many callbacks are scheduled and not yet run or canceled.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

// Close stops every timer and releases goroutines blocked on Fired.
func (l *Loop) Close() {
	l.closeOnce.Do(func() {
		close(l.done)
		l.mu.Lock()
		for h, entry := range l.pending {
			entry.timer.Stop()
			delete(l.pending, h)
		}
		l.mu.Unlock()
	})
}
