package workers

import (
	"sync"
	"time"
)

// IdleTimer calls onFire once when an armed window elapses without being
// re-armed or stopped. The callback runs on its own goroutine, outside the
// timer's lock, so it may call back into Arm or Stop. It receives the id of
// the window that elapsed; an Arm or Stop can still land before the callback
// acts, so callers confirm the window with Current under their own lock.
type IdleTimer struct {
	onFire func(window uint64)
	now    func() time.Time

	mu       sync.Mutex
	timer    *time.Timer
	gen      uint64
	deadline time.Time
}

// NewIdleTimer returns a stopped timer.
func NewIdleTimer(onFire func(window uint64)) *IdleTimer {
	return &IdleTimer{onFire: onFire, now: time.Now}
}

// Arm starts a new window of length d, discarding any previous one. A
// non-positive d stops the timer.
func (t *IdleTimer) Arm(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()
	if d <= 0 {
		return
	}

	gen := t.gen
	t.deadline = t.now().Add(d)
	t.timer = time.AfterFunc(d, func() { t.fire(gen) })
}

// Stop cancels the current window. A callback that has already been
// scheduled for it will observe the new generation and return.
func (t *IdleTimer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()
}

// Deadline returns the instant the current window elapses and whether a
// window is armed.
func (t *IdleTimer) Deadline() (time.Time, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.deadline, t.timer != nil
}

// Current reports whether window is still the latest one, that is, whether
// no Arm or Stop happened after it was armed.
func (t *IdleTimer) Current(window uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return window == t.gen
}

func (t *IdleTimer) stopLocked() {
	t.gen++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.deadline = time.Time{}
}

func (t *IdleTimer) fire(gen uint64) {
	t.mu.Lock()
	if gen != t.gen {
		// re-armed or stopped after this window was scheduled
		t.mu.Unlock()
		return
	}
	t.timer = nil
	t.deadline = time.Time{}
	t.mu.Unlock()

	if t.onFire != nil {
		t.onFire(gen)
	}
}
