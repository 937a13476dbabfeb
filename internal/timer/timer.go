// Package timer implements the per-level countdown.
// The timer never reads a clock: callers feed it whole-second ticks or
// elapsed durations, so a test harness or a simulated clock can drive it
// exactly like the real frame loop does.
package timer

import "time"

// Timer counts a level's time budget down to zero.
type Timer struct {
	remaining int
	total     int
	running   bool
	carry     time.Duration // Elapsed time not yet converted to a tick
}

// New returns a stopped timer.
func New() *Timer {
	return &Timer{}
}

// Start sets the budget and begins ticking. Any previous countdown is discarded.
func (t *Timer) Start(seconds int) {
	t.remaining = seconds
	t.total = seconds
	t.carry = 0
	t.running = seconds > 0
}

// Tick removes one second. It returns true exactly once, on the tick that
// brings the countdown to zero; the timer is stopped afterwards.
func (t *Timer) Tick() bool {
	if !t.running {
		return false
	}

	t.remaining--
	if t.remaining <= 0 {
		t.remaining = 0
		t.running = false
		t.carry = 0
		return true
	}
	return false
}

// Advance converts elapsed wall-clock time into ticks.
// Returns true if the countdown expired during this call.
func (t *Timer) Advance(dt time.Duration) bool {
	if !t.running || dt <= 0 {
		return false
	}

	t.carry += dt
	for t.carry >= time.Second {
		t.carry -= time.Second
		if t.Tick() {
			return true
		}
	}
	return false
}

// Stop cancels ticking. Safe to call on a stopped timer.
func (t *Timer) Stop() {
	t.running = false
	t.carry = 0
}

// Running reports whether the countdown is active.
func (t *Timer) Running() bool {
	return t.running
}

// Remaining returns the whole seconds left.
func (t *Timer) Remaining() int {
	return t.remaining
}

// Total returns the budget passed to the last Start.
func (t *Timer) Total() int {
	return t.total
}

// Fraction returns the share of the budget still left, in [0, 1].
// Sub-second progress is included so a progress bar moves smoothly.
func (t *Timer) Fraction() float64 {
	if t.total <= 0 {
		return 0
	}
	left := time.Duration(t.remaining)*time.Second - t.carry
	if left < 0 {
		left = 0
	}
	return left.Seconds() / float64(t.total)
}
