// Package sim is the Tick Scheduler (spec C9): a fixed-step accumulator
// that drives ship physics and the ocean clock at a deterministic rate
// independent of frame rate, plus the injected Clock interface spec §6
// requires of anything that calls wall-clock time ("core does not call
// wall-clock time functions directly").
//
// Grounded on the teacher's cmd/mini-mc/main.go game loop shape (a
// per-frame `dt := now.Sub(lastTime).Seconds()` driving player update,
// async chunk streaming, and periodic eviction), generalized from that
// variable-step loop into a fixed-step accumulator and with `time.Now()`
// replaced by an injected Clock so the scheduler is deterministic in
// tests.
package sim

import "time"

// Clock is the sole source of wall-clock time the scheduler uses. The
// simulation core otherwise never calls time.Now directly (spec §6).
type Clock interface {
	Now() float64 // seconds, monotonic
}

// SystemClock implements Clock against the OS monotonic clock.
type SystemClock struct {
	start time.Time
}

// NewSystemClock returns a Clock zeroed at the moment of construction.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

func (c *SystemClock) Now() float64 {
	return time.Since(c.start).Seconds()
}

// ManualClock is a test double that only advances when told to, letting
// scheduler tests drive an exact number of fixed steps deterministically.
type ManualClock struct {
	t float64
}

func (c *ManualClock) Now() float64 { return c.t }

// Advance moves the clock forward by seconds.
func (c *ManualClock) Advance(seconds float64) { c.t += seconds }
