package sim

import (
	"log/slog"

	"sailworld/internal/gamelog"
	"sailworld/internal/ocean"
	"sailworld/internal/shipphysics"
	"sailworld/internal/simconfig"
)

var schedLog = gamelog.For("sim")

// Scheduler drives ship physics and the ocean clock at a fixed tick rate
// regardless of how often Advance is called, accumulating leftover frame
// time and bounding the number of substeps per call so a long stall (a GC
// pause, a debugger breakpoint) cannot spiral into an ever-growing backlog
// of physics work (spec §4.9's "substep ceiling").
type Scheduler struct {
	clock   Clock
	phys    simconfig.PhysicsConfig
	fixedDt float64

	accumulator   float64
	simTime       float64
	lastClockTime float64

	log *slog.Logger
}

// NewScheduler builds a Scheduler reading its tick rate and substep
// ceiling from phys. clock is the sole time source (spec §6's injected
// Clock); the scheduler never calls time.Now itself. The clock is sampled
// once here so that any time elapsed between construction and the first
// Advance call is accounted for rather than silently dropped.
func NewScheduler(clock Clock, phys simconfig.PhysicsConfig) *Scheduler {
	return &Scheduler{
		clock:         clock,
		phys:          phys,
		fixedDt:       1.0 / phys.TickRate,
		lastClockTime: clock.Now(),
		log:           schedLog,
	}
}

// SimTime returns the scheduler's internal simulation clock, the same
// time base passed to ocean.Field sampling and Body.Step.
func (s *Scheduler) SimTime() float64 { return s.simTime }

// Advance runs zero or more fixed physics substeps to catch the
// simulation up to the clock's current time, stepping every body in
// bodies against field at each substep. streamFn, if non-nil, is invoked
// exactly once per Advance call (not once per substep) — spec §4.9's
// "streaming progress once per frame not per physics step". It returns
// the number of substeps actually run and an interpolation alpha in
// [0, 1) for the caller to blend rendered state between the last two
// physics states.
func (s *Scheduler) Advance(bodies []*shipphysics.Body, field *ocean.Field, streamFn func()) (substeps int, alpha float64) {
	now := s.clock.Now()
	frameDt := now - s.lastClockTime
	s.lastClockTime = now
	if frameDt < 0 {
		frameDt = 0
	}
	s.accumulator += frameDt

	for s.accumulator >= s.fixedDt && substeps < s.phys.MaxSubsteps {
		for _, b := range bodies {
			if b == nil {
				continue
			}
			if err := b.Step(float32(s.fixedDt), field, s.simTime, s.phys); err != nil {
				s.log.Warn("ship step recovered from instability", "ship", b.ID.String(), "error", err)
			}
		}
		s.simTime += s.fixedDt
		s.accumulator -= s.fixedDt
		substeps++
	}

	if substeps == s.phys.MaxSubsteps && s.accumulator >= s.fixedDt {
		s.log.Warn("tick scheduler hit substep ceiling, dropping backlog", "dropped_seconds", s.accumulator)
		s.accumulator = 0
	}

	if streamFn != nil {
		streamFn()
	}

	return substeps, s.accumulator / s.fixedDt
}
