package sim

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sailworld/internal/ocean"
	"sailworld/internal/shipphysics"
	"sailworld/internal/simconfig"
)

func testBody() *shipphysics.Body {
	comps := []shipphysics.ComponentSample{
		{LocalPos: mgl32.Vec3{}, Mass: 100, Tag: shipphysics.TagHull, Health: 1},
	}
	return shipphysics.NewBody(uuid.New(), mgl32.Vec3{0, 50, 0}, comps, 0)
}

func TestAdvanceRunsFixedSubstepsMatchingElapsedTime(t *testing.T) {
	clock := &ManualClock{}
	phys := simconfig.Default(1).Physics
	s := NewScheduler(clock, phys)
	field := ocean.NewField(1, ocean.DefaultComponents(4, 1), 1200)
	body := testBody()

	fixedDt := 1.0 / phys.TickRate
	clock.Advance(3 * fixedDt) // exactly 3 substeps worth, under the ceiling
	substeps, alpha := s.Advance([]*shipphysics.Body{body}, field, nil)

	assert.Equal(t, 3, substeps)
	assert.InDelta(t, 0.0, alpha, 1e-6)
	assert.InDelta(t, 3*fixedDt, s.SimTime(), 1e-9)
}

func TestAdvanceCapsSubstepsAtCeilingAndDropsBacklog(t *testing.T) {
	clock := &ManualClock{}
	phys := simconfig.Default(1).Physics
	s := NewScheduler(clock, phys)
	field := ocean.NewField(1, ocean.DefaultComponents(4, 1), 1200)
	body := testBody()

	clock.Advance(1000.0) // absurd stall
	substeps, _ := s.Advance([]*shipphysics.Body{body}, field, nil)

	assert.Equal(t, phys.MaxSubsteps, substeps)
	assert.Equal(t, 0.0, s.accumulator)
}

func TestAdvanceCallsStreamFnExactlyOncePerCall(t *testing.T) {
	clock := &ManualClock{}
	phys := simconfig.Default(1).Physics
	s := NewScheduler(clock, phys)
	field := ocean.NewField(1, ocean.DefaultComponents(4, 1), 1200)

	calls := 0
	clock.Advance(3.0) // would be many substeps
	_, _ = s.Advance(nil, field, func() { calls++ })
	assert.Equal(t, 1, calls)
}

func TestSystemClockIsMonotonicNonNegative(t *testing.T) {
	c := NewSystemClock()
	a := c.Now()
	b := c.Now()
	require.GreaterOrEqual(t, b, a)
}
