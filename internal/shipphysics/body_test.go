package shipphysics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testComponents() []ComponentSample {
	return []ComponentSample{
		{LocalPos: mgl32.Vec3{0, 0, 0}, Mass: 100, Tag: TagHull, Health: 1},
		{LocalPos: mgl32.Vec3{0, 2, -1}, Mass: 20, Tag: TagSail, Health: 1, Area: 30, TrimDirection: mgl32.Vec3{0, 0, 1}},
		{LocalPos: mgl32.Vec3{0, 0, 2}, Mass: 30, Tag: TagEngine, Health: 1, EnginePower: 500, FuelEfficiency: 1, CrewEfficiency: 1},
	}
}

func TestNewBodyComputesPositiveMassAndInertia(t *testing.T) {
	b := NewBody(uuid.New(), mgl32.Vec3{}, testComponents(), 20)
	assert.Greater(t, b.Mass, float32(0))
	assert.Greater(t, b.InvInertia[0], float32(0))
	assert.Greater(t, b.InvInertia[4], float32(0))
	assert.Greater(t, b.InvInertia[8], float32(0))
}

func TestRecomputeMassIgnoresDestroyedComponents(t *testing.T) {
	comps := testComponents()
	comps[1].Health = 0
	b := NewBody(uuid.New(), mgl32.Vec3{}, comps, 20)
	assert.Less(t, b.Mass, float32(150))
}

func TestRecomputeMassWithNoLiveComponentsFallsBackToUnitMass(t *testing.T) {
	comps := testComponents()
	for i := range comps {
		comps[i].Health = 0
	}
	b := NewBody(uuid.New(), mgl32.Vec3{}, comps, 20)
	assert.Equal(t, float32(1), b.Mass)
}

func TestApplyPointImpulseChangesVelocityAndAngularVelocity(t *testing.T) {
	b := NewBody(uuid.New(), mgl32.Vec3{}, testComponents(), 20)
	before := b.Velocity
	b.ApplyPointImpulse(mgl32.Vec3{0, 0, 500}, b.Position.Add(mgl32.Vec3{2, 0, 0}))
	assert.NotEqual(t, before, b.Velocity)
	assert.NotEqual(t, mgl32.Vec3{}, b.AngularVel)
}

func TestWorldInvInertiaIdentityOrientationMatchesLocal(t *testing.T) {
	b := NewBody(uuid.New(), mgl32.Vec3{}, testComponents(), 20)
	got := b.worldInvInertia()
	require.InDelta(t, b.InvInertia[0], got[0], 1e-4)
	require.InDelta(t, b.InvInertia[4], got[4], 1e-4)
	require.InDelta(t, b.InvInertia[8], got[8], 1e-4)
}
