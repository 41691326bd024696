package shipphysics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sailworld/internal/ocean"
)

func TestProjectileStepFallsUnderGravity(t *testing.T) {
	p := NewProjectile(uuid.New(), ProjectileCannonball, mgl32.Vec3{0, 50, 0}, mgl32.Vec3{10, 0, 0}, 0.3)
	for i := 0; i < 60; i++ {
		p.Step(1.0/60.0, nil, 0)
	}
	assert.Less(t, p.Vel.Y(), float32(0))
	assert.Less(t, p.Pos.Y(), float32(50))
}

func TestProjectileExpiresAfterMaxLifetime(t *testing.T) {
	p := NewProjectile(uuid.New(), ProjectileCannonball, mgl32.Vec3{}, mgl32.Vec3{1, 20, 0}, 0.3)
	wantFlightTime := float32(2 * 20.0 / 9.81)
	require.InDelta(t, 1.5*wantFlightTime, p.MaxLifetime, 0.05)

	expired := false
	for i := 0; i < 2000 && !expired; i++ {
		expired = p.Step(1.0/60.0, nil, 0)
	}
	assert.True(t, expired)
	assert.InDelta(t, p.MaxLifetime, p.TimeAlive, 1.0/60.0+1e-3)
}

func TestProjectileMaxLifetimeScalesWithInitialVelocity(t *testing.T) {
	slow := NewProjectile(uuid.New(), ProjectileCannonball, mgl32.Vec3{}, mgl32.Vec3{1, 5, 0}, 0.3)
	fast := NewProjectile(uuid.New(), ProjectileCannonball, mgl32.Vec3{}, mgl32.Vec3{1, 30, 0}, 0.3)
	assert.Greater(t, fast.MaxLifetime, slow.MaxLifetime)
}

func TestGrapeShotExpiresImmediatelyOnWaterContact(t *testing.T) {
	field := ocean.NewField(1, nil, 1200)
	p := NewProjectile(uuid.New(), ProjectileGrape, mgl32.Vec3{0, 0.2, 0}, mgl32.Vec3{5, -2, 0}, 0.2)

	expired := false
	for i := 0; i < 30 && !expired; i++ {
		expired = p.Step(1.0/60.0, field, float64(i)/60.0)
	}
	assert.True(t, expired)
}

func TestExplosiveShotExpiresImmediatelyOnWaterContact(t *testing.T) {
	field := ocean.NewField(1, nil, 1200)
	p := NewProjectile(uuid.New(), ProjectileExplosive, mgl32.Vec3{0, 0.2, 0}, mgl32.Vec3{5, -2, 0}, 0.2)

	expired := false
	for i := 0; i < 30 && !expired; i++ {
		expired = p.Step(1.0/60.0, field, float64(i)/60.0)
	}
	assert.True(t, expired)
}

func TestChainShotBouncesOnceOffWater(t *testing.T) {
	field := ocean.NewField(1, nil, 1200)
	p := NewProjectile(uuid.New(), ProjectileChainShot, mgl32.Vec3{0, 0.05, 0}, mgl32.Vec3{5, -1, 0}, 0.3)

	for i := 0; i < 5; i++ {
		p.Step(1.0/60.0, field, float64(i)/60.0)
	}
	require.True(t, p.bounced)
	assert.Greater(t, p.Vel.Y(), float32(0))

	// A second downward crossing of the surface must not bounce again.
	p.Vel = mgl32.Vec3{p.Vel.X(), -1, p.Vel.Z()}
	for i := 0; i < 60; i++ {
		p.Step(1.0/60.0, field, float64(5+i)/60.0)
	}
	assert.True(t, p.bounced)
}
