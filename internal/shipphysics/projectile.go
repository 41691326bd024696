package shipphysics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"sailworld/internal/ocean"
)

// ProjectileKind distinguishes the four ship-launched projectile kinds
// spec.md §3's data model names: "ballistic / chain / grape / explosive".
type ProjectileKind int

const (
	ProjectileCannonball ProjectileKind = iota
	ProjectileChainShot
	ProjectileGrape
	ProjectileExplosive
)

// Projectile is a single ballistic body launched by a ship, stepped
// independently of any Body until it hits a hull or the voxel world.
// There is no teacher or pack precedent for a standalone ballistic
// entity; this is built from spec §4.8's collision text ("AABB-vs-OBB
// for projectiles") using the same gravity/integration shape as Body.Step.
type Projectile struct {
	ID          uuid.UUID
	Pos         mgl32.Vec3
	Vel         mgl32.Vec3
	Kind        ProjectileKind
	TimeAlive   float32
	MaxLifetime float32 // 1.5x ballistic flight time from the spawn velocity (spec §3)
	OwnerShip   uuid.UUID

	// Radius is the projectile's collision sphere for AABB-vs-OBB tests
	// against ship hulls.
	Radius float32

	// bounced tracks whether a chain-shot projectile has already used its
	// one scripted water bounce (Open Question decision: a single fixed-
	// restitution bounce, not a full physical water-impact model).
	bounced bool
}

// NewProjectile spawns a projectile at pos with the given initial
// velocity, owned by ownerShip (excluded from self-collision).
func NewProjectile(ownerShip uuid.UUID, kind ProjectileKind, pos, vel mgl32.Vec3, radius float32) *Projectile {
	return &Projectile{
		ID:          uuid.New(),
		Pos:         pos,
		Vel:         vel,
		Kind:        kind,
		OwnerShip:   ownerShip,
		Radius:      radius,
		MaxLifetime: 1.5 * ballisticFlightTime(pos.Y(), vel.Y()),
	}
}

// ballisticFlightTime solves the standard projectile equation
// 0 = h + vy0*t - 0.5*g*t^2 for the positive root: how long a shot
// launched from height h with vertical velocity vy0 takes to return to
// ground level, the "ballistic flight time" spec §3's max-lifetime
// timeout (1.5x this value) is defined against.
func ballisticFlightTime(h, vy0 float32) float32 {
	if h < 0 {
		h = 0
	}
	const g = -gravityY
	disc := vy0*vy0 + 2*g*h
	if disc < 0 {
		disc = 0
	}
	t := (vy0 + float32(math.Sqrt(float64(disc)))) / g
	if t < 0 {
		t = 0
	}
	return t
}

// chainShotBounceRestitution is the fixed vertical-velocity restitution a
// chain-shot projectile gets on its single scripted water skip, in place
// of a full physical water-impact model (Open Question decision).
const chainShotBounceRestitution = 0.35

// Step advances the projectile by dt seconds under gravity and a mild
// quadratic drag, the same semi-implicit-Euler shape Body.Step uses, then
// applies kind-specific water-impact behavior (spec §3: "water impact
// with kind-specific behavior"):
//   - ProjectileCannonball: no special behavior, sinks under gravity/drag
//     like any other body until max lifetime.
//   - ProjectileChainShot: skips once off the surface (scripted fixed-
//     restitution bounce, Open Question decision) then sinks normally.
//   - ProjectileGrape and ProjectileExplosive: expire immediately on
//     first water contact (grape shot scatters and loses all momentum;
//     an explosive shell detonates), rather than continuing to sink.
//
// Expired reports whether the projectile has exceeded MaxLifetime or hit
// water with one of the immediate-expiry kinds, and should be removed by
// the caller.
func (p *Projectile) Step(dt float32, field *ocean.Field, t float64) (expired bool) {
	accel := mgl32.Vec3{0, gravityY, 0}

	speed := p.Vel.Len()
	if speed > 1e-6 {
		const dragCoeff = 0.002
		drag := p.Vel.Normalize().Mul(-dragCoeff * speed * speed)
		accel = accel.Add(drag)
	}

	p.Vel = p.Vel.Add(accel.Mul(dt))
	p.Pos = p.Pos.Add(p.Vel.Mul(dt))
	p.TimeAlive += dt

	if field != nil {
		waterY := field.SampleHeight(p.Pos.X(), p.Pos.Z(), t)
		submerged := p.Pos.Y() < waterY

		switch p.Kind {
		case ProjectileChainShot:
			if !p.bounced && submerged && p.Vel.Y() < 0 {
				p.Pos = mgl32.Vec3{p.Pos.X(), waterY, p.Pos.Z()}
				p.Vel = mgl32.Vec3{p.Vel.X(), -p.Vel.Y() * chainShotBounceRestitution, p.Vel.Z()}
				p.bounced = true
			}
		case ProjectileGrape, ProjectileExplosive:
			if submerged {
				return true
			}
		}
	}

	return p.TimeAlive >= p.MaxLifetime
}
