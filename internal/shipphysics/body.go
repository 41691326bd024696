// Package shipphysics is the Ship Body (spec C8): per-ship rigid body
// dynamics driven by component-level force accumulation (buoyancy, drag,
// wind, thrust) evaluated against the Ocean Field, integrated with
// semi-implicit Euler at a fixed tick rate.
//
// Grounded on Gekko3D-gekko/physics.go's RigidBodyComponent: diagonal
// inertia tensor as mgl32.Mat3 with a precomputed inverse, impulses
// transformed into world space via R*InvInertia*R^T. That file is a
// generic ECS rigid body with an arbitrary collider; here it is adapted
// into a single non-ECS Body per ship whose per-tick force accumulation
// is the component-by-component sum spec §4.8 describes, since there is
// no teacher or pack precedent for sailing-specific forces.
package shipphysics

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"sailworld/internal/ocean"
)

// ComponentTag classifies a ship component for force evaluation.
type ComponentTag int

const (
	TagHull ComponentTag = iota
	TagSail
	TagEngine
	TagCannonMount
)

// ComponentSample is one physical component attached to a ship's hull,
// sampled once per tick for buoyancy/drag/wind/thrust contribution.
type ComponentSample struct {
	LocalPos mgl32.Vec3
	Mass     float32
	Tag      ComponentTag
	Health   float32 // 0 = destroyed, contributes zero force

	// Tag-specific parameters.
	Area          float32 // sail area / hull cross-section, m^2
	TrimDirection mgl32.Vec3
	EnginePower   float32
	FuelEfficiency float32
	CrewEfficiency float32
}

// destroyed reports whether a component contributes zero force (spec
// §4.8: "destroyed component contributes zero force, never NaN").
func (c ComponentSample) destroyed() bool { return c.Health <= 0 }

// ErrNonFiniteState is returned (and logged) when a tick produces a NaN
// or Inf velocity; the Body recovers by zeroing velocity and keeping
// position, per spec §4.8.
var ErrNonFiniteState = errors.New("shipphysics: non-finite state recovered")

// Body is a single ship's rigid body state plus its attached components.
// Grounded on RigidBodyComponent, generalized from a generic collider
// body to a ship whose diagonal inertia comes from its component layout.
type Body struct {
	ID uuid.UUID

	Position    mgl32.Vec3
	Orientation mgl32.Quat
	Velocity    mgl32.Vec3
	AngularVel  mgl32.Vec3

	Mass       float32
	InvMass    float32
	Inertia    mgl32.Mat3
	InvInertia mgl32.Mat3

	Components []ComponentSample

	// HullHalfExtents is the ship's collision OBB half-size in body-local
	// space, recomputed from the component layout each time mass is
	// recomputed. Used for projectile AABB-vs-OBB hit tests.
	HullHalfExtents mgl32.Vec3

	MaxSpeed           float32
	speedViolations    int
	EngineFuel         float32
	EngineTemp         float32 // degrees Celsius
	EngineOverheated   bool    // latched by updateEngineThermal, spec §4.8
	BoilerPressure     float32 // 0..1 fraction of rated max, spec §4.8
	BoilerOverpressure bool    // latched by updateEngineThermal
	PowerCommand       float32 // 0..1 throttle set by the Physics Client
}

// NewBody builds a Body from its components, computing total mass and a
// diagonal inertia tensor approximation from each component's offset
// from the center of mass (parallel-axis-theorem style, the same shape
// Gekko3D's collider-derived inertia takes, generalized to a component
// list instead of a single box/sphere).
func NewBody(id uuid.UUID, position mgl32.Vec3, components []ComponentSample, maxSpeed float32) *Body {
	b := &Body{
		ID:           id,
		Position:     position,
		Orientation:  mgl32.QuatIdent(),
		Components:   components,
		MaxSpeed:     maxSpeed,
		EngineFuel:   1.0,
		EngineTemp:   ambientEngineTemp,
		PowerCommand: 1.0,
	}
	b.recomputeMass()
	return b
}

func (b *Body) recomputeMass() {
	var totalMass float32
	var com mgl32.Vec3
	for _, c := range b.Components {
		if c.destroyed() {
			continue
		}
		totalMass += c.Mass
		com = com.Add(c.LocalPos.Mul(c.Mass))
	}
	if totalMass <= 0 {
		totalMass = 1
	} else {
		com = com.Mul(1.0 / totalMass)
	}
	b.Mass = totalMass
	b.InvMass = 1.0 / totalMass

	var ixx, iyy, izz float32
	for _, c := range b.Components {
		if c.destroyed() {
			continue
		}
		r := c.LocalPos.Sub(com)
		ixx += c.Mass * (r.Y()*r.Y() + r.Z()*r.Z())
		iyy += c.Mass * (r.X()*r.X() + r.Z()*r.Z())
		izz += c.Mass * (r.X()*r.X() + r.Y()*r.Y())
	}
	const floor = 1.0
	if ixx < floor {
		ixx = floor
	}
	if iyy < floor {
		iyy = floor
	}
	if izz < floor {
		izz = floor
	}
	b.Inertia = mgl32.Mat3{ixx, 0, 0, 0, iyy, 0, 0, 0, izz}
	b.InvInertia = mgl32.Mat3{1 / ixx, 0, 0, 0, 1 / iyy, 0, 0, 0, 1 / izz}

	b.HullHalfExtents = hullHalfExtents(b.Components)
}

// hullHalfExtents bounds every live component's local position with a
// small margin, giving the collision OBB used by ProjectileHitsHull.
func hullHalfExtents(components []ComponentSample) mgl32.Vec3 {
	const margin = 1.0
	var ex, ey, ez float32 = margin, margin, margin
	for _, c := range components {
		if c.destroyed() {
			continue
		}
		if a := abs32(c.LocalPos.X()) + margin; a > ex {
			ex = a
		}
		if a := abs32(c.LocalPos.Y()) + margin; a > ey {
			ey = a
		}
		if a := abs32(c.LocalPos.Z()) + margin; a > ez {
			ez = a
		}
	}
	return mgl32.Vec3{ex, ey, ez}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// quatToMat3 extracts the rotation matrix from a quaternion's Mat4,
// ported verbatim from Gekko3D-gekko/physics.go's QuatToMat3 helper.
func quatToMat3(q mgl32.Quat) mgl32.Mat3 {
	m4 := q.Mat4()
	return mgl32.Mat3{
		m4[0], m4[1], m4[2],
		m4[4], m4[5], m4[6],
		m4[8], m4[9], m4[10],
	}
}

// worldInvInertia transforms the body-local inverse inertia tensor into
// world space: R * InvInertia * R^T, identical to ApplyImpulse's
// transform in Gekko3D-gekko/physics.go.
func (b *Body) worldInvInertia() mgl32.Mat3 {
	r := quatToMat3(b.Orientation)
	return r.Mul3(b.InvInertia).Mul3(r.Transpose())
}

// ApplyPointImpulse applies an external impulse at a world-space point
// (spec §4.8's "external point impulses"), e.g. a cannonball strike.
func (b *Body) ApplyPointImpulse(impulse mgl32.Vec3, worldPoint mgl32.Vec3) {
	b.Velocity = b.Velocity.Add(impulse.Mul(b.InvMass))
	r := worldPoint.Sub(b.Position)
	torque := r.Cross(impulse)
	b.AngularVel = b.AngularVel.Add(b.worldInvInertia().Mul3x1(torque))
}

func isFiniteVec(v mgl32.Vec3) bool {
	for _, c := range v {
		f := float64(c)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
