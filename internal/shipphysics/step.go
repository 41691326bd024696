package shipphysics

import (
	"github.com/go-gl/mathgl/mgl32"

	"sailworld/internal/gamelog"
	"sailworld/internal/ocean"
	"sailworld/internal/profiling"
	"sailworld/internal/simconfig"
)

var stepLog = gamelog.For("shipphysics")

const gravityY = -9.81

// Engine thermal model constants (spec §4.8's three catastrophic engine
// states: overheat shutdown, boiler overpressure shutdown, out-of-fuel).
// EngineTemp and the overheat/overpressure thresholds are degrees Celsius
// and a 0..1 rated-pressure fraction respectively, matching the literal
// units spec.md §8 scenario 5 tests against ("engine temp set to 145°C").
const (
	ambientEngineTemp    = 20.0
	overheatShutdownTemp = 140.0
	overheatResumeTemp   = 100.0 // hysteresis: must cool below this to resume
	tempDerateStart      = 100.0
	engineThermalRate    = 0.15  // per-second approach toward target temp
	engineTempPerPower   = 150.0 // °C rise above ambient at full power command

	boilerShutdownPressure = 1.0
	boilerResumePressure   = 0.6 // hysteresis: must vent below this to resume
	boilerPressureRate     = 0.05
	boilerPressureTarget   = 1.3 // at full power, overshoots shutdown given enough sustained time
)

// Step advances the body by one fixed tick of dt seconds at simulation
// time t, accumulating forces/torques component-by-component against
// the ocean field, then integrating with semi-implicit Euler (spec
// §4.8/§4.9: "Semi-implicit Euler at fixed 60 Hz, quaternion orientation
// update + renormalize each step").
func (b *Body) Step(dt float32, field *ocean.Field, t float64, phys simconfig.PhysicsConfig) error {
	defer profiling.Track("shipphysics.Step")()
	var force, torque mgl32.Vec3

	b.updateEngineThermal(dt)

	worldRot := b.Orientation

	for _, c := range b.Components {
		if c.destroyed() {
			continue
		}
		worldPos := b.Position.Add(worldRot.Rotate(c.LocalPos))

		f := gravityForce(c)
		f = f.Add(b.buoyancyForce(c, worldPos, field, t))
		f = f.Add(b.dragForce(c, worldPos, field, t))
		f = f.Add(b.windForce(c, worldPos, field, t))
		f = f.Add(b.thrustForce(c, worldRot))

		force = force.Add(f)
		r := worldPos.Sub(b.Position)
		torque = torque.Add(r.Cross(f))
	}

	// Semi-implicit Euler: update velocity first, then integrate position
	// from the updated velocity (spec §4.9).
	linearAccel := force.Mul(b.InvMass)
	b.Velocity = b.Velocity.Add(linearAccel.Mul(dt))
	b.Velocity = b.Velocity.Mul(1.0 / (1.0 + phys.LinearDrag*dt))

	angularAccel := b.worldInvInertia().Mul3x1(torque)
	b.AngularVel = b.AngularVel.Add(angularAccel.Mul(dt))
	b.AngularVel = b.AngularVel.Mul(1.0 / (1.0 + phys.AngularDrag*dt))

	if !isFiniteVec(b.Velocity) || !isFiniteVec(b.AngularVel) {
		stepLog.Warn("non-finite ship state recovered", "ship", b.ID.String())
		b.Velocity = mgl32.Vec3{}
		b.AngularVel = mgl32.Vec3{}
		return ErrNonFiniteState
	}

	if b.MaxSpeed > 0 {
		speed := b.Velocity.Len()
		if speed > b.MaxSpeed {
			b.Velocity = b.Velocity.Normalize().Mul(b.MaxSpeed)
			b.speedViolations++
			if b.speedViolations%60 == 0 {
				stepLog.Warn("ship repeatedly exceeding max speed", "ship", b.ID.String(), "violations", b.speedViolations)
			}
		} else {
			b.speedViolations = 0
		}
	}

	b.Position = b.Position.Add(b.Velocity.Mul(dt))

	angVelQuat := mgl32.Quat{W: 0, V: b.AngularVel}
	dq := angVelQuat.Mul(b.Orientation)
	b.Orientation = mgl32.Quat{
		W: b.Orientation.W + 0.5*dt*dq.W,
		V: b.Orientation.V.Add(dq.V.Mul(0.5 * dt)),
	}
	b.Orientation = b.Orientation.Normalize()

	return nil
}

func gravityForce(c ComponentSample) mgl32.Vec3 {
	return mgl32.Vec3{0, gravityY * c.Mass, 0}
}

// buoyancyForce applies Archimedes' principle against the instantaneous
// water height at the component's (x, z): fully submerged contributes
// full buoyant force, partially submerged scales linearly, airborne
// contributes zero (spec §4.8).
func (b *Body) buoyancyForce(c ComponentSample, worldPos mgl32.Vec3, field *ocean.Field, t float64) mgl32.Vec3 {
	waterY := field.SampleHeight(worldPos.X(), worldPos.Z(), t)
	depth := waterY - worldPos.Y()
	if depth <= 0 {
		return mgl32.Vec3{}
	}
	const componentHalfHeight = 0.5
	submersion := depth / componentHalfHeight
	if submersion > 1 {
		submersion = 1
	}
	const buoyancyPerMass = 1.3 * 9.81 // displaced-volume proxy scaled by component mass
	return mgl32.Vec3{0, buoyancyPerMass * c.Mass * submersion, 0}
}

// dragForce is quadratic hydrodynamic/aerodynamic drag with separate
// submerged/airborne coefficients (spec §4.8), chosen by the component's
// instantaneous submersion against the ocean field rather than its tag
// alone — a capsized hull above the waterline drags like air, and a sail
// dunked underwater drags like a hull.
func (b *Body) dragForce(c ComponentSample, worldPos mgl32.Vec3, field *ocean.Field, t float64) mgl32.Vec3 {
	v := b.Velocity
	speed := v.Len()
	if speed < 1e-6 {
		return mgl32.Vec3{}
	}
	waterY := field.SampleHeight(worldPos.X(), worldPos.Z(), t)
	submerged := worldPos.Y() < waterY

	const submergedCoeff = 0.05
	const airborneCoeff = 0.02
	coeff := float32(airborneCoeff)
	if submerged {
		coeff = submergedCoeff
	}
	return v.Normalize().Mul(-coeff * speed * speed * c.Mass)
}

// windForce applies area x relative-wind x trim-dot-product for sail
// components (spec §4.8); non-sail components contribute nothing.
func (b *Body) windForce(c ComponentSample, worldPos mgl32.Vec3, field *ocean.Field, t float64) mgl32.Vec3 {
	if c.Tag != TagSail || c.Area <= 0 {
		return mgl32.Vec3{}
	}
	wind := field.Wind(worldPos.X(), worldPos.Z(), t)
	wind3 := mgl32.Vec3{wind.X(), 0, wind.Y()}
	relative := wind3.Sub(b.Velocity)

	trim := c.TrimDirection
	if trim.Len() < 1e-6 {
		trim = mgl32.Vec3{1, 0, 0}
	} else {
		trim = trim.Normalize()
	}
	dot := relative.Dot(trim)
	if dot < 0 {
		dot = 0
	}
	const airDensity = 1.2
	return trim.Mul(0.5 * airDensity * c.Area * dot * dot / (relative.Len() + 1e-6))
}

// thrustForce computes engine thrust: power x power command x fuel
// efficiency x crew efficiency x wear derating x temperature derating,
// zeroed when the engine has shut down from overheat/overpressure/
// out-of-fuel (spec §4.8's three distinct catastrophic engine states).
func (b *Body) thrustForce(c ComponentSample, worldRot mgl32.Quat) mgl32.Vec3 {
	if c.Tag != TagEngine || c.EnginePower <= 0 {
		return mgl32.Vec3{}
	}
	if b.EngineFuel <= 0 || b.EngineOverheated || b.BoilerOverpressure {
		return mgl32.Vec3{}
	}
	wearDerate := c.Health
	tempDerate := float32(1.0)
	if b.EngineTemp > tempDerateStart {
		tempDerate = 1.0 - (b.EngineTemp-tempDerateStart)/(overheatShutdownTemp-tempDerateStart)
		if tempDerate < 0 {
			tempDerate = 0
		}
	}
	magnitude := c.EnginePower * b.PowerCommand * c.FuelEfficiency * c.CrewEfficiency * wearDerate * tempDerate
	forward := worldRot.Rotate(mgl32.Vec3{0, 0, 1})
	return forward.Mul(magnitude)
}

// updateEngineThermal advances the ship-level engine temperature and
// boiler pressure toward a target set by the commanded power, latching
// the overheat/overpressure shutdown flags with hysteresis so a borderline
// temperature doesn't chatter the engine on and off every tick (spec
// §4.8: "overheat shutdown, boiler overpressure shutdown" as distinct
// catastrophic states, independent of out-of-fuel).
func (b *Body) updateEngineThermal(dt float32) {
	tempTarget := float32(ambientEngineTemp) + b.PowerCommand*engineTempPerPower
	b.EngineTemp += (tempTarget - b.EngineTemp) * engineThermalRate * dt

	switch {
	case b.EngineTemp >= overheatShutdownTemp:
		b.EngineOverheated = true
	case b.EngineTemp <= overheatResumeTemp:
		b.EngineOverheated = false
	}

	pressureTarget := b.PowerCommand * boilerPressureTarget
	b.BoilerPressure += (pressureTarget - b.BoilerPressure) * boilerPressureRate * dt

	switch {
	case b.BoilerPressure >= boilerShutdownPressure:
		b.BoilerOverpressure = true
	case b.BoilerPressure <= boilerResumePressure:
		b.BoilerOverpressure = false
	}
}
