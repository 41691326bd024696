// Package simconfig is the simulation's configuration surface (spec §6):
// world generation, streaming, physics and ocean tunables, validated
// once at startup rather than mutated through package-global setters.
//
// The teacher's internal/config exposes render/world-gen settings as
// package-level mutexed singletons (config.go, world_gen.go); this
// package keeps that field-validation style but holds settings on a
// plain Config value threaded through explicitly, since a simulation
// core embedded in a larger host should not own hidden global state.
package simconfig

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped with a field-specific message by Validate.
var ErrInvalidConfig = errors.New("simconfig: invalid configuration")

// WorldConfig controls terrain generation (spec §6 world.*).
type WorldConfig struct {
	Seed        int64
	ChunkSizeX  int
	ChunkSizeZ  int
	ChunkHeight int
	SeaLevel    int
}

// StreamingConfig controls the Streaming Engine (spec §6 streaming.*).
type StreamingConfig struct {
	LoadRadius int32 // chunks
	KeepRadius int32 // chunks, must be >= LoadRadius
	MaxQueued  int
}

// PhysicsConfig controls the fixed-step scheduler and ship dynamics
// (spec §6 physics.*).
type PhysicsConfig struct {
	TickRate        float64 // Hz
	MaxSubsteps     int
	LinearDrag      float32
	AngularDrag     float32
	GravityY        float32
}

// OceanConfig controls the Ocean Field (spec §6 ocean.*).
type OceanConfig struct {
	WaveComponentCount int // 1-8, enforced by Validate
	TidalPeriodSeconds float64
}

// Config is the full simulation configuration surface.
type Config struct {
	World     WorldConfig
	Streaming StreamingConfig
	Physics   PhysicsConfig
	Ocean     OceanConfig
}

// Default returns a Config with defaults adapted from the teacher's
// globalRenderSettings/globalWorldGenSettings (sea level 63, render/load
// radius 25) to this simulation's domain: sea level 64, matching
// voxelworld.DefaultGeneratorParams, and load radius 8.
func Default(seed int64) Config {
	return Config{
		World: WorldConfig{
			Seed:        seed,
			ChunkSizeX:  16,
			ChunkSizeZ:  16,
			ChunkHeight: 256,
			SeaLevel:    64,
		},
		Streaming: StreamingConfig{
			LoadRadius: 8,
			KeepRadius: 12,
			MaxQueued:  16384,
		},
		Physics: PhysicsConfig{
			TickRate:    60.0,
			MaxSubsteps: 8,
			LinearDrag:  0.08,
			AngularDrag: 0.2,
			GravityY:    -9.81,
		},
		Ocean: OceanConfig{
			WaveComponentCount: 6,
			TidalPeriodSeconds: 1200, // 20 minutes, spec §4.7
		},
	}
}

// Validate rejects configurations the rest of the simulation cannot
// safely run with, mirroring the teacher's clamp-on-set style but
// surfacing a wrapped error instead of silently clamping (an inverted
// radius pair is a caller bug worth failing loudly on). The seed is not
// checked: every int64 value is accepted.
func (c Config) Validate() error {
	if c.World.ChunkSizeX <= 0 || c.World.ChunkSizeZ <= 0 || c.World.ChunkHeight <= 0 {
		return fmt.Errorf("%w: chunk dimensions must be positive", ErrInvalidConfig)
	}
	if c.World.SeaLevel < 0 || c.World.SeaLevel >= c.World.ChunkHeight {
		return fmt.Errorf("%w: sea level %d out of [0,%d)", ErrInvalidConfig, c.World.SeaLevel, c.World.ChunkHeight)
	}
	if c.Streaming.LoadRadius < 0 || c.Streaming.KeepRadius < 0 {
		return fmt.Errorf("%w: streaming radii must be non-negative (load=%d, keep=%d)", ErrInvalidConfig, c.Streaming.LoadRadius, c.Streaming.KeepRadius)
	}
	if c.Streaming.KeepRadius < c.Streaming.LoadRadius {
		return fmt.Errorf("%w: keep radius %d must be >= load radius %d", ErrInvalidConfig, c.Streaming.KeepRadius, c.Streaming.LoadRadius)
	}
	if c.Streaming.MaxQueued <= 0 {
		return fmt.Errorf("%w: streaming max queued must be positive", ErrInvalidConfig)
	}
	if c.Physics.TickRate <= 0 {
		return fmt.Errorf("%w: physics tick rate must be positive", ErrInvalidConfig)
	}
	if c.Physics.MaxSubsteps <= 0 {
		return fmt.Errorf("%w: physics max substeps must be positive", ErrInvalidConfig)
	}
	if c.Ocean.WaveComponentCount < 1 || c.Ocean.WaveComponentCount > 8 {
		return fmt.Errorf("%w: ocean wave component count %d outside [1,8]", ErrInvalidConfig, c.Ocean.WaveComponentCount)
	}
	if c.Ocean.TidalPeriodSeconds <= 0 {
		return fmt.Errorf("%w: ocean tidal period must be positive", ErrInvalidConfig)
	}
	return nil
}
