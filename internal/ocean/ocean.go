// Package ocean implements the Ocean Field (spec C7): a pure,
// deterministic sum-of-sines wave height/normal field plus low-frequency
// wind/current fields and a triangle-wave tidal phase. Every exported
// function is a pure function of (position, time) with no hidden
// per-call state, so any number of ship-physics workers can sample it
// concurrently without synchronization.
//
// Grounded on the WaterSimulation wave parameter layout in
// other_examples/.../gopher3D water.go (per-component amplitude,
// direction, frequency/wavelength, speed, phase, GPU-Gems deep-water
// dispersion where wave speed is proportional to sqrt(wavelength)), with
// the GLSL height/normal evaluation this simulation core needs (the
// teacher repo pushes that math into a shader; here it runs on the
// physics worker pool instead).
package ocean

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"sailworld/internal/noisefield"
)

// WaveComponent is one sinusoidal contribution to the wave field (spec
// §4.7), matching the teacher's parallel wave-parameter slices
// (waveAmplitudes/waveDirections/waveFrequencies/...) but as a single
// struct per component for clarity.
type WaveComponent struct {
	Amplitude    float32
	Wavelength   float32
	DirectionDeg float32 // degrees, measured from +X toward +Z
	Speed        float32 // optional override; 0 means derive from dispersion
	Phase        float32
}

// DefaultComponents returns n wave components spread across 45-degree
// directions with GPU-Gems-style deep-water dispersion (wave speed
// proportional to sqrt(wavelength)), the same relationship the teacher's
// water.go derives its waveSpeeds from.
func DefaultComponents(n int, baseAmplitude float32) []WaveComponent {
	if n <= 0 {
		n = 1
	}
	comps := make([]WaveComponent, n)
	for i := 0; i < n; i++ {
		wavelength := float32(40.0 / math.Pow(1.6, float64(i)))
		comps[i] = WaveComponent{
			Amplitude:    baseAmplitude * float32(math.Pow(0.7, float64(i))),
			Wavelength:   wavelength,
			DirectionDeg: float32(i) * 45.0,
			Phase:        float32(i) * float32(math.Pi) / 3.0,
		}
	}
	return comps
}

func (w WaveComponent) wavenumber() float32 {
	return 2 * math.Pi / w.Wavelength
}

// dispersionSpeed derives deep-water wave speed from wavelength via
// c = sqrt(g*L/(2*pi)), the same physical relationship the teacher's
// water.go approximates with its "speed proportional to sqrt(wavelength)"
// comment.
func (w WaveComponent) dispersionSpeed() float32 {
	if w.Speed != 0 {
		return w.Speed
	}
	const g = 9.81
	return float32(math.Sqrt(float64(g*w.Wavelength) / (2 * math.Pi)))
}

// Field is an immutable snapshot of the ocean's wave components plus the
// noise samplers backing its wind/current fields; callers rebuild (not
// mutate) a Field when parameters change between ticks; sim.Scheduler
// takes the Field as an argument to each Advance call, so a new Field
// takes effect from the next call.
type Field struct {
	Components         []WaveComponent
	TidalPeriodSeconds float64
	windSampler        *noisefield.Sampler
	currentSampler     *noisefield.Sampler
}

// NewField builds a Field for the given seed, components and tidal
// period.
func NewField(seed int64, components []WaveComponent, tidalPeriodSeconds float64) *Field {
	return &Field{
		Components:         components,
		TidalPeriodSeconds: tidalPeriodSeconds,
		windSampler:        noisefield.NewSampler(seed ^ 0x0CEA10),
		currentSampler:     noisefield.NewSampler(seed ^ 0x0CEA11),
	}
}

// SampleHeight returns the wave surface's world-space Y offset at (x, z)
// at time t seconds, summing every component's sine contribution plus
// the tidal offset.
func (f *Field) SampleHeight(x, z float32, t float64) float32 {
	var h float32
	for _, c := range f.Components {
		h += waveSine(c, x, z, t)
	}
	return h + float32(f.TidalPhase(t))*0.5
}

func waveSine(c WaveComponent, x, z float32, t float64) float32 {
	dirRad := float64(c.DirectionDeg) * math.Pi / 180.0
	dx, dz := float32(math.Cos(dirRad)), float32(math.Sin(dirRad))
	k := c.wavenumber()
	speed := c.dispersionSpeed()
	phase := k*(x*dx+z*dz) - speed*k*float32(t) + c.Phase
	return c.Amplitude * float32(math.Sin(float64(phase)))
}

// SampleNormal returns the unit surface normal at (x, z, t), computed
// from the analytic partial derivatives of SampleHeight's sine sum
// (central-difference-free, so it stays exact rather than approximate).
func (f *Field) SampleNormal(x, z float32, t float64) mgl32.Vec3 {
	var ddx, ddz float32
	for _, c := range f.Components {
		dirRad := float64(c.DirectionDeg) * math.Pi / 180.0
		dx, dz := float32(math.Cos(dirRad)), float32(math.Sin(dirRad))
		k := c.wavenumber()
		speed := c.dispersionSpeed()
		phase := k*(x*dx+z*dz) - speed*k*float32(t) + c.Phase
		cosPhase := float32(math.Cos(float64(phase)))
		ddx += c.Amplitude * k * dx * cosPhase
		ddz += c.Amplitude * k * dz * cosPhase
	}
	n := mgl32.Vec3{-ddx, 1, -ddz}
	return n.Normalize()
}

// TidalPhase returns a triangle wave in [0, 1] over TidalPeriodSeconds
// (0 at the start of each period, 1 at half period),
// the 20-minute tidal cycle decided in the grounding ledger.
func (f *Field) TidalPhase(t float64) float64 {
	period := f.TidalPeriodSeconds
	if period <= 0 {
		return 0
	}
	phase := math.Mod(t, period) / period // [0, 1)
	if phase < 0 {
		phase += 1
	}
	// Triangle wave: rises 0->1 over first half, falls 1->0 over second.
	if phase < 0.5 {
		return 2 * phase
	}
	return 2 - 2*phase
}

// Wind returns the low-frequency wind vector (world XZ plane) at (x, z,
// t), a slowly-drifting noise field rather than a constant so sails feel
// a living atmosphere.
func (f *Field) Wind(x, z float32, t float64) mgl32.Vec2 {
	scale := 0.0008
	wx, _ := f.windSampler.Fractal3D(float64(x)*scale, t*0.02, float64(z)*scale, 3, 0.5, 2.0)
	wz, _ := f.windSampler.Fractal3D(float64(x)*scale+500, t*0.02, float64(z)*scale+500, 3, 0.5, 2.0)
	return mgl32.Vec2{float32(wx) * 12, float32(wz) * 12}
}

// Current returns the low-frequency surface current vector at (x, z, t),
// independent of Wind so a becalmed sea can still carry a ship.
func (f *Field) Current(x, z float32, t float64) mgl32.Vec2 {
	scale := 0.0004
	cx, _ := f.currentSampler.Fractal3D(float64(x)*scale, t*0.01, float64(z)*scale, 3, 0.5, 2.0)
	cz, _ := f.currentSampler.Fractal3D(float64(x)*scale+900, t*0.01, float64(z)*scale+900, 3, 0.5, 2.0)
	return mgl32.Vec2{float32(cx) * 1.5, float32(cz) * 1.5}
}
