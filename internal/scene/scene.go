// Package scene assembles the wormhole, its particle field, accretion
// rings and background celestials into one renderable world, and owns
// the camera they are all viewed through.
package scene

import (
	"math"
	"math/rand"

	"github.com/avelev/wormview/internal/geom"
	"github.com/avelev/wormview/internal/mesh"
	"github.com/avelev/wormview/internal/particles"
	"github.com/avelev/wormview/internal/rings"
)

// Celestial is a distant body drifting slowly around the scene. Unlike
// the time-pure wormhole elements, its spin integrates per-frame delta
// so pausing the clock freezes it in place.
type Celestial struct {
	Orbit    float64 // distance from origin
	Height   float64
	Angle    float64 // current orbital angle, radians
	SpinRate float64 // radians per second
	Size     float64
	Position geom.Vec3
}

// Scene is the full world state advanced once per frame.
type Scene struct {
	Camera     Camera
	Wormhole   *mesh.Deformable
	Dust       *particles.Field
	Rings      *rings.Set
	Celestials []Celestial
}

// Options controls scene construction. Zero values fall back to the
// defaults used by the terminal viewer.
type Options struct {
	Radius         float64
	Length         float64
	RadialSegments int
	HeightSegments int
	ParticleCount  int
	RingCount      int
	CelestialCount int
	Seed           int64
	Amplitude      float64
}

func (o *Options) fill() {
	if o.Radius == 0 {
		o.Radius = 8
	}
	if o.Length == 0 {
		o.Length = 24
	}
	if o.RadialSegments == 0 {
		o.RadialSegments = 24
	}
	if o.HeightSegments == 0 {
		o.HeightSegments = 32
	}
	if o.ParticleCount == 0 {
		o.ParticleCount = 800
	}
	if o.RingCount == 0 {
		o.RingCount = 6
	}
	if o.CelestialCount == 0 {
		o.CelestialCount = 12
	}
	if o.Seed == 0 {
		o.Seed = 1
	}
	if o.Amplitude == 0 {
		o.Amplitude = 0.8
	}
}

// New builds a scene from opts. The same options always produce the
// same initial world.
func New(opts Options) *Scene {
	opts.fill()
	rng := rand.New(rand.NewSource(opts.Seed))

	s := &Scene{
		Camera: Camera{
			Position: geom.Vec3{Z: opts.Length * 1.75},
		},
		Wormhole: mesh.NewWormhole(opts.Radius, opts.Length, opts.RadialSegments, opts.HeightSegments),
		Dust: particles.NewField(opts.ParticleCount, opts.Seed,
			opts.Radius*1.3, opts.Radius*3.5, opts.Length*1.5, opts.Amplitude),
		Rings: rings.NewSet(opts.RingCount, opts.Radius, opts.Length),
	}

	s.Celestials = make([]Celestial, opts.CelestialCount)
	for i := range s.Celestials {
		c := &s.Celestials[i]
		c.Orbit = opts.Length*3 + rng.Float64()*opts.Length*3
		c.Height = (rng.Float64() - 0.5) * opts.Length * 2
		c.Angle = rng.Float64() * 2 * math.Pi
		c.SpinRate = 0.02 + rng.Float64()*0.08
		c.Size = 0.5 + rng.Float64()*1.5
		c.place()
	}
	return s
}

func (c *Celestial) place() {
	c.Position = geom.Vec3{
		X: c.Orbit * math.Cos(c.Angle),
		Y: c.Height,
		Z: c.Orbit * math.Sin(c.Angle),
	}
}

// AdvanceCelestials integrates the background bodies by dt seconds.
func (s *Scene) AdvanceCelestials(dt float64) {
	for i := range s.Celestials {
		c := &s.Celestials[i]
		c.Angle += c.SpinRate * dt
		c.place()
	}
}
