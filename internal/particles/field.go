// Package particles animates the dust field surrounding the wormhole.
// Positions are a pure function of elapsed time and each particle's
// immutable constants; there is no carried velocity or momentum state.
package particles

import (
	"math"
	"math/rand"

	"github.com/avelev/wormview/internal/compute"
	"github.com/avelev/wormview/internal/geom"
)

// Field holds N particle trajectories. rest and freq are fixed at
// construction; current is the only mutable buffer and is reused on
// every Update so the per-frame path allocates nothing.
type Field struct {
	Amplitude float64

	rest    []geom.Vec3
	freq    []geom.Vec3
	current []geom.Vec3
}

// NewField scatters n particles in a cylindrical shell around the tube
// using a seeded source, so the same seed reproduces the same field.
func NewField(n int, seed int64, innerRadius, outerRadius, length, amplitude float64) *Field {
	if n < 1 {
		n = 1
	}
	rng := rand.New(rand.NewSource(seed))
	f := &Field{
		Amplitude: amplitude,
		rest:      make([]geom.Vec3, n),
		freq:      make([]geom.Vec3, n),
		current:   make([]geom.Vec3, n),
	}
	for i := 0; i < n; i++ {
		a := rng.Float64() * 2 * math.Pi
		r := innerRadius + rng.Float64()*(outerRadius-innerRadius)
		f.rest[i] = geom.Vec3{
			X: r * math.Cos(a),
			Y: (rng.Float64() - 0.5) * length,
			Z: r * math.Sin(a),
		}
		f.freq[i] = geom.Vec3{
			X: 0.5 + rng.Float64()*1.5,
			Y: 0.5 + rng.Float64()*1.5,
			Z: 0.5 + rng.Float64()*1.5,
		}
		f.current[i] = f.rest[i]
	}
	return f
}

// Update recomputes every particle position for elapsed time t through
// the active compute backend. Deterministic: the same t always yields
// the same positions.
func (f *Field) Update(t float64) {
	compute.GetBackend().Offsets(f.current, f.rest, f.freq, t, f.Amplitude)
}

// UpdateWith runs the kernel on a specific backend (the GUI passes its
// OpenGL backend here).
func (f *Field) UpdateWith(b compute.Backend, t float64) {
	b.Offsets(f.current, f.rest, f.freq, t, f.Amplitude)
}

// Len returns the particle count.
func (f *Field) Len() int { return len(f.rest) }

// Positions exposes the current particle positions. Callers must not
// mutate the slice.
func (f *Field) Positions() []geom.Vec3 { return f.current }

// Rest exposes the immutable rest positions.
func (f *Field) Rest() []geom.Vec3 { return f.rest }

// Frequencies exposes the immutable per-particle frequency constants.
func (f *Field) Frequencies() []geom.Vec3 { return f.freq }
