// Package rings animates the accretion rings stacked along the
// wormhole axis. Pulse and visibility are deterministic functions of
// global elapsed time, never independently toggled state.
package rings

import "math"

// Ring is one accretion ring.
type Ring struct {
	BaseY      float64 // position along the tube axis
	Radius     float64
	PulseSpeed float64
	PulsePhase float64

	// Derived every Update; pure functions of elapsed time.
	Scale   float64
	Visible bool
}

// Set is the ordered ring sequence.
type Set struct {
	Rings []Ring

	cycleRate float64 // rings swept per second by the visibility window
	duty      float64 // fraction of the cycle each ring stays visible
}

// NewSet spaces n rings evenly along [-length/2, length/2].
func NewSet(n int, radius, length float64) *Set {
	if n < 1 {
		n = 1
	}
	s := &Set{
		Rings:     make([]Ring, n),
		cycleRate: 2.0,
		duty:      0.6,
	}
	for i := range s.Rings {
		frac := 0.5
		if n > 1 {
			frac = float64(i) / float64(n-1)
		}
		s.Rings[i] = Ring{
			BaseY:      (frac - 0.5) * length,
			Radius:     radius * 1.1,
			PulseSpeed: 1.2 + 0.3*float64(i),
			PulsePhase: float64(i) * math.Pi / 4,
			Scale:      1,
		}
	}
	return s
}

// Update recomputes every ring's pulse scale and visibility for the
// given elapsed time. Calling twice with the same t is a no-op.
func (s *Set) Update(t float64) {
	n := float64(len(s.Rings))
	for i := range s.Rings {
		r := &s.Rings[i]
		r.Scale = 1 + 0.2*math.Sin(t*r.PulseSpeed+r.PulsePhase)
		phase := math.Mod(t*s.cycleRate+float64(i), n)
		r.Visible = phase < s.duty*n
	}
}
