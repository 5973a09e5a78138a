package mesh

// Readout carries the display-only numbers derived from the distortion
// factor. Pure functions of the factor; pushed to the UI surface, never
// read back by the simulation.
type Readout struct {
	ThroatDiameter float64
	Stability      string
	TimeDilation   float64
}

// Readout derives the current display readout.
func (d *Deformable) Readout() Readout {
	return Readout{
		ThroatDiameter: 2 * d.Radius * MinRadialScale(d.factor),
		Stability:      StabilityLabel(d.factor),
		TimeDilation:   1 + 2*d.factor,
	}
}

// StabilityLabel is the qualitative label shown next to the slider.
func StabilityLabel(factor float64) string {
	switch {
	case factor > 0.7:
		return "Unstable"
	case factor > 0.4:
		return "Stable"
	default:
		return "Excessive"
	}
}
