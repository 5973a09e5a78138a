// Package compute provides pluggable backends for the particle offset
// kernel: a parallel CPU fallback that is always available, and an
// OpenGL 4.3 compute-shader path usable once the GUI owns a GL context.
package compute

import "github.com/avelev/wormview/internal/geom"

type Backend interface {
	Name() string
	Available() bool
	// Offsets writes rest[i] + oscillation(freq[i], t, i) into dst.
	// dst, rest and freq must have equal length; dst is reused across
	// frames so the kernel allocates nothing.
	Offsets(dst, rest, freq []geom.Vec3, t, amplitude float64)
	Cleanup()
}

var activeBackend Backend

func init() {
	activeBackend = NewCPUBackend()
}

func SetBackend(b Backend) {
	if activeBackend != nil {
		activeBackend.Cleanup()
	}
	activeBackend = b
}

func GetBackend() Backend {
	return activeBackend
}

// Oscillate is the shared particle kernel: a per-axis sinusoid keyed by
// the particle's immutable frequency constants and index, scaled by a
// slowly varying flow factor. Pure in (t, i); the CPU backend and the
// GLSL compute shader implement exactly this.
func Oscillate(rest, freq geom.Vec3, t, amplitude float64, i int) geom.Vec3 {
	fi := float64(i)
	flow := 0.6 + 0.4*sin(t*0.25+fi*0.05)
	a := amplitude * flow
	return geom.Vec3{
		X: rest.X + a*sin(t*freq.X+fi),
		Y: rest.Y + a*cos(t*freq.Y+fi),
		Z: rest.Z + a*sin(t*freq.Z+fi*0.7),
	}
}
