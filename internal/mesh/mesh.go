// Package mesh implements the deformable wormhole tube model: an
// immutable rest pose, a distortion-driven pinch applied to the radial
// axes, and the display readouts derived from the distortion factor.
package mesh

import (
	"math"

	"github.com/avelev/wormview/internal/geom"
)

const (
	// pinchWidth controls how far the gaussian pinch reaches from the
	// tube midpoint, in height-fraction units.
	pinchWidth = 0.15

	flare = 0.8 // mouth widening of the rest profile
)

// Deformable owns the wormhole tube vertex buffer. Current positions
// are always recomputed from the rest pose, never accumulated, so
// repeated SetDistortion calls with the same factor are bit-identical.
type Deformable struct {
	Radius  float64
	Length  float64
	radial  int // vertices per ring
	heights int // ring count - 1

	rest    []geom.Vec3
	current []geom.Vec3
	normals []geom.Vec3
	factor  float64

	// Per-frame ambient animation, pure functions of elapsed time.
	// Applied at render time; vertex data is untouched.
	Rotation float64
	Opacity  float64

	Barrier Disk
	Portal  Disk
	kind    Kind
}

// NewWormhole builds the tube: rings of radial vertices along the Y
// axis, mouths flared outward, throat at the midpoint. The rest pose is
// captured once here and never mutated.
func NewWormhole(radius, length float64, radialSegments, heightSegments int) *Deformable {
	if radialSegments < 3 {
		radialSegments = 3
	}
	if heightSegments < 2 {
		heightSegments = 2
	}
	n := (heightSegments + 1) * radialSegments
	d := &Deformable{
		Radius:  radius,
		Length:  length,
		radial:  radialSegments,
		heights: heightSegments,
		rest:    make([]geom.Vec3, n),
		current: make([]geom.Vec3, n),
		normals: make([]geom.Vec3, n),
		Opacity: 1,
	}
	for h := 0; h <= heightSegments; h++ {
		hf := float64(h)/float64(heightSegments) - 0.5
		y := hf * length
		r := radius * (1 + flare*(2*hf)*(2*hf))
		for s := 0; s < radialSegments; s++ {
			a := 2 * math.Pi * float64(s) / float64(radialSegments)
			d.rest[h*radialSegments+s] = geom.Vec3{X: r * math.Cos(a), Y: y, Z: r * math.Sin(a)}
		}
	}
	d.Barrier = Disk{Position: geom.Vec3{Y: -length / 2}, Radius: radius * 1.2}
	d.Portal = Disk{Position: geom.Vec3{Y: length / 2}, Radius: radius * 1.2}
	d.SetDistortion(0.5)
	return d
}

// MinRadialScale is the radial scale at the pinch center for a given
// factor: 1 - (0.9*factor + 0.1). Factor 0 keeps a 10% pinch, factor 1
// pinches almost fully closed.
func MinRadialScale(factor float64) float64 {
	return 1 - (0.9*geom.Clamp(factor, 0, 1) + 0.1)
}

// SetDistortion recomputes every vertex from the rest pose with the
// gaussian pinch centered on the tube midpoint, then rebuilds normals.
// Out-of-range factors clamp rather than fail. Returns the derived
// display readout.
func (d *Deformable) SetDistortion(factor float64) Readout {
	factor = geom.Clamp(factor, 0, 1)
	d.factor = factor
	depth := 0.9*factor + 0.1
	for i, p := range d.rest {
		hf := p.Y / d.Length // [-0.5, 0.5]
		g := hf / pinchWidth
		scale := 1 - depth*math.Exp(-g*g)
		d.current[i] = geom.Vec3{X: p.X * scale, Y: p.Y, Z: p.Z * scale}
	}
	d.recomputeNormals()
	return d.Readout()
}

// Factor returns the last applied distortion factor.
func (d *Deformable) Factor() float64 { return d.factor }

// Positions exposes the current vertex buffer. Callers must not mutate it.
func (d *Deformable) Positions() []geom.Vec3 { return d.current }

// Normals exposes the current per-vertex normals.
func (d *Deformable) Normals() []geom.Vec3 { return d.normals }

// RingCount returns the number of vertex rings along the axis.
func (d *Deformable) RingCount() int { return d.heights + 1 }

// RadialCount returns the number of vertices per ring.
func (d *Deformable) RadialCount() int { return d.radial }

// Vertex returns the current position of ring h, spoke s (s wraps).
func (d *Deformable) Vertex(h, s int) geom.Vec3 {
	return d.current[h*d.radial+s%d.radial]
}

// Animate updates the ambient rotation and opacity pulse. Both are pure
// functions of elapsed time so a repeated call with the same t is a no-op.
func (d *Deformable) Animate(elapsed float64) {
	d.Rotation = elapsed * 0.15
	d.Opacity = 0.65 + 0.15*math.Sin(elapsed*1.5)
}

// recomputeNormals rebuilds smooth per-vertex normals by accumulating
// face normals of the quad grid. Required after every reposition so
// lighting stays consistent with the deformed surface.
func (d *Deformable) recomputeNormals() {
	for i := range d.normals {
		d.normals[i] = geom.Vec3{}
	}
	for h := 0; h < d.heights; h++ {
		for s := 0; s < d.radial; s++ {
			i0 := h*d.radial + s
			i1 := h*d.radial + (s+1)%d.radial
			i2 := (h+1)*d.radial + (s+1)%d.radial
			i3 := (h+1)*d.radial + s
			a := d.current[i1].Sub(d.current[i0])
			b := d.current[i3].Sub(d.current[i0])
			fn := a.Cross(b)
			for _, i := range [4]int{i0, i1, i2, i3} {
				d.normals[i] = d.normals[i].Add(fn)
			}
		}
	}
	for i := range d.normals {
		d.normals[i] = d.normals[i].Normalize()
	}
}
