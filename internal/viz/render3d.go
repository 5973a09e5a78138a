package viz

import (
	"math"
	"sort"

	"github.com/avelev/wormview/internal/geom"
	"github.com/avelev/wormview/internal/scene"
)

// Projector turns world positions into canvas sub-pixels through the
// scene camera's look-at pose.
type Projector struct {
	Near  float64
	Focal float64

	right, up, forward geom.Vec3
	eye                geom.Vec3
}

// NewProjector builds a view basis from the camera. Rebuild it every
// frame; the camera moves constantly.
func NewProjector(cam *scene.Camera) *Projector {
	p := &Projector{Near: 0.5, Focal: 1.8, eye: cam.Position}
	p.forward = cam.Target.Sub(cam.Position).Normalize()
	if p.forward.Length() == 0 {
		p.forward = geom.Vec3{Z: -1}
	}
	worldUp := geom.Vec3{Y: 1}
	// Looking straight up or down degenerates the basis.
	if math.Abs(p.forward.Dot(worldUp)) > 0.999 {
		worldUp = geom.Vec3{Z: 1}
	}
	p.right = p.forward.Cross(worldUp).Normalize()
	p.up = p.right.Cross(p.forward)
	return p
}

// Project returns sub-pixel coordinates, view depth, and whether the
// point lands on a canvas of w x h cells.
func (p *Projector) Project(pt geom.Vec3, w, h int) (int, int, float64, bool) {
	d := pt.Sub(p.eye)
	z := d.Dot(p.forward)
	if z < p.Near {
		return 0, 0, z, false
	}
	sw, sh := w*2, h*4
	minDim := float64(sh)
	if float64(sw) < minDim {
		minDim = float64(sw)
	}
	scale := p.Focal / z * minDim
	sx := int(d.Dot(p.right)*scale) + sw/2
	// Braille dots are taller than wide; halve Y to keep circles round.
	sy := int(-d.Dot(p.up)*scale*0.5) + sh/2
	return sx, sy, z, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

type edge struct {
	a, b  geom.Vec3
	depth float64
}

// Wireframe accumulates world-space segments for one frame.
type Wireframe struct{ edges []edge }

func (w *Wireframe) Add(a, b geom.Vec3)   { w.edges = append(w.edges, edge{a: a, b: b}) }
func (w *Wireframe) AddPoint(p geom.Vec3) { w.edges = append(w.edges, edge{a: p, b: p}) }
func (w *Wireframe) Clear()               { w.edges = w.edges[:0] }

// BuildScene refills the wireframe from the current scene state: the
// wormhole surface grid, visible rings scaled by their pulse, the
// topology disks, the dust field and the background celestials.
func BuildScene(w *Wireframe, s *scene.Scene) {
	w.Clear()

	d := s.Wormhole
	rot := d.Rotation
	cr, sr := math.Cos(rot), math.Sin(rot)
	spin := func(p geom.Vec3) geom.Vec3 {
		return geom.Vec3{X: p.X*cr - p.Z*sr, Y: p.Y, Z: p.X*sr + p.Z*cr}
	}

	rings := d.RingCount()
	radial := d.RadialCount()
	for h := 0; h < rings; h++ {
		for seg := 0; seg < radial; seg++ {
			p := spin(d.Vertex(h, seg))
			// Ring edge to the next radial vertex.
			w.Add(p, spin(d.Vertex(h, (seg+1)%radial)))
			// Longitude edge to the next ring, every other column to
			// keep the grid readable at terminal resolution.
			if h+1 < rings && seg%2 == 0 {
				w.Add(p, spin(d.Vertex(h+1, seg)))
			}
		}
	}

	for _, r := range s.Rings.Rings {
		if !r.Visible {
			continue
		}
		addCircle(w, geom.Vec3{Y: r.BaseY}, r.Radius*r.Scale, 24)
	}

	if d.Barrier.Visible {
		addCircle(w, d.Barrier.Position, d.Barrier.Radius, 20)
	}
	if d.Portal.Visible {
		addCircle(w, d.Portal.Position, d.Portal.Radius, 20)
	}

	for _, p := range s.Dust.Positions() {
		w.AddPoint(p)
	}
	for _, c := range s.Celestials {
		w.AddPoint(c.Position)
	}
}

func addCircle(w *Wireframe, center geom.Vec3, radius float64, segments int) {
	prev := center.Add(geom.Vec3{X: radius})
	for i := 1; i <= segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		p := center.Add(geom.Vec3{X: radius * math.Cos(a), Z: radius * math.Sin(a)})
		w.Add(prev, p)
		prev = p
	}
}

// Render draws the wireframe to the canvas back to front.
func Render(c *Canvas, w *Wireframe, proj *Projector) {
	if c == nil || w == nil || proj == nil {
		return
	}
	type projected struct {
		x1, y1, x2, y2 int
		depth          float64
	}
	out := make([]projected, 0, len(w.edges))
	for _, e := range w.edges {
		x1, y1, d1, v1 := proj.Project(e.a, c.Width, c.Height)
		x2, y2, d2, v2 := proj.Project(e.b, c.Width, c.Height)
		if v1 || v2 {
			out = append(out, projected{x1, y1, x2, y2, (d1 + d2) / 2})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].depth > out[j].depth })
	for _, e := range out {
		if e.x1 == e.x2 && e.y1 == e.y2 {
			c.Set(e.x1, e.y1)
		} else {
			c.DrawLine(e.x1, e.y1, e.x2, e.y2)
		}
	}
}
