package gui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/avelev/wormview/internal/geom"
	"github.com/avelev/wormview/internal/scene"
)

func (a *App) drawStars() {
	for _, s := range a.Stars {
		rl.DrawPoint3D(s, ColStar)
	}
}

func (a *App) drawScene(s *scene.Scene) {
	a.drawWormhole(s)
	a.drawRings(s)
	a.drawDisks(s)
	a.drawDust(s)
	a.drawCelestials(s)
}

func (a *App) drawWormhole(s *scene.Scene) {
	d := s.Wormhole
	rot := d.Rotation
	cr, sr := math.Cos(rot), math.Sin(rot)
	spin := func(p geom.Vec3) geom.Vec3 {
		return geom.Vec3{X: p.X*cr - p.Z*sr, Y: p.Y, Z: p.X*sr + p.Z*cr}
	}

	alpha := float32(d.Opacity)
	col := rl.ColorAlpha(ColSurface, alpha)

	rings := d.RingCount()
	radial := d.RadialCount()
	for h := 0; h < rings; h++ {
		for seg := 0; seg < radial; seg++ {
			p := vec3(spin(d.Vertex(h, seg)))
			rl.DrawLine3D(p, vec3(spin(d.Vertex(h, (seg+1)%radial))), col)
			if h+1 < rings {
				rl.DrawLine3D(p, vec3(spin(d.Vertex(h+1, seg))), col)
			}
		}
	}
}

func (a *App) drawRings(s *scene.Scene) {
	for _, r := range s.Rings.Rings {
		if !r.Visible {
			continue
		}
		center := rl.NewVector3(0, float32(r.BaseY), 0)
		radius := float32(r.Radius * r.Scale)
		rl.DrawCircle3D(center, radius, rl.NewVector3(1, 0, 0), 90, ColRing)
	}
}

func (a *App) drawDisks(s *scene.Scene) {
	d := s.Wormhole
	if d.Barrier.Visible {
		col := rl.ColorAlpha(ColBarrier, float32(d.Barrier.Opacity))
		rl.DrawCircle3D(vec3(d.Barrier.Position), float32(d.Barrier.Radius), rl.NewVector3(1, 0, 0), 90, col)
		rl.DrawCircle3D(vec3(d.Barrier.Position), float32(d.Barrier.Radius)*0.6, rl.NewVector3(1, 0, 0), 90, col)
	}
	if d.Portal.Visible {
		col := rl.ColorAlpha(ColPortal, float32(d.Portal.Opacity))
		rl.DrawCircle3D(vec3(d.Portal.Position), float32(d.Portal.Radius), rl.NewVector3(1, 0, 0), 90, col)
	}
}

func (a *App) drawDust(s *scene.Scene) {
	for _, p := range s.Dust.Positions() {
		rl.DrawPoint3D(vec3(p), ColDust)
	}
}

func (a *App) drawCelestials(s *scene.Scene) {
	for _, c := range s.Celestials {
		rl.DrawSphere(vec3(c.Position), float32(c.Size), ColTextDim)
	}
}

func (a *App) drawHUD() {
	y := float32(16)
	line := func(s string, col rl.Color) {
		rl.DrawTextEx(a.Font, s, rl.NewVector2(16, y), 20, 1, col)
		y += 24
	}

	line(fmt.Sprintf("topology   %s", a.kind), ColText)
	line(fmt.Sprintf("throat     %.2f", a.readout.ThroatDiameter), ColText)
	line(fmt.Sprintf("stability  %s", a.readout.Stability), ColText)
	line(fmt.Sprintf("dilation   %.2fx", a.readout.TimeDilation), ColText)
	line(fmt.Sprintf("distortion %3.0f%%", a.distortion), ColText)

	if a.flying || a.percent > 0 {
		sw := float32(rl.GetScreenWidth())
		sh := float32(rl.GetScreenHeight())
		label := fmt.Sprintf("%s  %5.1f%%", a.label, a.percent)
		size := rl.MeasureTextEx(a.Font, label, 24, 1)
		rl.DrawTextEx(a.Font, label, rl.NewVector2((sw-size.X)/2, sh-72), 24, 1, ColText)

		barW := sw * 0.4
		x := (sw - barW) / 2
		rl.DrawRectangle(int32(x), int32(sh-40), int32(barW), 6, rl.ColorAlpha(ColTextDim, 0.5))
		rl.DrawRectangle(int32(x), int32(sh-40), int32(barW*float32(a.percent)/100), 6, ColRing)
	}

	hint := "space journey   [ ] distortion   k topology   mouse look"
	rl.DrawTextEx(a.Font, hint, rl.NewVector2(16, float32(rl.GetScreenHeight())-28), 16, 1, ColTextDim)
}
