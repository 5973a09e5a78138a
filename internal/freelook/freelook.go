// Package freelook maps pointer movement to orbital camera motion
// while the guided journey is paused.
package freelook

import (
	"math"

	"github.com/avelev/wormview/internal/geom"
	"github.com/avelev/wormview/internal/scene"
)

// Controller eases the camera toward a pointer-derived target angle.
// Easing is distance-adaptive per axis: large pointer swings converge
// faster than small corrections, so the camera feels weighted without
// lagging behind deliberate motion.
type Controller struct {
	Sensitivity float64 // radians of yaw per normalized pointer unit
	Radius      float64 // orbit distance from the origin

	targetYaw   float64
	targetPitch float64
	yaw         float64
	pitch       float64
}

// NewController captures the camera's present orbit so engagement does
// not snap the view.
func NewController(cam *scene.Camera) *Controller {
	c := &Controller{
		Sensitivity: 2.4,
		Radius:      cam.Position.Length(),
	}
	if c.Radius < 1 {
		c.Radius = 1
	}
	c.yaw = math.Atan2(cam.Position.X, cam.Position.Z)
	c.pitch = math.Asin(geom.Clamp(cam.Position.Y/c.Radius, -1, 1))
	c.targetYaw, c.targetPitch = c.yaw, c.pitch
	return c
}

// PointerMoved consumes a pointer position normalized to [-1,1] on both
// axes, with (0,0) at the viewport center. Vertical motion is inverted:
// dragging up pitches the view down, matching flight-stick convention.
func (c *Controller) PointerMoved(nx, ny float64) {
	c.targetYaw = geom.Clamp(nx, -1, 1) * c.Sensitivity
	c.targetPitch = geom.Clamp(-ny, -1, 1) * c.Sensitivity * 0.4
	c.targetPitch = geom.Clamp(c.targetPitch, -1.2, 1.2)
}

const (
	degPerRad = 180 / math.Pi

	// easeSaturation is the remaining angular distance, in degrees, at
	// which easing reaches its fast rate.
	easeSaturation = 50.0
)

// ease returns the per-axis smoothing factor for a remaining distance
// in radians.
func ease(dist float64) float64 {
	return 0.05 + 0.1*math.Min(1, math.Abs(dist)*degPerRad/easeSaturation)
}

// Update advances the camera one frame toward the target orientation
// and re-aims it at the origin.
func (c *Controller) Update(cam *scene.Camera) {
	dy := c.targetYaw - c.yaw
	dp := c.targetPitch - c.pitch
	c.yaw += dy * ease(dy)
	c.pitch += dp * ease(dp)

	cp := math.Cos(c.pitch)
	cam.Position = geom.Vec3{
		X: c.Radius * cp * math.Sin(c.yaw),
		Y: c.Radius * math.Sin(c.pitch),
		Z: c.Radius * cp * math.Cos(c.yaw),
	}
	cam.Target = geom.Vec3{}
}
