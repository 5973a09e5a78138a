// Package journey drives the guided camera flight through the
// wormhole: approach, throat passage, exit, and the settle-and-restore
// handoff back to the orbiting view.
package journey

import (
	"math"

	"github.com/avelev/wormview/internal/geom"
	"github.com/avelev/wormview/internal/scene"
)

// Phase identifies which leg of the flight owns the camera.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseApproach
	PhaseThroat
	PhaseExit
	PhaseSettling
)

func (p Phase) String() string {
	switch p {
	case PhaseApproach:
		return "approach"
	case PhaseThroat:
		return "throat"
	case PhaseExit:
		return "exit"
	case PhaseSettling:
		return "settling"
	default:
		return "idle"
	}
}

// Labels shown in the HUD for each third of the trip.
const (
	LabelApproach = "Approaching Wormhole"
	LabelThroat   = "Entering Wormhole Throat"
	LabelExit     = "Exiting Wormhole"
)

// Frame is the per-tick journey report consumed by the engine and the
// UI. Glitch feeds the visual distortion sink; Done is true only on
// the single frame where the saved camera pose is restored.
type Frame struct {
	Active  bool
	Phase   Phase
	Percent float64
	Label   string
	Glitch  float64
	Done    bool
}

// Controller is the journey state machine. Progress runs over [0,3):
// one unit per leg, advanced by a frame-rate corrected increment so a
// stuttering display still takes the same wall-clock trip.
type Controller struct {
	StartDepth  float64 // camera z at the start of the approach
	MouthDepth  float64 // camera z at the wormhole mouth
	ThroatExit  float64 // camera z leaving the throat
	FarExit     float64 // camera z at the end of the exit leg
	Wobble      float64 // lateral shake amplitude; peaks inside the throat
	SettleDelay float64 // seconds to hold the far view before restoring

	progress float64
	active   bool
	settling bool
	settle   float64
	saved    scene.Pose
	restored bool
}

// NewController returns a controller with the stock flight profile.
func NewController() *Controller {
	return &Controller{
		StartDepth:  42,
		MouthDepth:  6,
		ThroatExit:  -6,
		FarExit:     -40,
		Wobble:      1.6,
		SettleDelay: 1.5,
	}
}

// Engaged reports whether the journey currently owns camera restore
// duties: either flying, or holding the settle delay.
func (c *Controller) Engaged() bool { return c.active || c.settling }

// Active reports whether the camera is mid-flight.
func (c *Controller) Active() bool { return c.active }

// Start captures the camera's present pose and begins the approach.
// Starting mid-settle abandons the pending restore and recaptures from
// wherever the camera is now.
func (c *Controller) Start(cam *scene.Camera) {
	c.saved = cam.Capture()
	c.progress = 0
	c.active = true
	c.settling = false
	c.settle = 0
	c.restored = false
}

// Stop cancels the flight and restores the saved pose immediately.
// Safe to call when idle.
func (c *Controller) Stop(cam *scene.Camera) {
	if !c.Engaged() {
		return
	}
	c.restore(cam)
	c.active = false
	c.settling = false
}

func (c *Controller) restore(cam *scene.Camera) {
	if c.restored {
		return
	}
	cam.Restore(c.saved)
	c.restored = true
}

// Advance moves the journey forward by dt seconds at elapsed time t
// and positions the camera for this frame.
func (c *Controller) Advance(cam *scene.Camera, t, dt float64) Frame {
	if c.settling {
		return c.advanceSettle(cam, dt)
	}
	if !c.active {
		return Frame{}
	}

	// Frame-rate corrected: 0.004 per frame at a nominal 60fps, with a
	// slow breathing modulation so the trip never feels metronomic.
	c.progress += 0.004 * (1 + 0.1*math.Sin(0.5*t)) * dt * 60
	if c.progress >= 3 {
		// Completion rearms progress for the next flight.
		c.progress = 0
		c.active = false
		c.settling = true
		c.settle = c.SettleDelay
		cam.Position = geom.Vec3{Z: c.FarExit}
		cam.Target = geom.Vec3{Z: c.FarExit - 12}
		return Frame{Active: true, Phase: PhaseSettling, Percent: 100, Label: LabelExit}
	}

	phase, bp := c.band()
	f := Frame{
		Active:  true,
		Phase:   phase,
		Percent: c.progress / 3 * 100,
	}

	switch phase {
	case PhaseApproach:
		f.Label = LabelApproach
		f.Glitch = 0.3 * bp
		// Gentle drift that fades as the mouth lines up.
		wobble := 0.3 * c.Wobble * math.Pow(1-bp, 1.5)
		x, y := lateral(wobble, t, 6)
		cam.Position = geom.Vec3{X: x, Y: y, Z: geom.Lerp(c.StartDepth, c.MouthDepth, bp)}
		cam.Target = geom.Vec3{}
	case PhaseThroat:
		f.Label = LabelThroat
		env := 1 - 2*math.Abs(bp-0.5)
		f.Glitch = 0.3 + 0.7*env
		x, y := lateral(c.Wobble*env, t, 18+22*env)
		cam.Position = geom.Vec3{X: x, Y: y, Z: geom.Lerp(c.MouthDepth, c.ThroatExit, bp)}
		cam.Target = geom.Vec3{}
	case PhaseExit:
		f.Label = LabelExit
		decay := (1 - bp) * (1 - bp)
		f.Glitch = 0.3 * decay
		x, y := lateral(0.3*c.Wobble*decay, t, 18)
		z := geom.Lerp(c.ThroatExit, c.FarExit, bp)
		cam.Position = geom.Vec3{X: x, Y: y, Z: z}
		cam.Target = geom.Vec3{Z: z - 12}
	}
	return f
}

// lateral is the off-axis shake oscillator shared by all three legs;
// the Y component runs slower and quieter so the motion never reads as
// a perfect circle.
func lateral(amp, t, speed float64) (x, y float64) {
	return amp * math.Sin(t*speed), 0.6 * amp * math.Cos(t*speed*1.31)
}

func (c *Controller) advanceSettle(cam *scene.Camera, dt float64) Frame {
	c.settle -= dt
	if c.settle > 0 {
		return Frame{Active: true, Phase: PhaseSettling, Percent: 100, Label: LabelExit}
	}
	c.restore(cam)
	c.settling = false
	return Frame{Phase: PhaseIdle, Percent: 100, Done: true}
}

func (c *Controller) band() (Phase, float64) {
	switch {
	case c.progress < 1:
		return PhaseApproach, c.progress
	case c.progress < 2:
		return PhaseThroat, c.progress - 1
	default:
		return PhaseExit, c.progress - 2
	}
}
