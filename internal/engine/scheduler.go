package engine

import (
	"fmt"
	"os"
	"time"

	"github.com/avelev/wormview/internal/freelook"
	"github.com/avelev/wormview/internal/journey"
	"github.com/avelev/wormview/internal/mesh"
	"github.com/avelev/wormview/internal/scene"
)

// resizeQuiet is how long the resize stream must go silent before the
// pending dimensions are applied.
const resizeQuiet = 250 * time.Millisecond

// Surface renders the scene. Implemented by the terminal canvas and
// the GUI window.
type Surface interface {
	Render(s *scene.Scene, hud HUD)
	Resize(width, height int)
}

// UISink receives HUD updates: journey progress and the wormhole
// readout.
type UISink interface {
	JourneyProgress(percent float64, label string, active bool)
	ReadoutChanged(r mesh.Readout)
}

// EffectSink receives the glitch intensity for this frame. The sink
// decides how to express it (chromatic offset in the GUI, cell jitter
// in the terminal); the engine only supplies the scalar.
type EffectSink interface {
	SetGlitchIntensity(v float64)
}

// FrameStats is the per-frame telemetry record handed to observers.
type FrameStats struct {
	Elapsed    float64
	Delta      float64
	Percent    float64
	Phase      string
	Glitch     float64
	Distortion float64
	Throat     float64
	Dilation   float64
	Stability  string
	CameraZ    float64
}

// FrameObserver taps completed frames, e.g. for recording.
type FrameObserver interface {
	ObserveFrame(FrameStats)
}

// Scheduler drives the scene at the display's cadence. Each Tick runs
// the same sequence: drain commands, advance the clock, position the
// camera, step the scene elements, notify sinks, render.
type Scheduler struct {
	Scene   *scene.Scene
	Journey *journey.Controller

	clock *Clock
	queue commandQueue
	buf   []Command

	look *freelook.Controller

	surface Surface
	ui      UISink
	effects EffectSink
	obs     []FrameObserver

	pendingW, pendingH int
	resizeAt           time.Time
	resizePending      bool

	warned map[string]bool
}

// NewScheduler wires a scheduler around s with a wall clock.
func NewScheduler(s *scene.Scene) *Scheduler {
	return NewSchedulerWithClock(s, NewClock())
}

// NewSchedulerWithClock lets tests inject a deterministic clock.
func NewSchedulerWithClock(s *scene.Scene, c *Clock) *Scheduler {
	return &Scheduler{
		Scene:   s,
		Journey: journey.NewController(),
		clock:   c,
		warned:  map[string]bool{},
	}
}

// AttachSurface sets the render target.
func (sc *Scheduler) AttachSurface(s Surface) { sc.surface = s }

// AttachUI sets the HUD sink.
func (sc *Scheduler) AttachUI(u UISink) { sc.ui = u }

// AttachEffects sets the glitch sink.
func (sc *Scheduler) AttachEffects(e EffectSink) { sc.effects = e }

// Observe registers a frame observer.
func (sc *Scheduler) Observe(o FrameObserver) { sc.obs = append(sc.obs, o) }

// Enqueue schedules a command for the next tick. Safe from any
// goroutine.
func (sc *Scheduler) Enqueue(c Command) { sc.queue.push(c) }

// Elapsed returns the accumulated simulation time.
func (sc *Scheduler) Elapsed() float64 { return sc.clock.Elapsed }

// FreeLooking reports whether pointer-driven orbit is engaged.
func (sc *Scheduler) FreeLooking() bool { return sc.look != nil }

// Tick runs one frame and returns the journey report for it.
func (sc *Scheduler) Tick() (journey.Frame, error) {
	if sc.Scene == nil {
		return journey.Frame{}, ErrNoScene
	}

	sc.buf = sc.queue.drain(sc.buf)
	for _, cmd := range sc.buf {
		sc.apply(cmd)
	}

	dt := sc.clock.Tick()
	t := sc.clock.Elapsed

	var frame journey.Frame
	switch {
	case sc.Journey.Engaged():
		// The journey keeps the camera through the settle delay, so
		// the deferred restore fires here even if free-look input
		// arrived meanwhile.
		frame = sc.Journey.Advance(&sc.Scene.Camera, t, dt)
		if frame.Done {
			sc.look = nil
		}
	case sc.look != nil:
		sc.look.Update(&sc.Scene.Camera)
	}

	// Scene elements are independently optional: a missing one skips
	// its step for the frame instead of aborting the tick.
	if sc.Scene.Wormhole != nil {
		sc.Scene.Wormhole.Animate(t)
	} else {
		sc.warnOnce("wormhole", "scene has no wormhole; dependent updates skipped")
	}
	if sc.Scene.Dust != nil {
		sc.Scene.Dust.Update(t)
	} else {
		sc.warnOnce("dust", "scene has no particle field; particle update skipped")
	}
	if sc.Scene.Rings != nil {
		sc.Scene.Rings.Update(t)
	} else {
		sc.warnOnce("rings", "scene has no ring set; ring update skipped")
	}
	sc.Scene.AdvanceCelestials(dt)

	sc.flushResize()

	if sc.effects != nil {
		sc.effects.SetGlitchIntensity(frame.Glitch)
	} else {
		sc.warnOnce("effects", "no effect sink attached; glitch intensity dropped")
	}
	if sc.ui != nil {
		sc.ui.JourneyProgress(frame.Percent, frame.Label, frame.Active)
	}

	if len(sc.obs) > 0 {
		stats := FrameStats{
			Elapsed: t,
			Delta:   dt,
			Percent: frame.Percent,
			Phase:   frame.Phase.String(),
			Glitch:  frame.Glitch,
			CameraZ: sc.Scene.Camera.Position.Z,
		}
		if w := sc.Scene.Wormhole; w != nil {
			r := w.Readout()
			stats.Distortion = w.Factor()
			stats.Throat = r.ThroatDiameter
			stats.Dilation = r.TimeDilation
			stats.Stability = r.Stability
		}
		for _, o := range sc.obs {
			o.ObserveFrame(stats)
		}
	}

	if sc.surface != nil {
		hud := HUD{Journey: frame, Elapsed: t}
		if sc.Scene.Wormhole != nil {
			hud.Readout = sc.Scene.Wormhole.Readout()
		}
		sc.surface.Render(sc.Scene, hud)
	} else {
		sc.warnOnce("surface", "no surface attached; frame not rendered")
	}
	return frame, nil
}

// HUD is the overlay state handed to the surface alongside the scene.
type HUD struct {
	Journey journey.Frame
	Readout mesh.Readout
	Elapsed float64
}

func (sc *Scheduler) apply(cmd Command) {
	switch c := cmd.(type) {
	case ToggleJourney:
		if sc.Journey.Engaged() {
			sc.Journey.Stop(&sc.Scene.Camera)
		} else {
			sc.Journey.Start(&sc.Scene.Camera)
			sc.look = nil
		}
	case SetDistortion:
		if sc.Scene.Wormhole == nil {
			sc.warnOnce("wormhole", "scene has no wormhole; dependent updates skipped")
			return
		}
		r := sc.Scene.Wormhole.SetDistortion(c.Factor)
		if sc.ui != nil {
			sc.ui.ReadoutChanged(r)
		}
	case SetKind:
		if sc.Scene.Wormhole == nil {
			sc.warnOnce("wormhole", "scene has no wormhole; dependent updates skipped")
			return
		}
		sc.Scene.Wormhole.SetKind(c.Kind)
	case PointerMoved:
		if sc.Journey.Active() {
			return
		}
		if sc.look == nil {
			sc.look = freelook.NewController(&sc.Scene.Camera)
		}
		sc.look.PointerMoved(c.X, c.Y)
	case Resize:
		sc.pendingW, sc.pendingH = c.Width, c.Height
		sc.resizeAt = sc.clock.now().Add(resizeQuiet)
		sc.resizePending = true
	}
}

func (sc *Scheduler) flushResize() {
	if !sc.resizePending || sc.clock.now().Before(sc.resizeAt) {
		return
	}
	sc.resizePending = false
	if sc.surface != nil {
		sc.surface.Resize(sc.pendingW, sc.pendingH)
	}
}

func (sc *Scheduler) warnOnce(key, msg string) {
	if sc.warned[key] {
		return
	}
	sc.warned[key] = true
	fmt.Fprintf(os.Stderr, "warning: %s\n", msg)
}
