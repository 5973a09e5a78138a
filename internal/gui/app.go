// Package gui is the raylib frontend: the same engine and scene as the
// terminal viewer, drawn with real depth, a chromatic glitch shader
// and the pad synth.
package gui

import (
	"fmt"
	"math/rand"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/avelev/wormview/internal/audio"
	"github.com/avelev/wormview/internal/compute"
	"github.com/avelev/wormview/internal/config"
	"github.com/avelev/wormview/internal/engine"
	"github.com/avelev/wormview/internal/geom"
	"github.com/avelev/wormview/internal/mesh"
	"github.com/avelev/wormview/internal/scene"
)

// Theme colors
var (
	ColBg      = rl.NewColor(8, 8, 16, 255)
	ColSurface = rl.NewColor(150, 110, 255, 255)
	ColRing    = rl.NewColor(255, 170, 60, 255)
	ColDust    = rl.NewColor(120, 200, 255, 180)
	ColBarrier = rl.NewColor(255, 60, 80, 160)
	ColPortal  = rl.NewColor(80, 255, 200, 160)
	ColText    = rl.NewColor(220, 220, 240, 255)
	ColTextDim = rl.NewColor(110, 110, 140, 255)
	ColStar    = rl.NewColor(200, 200, 220, 255)
)

type App struct {
	Scene *scene.Scene
	Sched *engine.Scheduler
	Cfg   config.Config

	Camera rl.Camera3D
	Font   rl.Font

	// HUD state fed by the scheduler.
	percent float64
	label   string
	flying  bool
	readout mesh.Readout
	glitch  float64

	distortion float64
	kind       mesh.Kind

	Stars []rl.Vector3

	// Post-processing
	TargetTex    rl.RenderTexture2D
	GlitchShader rl.Shader
	glitchLoc    int32
	timeLoc      int32

	// Optional subsystems
	Audio     *audio.Synth
	GLBackend *compute.OpenGLBackend
}

func initWindow() {
	rl.InitWindow(1280, 720, "wormview")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// NewApp builds the scene from cfg and wires the scheduler to this
// window.
func NewApp(cfg config.Config, withAudio, withCompute bool) *App {
	s := scene.New(scene.Options{
		Radius:         cfg.Scene.Radius,
		Length:         cfg.Scene.Length,
		RadialSegments: cfg.Scene.RadialSegments,
		HeightSegments: cfg.Scene.HeightSegments,
		ParticleCount:  cfg.Scene.Particles,
		RingCount:      cfg.Scene.Rings,
		CelestialCount: cfg.Scene.Celestials,
		Seed:           cfg.Scene.Seed,
		Amplitude:      cfg.Scene.Amplitude,
	})
	s.Wormhole.SetDistortion(cfg.Scene.DistortionFactor())
	kind := mesh.KindFromString(cfg.Scene.Kind)
	s.Wormhole.SetKind(kind)

	sched := engine.NewScheduler(s)
	sched.Journey.Wobble = cfg.Journey.Wobble
	sched.Journey.SettleDelay = cfg.Journey.SettleDelay

	app := &App{
		Scene:      s,
		Sched:      sched,
		Cfg:        cfg,
		Font:       loadFont(),
		distortion: cfg.Scene.Distortion,
		kind:       kind,
		readout:    s.Wormhole.Readout(),
		Camera: rl.NewCamera3D(
			rl.NewVector3(0, 0, float32(cfg.Scene.Length*1.75)),
			rl.NewVector3(0, 0, 0),
			rl.NewVector3(0, 1, 0),
			60.0,
			rl.CameraPerspective,
		),
	}

	sched.AttachSurface(app)
	sched.AttachUI(app)
	sched.AttachEffects(app)
	sched.Observe(app)

	// Starfield
	rng := rand.New(rand.NewSource(cfg.Scene.Seed))
	app.Stars = make([]rl.Vector3, 1200)
	for i := range app.Stars {
		app.Stars[i] = rl.NewVector3(
			float32((rng.Float64()-0.5)*900),
			float32((rng.Float64()-0.5)*900),
			float32(-300-rng.Float64()*600),
		)
	}

	app.TargetTex = rl.LoadRenderTexture(1280, 720)
	app.GlitchShader = rl.LoadShader("", "assets/shaders/glitch.fs")
	app.glitchLoc = rl.GetShaderLocation(app.GlitchShader, "intensity")
	app.timeLoc = rl.GetShaderLocation(app.GlitchShader, "elapsed")

	if withAudio {
		app.Audio = audio.NewSynth()
		if err := app.Audio.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: audio unavailable: %v\n", err)
			app.Audio = nil
		}
	}
	if withCompute {
		backend := compute.NewOpenGLBackend(s.Dust.Len())
		err := backend.Init("assets/shaders/particles.comp",
			s.Dust.Rest(), s.Dust.Frequencies())
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: compute backend unavailable: %v\n", err)
		} else {
			app.GLBackend = backend
			compute.SetBackend(backend)
		}
	}

	return app
}

// Run opens the window and blocks until it closes.
func Run(cfg config.Config, withAudio, withCompute bool) {
	initWindow()
	defer rl.CloseWindow()
	app := NewApp(cfg, withAudio, withCompute)
	defer app.shutdown()
	app.RunLoop()
}

func (a *App) shutdown() {
	if a.Audio != nil {
		a.Audio.Stop()
	}
	if a.GLBackend != nil {
		a.GLBackend.Cleanup()
		compute.SetBackend(compute.NewCPUBackend())
	}
	rl.UnloadRenderTexture(a.TargetTex)
	rl.UnloadShader(a.GlitchShader)
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		a.handleInput()
		if _, err := a.Sched.Tick(); err != nil {
			return
		}
	}
}

func (a *App) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Sched.Enqueue(engine.ToggleJourney{})
	}
	if rl.IsKeyPressed(rl.KeyK) {
		a.kind = (a.kind + 1) % 3
		a.Sched.Enqueue(engine.SetKind{Kind: a.kind})
	}
	if rl.IsKeyDown(rl.KeyRightBracket) {
		a.setDistortion(a.distortion + 1)
	}
	if rl.IsKeyDown(rl.KeyLeftBracket) {
		a.setDistortion(a.distortion - 1)
	}

	d := rl.GetMouseDelta()
	if d.X != 0 || d.Y != 0 {
		w, h := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
		pos := rl.GetMousePosition()
		a.Sched.Enqueue(engine.PointerMoved{
			X: float64(pos.X/w*2 - 1),
			Y: float64(pos.Y/h*2 - 1),
		})
	}

	if rl.IsWindowResized() {
		a.Sched.Enqueue(engine.Resize{
			Width:  rl.GetScreenWidth(),
			Height: rl.GetScreenHeight(),
		})
	}
}

func (a *App) setDistortion(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	a.distortion = v
	a.Sched.Enqueue(engine.SetDistortion{Factor: v / 100})
}

// Render implements engine.Surface. Tick calls it synchronously, so
// all raylib drawing happens here, inside the window thread.
func (a *App) Render(s *scene.Scene, hud engine.HUD) {
	a.readout = hud.Readout

	a.Camera.Position = vec3(s.Camera.Position)
	a.Camera.Target = vec3(s.Camera.Target)

	rl.BeginTextureMode(a.TargetTex)
	rl.ClearBackground(ColBg)
	rl.BeginMode3D(a.Camera)
	a.drawStars()
	a.drawScene(s)
	rl.EndMode3D()
	rl.EndTextureMode()

	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	rl.SetShaderValue(a.GlitchShader, a.glitchLoc,
		[]float32{float32(a.glitch)}, rl.ShaderUniformFloat)
	rl.SetShaderValue(a.GlitchShader, a.timeLoc,
		[]float32{float32(hud.Elapsed)}, rl.ShaderUniformFloat)

	rl.BeginShaderMode(a.GlitchShader)
	// Render textures are y-flipped.
	src := rl.NewRectangle(0, 0, float32(a.TargetTex.Texture.Width), -float32(a.TargetTex.Texture.Height))
	rl.DrawTextureRec(a.TargetTex.Texture, src, rl.NewVector2(0, 0), rl.White)
	rl.EndShaderMode()

	a.drawHUD()
	rl.EndDrawing()
}

// Resize implements engine.Surface, called after the debounce window.
func (a *App) Resize(w, h int) {
	rl.UnloadRenderTexture(a.TargetTex)
	a.TargetTex = rl.LoadRenderTexture(int32(w), int32(h))
}

// SetGlitchIntensity implements engine.EffectSink: the scalar drives
// the chromatic tear shader and, when audio is on, the noise floor.
func (a *App) SetGlitchIntensity(v float64) {
	a.glitch = v
	if a.Audio != nil {
		a.Audio.SetGlitchIntensity(v)
	}
}

// JourneyProgress implements engine.UISink.
func (a *App) JourneyProgress(percent float64, label string, active bool) {
	a.percent, a.label, a.flying = percent, label, active
}

// ReadoutChanged implements engine.UISink.
func (a *App) ReadoutChanged(r mesh.Readout) { a.readout = r }

// ObserveFrame implements engine.FrameObserver, feeding the synth its
// dilation control.
func (a *App) ObserveFrame(s engine.FrameStats) {
	if a.Audio != nil {
		a.Audio.UpdateDilation(s.Dilation)
	}
}

func vec3(v geom.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}
