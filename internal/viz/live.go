package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/avelev/wormview/internal/config"
	"github.com/avelev/wormview/internal/engine"
	"github.com/avelev/wormview/internal/mesh"
	"github.com/avelev/wormview/internal/scene"
)

const (
	canvasWidth     = 80
	canvasHeight    = 24
	historyCapacity = 240
)

type TickMsg time.Time

// display implements the engine's Surface, UISink and EffectSink on
// one struct so the scheduler has a single place to report into.
type display struct {
	canvas *Canvas
	wire   Wireframe
	hud    engine.HUD

	glitch        float64
	glitchHistory []float64

	percent float64
	label   string
	flying  bool
	readout mesh.Readout
}

func (d *display) Render(s *scene.Scene, hud engine.HUD) {
	d.hud = hud
	BuildScene(&d.wire, s)
	proj := NewProjector(&s.Camera)
	d.canvas.Clear()
	Render(d.canvas, &d.wire, proj)
}

func (d *display) Resize(w, h int) {
	d.canvas.Resize(w, h)
}

func (d *display) SetGlitchIntensity(v float64) {
	d.glitch = v
	d.glitchHistory = append(d.glitchHistory, v)
	if len(d.glitchHistory) > historyCapacity {
		d.glitchHistory = d.glitchHistory[1:]
	}
}

func (d *display) JourneyProgress(percent float64, label string, active bool) {
	d.percent, d.label, d.flying = percent, label, active
}

func (d *display) ReadoutChanged(r mesh.Readout) { d.readout = r }

// Model is the bubbletea program. Each tick it drives the scheduler
// one frame; all input becomes enqueued commands, never direct scene
// mutation.
type Model struct {
	sched *engine.Scheduler
	disp  *display

	distortion float64 // slider position, 0-100
	kind       mesh.Kind
	fps        int

	termW, termH int
	showHelp     bool
	px, py       float64
}

// NewModel assembles the scene from cfg and wires the scheduler.
func NewModel(cfg config.Config) Model {
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

	d := &display{
		canvas:  NewCanvas(canvasWidth, canvasHeight),
		readout: s.Wormhole.Readout(),
	}
	sched.AttachSurface(d)
	sched.AttachUI(d)
	sched.AttachEffects(d)

	SetTheme(cfg.Display.Theme)
	fps := cfg.Display.FPS
	if fps < 1 {
		fps = 60
	}

	return Model{
		sched:      sched,
		disp:       d,
		distortion: cfg.Scene.Distortion,
		kind:       kind,
		fps:        fps,
	}
}

// Scheduler exposes the engine for observers (recording).
func (m Model) Scheduler() *engine.Scheduler { return m.sched }

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) }),
		tea.EnableMouseCellMotion,
	)
}

// Update handles input events and steps the engine.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.sched.Enqueue(engine.ToggleJourney{})
		case "]", "up":
			m.setDistortion(m.distortion + 5)
		case "[", "down":
			m.setDistortion(m.distortion - 5)
		case "k":
			m.kind = (m.kind + 1) % 3
			m.sched.Enqueue(engine.SetKind{Kind: m.kind})
		case "left":
			m.nudgePointer(-0.1, 0)
		case "right":
			m.nudgePointer(0.1, 0)
		case "w":
			m.nudgePointer(0, -0.1)
		case "s":
			m.nudgePointer(0, 0.1)
		case "t":
			names := ThemeNames()
			for i, name := range names {
				if name == CurrentTheme.Name {
					SetTheme(names[(i+1)%len(names)])
					break
				}
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.MouseMsg:
		if m.termW > 0 && m.termH > 0 {
			nx := float64(msg.X)/float64(m.termW)*2 - 1
			ny := float64(msg.Y)/float64(m.termH)*2 - 1
			m.px, m.py = nx, ny
			m.sched.Enqueue(engine.PointerMoved{X: nx, Y: ny})
		}
	case tea.WindowSizeMsg:
		m.termW, m.termH = msg.Width, msg.Height
		w := msg.Width - 50
		h := msg.Height - 8
		if w >= 20 && h >= 8 {
			m.sched.Enqueue(engine.Resize{Width: w, Height: h})
		}
	case TickMsg:
		if _, err := m.sched.Tick(); err != nil {
			return m, tea.Quit
		}
		return m, tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) setDistortion(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	m.distortion = v
	m.sched.Enqueue(engine.SetDistortion{Factor: v / 100})
}

func (m *Model) nudgePointer(dx, dy float64) {
	m.px += dx
	m.py += dy
	m.sched.Enqueue(engine.PointerMoved{X: m.px, Y: m.py})
}

// View renders the TUI interface.
func (m Model) View() string {
	d := m.disp
	canvasView := canvasStyle.Render(m.glitched(d.canvas.String()))

	var s strings.Builder
	s.WriteString(headerStyle.Render("WORMHOLE OBSERVATORY") + "\n")

	stats := m.statsPanel()
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, canvasView, stats))

	if len(d.glitchHistory) > 1 {
		graph := asciigraph.Plot(d.glitchHistory,
			asciigraph.Height(5),
			asciigraph.Width(70),
			asciigraph.Caption("glitch intensity"))
		s.WriteString("\n" + graphStyle.Render(graph))
	}

	if m.showHelp {
		s.WriteString(helpStyle.Render(
			"space journey  •  [/] distortion  •  k topology  •  mouse/arrows look  •  t theme  •  q quit"))
	} else {
		s.WriteString(helpStyle.Render("? help  •  q quit"))
	}
	return s.String()
}

// glitched shifts rows sideways in proportion to the current glitch
// intensity, the terminal stand-in for the GUI's chromatic tear.
func (m Model) glitched(frame string) string {
	g := m.disp.glitch
	if g < 0.05 {
		return frame
	}
	t := m.sched.Elapsed()
	rows := strings.Split(frame, "\n")
	for i, row := range rows {
		if row == "" {
			continue
		}
		off := int(g * 3 * math.Sin(t*37+float64(i)*1.7))
		if off > 0 {
			rows[i] = strings.Repeat(" ", off) + row
		} else if off < 0 && -off < len(row) {
			rows[i] = row[-off:]
		}
	}
	return strings.Join(rows, "\n")
}

func (m Model) statsPanel() string {
	d := m.disp
	var b strings.Builder

	if d.flying || d.percent > 0 {
		b.WriteString(journeyStyle.Render(d.label) + "\n")
		b.WriteString(ProgressBar(d.percent, 30) + "\n")
		b.WriteString(valueStyle.Render(fmt.Sprintf("%5.1f%%", d.percent)) + "\n\n")
	}

	r := d.readout
	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Topology", m.kind.String())
	row("Throat", fmt.Sprintf("%.2f", r.ThroatDiameter))
	b.WriteString(labelStyle.Render("Stability") + StabilityStyle(r.Stability).Render(r.Stability) + "\n")
	row("Dilation", fmt.Sprintf("%.2fx", r.TimeDilation))
	row("Distortion", ProgressBar(m.distortion, 16))
	row("Elapsed", fmt.Sprintf("%.1fs", m.sched.Elapsed()))
	if m.sched.FreeLooking() {
		b.WriteString("\n" + warnStyle.Render("FREE LOOK") + "\n")
	}
	return statsStyle.Render(b.String())
}

// Run starts the live terminal viewer and blocks until it exits.
func Run(cfg config.Config, observers ...engine.FrameObserver) error {
	m := NewModel(cfg)
	for _, o := range observers {
		m.sched.Observe(o)
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
