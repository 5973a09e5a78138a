package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/avelev/wormview/internal/analysis"
	"github.com/avelev/wormview/internal/config"
	"github.com/avelev/wormview/internal/engine"
	"github.com/avelev/wormview/internal/export"
	"github.com/avelev/wormview/internal/gui"
	"github.com/avelev/wormview/internal/mesh"
	"github.com/avelev/wormview/internal/scene"
	"github.com/avelev/wormview/internal/telemetry"
	"github.com/avelev/wormview/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	theme      string
	fps        int
	distortion float64
	kind       string
	record     bool
	// gui flags
	withAudio   bool
	withCompute bool
	// headless run
	frames int
	column string
	// export
	outFile string
	scale   float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "wormview",
		Short: "terminal wormhole visualizer",
		RunE:  runLive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".wormview", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.Flags().StringVar(&theme, "theme", "", "color theme")
	rootCmd.Flags().IntVar(&fps, "fps", 0, "target frame rate")
	rootCmd.Flags().Float64Var(&distortion, "distortion", -1, "distortion slider 0-100")
	rootCmd.Flags().StringVar(&kind, "kind", "", "wormhole topology: two-way, one-way, inter-universe")
	rootCmd.Flags().BoolVar(&record, "record", false, "record the session")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the raylib viewer",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			gui.Run(cfg, withAudio, withCompute)
			return nil
		},
	}
	guiCmd.Flags().BoolVar(&withAudio, "audio", false, "enable the pad synth")
	guiCmd.Flags().BoolVar(&withCompute, "compute", false, "run particles on the GPU")
	guiCmd.Flags().Float64Var(&distortion, "distortion", -1, "distortion slider 0-100")
	guiCmd.Flags().StringVar(&kind, "kind", "", "wormhole topology")

	journeyCmd := &cobra.Command{
		Use:   "journey",
		Short: "run a headless journey and record it",
		RunE:  runJourney,
	}
	journeyCmd.Flags().Float64Var(&distortion, "distortion", -1, "distortion slider 0-100")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded track",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&column, "track", "glitch", "track to plot: glitch, throat, camera_z, percent")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a recorded track",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&column, "track", "glitch", "track to analyze")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run as JSON to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return telemetry.New(dataDir).ExportJSON(args[0], os.Stdout)
		},
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a run's frame table as CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return telemetry.New(dataDir).ExportCSV(args[0], os.Stdout)
		},
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a recorded track as an SVG plot",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&column, "track", "glitch", "track to export")
	exportSVGCmd.Flags().StringVar(&outFile, "out", "track.svg", "output file")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render one frame to SVG without opening a viewer",
		RunE:  snapshot,
	}
	snapshotCmd.Flags().StringVar(&outFile, "out", "wormhole.svg", "output file")
	snapshotCmd.Flags().Float64Var(&scale, "scale", 4, "sub-pixel size in SVG units")
	snapshotCmd.Flags().Float64Var(&distortion, "distortion", -1, "distortion slider 0-100")
	snapshotCmd.Flags().StringVar(&kind, "kind", "", "wormhole topology")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.PresetNames() {
				p := config.Presets[name]
				fmt.Printf("%-10s distortion=%3.0f amplitude=%.1f rings=%d theme=%s\n",
					name, p.Scene.Distortion, p.Scene.Amplitude, p.Scene.Rings, p.Display.Theme)
			}
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a default config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "wormview.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.Save(path, config.Default()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the frame pipeline",
		RunE:  bench,
	}
	benchCmd.Flags().IntVar(&frames, "frames", 2000, "frames to simulate")

	rootCmd.AddCommand(guiCmd, journeyCmd, listCmd, plotCmd, analyzeCmd,
		exportCmd, exportCSVCmd, exportSVGCmd, snapshotCmd, presetsCmd,
		initCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves the effective config: preset or file, then flag
// overrides.
func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if preset != "" {
		p, ok := config.Presets[preset]
		if !ok {
			return cfg, fmt.Errorf("unknown preset %q (try: %v)", preset, config.PresetNames())
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if theme != "" {
		cfg.Display.Theme = theme
	}
	if fps > 0 {
		cfg.Display.FPS = fps
	}
	if distortion >= 0 {
		cfg.Scene.Distortion = distortion
	}
	if kind != "" {
		cfg.Scene.Kind = kind
	}
	return cfg, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !record {
		return viz.Run(cfg)
	}

	store := telemetry.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}
	rec := telemetry.NewRecorder("live")
	if err := viz.Run(cfg, rec); err != nil {
		return err
	}
	if rec.Len() == 0 {
		return nil
	}
	runID, err := store.Save(rec.Label, rec.Frames())
	if err != nil {
		return err
	}
	fmt.Printf("saved run %s (%d frames)\n", runID, rec.Len())
	return nil
}

// runJourney drives the engine at a fixed 60fps cadence with no
// display attached and records the full flight.
func runJourney(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	s := newScene(cfg)
	now := time.Unix(0, 0)
	clock := engine.NewClockAt(func() time.Time { return now })
	sched := engine.NewSchedulerWithClock(s, clock)
	sched.Journey.Wobble = cfg.Journey.Wobble
	sched.Journey.SettleDelay = cfg.Journey.SettleDelay
	sched.AttachSurface(nullSurface{})
	sched.AttachEffects(nullEffects{})

	rec := telemetry.NewRecorder("journey")
	sched.Observe(rec)

	sched.Enqueue(engine.ToggleJourney{})
	const step = 16 * time.Millisecond
	for i := 0; i < 100000; i++ {
		now = now.Add(step)
		frame, err := sched.Tick()
		if err != nil {
			return err
		}
		if frame.Done {
			break
		}
	}

	store := telemetry.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}
	runID, err := store.Save(rec.Label, rec.Frames())
	if err != nil {
		return err
	}
	fmt.Printf("saved run %s (%d frames, %.1fs of flight)\n",
		runID, rec.Len(), sched.Elapsed())
	return nil
}

func newScene(cfg config.Config) *scene.Scene {
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
	s.Wormhole.SetKind(mesh.KindFromString(cfg.Scene.Kind))
	return s
}

type nullSurface struct{}

func (nullSurface) Render(*scene.Scene, engine.HUD) {}
func (nullSurface) Resize(int, int)                 {}

type nullEffects struct{}

func (nullEffects) SetGlitchIntensity(float64) {}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := telemetry.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs recorded")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLABEL\tFRAMES\tDURATION\tPEAK GLITCH\tTIMESTAMP")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.1fs\t%.2f\t%s\n",
			r.ID, r.Label, r.Frames, r.Duration, r.PeakGlitch,
			r.Timestamp.Format(time.RFC3339))
	}
	return w.Flush()
}

func track(frames []engine.FrameStats, name string) ([]float64, error) {
	out := make([]float64, len(frames))
	for i, f := range frames {
		switch name {
		case "glitch":
			out[i] = f.Glitch
		case "throat":
			out[i] = f.Throat
		case "camera_z":
			out[i] = f.CameraZ
		case "percent":
			out[i] = f.Percent
		case "dilation":
			out[i] = f.Dilation
		default:
			return nil, fmt.Errorf("unknown track %q", name)
		}
	}
	return out, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	frames, err := telemetry.New(dataDir).LoadFrames(args[0])
	if err != nil {
		return err
	}
	values, err := track(frames, column)
	if err != nil {
		return err
	}
	if len(values) == 0 {
		return fmt.Errorf("run %s has no frames", args[0])
	}
	fmt.Println(asciigraph.Plot(values,
		asciigraph.Height(16),
		asciigraph.Width(100),
		asciigraph.Caption(fmt.Sprintf("%s - %s", args[0], column))))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	frames, err := telemetry.New(dataDir).LoadFrames(args[0])
	if err != nil {
		return err
	}
	values, err := track(frames, column)
	if err != nil {
		return err
	}
	deltas := make([]float64, len(frames))
	for i, f := range frames {
		deltas[i] = f.Delta
	}
	rate := analysis.MeanFrameRate(deltas)

	peak, err := analysis.DominantFrequency(values, rate)
	if err != nil {
		return err
	}
	fmt.Printf("track:      %s\n", column)
	fmt.Printf("frames:     %d\n", len(values))
	fmt.Printf("frame rate: %.1f fps\n", rate)
	fmt.Printf("rms:        %.4f\n", analysis.RMS(values))
	fmt.Printf("dominant:   %.3f Hz (power %.4f)\n", peak.Frequency, peak.Power)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	frames, err := telemetry.New(dataDir).LoadFrames(args[0])
	if err != nil {
		return err
	}
	values, err := track(frames, column)
	if err != nil {
		return err
	}
	svg := export.SeriesToSVG(values, 800, 300, "")
	if svg == "" {
		return fmt.Errorf("run %s has too few frames to plot", args[0])
	}
	if err := os.WriteFile(outFile, []byte(svg), 0o644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

// snapshot projects the scene once onto a Braille canvas and saves the
// result as SVG.
func snapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s := newScene(cfg)
	s.Wormhole.Animate(0)
	s.Dust.Update(0)
	s.Rings.Update(0)

	canvas := viz.NewCanvas(120, 40)
	var wire viz.Wireframe
	viz.BuildScene(&wire, s)
	viz.Render(canvas, &wire, viz.NewProjector(&s.Camera))

	t := viz.GetTheme(cfg.Display.Theme)
	svg := export.CanvasToSVG(canvas, scale, string(t.Primary))
	if err := os.WriteFile(outFile, []byte(svg), 0o644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func bench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s := newScene(cfg)
	now := time.Unix(0, 0)
	clock := engine.NewClockAt(func() time.Time { return now })
	sched := engine.NewSchedulerWithClock(s, clock)
	sched.AttachSurface(nullSurface{})
	sched.AttachEffects(nullEffects{})
	sched.Enqueue(engine.ToggleJourney{})

	start := time.Now()
	for i := 0; i < frames; i++ {
		now = now.Add(16 * time.Millisecond)
		if _, err := sched.Tick(); err != nil {
			return err
		}
	}
	wall := time.Since(start)
	fmt.Printf("%d frames in %v (%.0f fps, %d particles)\n",
		frames, wall, float64(frames)/wall.Seconds(), s.Dust.Len())
	return nil
}
