package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/avelev/wormview/internal/engine"
)

func sampleFrames() []engine.FrameStats {
	frames := make([]engine.FrameStats, 0, 10)
	for i := 0; i < 10; i++ {
		frames = append(frames, engine.FrameStats{
			Elapsed:    float64(i) * 0.016,
			Delta:      0.016,
			Percent:    float64(i) * 10,
			Phase:      "approach",
			Glitch:     float64(i) * 0.0625,
			Distortion: 0.5,
			Throat:     7.2,
			Dilation:   2,
			Stability:  "Stable",
			CameraZ:    42 - float64(i),
		})
	}
	return frames
}

func TestSaveAndLoad(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}

	rec := NewRecorder("flight")
	for _, f := range sampleFrames() {
		rec.ObserveFrame(f)
	}
	runID, err := s.Save(rec.Label, rec.Frames())
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	meta, err := s.Load(runID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if meta.Frames != 10 || meta.Label != "flight" {
		t.Errorf("meta = %+v", meta)
	}
	if meta.PeakGlitch != 0.5625 {
		t.Errorf("peak glitch %v, want 0.5625", meta.PeakGlitch)
	}

	frames, err := s.LoadFrames(runID)
	if err != nil {
		t.Fatalf("load frames: %v", err)
	}
	if len(frames) != 10 {
		t.Fatalf("loaded %d frames, want 10", len(frames))
	}
	if frames[3].Phase != "approach" || frames[3].Stability != "Stable" {
		t.Errorf("string columns lost: %+v", frames[3])
	}
	if frames[9].CameraZ != 33 {
		t.Errorf("camera_z %v, want 33", frames[9].CameraZ)
	}
}

func TestListSkipsForeignDirs(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Save("a", sampleFrames()); err != nil {
		t.Fatal(err)
	}

	runs, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("listed %d runs, want 1", len(runs))
	}
}

func TestListEmptyBase(t *testing.T) {
	s := New("/nonexistent/telemetry/base")
	runs, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 0 {
		t.Fatal("expected no runs for a missing base dir")
	}
}

func TestExportCSV(t *testing.T) {
	s := New(t.TempDir())
	runID, err := s.Save("flight", sampleFrames())
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := os.Create(filepath.Join(t.TempDir(), "out.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer out.Close()
	if err := s.ExportCSV(runID, out); err != nil {
		t.Fatalf("export: %v", err)
	}

	data, err := os.ReadFile(out.Name())
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 11 {
		t.Fatalf("exported %d lines, want header + 10 rows", len(lines))
	}
	if !strings.HasPrefix(lines[0], "elapsed,delta,percent") {
		t.Errorf("header = %q", lines[0])
	}
}

func TestSaveEmptyRun(t *testing.T) {
	s := New(t.TempDir())
	runID, err := s.Save("empty", nil)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	frames, err := s.LoadFrames(runID)
	if err != nil {
		t.Fatalf("load frames: %v", err)
	}
	if len(frames) != 0 {
		t.Fatal("empty run produced frames")
	}
}
