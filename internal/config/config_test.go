package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wormview.yaml")

	want := Default()
	want.Scene.Distortion = 72
	want.Scene.Kind = "one-way"
	want.Display.Theme = "ember"
	if err := Save(path, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != want {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestLoadMissingFieldsKeepDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.yaml")
	partial := "scene:\n  distortion: 10\n"
	if err := os.WriteFile(path, []byte(partial), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Scene.Distortion != 10 {
		t.Errorf("distortion %v, want 10", got.Scene.Distortion)
	}
	if got.Scene.Radius != 8 || got.Display.FPS != 60 {
		t.Error("unset fields lost their defaults")
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if cfg.Scene.Radius != 8 {
		t.Error("error path should still return defaults")
	}
}

func TestDistortionFactor(t *testing.T) {
	cases := []struct {
		slider float64
		want   float64
	}{
		{0, 0},
		{50, 0.5},
		{100, 1},
		{-20, 0},
		{140, 1},
	}
	for _, tc := range cases {
		s := SceneConfig{Distortion: tc.slider}
		if got := s.DistortionFactor(); got != tc.want {
			t.Errorf("DistortionFactor(%v) = %v, want %v", tc.slider, got, tc.want)
		}
	}
}

func TestPresetsAreComplete(t *testing.T) {
	for _, name := range PresetNames() {
		p, ok := Presets[name]
		if !ok {
			t.Fatalf("preset %q missing from map", name)
		}
		if p.Scene.Radius == 0 || p.Display.FPS == 0 {
			t.Errorf("preset %q not built on defaults", name)
		}
	}
}
