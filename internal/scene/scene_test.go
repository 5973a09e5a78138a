package scene

import (
	"math"
	"testing"
)

func TestNewAppliesDefaults(t *testing.T) {
	s := New(Options{})
	if s.Wormhole == nil || s.Dust == nil || s.Rings == nil {
		t.Fatal("scene missing core elements")
	}
	if s.Wormhole.Radius != 8 || s.Wormhole.Length != 24 {
		t.Errorf("wormhole %vx%v, want 8x24", s.Wormhole.Radius, s.Wormhole.Length)
	}
	if s.Dust.Len() != 800 {
		t.Errorf("particle count %d, want 800", s.Dust.Len())
	}
	if len(s.Rings.Rings) != 6 {
		t.Errorf("ring count %d, want 6", len(s.Rings.Rings))
	}
	if len(s.Celestials) != 12 {
		t.Errorf("celestial count %d, want 12", len(s.Celestials))
	}
	if s.Camera.Position.Z != 42 {
		t.Errorf("camera start z=%v, want 42", s.Camera.Position.Z)
	}
}

func TestSeedReproducible(t *testing.T) {
	a, b := New(Options{Seed: 99}), New(Options{Seed: 99})
	for i := range a.Celestials {
		if a.Celestials[i] != b.Celestials[i] {
			t.Fatalf("celestial %d differs across same-seed scenes", i)
		}
	}
}

func TestAdvanceCelestialsIntegratesDelta(t *testing.T) {
	s := New(Options{CelestialCount: 3})
	start := s.Celestials[0].Angle
	rate := s.Celestials[0].SpinRate
	s.AdvanceCelestials(0.5)
	s.AdvanceCelestials(0.5)
	got := s.Celestials[0].Angle
	if math.Abs(got-(start+rate)) > 1e-12 {
		t.Errorf("angle %v after 1s, want %v", got, start+rate)
	}
	// Zero delta freezes the body.
	s.AdvanceCelestials(0)
	if s.Celestials[0].Angle != got {
		t.Error("celestial moved with zero delta")
	}
}

func TestCameraCaptureRestore(t *testing.T) {
	s := New(Options{})
	pose := s.Camera.Capture()
	s.Camera.Position.X = 99
	s.Camera.Target.Y = -3
	s.Camera.Restore(pose)
	if s.Camera.Position != pose.Position || s.Camera.Target != pose.Target {
		t.Error("restore did not reapply captured pose")
	}
}
