package mesh

import (
	"math"
	"testing"
)

func newTestWormhole() *Deformable {
	return NewWormhole(8, 24, 12, 16)
}

func TestSetDistortionIdempotent(t *testing.T) {
	d := newTestWormhole()
	for _, factor := range []float64{0, 0.25, 0.5, 0.9, 1} {
		d.SetDistortion(factor)
		first := flatten(d)
		d.SetDistortion(factor)
		second := flatten(d)
		for i := range first {
			if first[i] != second[i] {
				t.Fatalf("factor %v: component %d changed on repeated call", factor, i)
			}
		}
	}
}

func TestSetDistortionNoDriftAfterOtherFactors(t *testing.T) {
	d := newTestWormhole()
	d.SetDistortion(0.3)
	want := flatten(d)
	// Slider noise in between must not leave residue.
	d.SetDistortion(0.9)
	d.SetDistortion(0.01)
	d.SetDistortion(0.3)
	got := flatten(d)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("component %d drifted: %v != %v", i, got[i], want[i])
		}
	}
}

func flatten(d *Deformable) []float64 {
	out := make([]float64, 0, len(d.current)*3)
	for _, p := range d.current {
		out = append(out, p.X, p.Y, p.Z)
	}
	return out
}

func TestMinRadialScale(t *testing.T) {
	tests := []struct{ factor, want float64 }{
		{0.5, 0.45},
		{0, 0.9},
		{1, 0},
		{-3, 0.9}, // clamps
		{7, 0},    // clamps
	}
	for _, tt := range tests {
		got := MinRadialScale(tt.factor)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("MinRadialScale(%v) = %v, want %v", tt.factor, got, tt.want)
		}
	}
}

func TestPinchAppliesRadialOnly(t *testing.T) {
	d := newTestWormhole()
	d.SetDistortion(1)
	for i, p := range d.current {
		if p.Y != d.rest[i].Y {
			t.Fatalf("vertex %d: long axis moved (%v -> %v)", i, d.rest[i].Y, p.Y)
		}
	}
}

func TestPinchDepthAtThroat(t *testing.T) {
	// The midpoint ring of a tube with an even segment count sits at
	// hf=0, where the gaussian is 1 and the scale hits the minimum.
	d := newTestWormhole()
	d.SetDistortion(0.5)
	mid := (d.heights / 2) * d.radial
	rest, cur := d.rest[mid], d.current[mid]
	restR := math.Hypot(rest.X, rest.Z)
	curR := math.Hypot(cur.X, cur.Z)
	if math.Abs(curR/restR-0.45) > 1e-12 {
		t.Errorf("throat radial scale = %v, want 0.45", curR/restR)
	}
}

func TestNormalsRecomputedAndUnit(t *testing.T) {
	d := newTestWormhole()
	d.SetDistortion(0.2)
	before := d.normals[d.heights/2*d.radial]
	d.SetDistortion(0.95)
	after := d.normals[d.heights/2*d.radial]
	if before == after {
		t.Error("normals unchanged after vertex reposition")
	}
	for i, n := range d.normals {
		if math.Abs(n.Length()-1) > 1e-9 {
			t.Fatalf("normal %d not unit length: %v", i, n.Length())
		}
	}
}

func TestReadout(t *testing.T) {
	d := newTestWormhole()
	d.SetDistortion(0.5)
	r := d.Readout()
	if math.Abs(r.ThroatDiameter-2*8*0.45) > 1e-12 {
		t.Errorf("throat diameter = %v", r.ThroatDiameter)
	}
	if r.TimeDilation != 2 {
		t.Errorf("time dilation = %v, want 2", r.TimeDilation)
	}
	if r.Stability != "Stable" {
		t.Errorf("stability = %q, want Stable", r.Stability)
	}
}

func TestStabilityLabel(t *testing.T) {
	tests := []struct {
		factor float64
		want   string
	}{
		{0.9, "Unstable"},
		{0.71, "Unstable"},
		{0.7, "Stable"},
		{0.41, "Stable"},
		{0.4, "Excessive"},
		{0, "Excessive"},
	}
	for _, tt := range tests {
		if got := StabilityLabel(tt.factor); got != tt.want {
			t.Errorf("StabilityLabel(%v) = %q, want %q", tt.factor, got, tt.want)
		}
	}
}

func TestTopologyExclusive(t *testing.T) {
	d := newTestWormhole()

	d.SetKind(OneWay)
	if !d.Barrier.Visible || d.Portal.Visible {
		t.Fatal("OneWay: barrier should be visible, portal hidden")
	}

	d.SetKind(InterUniverse)
	if d.Barrier.Visible || !d.Portal.Visible {
		t.Fatal("InterUniverse: barrier should be hidden, portal visible")
	}

	d.SetKind(TwoWay)
	if d.Barrier.Visible || d.Portal.Visible {
		t.Fatal("TwoWay: both disks should be hidden")
	}
}

func TestAnimateDeterministic(t *testing.T) {
	a, b := newTestWormhole(), newTestWormhole()
	a.Animate(12.5)
	b.Animate(12.5)
	if a.Rotation != b.Rotation || a.Opacity != b.Opacity {
		t.Error("Animate is not a pure function of elapsed time")
	}
}
