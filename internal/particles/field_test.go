package particles

import (
	"testing"
)

func TestUpdateDeterministic(t *testing.T) {
	f := NewField(500, 42, 10, 30, 24, 0.8)
	f.Update(3.7)
	snap := make([]float64, 0, f.Len()*3)
	for _, p := range f.Positions() {
		snap = append(snap, p.X, p.Y, p.Z)
	}
	// Jump around in time, then return: pure function of t, no hidden
	// accumulation.
	f.Update(100)
	f.Update(0.01)
	f.Update(3.7)
	for i, p := range f.Positions() {
		if p.X != snap[i*3] || p.Y != snap[i*3+1] || p.Z != snap[i*3+2] {
			t.Fatalf("particle %d not reproducible at same t", i)
		}
	}
}

func TestSeedReproducible(t *testing.T) {
	a := NewField(100, 7, 10, 30, 24, 0.8)
	b := NewField(100, 7, 10, 30, 24, 0.8)
	for i := range a.Rest() {
		if a.Rest()[i] != b.Rest()[i] || a.Frequencies()[i] != b.Frequencies()[i] {
			t.Fatalf("particle %d differs across same-seed fields", i)
		}
	}
}

func TestRestWithinShell(t *testing.T) {
	f := NewField(1000, 1, 10, 30, 24, 0.8)
	for i, p := range f.Rest() {
		r := p.X*p.X + p.Z*p.Z
		if r < 10*10-1e-9 || r > 30*30+1e-9 {
			t.Fatalf("particle %d outside radial shell: r2=%v", i, r)
		}
		if p.Y < -12 || p.Y > 12 {
			t.Fatalf("particle %d outside axial extent: y=%v", i, p.Y)
		}
	}
}

func BenchmarkUpdate(b *testing.B) {
	f := NewField(10000, 42, 10, 30, 24, 0.8)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Update(float64(i) * 0.016)
	}
}
