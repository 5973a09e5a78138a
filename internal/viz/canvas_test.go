package viz

import (
	"strings"
	"testing"

	"github.com/avelev/wormview/internal/geom"
	"github.com/avelev/wormview/internal/scene"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(10, 5)
	c.Set(3, 6)
	if c.Grid[1][1] == 0x2800 {
		t.Fatal("Set lit nothing")
	}
	c.Unset(3, 6)
	if c.Grid[1][1] != 0x2800 {
		t.Fatalf("Unset left %#x", c.Grid[1][1])
	}
}

func TestCanvasBounds(t *testing.T) {
	c := NewCanvas(4, 4)
	// Out-of-range coordinates must be ignored, not panic.
	c.Set(-1, 0)
	c.Set(0, -1)
	c.Set(8, 0)
	c.Set(0, 16)
	for _, row := range c.Grid {
		for _, cell := range row {
			if cell != 0x2800 {
				t.Fatal("out-of-bounds Set modified the grid")
			}
		}
	}
}

func TestCanvasLineEndpoints(t *testing.T) {
	c := NewCanvas(20, 10)
	c.DrawLine(0, 0, 30, 30)
	if c.Grid[0][0] == 0x2800 {
		t.Error("line start not drawn")
	}
	if c.Grid[30/4][30/2] == 0x2800 {
		t.Error("line end not drawn")
	}
}

func TestCanvasResizeClears(t *testing.T) {
	c := NewCanvas(10, 5)
	c.Set(2, 2)
	c.Resize(6, 3)
	if c.Width != 6 || c.Height != 3 {
		t.Fatalf("size %dx%d, want 6x3", c.Width, c.Height)
	}
	if !strings.Contains(c.String(), string(rune(0x2800))) {
		t.Error("resized grid not blanked")
	}
	if len(c.Grid) != 3 || len(c.Grid[0]) != 6 {
		t.Error("grid not reallocated")
	}
}

func TestProjectorCentersOrigin(t *testing.T) {
	cam := &scene.Camera{Position: geom.Vec3{Z: 42}}
	p := NewProjector(cam)
	x, y, depth, ok := p.Project(geom.Vec3{}, 80, 24)
	if !ok {
		t.Fatal("origin not visible from default camera")
	}
	if x != 80 || y != 48 {
		t.Errorf("origin projected to (%d,%d), want canvas center (80,48)", x, y)
	}
	if depth != 42 {
		t.Errorf("depth %v, want 42", depth)
	}
}

func TestProjectorCullsBehindCamera(t *testing.T) {
	cam := &scene.Camera{Position: geom.Vec3{Z: 42}}
	p := NewProjector(cam)
	if _, _, _, ok := p.Project(geom.Vec3{Z: 50}, 80, 24); ok {
		t.Error("point behind the camera reported visible")
	}
}

func TestBuildSceneCoversElements(t *testing.T) {
	s := scene.New(scene.Options{
		ParticleCount: 10, RingCount: 2, CelestialCount: 3,
		RadialSegments: 6, HeightSegments: 4,
	})
	s.Rings.Update(0.1)
	var w Wireframe
	BuildScene(&w, s)
	// Surface grid alone contributes rings*radial edges at minimum.
	if len(w.edges) < 4*6 {
		t.Fatalf("wireframe has %d edges, expected the full surface grid", len(w.edges))
	}
}
