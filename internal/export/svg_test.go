package export

import (
	"strings"
	"testing"

	"github.com/avelev/wormview/internal/viz"
)

func TestCanvasToSVG(t *testing.T) {
	c := viz.NewCanvas(4, 2)
	c.Set(0, 0)
	c.Set(7, 7)

	svg := CanvasToSVG(c, 4, "")
	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Fatal("missing XML header")
	}
	if got := strings.Count(svg, "<circle"); got != 2 {
		t.Errorf("%d circles, want 2", got)
	}
	if !strings.Contains(svg, `width="32"`) || !strings.Contains(svg, `height="32"`) {
		t.Error("wrong document dimensions")
	}
}

func TestCanvasToSVGNil(t *testing.T) {
	if CanvasToSVG(nil, 4, "") != "" {
		t.Error("nil canvas should produce an empty document")
	}
}

func TestSeriesToSVG(t *testing.T) {
	svg := SeriesToSVG([]float64{0, 0.5, 1, 0.5, 0}, 200, 100, "")
	if !strings.Contains(svg, "<polyline") {
		t.Fatal("missing polyline")
	}
	if strings.Count(svg, ",") < 5 {
		t.Error("polyline has too few points")
	}
	if SeriesToSVG([]float64{1}, 200, 100, "") != "" {
		t.Error("single point should produce an empty document")
	}
}
