package journey

import (
	"testing"

	"github.com/avelev/wormview/internal/geom"
	"github.com/avelev/wormview/internal/scene"
)

func TestCompletionRearmsProgress(t *testing.T) {
	c := NewController()
	cam := &scene.Camera{Position: geom.Vec3{Z: 42}}
	c.Start(cam)

	elapsed := 0.0
	for i := 0; i < 100000 && !c.settling; i++ {
		c.Advance(cam, elapsed, 1.0/60)
		elapsed += 1.0 / 60
	}
	if !c.settling {
		t.Fatal("flight never completed")
	}
	if c.progress != 0 {
		t.Errorf("progress %v after completion, want 0", c.progress)
	}
}
