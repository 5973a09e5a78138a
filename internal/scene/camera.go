package scene

import "github.com/avelev/wormview/internal/geom"

// Camera is the single view into the scene. Both the guided journey
// and the free-look controller mutate it; only one of them owns it on
// any given frame.
type Camera struct {
	Position geom.Vec3
	Target   geom.Vec3
}

// Pose is a saved camera placement, used to restore the view after a
// journey completes or is cancelled.
type Pose struct {
	Position geom.Vec3
	Target   geom.Vec3
}

// Capture snapshots the current placement.
func (c *Camera) Capture() Pose {
	return Pose{Position: c.Position, Target: c.Target}
}

// Restore reapplies a saved placement.
func (c *Camera) Restore(p Pose) {
	c.Position = p.Position
	c.Target = p.Target
}
