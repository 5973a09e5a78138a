package mesh

import "github.com/avelev/wormview/internal/geom"

// Kind selects the wormhole topology variant.
type Kind int

const (
	TwoWay Kind = iota
	OneWay
	InterUniverse
)

func (k Kind) String() string {
	switch k {
	case OneWay:
		return "one-way"
	case InterUniverse:
		return "inter-universe"
	default:
		return "two-way"
	}
}

// KindFromString maps a config/CLI name to a Kind; unknown names fall
// back to TwoWay.
func KindFromString(s string) Kind {
	switch s {
	case "one-way", "oneway":
		return OneWay
	case "inter-universe", "interuniverse":
		return InterUniverse
	default:
		return TwoWay
	}
}

// Disk is an auxiliary flat scene element at one mouth of the tube
// (entrance barrier or exit-universe portal).
type Disk struct {
	Position geom.Vec3
	Radius   float64
	Visible  bool
	Opacity  float64
}

// SetKind toggles the auxiliary disks. The two are mutually exclusive:
// OneWay shows only the entrance barrier, InterUniverse only the exit
// portal, TwoWay hides both.
func (d *Deformable) SetKind(k Kind) {
	d.kind = k
	d.Barrier.Visible = k == OneWay
	d.Portal.Visible = k == InterUniverse
	if d.Barrier.Visible {
		d.Barrier.Opacity = 0.6
	} else {
		d.Barrier.Opacity = 0
	}
	if d.Portal.Visible {
		d.Portal.Opacity = 0.6
	} else {
		d.Portal.Opacity = 0
	}
}

// Kind returns the active topology variant.
func (d *Deformable) Kind() Kind { return d.kind }
