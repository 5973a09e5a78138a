package journey_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/avelev/wormview/internal/geom"
	"github.com/avelev/wormview/internal/journey"
	"github.com/avelev/wormview/internal/scene"
)

const dt = 1.0 / 60

// fly advances the controller with fixed 60fps steps until pred
// returns true or the step budget runs out, returning the last frame.
func fly(c *journey.Controller, cam *scene.Camera, t *float64, pred func(journey.Frame) bool) journey.Frame {
	var f journey.Frame
	for i := 0; i < 100000; i++ {
		f = c.Advance(cam, *t, dt)
		*t += dt
		if pred(f) {
			return f
		}
	}
	Fail("journey never reached expected state")
	return f
}

var _ = Describe("Controller", func() {
	var (
		c   *journey.Controller
		cam *scene.Camera
		t   float64
	)

	BeforeEach(func() {
		c = journey.NewController()
		cam = &scene.Camera{Position: geom.Vec3{X: 5, Z: 42}}
		t = 0
	})

	Describe("starting", func() {
		It("takes ownership of the camera on the first frame", func() {
			c.Start(cam)
			f := c.Advance(cam, t, dt)
			Expect(f.Active).To(BeTrue())
			Expect(f.Phase).To(Equal(journey.PhaseApproach))
			Expect(math.Abs(cam.Position.X)).To(BeNumerically("<", 1),
				"flight hugs the tube axis")
		})

		It("reports no motion while idle", func() {
			before := cam.Position
			f := c.Advance(cam, t, dt)
			Expect(f.Active).To(BeFalse())
			Expect(cam.Position).To(Equal(before))
		})
	})

	Describe("the approach leg", func() {
		It("closes from the start depth toward the mouth", func() {
			c.Start(cam)
			first := c.Advance(cam, t, dt)
			z0 := cam.Position.Z
			t += dt
			fly(c, cam, &t, func(f journey.Frame) bool { return f.Percent > 15 })
			Expect(first.Label).To(Equal(journey.LabelApproach))
			Expect(cam.Position.Z).To(BeNumerically("<", z0))
			Expect(cam.Position.Z).To(BeNumerically(">", c.MouthDepth))
		})

		It("ramps glitch up to 0.3 by the mouth", func() {
			c.Start(cam)
			f := fly(c, cam, &t, func(f journey.Frame) bool { return f.Phase == journey.PhaseThroat })
			Expect(f.Glitch).To(BeNumerically("~", 0.3, 0.05))
		})

		It("wobbles laterally, fading toward the mouth", func() {
			c.Start(cam)
			var early, late float64
			fly(c, cam, &t, func(f journey.Frame) bool {
				off := math.Hypot(cam.Position.X, cam.Position.Y)
				if f.Percent < 8 && off > early {
					early = off
				}
				if f.Phase == journey.PhaseApproach && f.Percent > 25 && off > late {
					late = off
				}
				return f.Phase == journey.PhaseThroat
			})
			Expect(early).To(BeNumerically(">", 0), "approach never left the axis")
			Expect(early).To(BeNumerically(">", late), "wobble must fade toward the mouth")
		})
	})

	Describe("the throat passage", func() {
		It("peaks the glitch envelope mid-throat", func() {
			c.Start(cam)
			peak := 0.0
			fly(c, cam, &t, func(f journey.Frame) bool {
				if f.Phase == journey.PhaseThroat && f.Glitch > peak {
					peak = f.Glitch
				}
				return f.Phase == journey.PhaseExit
			})
			Expect(peak).To(BeNumerically(">", 0.95))
		})

		It("shakes the camera off-axis", func() {
			c.Start(cam)
			maxOff := 0.0
			fly(c, cam, &t, func(f journey.Frame) bool {
				if f.Phase == journey.PhaseThroat {
					off := math.Hypot(cam.Position.X, cam.Position.Y)
					if off > maxOff {
						maxOff = off
					}
				}
				return f.Phase == journey.PhaseExit
			})
			Expect(maxOff).To(BeNumerically(">", 0.5))
		})

		It("labels the passage", func() {
			c.Start(cam)
			f := fly(c, cam, &t, func(f journey.Frame) bool { return f.Phase == journey.PhaseThroat })
			Expect(f.Label).To(Equal(journey.LabelThroat))
		})
	})

	Describe("the exit leg", func() {
		It("decays glitch quadratically to zero", func() {
			c.Start(cam)
			var last float64 = 1
			fly(c, cam, &t, func(f journey.Frame) bool {
				if f.Phase == journey.PhaseExit {
					Expect(f.Glitch).To(BeNumerically("<=", last+1e-9))
					last = f.Glitch
				}
				return f.Phase == journey.PhaseSettling
			})
			Expect(last).To(BeNumerically("<", 0.01))
		})

		It("looks onward, away from the throat", func() {
			c.Start(cam)
			fly(c, cam, &t, func(f journey.Frame) bool { return f.Phase == journey.PhaseExit })
			Expect(cam.Target.Z).To(BeNumerically("<", cam.Position.Z))
		})

		It("shakes off-axis with a quadratic fade", func() {
			c.Start(cam)
			var early, late float64
			fly(c, cam, &t, func(f journey.Frame) bool {
				if f.Phase != journey.PhaseExit {
					return f.Phase == journey.PhaseSettling
				}
				off := math.Hypot(cam.Position.X, cam.Position.Y)
				if f.Percent < 72 && off > early {
					early = off
				}
				if f.Percent > 90 && off > late {
					late = off
				}
				return false
			})
			Expect(early).To(BeNumerically(">", 0), "exit never left the axis")
			Expect(early).To(BeNumerically(">", late), "shake must fade with the glitch")
		})
	})

	Describe("progress reporting", func() {
		It("is monotonic and reaches 100", func() {
			c.Start(cam)
			prev := -1.0
			f := fly(c, cam, &t, func(f journey.Frame) bool {
				Expect(f.Percent).To(BeNumerically(">=", prev))
				prev = f.Percent
				return f.Phase == journey.PhaseSettling
			})
			Expect(f.Percent).To(Equal(100.0))
		})

		It("does not advance with a zero delta", func() {
			c.Start(cam)
			a := c.Advance(cam, t, dt)
			b := c.Advance(cam, t, 0)
			Expect(b.Percent).To(Equal(a.Percent))
		})
	})

	Describe("completion", func() {
		It("holds the far view for the settle delay, then restores the saved pose once", func() {
			saved := cam.Capture()
			c.Start(cam)
			fly(c, cam, &t, func(f journey.Frame) bool { return f.Phase == journey.PhaseSettling })
			Expect(cam.Position.Z).To(Equal(c.FarExit))

			f := fly(c, cam, &t, func(f journey.Frame) bool { return f.Done })
			Expect(f.Active).To(BeFalse())
			Expect(cam.Position).To(Equal(saved.Position))
			Expect(c.Engaged()).To(BeFalse())

			// Further ticks are inert and never re-restore.
			cam.Position.X = 123
			f = c.Advance(cam, t, dt)
			Expect(f.Done).To(BeFalse())
			Expect(cam.Position.X).To(Equal(123.0))
		})

		It("keeps restore pending while settling", func() {
			c.Start(cam)
			fly(c, cam, &t, func(f journey.Frame) bool { return f.Phase == journey.PhaseSettling })
			f := c.Advance(cam, t, dt)
			Expect(f.Active).To(BeTrue())
			Expect(c.Engaged()).To(BeTrue())
			Expect(f.Done).To(BeFalse())
		})
	})

	Describe("cancellation", func() {
		It("restores the saved pose immediately mid-flight", func() {
			saved := cam.Capture()
			c.Start(cam)
			fly(c, cam, &t, func(f journey.Frame) bool { return f.Percent > 20 })
			c.Stop(cam)
			Expect(cam.Position).To(Equal(saved.Position))
			Expect(c.Engaged()).To(BeFalse())
		})

		It("is a no-op when idle", func() {
			before := cam.Position
			c.Stop(cam)
			Expect(cam.Position).To(Equal(before))
		})
	})

	Describe("re-entry", func() {
		It("recaptures the camera's current pose, not the original one", func() {
			c.Start(cam)
			fly(c, cam, &t, func(f journey.Frame) bool { return f.Done })

			cam.Position = geom.Vec3{X: -7, Y: 2, Z: 30}
			moved := cam.Capture()
			c.Start(cam)
			fly(c, cam, &t, func(f journey.Frame) bool { return f.Done })
			Expect(cam.Position).To(Equal(moved.Position))
		})
	})
})
