package world_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/world"
)

var _ = Describe("Scene", func() {
	var scene *world.Scene

	BeforeEach(func() {
		scene = world.NewScene(physics.DefaultParams(), 2024)
		scene.Resize(800, 600)
	})

	It("starts empty", func() {
		Expect(scene.World().Len()).To(BeZero())
		Expect(scene.FrameCount()).To(BeZero())
	})

	Context("when the surface is clicked", func() {
		It("appends exactly one ball at the click", func() {
			scene.Click(10, 10)
			Expect(scene.World().Len()).To(Equal(1))

			b := scene.World().At(0)
			Expect(b.X).To(Equal(10.0))
			Expect(b.Y).To(Equal(10.0))
			Expect(b.Radius).To(Equal(10.0))
			Expect(b.VX).To(BeNumerically(">=", -10))
			Expect(b.VX).To(BeNumerically("<", 10))
			Expect(b.VY).To(BeNumerically(">=", -10))
			Expect(b.VY).To(BeNumerically("<=", 0))
		})

		It("accepts clicks outside the surface", func() {
			scene.Click(-50, 9000)
			Expect(scene.World().Len()).To(Equal(1))
		})

		It("notifies the spawn hook", func() {
			var got []physics.Ball
			scene.OnSpawn(func(b physics.Ball) { got = append(got, b) })
			scene.Click(1, 2)
			scene.Click(3, 4)
			Expect(got).To(HaveLen(2))
			Expect(got[1].X).To(Equal(3.0))
		})
	})

	Context("when the window is resized", func() {
		It("changes only the viewport", func() {
			scene.Click(100, 100)
			scene.Click(700, 500)
			before := scene.World().Snapshot()

			scene.Resize(320, 240)

			Expect(scene.Viewport()).To(Equal(physics.Viewport{Width: 320, Height: 240}))
			Expect(scene.World().Snapshot()).To(Equal(before))
		})

		It("lets the next floor check pull a stranded ball back in", func() {
			scene.Add(physics.Ball{X: 100, Y: 500, Radius: 10})
			scene.Resize(800, 200)
			scene.Frame(world.Discard)
			Expect(scene.World().At(0).Y).To(Equal(190.0))
		})
	})

	Describe("Frame", func() {
		It("clears once then draws every ball before moving it", func() {
			scene.Add(physics.Ball{X: 400, Y: 300, VX: 5, VY: -8, Radius: 10, Color: "#abc"})
			scene.Add(physics.Ball{X: 100, Y: 100, VX: 1, VY: 1, Radius: 10, Color: "#def"})
			rec := &world.Recorder{}

			stats := scene.Frame(rec)

			Expect(rec.Clears).To(Equal(1))
			Expect(rec.Circles).To(Equal([]world.Circle{
				{X: 400, Y: 300, R: 10, Color: "#abc"},
				{X: 100, Y: 100, R: 10, Color: "#def"},
			}))
			Expect(stats.Balls).To(Equal(2))
			Expect(stats.Contacts).To(BeZero())
			Expect(scene.FrameCount()).To(Equal(1))

			b := scene.World().At(0)
			Expect(b.X).To(Equal(405.0))
			Expect(b.Y).To(Equal(292.0))
			Expect(b.VY).To(BeNumerically("~", -7.7, 1e-9))
		})

		It("counts floor impacts", func() {
			scene.Add(physics.Ball{X: 400, Y: 585, VY: 10, Radius: 10})
			stats := scene.Frame(world.Discard)
			Expect(stats.Floor).To(Equal(1))
			Expect(stats.Impacts).To(ConsistOf(BeNumerically("~", 10, 1e-9)))
			Expect(stats.Contacts.Has(physics.ContactFloor)).To(BeTrue())
		})

		It("brings a crowd to rest", func() {
			for i := 0; i < 20; i++ {
				scene.Click(float64(40*i+20), 300)
			}
			for i := 0; i < 6000; i++ {
				scene.Frame(world.Discard)
			}
			scene.World().Each(func(i int, b *physics.Ball) {
				Expect(b.Y).To(Equal(590.0), "ball %d", i)
				Expect(b.VX).To(BeZero(), "ball %d", i)
			})
			Expect(scene.Energy()).To(BeNumerically("<", 1.0))
		})
	})
})
