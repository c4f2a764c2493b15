package physics_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ballpit/internal/physics"
)

type circle struct {
	x, y, r float64
	color   string
}

type recordingCanvas struct{ circles []circle }

func (c *recordingCanvas) FillCircle(x, y, r float64, color string) {
	c.circles = append(c.circles, circle{x, y, r, color})
}

var _ = Describe("Spawner", func() {
	var sp *physics.Spawner

	BeforeEach(func() {
		sp = physics.NewSpawner(physics.DefaultParams(), 1)
	})

	It("places the ball at the click with default radius and color", func() {
		b := sp.Spawn(10, 10)
		Expect(b.X).To(Equal(10.0))
		Expect(b.Y).To(Equal(10.0))
		Expect(b.Radius).To(Equal(physics.DefaultRadius))
		Expect(b.Color).To(Equal(physics.DefaultColor))
	})

	It("launches within the velocity ranges", func() {
		for i := 0; i < 1000; i++ {
			b := sp.Spawn(0, 0)
			Expect(b.VX).To(BeNumerically(">=", -10))
			Expect(b.VX).To(BeNumerically("<", 10))
			Expect(b.VY).To(BeNumerically(">", -10))
			Expect(b.VY).To(BeNumerically("<=", 0))
		}
	})

	It("is reproducible for a seed", func() {
		other := physics.NewSpawner(physics.DefaultParams(), 1)
		for i := 0; i < 10; i++ {
			Expect(sp.Spawn(5, 5)).To(Equal(other.Spawn(5, 5)))
		}
	})

	It("honors a forced velocity", func() {
		b := sp.SpawnWithVelocity(400, 300, 5, -8)
		Expect(b.VX).To(Equal(5.0))
		Expect(b.VY).To(Equal(-8.0))
	})
})

var _ = Describe("Ball", func() {
	vp := physics.Viewport{Width: 800, Height: 600}

	It("draws one circle at its pre-advance position", func() {
		b := physics.Ball{X: 40, Y: 50, VX: 3, VY: 3, Radius: 10, Color: "#fff"}
		c := &recordingCanvas{}
		b.Draw(c)
		b.Advance(vp, physics.DefaultParams())
		Expect(c.circles).To(Equal([]circle{{40, 50, 10, "#fff"}}))
	})

	DescribeTable("floor contact with slow horizontal speed stops sliding",
		func(vx float64) {
			b := physics.Ball{X: 400, Y: 585, VX: vx, VY: 10, Radius: 10}
			contact := b.Advance(vp, physics.DefaultParams())
			Expect(contact.Has(physics.ContactFloor)).To(BeTrue())
			Expect(b.VX).To(BeZero())
		},
		Entry("just above zero", 0.01),
		Entry("mid range", 0.6),
		Entry("just below threshold", 1.09),
		Entry("negative", -0.8),
	)

	DescribeTable("floor contact with a weak rebound stops bouncing",
		func(y, vy float64) {
			b := physics.Ball{X: 400, Y: y, VX: 0, VY: vy, Radius: 10}
			contact := b.Advance(vp, physics.DefaultParams())
			Expect(contact.Has(physics.ContactFloor)).To(BeTrue())
			Expect(b.VY).To(BeZero())
		},
		Entry("tiny impact", 589.9, 0.2),
		Entry("moderate impact", 589.0, 2.0),
		Entry("just under threshold", 588.0, 2.7),
	)

	It("eventually settles on the floor", func() {
		sp := physics.NewSpawner(physics.DefaultParams(), 99)
		b := sp.Spawn(400, 500)
		settled := false
		for frame := 0; frame < 5000 && !settled; frame++ {
			b.Advance(vp, physics.DefaultParams())
			settled = b.AtRest(vp, physics.DefaultParams())
		}
		Expect(settled).To(BeTrue())
	})

	It("loses energy on a floor bounce", func() {
		p := physics.DefaultParams()
		b := physics.Ball{X: 400, Y: 585, VY: 10, Radius: 10}
		before := b.Energy(vp, p)
		b.Advance(vp, p)
		Expect(b.Energy(vp, p)).To(BeNumerically("<", before))
	})
})
