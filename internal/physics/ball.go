package physics

import "math"

// Contact records which boundary branches fired during one Advance.
type Contact uint8

const (
	ContactFloor Contact = 1 << iota
	ContactCeiling
	ContactWall
)

func (c Contact) Has(flag Contact) bool { return c&flag != 0 }

func (c Contact) String() string {
	if c == 0 {
		return "none"
	}
	s := ""
	for _, f := range []struct {
		flag Contact
		name string
	}{{ContactFloor, "floor"}, {ContactCeiling, "ceiling"}, {ContactWall, "wall"}} {
		if c.Has(f.flag) {
			if s != "" {
				s += "|"
			}
			s += f.name
		}
	}
	return s
}

// Canvas receives a ball's drawing command.
type Canvas interface {
	FillCircle(x, y, r float64, color string)
}

type Ball struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	VX     float64 `json:"vx"`
	VY     float64 `json:"vy"`
	Radius float64 `json:"radius"`
	Color  string  `json:"color"`
}

func (b *Ball) Draw(c Canvas) {
	c.FillCircle(b.X, b.Y, b.Radius, b.Color)
}

// Advance runs one frame of physics against the viewport and reports the
// boundary branches that fired.
func (b *Ball) Advance(vp Viewport, p Params) Contact {
	b.X += b.VX
	b.Y += b.VY
	b.VY += p.Gravity

	var contact Contact

	if b.Y > vp.Height-b.Radius {
		b.Y = vp.Height - b.Radius
		b.VY = -b.VY
		b.VY *= p.Bounce
		b.applyFriction(p)
		b.settle(p)
		contact |= ContactFloor
	}

	if b.Y < b.Radius {
		b.Y = b.Radius
		b.VY = -b.VY
		contact |= ContactCeiling
	}

	if b.X+b.Radius > vp.Width || b.X-b.Radius < 0 {
		b.VX = -b.VX
		contact |= ContactWall
	}

	return contact
}

func (b *Ball) applyFriction(p Params) {
	if b.VX > 0 {
		b.VX -= p.Friction
	}
	if b.VX < 0 {
		b.VX += p.Friction
	}
	b.VY += p.Friction
}

// settle zeroes velocity components that would otherwise bounce or slide
// forever at sub-pixel amplitude.
func (b *Ball) settle(p Params) {
	if b.VY < 0 && b.VY > -p.SettleVY {
		b.VY = 0
	}
	if math.Abs(b.VX) < p.SettleVX {
		b.VX = 0
	}
}

// AtRest reports whether the ball lies on the floor with no horizontal
// motion. A resting ball still picks up one frame of gravity before the floor
// branch zeroes it again, so VY alternates between 0 and Gravity.
func (b *Ball) AtRest(vp Viewport, p Params) bool {
	return b.VX == 0 && b.Y == vp.Floor(b.Radius) && b.VY >= 0 && b.VY <= p.Gravity
}

func (b *Ball) Speed() float64 { return math.Hypot(b.VX, b.VY) }

// Energy is the per-unit-mass kinetic energy plus the potential energy
// measured from the floor.
func (b *Ball) Energy(vp Viewport, p Params) float64 {
	ke := 0.5 * (b.VX*b.VX + b.VY*b.VY)
	pe := p.Gravity * (vp.Height - b.Radius - b.Y)
	return ke + pe
}

func (b *Ball) IsValid() bool {
	for _, v := range [...]float64{b.X, b.Y, b.VX, b.VY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
