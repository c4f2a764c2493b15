package physics

import "math/rand"

// Spawner creates balls with randomized launch velocity. It is not safe for
// concurrent use.
type Spawner struct {
	params Params
	rnd    *rand.Rand
}

func NewSpawner(p Params, seed int64) *Spawner {
	return &Spawner{params: p, rnd: rand.New(rand.NewSource(seed))}
}

// Spawn returns a ball at (x, y) with vx in [-MaxSpeedX, MaxSpeedX) and
// vy in (-MaxSpeedY, 0].
func (s *Spawner) Spawn(x, y float64) Ball {
	vx := (s.rnd.Float64() - 0.5) * 2 * s.params.MaxSpeedX
	vy := s.rnd.Float64() * -s.params.MaxSpeedY
	return s.SpawnWithVelocity(x, y, vx, vy)
}

func (s *Spawner) SpawnWithVelocity(x, y, vx, vy float64) Ball {
	return Ball{
		X:      x,
		Y:      y,
		VX:     vx,
		VY:     vy,
		Radius: s.params.Radius,
		Color:  s.params.Color,
	}
}

func (s *Spawner) SetColor(color string) { s.params.Color = color }

func (s *Spawner) Params() Params { return s.params }
