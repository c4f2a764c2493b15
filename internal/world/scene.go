package world

import "github.com/san-kum/ballpit/internal/physics"

// FrameStats summarizes one call to Scene.Frame.
type FrameStats struct {
	Frame    int
	Balls    int
	Contacts physics.Contact
	Floor    int
	Ceiling  int
	Wall     int

	// Impacts holds the pre-bounce speed of every ball that hit the floor.
	Impacts []float64
}

type Scene struct {
	world    *World
	viewport physics.Viewport
	params   physics.Params
	spawner  *physics.Spawner
	frame    int
	onSpawn  func(physics.Ball)
	color    func() string
}

func NewScene(p physics.Params, seed int64) *Scene {
	return &Scene{
		world:   New(),
		params:  p,
		spawner: physics.NewSpawner(p, seed),
	}
}

func (s *Scene) World() *World                 { return s.world }
func (s *Scene) Viewport() physics.Viewport    { return s.viewport }
func (s *Scene) Params() *physics.Params       { return &s.params }
func (s *Scene) Spawner() *physics.Spawner     { return s.spawner }
func (s *Scene) FrameCount() int               { return s.frame }
func (s *Scene) OnSpawn(fn func(physics.Ball)) { s.onSpawn = fn }

// SetColorSource makes every click take its color from next. Nil restores
// the spawner's fixed color.
func (s *Scene) SetColorSource(next func() string) {
	s.color = next
	if next == nil {
		s.spawner.SetColor(s.params.Color)
	}
}

// Resize syncs the viewport to the host surface. Balls are left where they
// are; the next boundary check pulls them back in.
func (s *Scene) Resize(width, height float64) {
	s.viewport = physics.Viewport{Width: width, Height: height}
}

// Click spawns a ball at (x, y). There is no bounds check.
func (s *Scene) Click(x, y float64) physics.Ball {
	if s.color != nil {
		s.spawner.SetColor(s.color())
	}
	return s.Add(s.spawner.Spawn(x, y))
}

func (s *Scene) Add(b physics.Ball) physics.Ball {
	s.world.Append(b)
	if s.onSpawn != nil {
		s.onSpawn(b)
	}
	return b
}

// Frame clears the surface, then draws and advances every ball in spawn
// order. Each ball is drawn at its position from before this frame's move.
func (s *Scene) Frame(surf Surface) FrameStats {
	surf.Clear()
	stats := FrameStats{Frame: s.frame, Balls: s.world.Len()}
	s.world.Each(func(_ int, b *physics.Ball) {
		b.Draw(surf)
		speed := b.Speed()
		c := b.Advance(s.viewport, s.params)
		stats.Contacts |= c
		if c.Has(physics.ContactFloor) {
			stats.Floor++
			stats.Impacts = append(stats.Impacts, speed)
		}
		if c.Has(physics.ContactCeiling) {
			stats.Ceiling++
		}
		if c.Has(physics.ContactWall) {
			stats.Wall++
		}
	})
	s.frame++
	return stats
}

// Draw repaints every ball without advancing, for hosts that are paused.
func (s *Scene) Draw(surf Surface) {
	surf.Clear()
	s.world.Each(func(_ int, b *physics.Ball) { b.Draw(surf) })
}

// Energy is the total energy of all balls.
func (s *Scene) Energy() float64 {
	total := 0.0
	s.world.Each(func(_ int, b *physics.Ball) {
		total += b.Energy(s.viewport, s.params)
	})
	return total
}

func (s *Scene) Resting() int {
	n := 0
	s.world.Each(func(_ int, b *physics.Ball) {
		if b.AtRest(s.viewport, s.params) {
			n++
		}
	})
	return n
}
