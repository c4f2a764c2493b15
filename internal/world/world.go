package world

import "github.com/san-kum/ballpit/internal/physics"

// World is an append-only list of balls in creation order.
type World struct {
	balls []physics.Ball
}

func New() *World {
	return &World{balls: make([]physics.Ball, 0, 64)}
}

func (w *World) Append(b physics.Ball) { w.balls = append(w.balls, b) }

func (w *World) Len() int { return len(w.balls) }

func (w *World) At(i int) physics.Ball { return w.balls[i] }

// Each visits balls in insertion order. fn may mutate the ball in place.
func (w *World) Each(fn func(i int, b *physics.Ball)) {
	for i := range w.balls {
		fn(i, &w.balls[i])
	}
}

func (w *World) Snapshot() []physics.Ball {
	out := make([]physics.Ball, len(w.balls))
	copy(out, w.balls)
	return out
}
