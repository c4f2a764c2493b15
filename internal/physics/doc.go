// Package physics provides the ball entity and its per-frame update.
//
// A [Ball] lives in screen coordinates: x grows to the right and y grows
// downward, so gravity adds to the vertical velocity. One call to
// [Ball.Advance] is one frame with a unit time step:
//
//   - integrate position from velocity
//   - apply gravity
//   - resolve floor, ceiling and wall contact in that order
//
// Friction and the settle rule only run on a floor-contact frame. Ceiling
// and wall contact reflect velocity without any energy loss.
//
// # Example
//
//	sp := physics.NewSpawner(physics.DefaultParams(), 42)
//	b := sp.Spawn(400, 300)
//	vp := physics.Viewport{Width: 800, Height: 600}
//	contact := b.Advance(vp, physics.DefaultParams())
package physics
