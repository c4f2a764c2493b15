// Package analysis inspects recorded ball trajectories.
//
// The functions work on the samples a headless run records:
//
//   - [Track]: one ball's samples in frame order
//   - [Apexes]: the top of every arc (local minima of Y in screen coordinates)
//   - [SettleFrame]: the first frame from which a ball stays at rest
//   - [Restitution]: apex-to-apex rebound ratio
//   - [Plot]: asciigraph line chart of a series
//
// # Rebound heights
//
// Heights are measured up from the floor, so they shrink as a ball loses
// energy:
//
//	apexes := analysis.Apexes(samples, 0)
//	for _, a := range apexes {
//	    fmt.Println(a.Frame, floor-a.Y)
//	}
package analysis
