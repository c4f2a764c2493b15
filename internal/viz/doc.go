// Package viz is the terminal frontend built on Bubble Tea.
//
// The package draws balls on a braille canvas next to a stats panel:
//
//   - [Model]: live session hosting a [world.Scene]
//   - [Canvas]: braille grid that doubles as a [world.Surface]
//   - Theme selection with 5 built-in color schemes
//
// A terminal cell stands for CellWidth x CellHeight viewport pixels (8x16 by
// default), so a braille dot is 4x4 pixels and the physics runs in the same
// pixel units as the other frontends.
//
// # Key Bindings
//
//	Click - Spawn a ball
//	Space - Pause/Resume
//	R     - Remove all balls
//	T     - Cycle color themes
//	C     - Toggle rainbow spawn colors
//	?     - Show help overlay
package viz
