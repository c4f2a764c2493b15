// Package world holds the shared state of a running ball pit.
//
// A [Scene] owns the [World] (every ball ever spawned, in spawn order) and
// the [physics.Viewport]. Frontends hold a *Scene and call three methods from
// a single goroutine:
//
//   - [Scene.Resize] on start and whenever the host surface changes size
//   - [Scene.Click] for each pointer click
//   - [Scene.Frame] once per repaint, after which the frontend asks its host
//     for the next frame
//
// Scene is not safe for concurrent use.
package world
