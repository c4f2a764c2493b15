//go:build js && wasm

// Command ballpit-web runs the ball pit on an HTML canvas. Build with
// GOOS=js GOARCH=wasm and load it next to index.html.
package main

import (
	"log"
	"math"
	"syscall/js"
	"time"

	"github.com/san-kum/ballpit/internal/palette"
	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/world"
)

// canvasSurface draws onto a 2D rendering context.
type canvasSurface struct {
	ctx    js.Value
	width  float64
	height float64
}

func (s *canvasSurface) Clear() {
	s.ctx.Call("clearRect", 0, 0, s.width, s.height)
}

func (s *canvasSurface) FillCircle(x, y, r float64, color string) {
	s.ctx.Call("beginPath")
	s.ctx.Call("arc", x, y, r, 0, 2*math.Pi)
	s.ctx.Set("fillStyle", color)
	s.ctx.Call("fill")
	s.ctx.Call("closePath")
}

func main() {
	win := js.Global()
	doc := win.Get("document")

	canvasEl := doc.Call("getElementById", "ballpit")
	if canvasEl.IsNull() || canvasEl.IsUndefined() {
		log.Println("ballpit: no <canvas id=\"ballpit\"> on the page")
		return
	}

	surf := &canvasSurface{ctx: canvasEl.Call("getContext", "2d")}
	scene := world.NewScene(physics.DefaultParams(), time.Now().UnixNano())

	query := win.Get("location").Get("search").String()
	if query == "?rainbow" {
		cycler := &palette.Cycler{}
		scene.SetColorSource(cycler.Next)
	}

	resize := func() {
		surf.width = win.Get("innerWidth").Float()
		surf.height = win.Get("innerHeight").Float()
		canvasEl.Set("width", surf.width)
		canvasEl.Set("height", surf.height)
		scene.Resize(surf.width, surf.height)
	}
	resize()

	onResize := js.FuncOf(func(this js.Value, args []js.Value) any {
		resize()
		return nil
	})
	win.Call("addEventListener", "resize", onResize)

	onClick := js.FuncOf(func(this js.Value, args []js.Value) any {
		e := args[0]
		rect := canvasEl.Call("getBoundingClientRect")
		x := e.Get("clientX").Float() - rect.Get("left").Float()
		y := e.Get("clientY").Float() - rect.Get("top").Float()
		scene.Click(x, y)
		return nil
	})
	canvasEl.Call("addEventListener", "click", onClick)

	var renderFrame js.Func
	renderFrame = js.FuncOf(func(this js.Value, args []js.Value) any {
		scene.Frame(surf)
		win.Call("requestAnimationFrame", renderFrame)
		return nil
	})
	win.Call("requestAnimationFrame", renderFrame)

	select {}
}
