// Package gui is the desktop window frontend built on raylib.
package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/ballpit/internal/audio"
	"github.com/san-kum/ballpit/internal/config"
	"github.com/san-kum/ballpit/internal/palette"
	"github.com/san-kum/ballpit/internal/world"
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
)

const telemetryLen = 300

type App struct {
	cfg       *config.Config
	scene     *world.Scene
	surface   *surface
	clicker   *audio.Clicker
	colors    *palette.Cycler
	running   bool
	telemetry []float64
}

// initWindow opens a resizable window at the configured viewport size.
func initWindow(cfg *config.Config) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), "ballpit")
	rl.SetTargetFPS(int32(cfg.FPS))
	rl.SetExitKey(0)
}

func NewApp(cfg *config.Config) *App {
	own := *cfg
	a := &App{
		cfg:     &own,
		surface: newSurface(ColBg),
		clicker: audio.New(cfg.Sound),
		colors:  &palette.Cycler{},
		running: true,
	}
	a.reset()
	return a
}

func (a *App) reset() {
	a.scene = world.NewScene(a.cfg.Physics, a.cfg.Seed)
	a.colors.Reset()
	if a.cfg.Rainbow {
		a.scene.SetColorSource(a.colors.Next)
	}
	a.scene.Resize(float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()))
	a.telemetry = a.telemetry[:0]
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Config) {
	initWindow(cfg)
	defer rl.CloseWindow()
	app := NewApp(cfg)
	defer app.clicker.Close()
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

// Update handles input. It returns false when the user quits.
func (a *App) Update() bool {
	if rl.IsWindowResized() {
		a.scene.Resize(float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()))
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		pos := rl.GetMousePosition()
		a.scene.Click(float64(pos.X), float64(pos.Y))
	}

	switch {
	case rl.IsKeyPressed(rl.KeyQ):
		return false
	case rl.IsKeyPressed(rl.KeySpace):
		a.running = !a.running
	case rl.IsKeyPressed(rl.KeyR):
		a.reset()
	case rl.IsKeyPressed(rl.KeyC):
		a.cfg.Rainbow = !a.cfg.Rainbow
		if a.cfg.Rainbow {
			a.scene.SetColorSource(a.colors.Next)
		} else {
			a.scene.SetColorSource(nil)
		}
	}
	return true
}

// Draw runs one scene frame inside the raylib drawing pass, then the HUD.
func (a *App) Draw() {
	rl.BeginDrawing()

	if a.running {
		st := a.scene.Frame(a.surface)
		for _, speed := range st.Impacts {
			a.clicker.Impact(speed)
		}
		a.telemetry = append(a.telemetry, a.scene.Energy())
		if len(a.telemetry) > telemetryLen {
			a.telemetry = a.telemetry[1:]
		}
	} else {
		a.scene.Draw(a.surface)
	}
	a.DrawHUD()

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())

	rl.DrawText("ballpit", 20, 20, 20, ColSelect)
	rl.DrawText(fmt.Sprintf("%d balls  frame %d", a.scene.World().Len(), a.scene.FrameCount()), 20, 46, 10, ColText)

	status, col := "RUNNING", ColSelect
	if !a.running {
		status, col = "PAUSED", ColTextDim
	}
	rl.DrawText(status, w-100, 20, 16, col)

	if pts := telemetry(a.telemetry, 20, float32(h-90), 300, 50); pts != nil {
		rl.DrawLineStrip(pts, ColAccent)
		rl.DrawText(fmt.Sprintf("E: %.0f", a.telemetry[len(a.telemetry)-1]), 330, h-50, 10, ColText)
	}

	rl.DrawText("[CLICK] SPAWN  [SPACE] PAUSE  [R] RESET  [C] COLORS  [Q] QUIT", 20, h-24, 10, ColTextDim)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), w-80, h-24, 10, ColTextDim)
}
