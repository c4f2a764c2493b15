// Package term is the raw terminal frontend built on tcell. It draws with
// half-block characters and can click on every floor impact.
package term

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/san-kum/ballpit/internal/audio"
	"github.com/san-kum/ballpit/internal/config"
	"github.com/san-kum/ballpit/internal/palette"
	"github.com/san-kum/ballpit/internal/world"
)

type App struct {
	screen  tcell.Screen
	cfg     *config.Config
	scene   *world.Scene
	surface *Surface
	clicker *audio.Clicker
	colors  *palette.Cycler
	style   tcell.Style

	running bool
	pressed bool
	width   int
	height  int
}

// New initializes screen and sizes the scene to it.
func New(screen tcell.Screen, cfg *config.Config) (*App, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()

	own := *cfg
	a := &App{
		screen:  screen,
		cfg:     &own,
		surface: NewSurface(0, 0, cfg.CellWidth, cfg.CellHeight),
		clicker: audio.New(cfg.Sound),
		colors:  &palette.Cycler{},
		style:   tcell.StyleDefault,
		running: true,
	}
	a.reset()
	a.resize(screen.Size())
	return a, nil
}

func (a *App) Scene() *world.Scene { return a.scene }

func (a *App) reset() {
	a.scene = world.NewScene(a.cfg.Physics, a.cfg.Seed)
	a.colors.Reset()
	if a.cfg.Rainbow {
		a.scene.SetColorSource(a.colors.Next)
	}
	if a.width > 0 {
		a.scene.Resize(a.surface.PixelSize())
	}
}

// resize keeps the bottom row for the status line.
func (a *App) resize(w, h int) {
	a.width, a.height = w, h
	a.surface.Resize(w, h-1)
	a.scene.Resize(a.surface.PixelSize())
}

// HandleEvent applies one input event. It returns false when the user quits.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				a.running = !a.running
			case 'r':
				a.reset()
			case 'c':
				a.cfg.Rainbow = !a.cfg.Rainbow
				if a.cfg.Rainbow {
					a.scene.SetColorSource(a.colors.Next)
				} else {
					a.scene.SetColorSource(nil)
				}
			}
		}

	case *tcell.EventMouse:
		down := ev.Buttons()&tcell.Button1 != 0
		if down && !a.pressed {
			col, row := ev.Position()
			if row < a.height-1 {
				a.scene.Click(a.surface.CellCenter(col, row))
			}
		}
		a.pressed = down

	case *tcell.EventResize:
		a.resize(ev.Size())
		a.screen.Sync()
	}
	return true
}

// Frame runs one scene frame when not paused and repaints.
func (a *App) Frame() world.FrameStats {
	var st world.FrameStats
	if a.running {
		st = a.scene.Frame(a.surface)
		for _, speed := range st.Impacts {
			a.clicker.Impact(speed)
		}
	} else {
		a.scene.Draw(a.surface)
	}
	a.render()
	return st
}

func (a *App) render() {
	a.surface.Flush(a.screen, a.style)

	status := fmt.Sprintf(" balls %d  frame %d  energy %.0f ", a.scene.World().Len(), a.scene.FrameCount(), a.scene.Energy())
	if !a.running {
		status += " [paused]"
	}
	status += "  click:spawn  space:pause  r:reset  c:colors  q:quit"
	a.drawText(0, a.height-1, status, a.style.Reverse(true))
	a.screen.Show()
}

func (a *App) drawText(x, y int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		if col >= a.width {
			return
		}
		a.screen.SetContent(col, y, r, nil, style)
		col++
	}
	for ; col < a.width; col++ {
		a.screen.SetContent(col, y, ' ', nil, style)
	}
}

// Run pumps screen events on a goroutine and runs one frame per tick until
// the user quits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	fps := a.cfg.FPS
	if fps <= 0 {
		fps = config.DefaultFPS
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !a.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			a.Frame()
		}
	}
}

func (a *App) Close() {
	a.clicker.Close()
	a.screen.Fini()
}

// Run opens the terminal and plays until the user quits.
func Run(ctx context.Context, cfg *config.Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	app, err := New(screen, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	return app.Run(ctx)
}
