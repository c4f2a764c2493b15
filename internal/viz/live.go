package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/ballpit/internal/audio"
	"github.com/san-kum/ballpit/internal/config"
	"github.com/san-kum/ballpit/internal/palette"
	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/world"
)

const (
	panelWidth      = 36
	historyCapacity = 240
)

var (
	statsStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).Padding(0, 1).Width(panelWidth - 1)
	labelStyle = lipgloss.NewStyle().Width(12)
	graphStyle = lipgloss.NewStyle().Padding(1, 0)
)

type TickMsg time.Time

// Options configure a live session.
type Options struct {
	Preset     string
	FPS        int
	Seed       int64
	CellWidth  float64
	CellHeight float64
	Theme      string
	Rainbow    bool
	Sound      bool
	Params     physics.Params
}

func OptionsFromConfig(cfg *config.Config, preset string) Options {
	return Options{
		Preset:     preset,
		FPS:        cfg.FPS,
		Seed:       cfg.Seed,
		CellWidth:  cfg.CellWidth,
		CellHeight: cfg.CellHeight,
		Theme:      cfg.Theme,
		Rainbow:    cfg.Rainbow,
		Sound:      cfg.Sound,
		Params:     cfg.Physics,
	}
}

// Model hosts a Scene in the terminal. Every TickMsg runs one frame and
// schedules the next.
type Model struct {
	opts          Options
	scene         *world.Scene
	canvas        *Canvas
	clicker       *audio.Clicker
	colors        *palette.Cycler
	rainbow       bool
	running       bool
	showHelp      bool
	paramKeys     []string
	selected      int
	energyHistory []float64
	impactHistory []float64
	last          world.FrameStats
}

func NewModel(opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = config.DefaultFPS
	}
	if opts.CellWidth <= 0 {
		opts.CellWidth = config.DefaultCellWidth
	}
	if opts.CellHeight <= 0 {
		opts.CellHeight = config.DefaultCellHeight
	}
	if opts.Theme != "" {
		SetTheme(opts.Theme)
	}

	m := Model{
		opts:    opts,
		canvas:  NewPixelCanvas(0, 0, opts.CellWidth, opts.CellHeight),
		clicker: audio.New(opts.Sound),
		colors:  &palette.Cycler{},
		rainbow: opts.Rainbow,
		running: true,
	}
	for k := range opts.Params.GetParams() {
		m.paramKeys = append(m.paramKeys, k)
	}
	sort.Strings(m.paramKeys)
	m.scene = m.newScene()
	return m
}

func (m *Model) newScene() *world.Scene {
	s := world.NewScene(m.opts.Params, m.opts.Seed)
	if m.rainbow {
		s.SetColorSource(m.colors.Next)
	}
	return s
}

func (m Model) Scene() *world.Scene { return m.scene }
func (m Model) Running() bool       { return m.running }

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and runs frames.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.click(msg.X, msg.Y)
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.clicker.Close()
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case ".":
			if !m.running {
				m.step()
			}
		case "r":
			m.reset()
		case "c":
			m.toggleRainbow()
		case "t":
			NextTheme()
		case "tab":
			m.selected = (m.selected + 1) % len(m.paramKeys)
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

// resize gives the canvas everything left of the side panel and syncs the
// viewport to the pixels it covers.
func (m *Model) resize(w, h int) {
	cols := w - panelWidth
	if cols < 1 {
		cols = 1
	}
	if h < 1 {
		h = 1
	}
	m.canvas.Resize(cols, h)
	m.scene.Resize(m.canvas.PixelSize())
	m.scene.Draw(m.canvas)
}

// click spawns at the centre of the clicked cell. Clicks on the panel are
// ignored.
func (m *Model) click(col, row int) {
	if col < 0 || row < 0 || col >= m.canvas.Width || row >= m.canvas.Height {
		return
	}
	m.scene.Click(m.canvas.CellCenter(col, row))
	if !m.running {
		m.scene.Draw(m.canvas)
	}
}

func (m *Model) step() {
	st := m.scene.Frame(m.canvas)
	m.last = st
	for _, speed := range st.Impacts {
		m.clicker.Impact(speed)
	}
	m.energyHistory = appendCapped(m.energyHistory, m.scene.Energy())
	m.impactHistory = appendCapped(m.impactHistory, float64(st.Floor))
}

func appendCapped(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

// reset drops every ball and restores the starting parameters.
func (m *Model) reset() {
	vp := m.scene.Viewport()
	m.colors.Reset()
	m.scene = m.newScene()
	m.scene.Resize(vp.Width, vp.Height)
	m.scene.Draw(m.canvas)
	m.energyHistory = m.energyHistory[:0]
	m.impactHistory = m.impactHistory[:0]
	m.last = world.FrameStats{}
}

func (m *Model) toggleRainbow() {
	m.rainbow = !m.rainbow
	if m.rainbow {
		m.scene.SetColorSource(m.colors.Next)
	} else {
		m.scene.SetColorSource(nil)
	}
}

func (m *Model) adjustParam(factor float64) {
	key := m.paramKeys[m.selected]
	p := m.scene.Params()
	// Out-of-range values are refused and the old value stays.
	_ = p.SetParam(key, p.GetParams()[key]*factor)
}

// View renders the canvas with the stats panel on its right.
func (m Model) View() string {
	th := CurrentTheme
	header := lipgloss.NewStyle().Foreground(th.Primary).Bold(true).MarginBottom(1)
	label := labelStyle.Foreground(th.Muted)
	value := lipgloss.NewStyle().Foreground(th.Text)
	active := lipgloss.NewStyle().Foreground(th.Accent).Bold(true)

	var s strings.Builder
	title := "BALLPIT"
	if m.opts.Preset != "" {
		title += " · " + strings.ToUpper(m.opts.Preset)
	}
	s.WriteString(header.Render(title) + "\n")

	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(panelWidth-12), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Foreground(th.Chart).Render(chart) + "\n")
	}

	balls := m.scene.World().Len()
	vp := m.scene.Viewport()
	s.WriteString(label.Render("Frame") + value.Render(fmt.Sprintf("%d", m.scene.FrameCount())) + "\n")
	s.WriteString(label.Render("Balls") + value.Render(fmt.Sprintf("%d", balls)) + "\n")
	s.WriteString(label.Render("Viewport") + value.Render(fmt.Sprintf("%.0fx%.0f", vp.Width, vp.Height)) + "\n")
	s.WriteString(label.Render("Contacts") + value.Render(m.last.Contacts.String()) + "\n")
	s.WriteString(label.Render("Impacts") + value.Render(Sparkline(m.impactHistory, panelWidth-16)) + "\n")
	rest := 0.0
	if balls > 0 {
		rest = float64(m.scene.Resting()) / float64(balls)
	}
	s.WriteString(label.Render("At rest") + ProgressBar(rest, panelWidth-16) + "\n")

	s.WriteString("\nPARAMETERS\n")
	params := m.scene.Params().GetParams()
	for i, k := range m.paramKeys {
		line := fmt.Sprintf("%-10s %.3f", k, params[k])
		if i == m.selected {
			s.WriteString(active.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + label.Render(line) + "\n")
		}
	}

	s.WriteString("\n" + Separator(panelWidth-4) + "\n")
	s.WriteString(label.Render("click:spawn SP:pause R:reset\nT:theme C:colors Q:quit ?:help"))

	panel := statsStyle.BorderForeground(th.Border).Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, m.canvas.Render(), panel)
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Click    - Spawn a ball             ║
║  Space    - Pause/Resume             ║
║  .        - Step one frame (paused)  ║
║  R        - Remove all balls         ║
║  C        - Toggle rainbow colors    ║
║  Tab      - Cycle parameters         ║
║  Up/K     - Increase parameter (+5%) ║
║  Down/J   - Decrease parameter (-5%) ║
║  T        - Cycle themes             ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// RunLive runs the terminal frontend until the user quits.
func RunLive(opts Options) error {
	_, err := tea.NewProgram(NewModel(opts), tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
