package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/ballpit/internal/config"
)

var presetInfo = map[string]string{
	"classic":   "the original toy",
	"moon":      "low gravity, long arcs",
	"jupiter":   "heavy fall, hard launch",
	"superball": "springy, slick floor",
	"honey":     "dead bounce, sticky floor",
	"marbles":   "small and lively",
}

// picker lists the presets and hands over to a live Model once one is
// chosen.
type picker struct {
	base     *config.Config
	presets  []string
	cursor   int
	started  bool
	live     Model
	width    int
	height   int
	hasWidth bool
}

func NewPicker(base *config.Config) *picker {
	return &picker{base: base, presets: config.ListPresets()}
}

func (m picker) Init() tea.Cmd { return nil }

func (m picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.started {
		next, cmd := m.live.Update(msg)
		m.live = next.(Model)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height, m.hasWidth = msg.Width, msg.Height, true
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.presets)-1 {
				m.cursor++
			}
		case "enter", " ":
			return m.start()
		}
	}
	return m, nil
}

func (m picker) start() (tea.Model, tea.Cmd) {
	name := m.presets[m.cursor]
	cfg := *m.base
	cfg.Physics = config.Presets[name]

	m.live = NewModel(OptionsFromConfig(&cfg, name))
	if m.hasWidth {
		m.live.resize(m.width, m.height)
	}
	m.started = true
	return m, m.live.Init()
}

func (m picker) View() string {
	if m.started {
		return m.live.View()
	}

	var b strings.Builder
	h := lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	sub := lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	key := lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)

	b.WriteString("\n\n    " + h.Render("BALLPIT") + "\n    " + sub.Render("click to drop a ball") + "\n    " + sub.Render("─────────────────────────") + "\n\n")
	for i, name := range m.presets {
		desc := presetInfo[name]
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n",
				lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true).Render("▸"),
				lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true).Render(fmt.Sprintf("%-12s", name)),
				lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff")).Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n",
				lipgloss.NewStyle().Foreground(lipgloss.Color("#555566")).Render(fmt.Sprintf("  %-12s", name)),
				lipgloss.NewStyle().Foreground(lipgloss.Color("#444455")).Render(desc)))
		}
	}
	b.WriteString("\n    " + key.Render("j/k") + sub.Render(" navigate  ") + key.Render("enter") + sub.Render(" start  ") + key.Render("q") + sub.Render(" quit") + "\n")
	return b.String()
}

// RunPicker shows the preset menu, then the live view of the chosen preset.
func RunPicker(base *config.Config) error {
	_, err := tea.NewProgram(NewPicker(base), tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
