package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/session"
)

var (
	menuTitle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	menuSubtle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	menuCursor   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	menuSelected = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	menuInfo     = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	menuIdle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	menuKey      = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
)

// App lets the user pick a preset and then hands over to the live view.
type App struct {
	presets []string
	cursor  int
	fps     int
	live    *Model
	size    *tea.WindowSizeMsg
	err     error
}

func NewApp(fps int) App {
	return App{presets: config.ListPresets(), fps: fps}
}

// RunApp opens the preset picker.
func RunApp(fps int) error {
	_, err := tea.NewProgram(NewApp(fps), tea.WithAltScreen()).Run()
	return err
}

func (a App) Init() tea.Cmd { return nil }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		a.size = &size
	}
	if a.live != nil {
		next, cmd := a.live.Update(msg)
		live := next.(Model)
		a.live = &live
		return a, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.presets)-1 {
			a.cursor++
		}
	case "enter", " ":
		return a.start()
	}
	return a, nil
}

func (a App) start() (tea.Model, tea.Cmd) {
	name := a.presets[a.cursor]
	sess, err := session.New(config.GetPreset(name).Session())
	if err != nil {
		a.err = err
		return a, nil
	}
	live := NewModel(sess, name, a.fps)
	if a.size != nil {
		next, _ := live.Update(*a.size)
		live = next.(Model)
	}
	a.live = &live
	return a, live.Init()
}

func (a App) View() string {
	if a.live != nil {
		return a.live.View()
	}

	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render("GRAVSIM") + "\n    " + menuSubtle.Render("n-body gravity") + "\n    " + menuSubtle.Render("─────────────────────────") + "\n\n")
	for i, name := range a.presets {
		desc := describe(config.Presets[name])
		if i == a.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", menuCursor.Render("▸"), menuSelected.Render(fmt.Sprintf("%-12s", name)), menuInfo.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n", menuIdle.Render(fmt.Sprintf("%-12s", name)), menuIdle.Render(desc)))
		}
	}
	if a.err != nil {
		b.WriteString("\n    " + ThemeClassic.errorStyle().Render(a.err.Error()) + "\n")
	}
	b.WriteString("\n    " + menuKey.Render("j/k") + menuSubtle.Render(" navigate  ") + menuKey.Render("enter") + menuSubtle.Render(" select  ") + menuKey.Render("q") + menuSubtle.Render(" quit") + "\n")
	return b.String()
}

func describe(cfg *config.Config) string {
	masses := make([]string, len(cfg.Bodies))
	for i, b := range cfg.Bodies {
		masses[i] = fmt.Sprintf("%g", b.Mass)
	}
	return fmt.Sprintf("%d bodies, m=%s, G=%g", len(cfg.Bodies), strings.Join(masses, "/"), cfg.G)
}
