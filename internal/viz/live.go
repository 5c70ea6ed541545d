package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/gravsim/internal/geom"
	"github.com/san-kum/gravsim/internal/session"
)

const (
	defaultCols = 80
	defaultRows = 24
	panelWidth  = 52

	minTrailCapacity = 10
	maxTrailCapacity = 20000
)

type TickMsg time.Time

// Model drives a session from the Bubble Tea frame loop and draws it.
type Model struct {
	sess     *session.Session
	name     string
	fps      int
	snap     session.Snapshot
	err      error
	canvas   *Canvas
	view     *Viewport
	theme    Theme
	edit     editor
	showHelp bool
}

func NewModel(sess *session.Session, name string, fps int) Model {
	if fps < 1 {
		fps = 60
	}
	snap, err := sess.Snapshot()
	m := Model{
		sess:   sess,
		name:   name,
		fps:    fps,
		snap:   snap,
		err:    err,
		canvas: NewCanvas(defaultCols, defaultRows),
		view:   NewViewport(fps),
		theme:  ThemeClassic,
	}
	m.view.Follow(framePoints(snap))
	return m
}

// Run opens the live view on the alternate screen until the user quits.
func Run(sess *session.Session, name string, fps int) error {
	_, err := tea.NewProgram(NewModel(sess, name, fps), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.canvas.Resize(msg.Width-panelWidth-4, msg.Height-2)
	case tea.KeyMsg:
		if m.edit.open {
			return m, m.edit.update(msg, m.sess)
		}
		return m.handleKey(msg)
	case TickMsg:
		m.snap, m.err = m.sess.Tick(time.Time(msg))
		m.view.Follow(framePoints(m.snap))
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.sess.Toggle()
	case "r":
		m.err = m.sess.Reset()
		m.edit.pending = false
		m.refresh()
		m.view.Snap()
		m.view.Follow(framePoints(m.snap))
	case "+", "=":
		m.sess.Faster()
	case "-", "_":
		m.sess.Slower()
	case "[":
		m.err = m.sess.SetTrailCapacity(max(m.sess.TrailCapacity()/2, minTrailCapacity))
		m.refresh()
	case "]":
		m.err = m.sess.SetTrailCapacity(min(m.sess.TrailCapacity()*2, maxTrailCapacity))
		m.refresh()
	case "e":
		m.sess.Pause()
		m.edit.open = true
	case "t":
		m.theme = m.theme.next()
	case "?":
		m.showHelp = !m.showHelp
	}
	m.refresh()
	return m, nil
}

// refresh re-reads the snapshot so controls show up before the next tick.
func (m *Model) refresh() {
	snap, err := m.sess.Snapshot()
	m.snap = snap
	if err != nil {
		m.err = err
	}
}

// framePoints is what the viewport keeps in frame: bodies and trails.
func framePoints(snap session.Snapshot) []geom.Vec2 {
	var pts []geom.Vec2
	for _, b := range snap.Bodies {
		pts = append(pts, b.Position)
		pts = append(pts, snap.Trails[b.ID]...)
	}
	return pts
}

func (m *Model) draw() {
	m.canvas.Clear()
	w, h := m.canvas.Size()

	maxMass := 0.0
	for _, b := range m.snap.Bodies {
		maxMass = max(maxMass, b.Mass)
	}

	for i, b := range m.snap.Bodies {
		pts := m.snap.Trails[b.ID]
		for j := 1; j < len(pts); j++ {
			x0, y0 := m.view.Project(pts[j-1], w, h)
			x1, y1 := m.view.Project(pts[j], w, h)
			m.canvas.Line(x0, y0, x1, y1, i)
		}
	}
	// bodies on top of every trail
	for i, b := range m.snap.Bodies {
		x, y := m.view.Project(b.Position, w, h)
		r := 1
		if maxMass > 0 {
			r += int(2 * b.Mass / maxMass)
		}
		m.canvas.Disc(x, y, r, i)
	}
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.Render(m.theme.BodyStyles(len(m.snap.Bodies))))

	var body string
	if m.edit.open {
		body = m.edit.view(m.sess, m.theme)
	} else {
		body = m.stats()
	}
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(body))

	if m.showHelp {
		return helpText + "\n" + mainView
	}
	return mainView
}

func (m Model) stats() string {
	snap := m.snap
	d := snap.Diagnostics

	var s strings.Builder
	s.WriteString(m.theme.header().Render(strings.ToUpper(m.name)) + "\n")
	s.WriteString(m.theme.status(snap.Running, snap.Halted) + "\n\n")

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2f", snap.SimTime))
	row("Speed", fmt.Sprintf("x%g", snap.Speed))
	row("Integrator", m.sess.IntegratorName())
	row("Separation", fmt.Sprintf("%.3f", d.Separation))
	row("Rel. speed", fmt.Sprintf("%.3f", d.RelativeSpeed))
	row("Energy", fmt.Sprintf("%.4f", d.SpecificEnergy))
	row("Ang. mom.", fmt.Sprintf("%.4f", d.SpecificAngularMomentum))
	orbit := "unbound"
	if d.Bound() {
		orbit = "bound"
	}
	row("Orbit", orbit)
	row("Total E", fmt.Sprintf("%.4f", snap.Totals.Energy))

	capacity := m.sess.TrailCapacity()
	longest := 0
	for _, pts := range snap.Trails {
		longest = max(longest, len(pts))
	}
	row("Trail", fmt.Sprintf("%s %d", ProgressBar(float64(longest)/float64(capacity), 12), capacity))

	s.WriteString("\n")
	series := make([][]float64, 0, len(snap.Bodies))
	for i, b := range snap.Bodies {
		samples := snap.Speeds[b.ID]
		values := make([]float64, len(samples))
		for j, sm := range samples {
			values[j] = sm.Value
		}
		series = append(series, values)

		style := m.theme.bodyStyle(i)
		speed := b.Velocity.Norm()
		s.WriteString(fmt.Sprintf("%s %-8s m=%-8.4g |v|=%-8.3f %s\n",
			style.Render("●"), b.ID, b.Mass, speed, SparklineChart(values, 10, style)))
	}

	if plottable(series) {
		chart := asciigraph.PlotMany(series, asciigraph.Height(5), asciigraph.Width(34), asciigraph.Caption("speed"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	if m.err != nil {
		s.WriteString("\n" + m.theme.errorStyle().Render(m.err.Error()) + "\n")
	}
	if m.edit.pending {
		s.WriteString("\n" + valueStyle.Render("edited conditions apply on reset (r)") + "\n")
	}

	s.WriteString(helpStyle.Render("─────────────────────\nSP:Pause R:Reset Q:Quit\n+/-:Speed [ ]:Trail E:Edit\nT:Theme ?:Help"))
	return s.String()
}

func plottable(series [][]float64) bool {
	if len(series) == 0 {
		return false
	}
	for _, s := range series {
		if len(s) < 2 {
			return false
		}
	}
	return true
}

const helpText = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  R        - Reset to initial state   ║
║  + / -    - Double / halve speed     ║
║  [ / ]    - Shorter / longer trails  ║
║  E        - Edit initial conditions  ║
║  T        - Cycle themes             ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
`
