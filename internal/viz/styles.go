package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).
			Width(46)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)

	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
)

func (t Theme) header() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Accent).Bold(true).MarginBottom(1)
}

func (t Theme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error)
}

func (t Theme) status(running, halted bool) string {
	switch {
	case halted:
		return lipgloss.NewStyle().Foreground(t.Error).Bold(true).Render("HALTED")
	case running:
		return lipgloss.NewStyle().Foreground(t.Success).Bold(true).Render("RUNNING")
	default:
		return lipgloss.NewStyle().Foreground(t.Warning).Bold(true).Render("PAUSED")
	}
}

// SparklineChart renders the most recent values, one glyph per column,
// scaled between the window's min and max.
func SparklineChart(values []float64, width int, style lipgloss.Style) string {
	if width < 1 {
		return ""
	}
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int((v - lo) / rng * float64(len(chars)-1))
		idx = max(0, min(idx, len(chars)-1))
		b.WriteRune(chars[idx])
	}
	return style.Render(b.String())
}

// ProgressBar renders a fill ratio in [0, 1].
func ProgressBar(ratio float64, width int) string {
	filled := int(ratio * float64(width))
	filled = max(0, min(filled, width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
