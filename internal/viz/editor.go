package viz

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/session"
)

type field int

const (
	fieldMass field = iota
	fieldX
	fieldY
	fieldVX
	fieldVY
	numFields
)

var fieldNames = [numFields]string{"mass", "x", "y", "vx", "vy"}

func (f field) String() string { return fieldNames[f] }

func (f field) value(b physics.Body) float64 {
	switch f {
	case fieldMass:
		return b.Mass
	case fieldX:
		return b.Position.X
	case fieldY:
		return b.Position.Y
	case fieldVX:
		return b.Velocity.X
	default:
		return b.Velocity.Y
	}
}

// condition turns one edited field into an initial-condition update.
func (f field) condition(b physics.Body, v float64) session.InitialCondition {
	var ic session.InitialCondition
	switch f {
	case fieldMass:
		ic.Mass = &v
	case fieldX, fieldY:
		pos := b.Position
		if f == fieldX {
			pos.X = v
		} else {
			pos.Y = v
		}
		ic.Position = &pos
	default:
		vel := b.Velocity
		if f == fieldVX {
			vel.X = v
		} else {
			vel.Y = v
		}
		ic.Velocity = &vel
	}
	return ic
}

// editor edits the stored initial conditions of a session. Changes show up
// on the next reset.
type editor struct {
	open    bool
	cursor  int
	editing bool
	buf     string
	pending bool
	err     error
}

func (e *editor) locate() (body int, f field) {
	return e.cursor / int(numFields), field(e.cursor % int(numFields))
}

func (e *editor) update(msg tea.KeyMsg, sess *session.Session) tea.Cmd {
	bodies := sess.InitialConditions()
	total := len(bodies) * int(numFields)

	if e.editing {
		switch msg.String() {
		case "enter":
			e.commit(sess, bodies)
		case "esc":
			e.editing, e.buf = false, ""
		case "backspace":
			if len(e.buf) > 0 {
				e.buf = e.buf[:len(e.buf)-1]
			}
		default:
			for _, r := range msg.Runes {
				if strings.ContainsRune("0123456789.-+eE", r) {
					e.buf += string(r)
				}
			}
		}
		return nil
	}

	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "esc", "e":
		e.open = false
	case "up", "k":
		if e.cursor > 0 {
			e.cursor--
		}
	case "down", "j":
		if e.cursor < total-1 {
			e.cursor++
		}
	case "enter":
		i, f := e.locate()
		e.editing = true
		e.buf = strconv.FormatFloat(f.value(bodies[i]), 'g', -1, 64)
		e.err = nil
	}
	return nil
}

func (e *editor) commit(sess *session.Session, bodies []physics.Body) {
	defer func() { e.editing, e.buf = false, "" }()

	v, err := strconv.ParseFloat(e.buf, 64)
	if err != nil {
		e.err = fmt.Errorf("not a number: %q", e.buf)
		return
	}
	i, f := e.locate()
	b := bodies[i]
	if err := sess.SetInitialCondition(b.ID, f.condition(b, v)); err != nil {
		e.err = err
		return
	}
	e.err = nil
	e.pending = true
}

func (e *editor) view(sess *session.Session, theme Theme) string {
	var b strings.Builder
	b.WriteString(theme.header().Render("INITIAL CONDITIONS") + "\n")

	for i, body := range sess.InitialConditions() {
		b.WriteString(theme.bodyStyle(i).Render("● "+body.ID) + "\n")
		for f := field(0); f < numFields; f++ {
			idx := i*int(numFields) + int(f)
			val := strconv.FormatFloat(f.value(body), 'g', 6, 64)
			if e.editing && idx == e.cursor {
				val = e.buf + "_"
			}
			line := fmt.Sprintf("%-5s %12s", f, val)
			if idx == e.cursor {
				b.WriteString(selectedStyle.Render("  > "+line) + "\n")
			} else {
				b.WriteString("    " + labelStyle.Render(line) + "\n")
			}
		}
	}

	if e.err != nil {
		b.WriteString("\n" + theme.errorStyle().Render(e.err.Error()) + "\n")
	}
	if e.pending {
		b.WriteString("\n" + valueStyle.Render("esc, then r to apply") + "\n")
	}
	b.WriteString(helpStyle.Render("j/k:Select Enter:Edit Esc:Close"))
	return b.String()
}
