package viz

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestCanvas_Set(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0, 0)
	c.Set(3, 3, 1)

	if !c.Lit(0, 0) || !c.Lit(3, 3) {
		t.Error("expected dots to be lit")
	}
	if c.Lit(1, 0) {
		t.Error("unexpected dot at (1, 0)")
	}

	want := string([]rune{brailleBase | 0x1, brailleBase | 0x80}) + "\n"
	if got := c.String(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestCanvas_SetOutOfRange(t *testing.T) {
	c := NewCanvas(2, 2)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 8}, {100, 100}} {
		c.Set(p[0], p[1], 0)
	}
	if got := strings.Count(c.String(), string(rune(brailleBase))); got != 4 {
		t.Errorf("expected 4 empty cells, got %d", got)
	}
}

func TestCanvas_Line(t *testing.T) {
	c := NewCanvas(10, 3)
	c.Line(0, 0, 19, 11, 0)
	if !c.Lit(0, 0) || !c.Lit(19, 11) {
		t.Error("expected both endpoints lit")
	}

	c.Clear()
	c.Line(0, 5, 19, 5, 0)
	for x := 0; x < 20; x++ {
		if !c.Lit(x, 5) {
			t.Errorf("expected (%d, 5) lit on horizontal line", x)
		}
	}
}

func TestCanvas_LineFarOutside(t *testing.T) {
	c := NewCanvas(10, 5)
	c.Line(2, 2, 1<<20, 1<<20, 0)
	if !c.Lit(2, 2) {
		t.Error("expected near endpoint lit")
	}
	if c.Lit(3, 3) {
		t.Error("far segment should not be rasterised")
	}
}

func TestCanvas_Disc(t *testing.T) {
	c := NewCanvas(10, 5)
	c.Disc(10, 10, 2, 0)
	for _, p := range [][2]int{{10, 10}, {8, 10}, {12, 10}, {10, 8}, {10, 12}} {
		if !c.Lit(p[0], p[1]) {
			t.Errorf("expected (%d, %d) lit", p[0], p[1])
		}
	}
	if c.Lit(13, 10) {
		t.Error("disc leaked past its radius")
	}
}

func TestCanvas_RenderKeepsGlyphs(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0, 0)
	c.Set(7, 7, 1)

	out := c.Render([]lipgloss.Style{lipgloss.NewStyle(), lipgloss.NewStyle()})
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(lines))
	}
	if !strings.ContainsRune(out, brailleBase|0x1) || !strings.ContainsRune(out, brailleBase|0x80) {
		t.Errorf("missing lit glyphs in %q", out)
	}
}

func TestCanvas_Resize(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0, 0)
	c.Resize(0, -3)

	cols, rows := c.Cells()
	if cols != 1 || rows != 1 {
		t.Errorf("expected 1x1 after clamped resize, got %dx%d", cols, rows)
	}
	if c.Lit(0, 0) {
		t.Error("resize should clear the canvas")
	}
}
