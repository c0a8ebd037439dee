package viz

import (
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/planeviz/internal/colorize"
	"github.com/san-kum/planeviz/internal/cursor"
	"github.com/san-kum/planeviz/internal/functions"
	"github.com/san-kum/planeviz/internal/grid"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(4, 0)

	if c.Grid[0][0] != 0x2801 {
		t.Errorf("expected dot 1 in first cell, got %U", c.Grid[0][0])
	}
	if c.Grid[0][1] != 0x2880 {
		t.Errorf("expected dot 8 in second cell, got %U", c.Grid[0][1])
	}
	if !c.IsSet(3, 3) || c.IsSet(1, 1) {
		t.Error("IsSet disagrees with Set")
	}

	c.Clear()
	if c.IsSet(0, 0) {
		t.Error("expected blank canvas after clear")
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(4, 2)
	c.DrawLine(0, 0, 7, 7)
	for i := 0; i < 8; i++ {
		if !c.IsSet(i, i) {
			t.Errorf("diagonal dot (%d, %d) missing", i, i)
		}
	}
}

func TestDrawCurveBreaksOnNaN(t *testing.T) {
	lim := grid.Interval{Lo: 0, Hi: 1}
	c := NewCanvas(5, 1)
	c.DrawCurve([]complex128{0, complex(math.NaN(), 0), 1}, lim, lim)

	if !c.IsSet(0, 3) || !c.IsSet(9, 0) {
		t.Error("expected both finite endpoints drawn")
	}
	if c.IsSet(4, 2) {
		t.Error("expected no segment across the NaN point")
	}
}

func TestPreview(t *testing.T) {
	lim := grid.Interval{Lo: -1, Hi: 1}
	c := Preview([][]complex128{{-1, 1}, {-1i, 1i}}, lim, lim, 10, 5)
	out := c.String()
	if strings.Count(out, "\n") != 5 {
		t.Errorf("expected 5 rows, got %d", strings.Count(out, "\n"))
	}
	if strings.Trim(out, "⠀\n") == "" {
		t.Error("expected dots on the preview")
	}
	if !strings.Contains(RenderPreview(c, "t=1", lim, lim), "t=1") {
		t.Error("expected title in rendered preview")
	}
}

func TestProgressBar(t *testing.T) {
	bar := ProgressBar(0.5, 10)
	if strings.Count(bar, "█") != 5 || strings.Count(bar, "░") != 5 {
		t.Errorf("expected half-filled bar, got %q", bar)
	}
	if strings.Count(ProgressBar(2, 4), "█") != 4 {
		t.Error("expected bar clamped to width")
	}
	if !strings.Contains(FrameProgress(3, 12, 10), "3/12 frames") {
		t.Error("expected frame counter in progress line")
	}
}

func TestThemes(t *testing.T) {
	defer SetTheme(ThemeNight.Name)

	if GetTheme("missing").Name != ThemeNight.Name {
		t.Error("expected default theme for unknown name")
	}
	SetTheme("paper")
	if CurrentTheme.Name != "paper" {
		t.Errorf("expected paper, got %s", CurrentTheme.Name)
	}
	if NextTheme().Name != "retro" {
		t.Errorf("expected retro after paper, got %s", CurrentTheme.Name)
	}
	if NextTheme().Name != "night" {
		t.Error("expected theme cycle to wrap")
	}
}

func newTestInspector() *Inspector {
	enc := colorize.Encoder{Power: 1.0 / 3, Clip: 6}
	lim := grid.Interval{Lo: -2, Hi: 2}
	m := NewInspector(functions.Joukowsky, "joukowsky", lim, lim, enc)
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	return m
}

func TestInspectorLayout(t *testing.T) {
	m := newTestInspector()
	in, out := m.Panels()

	if in.W != out.W || in.H != out.H {
		t.Error("panels should have equal size")
	}
	if in.Col+in.W > out.Col {
		t.Error("panels overlap")
	}
	if out.Col+out.W > 60 || in.Row+in.H > 20 {
		t.Errorf("panels exceed the terminal: %+v %+v", in, out)
	}
	if math.Abs(float64(in.W)/float64(2*in.H)-1) > 0.2 {
		t.Errorf("square domain should give square panels, got %dx%d cells", in.W, in.H)
	}
}

func TestPanelDataCoords(t *testing.T) {
	m := newTestInspector()
	in, _ := m.Panels()

	x, y := in.DataCoords(float64(in.Col), float64(in.Row))
	if x < -2 || x > -2+4/float64(in.W) || y > 2 || y < 2-4/float64(in.H) {
		t.Errorf("top-left cell should map near (-2, 2), got (%g, %g)", x, y)
	}
	col, row := cellOf(in, x, y)
	if col != in.Col || row != in.Row {
		t.Errorf("cellOf should invert DataCoords, got (%d, %d)", col, row)
	}
}

func TestInspectorHover(t *testing.T) {
	m := newTestInspector()
	in, out := m.Panels()

	move := func(x, y int) {
		m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion})
	}

	move(out.Col+out.W/2, out.Row+1)
	s, a, ok := m.Cursor().Visible()
	if !ok || s != cursor.Surface(out) {
		t.Fatal("expected output annotation visible")
	}
	if !strings.Contains(a.Text, "f(z): ") {
		t.Errorf("expected f(z) on output panel, got %q", a.Text)
	}
	if !strings.Contains(m.View(), "f(z)") {
		t.Error("expected annotation drawn in the view")
	}

	move(in.Col+1, in.Row+1)
	s, a, _ = m.Cursor().Visible()
	if s != cursor.Surface(in) || strings.Contains(a.Text, "f(z)") {
		t.Errorf("expected input annotation without f(z), got %q", a.Text)
	}

	move(0, 0)
	if _, _, ok := m.Cursor().Visible(); ok {
		t.Error("expected annotations hidden outside the panels")
	}
	if m.Redraws() != 3 {
		t.Errorf("expected a redraw per motion event, got %d", m.Redraws())
	}
	if m.Cursor().Len() != 2 {
		t.Errorf("expected one annotation per panel, got %d", m.Cursor().Len())
	}
}

func TestInspectorQuit(t *testing.T) {
	m := newTestInspector()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestComplexFormatter(t *testing.T) {
	p := &Panel{apply: functions.Joukowsky}
	got := ComplexFormatter(p, 0, 0)
	if !strings.Contains(got, "z: 0.00+0.00i") {
		t.Errorf("unexpected z line in %q", got)
	}
	if !strings.Contains(got, "f(z): ") {
		t.Errorf("expected f(z) line in %q", got)
	}
	if got := ComplexFormatter(&Panel{}, 1, -1); got != "z: 1.00-1.00i" {
		t.Errorf("unexpected input text %q", got)
	}
}

func TestSeparator(t *testing.T) {
	s := Separator(20)
	if !strings.Contains(s, "◆") {
		t.Error("expected diamond in separator")
	}
	if n := strings.Count(s, "─"); n != 14 {
		t.Errorf("expected 14 rule characters, got %d", n)
	}
	if strings.Contains(Separator(2), "─") {
		t.Error("narrow separator should have no rule")
	}
}
