package viz

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"math/cmplx"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/planeviz/internal/colorize"
	"github.com/san-kum/planeviz/internal/cursor"
	"github.com/san-kum/planeviz/internal/functions"
	"github.com/san-kum/planeviz/internal/grid"
)

// Terminal cells are roughly twice as tall as wide; annotation offsets are
// given in points and converted with these factors.
const (
	pointsPerColumn = 10
	pointsPerRow    = 20
)

const (
	headerRows = 2
	panelGap   = 4
)

// Panel is a domain-coloured view of the plane drawn with half-block
// cells. Each cell shows two vertically stacked samples. Panel coordinates
// are terminal cells; data coordinates are points of the input plane.
type Panel struct {
	Title      string
	Col, Row   int
	W, H       int
	xlim, ylim grid.Interval
	image      *image.NRGBA
	apply      functions.Func
}

func (p *Panel) Contains(px, py float64) bool {
	return px >= float64(p.Col) && px < float64(p.Col+p.W) &&
		py >= float64(p.Row) && py < float64(p.Row+p.H)
}

// DataCoords maps the centre of cell (px, py) to the input plane.
func (p *Panel) DataCoords(px, py float64) (x, y float64) {
	u := (px - float64(p.Col) + 0.5) / float64(p.W)
	v := (py - float64(p.Row) + 0.5) / float64(p.H)
	return p.xlim.Lo + u*p.xlim.Span(), p.ylim.Hi - v*p.ylim.Span()
}

// Value returns the sample shown by the panel at input point z.
func (p *Panel) Value(z complex128) complex128 {
	if p.apply == nil {
		return z
	}
	return p.apply(z)
}

// render draws the panel into cells, top row first.
func (p *Panel) render(bg lipgloss.Color) [][]string {
	rows := make([][]string, p.H)
	for r := range rows {
		rows[r] = make([]string, p.W)
		for c := range rows[r] {
			top := p.image.NRGBAAt(c, 2*r)
			bottom := p.image.NRGBAAt(c, 2*r+1)
			rows[r][c] = lipgloss.NewStyle().
				Foreground(cellColor(top, bg)).
				Background(cellColor(bottom, bg)).
				Render("▀")
		}
	}
	return rows
}

func cellColor(c color.NRGBA, bg lipgloss.Color) lipgloss.Color {
	if c.A == 0 {
		return bg
	}
	return hexColor(c)
}

// sample evaluates the panel over a W x 2H lattice of cell-half centres.
func (p *Panel) sample(enc colorize.Encoder) {
	nx, ny := p.W, 2*p.H
	w := make([][]complex128, nx)
	for i := range w {
		w[i] = make([]complex128, ny)
		x := p.xlim.Lo + (float64(i)+0.5)/float64(nx)*p.xlim.Span()
		for j := range w[i] {
			y := p.ylim.Lo + (float64(j)+0.5)/float64(ny)*p.ylim.Span()
			w[i][j] = p.Value(complex(x, y))
		}
	}
	p.image = enc.Encode(w)
}

// ComplexFormatter describes the hovered point and, on an output panel, its
// image under the function.
func ComplexFormatter(s cursor.Surface, x, y float64) string {
	z := complex(x, y)
	text := fmt.Sprintf("z: %s", formatComplex(z))
	if p, ok := s.(*Panel); ok && p.apply != nil {
		text += fmt.Sprintf("\nf(z): %s", formatComplex(p.Value(z)))
	}
	return text
}

func formatComplex(z complex128) string {
	if cmplx.IsNaN(z) {
		return "NaN"
	}
	if cmplx.IsInf(z) {
		return "∞"
	}
	return fmt.Sprintf("%0.2f%+0.2fi", real(z), imag(z))
}

// Inspector is a bubbletea program showing the input plane and its image
// side by side with a hover annotation.
type Inspector struct {
	f          functions.Func
	name       string
	xlim, ylim grid.Interval
	enc        colorize.Encoder

	width, height int
	input, output *Panel
	cursor        *cursor.HoverCursor
	redraws       int
}

// NewInspector prepares an inspector for f over xlim x ylim. Cursor
// options set the annotation offsets and formatter; by default the
// annotation shows z and f(z).
func NewInspector(f functions.Func, name string, xlim, ylim grid.Interval, enc colorize.Encoder, opts ...cursor.Option) *Inspector {
	m := &Inspector{
		f:      f,
		name:   name,
		xlim:   xlim,
		ylim:   ylim,
		enc:    enc,
		width:  80,
		height: 24,
	}
	opts = append([]cursor.Option{cursor.WithFormatter(ComplexFormatter)}, opts...)
	m.cursor = cursor.New(cursor.CanvasFunc(func() { m.redraws++ }), opts...)
	m.layout()
	return m
}

// Run starts the program with mouse motion tracking.
func (m *Inspector) Run() error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}

func (m *Inspector) Surfaces() []cursor.Surface {
	return []cursor.Surface{m.input, m.output}
}

func (m *Inspector) Cursor() *cursor.HoverCursor { return m.cursor }

// Redraws counts the redraw requests made by the cursor.
func (m *Inspector) Redraws() int { return m.redraws }

func (m *Inspector) Panels() (input, output *Panel) { return m.input, m.output }

// layout sizes both panels to the terminal, keeping one data unit equally
// long on both axes, and resamples them.
func (m *Inspector) layout() {
	availW := max((m.width-panelGap)/2, 4)
	availH := max(m.height-headerRows-2, 2)

	aspect := m.xlim.Span() / m.ylim.Span()
	// A cell is one sample wide and two samples tall.
	w := availW
	h := int(math.Round(float64(w) / aspect / 2))
	if h > availH {
		h = availH
		w = int(math.Round(float64(h) * 2 * aspect))
	}
	w, h = max(w, 2), max(h, 1)

	m.input = &Panel{Title: "Input", Col: 0, Row: headerRows, W: w, H: h, xlim: m.xlim, ylim: m.ylim}
	m.output = &Panel{Title: "Output", Col: w + panelGap, Row: headerRows, W: w, H: h, xlim: m.xlim, ylim: m.ylim, apply: m.f}
	m.input.sample(m.enc)
	m.output.sample(m.enc)

	// Panels are new surfaces, so annotations start over.
	m.cursor.Reset()
}

func (m *Inspector) Init() tea.Cmd { return nil }

func (m *Inspector) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "t":
			NextTheme()
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionMotion {
			m.cursor.Move(m.Surfaces(), float64(msg.X), float64(msg.Y))
		}
	}
	return m, nil
}

func (m *Inspector) View() string {
	th := CurrentTheme
	screen := make([][]string, m.height)
	for r := range screen {
		screen[r] = make([]string, m.width)
		for c := range screen[r] {
			screen[r][c] = " "
		}
	}

	put := func(row, col int, s string, style lipgloss.Style) {
		if row < 0 || row >= len(screen) {
			return
		}
		for i, r := range []rune(s) {
			if c := col + i; c >= 0 && c < m.width {
				screen[row][c] = style.Render(string(r))
			}
		}
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(th.Primary)
	put(0, 0, "planeviz inspect "+m.name, titleStyle)

	for _, p := range []*Panel{m.input, m.output} {
		put(p.Row-1, p.Col, p.Title, lipgloss.NewStyle().Foreground(th.Text))
		for r, row := range p.render(th.Background) {
			for c, cell := range row {
				if y, x := p.Row+r, p.Col+c; y < m.height && x < m.width {
					screen[y][x] = cell
				}
			}
		}
	}

	if s, a, ok := m.cursor.Visible(); ok {
		m.overlay(screen, s, a, put)
	}

	hint := "move the mouse over a panel · t theme · q quit"
	put(m.height-1, 0, hint, KeyHint.Foreground(th.Muted))

	lines := make([]string, len(screen))
	for i, row := range screen {
		lines[i] = strings.Join(row, "")
	}
	return strings.Join(lines, "\n")
}

// overlay draws the annotation box with its bottom-right corner offset from
// the hovered cell.
func (m *Inspector) overlay(screen [][]string, s cursor.Surface, a *cursor.Annotation, put func(int, int, string, lipgloss.Style)) {
	p, ok := s.(*Panel)
	if !ok {
		return
	}
	col, row := cellOf(p, a.X, a.Y)

	lines := strings.Split(a.Text, "\n")
	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	right := col + int(math.Round(a.OffsetX/pointsPerColumn))
	bottom := row - int(math.Round(a.OffsetY/pointsPerRow))
	left := max(right-w-1, 0)
	top := max(bottom-len(lines)+1, 0)

	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#000000")).
		Background(CurrentTheme.Note)
	for i, l := range lines {
		pad := l + strings.Repeat(" ", w-len([]rune(l)))
		put(top+i, left, " "+pad+" ", style)
	}
}

// cellOf returns the terminal cell showing input point (x, y) on p.
func cellOf(p *Panel, x, y float64) (col, row int) {
	u := (x - p.xlim.Lo) / p.xlim.Span() * float64(p.W)
	v := (p.ylim.Hi - y) / p.ylim.Span() * float64(p.H)
	col = p.Col + int(colorize.Clamp(math.Floor(u), p.W))
	row = p.Row + int(colorize.Clamp(math.Floor(v), p.H))
	return col, row
}
