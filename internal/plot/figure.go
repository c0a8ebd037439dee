// Package plot is a small figure/axes layer over the gg rasterizer: equal
// aspect data axes, polylines, image panels, titles and tick labels.
package plot

import (
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/san-kum/planeviz/internal/grid"
	"golang.org/x/image/font/gofont/goregular"
)

// Options sizes a figure the way a plotting library does: inches times DPI.
type Options struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	DPI    float64 `yaml:"dpi"`
	// FontSize is the label size in points.
	FontSize float64 `yaml:"font_size,omitempty"`
}

func DefaultOptions() Options {
	return Options{Width: 10, Height: 10, DPI: 100, FontSize: 10}
}

// Pixels returns the raster size of the figure.
func (o Options) Pixels() (w, h int) {
	o = o.withDefaults()
	return int(math.Round(o.Width * o.DPI)), int(math.Round(o.Height * o.DPI))
}

// PointsToPixels converts a length in points to pixels at this DPI.
func (o Options) PointsToPixels(pt float64) float64 {
	return pt * o.withDefaults().DPI / 72
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if o.DPI <= 0 {
		o.DPI = d.DPI
	}
	if o.FontSize <= 0 {
		o.FontSize = d.FontSize
	}
	return o
}

var loadFont = sync.OnceValues(func() (*text.FontSource, error) {
	return text.NewFontSource(goregular.TTF)
})

// Figure owns one raster and the axes drawn on it.
type Figure struct {
	dc   *gg.Context
	opts Options
	axes []*Axes
	face text.Face
}

// NewFigure creates a white figure.
func NewFigure(opts Options) *Figure {
	opts = opts.withDefaults()
	w, h := opts.Pixels()
	dc := gg.NewContext(w, h)
	dc.ClearWithColor(gg.White)

	f := &Figure{dc: dc, opts: opts}
	if src, err := loadFont(); err != nil {
		gg.Logger().Warn("plot: font unavailable, labels disabled", "err", err)
	} else {
		f.face = src.Face(opts.PointsToPixels(opts.FontSize))
		dc.SetFont(f.face)
	}
	return f
}

func (f *Figure) Options() Options { return f.opts }

func (f *Figure) Size() (w, h int) { return f.dc.Width(), f.dc.Height() }

// Axes returns the axes in creation order.
func (f *Figure) Axes() []*Axes { return f.axes }

// Cell returns the pixel rectangle of subplot index (1-based, row-major)
// in a rows x cols layout, inside the figure margins.
func (f *Figure) Cell(rows, cols, index int) Rect {
	w, h := f.Size()
	const left, right, bottom, top, gap = 0.08, 0.96, 0.08, 0.92, 0.06

	cw := (float64(w)*(right-left) - float64(cols-1)*gap*float64(w)) / float64(cols)
	ch := (float64(h)*(top-bottom) - float64(rows-1)*gap*float64(h)) / float64(rows)
	r := (index - 1) / cols
	c := (index - 1) % cols

	x0 := float64(w)*left + float64(c)*(cw+gap*float64(w))
	y0 := float64(h)*(1-top) + float64(r)*(ch+gap*float64(h))
	return Rect{X0: x0, Y0: y0, X1: x0 + cw, Y1: y0 + ch}
}

// Subplot adds axes in the given cell. With equal set, the box shrinks so
// that one data unit has the same length on both axes.
func (f *Figure) Subplot(rows, cols, index int, xlim, ylim grid.Interval, equal bool) *Axes {
	box := f.Cell(rows, cols, index)
	if equal {
		box = box.fitAspect(xlim.Span() / ylim.Span())
	}
	ax := &Axes{fig: f, box: box, xlim: xlim, ylim: ylim}
	f.axes = append(f.axes, ax)
	return ax
}

// Image returns a copy of the raster.
func (f *Figure) Image() image.Image {
	_ = f.dc.FlushGPU()
	return f.dc.Image()
}

// SavePNG writes the figure, appending ".png" when missing, and returns
// the path written.
func (f *Figure) SavePNG(path string) (string, error) {
	path = EnsureExt(path, ".png")
	if err := f.dc.SavePNG(path); err != nil {
		return "", fmt.Errorf("save figure %s: %w", path, err)
	}
	gg.Logger().Debug("plot: figure saved", "path", path)
	return path, nil
}

func (f *Figure) Close() error { return f.dc.Close() }

func (f *Figure) label(s string, x, y, ax, ay float64, col gg.RGBA) {
	if f.face == nil || s == "" {
		return
	}
	f.dc.SetRGBA(col.R, col.G, col.B, col.A)
	f.dc.DrawStringAnchored(s, x, y, ax, ay)
}
