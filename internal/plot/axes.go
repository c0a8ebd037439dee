package plot

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gg"
	"github.com/san-kum/planeviz/internal/grid"
	"golang.org/x/image/draw"
)

// Rect is a pixel rectangle with Y growing downwards.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

func (r Rect) W() float64 { return r.X1 - r.X0 }
func (r Rect) H() float64 { return r.Y1 - r.Y0 }

// fitAspect shrinks r around its centre to the width/height ratio aspect.
func (r Rect) fitAspect(aspect float64) Rect {
	if !(aspect > 0) || math.IsInf(aspect, 0) {
		return r
	}
	w, h := r.W(), r.H()
	if w/h > aspect {
		w = h * aspect
	} else {
		h = w / aspect
	}
	cx, cy := (r.X0+r.X1)/2, (r.Y0+r.Y1)/2
	return Rect{X0: cx - w/2, Y0: cy - h/2, X1: cx + w/2, Y1: cy + h/2}
}

// Axes maps a data rectangle onto a pixel box of its figure.
type Axes struct {
	fig        *Figure
	box        Rect
	xlim, ylim grid.Interval
	drawn      int
}

func (a *Axes) Box() Rect { return a.box }

func (a *Axes) Limits() (x, y grid.Interval) { return a.xlim, a.ylim }

// ToPixel maps data coordinates to figure pixels.
func (a *Axes) ToPixel(x, y float64) (px, py float64) {
	px = a.box.X0 + (x-a.xlim.Lo)/a.xlim.Span()*a.box.W()
	py = a.box.Y1 - (y-a.ylim.Lo)/a.ylim.Span()*a.box.H()
	return px, py
}

// FromPixel maps figure pixels back to data coordinates.
func (a *Axes) FromPixel(px, py float64) (x, y float64) {
	x = a.xlim.Lo + (px-a.box.X0)/a.box.W()*a.xlim.Span()
	y = a.ylim.Lo + (a.box.Y1-py)/a.box.H()*a.ylim.Span()
	return x, y
}

// Contains reports whether a figure pixel lies inside the axes box.
func (a *Axes) Contains(px, py float64) bool {
	return px >= a.box.X0 && px <= a.box.X1 && py >= a.box.Y0 && py <= a.box.Y1
}

// DataCoords is FromPixel; it lets axes act as an inspector surface.
func (a *Axes) DataCoords(px, py float64) (x, y float64) { return a.FromPixel(px, py) }

// Plot strokes the polyline through pts. The line is broken at
// non-finite points and at points far outside the figure, so singular
// samples leave gaps instead of failing. Curves with an empty colour take
// the next colour of the cycle.
func (a *Axes) Plot(pts []complex128, s Style) error {
	col := s.Color
	if col == "" {
		col = Cycle[a.drawn%len(Cycle)]
		a.drawn++
	}
	c := ParseColor(col)

	dc := a.fig.dc
	w, h := a.fig.Size()
	guard := 8 * math.Max(float64(w), float64(h))

	dc.Push()
	defer dc.Pop()
	dc.ClearPath()
	dc.DrawRectangle(a.box.X0, a.box.Y0, a.box.W(), a.box.H())
	dc.Clip()

	open := false
	for _, p := range pts {
		x, y := real(p), imag(p)
		if !finite(x) || !finite(y) {
			open = false
			continue
		}
		px, py := a.ToPixel(x, y)
		if math.Abs(px) > guard || math.Abs(py) > guard {
			open = false
			continue
		}
		if open {
			dc.LineTo(px, py)
		} else {
			dc.MoveTo(px, py)
			open = true
		}
	}

	dc.SetRGBA(c.R, c.G, c.B, s.alpha())
	dc.SetLineWidth(a.fig.opts.PointsToPixels(s.width()))
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	if err := dc.Stroke(); err != nil {
		return fmt.Errorf("stroke curve: %w", err)
	}
	return nil
}

// DrawImage scales img with nearest-neighbour sampling to fill the box.
func (a *Axes) DrawImage(img image.Image) {
	w := int(math.Round(a.box.W()))
	h := int(math.Round(a.box.H()))
	if w <= 0 || h <= 0 {
		return
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	a.fig.dc.DrawImage(gg.ImageBufFromImage(dst), math.Round(a.box.X0), math.Round(a.box.Y0))
}

// SetTitle writes s centred above the box.
func (a *Axes) SetTitle(s string) {
	gap := a.fig.opts.PointsToPixels(4)
	a.fig.label(s, (a.box.X0+a.box.X1)/2, a.box.Y0-gap, 0.5, 0, gg.Black)
}

// Tick is a labelled position along one axis in data coordinates.
type Tick struct {
	Value float64
	Label string
}

// NiceTicks places about target ticks at multiples of 1, 2 or 5 times a
// power of ten.
func NiceTicks(lim grid.Interval, target int) []Tick {
	span := lim.Span()
	if !(span > 0) || math.IsInf(span, 0) || target < 1 {
		return nil
	}
	raw := span / float64(target)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	step := 10 * mag
	for _, m := range []float64{1, 2, 5} {
		if m*mag >= raw {
			step = m * mag
			break
		}
	}

	var ticks []Tick
	for k := math.Ceil(lim.Lo / step); k*step <= lim.Hi; k++ {
		v := k * step
		if v == 0 {
			v = 0 // drop the sign of -0
		}
		ticks = append(ticks, Tick{Value: v, Label: fmt.Sprintf("%g", grid.Round(v, 10))})
	}
	return ticks
}

// Frame draws the box outline with tick marks and labels.
func (a *Axes) Frame(xticks, yticks []Tick) error {
	dc := a.fig.dc
	dc.ClearPath()
	dc.DrawRectangle(a.box.X0, a.box.Y0, a.box.W(), a.box.H())
	mark := a.fig.opts.PointsToPixels(3.5)
	pad := a.fig.opts.PointsToPixels(2)
	for _, t := range xticks {
		px, _ := a.ToPixel(t.Value, a.ylim.Lo)
		dc.MoveTo(px, a.box.Y1)
		dc.LineTo(px, a.box.Y1+mark)
	}
	for _, t := range yticks {
		_, py := a.ToPixel(a.xlim.Lo, t.Value)
		dc.MoveTo(a.box.X0, py)
		dc.LineTo(a.box.X0-mark, py)
	}
	dc.SetRGBA(0, 0, 0, 1)
	dc.SetLineWidth(a.fig.opts.PointsToPixels(0.8))
	if err := dc.Stroke(); err != nil {
		return fmt.Errorf("stroke frame: %w", err)
	}

	for _, t := range xticks {
		px, _ := a.ToPixel(t.Value, a.ylim.Lo)
		a.fig.label(t.Label, px, a.box.Y1+mark+pad, 0.5, 1, gg.Black)
	}
	for _, t := range yticks {
		_, py := a.ToPixel(a.xlim.Lo, t.Value)
		a.fig.label(t.Label, a.box.X0-mark-pad, py, 1, 0.5, gg.Black)
	}
	return nil
}

// Grid draws faint lines across the box at the tick positions.
func (a *Axes) Grid(xticks, yticks []Tick, alpha float64) error {
	dc := a.fig.dc
	dc.ClearPath()
	for _, t := range xticks {
		px, _ := a.ToPixel(t.Value, 0)
		dc.MoveTo(px, a.box.Y0)
		dc.LineTo(px, a.box.Y1)
	}
	for _, t := range yticks {
		_, py := a.ToPixel(0, t.Value)
		dc.MoveTo(a.box.X0, py)
		dc.LineTo(a.box.X1, py)
	}
	dc.SetRGBA(0.5, 0.5, 0.5, alpha)
	dc.SetLineWidth(a.fig.opts.PointsToPixels(0.8))
	if err := dc.Stroke(); err != nil {
		return fmt.Errorf("stroke grid: %w", err)
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
