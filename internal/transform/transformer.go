// Package transform animates a complex function as a deformation of the
// plane: grid lines and user curves move from their input positions to
// their images under the function.
package transform

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/gogpu/gg"
	"github.com/san-kum/planeviz/internal/functions"
	"github.com/san-kum/planeviz/internal/grid"
	"github.com/san-kum/planeviz/internal/plot"
)

// DefaultStep is the spacing of points along grid lines.
const DefaultStep = 0.01

// Margin is the fraction of the data span added on each side when plot
// limits are computed from the curves.
const Margin = 0.05

var (
	ErrLengthMismatch  = errors.New("transform: input and output lengths differ")
	ErrInvalidSchedule = errors.New("transform: invalid frame schedule")
)

// Curve is a polyline in the input plane together with its image.
type Curve struct {
	In    []complex128
	Out   []complex128
	Style plot.Style
}

// At returns the curve interpolated to transition value t.
func (c Curve) At(t float64) []complex128 {
	return TransitionPoints(c.In, c.Out, t)
}

// Transformer holds a function, the sampled domain and every curve drawn
// with it. Grid lines are added on construction.
type Transformer struct {
	f      functions.Func
	domain grid.Domain
	sep    float64
	step   float64
	curves []Curve

	plotX, plotY *grid.Interval
	logger       *slog.Logger
}

type Option func(*Transformer)

// WithStep sets the point density of the grid lines.
func WithStep(step float64) Option {
	return func(t *Transformer) { t.step = step }
}

// WithPlotLimits fixes the visible area instead of fitting it to the curves.
func WithPlotLimits(x, y grid.Interval) Option {
	return func(t *Transformer) {
		t.plotX = &x
		t.plotY = &y
	}
}

func WithPlotXLim(x grid.Interval) Option {
	return func(t *Transformer) { t.plotX = &x }
}

func WithPlotYLim(y grid.Interval) Option {
	return func(t *Transformer) { t.plotY = &y }
}

func WithLogger(l *slog.Logger) Option {
	return func(t *Transformer) {
		if l != nil {
			t.logger = l
		}
	}
}

// New builds a transformer for f over xlim x ylim with grid lines every
// separation units.
func New(f functions.Func, xlim, ylim grid.Interval, separation float64, opts ...Option) (*Transformer, error) {
	if f == nil {
		return nil, errors.New("transform: nil function")
	}
	d, err := grid.NewDomain(xlim, ylim)
	if err != nil {
		return nil, err
	}

	t := &Transformer{
		f:      f,
		domain: d,
		sep:    separation,
		step:   DefaultStep,
		logger: gg.Logger(),
	}
	for _, opt := range opts {
		opt(t)
	}
	for _, lim := range []*grid.Interval{t.plotX, t.plotY} {
		if lim == nil {
			continue
		}
		if err := lim.Validate(); err != nil {
			return nil, fmt.Errorf("plot limits: %w", err)
		}
	}

	if err := t.addGrid(); err != nil {
		return nil, err
	}
	t.logger.Debug("transformer ready",
		"domain_x", d.X.String(), "domain_y", d.Y.String(),
		"separation", separation, "step", t.step, "curves", len(t.curves))
	return t, nil
}

func (t *Transformer) Func() functions.Func { return t.f }

func (t *Transformer) Domain() grid.Domain { return t.domain }

// lineStyle is the style of a grid line at coordinate v: faint by default,
// opaque on integers, black and wide on the axis itself.
func lineStyle(v float64, color string) plot.Style {
	s := plot.Style{Color: color, Width: 1, Alpha: 0.2}
	if v == math.Trunc(v) {
		s.Alpha = 1
	}
	if v == 0 {
		s.Color = "black"
		s.Width = 2
	}
	return s
}

func (t *Transformer) addGrid() error {
	xs, err := grid.Arange(t.domain.X.Lo, t.domain.X.Hi, t.sep)
	if err != nil {
		return fmt.Errorf("grid separation: %w", err)
	}
	ys, err := grid.Arange(t.domain.Y.Lo, t.domain.Y.Hi, t.sep)
	if err != nil {
		return fmt.Errorf("grid separation: %w", err)
	}

	for _, x := range xs {
		x = grid.Round(x, 4)
		pts, err := grid.VerticalLine(x, t.domain.Y, t.step)
		if err != nil {
			return fmt.Errorf("curve step: %w", err)
		}
		t.AddCurve(pts, lineStyle(x, "blue"))
	}
	for _, y := range ys {
		y = grid.Round(y, 4)
		pts, err := grid.HorizontalLine(y, t.domain.X, t.step)
		if err != nil {
			return fmt.Errorf("curve step: %w", err)
		}
		t.AddCurve(pts, lineStyle(y, "red"))
	}
	return nil
}

// AddCurve appends z and its image under the function.
func (t *Transformer) AddCurve(z []complex128, s plot.Style) {
	in := append([]complex128(nil), z...)
	t.curves = append(t.curves, Curve{In: in, Out: functions.Apply(t.f, in), Style: s})
}

// AddMappedCurve appends z with a precomputed image fz.
func (t *Transformer) AddMappedCurve(z, fz []complex128, s plot.Style) error {
	if len(z) != len(fz) {
		return fmt.Errorf("%w: %d input points, %d output points", ErrLengthMismatch, len(z), len(fz))
	}
	t.curves = append(t.curves, Curve{
		In:    append([]complex128(nil), z...),
		Out:   append([]complex128(nil), fz...),
		Style: s,
	})
	return nil
}

// Curves returns the stored curves, grid lines first, in insertion order.
func (t *Transformer) Curves() []Curve { return t.curves }

// Limits returns the visible area. Axes without fixed limits are fitted
// to every finite input and output point with a 5% margin.
func (t *Transformer) Limits() (x, y grid.Interval) {
	if t.plotX != nil && t.plotY != nil {
		return *t.plotX, *t.plotY
	}

	bx, by := bounds(t.curves)
	x = fitted(bx, t.domain.X)
	y = fitted(by, t.domain.Y)
	if t.plotX != nil {
		x = *t.plotX
	}
	if t.plotY != nil {
		y = *t.plotY
	}
	return x, y
}

type span struct {
	lo, hi float64
	ok     bool
}

func (s *span) add(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	if !s.ok {
		s.lo, s.hi, s.ok = v, v, true
		return
	}
	s.lo = math.Min(s.lo, v)
	s.hi = math.Max(s.hi, v)
}

func bounds(curves []Curve) (x, y span) {
	for _, c := range curves {
		for _, pts := range [][]complex128{c.In, c.Out} {
			for _, p := range pts {
				x.add(real(p))
				y.add(imag(p))
			}
		}
	}
	return x, y
}

func fitted(s span, fallback grid.Interval) grid.Interval {
	if !s.ok {
		return fallback
	}
	if s.hi == s.lo {
		return grid.Interval{Lo: s.lo - 0.5, Hi: s.hi + 0.5}
	}
	d := (s.hi - s.lo) * Margin
	return grid.Interval{Lo: s.lo - d, Hi: s.hi + d}
}
