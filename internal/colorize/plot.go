package colorize

import (
	"fmt"
	"math"
	"strconv"

	"github.com/san-kum/planeviz/internal/functions"
	"github.com/san-kum/planeviz/internal/grid"
	"github.com/san-kum/planeviz/internal/plot"
)

// DefaultFigure is the size of the side-by-side colour plot.
func DefaultFigure() plot.Options {
	return plot.Options{Width: 16, Height: 8, DPI: 100, FontSize: 10}
}

// Panel is one coloured image of the plane. Its axes run in pixel units
// like an image plot; XAxis and YAxis convert back to the complex plane.
type Panel struct {
	Title  string
	Image  *Raster
	Axes   *plot.Axes
	XAxis  PixelAxis
	YAxis  PixelAxis
	Values [][]complex128
}

// Complex returns the plane coordinate under the pixel-space point (px, py).
func (p *Panel) Complex(px, py float64) complex128 {
	return complex(p.XAxis.FromPixel(px), p.YAxis.FromPixel(py))
}

// Value returns the sample nearest to the pixel-space point (px, py).
func (p *Panel) Value(px, py float64) (complex128, bool) {
	i, j := int(math.Floor(px+0.5)), int(math.Floor(py+0.5))
	if i < 0 || i >= len(p.Values) || j < 0 || len(p.Values) == 0 || j >= len(p.Values[0]) {
		return 0, false
	}
	return p.Values[i][j], true
}

// ColorPlot holds the sampled function and both panels.
type ColorPlot struct {
	Figure *plot.Figure
	Mesh   *grid.Mesh
	Input  *Panel
	Output *Panel
}

// Sample evaluates f on the mesh over xlim x ylim and colours the input
// plane and its image.
func Sample(f functions.Func, xlim, ylim grid.Interval, step float64, enc Encoder) (in, out *Raster, mesh *grid.Mesh, err error) {
	d, err := grid.NewDomain(xlim, ylim)
	if err != nil {
		return nil, nil, nil, err
	}
	mesh, err = grid.NewMesh(d, step)
	if err != nil {
		return nil, nil, nil, err
	}
	nx, ny := mesh.Size()
	if nx == 0 || ny == 0 {
		return nil, nil, nil, fmt.Errorf("%w: step %g leaves an empty mesh", grid.ErrInvalidStep, step)
	}
	w := functions.ApplyMesh(f, mesh.Z)
	return NewRaster(mesh.Z, enc), NewRaster(w, enc), mesh, nil
}

// Plot renders the Input and Output panels side by side.
func Plot(f functions.Func, xlim, ylim grid.Interval, step float64, enc Encoder, opts plot.Options) (*ColorPlot, error) {
	in, out, mesh, err := Sample(f, xlim, ylim, step, enc)
	if err != nil {
		return nil, err
	}

	fig := plot.NewFigure(opts)
	cp := &ColorPlot{Figure: fig, Mesh: mesh}
	cp.Input, err = panel(fig, 1, "Input", in, mesh, step)
	if err == nil {
		cp.Output, err = panel(fig, 2, "Output", out, mesh, step)
	}
	if err != nil {
		fig.Close()
		return nil, err
	}
	return cp, nil
}

func panel(fig *plot.Figure, index int, title string, r *Raster, mesh *grid.Mesh, step float64) (*Panel, error) {
	nx, ny := mesh.Size()
	xlim := grid.Interval{Lo: -0.5, Hi: float64(nx) - 0.5}
	ylim := grid.Interval{Lo: -0.5, Hi: float64(ny) - 0.5}

	p := &Panel{
		Title:  title,
		Image:  r,
		Axes:   fig.Subplot(1, 2, index, xlim, ylim, true),
		XAxis:  NewPixelAxis(mesh.Domain.X, step),
		YAxis:  NewPixelAxis(mesh.Domain.Y, step),
		Values: r.Values,
	}
	p.Axes.DrawImage(r.Image)
	p.Axes.SetTitle(title)

	xt := pixelTicks(p.XAxis, mesh.Domain.X.Hi)
	yt := pixelTicks(p.YAxis, mesh.Domain.Y.Hi)
	if err := p.Axes.Grid(xt, yt, 0.2); err != nil {
		return nil, err
	}
	if err := p.Axes.Frame(xt, yt); err != nil {
		return nil, err
	}
	return p, nil
}

func pixelTicks(a PixelAxis, hi float64) []plot.Tick {
	pos, labels := a.Ticks(hi)
	ticks := make([]plot.Tick, len(pos))
	for i := range pos {
		ticks[i] = plot.Tick{Value: float64(pos[i]), Label: strconv.FormatFloat(grid.Round(labels[i], 6), 'g', -1, 64)}
	}
	return ticks
}

// Save writes the figure as PNG, appending ".png" when missing.
func (cp *ColorPlot) Save(path string) (string, error) {
	return cp.Figure.SavePNG(path)
}

func (cp *ColorPlot) Close() error { return cp.Figure.Close() }
