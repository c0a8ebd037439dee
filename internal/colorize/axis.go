package colorize

import (
	"math"

	"github.com/san-kum/planeviz/internal/grid"
)

// PixelAxis is the affine map between one axis of the complex plane and
// pixel indices of a mesh sampled at Step from Lo.
type PixelAxis struct {
	Lo, Step float64
}

func NewPixelAxis(lim grid.Interval, step float64) PixelAxis {
	return PixelAxis{Lo: lim.Lo, Step: step}
}

func (a PixelAxis) ToPixel(v float64) float64 { return (v - a.Lo) / a.Step }

func (a PixelAxis) FromPixel(p float64) float64 { return a.Lo + p*a.Step }

// PixelIndex truncates ToPixel to an integer index.
func (a PixelAxis) PixelIndex(v float64) int { return int(a.ToPixel(v)) }

// Ticks returns the pixel positions of the whole-unit labels Lo, Lo+1, ...
// up to hi inclusive.
func (a PixelAxis) Ticks(hi float64) (positions []int, labels []float64) {
	labels, err := grid.Arange(a.Lo, hi+grid.Epsilon, 1)
	if err != nil {
		return nil, nil
	}
	positions = make([]int, len(labels))
	for i, l := range labels {
		positions[i] = a.PixelIndex(l)
	}
	return positions, labels
}

// Clamp bounds a pixel coordinate to [0, n-1].
func Clamp(p float64, n int) float64 {
	return math.Max(0, math.Min(p, float64(n-1)))
}
