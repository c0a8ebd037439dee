// Package colorize implements domain coloring: the phase of a complex value
// selects the hue and its (optionally clipped) magnitude scales the
// brightness.
package colorize

import (
	"image"
	"image/color"
	"math"
	"math/cmplx"

	"github.com/lucasb-eyer/go-colorful"
)

// Encoder maps complex samples to colours.
type Encoder struct {
	// Power is the exponent applied to the normalised magnitude. Values
	// above 1 emphasise high-magnitude regions.
	Power float64
	// Clip truncates magnitudes before normalisation. Zero or negative
	// disables clipping.
	Clip float64
}

// NewEncoder returns an encoder with power 1 and no clipping.
func NewEncoder() Encoder { return Encoder{Power: 1} }

// Hue returns mod(angle(w), 2pi) scaled to [0, 1). NaN phases stay NaN.
func Hue(w complex128) float64 {
	h := math.Mod(cmplx.Phase(w), 2*math.Pi)
	if h < 0 {
		h += 2 * math.Pi
	}
	h /= 2 * math.Pi
	if h >= 1 {
		h = 0
	}
	return h
}

// Magnitude returns |w|, clipped from above when e.Clip is set.
func (e Encoder) Magnitude(w complex128) float64 {
	m := cmplx.Abs(w)
	if e.Clip > 0 && m > e.Clip {
		m = e.Clip
	}
	return m
}

// Scale returns the brightness factor (m/max)^Power for a magnitude m.
func (e Encoder) Scale(m, max float64) float64 {
	return math.Pow(m/max, e.Power)
}

// NaNMax returns the largest clipped magnitude in w, ignoring NaN.
// It returns NaN when every sample is NaN.
func (e Encoder) NaNMax(w [][]complex128) float64 {
	max := math.NaN()
	for _, col := range w {
		for _, v := range col {
			m := e.Magnitude(v)
			if math.IsNaN(m) {
				continue
			}
			if math.IsNaN(max) || m > max {
				max = m
			}
		}
	}
	return max
}

// Color returns the colour of w for the normalisation denominator max.
// Undefined samples are transparent.
func (e Encoder) Color(w complex128, max float64) color.NRGBA {
	h := Hue(w)
	s := e.Scale(e.Magnitude(w), max)
	if math.IsNaN(h) || math.IsNaN(s) || math.IsInf(s, 0) {
		return color.NRGBA{}
	}
	c := colorful.Hsv(h*360, 1, 1)
	return color.NRGBA{
		R: channel(c.R * s),
		G: channel(c.G * s),
		B: channel(c.B * s),
		A: 0xff,
	}
}

// Encode colours a 2D x-major array. W[i][j] lands at column i and, with
// the origin at the bottom, row ny-1-j.
func (e Encoder) Encode(w [][]complex128) *image.NRGBA {
	nx := len(w)
	ny := 0
	if nx > 0 {
		ny = len(w[0])
	}
	img := image.NewNRGBA(image.Rect(0, 0, nx, ny))
	max := e.NaNMax(w)
	for i, col := range w {
		for j, v := range col {
			img.SetNRGBA(i, ny-1-j, e.Color(v, max))
		}
	}
	return img
}

func channel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xff
	}
	return uint8(math.Round(v * 0xff))
}

// Raster is a coloured sample array together with the samples.
type Raster struct {
	Values [][]complex128
	Image  *image.NRGBA
}

func NewRaster(w [][]complex128, e Encoder) *Raster {
	return &Raster{Values: w, Image: e.Encode(w)}
}
