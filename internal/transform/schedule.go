package transform

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Transition interpolates linearly between z (t=0) and fz (t=1).
func Transition(z, fz complex128, t float64) complex128 {
	return z*complex(1-t, 0) + fz*complex(t, 0)
}

// TransitionPoints applies Transition pairwise. The shorter slice bounds
// the result.
func TransitionPoints(z, fz []complex128, t float64) []complex128 {
	n := min(len(z), len(fz))
	out := make([]complex128, n)
	for i := range out {
		out[i] = Transition(z[i], fz[i], t)
	}
	return out
}

// Ease decelerates towards t=1.
func Ease(t float64) float64 {
	return 1 - (t-1)*(t-1)
}

// FrameTimes returns the transition value of every frame: a ramp from 0 to
// 1 over seconds, half a second held at 1 and, with reverse, the mirrored
// ramp followed by half a second at 0.
func FrameTimes(seconds float64, fps int, reverse bool) ([]float64, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidSchedule, fps)
	}
	if !(seconds >= 0) || math.IsInf(seconds, 0) {
		return nil, fmt.Errorf("%w: seconds must be finite and non-negative, got %g", ErrInvalidSchedule, seconds)
	}

	ramp := int(seconds * float64(fps))
	hold := int(0.5 * float64(fps))

	frames := make([]float64, 0, 2*(ramp+hold))
	frames = append(frames, linspace(0, 1, ramp)...)
	frames = append(frames, constant(1, hold)...)
	if reverse {
		frames = append(frames, linspace(1, 0, ramp)...)
		frames = append(frames, constant(0, hold)...)
	}
	return frames, nil
}

func linspace(lo, hi float64, n int) []float64 {
	switch n {
	case 0:
		return nil
	case 1:
		return []float64{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}

func constant(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
