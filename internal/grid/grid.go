package grid

import (
	"errors"
	"fmt"
	"math"
)

// Epsilon is added to the upper bound of a domain so the bound itself is
// produced by a half-open step range.
const Epsilon = 1e-8

var (
	// ErrInvalidBounds indicates an interval with lo >= hi or non-finite ends.
	ErrInvalidBounds = errors.New("grid: invalid bounds")

	// ErrInvalidStep indicates a non-positive or non-finite step.
	ErrInvalidStep = errors.New("grid: invalid step")
)

// Interval is a closed pair of bounds on one axis.
type Interval struct {
	Lo, Hi float64
}

func (iv Interval) Span() float64 { return iv.Hi - iv.Lo }

func (iv Interval) Contains(v float64) bool { return v >= iv.Lo && v <= iv.Hi }

func (iv Interval) Validate() error {
	if math.IsNaN(iv.Lo) || math.IsNaN(iv.Hi) || math.IsInf(iv.Lo, 0) || math.IsInf(iv.Hi, 0) {
		return fmt.Errorf("%w: non-finite interval [%g, %g]", ErrInvalidBounds, iv.Lo, iv.Hi)
	}
	if iv.Lo >= iv.Hi {
		return fmt.Errorf("%w: lower bound %g must be below upper bound %g", ErrInvalidBounds, iv.Lo, iv.Hi)
	}
	return nil
}

func (iv Interval) String() string { return fmt.Sprintf("[%g, %g]", iv.Lo, iv.Hi) }

// Domain is the rectangle sampled in the input plane. The upper bounds
// carry Epsilon so that ranges over them are inclusive.
type Domain struct {
	X, Y Interval
}

// NewDomain validates xlim and ylim and widens both upper bounds by Epsilon.
func NewDomain(xlim, ylim Interval) (Domain, error) {
	if err := xlim.Validate(); err != nil {
		return Domain{}, fmt.Errorf("xlim: %w", err)
	}
	if err := ylim.Validate(); err != nil {
		return Domain{}, fmt.Errorf("ylim: %w", err)
	}
	return Domain{
		X: Interval{xlim.Lo, xlim.Hi + Epsilon},
		Y: Interval{ylim.Lo, ylim.Hi + Epsilon},
	}, nil
}

func validateStep(step float64) error {
	if !(step > 0) || math.IsInf(step, 0) {
		return fmt.Errorf("%w: %g", ErrInvalidStep, step)
	}
	return nil
}

// Arange returns start, start+step, ... strictly below stop.
func Arange(start, stop, step float64) ([]float64, error) {
	if err := validateStep(step); err != nil {
		return nil, err
	}
	n := int(math.Ceil((stop - start) / step))
	if n <= 0 {
		return []float64{}, nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out, nil
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
