// Package functions provides complex-valued functions of one complex
// variable and helpers to apply them elementwise over curves and meshes.
//
// Functions never fail: singular points evaluate to NaN or Inf and the
// caller renders them as absent or saturated.
package functions

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrUnknownFunction is returned by Lookup for unregistered names.
	ErrUnknownFunction = errors.New("functions: unknown function")

	// ErrMatrixShape indicates a linear map that is not 2x2.
	ErrMatrixShape = errors.New("functions: linear map must be 2x2")
)

// Func maps a complex number to a complex number.
type Func func(z complex128) complex128

// Apply evaluates f at every point of z.
func Apply(f Func, z []complex128) []complex128 {
	out := make([]complex128, len(z))
	for i, v := range z {
		out[i] = f(v)
	}
	return out
}

// ApplyMesh evaluates f at every point of a 2D array, keeping its layout.
func ApplyMesh(f Func, z [][]complex128) [][]complex128 {
	out := make([][]complex128, len(z))
	for i, col := range z {
		out[i] = Apply(f, col)
	}
	return out
}

func Identity(z complex128) complex128 { return z }

// Joukowsky is 0.5*(z + 1/z). It has a pole at the origin.
func Joukowsky(z complex128) complex128 { return 0.5 * (z + 1/z) }

// LogBranch returns the logarithm whose imaginary part lies in
// (phi, phi+2pi]. phi = -pi gives the principal branch.
func LogBranch(phi float64) Func {
	delta := phi + math.Pi
	rot := cmplx.Exp(complex(0, -delta))
	return func(z complex128) complex128 {
		return cmplx.Log(z*rot) + complex(0, delta)
	}
}

// Linear returns the plane map (x, y) -> A*(x, y) for a real 2x2 matrix.
// The result is generally not holomorphic.
func Linear(a mat.Matrix) (Func, error) {
	if r, c := a.Dims(); r != 2 || c != 2 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrMatrixShape, r, c)
	}
	m := mat.DenseCopyOf(a)
	return func(z complex128) complex128 {
		var out mat.VecDense
		out.MulVec(m, mat.NewVecDense(2, []float64{real(z), imag(z)}))
		return complex(out.AtVec(0), out.AtVec(1))
	}, nil
}

// LinearRows is Linear for a matrix given as rows.
func LinearRows(rows [][]float64) (Func, error) {
	if len(rows) != 2 || len(rows[0]) != 2 || len(rows[1]) != 2 {
		return nil, fmt.Errorf("%w: got %d rows", ErrMatrixShape, len(rows))
	}
	return Linear(mat.NewDense(2, 2, []float64{rows[0][0], rows[0][1], rows[1][0], rows[1][1]}))
}

// Params carries the optional parameters of a registered function.
type Params struct {
	Branch float64
	Matrix [][]float64
}

type factory func(p Params) (Func, error)

func fixed(f Func) factory {
	return func(Params) (Func, error) { return f, nil }
}

var registry = map[string]factory{
	"identity":  fixed(Identity),
	"joukowsky": fixed(Joukowsky),
	"square":    fixed(func(z complex128) complex128 { return z * z }),
	"cube":      fixed(func(z complex128) complex128 { return z * z * z }),
	"inverse":   fixed(func(z complex128) complex128 { return 1 / z }),
	"exp":       fixed(cmplx.Exp),
	"sin":       fixed(cmplx.Sin),
	"cos":       fixed(cmplx.Cos),
	"sqrt":      fixed(cmplx.Sqrt),
	"log": func(p Params) (Func, error) {
		return LogBranch(p.Branch), nil
	},
	"linear": func(p Params) (Func, error) {
		return LinearRows(p.Matrix)
	},
}

// Lookup builds the named function with the given parameters.
func Lookup(name string, p Params) (Func, error) {
	mk, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownFunction, name, Names())
	}
	return mk(p)
}

// Names lists the registered function names in order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
