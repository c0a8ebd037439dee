package grid

// Mesh is a uniform grid of complex samples covering a domain.
// Z is x-major: Z[i][j] = xs[i] + i*ys[j].
type Mesh struct {
	Domain Domain
	Step   float64
	Xs, Ys []float64
	Z      [][]complex128
}

// NewMesh samples d at the given step on both axes.
func NewMesh(d Domain, step float64) (*Mesh, error) {
	xs, err := Arange(d.X.Lo, d.X.Hi, step)
	if err != nil {
		return nil, err
	}
	ys, err := Arange(d.Y.Lo, d.Y.Hi, step)
	if err != nil {
		return nil, err
	}

	z := make([][]complex128, len(xs))
	for i, x := range xs {
		col := make([]complex128, len(ys))
		for j, y := range ys {
			col[j] = complex(x, y)
		}
		z[i] = col
	}
	return &Mesh{Domain: d, Step: step, Xs: xs, Ys: ys, Z: z}, nil
}

// Size returns the number of samples along x and y.
func (m *Mesh) Size() (nx, ny int) { return len(m.Xs), len(m.Ys) }

// VerticalLine returns the points x + i*y for y over lim at the given step.
func VerticalLine(x float64, lim Interval, step float64) ([]complex128, error) {
	ys, err := Arange(lim.Lo, lim.Hi, step)
	if err != nil {
		return nil, err
	}
	pts := make([]complex128, len(ys))
	for i, y := range ys {
		pts[i] = complex(x, y)
	}
	return pts, nil
}

// HorizontalLine returns the points x + i*y for x over lim at the given step.
func HorizontalLine(y float64, lim Interval, step float64) ([]complex128, error) {
	xs, err := Arange(lim.Lo, lim.Hi, step)
	if err != nil {
		return nil, err
	}
	pts := make([]complex128, len(xs))
	for i, x := range xs {
		pts[i] = complex(x, y)
	}
	return pts, nil
}
