package grid

import (
	"errors"
	"math"
	"testing"
)

func TestArange(t *testing.T) {
	tests := []struct {
		name              string
		start, stop, step float64
		want              int
	}{
		{"unit", 0, 1, 0.25, 4},
		{"inclusive via epsilon", -2, 2 + Epsilon, 0.5, 9},
		{"fractional tail", 0, 1.1, 0.5, 3},
		{"empty", 1, 1, 0.1, 0},
		{"reversed", 2, 1, 0.1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Arange(tt.start, tt.stop, tt.step)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d (%v)", len(got), tt.want, got)
			}
			if len(got) > 0 && got[0] != tt.start {
				t.Errorf("first = %v, want %v", got[0], tt.start)
			}
		})
	}
}

func TestArange_InvalidStep(t *testing.T) {
	for _, step := range []float64{0, -0.1, math.NaN(), math.Inf(1)} {
		if _, err := Arange(0, 1, step); !errors.Is(err, ErrInvalidStep) {
			t.Errorf("step %v: expected ErrInvalidStep, got %v", step, err)
		}
	}
}

func TestNewDomain(t *testing.T) {
	d, err := NewDomain(Interval{-2, 2}, Interval{-1, 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.X.Lo != -2 || d.X.Hi != 2+Epsilon {
		t.Errorf("x = %v", d.X)
	}
	if d.Y.Lo != -1 || d.Y.Hi != 3+Epsilon {
		t.Errorf("y = %v", d.Y)
	}

	bad := []struct {
		name string
		x, y Interval
	}{
		{"equal x", Interval{1, 1}, Interval{0, 1}},
		{"reversed y", Interval{0, 1}, Interval{1, 0}},
		{"nan", Interval{math.NaN(), 1}, Interval{0, 1}},
		{"inf", Interval{0, math.Inf(1)}, Interval{0, 1}},
	}
	for _, tt := range bad {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewDomain(tt.x, tt.y); !errors.Is(err, ErrInvalidBounds) {
				t.Errorf("expected ErrInvalidBounds, got %v", err)
			}
		})
	}
}

func TestNewMesh(t *testing.T) {
	d, _ := NewDomain(Interval{-1, 1}, Interval{0, 1})
	m, err := NewMesh(d, 0.5)
	if err != nil {
		t.Fatalf("mesh failed: %v", err)
	}

	nx, ny := m.Size()
	if nx != 5 || ny != 3 {
		t.Fatalf("size = %dx%d, want 5x3", nx, ny)
	}
	if m.Z[0][0] != complex(-1, 0) {
		t.Errorf("Z[0][0] = %v", m.Z[0][0])
	}
	if m.Z[4][2] != complex(1, 1) {
		t.Errorf("Z[4][2] = %v", m.Z[4][2])
	}
	if real(m.Z[2][1]) != m.Xs[2] || imag(m.Z[2][1]) != m.Ys[1] {
		t.Errorf("Z is not x-major: %v", m.Z[2][1])
	}
}

func TestLines(t *testing.T) {
	lim := Interval{0, 1 + Epsilon}

	v, err := VerticalLine(0.5, lim, 0.25)
	if err != nil {
		t.Fatal(err)
	}
	if len(v) != 5 {
		t.Fatalf("vertical len = %d, want 5", len(v))
	}
	for _, p := range v {
		if real(p) != 0.5 {
			t.Errorf("vertical point off line: %v", p)
		}
	}

	h, err := HorizontalLine(-0.5, lim, 0.25)
	if err != nil {
		t.Fatal(err)
	}
	if imag(h[len(h)-1]) != -0.5 || real(h[len(h)-1]) != 1 {
		t.Errorf("horizontal last = %v", h[len(h)-1])
	}
}

func TestRound(t *testing.T) {
	if got := Round(0.30000000000000004, 4); got != 0.3 {
		t.Errorf("Round = %v", got)
	}
	if got := Round(-1.99999, 4); got != -2 {
		t.Errorf("Round = %v", got)
	}
}
