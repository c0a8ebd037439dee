package transform_test

import (
	"context"
	"errors"
	"image"
	"math"
	"math/cmplx"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/planeviz/internal/functions"
	"github.com/san-kum/planeviz/internal/grid"
	"github.com/san-kum/planeviz/internal/plot"
	"github.com/san-kum/planeviz/internal/transform"
)

type frameSink struct {
	frames []image.Image
	failAt int
}

func (s *frameSink) WriteFrame(img image.Image) error {
	if s.failAt > 0 && len(s.frames)+1 == s.failAt {
		return errors.New("disk full")
	}
	s.frames = append(s.frames, img)
	return nil
}

func (s *frameSink) Close() error { return nil }

func sameImage(a, b image.Image) bool {
	if a.Bounds() != b.Bounds() {
		return false
	}
	r := a.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			ar, ag, ab, aa := a.At(x, y).RGBA()
			br, bg, bb, ba := b.At(x, y).RGBA()
			if ar != br || ag != bg || ab != bb || aa != ba {
				return false
			}
		}
	}
	return true
}

func snapshotImage(tr *transform.Transformer, t float64) image.Image {
	fig, err := tr.Snapshot(t, small)
	Expect(err).NotTo(HaveOccurred())
	defer fig.Close()
	return fig.Image()
}

var small = plot.Options{Width: 2, Height: 2, DPI: 40}

func unit(lo, hi float64) grid.Interval { return grid.Interval{Lo: lo, Hi: hi} }

var _ = Describe("Transition", func() {
	It("is the identity at t=0 and the function at t=1", func() {
		for _, z := range []complex128{0, 1, 1i, complex(-0.3, 2.5)} {
			fz := functions.Joukowsky(z + 0.1)
			Expect(transform.Transition(z, fz, 0)).To(Equal(z))
			Expect(cmplx.Abs(transform.Transition(z, fz, 1) - fz)).To(BeNumerically("<", 1e-12))
		}
	})

	It("interpolates linearly", func() {
		Expect(transform.Transition(0, 2+2i, 0.25)).To(Equal(complex(0.5, 0.5)))
	})

	It("pairs points up to the shorter slice", func() {
		p := transform.TransitionPoints([]complex128{0, 1, 2}, []complex128{2, 3}, 0.5)
		Expect(p).To(Equal([]complex128{1, 2}))
	})
})

var _ = Describe("Ease", func() {
	It("maps 0 to 0 and 1 to 1 and decelerates", func() {
		Expect(transform.Ease(0)).To(Equal(0.0))
		Expect(transform.Ease(1)).To(Equal(1.0))
		Expect(transform.Ease(0.5)).To(Equal(0.75))
	})
})

var _ = Describe("FrameTimes", func() {
	It("ramps then holds", func() {
		times, err := transform.FrameTimes(2, 10, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(times).To(HaveLen(2*10 + 5))
		Expect(times[0]).To(Equal(0.0))
		Expect(times[19]).To(Equal(1.0))
		for _, t := range times[20:] {
			Expect(t).To(Equal(1.0))
		}
	})

	It("doubles with reverse and ends at zero", func() {
		times, err := transform.FrameTimes(16, 60, true)
		Expect(err).NotTo(HaveOccurred())
		Expect(times).To(HaveLen(2 * (16*60 + 30)))
		Expect(times[16*60+30]).To(Equal(1.0))
		Expect(times[len(times)-1]).To(Equal(0.0))
	})

	It("truncates fractional frame counts", func() {
		times, err := transform.FrameTimes(0.55, 25, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(times).To(HaveLen(13 + 12))
	})

	It("handles ramps of zero and one frame", func() {
		times, err := transform.FrameTimes(0, 4, true)
		Expect(err).NotTo(HaveOccurred())
		Expect(times).To(Equal([]float64{1, 1, 0, 0}))

		times, err = transform.FrameTimes(0.25, 4, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(times).To(Equal([]float64{0, 1, 1}))
	})

	It("rejects bad input", func() {
		_, err := transform.FrameTimes(1, 0, false)
		Expect(err).To(MatchError(transform.ErrInvalidSchedule))
		_, err = transform.FrameTimes(-1, 10, false)
		Expect(err).To(MatchError(transform.ErrInvalidSchedule))
		_, err = transform.FrameTimes(math.NaN(), 10, false)
		Expect(err).To(MatchError(transform.ErrInvalidSchedule))
	})
})

var _ = Describe("Transformer", func() {
	var tr *transform.Transformer

	BeforeEach(func() {
		var err error
		tr, err = transform.New(functions.Joukowsky, unit(-1, 1), unit(-1, 1), 0.5, transform.WithStep(0.1))
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("grid lines", func() {
		It("adds one vertical and one horizontal line per separation", func() {
			Expect(tr.Curves()).To(HaveLen(5 + 5))
		})

		It("styles faint, integer and axis lines", func() {
			curves := tr.Curves()
			// x = -1, -0.5, 0, 0.5, 1
			Expect(curves[0].Style).To(Equal(plot.Style{Color: "blue", Width: 1, Alpha: 1}))
			Expect(curves[1].Style).To(Equal(plot.Style{Color: "blue", Width: 1, Alpha: 0.2}))
			Expect(curves[2].Style).To(Equal(plot.Style{Color: "black", Width: 2, Alpha: 1}))
			Expect(curves[6].Style).To(Equal(plot.Style{Color: "red", Width: 1, Alpha: 0.2}))
			Expect(curves[7].Style.Color).To(Equal("black"))
		})

		It("samples lines across the whole domain including the upper bound", func() {
			v := tr.Curves()[0]
			Expect(v.In).To(HaveLen(21))
			Expect(real(v.In[0])).To(Equal(-1.0))
			Expect(imag(v.In[0])).To(Equal(-1.0))
			Expect(imag(v.In[20])).To(BeNumerically("~", 1, 1e-9))
		})

		It("maps lines through the function", func() {
			h := tr.Curves()[5]
			for i, z := range h.In {
				Expect(h.Out[i]).To(Equal(functions.Joukowsky(z)))
			}
		})

		It("does not panic on the pole", func() {
			axis := tr.Curves()[2]
			Expect(real(axis.In[10])).To(Equal(0.0))
			Expect(math.Abs(imag(axis.In[10]))).To(BeNumerically("<", 1e-9))
		})
	})

	Describe("curves", func() {
		It("stores precomputed images", func() {
			n := len(tr.Curves())
			Expect(tr.AddMappedCurve([]complex128{0, 1}, []complex128{5, 6}, plot.Style{})).To(Succeed())
			Expect(tr.Curves()).To(HaveLen(n + 1))
			Expect(tr.Curves()[n].Out).To(Equal([]complex128{5, 6}))
		})

		It("rejects mismatched lengths", func() {
			err := tr.AddMappedCurve([]complex128{0, 1}, []complex128{5}, plot.Style{})
			Expect(err).To(MatchError(transform.ErrLengthMismatch))
		})

		It("copies the caller's points", func() {
			z := []complex128{0.5, 1}
			tr.AddCurve(z, plot.Style{Width: 4})
			z[0] = 100
			Expect(tr.Curves()[len(tr.Curves())-1].In[0]).To(Equal(complex(0.5, 0)))
		})
	})

	Describe("limits", func() {
		It("fits all finite points with a margin", func() {
			t2, err := transform.New(functions.Identity, unit(0, 1), unit(0, 2), 1, transform.WithStep(0.5))
			Expect(err).NotTo(HaveOccurred())
			x, y := t2.Limits()
			Expect(x.Lo).To(BeNumerically("~", -0.05, 1e-6))
			Expect(x.Hi).To(BeNumerically("~", 1.05, 1e-6))
			Expect(y.Lo).To(BeNumerically("~", -0.1, 1e-6))
			Expect(y.Hi).To(BeNumerically("~", 2.1, 1e-6))
		})

		It("includes curves added later", func() {
			t2, _ := transform.New(functions.Identity, unit(0, 1), unit(0, 1), 1, transform.WithStep(0.5))
			t2.AddCurve([]complex128{complex(0, 10)}, plot.Style{})
			_, y := t2.Limits()
			Expect(y.Hi).To(BeNumerically(">", 10))
		})

		It("ignores NaN and Inf samples", func() {
			x, y := tr.Limits()
			for _, v := range []float64{x.Lo, x.Hi, y.Lo, y.Hi} {
				Expect(math.IsNaN(v) || math.IsInf(v, 0)).To(BeFalse())
			}
		})

		It("uses fixed limits when given", func() {
			t2, err := transform.New(functions.Joukowsky, unit(-4, 4), unit(-4, 4), 1,
				transform.WithPlotLimits(unit(-2, 2), unit(-2, 2)))
			Expect(err).NotTo(HaveOccurred())
			x, y := t2.Limits()
			Expect(x).To(Equal(unit(-2, 2)))
			Expect(y).To(Equal(unit(-2, 2)))
		})

		It("mixes one fixed axis with one fitted axis", func() {
			t2, _ := transform.New(functions.Identity, unit(0, 1), unit(0, 1), 1,
				transform.WithStep(0.5), transform.WithPlotXLim(unit(-3, 3)))
			x, y := t2.Limits()
			Expect(x).To(Equal(unit(-3, 3)))
			Expect(y.Lo).To(BeNumerically("~", -0.05, 1e-6))
		})
	})

	Describe("construction errors", func() {
		It("rejects bad bounds and steps", func() {
			_, err := transform.New(functions.Identity, unit(1, -1), unit(0, 1), 0.1)
			Expect(err).To(MatchError(grid.ErrInvalidBounds))
			_, err = transform.New(functions.Identity, unit(0, 1), unit(0, 1), 0)
			Expect(err).To(MatchError(grid.ErrInvalidStep))
			_, err = transform.New(functions.Identity, unit(0, 1), unit(0, 1), 0.5, transform.WithStep(-1))
			Expect(err).To(MatchError(grid.ErrInvalidStep))
			_, err = transform.New(functions.Identity, unit(0, 1), unit(0, 1), 0.5,
				transform.WithPlotYLim(unit(1, 1)))
			Expect(err).To(MatchError(grid.ErrInvalidBounds))
			_, err = transform.New(nil, unit(0, 1), unit(0, 1), 0.5)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("rendering", func() {
		It("saves snapshots with a png extension", func() {
			path, err := tr.SaveSnapshot(filepath.Join(GinkgoT().TempDir(), "snap"), 0.3, small)
			Expect(err).NotTo(HaveOccurred())
			Expect(path).To(HaveSuffix(".png"))
			_, err = os.Stat(path)
			Expect(err).NotTo(HaveOccurred())
		})

		It("writes one frame per scheduled time", func() {
			sink := &frameSink{}
			var calls []int
			err := tr.Animate(context.Background(), sink, 0.5, 4, true, small, func(i, n int) {
				calls = append(calls, i)
				Expect(n).To(Equal(8))
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(sink.frames).To(HaveLen(8))
			Expect(calls).To(Equal([]int{1, 2, 3, 4, 5, 6, 7, 8}))
			w, h := small.Pixels()
			Expect(sink.frames[0].Bounds().Dx()).To(Equal(w))
			Expect(sink.frames[0].Bounds().Dy()).To(Equal(h))
		})

		It("eases every scheduled frame", func() {
			// 0.75s at 4fps ramps through raw t = 0, 0.5, 1.
			sink := &frameSink{}
			Expect(tr.Animate(context.Background(), sink, 0.75, 4, false, small, nil)).To(Succeed())
			Expect(sink.frames).To(HaveLen(3 + 2))

			Expect(sameImage(sink.frames[1], snapshotImage(tr, transform.Ease(0.5)))).To(BeTrue())
			Expect(sameImage(sink.frames[1], snapshotImage(tr, 0.5))).To(BeFalse())
		})

		It("stops when the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			sink := &frameSink{}
			err := tr.Animate(ctx, sink, 1, 4, false, small, nil)
			Expect(err).To(MatchError(context.Canceled))
			Expect(sink.frames).To(BeEmpty())
		})

		It("reports writer failures", func() {
			sink := &frameSink{failAt: 2}
			err := tr.Animate(context.Background(), sink, 1, 4, false, small, nil)
			Expect(err).To(MatchError(ContainSubstring("disk full")))
			Expect(sink.frames).To(HaveLen(1))
		})

		It("exports svg", func() {
			svg := tr.SVG(1, 100, 100)
			Expect(svg).To(HavePrefix("<?xml"))
			Expect(strings.Count(svg, "<path")).To(BeNumerically(">=", 9))
		})
	})
})
