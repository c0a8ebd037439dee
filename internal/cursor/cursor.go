// Package cursor shows a hover annotation with the data coordinates under
// the pointer. It is independent of any toolkit: hosts feed it motion
// events and supply a canvas to redraw.
package cursor

import "fmt"

// Surface is a rendered region with its own data coordinates. Surfaces are
// compared by identity, so implementations should be pointers.
type Surface interface {
	Contains(px, py float64) bool
	DataCoords(px, py float64) (x, y float64)
}

// Canvas is redrawn after every handled event.
type Canvas interface {
	Draw()
}

// CanvasFunc adapts a function to Canvas.
type CanvasFunc func()

func (f CanvasFunc) Draw() { f() }

// Formatter builds the annotation text for data point (x, y) on s.
type Formatter func(s Surface, x, y float64) string

// DefaultFormatter prints both coordinates with two decimals.
func DefaultFormatter(_ Surface, x, y float64) string {
	return fmt.Sprintf("x: %0.2f\ny: %0.2f", x, y)
}

// DefaultOffsetX and DefaultOffsetY place the annotation box up and to the
// left of the pointer, in points.
const (
	DefaultOffsetX = -20
	DefaultOffsetY = 20
)

// Annotation is the label attached to one surface.
type Annotation struct {
	Text             string
	X, Y             float64
	OffsetX, OffsetY float64
	Visible          bool
}

// MotionEvent is a pointer move. Surface is nil when the pointer is over
// no surface.
type MotionEvent struct {
	Surface Surface
	PX, PY  float64
}

// HoverCursor keeps one lazily created annotation per surface and shows
// only the one under the pointer.
type HoverCursor struct {
	canvas      Canvas
	format      Formatter
	offX, offY  float64
	annotations map[Surface]*Annotation
}

type Option func(*HoverCursor)

func WithOffsets(dx, dy float64) Option {
	return func(h *HoverCursor) { h.offX, h.offY = dx, dy }
}

func WithFormatter(f Formatter) Option {
	return func(h *HoverCursor) {
		if f != nil {
			h.format = f
		}
	}
}

func New(canvas Canvas, opts ...Option) *HoverCursor {
	h := &HoverCursor{
		canvas:      canvas,
		format:      DefaultFormatter,
		offX:        DefaultOffsetX,
		offY:        DefaultOffsetY,
		annotations: make(map[Surface]*Annotation),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Annotation returns the annotation of s, creating a hidden one on first
// use.
func (h *HoverCursor) Annotation(s Surface) *Annotation {
	a, ok := h.annotations[s]
	if !ok {
		a = &Annotation{OffsetX: h.offX, OffsetY: h.offY}
		h.annotations[s] = a
	}
	return a
}

// Lookup returns the annotation of s without creating one.
func (h *HoverCursor) Lookup(s Surface) (*Annotation, bool) {
	a, ok := h.annotations[s]
	return a, ok
}

// Len returns the number of annotations created so far.
func (h *HoverCursor) Len() int { return len(h.annotations) }

// Reset drops every annotation, e.g. after the host replaced its surfaces.
func (h *HoverCursor) Reset() {
	clear(h.annotations)
}

func (h *HoverCursor) HideAll() {
	for _, a := range h.annotations {
		a.Visible = false
	}
}

// Visible returns the shown annotation and its surface, if any.
func (h *HoverCursor) Visible() (Surface, *Annotation, bool) {
	for s, a := range h.annotations {
		if a.Visible {
			return s, a, true
		}
	}
	return nil, nil, false
}

// Handle updates the annotations for one motion event and redraws.
func (h *HoverCursor) Handle(ev MotionEvent) {
	if ev.Surface == nil {
		h.HideAll()
		h.redraw()
		return
	}

	x, y := ev.Surface.DataCoords(ev.PX, ev.PY)
	a := h.Annotation(ev.Surface)
	a.X, a.Y = x, y
	a.Text = h.format(ev.Surface, x, y)
	h.HideAll()
	a.Visible = true
	h.redraw()
}

// Move resolves the surface under (px, py) among surfaces and handles the
// resulting event.
func (h *HoverCursor) Move(surfaces []Surface, px, py float64) {
	h.Handle(MotionEvent{Surface: Locate(surfaces, px, py), PX: px, PY: py})
}

func (h *HoverCursor) redraw() {
	if h.canvas != nil {
		h.canvas.Draw()
	}
}

// Locate returns the first surface containing (px, py), or nil.
func Locate(surfaces []Surface, px, py float64) Surface {
	for _, s := range surfaces {
		if s != nil && s.Contains(px, py) {
			return s
		}
	}
	return nil
}
