// Package outline reads glyph outlines from TrueType and OpenType fonts
// and turns them into shapes and alpha masks.
//
// Outlines are delivered in pixel space at a given size: x grows to the
// right, y grows down and the glyph origin sits on the baseline at (0, 0).
package outline

import (
	"image"
	"math"

	"github.com/gogpu/fontatlas/geom"
	"github.com/gogpu/fontatlas/shape"
)

// Pen receives outline events. shape.Builder, Path and
// golang.org/x/image/vector.Rasterizer all satisfy it.
type Pen interface {
	MoveTo(x, y float32)
	LineTo(x, y float32)
	QuadTo(cx, cy, x, y float32)
	CubeTo(c1x, c1y, c2x, c2y, x, y float32)
	ClosePath()
}

// Op is the kind of a path segment.
type Op uint8

// Path segment kinds.
const (
	OpMoveTo Op = iota
	OpLineTo
	OpQuadTo
	OpCubeTo
	OpClose
)

// String returns a string representation of the op.
func (op Op) String() string {
	switch op {
	case OpMoveTo:
		return "MoveTo"
	case OpLineTo:
		return "LineTo"
	case OpQuadTo:
		return "QuadTo"
	case OpCubeTo:
		return "CubeTo"
	case OpClose:
		return "Close"
	default:
		return "Unknown"
	}
}

// Point is an outline coordinate in pixels.
type Point struct {
	X, Y float32
}

// Segment is one recorded outline event. Args holds the control points
// followed by the end point; unused entries are zero.
type Segment struct {
	Op   Op
	Args [3]Point
}

// Path records outline events so a glyph can be loaded once and replayed
// into several pens.
type Path struct {
	Segments []Segment
}

// MoveTo records a move to (x, y).
func (p *Path) MoveTo(x, y float32) {
	p.Segments = append(p.Segments, Segment{Op: OpMoveTo, Args: [3]Point{{x, y}}})
}

// LineTo records a line to (x, y).
func (p *Path) LineTo(x, y float32) {
	p.Segments = append(p.Segments, Segment{Op: OpLineTo, Args: [3]Point{{x, y}}})
}

// QuadTo records a quadratic curve.
func (p *Path) QuadTo(cx, cy, x, y float32) {
	p.Segments = append(p.Segments, Segment{Op: OpQuadTo, Args: [3]Point{{cx, cy}, {x, y}}})
}

// CubeTo records a cubic curve.
func (p *Path) CubeTo(c1x, c1y, c2x, c2y, x, y float32) {
	p.Segments = append(p.Segments, Segment{Op: OpCubeTo, Args: [3]Point{{c1x, c1y}, {c2x, c2y}, {x, y}}})
}

// ClosePath records the end of a contour.
func (p *Path) ClosePath() {
	p.Segments = append(p.Segments, Segment{Op: OpClose})
}

// IsEmpty reports whether the path has no drawing segments.
func (p *Path) IsEmpty() bool {
	for _, s := range p.Segments {
		if s.Op != OpMoveTo && s.Op != OpClose {
			return false
		}
	}
	return true
}

// Replay sends the recorded events to pen, shifted by (dx, dy).
func (p *Path) Replay(pen Pen, dx, dy float32) {
	for _, s := range p.Segments {
		a := s.Args
		switch s.Op {
		case OpMoveTo:
			pen.MoveTo(a[0].X+dx, a[0].Y+dy)
		case OpLineTo:
			pen.LineTo(a[0].X+dx, a[0].Y+dy)
		case OpQuadTo:
			pen.QuadTo(a[0].X+dx, a[0].Y+dy, a[1].X+dx, a[1].Y+dy)
		case OpCubeTo:
			pen.CubeTo(a[0].X+dx, a[0].Y+dy, a[1].X+dx, a[1].Y+dy, a[2].X+dx, a[2].Y+dy)
		case OpClose:
			pen.ClosePath()
		}
	}
}

// Shape builds a fresh shape from the path. Open contours are closed.
func (p *Path) Shape() *shape.Shape {
	b := shape.NewBuilder()
	p.Replay(b, 0, 0)
	return b.Shape()
}

// Bounds returns the tight bounds of the path's curves.
func (p *Path) Bounds() geom.Rect {
	return p.Shape().Bounds()
}

// PixelBounds returns the smallest integer rectangle holding r, grown by
// padding pixels on every side. An empty r yields an empty rectangle.
func PixelBounds(r geom.Rect, padding int) image.Rectangle {
	if r.IsEmpty() {
		return image.Rectangle{}
	}
	return image.Rect(
		int(math.Floor(r.MinX))-padding,
		int(math.Floor(r.MinY))-padding,
		int(math.Ceil(r.MaxX))+padding,
		int(math.Ceil(r.MaxY))+padding,
	)
}
