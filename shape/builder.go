package shape

import "github.com/gogpu/fontatlas/geom"

// Builder assembles a Shape from outline events. It satisfies the outline
// pen interface (MoveTo, LineTo, QuadTo, CubeTo, ClosePath) used by the
// font parsers and by golang.org/x/image/vector.
//
// Every contour is closed with a straight edge back to its start point if
// the outline leaves it open.
type Builder struct {
	shape   *Shape
	current *Contour
	start   geom.Point
	pos     geom.Point
}

// NewBuilder creates a builder for an empty shape.
func NewBuilder() *Builder {
	return &Builder{shape: New()}
}

func pt32(x, y float32) geom.Point {
	return geom.Point{X: float64(x), Y: float64(y)}
}

// MoveTo starts a new contour at (x, y).
func (b *Builder) MoveTo(x, y float32) {
	b.ClosePath()
	b.start = pt32(x, y)
	b.pos = b.start
	b.current = b.shape.AddEmptyContour()
}

// LineTo adds a straight edge to (x, y).
func (b *Builder) LineTo(x, y float32) {
	b.lineTo(pt32(x, y))
}

func (b *Builder) lineTo(p geom.Point) {
	if p == b.pos {
		return
	}
	b.contour().AddEdge(NewLinear(b.pos, p))
	b.pos = p
}

// QuadTo adds a quadratic edge with control point (cx, cy) ending at (x, y).
func (b *Builder) QuadTo(cx, cy, x, y float32) {
	p := pt32(x, y)
	b.contour().AddEdge(NewQuadratic(b.pos, pt32(cx, cy), p))
	b.pos = p
}

// CubeTo adds a cubic edge with control points (c1x, c1y) and (c2x, c2y)
// ending at (x, y).
func (b *Builder) CubeTo(c1x, c1y, c2x, c2y, x, y float32) {
	p := pt32(x, y)
	b.contour().AddEdge(NewCubic(b.pos, pt32(c1x, c1y), pt32(c2x, c2y), p))
	b.pos = p
}

// ClosePath closes the current contour with a straight edge to its start.
func (b *Builder) ClosePath() {
	if b.current == nil {
		return
	}
	b.lineTo(b.start)
	b.current = nil
}

// contour returns the open contour, starting one at the pen position when
// an edge arrives without a preceding MoveTo.
func (b *Builder) contour() *Contour {
	if b.current == nil {
		b.start = b.pos
		b.current = b.shape.AddEmptyContour()
	}
	return b.current
}

// Shape closes any open contour and returns the built shape.
// Contours without edges are dropped.
func (b *Builder) Shape() *Shape {
	b.ClosePath()
	kept := b.shape.Contours[:0]
	for _, c := range b.shape.Contours {
		if len(c.Edges) > 0 {
			kept = append(kept, c)
		}
	}
	b.shape.Contours = kept
	return b.shape
}
