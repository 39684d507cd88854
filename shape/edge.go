package shape

import (
	"math"

	"github.com/gogpu/fontatlas/geom"
	"github.com/gogpu/fontatlas/solver"
)

// EdgeKind classifies edge segments by their geometric type.
type EdgeKind uint8

const (
	// Linear is a straight line segment between two points.
	Linear EdgeKind = iota

	// Quadratic is a quadratic Bezier curve (one control point).
	Quadratic

	// Cubic is a cubic Bezier curve (two control points).
	Cubic
)

// String returns a string representation of the edge kind.
func (k EdgeKind) String() string {
	switch k {
	case Linear:
		return "Linear"
	case Quadratic:
		return "Quadratic"
	case Cubic:
		return "Cubic"
	default:
		return "Unknown"
	}
}

// collinearEps is the relative cross-product magnitude under which control
// points are considered to lie on one line.
const collinearEps = 1e-12

// EdgeSegment is a single curve segment of a contour.
// It is a value type; copying it copies the curve.
type EdgeSegment struct {
	// Kind is the geometric type of this edge.
	Kind EdgeKind

	// P contains the control and end points for this edge.
	// Linear: P[0] (start), P[1] (end)
	// Quadratic: P[0] (start), P[1] (control), P[2] (end)
	// Cubic: P[0] (start), P[1] (control1), P[2] (control2), P[3] (end)
	P [4]geom.Point

	// Color determines which channels this edge affects.
	Color EdgeColor
}

// NewLinear creates a linear edge from p0 to p1.
func NewLinear(p0, p1 geom.Point) EdgeSegment {
	return EdgeSegment{
		Kind:  Linear,
		P:     [4]geom.Point{p0, p1},
		Color: ColorWhite,
	}
}

// NewQuadratic creates a quadratic Bezier edge. When the three points are
// collinear the result is the linear edge p0 to p2.
func NewQuadratic(p0, p1, p2 geom.Point) EdgeSegment {
	d1 := p1.Sub(p0)
	d2 := p2.Sub(p1)
	if math.Abs(d1.Cross(d2)) <= collinearEps*d1.Length()*d2.Length() {
		return NewLinear(p0, p2)
	}
	return EdgeSegment{
		Kind:  Quadratic,
		P:     [4]geom.Point{p0, p1, p2},
		Color: ColorWhite,
	}
}

// NewCubic creates a cubic Bezier edge.
//
// A flat control polygon yields the linear edge p0 to p3. A cubic that is a
// degree-elevated quadratic (p3 - 3*p2 + 3*p1 - p0 == 0) yields the
// equivalent quadratic edge with control point (3*p1 - p0) / 2.
func NewCubic(p0, p1, p2, p3 geom.Point) EdgeSegment {
	chord := p3.Sub(p0)
	if cl := chord.Length(); cl > 0 {
		c1 := p1.Sub(p0)
		c2 := p2.Sub(p0)
		if math.Abs(chord.Cross(c1)) <= collinearEps*cl*c1.Length() &&
			math.Abs(chord.Cross(c2)) <= collinearEps*cl*c2.Length() {
			return NewLinear(p0, p3)
		}
	}

	lead := p3.Sub(p2.Mul(3)).Add(p1.Mul(3)).Sub(p0)
	scale := max(p0.Length(), p1.Length(), p2.Length(), p3.Length())
	if lead.Length() <= collinearEps*scale {
		return NewQuadratic(p0, p1.Mul(3).Sub(p0).Mul(0.5), p3)
	}

	return EdgeSegment{
		Kind:  Cubic,
		P:     [4]geom.Point{p0, p1, p2, p3},
		Color: ColorWhite,
	}
}

// Start returns the starting point of the edge.
func (e EdgeSegment) Start() geom.Point {
	return e.P[0]
}

// End returns the ending point of the edge.
func (e EdgeSegment) End() geom.Point {
	switch e.Kind {
	case Quadratic:
		return e.P[2]
	case Cubic:
		return e.P[3]
	default:
		return e.P[1]
	}
}

// Point evaluates the edge at parameter t. Values outside [0, 1]
// extrapolate the curve.
func (e EdgeSegment) Point(t float64) geom.Point {
	p := e.P
	switch e.Kind {
	case Quadratic:
		u := 1 - t
		// B(t) = (1-t)^2*P0 + 2*(1-t)*t*P1 + t^2*P2
		return geom.Point{
			X: u*u*p[0].X + 2*u*t*p[1].X + t*t*p[2].X,
			Y: u*u*p[0].Y + 2*u*t*p[1].Y + t*t*p[2].Y,
		}
	case Cubic:
		u := 1 - t
		u2 := u * u
		t2 := t * t
		// B(t) = (1-t)^3*P0 + 3*(1-t)^2*t*P1 + 3*(1-t)*t^2*P2 + t^3*P3
		return geom.Point{
			X: u*u2*p[0].X + 3*u2*t*p[1].X + 3*u*t2*p[2].X + t*t2*p[3].X,
			Y: u*u2*p[0].Y + 3*u2*t*p[1].Y + 3*u*t2*p[2].Y + t*t2*p[3].Y,
		}
	default:
		return p[0].Lerp(p[1], t)
	}
}

// Direction returns the (unnormalized) tangent at parameter t.
//
// Where the derivative vanishes, as at a control point coinciding with an
// endpoint, the chord through the neighboring points is used instead, so
// the result is non-zero unless the whole edge is a single point.
func (e EdgeSegment) Direction(t float64) geom.Point {
	p := e.P
	switch e.Kind {
	case Quadratic:
		u := 1 - t
		// B'(t) = 2*(1-t)*(P1-P0) + 2*t*(P2-P1)
		d := p[1].Sub(p[0]).Mul(2 * u).Add(p[2].Sub(p[1]).Mul(2 * t))
		if d.IsZero() {
			return p[2].Sub(p[0])
		}
		return d
	case Cubic:
		u := 1 - t
		// B'(t) = 3*(1-t)^2*(P1-P0) + 6*(1-t)*t*(P2-P1) + 3*t^2*(P3-P2)
		d := p[1].Sub(p[0]).Mul(3 * u * u).
			Add(p[2].Sub(p[1]).Mul(6 * u * t)).
			Add(p[3].Sub(p[2]).Mul(3 * t * t))
		if !d.IsZero() {
			return d
		}
		switch {
		case t <= 0:
			d = p[2].Sub(p[0])
		case t >= 1:
			d = p[3].Sub(p[1])
		}
		if d.IsZero() {
			d = p[3].Sub(p[0])
		}
		return d
	default:
		return p[1].Sub(p[0])
	}
}

// Distance returns the unsigned distance from q to the edge and the curve
// parameter in [0, 1] of the nearest point.
func (e EdgeSegment) Distance(q geom.Point) (float64, float64) {
	sd, t := e.SignedDistance(q)
	return math.Abs(sd.Distance), t
}

// SignedDistance returns the signed distance from q to the edge and the
// curve parameter in [0, 1] of the nearest point.
//
// The distance is positive when q lies to the left of the edge direction,
// which is the interior of a counter-clockwise contour.
func (e EdgeSegment) SignedDistance(q geom.Point) (SignedDistance, float64) {
	switch e.Kind {
	case Quadratic:
		return e.nearest(q, e.quadraticCandidates(q))
	case Cubic:
		return e.nearest(q, e.cubicCandidates(q))
	default:
		ab := e.P[1].Sub(e.P[0])
		var t float64
		if l2 := ab.LengthSquared(); l2 > 0 {
			t = max(0, min(1, q.Sub(e.P[0]).Dot(ab)/l2))
		}
		return e.signedDistanceAt(q, t), t
	}
}

// quadraticCandidates returns the stationary points of the squared distance
// from q on a quadratic edge.
//
// With B(t) - q = a*t^2 + b*t + c, the condition (B(t) - q) . B'(t) = 0 is
// the cubic 2a.a t^3 + 3a.b t^2 + (b.b + 2a.c) t + b.c = 0.
func (e EdgeSegment) quadraticCandidates(q geom.Point) []float64 {
	p0, p1, p2 := e.P[0], e.P[1], e.P[2]
	a := p0.Sub(p1.Mul(2)).Add(p2)
	b := p1.Sub(p0).Mul(2)
	c := p0.Sub(q)
	return solver.SolveCubic(
		2*a.Dot(a),
		3*a.Dot(b),
		b.Dot(b)+2*a.Dot(c),
		b.Dot(c),
	)
}

// cubicCandidates returns the stationary points of the squared distance
// from q on a cubic edge.
//
// With B(t) - q = a*t^3 + b*t^2 + c*t + d the condition
// (B(t) - q) . B'(t) = 0 is a quintic in t.
func (e EdgeSegment) cubicCandidates(q geom.Point) []float64 {
	p0, p1, p2, p3 := e.P[0], e.P[1], e.P[2], e.P[3]
	a := p3.Sub(p2.Mul(3)).Add(p1.Mul(3)).Sub(p0)
	b := p0.Mul(3).Sub(p1.Mul(6)).Add(p2.Mul(3))
	c := p1.Sub(p0).Mul(3)
	d := p0.Sub(q)
	return solver.SolveQuintic(
		3*a.Dot(a),
		5*a.Dot(b),
		4*a.Dot(c)+2*b.Dot(b),
		3*b.Dot(c)+3*a.Dot(d),
		c.Dot(c)+2*b.Dot(d),
		c.Dot(d),
	)
}

// nearest picks the closest candidate parameter. Both endpoints are always
// candidates and roots outside [0, 1] are ignored.
func (e EdgeSegment) nearest(q geom.Point, roots []float64) (SignedDistance, float64) {
	best := e.signedDistanceAt(q, 0)
	bestT := 0.0
	if sd := e.signedDistanceAt(q, 1); sd.IsCloserThan(best) {
		best, bestT = sd, 1
	}
	for _, t := range solver.InUnitInterval(roots) {
		if sd := e.signedDistanceAt(q, t); sd.IsCloserThan(best) {
			best, bestT = sd, t
		}
	}
	return best, bestT
}

// signedDistanceAt measures q against the curve point at t.
func (e EdgeSegment) signedDistanceAt(q geom.Point, t float64) SignedDistance {
	diff := q.Sub(e.Point(t))
	tangent := e.Direction(t)
	dist := diff.Length()
	if tangent.Cross(diff) <= 0 {
		dist = -dist
	}
	return SignedDistance{
		Distance: dist,
		Dot:      math.Abs(tangent.Normalized().Dot(diff.Normalized())),
	}
}

// DistanceToPseudoDistance extends the edge along its end tangents.
//
// When the nearest point is an endpoint (t is 0 or 1) and q lies beyond
// that endpoint along the tangent, the distance to the tangent line is
// used if it is smaller in magnitude. This keeps the field continuous
// across corners for MSDF sampling.
func (e EdgeSegment) DistanceToPseudoDistance(sd *SignedDistance, q geom.Point, t float64) {
	switch {
	case t <= 0:
		dir := e.Direction(0).Normalized()
		aq := q.Sub(e.P[0])
		if aq.Dot(dir) < 0 {
			pseudo := dir.Cross(aq)
			if math.Abs(pseudo) <= math.Abs(sd.Distance) {
				sd.Distance = pseudo
				sd.Dot = 0
			}
		}
	case t >= 1:
		dir := e.Direction(1).Normalized()
		bq := q.Sub(e.End())
		if bq.Dot(dir) > 0 {
			pseudo := dir.Cross(bq)
			if math.Abs(pseudo) <= math.Abs(sd.Distance) {
				sd.Distance = pseudo
				sd.Dot = 0
			}
		}
	}
}

// Bounds returns the tight bounding box of the edge.
func (e EdgeSegment) Bounds() geom.Rect {
	r := geom.EmptyRect().AddPoint(e.Start()).AddPoint(e.End())
	p := e.P
	switch e.Kind {
	case Quadratic:
		// Extrema where B'(t) = 0 on each axis.
		for _, axis := range [2]func(geom.Point) float64{getX, getY} {
			den := axis(p[0]) - 2*axis(p[1]) + axis(p[2])
			if den == 0 {
				continue
			}
			if t := (axis(p[0]) - axis(p[1])) / den; t > 0 && t < 1 {
				r = r.AddPoint(e.Point(t))
			}
		}
	case Cubic:
		for _, axis := range [2]func(geom.Point) float64{getX, getY} {
			a := -axis(p[0]) + 3*axis(p[1]) - 3*axis(p[2]) + axis(p[3])
			b := 2 * (axis(p[0]) - 2*axis(p[1]) + axis(p[2]))
			c := axis(p[1]) - axis(p[0])
			for _, t := range solver.SolveQuadratic(a, b, c) {
				if t > 0 && t < 1 {
					r = r.AddPoint(e.Point(t))
				}
			}
		}
	}
	return r
}

// isPoint reports whether every control point of the edge coincides.
func (e EdgeSegment) isPoint() bool {
	n := int(e.Kind) + 2
	for i := 1; i < n; i++ {
		if e.P[i] != e.P[0] {
			return false
		}
	}
	return true
}

func getX(p geom.Point) float64 { return p.X }
func getY(p geom.Point) float64 { return p.Y }

// Reverse returns the edge traversed in the opposite direction.
func (e EdgeSegment) Reverse() EdgeSegment {
	r := e
	switch e.Kind {
	case Quadratic:
		r.P[0], r.P[2] = e.P[2], e.P[0]
	case Cubic:
		r.P[0], r.P[1], r.P[2], r.P[3] = e.P[3], e.P[2], e.P[1], e.P[0]
	default:
		r.P[0], r.P[1] = e.P[1], e.P[0]
	}
	return r
}

// signedArea returns the integral of B(t) x B'(t) over [0, 1], which is
// twice the signed area the edge sweeps about the origin. Summed over a
// closed contour it gives twice the enclosed area, positive for CCW.
func (e EdgeSegment) signedArea() float64 {
	p := e.P
	switch e.Kind {
	case Quadratic:
		chord := p[0].Cross(p[2])
		tri := p[1].Sub(p[0]).Cross(p[2].Sub(p[0]))
		return chord + 2.0/3.0*tri
	case Cubic:
		return (6*p[0].Cross(p[1]) + 3*p[0].Cross(p[2]) + p[0].Cross(p[3]) +
			3*p[1].Cross(p[2]) + 3*p[1].Cross(p[3]) + 6*p[2].Cross(p[3])) / 10
	default:
		return p[0].Cross(p[1])
	}
}
