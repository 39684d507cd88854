package shape

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/fontatlas/geom"
)

// boxWithHole returns a 6x4 box at (2,2) with a 3x2 rectangular hole,
// outer contour counter-clockwise and hole clockwise.
func boxWithHole() *Shape {
	b := NewBuilder()
	b.MoveTo(2, 2)
	b.LineTo(8, 2)
	b.LineTo(8, 6)
	b.LineTo(2, 6)
	b.ClosePath()

	b.MoveTo(3, 3)
	b.LineTo(3, 5)
	b.LineTo(6, 5)
	b.LineTo(6, 3)
	b.ClosePath()
	return b.Shape()
}

func TestBoxWithHoleSignedDistance(t *testing.T) {
	s := boxWithHole()
	if got := s.EdgeCount(); got != 8 {
		t.Fatalf("EdgeCount() = %d, want 8", got)
	}

	tests := []struct {
		name string
		p    geom.Point
		want float64
	}{
		{"inside", geom.Pt(4, 2.3), 0.3},
		{"outside below", geom.Pt(4, 1.3), -0.7},
		{"outside corner", geom.Pt(9, 8), -2.236067},
		{"on hole corner", geom.Pt(3, 3), 0},
		{"inside hole", geom.Pt(4.5, 4), -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.SignedDistance(tt.p); !near(got, tt.want) {
				t.Errorf("SignedDistance(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestEmptyShapeDistance(t *testing.T) {
	s := New()
	if got := s.SignedDistance(geom.Pt(1, 1)); !math.IsInf(got, 1) {
		t.Errorf("SignedDistance on empty shape = %v, want +Inf", got)
	}
	if got := s.SignedPseudoDistance(geom.Pt(1, 1)); !math.IsInf(got, 1) {
		t.Errorf("SignedPseudoDistance on empty shape = %v, want +Inf", got)
	}
	for i, d := range s.ChannelPseudoDistances(geom.Pt(1, 1)) {
		if !math.IsInf(d, 1) {
			t.Errorf("channel %d on empty shape = %v, want +Inf", i, d)
		}
	}
	if !s.Bounds().IsEmpty() {
		t.Error("empty shape should have empty bounds")
	}
}

func TestSignedPseudoDistance(t *testing.T) {
	s := boxWithHole()
	// Beyond the outer corner (8,6), diagonally: true distance is to the
	// corner, pseudo-distance is to the extended side.
	p := geom.Pt(9, 8)
	got := s.SignedPseudoDistance(p)
	if got > -0.999 || got < -2.000001 {
		t.Errorf("SignedPseudoDistance(%v) = %v, want -1 or -2", p, got)
	}
	if math.Abs(got) > math.Abs(s.SignedDistance(p)) {
		t.Errorf("pseudo-distance %v larger than distance", got)
	}
}

func TestContourArea(t *testing.T) {
	s := boxWithHole()
	if got := s.Contours[0].SignedArea(); !near(got, 24) {
		t.Errorf("outer area = %v, want 24", got)
	}
	if got := s.Contours[1].SignedArea(); !near(got, -6) {
		t.Errorf("hole area = %v, want -6", got)
	}
	if s.Contours[0].Winding() != 1 || s.Contours[1].Winding() != -1 {
		t.Errorf("windings = %d, %d", s.Contours[0].Winding(), s.Contours[1].Winding())
	}

	// Quarter disc made of one quadratic and two lines.
	b := NewBuilder()
	b.MoveTo(0, 0)
	b.LineTo(1, 0)
	b.QuadTo(1, 1, 0, 1)
	b.ClosePath()
	// The parabolic segment adds 2/3 of its control triangle.
	if got := b.Shape().Contours[0].SignedArea(); !near(got, 0.5+2.0/3.0*0.5) {
		t.Errorf("quadratic contour area = %v", got)
	}
}

func TestOrientContours(t *testing.T) {
	// Same box wound clockwise, as TrueType or y-down sources deliver it.
	b := NewBuilder()
	b.MoveTo(2, 2)
	b.LineTo(2, 6)
	b.LineTo(8, 6)
	b.LineTo(8, 2)
	b.ClosePath()
	s := b.Shape()

	if d := s.SignedDistance(geom.Pt(5, 4)); d >= 0 {
		t.Fatalf("before orientation inside distance = %v, want negative", d)
	}
	s.OrientContours()
	if d := s.SignedDistance(geom.Pt(5, 4)); !near(d, 2) {
		t.Errorf("after orientation inside distance = %v, want 2", d)
	}

	// Already oriented shapes are left alone.
	h := boxWithHole()
	h.OrientContours()
	if d := h.SignedDistance(geom.Pt(4, 2.3)); !near(d, 0.3) {
		t.Errorf("OrientContours changed an oriented shape: %v", d)
	}
}

func TestApplyPreprocessing(t *testing.T) {
	s := New()
	c := s.AddEmptyContour()
	c.AddEdge(NewLinear(geom.Pt(0, 0), geom.Pt(4, 0)))
	c.AddEdge(NewLinear(geom.Pt(4, 0), geom.Pt(4, 4)))
	c.AddEdge(NewLinear(geom.Pt(4, 4), geom.Pt(5, 5)))
	c.AddEdge(NewLinear(geom.Pt(5, 5), geom.Pt(4, 4)))
	c.AddEdge(NewLinear(geom.Pt(4, 4), geom.Pt(4, 4)))
	c.AddEdge(NewLinear(geom.Pt(4, 4), geom.Pt(0, 4)))
	c.AddEdge(NewLinear(geom.Pt(0, 4), geom.Pt(0, 0)))
	s.AddEmptyContour()

	s.ApplyPreprocessing()

	if len(s.Contours) != 1 {
		t.Fatalf("contours = %d, want 1 (empty contour dropped)", len(s.Contours))
	}
	edges := s.Contours[0].Edges
	if len(edges) != 4 {
		t.Fatalf("edges = %d, want 4", len(edges))
	}
	for i := range edges {
		next := edges[(i+1)%len(edges)]
		if edges[i].End() != next.Start() {
			t.Errorf("edge %d ends at %v, next starts at %v", i, edges[i].End(), next.Start())
		}
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestValidateOpenContour(t *testing.T) {
	s := New()
	s.AddEdge(NewLinear(geom.Pt(0, 0), geom.Pt(1, 0)))
	s.AddEdge(NewLinear(geom.Pt(1, 0), geom.Pt(1, 1)))
	if err := s.Validate(); !errors.Is(err, ErrOpenContour) {
		t.Errorf("Validate() = %v, want ErrOpenContour", err)
	}
}

func TestApplyEdgeColoring(t *testing.T) {
	t.Run("box corners", func(t *testing.T) {
		s := boxWithHole()
		s.ApplyEdgeColoring(DefaultMaxAngleDegrees)
		want := []EdgeColor{ColorMagenta, ColorYellow, ColorCyan, ColorYellow}
		for i, e := range s.Contours[0].Edges {
			if e.Color != want[i] {
				t.Errorf("edge %d color = %v, want %v", i, e.Color, want[i])
			}
		}
	})

	t.Run("single edge", func(t *testing.T) {
		s := New()
		s.AddEdge(NewCubic(geom.Pt(0, 0), geom.Pt(4, 6), geom.Pt(-2, 6), geom.Pt(0, 0)))
		s.ApplyEdgeColoring(DefaultMaxAngleDegrees)
		if c := s.Contours[0].Edges[0].Color; c != ColorWhite {
			t.Errorf("single edge color = %v, want White", c)
		}
	})

	t.Run("smooth contour", func(t *testing.T) {
		const k = 0.5522847498
		b := NewBuilder()
		b.MoveTo(1, 0)
		b.CubeTo(1, k, k, 1, 0, 1)
		b.CubeTo(-k, 1, -1, k, -1, 0)
		b.CubeTo(-1, -k, -k, -1, 0, -1)
		b.CubeTo(k, -1, 1, -k, 1, 0)
		s := b.Shape()
		s.ApplyEdgeColoring(DefaultMaxAngleDegrees)
		for i, e := range s.Contours[0].Edges {
			if e.Color != ColorMagenta {
				t.Errorf("edge %d color = %v, want Magenta", i, e.Color)
			}
		}
	})

	t.Run("reversal is a corner", func(t *testing.T) {
		s := New()
		s.AddEdge(NewLinear(geom.Pt(0, 0), geom.Pt(2, 0)))
		s.AddEdge(NewLinear(geom.Pt(2, 0), geom.Pt(0, 0)))
		s.ApplyEdgeColoring(180)
		if c := s.Contours[0].Edges[1].Color; c != ColorYellow {
			t.Errorf("second edge color = %v, want Yellow", c)
		}
	})
}

func TestChannelPseudoDistances(t *testing.T) {
	s := boxWithHole()
	s.ApplyEdgeColoring(DefaultMaxAngleDegrees)

	// Deep inside the bottom bar every channel sees a nearby edge.
	d := s.ChannelPseudoDistances(geom.Pt(5, 2.4))
	for i, v := range d {
		if v <= 0 {
			t.Errorf("channel %d = %v, want positive inside", i, v)
		}
	}

	// Far outside every channel is negative.
	d = s.ChannelPseudoDistances(geom.Pt(-10, -10))
	for i, v := range d {
		if v >= 0 {
			t.Errorf("channel %d = %v, want negative outside", i, v)
		}
	}
}

func TestBuilderImplicitClose(t *testing.T) {
	b := NewBuilder()
	b.MoveTo(0, 0)
	b.LineTo(1, 0)
	b.LineTo(1, 0)
	b.LineTo(1, 1)
	b.MoveTo(5, 5)
	b.MoveTo(6, 6)
	b.LineTo(7, 6)
	b.LineTo(7, 7)
	s := b.Shape()

	if len(s.Contours) != 2 {
		t.Fatalf("contours = %d, want 2", len(s.Contours))
	}
	if n := len(s.Contours[0].Edges); n != 3 {
		t.Errorf("first contour edges = %d, want 3", n)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}
