// Package shape holds decomposed glyph outlines as contours of curve
// segments and answers signed-distance queries against them.
//
// A Shape is built per glyph from outline events (see Builder), cleaned up
// with ApplyPreprocessing, oriented with OrientContours and colored with
// ApplyEdgeColoring before a distance-field generator samples it.
//
// The distance convention is "inside is positive": a point to the left of
// a counter-clockwise outer contour has a positive distance.
package shape

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/fontatlas/geom"
)

// DefaultMaxAngleDegrees is the default corner threshold for edge coloring.
const DefaultMaxAngleDegrees = 15.0

// ErrOpenContour is returned by Validate for a contour that does not close.
var ErrOpenContour = errors.New("shape: contour is not closed")

// Shape represents a complete glyph shape consisting of contours.
type Shape struct {
	// Contours are the closed paths that make up the shape.
	Contours []*Contour
}

// New creates an empty shape.
func New() *Shape {
	return &Shape{}
}

// AddEmptyContour appends a new empty contour and returns it.
func (s *Shape) AddEmptyContour() *Contour {
	c := &Contour{}
	s.Contours = append(s.Contours, c)
	return c
}

// AddEdge appends an edge to the last contour, opening one if needed.
func (s *Shape) AddEdge(e EdgeSegment) {
	if len(s.Contours) == 0 {
		s.AddEmptyContour()
	}
	s.Contours[len(s.Contours)-1].AddEdge(e)
}

// EdgeCount returns the total number of edges across all contours.
func (s *Shape) EdgeCount() int {
	count := 0
	for _, c := range s.Contours {
		count += len(c.Edges)
	}
	return count
}

// Bounds returns the overall bounding box. The result is empty
// (geom.Rect.IsEmpty) for a shape without edges.
func (s *Shape) Bounds() geom.Rect {
	bounds := geom.EmptyRect()
	for _, c := range s.Contours {
		bounds = bounds.Union(c.Bounds())
	}
	return bounds
}

// Validate checks that every contour is closed.
func (s *Shape) Validate() error {
	for i, c := range s.Contours {
		if !c.IsClosed() {
			return fmt.Errorf("%w: contour %d", ErrOpenContour, i)
		}
	}
	return nil
}

// ApplyPreprocessing removes accidental loops from every contour and drops
// contours left without edges.
//
// This is a best-effort cleanup of degenerate outline data, not a general
// self-intersection resolver.
func (s *Shape) ApplyPreprocessing() {
	kept := s.Contours[:0]
	for _, c := range s.Contours {
		c.removeLoops()
		if len(c.Edges) > 0 {
			kept = append(kept, c)
		}
	}
	clear(s.Contours[len(kept):])
	s.Contours = kept
}

// OrientContours reverses every contour when the total enclosed area is
// negative, so that outer contours run counter-clockwise and the inside
// of the shape has positive distance regardless of the source winding
// convention or the direction of the y axis.
func (s *Shape) OrientContours() {
	var area float64
	for _, c := range s.Contours {
		area += c.SignedArea()
	}
	if area >= 0 {
		return
	}
	for _, c := range s.Contours {
		c.Reverse()
	}
}

// nearestEdge returns the edge closest to p with its signed distance and
// parameter. ok is false for a shape without edges.
func (s *Shape) nearestEdge(p geom.Point) (edge *EdgeSegment, sd SignedDistance, t float64, ok bool) {
	sd = Infinite()
	for _, c := range s.Contours {
		for i := range c.Edges {
			e := &c.Edges[i]
			d, et := e.SignedDistance(p)
			if !ok || d.IsCloserThan(sd) {
				edge, sd, t, ok = e, d, et, true
			}
		}
	}
	return edge, sd, t, ok
}

// SignedDistance returns the signed distance from p to the nearest edge.
// Among equidistant edges the one approached most orthogonally wins.
// An empty shape yields +Inf.
func (s *Shape) SignedDistance(p geom.Point) float64 {
	_, sd, _, ok := s.nearestEdge(p)
	if !ok {
		return math.Inf(1)
	}
	return sd.Distance
}

// SignedPseudoDistance returns the pseudo-distance of the nearest edge:
// the edge is extended along its end tangents past its parameter range.
// An empty shape yields +Inf.
func (s *Shape) SignedPseudoDistance(p geom.Point) float64 {
	e, sd, t, ok := s.nearestEdge(p)
	if !ok {
		return math.Inf(1)
	}
	e.DistanceToPseudoDistance(&sd, p, t)
	return sd.Distance
}

// ChannelPseudoDistances returns, for red, green and blue in that order,
// the pseudo-distance of the nearest edge whose color includes the channel.
// A channel no edge carries falls back to the nearest edge of any color.
// An empty shape yields +Inf in every channel.
func (s *Shape) ChannelPseudoDistances(p geom.Point) [3]float64 {
	type candidate struct {
		edge *EdgeSegment
		sd   SignedDistance
		t    float64
	}
	var nearest candidate
	var channel [3]candidate
	for _, c := range s.Contours {
		for i := range c.Edges {
			e := &c.Edges[i]
			sd, t := e.SignedDistance(p)
			if nearest.edge == nil || sd.IsCloserThan(nearest.sd) {
				nearest = candidate{e, sd, t}
			}
			for ci, ch := range Channels {
				if !e.Color.Has(ch) {
					continue
				}
				if channel[ci].edge == nil || sd.IsCloserThan(channel[ci].sd) {
					channel[ci] = candidate{e, sd, t}
				}
			}
		}
	}

	var out [3]float64
	if nearest.edge == nil {
		inf := math.Inf(1)
		return [3]float64{inf, inf, inf}
	}
	for ci := range channel {
		c := channel[ci]
		if c.edge == nil {
			c = nearest
		}
		c.edge.DistanceToPseudoDistance(&c.sd, p, c.t)
		out[ci] = c.sd.Distance
	}
	return out
}
