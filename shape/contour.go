package shape

import (
	"slices"

	"github.com/gogpu/fontatlas/geom"
)

// Contour represents a closed contour of edges.
// A glyph typically consists of one or more contours.
type Contour struct {
	// Edges is the ordered list of edges that form this contour.
	Edges []EdgeSegment
}

// AddEdge appends an edge to the contour.
func (c *Contour) AddEdge(e EdgeSegment) {
	c.Edges = append(c.Edges, e)
}

// Bounds returns the bounding box of all edges in the contour.
func (c *Contour) Bounds() geom.Rect {
	bounds := geom.EmptyRect()
	for i := range c.Edges {
		bounds = bounds.Union(c.Edges[i].Bounds())
	}
	return bounds
}

// SignedArea returns the enclosed area of the contour.
// Positive = counter-clockwise (filled), Negative = clockwise (hole).
func (c *Contour) SignedArea() float64 {
	var area float64
	for i := range c.Edges {
		area += c.Edges[i].signedArea()
	}
	return area / 2
}

// Winding returns +1 for a counter-clockwise contour, -1 for a clockwise
// one and 0 for a contour without area.
func (c *Contour) Winding() int {
	switch area := c.SignedArea(); {
	case area > 0:
		return 1
	case area < 0:
		return -1
	default:
		return 0
	}
}

// Reverse flips the traversal direction of the contour in place.
func (c *Contour) Reverse() {
	slices.Reverse(c.Edges)
	for i := range c.Edges {
		c.Edges[i] = c.Edges[i].Reverse()
	}
}

// IsClosed reports whether the last edge ends where the first one starts.
func (c *Contour) IsClosed() bool {
	if len(c.Edges) == 0 {
		return true
	}
	first := c.Edges[0].Start()
	last := c.Edges[len(c.Edges)-1].End()
	d := first.Sub(last)
	return d.X*d.X+d.Y*d.Y <= 1e-12
}

// removeLoops drops edges that trace a closed loop back to an endpoint
// already visited, other than the contour start. Edges collapsed to a
// single point are dropped as well.
func (c *Contour) removeLoops() {
	if len(c.Edges) == 0 {
		return
	}
	start := c.Edges[0].Start()
	visited := make(map[geom.Point]int, len(c.Edges))
	kept := make([]EdgeSegment, 0, len(c.Edges))
	for _, e := range c.Edges {
		if e.isPoint() {
			continue
		}
		kept = append(kept, e)
		end := e.End()
		if end == start {
			continue
		}
		if n, ok := visited[end]; ok {
			kept = kept[:n]
			for p, count := range visited {
				if count > n {
					delete(visited, p)
				}
			}
			continue
		}
		visited[end] = len(kept)
	}
	c.Edges = kept
}
