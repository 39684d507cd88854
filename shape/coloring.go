package shape

import (
	"math"

	"github.com/gogpu/fontatlas/geom"
)

// ApplyEdgeColoring assigns edge colors so that the edges meeting at a
// corner never share all channels.
//
// A single-edge contour is White. Otherwise the first edge is Magenta and,
// at every corner, the color switches to Yellow, then alternates between
// Cyan and Yellow. A corner is a join where the tangents turn by more than
// maxAngleDegrees or point in opposite directions.
func (s *Shape) ApplyEdgeColoring(maxAngleDegrees float64) {
	threshold := maxAngleDegrees * math.Pi / 180
	for _, c := range s.Contours {
		colorContour(c, threshold)
	}
}

func colorContour(c *Contour, threshold float64) {
	switch len(c.Edges) {
	case 0:
		return
	case 1:
		c.Edges[0].Color = ColorWhite
		return
	}

	color := ColorMagenta
	for i := range c.Edges {
		if i > 0 && isCorner(c.Edges[i-1].Direction(1), c.Edges[i].Direction(0), threshold) {
			color = switchColor(color)
		}
		c.Edges[i].Color = color
	}
}

// switchColor returns the color following current at a corner.
func switchColor(current EdgeColor) EdgeColor {
	if current == ColorYellow {
		return ColorCyan
	}
	return ColorYellow
}

// isCorner reports whether the join from direction a into direction b is
// sharp enough to need a color change.
func isCorner(a, b geom.Point, threshold float64) bool {
	a = a.Normalized()
	b = b.Normalized()
	if a.Dot(b) < 0 && math.Abs(a.Cross(b)) <= 1e-12 {
		return true
	}
	return geom.AngleBetween(a, b) > threshold
}
