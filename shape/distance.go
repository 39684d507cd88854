package shape

import "math"

// SignedDistance is a signed distance with the data needed to resolve ties.
type SignedDistance struct {
	// Distance is the signed Euclidean distance.
	// Positive = inside, Negative = outside.
	Distance float64

	// Dot is |cos| of the angle between the edge tangent and the vector
	// to the query point. Among equal distances the smaller Dot (the more
	// orthogonal approach) wins.
	Dot float64
}

// Infinite returns a signed distance representing infinity.
func Infinite() SignedDistance {
	return SignedDistance{Distance: math.Inf(-1), Dot: 1}
}

// IsInfinite reports whether d has not been set by any edge.
func (d SignedDistance) IsInfinite() bool {
	return math.IsInf(d.Distance, 0)
}

// IsCloserThan returns true if d is closer to the edge than other.
func (d SignedDistance) IsCloserThan(other SignedDistance) bool {
	absD := math.Abs(d.Distance)
	absO := math.Abs(other.Distance)
	if absD < absO {
		return true
	}
	if absD > absO {
		return false
	}
	// Equal absolute distance - use dot product to break ties
	return d.Dot < other.Dot
}

// Combine returns the closer distance of the two.
func (d SignedDistance) Combine(other SignedDistance) SignedDistance {
	if other.IsCloserThan(d) {
		return other
	}
	return d
}
