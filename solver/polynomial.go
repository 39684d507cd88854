package solver

import (
	"math"
	"slices"
)

// EvalPolynomial evaluates the polynomial with the given coefficients
// (highest degree first) at x using Horner's scheme.
func EvalPolynomial(coeffs []float64, x float64) float64 {
	var v float64
	for _, c := range coeffs {
		v = v*x + c
	}
	return v
}

// SolvePolynomial returns the real roots of the polynomial whose
// coefficients are given highest degree first, sorted ascending.
//
// Degrees up to three use the closed forms. Higher degrees isolate roots
// between consecutive critical points (the roots of the derivative, found
// recursively), where the polynomial is monotonic, and refine each bracket
// with SolveITP. A root that coincides with a critical point is a repeated
// root and is reported once.
func SolvePolynomial(coeffs ...float64) []float64 {
	for _, c := range coeffs {
		if !isFinite(c) {
			return nil
		}
	}
	cs := trimLeading(coeffs)

	switch len(cs) {
	case 0, 1:
		return nil
	case 2:
		return []float64{-cs[1] / cs[0]}
	case 3:
		return SolveQuadratic(cs[0], cs[1], cs[2])
	case 4:
		return SolveCubic(cs[0], cs[1], cs[2], cs[3])
	}

	bound := cauchyBound(cs)
	points := []float64{-bound}
	for _, r := range SolvePolynomial(derivative(cs)...) {
		if r > -bound && r < bound && r > points[len(points)-1] {
			points = append(points, r)
		}
	}
	points = append(points, bound)

	values := make([]float64, len(points))
	isRoot := make([]bool, len(points))
	for i, x := range points {
		values[i] = EvalPolynomial(cs, x)
		isRoot[i] = math.Abs(values[i]) <= residualTolerance(cs, x)
	}

	var roots []float64
	for i, x := range points {
		if isRoot[i] {
			roots = append(roots, x)
		}
		if i+1 == len(points) || isRoot[i] || isRoot[i+1] {
			continue
		}
		fa, fb := values[i], values[i+1]
		if (fa < 0) == (fb < 0) {
			continue
		}
		a, b := x, points[i+1]
		f := func(t float64) float64 { return EvalPolynomial(cs, t) }
		if fa > 0 {
			f = func(t float64) float64 { return -EvalPolynomial(cs, t) }
			fa, fb = -fa, -fb
		}
		eps := max(1e-14, (b-a)*1e-15)
		roots = append(roots, SolveITP(f, a, b, eps, 1, 0.2/(b-a), fa, fb))
	}

	slices.Sort(roots)
	return dedupe(roots)
}

// trimLeading drops leading coefficients that are negligible relative to
// the largest coefficient.
func trimLeading(coeffs []float64) []float64 {
	var largest float64
	for _, c := range coeffs {
		largest = max(largest, math.Abs(c))
	}
	if largest == 0 {
		return nil
	}
	for len(coeffs) > 0 && math.Abs(coeffs[0]) <= degenerateEps*largest {
		coeffs = coeffs[1:]
	}
	return coeffs
}

// derivative returns the coefficients of the derivative polynomial.
func derivative(cs []float64) []float64 {
	n := len(cs) - 1
	d := make([]float64, n)
	for i := range n {
		d[i] = cs[i] * float64(n-i)
	}
	return d
}

// cauchyBound returns a radius that strictly contains every real root.
func cauchyBound(cs []float64) float64 {
	var m float64
	for _, c := range cs[1:] {
		m = max(m, math.Abs(c/cs[0]))
	}
	return 1 + m
}

// residualTolerance estimates the rounding error of evaluating cs at x.
func residualTolerance(cs []float64, x float64) float64 {
	var sum, pow float64 = 0, 1
	ax := math.Abs(x)
	for i := len(cs) - 1; i >= 0; i-- {
		sum += math.Abs(cs[i]) * pow
		pow *= ax
	}
	return degenerateEps * sum
}

func dedupe(roots []float64) []float64 {
	if len(roots) < 2 {
		return roots
	}
	out := roots[:1]
	for _, r := range roots[1:] {
		last := out[len(out)-1]
		if math.Abs(r-last) <= 1e-9*max(1, math.Abs(r)) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// SolveITP solves an arbitrary function for a zero-crossing.
//
// This uses the ITP method ("An Enhancement of the Bisection Method Average
// Performance Preserving Minmax Optimality"). The values ya = f(a) and
// yb = f(b) are passed in because they are usually already known. It is
// assumed that ya < 0 and yb > 0.
//
// epsilon must be larger than 2**-63 * (b - a). n0 controls the relative
// impact of the bisection and secant components; k1 is usually 0.2/(b-a).
// k2 is hardwired to 2.
func SolveITP(
	f func(float64) float64,
	a float64,
	b float64,
	epsilon float64,
	n0 int,
	k1 float64,
	ya float64,
	yb float64,
) float64 {
	n1_2 := int(max(math.Ceil(math.Log2((b-a)/epsilon))-1.0, 0.0))
	nmax := min(n0+n1_2, 62)
	scaledEpsilon := epsilon * float64(uint64(1)<<nmax)
	for b-a > 2.0*epsilon {
		x1_2 := 0.5 * (a + b)
		r := scaledEpsilon - 0.5*(b-a)
		xf := (yb*a - ya*b) / (yb - ya)
		sigma := x1_2 - xf
		delta := k1 * ((b - a) * (b - a))
		var xt float64
		if delta <= math.Abs(x1_2-xf) {
			xt = xf + math.Copysign(delta, sigma)
		} else {
			xt = x1_2
		}
		var xitp float64
		if math.Abs(xt-x1_2) <= r {
			xitp = xt
		} else {
			xitp = x1_2 - math.Copysign(r, sigma)
		}
		yitp := f(xitp)
		switch {
		case yitp > 0.0:
			b = xitp
			yb = yitp
		case yitp < 0.0:
			a = xitp
			ya = yitp
		default:
			return xitp
		}
		scaledEpsilon *= 0.5
	}
	return 0.5 * (a + b)
}
