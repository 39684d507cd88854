// Package solver finds the real roots of low-degree polynomials.
//
// These are used by the curve segments to locate nearest-point parameters:
// the nearest point on a quadratic Bezier is a root of a cubic, the nearest
// point on a cubic Bezier is a root of a quintic.
//
// All functions are pure and safe for concurrent use. They never return NaN:
// degenerate leading coefficients fall back to lower-degree solving paths.
package solver

import (
	"math"
	"slices"
)

// degenerateEps is the relative magnitude below which a leading coefficient
// is treated as zero.
const degenerateEps = 1e-12

// SolveQuadratic finds real roots of the quadratic equation ax^2 + bx + c = 0.
// Returns roots sorted in ascending order.
//
// The function is numerically robust:
// - If a is zero or nearly zero, treats as linear equation
// - If all coefficients are zero, returns a single 0.0
// - Handles edge cases with NaN and Inf gracefully
func SolveQuadratic(a, b, c float64) []float64 {
	// Scale coefficients to avoid overflow in discriminant calculation
	sc0 := c / a
	sc1 := b / a

	// Check if coefficients are valid (not Inf/NaN)
	if !isFinite(sc0) || !isFinite(sc1) {
		return solveLinear(b, c)
	}

	return solveQuadraticNormal(sc0, sc1)
}

// solveQuadraticNormal handles the normal quadratic case with valid scaled coefficients.
func solveQuadraticNormal(sc0, sc1 float64) []float64 {
	arg := sc1*sc1 - 4.0*sc0

	if !isFinite(arg) {
		// Overflow in discriminant: find one root using sc1*x + x^2 = 0,
		// the other as sc0/root1.
		return sorted2(-sc1, sc0/-sc1)
	}

	if arg < 0.0 {
		return nil
	}
	if arg == 0.0 {
		return []float64{-0.5 * sc1}
	}

	// Use numerically stable formula to avoid cancellation
	root1 := -0.5 * (sc1 + math.Copysign(math.Sqrt(arg), sc1))
	return sorted2(root1, sc0/root1)
}

func sorted2(r1, r2 float64) []float64 {
	if !isFinite(r2) {
		if !isFinite(r1) {
			return nil
		}
		return []float64{r1}
	}
	if r1 > r2 {
		return []float64{r2, r1}
	}
	return []float64{r1, r2}
}

// solveLinear handles the case when the quadratic coefficient vanishes.
func solveLinear(b, c float64) []float64 {
	root := -c / b
	if isFinite(root) {
		return []float64{root}
	}

	// Degenerate case: all coefficients effectively zero
	if c == 0.0 && b == 0.0 {
		return []float64{0.0}
	}

	return nil
}

// SolveCubic finds all real roots of a*t^3 + b*t^2 + c*t + d = 0.
// Roots are returned in ascending order with multiplicity: a double root
// appears twice, a triple root three times.
//
// A leading coefficient that is negligible relative to the others degrades
// the equation to a quadratic.
func SolveCubic(a, b, c, d float64) []float64 {
	if !isFinite(a) || !isFinite(b) || !isFinite(c) || !isFinite(d) {
		return nil
	}
	scale := max(math.Abs(b), math.Abs(c), math.Abs(d))
	if math.Abs(a) <= degenerateEps*scale || a == 0 {
		return SolveQuadratic(b, c, d)
	}

	b, c, d = b/a, c/a, d/a

	// Depress the cubic with t = x - b/3: x^3 + p*x + q = 0.
	shift := b / 3
	p := c - b*shift
	q := 2*shift*shift*shift - shift*c + d

	hq := q / 2
	tp := p / 3
	disc := hq*hq + tp*tp*tp
	tol := degenerateEps * max(hq*hq, math.Abs(tp*tp*tp))

	var roots []float64
	switch {
	case p == 0 && q == 0:
		// Triple root
		roots = []float64{-shift, -shift, -shift}
	case math.Abs(disc) <= tol:
		// One simple root plus a double root
		u := math.Cbrt(-hq)
		roots = []float64{2*u - shift, -u - shift, -u - shift}
	case disc > 0:
		// One real root
		sq := math.Sqrt(disc)
		u := math.Cbrt(-hq + sq)
		v := math.Cbrt(-hq - sq)
		roots = []float64{u + v - shift}
	default:
		// Three distinct real roots (trigonometric form)
		m := 2 * math.Sqrt(-tp)
		arg := (3 * q) / (2 * p) * math.Sqrt(-3/p)
		arg = max(-1, min(1, arg))
		theta := math.Acos(arg) / 3
		roots = []float64{
			m*math.Cos(theta) - shift,
			m*math.Cos(theta-2*math.Pi/3) - shift,
			m*math.Cos(theta-4*math.Pi/3) - shift,
		}
		for i, r := range roots {
			roots[i] = polishCubic(b, c, d, r)
		}
	}

	slices.Sort(roots)
	return roots
}

// polishCubic refines a root of the monic cubic t^3 + b*t^2 + c*t + d with
// Newton steps that are only kept when they reduce the residual.
func polishCubic(b, c, d, t float64) float64 {
	for range 2 {
		f := ((t+b)*t+c)*t + d
		df := (3*t+2*b)*t + c
		if df == 0 || f == 0 {
			return t
		}
		next := t - f/df
		fn := ((next+b)*next+c)*next + d
		if !isFinite(next) || math.Abs(fn) >= math.Abs(f) {
			return t
		}
		t = next
	}
	return t
}

// SolveQuintic finds the real roots of
// a*t^5 + b*t^4 + c*t^3 + d*t^2 + e*t + f = 0 in ascending order.
// Complex roots are discarded; a repeated real root is reported once.
func SolveQuintic(a, b, c, d, e, f float64) []float64 {
	return SolvePolynomial(a, b, c, d, e, f)
}

// InUnitInterval returns the roots that lie in [0, 1].
// Values within a tiny epsilon of the boundaries are clamped onto them.
func InUnitInterval(roots []float64) []float64 {
	if len(roots) == 0 {
		return nil
	}

	const eps = 1e-12
	result := make([]float64, 0, len(roots))
	for _, r := range roots {
		if r >= -eps && r <= 1.0+eps {
			result = append(result, max(0, min(1, r)))
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}

// isFinite returns true if x is neither infinite nor NaN.
func isFinite(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x)
}
