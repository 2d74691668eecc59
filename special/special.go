// Package special provides the special functions the fitting routines are
// built on: digamma, trigamma, and the inverse of the digamma function.
package special

import (
	"math"

	"gonum.org/v1/gonum/mathext"

	"github.com/YuminosukeSato/nbfit/pkg/errors"
)

// EulerGamma is the Euler-Mascheroni constant; Digamma(1) == -EulerGamma.
const EulerGamma = 0.5772156649015328606065120

// Digamma returns the digamma function psi(x), the logarithmic derivative of
// the gamma function.
func Digamma(x float64) float64 {
	return mathext.Digamma(x)
}

// Trigamma returns the trigamma function psi'(x), i.e. polygamma(1, x).
//
// For x below the asymptotic threshold the recurrence
// psi'(x) = psi'(x+1) + 1/x^2 shifts the argument up, then the Bernoulli
// asymptotic series is applied. Non-positive x is handled by reflection,
// with poles at the non-positive integers.
func Trigamma(x float64) float64 {
	if math.IsNaN(x) {
		return math.NaN()
	}
	if x <= 0 {
		if x == math.Trunc(x) {
			// Poles at 0, -1, -2, ...
			return math.Inf(1)
		}
		// Reflection: psi'(1-x) + psi'(x) = pi^2 / sin^2(pi*x)
		s := math.Sin(math.Pi * x)
		return math.Pi*math.Pi/(s*s) - Trigamma(1-x)
	}

	var acc float64
	for x < 8 {
		acc += 1 / (x * x)
		x++
	}

	// Asymptotic series with Bernoulli coefficients B_2, B_4, B_6, B_8.
	inv := 1 / x
	inv2 := inv * inv
	series := inv + inv2/2 + inv*inv2*(1.0/6.0-inv2*(1.0/30.0-inv2*(1.0/42.0-inv2/30.0)))
	return acc + series
}

const (
	digammaInvTol     = 1e-10
	digammaInvMaxIter = 60
)

// DigammaInv solves Digamma(x) = y for x > 0.
//
// The starting point follows the SciPy-derived piecewise initialization:
// exp(y)+0.5 for y >= -0.125, exp(y/2.332)+0.08661 for y > -3, and
// 1/(-y-EulerGamma) below. Newton steps (derivative Trigamma) are damped to
// stay in the positive domain, with a bisection fallback since digamma is
// monotonic on (0, inf). Returns errors.ErrNoConvergence when neither
// approach meets the tolerance.
func DigammaInv(y float64) (float64, error) {
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, errors.NewValidationError("y", "must be finite", y)
	}

	var x0 float64
	switch {
	case y >= -0.125:
		x0 = math.Exp(y) + 0.5
	case y > -3:
		x0 = math.Exp(y/2.332) + 0.08661
	default:
		x0 = 1.0 / (-y - EulerGamma)
	}

	x, ok := newtonDigamma(y, x0)
	if ok {
		return x, nil
	}

	x, ok = bisectDigamma(y, x0)
	if ok {
		return x, nil
	}
	return 0, errors.Wrapf(errors.ErrNoConvergence, "digamma inverse for y = %g", y)
}

// DigammaInvIter solves Digamma(x) = y with plain Newton iteration from
// Minka's initialization, stopping when successive estimates differ by less
// than tol. It returns the estimate and the number of iterations taken.
// maxIter <= 0 selects the default budget of 10.
func DigammaInvIter(y, tol float64, maxIter int) (float64, int, error) {
	if maxIter <= 0 {
		maxIter = 10
	}
	if tol <= 0 {
		tol = 1e-3
	}

	var x float64
	if y >= -2.22 {
		x = math.Exp(y) + 0.5
	} else {
		x = -1 / (y + EulerGamma)
	}

	for i := 0; i < maxIter; i++ {
		xNew := x - (Digamma(x)-y)/Trigamma(x)
		if math.Abs(xNew-x) < tol {
			return xNew, i + 1, nil
		}
		x = xNew
	}
	return x, maxIter, errors.Wrapf(errors.ErrNoConvergence, "digamma inverse iteration for y = %g", y)
}

// newtonDigamma runs damped Newton on f(x) = Digamma(x) - y.
func newtonDigamma(y, x0 float64) (float64, bool) {
	x := x0
	for i := 0; i < digammaInvMaxIter; i++ {
		fx := Digamma(x) - y
		if math.Abs(fx) < digammaInvTol {
			return x, true
		}
		step := fx / Trigamma(x)
		next := x - step
		// Halve the step until it lands in the positive domain.
		for next <= 0 {
			step /= 2
			next = x - step
		}
		if math.IsNaN(next) || math.IsInf(next, 0) {
			return 0, false
		}
		x = next
	}
	return x, math.Abs(Digamma(x)-y) < digammaInvTol*10
}

// bisectDigamma brackets the root around x0 by doubling/halving and then
// bisects. Digamma is strictly increasing on (0, inf), so a bracket always
// exists for finite y.
func bisectDigamma(y, x0 float64) (float64, bool) {
	lo, hi := x0, x0
	if lo <= 0 {
		lo = 1e-12
		hi = 1
	}
	for Digamma(lo) > y {
		lo /= 2
		if lo < 1e-300 {
			return 0, false
		}
	}
	for Digamma(hi) < y {
		hi *= 2
		if hi > 1e300 {
			return 0, false
		}
	}

	for i := 0; i < 200; i++ {
		mid := 0.5 * (lo + hi)
		fm := Digamma(mid) - y
		if math.Abs(fm) < digammaInvTol || (hi-lo) < 1e-14*mid {
			return mid, true
		}
		if fm < 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	return 0.5 * (lo + hi), true
}
