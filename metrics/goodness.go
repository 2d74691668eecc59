// Package metrics provides goodness-of-fit metrics for fitted count models.
package metrics

import (
	"math"

	"github.com/YuminosukeSato/nbfit/negbinom"
	"github.com/YuminosukeSato/nbfit/pkg/errors"
)

// NegBinomLogLikelihood computes the log-likelihood of observed counts under
// a Negative Binomial with size theta and mean mu.
func NegBinomLogLikelihood(theta, mu float64, observed []float64) (float64, error) {
	if len(observed) == 0 {
		return 0, errors.NewValueError("NegBinomLogLikelihood", "empty sample")
	}

	var ll float64
	for _, k := range observed {
		lp, err := negbinom.LogPMF(k, theta, mu)
		if err != nil {
			return 0, err
		}
		ll += lp
	}
	return ll, nil
}

// GammaLogLikelihood computes the log-likelihood of positive observations
// under a Gamma distribution with shape alpha and scale beta.
func GammaLogLikelihood(alpha, beta float64, observed []float64) (float64, error) {
	const op = "GammaLogLikelihood"

	if len(observed) == 0 {
		return 0, errors.NewValueError(op, "empty sample")
	}
	if alpha <= 0 || math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return 0, errors.NewValidationError("alpha", "must be positive and finite", alpha)
	}
	if beta <= 0 || math.IsNaN(beta) || math.IsInf(beta, 0) {
		return 0, errors.NewValidationError("beta", "must be positive and finite", beta)
	}

	lgA, _ := math.Lgamma(alpha)
	norm := -lgA - alpha*math.Log(beta)

	var ll float64
	for _, x := range observed {
		if x <= 0 || math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, errors.NewValidationError("observed", "gamma observations must be strictly positive and finite", x)
		}
		ll += norm + (alpha-1)*math.Log(x) - x/beta
	}
	return ll, nil
}

// AIC is the Akaike information criterion, 2k - 2*loglik.
func AIC(loglik float64, nParams int) float64 {
	return 2*float64(nParams) - 2*loglik
}

// BIC is the Bayesian information criterion, k*log(n) - 2*loglik.
func BIC(loglik float64, nParams, nSamples int) float64 {
	return float64(nParams)*math.Log(float64(nSamples)) - 2*loglik
}

// NegBinomDeviance computes the Negative Binomial deviance of observed
// counts against fitted means:
//
//	2 * sum[ y*log(y/mu) - (y+theta)*log((y+theta)/(mu+theta)) ]
//
// with the convention y*log(y/mu) = 0 for y = 0.
func NegBinomDeviance(theta float64, observed, fitted []float64) (float64, error) {
	const op = "NegBinomDeviance"

	if len(observed) == 0 {
		return 0, errors.NewValueError(op, "empty sample")
	}
	if len(observed) != len(fitted) {
		return 0, errors.NewDimensionError(op, len(observed), len(fitted), 0)
	}
	if theta <= 0 || math.IsNaN(theta) || math.IsInf(theta, 0) {
		return 0, errors.NewValidationError("theta", "must be positive and finite", theta)
	}

	var dev float64
	for i, y := range observed {
		mu := fitted[i]
		if y < 0 || mu <= 0 {
			return 0, errors.NewValidationError("observed/fitted",
				"counts must be non-negative and fitted means positive", [2]float64{y, mu})
		}
		var term float64
		if y > 0 {
			term = y * math.Log(y/mu)
		}
		term -= (y + theta) * math.Log((y+theta)/(mu+theta))
		dev += term
	}
	return 2 * dev, nil
}
