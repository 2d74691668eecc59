// Package negbinom estimates Negative Binomial distribution parameters from
// count data.
//
// The Negative Binomial is treated as a gamma-Poisson mixture: counts are
// Poisson with a Gamma-distributed rate. Fitting alternates between the
// posterior sufficient statistics of the latent rates and a fast Gamma fit
// on those statistics, seeded by the method of moments. The result is the
// size parameter theta, the mean mu, and the dispersion 1/theta, the
// parameterization used in count-data modeling (variance = mu + mu^2/theta).
package negbinom

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/nbfit/core/model"
	"github.com/YuminosukeSato/nbfit/gamma"
	"github.com/YuminosukeSato/nbfit/pkg/errors"
	"github.com/YuminosukeSato/nbfit/pkg/log"
	"github.com/YuminosukeSato/nbfit/special"
)

const (
	defaultTol     = 1e-4
	defaultMaxIter = 100

	// Scale clamp for underdispersed samples where the moment estimate of
	// the mixing scale goes negative.
	minScale = 1e-3

	// Iteration budget of the inner gamma fit per EM round; the tolerance
	// is inherited from the outer loop.
	gammaMaxIter = 10
)

// Fitter estimates Negative Binomial parameters.
type Fitter struct {
	state *model.StateManager

	tol     float64
	maxIter int

	// Fitted parameters.
	Theta      float64 // size (gamma shape of the mixing distribution)
	Mu         float64 // mean
	Iterations int
}

// NewFitter creates a Negative Binomial fitter.
// Defaults: tol 1e-4, 100 iterations.
func NewFitter(opts ...Option) *Fitter {
	f := &Fitter{
		state:   model.NewStateManager(),
		tol:     defaultTol,
		maxIter: defaultMaxIter,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// IsFitted reports whether the fitter holds a fitted model.
func (f *Fitter) IsFitted() bool {
	return f.state.IsFitted()
}

// Dispersion returns the fitted dispersion 1/Theta, or NaN before Fit.
func (f *Fitter) Dispersion() float64 {
	if !f.IsFitted() {
		return math.NaN()
	}
	return 1 / f.Theta
}

// Fit estimates theta and mu from a sample of non-negative counts.
//
// Initialization is by the method of moments on the mixing scale
// b = var/mean - 1 (clamped when the sample is underdispersed), then each
// round computes the posterior rate statistics
//
//	p = b/(b+1)
//	m = mean((x_i + a) * p)
//	s = log(m) - mean(digamma(x_i + a) + log(p))
//
// and refits the Gamma mixing distribution from (m, s). The loop stops when
// the shape moves less than tol; exhausting maxIter emits a
// ConvergenceWarning and keeps the last estimate.
func (f *Fitter) Fit(observed []float64) error {
	const op = "NegBinomFitter.Fit"

	if len(observed) == 0 {
		return errors.NewFitError(op, "empty data", errors.ErrEmptyData)
	}
	for _, v := range observed {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.NewValidationError("observed", "must be finite", v)
		}
		if v < 0 {
			return errors.NewValidationError("observed", "counts must be non-negative", v)
		}
	}

	n := len(observed)
	xmean := stat.Mean(observed, nil)
	xvar := popVariance(observed, xmean)
	if xmean == 0 {
		return errors.NewFitError(op, "all-zero sample", errors.ErrDegenerateData)
	}
	if xvar == 0 {
		return errors.NewFitError(op, "zero-variance sample", errors.ErrDegenerateData)
	}

	// Moment estimate of the mixing scale: var = mu(1+b) for the
	// gamma-Poisson mixture, so b = var/mean - 1. Underdispersed samples
	// give a non-positive estimate and are clamped.
	b := xvar/xmean - 1
	if b <= 0 {
		b = minScale
	}
	a := xmean / b

	aOld := math.Inf(1)
	iteration := 0
	for math.Abs(aOld-a) > f.tol && iteration < f.maxIter {
		aOld = a

		p := b / (b + 1)
		logp := errors.StabilizeLog(p)

		var m, bar float64
		for _, x := range observed {
			obsa := x + a
			m += obsa * p
			bar += special.Digamma(obsa) + logp
		}
		m /= float64(n)
		bar /= float64(n)
		s := errors.StabilizeLog(m) - bar

		var err error
		a, b, _, err = gamma.FitFromStats(m, s, f.tol, gammaMaxIter)
		if err != nil {
			return errors.Wrap(err, op)
		}
		iteration++
	}

	if err := errors.CheckValues("negbinom_em", []float64{a, b}, iteration); err != nil {
		return err
	}

	f.Theta = a
	f.Mu = a * b
	f.Iterations = iteration
	f.state.SetNSamples(n)
	f.state.SetFitted()

	converged := math.Abs(aOld-a) <= f.tol
	if !converged {
		errors.Warn(errors.NewConvergenceWarning("NegBinomFitter", iteration, ""))
	}
	log.GetLogger().Debug("negative binomial fit complete",
		log.ModelNameKey, "NegBinomFitter",
		log.OperationKey, "fit",
		log.SamplesKey, n,
		log.IterationKey, iteration,
		log.ConvergedKey, converged,
		log.ThetaKey, f.Theta,
		log.MuKey, f.Mu,
	)
	return nil
}

// Mean returns the mean of the fitted distribution.
func (f *Fitter) Mean() (float64, error) {
	if !f.IsFitted() {
		return 0, errors.NewNotFittedError("NegBinomFitter", "Mean")
	}
	return f.Mu, nil
}

// Var returns the variance of the fitted distribution, mu + mu^2/theta.
func (f *Fitter) Var() (float64, error) {
	if !f.IsFitted() {
		return 0, errors.NewNotFittedError("NegBinomFitter", "Var")
	}
	return f.Mu + f.Mu*f.Mu/f.Theta, nil
}

// Prob returns the probability mass at count k.
func (f *Fitter) Prob(k float64) (float64, error) {
	lp, err := f.LogProb(k)
	if err != nil {
		return 0, err
	}
	return math.Exp(lp), nil
}

// LogProb returns the log probability mass at count k.
func (f *Fitter) LogProb(k float64) (float64, error) {
	if !f.IsFitted() {
		return 0, errors.NewNotFittedError("NegBinomFitter", "LogProb")
	}
	return LogPMF(k, f.Theta, f.Mu)
}

// Rand draws one count from the fitted distribution via the gamma-Poisson
// composition.
func (f *Fitter) Rand(src rand.Source) (float64, error) {
	if !f.IsFitted() {
		return 0, errors.NewNotFittedError("NegBinomFitter", "Rand")
	}
	return Rand(f.Theta, f.Mu, src), nil
}

// LogPMF returns the Negative Binomial log probability mass at count k for
// size theta and mean mu:
//
//	lgamma(k+theta) - lgamma(theta) - lgamma(k+1)
//	  + theta*log(theta/(theta+mu)) + k*log(mu/(theta+mu))
func LogPMF(k, theta, mu float64) (float64, error) {
	if theta <= 0 || math.IsNaN(theta) || math.IsInf(theta, 0) {
		return 0, errors.NewValidationError("theta", "must be positive and finite", theta)
	}
	if mu <= 0 || math.IsNaN(mu) || math.IsInf(mu, 0) {
		return 0, errors.NewValidationError("mu", "must be positive and finite", mu)
	}
	if k < 0 || k != math.Trunc(k) {
		return 0, errors.NewValidationError("k", "must be a non-negative integer", k)
	}

	lgKT, _ := math.Lgamma(k + theta)
	lgT, _ := math.Lgamma(theta)
	lgK1, _ := math.Lgamma(k + 1)
	return lgKT - lgT - lgK1 +
		theta*math.Log(theta/(theta+mu)) +
		k*math.Log(mu/(theta+mu)), nil
}

// Rand draws one count from NB(theta, mu): a Poisson with a
// Gamma(theta, rate theta/mu) distributed rate.
func Rand(theta, mu float64, src rand.Source) float64 {
	lambda := distuv.Gamma{Alpha: theta, Beta: theta / mu, Src: src}.Rand()
	if lambda <= 0 {
		return 0
	}
	return distuv.Poisson{Lambda: lambda, Src: src}.Rand()
}

// popVariance is the population (biased) variance used by the moment
// initialization.
func popVariance(observed []float64, mean float64) float64 {
	var ss float64
	for _, v := range observed {
		d := v - mean
		ss += d * d
	}
	return ss / float64(len(observed))
}
