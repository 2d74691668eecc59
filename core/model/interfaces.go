package model

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

// Fitter estimates distribution parameters from a sample of observations.
type Fitter interface {
	// Fit estimates parameters from the observed sample.
	Fit(observed []float64) error

	// IsFitted reports whether Fit has completed successfully.
	IsFitted() bool
}

// Distribution is the surface a fitted estimator exposes for the
// distribution it has estimated.
type Distribution interface {
	// Mean returns the mean of the fitted distribution.
	Mean() (float64, error)

	// Var returns the variance of the fitted distribution.
	Var() (float64, error)

	// LogProb returns the log density or log mass at x.
	LogProb(x float64) (float64, error)

	// Rand draws one value from the fitted distribution.
	Rand(src rand.Source) (float64, error)
}

// Transformer is the interface for data preprocessing estimators.
type Transformer interface {
	// Fit learns the transformation parameters from X.
	Fit(X mat.Matrix) error

	// Transform applies the learned transformation.
	Transform(X mat.Matrix) (mat.Matrix, error)

	// FitTransform fits and transforms in one step.
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}
