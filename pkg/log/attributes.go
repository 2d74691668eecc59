// Package log defines standard attribute keys for fitting operations.
//
// Using these keys consistently across the library makes log streams easy to
// filter: every fit emits the same model/operation/data attributes whether it
// came from a single-series fit or a batch run.
package log

// Model and operation context.
const (
	// ModelNameKey identifies the estimator type.
	// Examples: "NegBinomFitter", "GammaFitter", "SizeFactorScaler"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "fit_rows", "transform", "export", "load"
	OperationKey = "fit.operation"

	// ComponentKey identifies the package performing the operation.
	// Examples: "negbinom", "gamma", "preprocessing"
	ComponentKey = "fit.component"
)

// Data shape and characteristics.
const (
	// SamplesKey is the number of observations in the sample.
	SamplesKey = "data.samples"

	// RowsKey is the number of series in a batch fit.
	RowsKey = "data.rows"

	// MeanKey is the sample mean, logged for fit diagnostics.
	MeanKey = "data.mean"

	// VarianceKey is the sample variance, logged for fit diagnostics.
	VarianceKey = "data.variance"
)

// Training progress and results.
const (
	// IterationKey is the iteration count of an iterative fit.
	IterationKey = "training.iteration"

	// ConvergedKey records whether the fit met its tolerance.
	ConvergedKey = "training.converged"

	// TolKey is the convergence tolerance in effect.
	TolKey = "training.tol"

	// ThetaKey is the fitted Negative Binomial size parameter.
	ThetaKey = "params.theta"

	// MuKey is the fitted mean parameter.
	MuKey = "params.mu"

	// AlphaKey is the fitted Gamma shape parameter.
	AlphaKey = "params.alpha"

	// BetaKey is the fitted Gamma scale parameter.
	BetaKey = "params.beta"

	// LogLikKey is a fitted-model log-likelihood.
	LogLikKey = "metrics.loglik"

	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)
