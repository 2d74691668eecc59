package gamma

// Option is a function that configures a Fitter.
type Option func(*Fitter)

// WithTol sets the convergence tolerance on the shape estimate.
func WithTol(tol float64) Option {
	return func(f *Fitter) {
		f.tol = tol
	}
}

// WithMaxIter sets the maximum number of fixed-point iterations.
func WithMaxIter(maxIter int) Option {
	return func(f *Fitter) {
		f.maxIter = maxIter
	}
}
