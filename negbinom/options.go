package negbinom

// Option is a function that configures a Fitter.
type Option func(*Fitter)

// WithTol sets the convergence tolerance on the size parameter.
func WithTol(tol float64) Option {
	return func(f *Fitter) {
		f.tol = tol
	}
}

// WithMaxIter sets the maximum number of EM iterations.
func WithMaxIter(maxIter int) Option {
	return func(f *Fitter) {
		f.maxIter = maxIter
	}
}
