package negbinom

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/nbfit/core/parallel"
	"github.com/YuminosukeSato/nbfit/pkg/log"
)

// Rows below this threshold are fitted sequentially.
const batchParallelThreshold = 64

// RowResult holds the fit of one matrix row. Err is set when that row could
// not be fitted (e.g. degenerate counts); the other fields are then zero.
type RowResult struct {
	Theta      float64
	Dispersion float64
	Mu         float64
	Iterations int
	Err        error
}

// FitRows fits a Negative Binomial to every row of X (rows are series,
// columns are observations, the genes x samples layout). Rows are fitted in
// parallel across CPU cores once the row count exceeds a small threshold,
// and failures are isolated per row.
func FitRows(X mat.Matrix, opts ...Option) []RowResult {
	if X == nil {
		return nil
	}
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return nil
	}

	logger := log.GetLogger()
	logger.Debug("batch negative binomial fit",
		log.ModelNameKey, "NegBinomFitter",
		log.OperationKey, "fit_rows",
		log.RowsKey, r,
		log.SamplesKey, c,
	)

	results := make([]RowResult, r)
	parallel.ParallelizeWithThreshold(r, batchParallelThreshold, func(start, end int) {
		row := make([]float64, c)
		for i := start; i < end; i++ {
			mat.Row(row, i, X)

			f := NewFitter(opts...)
			if err := f.Fit(row); err != nil {
				results[i] = RowResult{Err: err}
				continue
			}
			results[i] = RowResult{
				Theta:      f.Theta,
				Dispersion: f.Dispersion(),
				Mu:         f.Mu,
				Iterations: f.Iterations,
			}
		}
	})

	return results
}
