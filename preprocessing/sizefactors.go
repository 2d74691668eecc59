// Package preprocessing provides count-matrix normalization ahead of
// distribution fitting.
package preprocessing

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/nbfit/core/model"
	"github.com/YuminosukeSato/nbfit/pkg/errors"
)

// SizeFactorScaler normalizes a count matrix (rows are features such as
// genes, columns are samples) by median-of-ratios size factors: each
// sample's factor is the median ratio of its counts to the per-feature
// geometric mean. Dividing a column by its factor makes library sizes
// comparable before per-feature dispersion fitting.
type SizeFactorScaler struct {
	state *model.StateManager

	// Factors holds one size factor per column after Fit.
	Factors []float64
}

// NewSizeFactorScaler creates a SizeFactorScaler.
func NewSizeFactorScaler() *SizeFactorScaler {
	return &SizeFactorScaler{
		state: model.NewStateManager(),
	}
}

// IsFitted reports whether the scaler has been fitted.
func (s *SizeFactorScaler) IsFitted() bool {
	return s.state.IsFitted()
}

// Fit computes the size factors from X. Features containing any zero count
// are excluded from the ratio medians because their geometric mean is zero;
// at least one all-positive feature is required.
func (s *SizeFactorScaler) Fit(X mat.Matrix) error {
	const op = "SizeFactorScaler.Fit"

	if X == nil {
		return errors.NewFitError(op, "empty data", errors.ErrEmptyData)
	}
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewFitError(op, "empty data", errors.ErrEmptyData)
	}

	// Log geometric mean per feature, for all-positive features only.
	logMeans := make([]float64, 0, r)
	usable := make([]int, 0, r)
	for i := 0; i < r; i++ {
		var sum float64
		positive := true
		for j := 0; j < c; j++ {
			v := X.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				return errors.NewValidationError("X", "counts must be non-negative and finite", v)
			}
			if v == 0 {
				positive = false
				break
			}
			sum += math.Log(v)
		}
		if positive {
			usable = append(usable, i)
			logMeans = append(logMeans, sum/float64(c))
		}
	}
	if len(usable) == 0 {
		return errors.NewFitError(op, "no feature is positive in every sample", errors.ErrDegenerateData)
	}

	factors := make([]float64, c)
	ratios := make([]float64, len(usable))
	for j := 0; j < c; j++ {
		for k, i := range usable {
			ratios[k] = math.Exp(math.Log(X.At(i, j)) - logMeans[k])
		}
		sort.Float64s(ratios)
		factors[j] = median(ratios)
	}

	s.Factors = factors
	s.state.SetNSamples(c)
	s.state.SetFitted()
	return nil
}

// Transform divides each column of X by its size factor.
func (s *SizeFactorScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	const op = "SizeFactorScaler.Transform"

	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("SizeFactorScaler", "Transform")
	}
	r, c := X.Dims()
	if c != len(s.Factors) {
		return nil, errors.NewDimensionError(op, len(s.Factors), c, 1)
	}

	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, X.At(i, j)/s.Factors[j])
		}
	}
	return out, nil
}

// FitTransform fits the scaler and transforms X in one step.
func (s *SizeFactorScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// median returns the midpoint median of a sorted slice: the middle element
// for odd lengths, the mean of the two middle elements for even lengths.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return 0.5 * (sorted[n/2-1] + sorted[n/2])
}

// InverseTransform multiplies each column back by its size factor.
func (s *SizeFactorScaler) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	const op = "SizeFactorScaler.InverseTransform"

	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("SizeFactorScaler", "InverseTransform")
	}
	r, c := X.Dims()
	if c != len(s.Factors) {
		return nil, errors.NewDimensionError(op, len(s.Factors), c, 1)
	}

	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, X.At(i, j)*s.Factors[j])
		}
	}
	return out, nil
}
