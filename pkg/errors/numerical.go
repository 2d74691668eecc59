package errors

import (
	"math"
)

// CheckValues checks a slice for NaN or Inf and returns a
// NumericalInstabilityError if any is found.
func CheckValues(operation string, values []float64, iteration int) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewNumericalInstabilityError(operation, values, iteration)
		}
	}
	return nil
}

// CheckScalar checks a single value for numerical instability.
func CheckScalar(operation string, value float64, iteration int) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return NewNumericalInstabilityError(operation, []float64{value}, iteration)
	}
	return nil
}

// StabilizeLog computes log with protection against log(0).
// Returns log(max(value, epsilon)) for a small positive epsilon.
func StabilizeLog(value float64) float64 {
	const epsilon = 1e-10
	if value < epsilon {
		return math.Log(epsilon)
	}
	return math.Log(value)
}
