// Package errors provides the error handling and warning system for NBFit.
// It is inspired by scikit-learn's warning/exception hierarchy and carries
// structured context on every error, with stack traces from cockroachdb/errors
// and zerolog marshaling for structured log output.
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Global warning handling
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// Default handler logs to standard error.
		log.Printf("NBFit-Warning: %v\n", w)
	}
	// zerolog sink, injected lazily to avoid an import cycle.
	zerologWarnFunc func(warning error)
)

// SetWarningHandler sets the library-wide warning handler. Use it to control
// how non-fatal conditions such as ConvergenceWarning are reported.
//
// Example:
//
//	errors.SetWarningHandler(func(w error) {
//	    // ignore warnings
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc installs a zerolog-backed warning sink. When set it
// takes precedence over the plain handler.
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn raises a warning through the configured sink.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	Warning types
//
// ===========================================================================

// ConvergenceWarning is raised when an iterative estimator exhausts its
// iteration budget before meeting the tolerance. The last estimate is still
// usable; the warning records how far the loop ran.
type ConvergenceWarning struct {
	Algorithm  string
	Iterations int
	Message    string
}

func (w *ConvergenceWarning) Error() string {
	if w.Message != "" {
		return fmt.Sprintf("%s failed to converge after %d iterations: %s", w.Algorithm, w.Iterations, w.Message)
	}
	return fmt.Sprintf("%s failed to converge after %d iterations. Consider increasing max_iter or loosening tol.", w.Algorithm, w.Iterations)
}

// MarshalZerologObject adds the structured warning fields to a zerolog event.
func (w *ConvergenceWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("algorithm", w.Algorithm).
		Int("iterations", w.Iterations).
		Str("message", w.Message).
		Str("type", "ConvergenceWarning")
}

// NewConvergenceWarning creates a new ConvergenceWarning.
func NewConvergenceWarning(algorithm string, iterations int, message string) *ConvergenceWarning {
	return &ConvergenceWarning{Algorithm: algorithm, Iterations: iterations, Message: message}
}

// ===========================================================================
//
//	Structured error types
//
// ===========================================================================

// NotFittedError is returned when a fitted-model accessor is used before a
// successful Fit.
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("nbfit: %s: this estimator is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError creates a NotFittedError with a stack trace attached.
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// DimensionError is returned when input data has an unexpected shape.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns
}

func (e *DimensionError) Error() string {
	axisName := "columns"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("nbfit: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	axisName := "columns"
	if e.Axis == 0 {
		axisName = "rows"
	}
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName).
		Str("type", "DimensionError")
}

// NewDimensionError creates a DimensionError with a stack trace attached.
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValidationError is returned when an input parameter or observation fails
// validation, e.g. a negative count or a non-positive gamma observation.
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("nbfit: validation failed for '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError creates a ValidationError with a stack trace attached.
func NewValidationError(param, reason string, value interface{}) error {
	err := &ValidationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// ValueError is returned when an argument value is unusable for the
// operation, e.g. fitting on an empty sample or zero-variance data.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("nbfit: %s: %s", e.Op, e.Message)
}

// NewValueError creates a ValueError with a stack trace attached.
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// FitError is a general error wrapper for estimator operations.
type FitError struct {
	Op   string
	Kind string
	Err  error
}

func (e *FitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("nbfit: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("nbfit: %s: %s", e.Op, e.Kind)
}

func (e *FitError) Unwrap() error {
	return e.Err
}

// NewFitError creates a FitError with a stack trace attached.
func NewFitError(op, kind string, err error) error {
	fitErr := &FitError{Op: op, Kind: kind, Err: err}
	return errors.WithStack(fitErr)
}

// NumericalInstabilityError reports NaN, Inf, overflow or underflow detected
// during an iterative computation.
type NumericalInstabilityError struct {
	Operation string    // e.g. "digamma_inverse", "em_update"
	Values    []float64 // offending values
	Iteration int       // iteration at which the problem appeared
}

func (e *NumericalInstabilityError) Error() string {
	valStr := ""
	for i, v := range e.Values {
		if i > 0 {
			valStr += ", "
		}
		if i >= 5 {
			valStr += "..."
			break
		}
		valStr += fmt.Sprintf("%.6g", v)
	}
	return fmt.Sprintf("nbfit: numerical instability detected in %s at iteration %d. Values: [%s]",
		e.Operation, e.Iteration, valStr)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *NumericalInstabilityError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Operation).
		Int("iteration", e.Iteration).
		Floats64("values", e.Values).
		Str("type", "NumericalInstabilityError")
}

// NewNumericalInstabilityError creates a NumericalInstabilityError with a
// stack trace attached.
func NewNumericalInstabilityError(operation string, values []float64, iteration int) error {
	err := &NumericalInstabilityError{
		Operation: operation,
		Values:    values,
		Iteration: iteration,
	}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain matching target's type.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error with a stack trace.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error with a stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates err with a stack trace.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Common sentinel errors
//
// ===========================================================================

var (
	// ErrEmptyData is returned when an empty sample is passed to a fitter.
	ErrEmptyData = New("empty data")

	// ErrDegenerateData is returned when the sample carries no information
	// for the requested fit, e.g. constant counts with zero variance.
	ErrDegenerateData = New("degenerate data")

	// ErrNoConvergence is returned when a root finder cannot meet its
	// tolerance within the iteration budget.
	ErrNoConvergence = New("failed to converge")
)
