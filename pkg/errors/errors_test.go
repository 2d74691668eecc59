package errors

import (
	"strings"
	"testing"
)

func TestNotFittedError(t *testing.T) {
	err := NewNotFittedError("NegBinomFitter", "LogProb")
	if err == nil {
		t.Fatal("expected error")
	}

	var nf *NotFittedError
	if !As(err, &nf) {
		t.Fatal("expected NotFittedError in chain")
	}
	if nf.ModelName != "NegBinomFitter" || nf.Method != "LogProb" {
		t.Errorf("unexpected fields: %+v", nf)
	}
	if !strings.Contains(err.Error(), "not fitted yet") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestDimensionError(t *testing.T) {
	err := NewDimensionError("Transform", 3, 5, 1)

	var de *DimensionError
	if !As(err, &de) {
		t.Fatal("expected DimensionError in chain")
	}
	if de.Expected != 3 || de.Got != 5 || de.Axis != 1 {
		t.Errorf("unexpected fields: %+v", de)
	}
	if !strings.Contains(err.Error(), "columns") {
		t.Errorf("axis 1 should render as columns: %v", err)
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("theta", "must be positive", -2.0)

	var ve *ValidationError
	if !As(err, &ve) {
		t.Fatal("expected ValidationError in chain")
	}
	if !strings.Contains(err.Error(), "theta") || !strings.Contains(err.Error(), "-2") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestFitError_Unwrap(t *testing.T) {
	err := NewFitError("NegBinomFitter.Fit", "empty data", ErrEmptyData)

	if !Is(err, ErrEmptyData) {
		t.Error("expected ErrEmptyData in chain")
	}
	if !strings.Contains(err.Error(), "NegBinomFitter.Fit") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestConvergenceWarning(t *testing.T) {
	w := NewConvergenceWarning("GammaFitter", 10, "")
	if !strings.Contains(w.Error(), "10 iterations") {
		t.Errorf("unexpected message: %v", w)
	}

	w = NewConvergenceWarning("GammaFitter", 10, "shape oscillating")
	if !strings.Contains(w.Error(), "shape oscillating") {
		t.Errorf("unexpected message: %v", w)
	}
}

func TestWarnHandler(t *testing.T) {
	var captured error
	SetWarningHandler(func(w error) { captured = w })
	defer SetWarningHandler(nil)

	warning := NewConvergenceWarning("NegBinomFitter", 100, "")
	Warn(warning)

	if captured != warning {
		t.Errorf("handler got %v, want %v", captured, warning)
	}
}

func TestZerologWarnFuncTakesPrecedence(t *testing.T) {
	var viaHandler, viaZerolog error
	SetWarningHandler(func(w error) { viaHandler = w })
	SetZerologWarnFunc(func(w error) { viaZerolog = w })
	defer func() {
		SetWarningHandler(nil)
		SetZerologWarnFunc(nil)
	}()

	warning := NewConvergenceWarning("GammaFitter", 5, "")
	Warn(warning)

	if viaZerolog != warning {
		t.Error("zerolog sink should receive the warning")
	}
	if viaHandler != nil {
		t.Error("plain handler should be bypassed when the zerolog sink is set")
	}
}

func TestNumericalInstabilityError(t *testing.T) {
	err := NewNumericalInstabilityError("em_update", []float64{1, 2, 3, 4, 5, 6, 7}, 42)

	var ne *NumericalInstabilityError
	if !As(err, &ne) {
		t.Fatal("expected NumericalInstabilityError in chain")
	}
	msg := err.Error()
	if !strings.Contains(msg, "em_update") || !strings.Contains(msg, "iteration 42") {
		t.Errorf("unexpected message: %v", msg)
	}
	if !strings.Contains(msg, "...") {
		t.Errorf("long value list should be truncated: %v", msg)
	}
}
