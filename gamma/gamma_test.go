package gamma

import (
	"math"
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/nbfit/pkg/errors"
	"github.com/YuminosukeSato/nbfit/special"
)

func TestFitFromStats_ExactStatistics(t *testing.T) {
	// For true shape a, the MLE condition is log(a) - digamma(a) = s.
	// Feeding the exact statistic back must recover the shape.
	for _, a0 := range []float64{0.5, 2.0, 10.0, 150.0} {
		s := math.Log(a0) - special.Digamma(a0)
		xbar := a0 * 2.0 // scale 2

		alpha, beta, iters, err := FitFromStats(xbar, s, 1e-8, 50)
		if err != nil {
			t.Fatalf("FitFromStats failed for a0=%v: %v", a0, err)
		}
		if math.Abs(alpha-a0) > 1e-4*a0 {
			t.Errorf("alpha = %v, want %v", alpha, a0)
		}
		if math.Abs(beta-2.0) > 1e-4*2.0 {
			t.Errorf("beta = %v, want 2.0", beta)
		}
		if iters < 1 {
			t.Errorf("expected at least one iteration, got %d", iters)
		}
	}
}

func TestFitFromStats_InvalidStats(t *testing.T) {
	if _, _, _, err := FitFromStats(-1, 0.5, 0, 0); err == nil {
		t.Error("expected error for negative xbar")
	}
	if _, _, _, err := FitFromStats(1, 0, 0, 0); err == nil {
		t.Error("expected error for zero s")
	}
	if _, _, _, err := FitFromStats(1, math.NaN(), 0, 0); err == nil {
		t.Error("expected error for NaN s")
	}
}

func TestFitter_RecoverKnownParameters(t *testing.T) {
	// Draw from Gamma(shape=3, scale=2) and check the MLE lands nearby.
	src := rand.NewPCG(42, 1)
	dist := distuv.Gamma{Alpha: 3, Beta: 0.5, Src: src} // rate 0.5 => scale 2

	observed := make([]float64, 5000)
	for i := range observed {
		observed[i] = dist.Rand()
	}

	f := NewFitter(WithTol(1e-6), WithMaxIter(100))
	if err := f.Fit(observed); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if math.Abs(f.Alpha-3) > 0.45 {
		t.Errorf("Alpha = %v, want ~3", f.Alpha)
	}
	if math.Abs(f.Beta-2) > 0.3 {
		t.Errorf("Beta = %v, want ~2", f.Beta)
	}
	if !f.IsFitted() {
		t.Error("expected fitter to be fitted")
	}

	mean, err := f.Mean()
	if err != nil {
		t.Fatalf("Mean failed: %v", err)
	}
	if math.Abs(mean-6) > 0.5 {
		t.Errorf("Mean = %v, want ~6", mean)
	}
}

func TestFitter_InputUnchanged(t *testing.T) {
	src := rand.NewPCG(7, 0)
	dist := distuv.Gamma{Alpha: 2, Beta: 1, Src: src}

	observed := make([]float64, 500)
	for i := range observed {
		observed[i] = dist.Rand()
	}
	snapshot := append([]float64(nil), observed...)

	f := NewFitter()
	if err := f.Fit(observed); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	for i, v := range snapshot {
		if observed[i] != v {
			t.Fatalf("input mutated at %d: %v != %v", i, observed[i], v)
		}
	}
}

func TestFitter_Validation(t *testing.T) {
	tests := []struct {
		name     string
		observed []float64
	}{
		{name: "empty sample", observed: nil},
		{name: "non-positive observation", observed: []float64{1, 2, 0}},
		{name: "negative observation", observed: []float64{1, -3, 2}},
		{name: "NaN observation", observed: []float64{1, math.NaN()}},
		{name: "constant sample", observed: []float64{2, 2, 2, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFitter()
			if err := f.Fit(tt.observed); err == nil {
				t.Errorf("expected error for %s", tt.name)
			}
			if f.IsFitted() {
				t.Error("fitter must not be marked fitted after a failed Fit")
			}
		})
	}
}

func TestFitter_NotFitted(t *testing.T) {
	f := NewFitter()

	if _, err := f.Mean(); !isNotFitted(err) {
		t.Errorf("Mean: expected NotFittedError, got %v", err)
	}
	if _, err := f.Var(); !isNotFitted(err) {
		t.Errorf("Var: expected NotFittedError, got %v", err)
	}
	if _, err := f.LogProb(1); !isNotFitted(err) {
		t.Errorf("LogProb: expected NotFittedError, got %v", err)
	}
	if _, err := f.Distribution(); !isNotFitted(err) {
		t.Errorf("Distribution: expected NotFittedError, got %v", err)
	}
}

func TestFitter_Distribution(t *testing.T) {
	f := NewFitter()
	if err := f.FitStats(4.0, math.Log(2.0)-special.Digamma(2.0)); err != nil {
		t.Fatalf("FitStats failed: %v", err)
	}

	d, err := f.Distribution()
	if err != nil {
		t.Fatalf("Distribution failed: %v", err)
	}
	// distuv uses rate; mean must match Alpha*Beta(scale).
	if math.Abs(d.Mean()-f.Alpha*f.Beta) > 1e-9 {
		t.Errorf("distuv mean %v != alpha*beta %v", d.Mean(), f.Alpha*f.Beta)
	}
}

func isNotFitted(err error) bool {
	var nf *errors.NotFittedError
	return errors.As(err, &nf)
}
