package metrics

import (
	"math"
	"testing"
)

func TestNegBinomLogLikelihood(t *testing.T) {
	// theta=1, mu=1 is geometric with p=1/2: loglik = -(sum(k)+n)*log(2).
	observed := []float64{0, 1, 2, 3}
	got, err := NegBinomLogLikelihood(1, 1, observed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := -(6.0 + 4.0) * math.Log(2)
	if math.Abs(got-want) > 1e-10 {
		t.Errorf("loglik = %v, want %v", got, want)
	}
}

func TestNegBinomLogLikelihood_Errors(t *testing.T) {
	if _, err := NegBinomLogLikelihood(1, 1, nil); err == nil {
		t.Error("expected error for empty sample")
	}
	if _, err := NegBinomLogLikelihood(0, 1, []float64{1}); err == nil {
		t.Error("expected error for zero theta")
	}
	if _, err := NegBinomLogLikelihood(1, 1, []float64{-1}); err == nil {
		t.Error("expected error for negative count")
	}
}

func TestGammaLogLikelihood(t *testing.T) {
	// Exponential special case: alpha=1, scale beta=2 has density
	// (1/2) exp(-x/2).
	observed := []float64{1, 2, 4}
	got, err := GammaLogLikelihood(1, 2, observed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 0.0
	for _, x := range observed {
		want += math.Log(0.5) - x/2
	}
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("loglik = %v, want %v", got, want)
	}
}

func TestGammaLogLikelihood_Errors(t *testing.T) {
	if _, err := GammaLogLikelihood(1, 2, nil); err == nil {
		t.Error("expected error for empty sample")
	}
	if _, err := GammaLogLikelihood(-1, 2, []float64{1}); err == nil {
		t.Error("expected error for negative alpha")
	}
	if _, err := GammaLogLikelihood(1, 2, []float64{0}); err == nil {
		t.Error("expected error for non-positive observation")
	}
}

func TestInformationCriteria(t *testing.T) {
	ll := -123.5
	if got := AIC(ll, 2); math.Abs(got-(4+247)) > 1e-12 {
		t.Errorf("AIC = %v, want %v", got, 4.0+247.0)
	}
	want := 2*math.Log(100) + 247
	if got := BIC(ll, 2, 100); math.Abs(got-want) > 1e-12 {
		t.Errorf("BIC = %v, want %v", got, want)
	}
}

func TestNegBinomDeviance(t *testing.T) {
	// Perfect fit on y>0 with mu=y gives zero deviance.
	observed := []float64{1, 2, 5}
	got, err := NegBinomDeviance(2.0, observed, observed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got) > 1e-12 {
		t.Errorf("deviance = %v, want 0", got)
	}

	// Deviance is positive for an imperfect fit.
	fitted := []float64{2, 2, 2}
	got, err = NegBinomDeviance(2.0, observed, fitted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got <= 0 {
		t.Errorf("deviance = %v, want > 0", got)
	}
}

func TestNegBinomDeviance_Errors(t *testing.T) {
	if _, err := NegBinomDeviance(2, []float64{1, 2}, []float64{1}); err == nil {
		t.Error("expected dimension error")
	}
	if _, err := NegBinomDeviance(2, nil, nil); err == nil {
		t.Error("expected error for empty sample")
	}
	if _, err := NegBinomDeviance(2, []float64{1}, []float64{0}); err == nil {
		t.Error("expected error for non-positive fitted mean")
	}
}

func TestNegBinomDeviance_ZeroCounts(t *testing.T) {
	// y=0 terms use the 0*log(0) = 0 convention and must stay finite.
	got, err := NegBinomDeviance(1.5, []float64{0, 0, 3}, []float64{1, 1, 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.IsNaN(got) || math.IsInf(got, 0) {
		t.Errorf("deviance = %v, want finite", got)
	}
	if got <= 0 {
		t.Errorf("deviance = %v, want > 0", got)
	}
}
