package negbinom

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/YuminosukeSato/nbfit/pkg/errors"
)

// Params is the JSON representation of a fitted model. The keys match the
// result dictionary of the pyfastnbfit package so artifacts can be exchanged
// with Python pipelines.
type Params struct {
	Theta      float64 `json:"theta"`
	Dispersion float64 `json:"dispersion"`
	Mu         float64 `json:"mu"`
	Iterations int     `json:"iterations"`
}

// Params returns the fitted parameters.
func (f *Fitter) Params() (Params, error) {
	if !f.IsFitted() {
		return Params{}, errors.NewNotFittedError("NegBinomFitter", "Params")
	}
	return Params{
		Theta:      f.Theta,
		Dispersion: 1 / f.Theta,
		Mu:         f.Mu,
		Iterations: f.Iterations,
	}, nil
}

// ExportParams writes the fitted parameters as JSON.
func (f *Fitter) ExportParams(w io.Writer) error {
	params, err := f.Params()
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(&params); err != nil {
		return fmt.Errorf("failed to encode params: %w", err)
	}
	return nil
}

// ExportParamsFile writes the fitted parameters to a JSON file.
func (f *Fitter) ExportParamsFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	return f.ExportParams(file)
}

// LoadParams reads parameters from JSON and marks the fitter as fitted.
func (f *Fitter) LoadParams(r io.Reader) error {
	var params Params
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&params); err != nil {
		return fmt.Errorf("failed to decode params: %w", err)
	}

	if params.Theta <= 0 || math.IsNaN(params.Theta) || math.IsInf(params.Theta, 0) {
		return errors.NewValidationError("theta", "must be positive and finite", params.Theta)
	}
	if params.Mu <= 0 || math.IsNaN(params.Mu) || math.IsInf(params.Mu, 0) {
		return errors.NewValidationError("mu", "must be positive and finite", params.Mu)
	}

	f.Theta = params.Theta
	f.Mu = params.Mu
	f.Iterations = params.Iterations
	f.state.SetFitted()
	return nil
}

// LoadParamsFile reads parameters from a JSON file.
func (f *Fitter) LoadParamsFile(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return f.LoadParams(file)
}
