// Package diagnostics renders fit-diagnostic plots for fitted count models.
package diagnostics

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/nbfit/negbinom"
	"github.com/YuminosukeSato/nbfit/pkg/errors"
)

// FitPlot builds a plot of the observed count histogram (normalized to unit
// area) overlaid with the Negative Binomial PMF for size theta and mean mu.
func FitPlot(observed []float64, theta, mu float64) (*plot.Plot, error) {
	if len(observed) == 0 {
		return nil, errors.NewValueError("FitPlot", "empty sample")
	}

	p := plot.New()
	p.Title.Text = "Negative Binomial fit"
	p.X.Label.Text = "count"
	p.Y.Label.Text = "probability"

	maxCount := observed[0]
	for _, v := range observed {
		if v > maxCount {
			maxCount = v
		}
	}
	nBins := int(maxCount) + 1
	if nBins > 60 {
		nBins = 60
	}

	hist, err := plotter.NewHist(plotter.Values(observed), nBins)
	if err != nil {
		return nil, errors.Wrap(err, "FitPlot: histogram")
	}
	hist.Normalize(1)
	p.Add(hist)

	pts := make(plotter.XYs, 0, int(maxCount)+1)
	for k := 0.0; k <= maxCount; k++ {
		lp, err := negbinom.LogPMF(k, theta, mu)
		if err != nil {
			return nil, err
		}
		pts = append(pts, plotter.XY{X: k, Y: math.Exp(lp)})
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, errors.Wrap(err, "FitPlot: pmf line")
	}
	p.Add(line)
	p.Legend.Add("fitted NB", line)

	return p, nil
}

// SaveFitPlot renders the fit plot to a file; the format follows the file
// extension (png, pdf, svg, ...).
func SaveFitPlot(observed []float64, theta, mu float64, path string) error {
	p, err := FitPlot(observed, theta, mu)
	if err != nil {
		return err
	}
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrap(err, "SaveFitPlot")
	}
	return nil
}
