package negbinom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestFitRows(t *testing.T) {
	const cols = 2000
	rows := [][]float64{
		sampleNB(2.0, 5.0, cols, 1),
		sampleNB(0.8, 12.0, cols, 2),
		make([]float64, cols), // all zeros: must fail in isolation
		sampleNB(5.0, 3.0, cols, 3),
	}

	data := make([]float64, 0, len(rows)*cols)
	for _, r := range rows {
		data = append(data, r...)
	}
	X := mat.NewDense(len(rows), cols, data)

	results := FitRows(X)
	require.Len(t, results, len(rows))

	assert.NoError(t, results[0].Err)
	assert.InDelta(t, 2.0, results[0].Theta, 0.6)
	assert.InDelta(t, 5.0, results[0].Mu, 0.5)

	assert.NoError(t, results[1].Err)
	assert.InDelta(t, 12.0, results[1].Mu, 1.2)

	assert.Error(t, results[2].Err)
	assert.Zero(t, results[2].Theta)

	assert.NoError(t, results[3].Err)
	assert.InDelta(t, 3.0, results[3].Mu, 0.4)

	for i, res := range results {
		if res.Err == nil {
			assert.InDelta(t, 1/res.Theta, res.Dispersion, 1e-12, "row %d", i)
		}
	}
}

func TestFitRows_ParallelPath(t *testing.T) {
	// Enough rows to cross the parallel threshold; every row identical, so
	// every result must agree.
	const (
		nRows = 100
		cols  = 300
	)
	row := sampleNB(2.0, 4.0, cols, 5)
	data := make([]float64, 0, nRows*cols)
	for i := 0; i < nRows; i++ {
		data = append(data, row...)
	}
	X := mat.NewDense(nRows, cols, data)

	results := FitRows(X)
	require.Len(t, results, nRows)
	for i := 1; i < nRows; i++ {
		require.NoError(t, results[i].Err)
		assert.Equal(t, results[0].Theta, results[i].Theta, "row %d", i)
		assert.Equal(t, results[0].Mu, results[i].Mu, "row %d", i)
	}
}

func TestFitRows_InputUnchanged(t *testing.T) {
	const cols = 500
	data := append(sampleNB(2.0, 5.0, cols, 31), sampleNB(1.5, 8.0, cols, 37)...)
	snapshot := append([]float64(nil), data...)
	X := mat.NewDense(2, cols, data)

	results := FitRows(X)
	require.Len(t, results, 2)
	require.NoError(t, results[0].Err)
	require.NoError(t, results[1].Err)

	assert.Equal(t, snapshot, data)
}

func TestFitRows_Empty(t *testing.T) {
	assert.Nil(t, FitRows(nil))
	assert.Nil(t, FitRows(&mat.Dense{}))
}

func TestFitRows_Options(t *testing.T) {
	X := mat.NewDense(1, 2000, sampleNB(2.0, 5.0, 2000, 9))

	loose := FitRows(X, WithMaxIter(1))
	tight := FitRows(X, WithTol(1e-8), WithMaxIter(500))

	require.NoError(t, loose[0].Err)
	require.NoError(t, tight[0].Err)
	assert.Equal(t, 1, loose[0].Iterations)
	assert.Greater(t, tight[0].Iterations, 1)
}
