package plotting

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/nbmetrics/metrics"
	"github.com/YuminosukeSato/nbmetrics/pkg/errors"
)

func sweep(t *testing.T) *metrics.RateTable {
	t.Helper()
	yTrue := mat.NewVecDense(6, []float64{1, 1, 1, 0, 0, 0})
	yProba := mat.NewVecDense(6, []float64{0.9, 0.7, 0.4, 0.6, 0.2, 0.1})

	ms, err := metrics.ThresholdSweep(yTrue, yProba, []float64{0.8, 0.5, 0.3, 0.0})
	require.NoError(t, err)
	rt, err := metrics.ComputeTPRFPR(ms)
	require.NoError(t, err)
	return rt
}

func TestPoints(t *testing.T) {
	rt := sweep(t)

	assert.Equal(t, plotter.XYs{
		{X: 0, Y: 0.333},
		{X: 0.333, Y: 0.667},
		{X: 0.333, Y: 1},
		{X: 1, Y: 1},
	}, Points(rt))
}

func TestPointsSkipsNaN(t *testing.T) {
	errors.SetWarningHandler(func(error) {})
	defer errors.SetWarningHandler(nil)

	degenerate, err := metrics.NewConfusionMatrix(0, 0, 1, 1)
	require.NoError(t, err)
	ok, err := metrics.NewConfusionMatrix(1, 1, 1, 1)
	require.NoError(t, err)

	var ms metrics.NamedMatrices
	ms.Add("nan", degenerate)
	ms.Add("ok", ok)
	rt, err := metrics.ComputeTPRFPR(ms)
	require.NoError(t, err)

	assert.Equal(t, plotter.XYs{{X: 0.5, Y: 0.5}}, Points(rt))

	var only metrics.NamedMatrices
	only.Add("nan", degenerate)
	nanOnly, err := metrics.ComputeTPRFPR(only)
	require.NoError(t, err)

	_, err = ROC([]NamedRates{{Name: "empty", Rates: nanOnly}})
	var valErr *errors.ValueError
	assert.True(t, errors.As(err, &valErr))
}

func TestROCErrors(t *testing.T) {
	_, err := ROC(nil)
	assert.True(t, errors.Is(err, errors.ErrEmptyData))

	_, err = ROC([]NamedRates{{Name: "missing"}})
	var valErr *errors.ValueError
	assert.True(t, errors.As(err, &valErr))
}

func TestROCWriteSVG(t *testing.T) {
	rt := sweep(t)

	p, err := ROC([]NamedRates{{Name: "model", Rates: rt}}, WithTitle("Validation ROC"))
	require.NoError(t, err)
	assert.Equal(t, "Validation ROC", p.Title.Text)

	var buf bytes.Buffer
	require.NoError(t, WriteSVG(p, &buf, 4*vg.Inch, 4*vg.Inch))
	assert.True(t, strings.Contains(buf.String(), "<svg"), "expected svg output")
}

func TestROCSave(t *testing.T) {
	rt := sweep(t)

	p, err := ROC([]NamedRates{{Name: "a", Rates: rt}, {Name: "b", Rates: rt}}, WithoutDiagonal())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "roc.svg")
	require.NoError(t, Save(p, path, 4*vg.Inch, 3*vg.Inch))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestLegendLabel(t *testing.T) {
	rt := sweep(t)
	assert.True(t, strings.HasPrefix(legendLabel(NamedRates{Name: "m", Rates: rt}), "m (AUC "))
}
