// Package plotting draws ROC curves from metrics.RateTable values with gonum/plot.
package plotting

import (
	"cmp"
	"fmt"
	"io"
	"math"
	"slices"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/nbmetrics/metrics"
	"github.com/YuminosukeSato/nbmetrics/pkg/errors"
	"github.com/YuminosukeSato/nbmetrics/pkg/log"
)

// NamedRates is one curve of an ROC plot.
type NamedRates struct {
	Name  string
	Rates *metrics.RateTable
}

type config struct {
	title    string
	diagonal bool
}

// Option configures ROC.
type Option func(*config)

// WithTitle sets the plot title.
func WithTitle(title string) Option {
	return func(c *config) {
		c.title = title
	}
}

// WithoutDiagonal omits the dashed chance line.
func WithoutDiagonal() Option {
	return func(c *config) {
		c.diagonal = false
	}
}

// ROC plots one line per rate table over (FPR, TPR). Rows with NaN rates are
// skipped and the remaining points are connected in order of increasing FPR.
func ROC(curves []NamedRates, opts ...Option) (*plot.Plot, error) {
	if len(curves) == 0 {
		return nil, errors.NewEmptyInputError("plotting.ROC")
	}
	cfg := config{title: "ROC curve", diagonal: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	p := plot.New()
	p.Title.Text = cfg.title
	p.X.Label.Text = "False positive rate"
	p.Y.Label.Text = "True positive rate"
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1
	p.Legend.Top = false
	p.Legend.Left = false
	p.Add(plotter.NewGrid())

	if cfg.diagonal {
		diag := plotter.NewFunction(func(x float64) float64 { return x })
		diag.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
		diag.Color = plotutil.Color(6)
		p.Add(diag)
	}

	for i, c := range curves {
		if c.Rates == nil {
			return nil, errors.NewValueError("plotting.ROC", fmt.Sprintf("curve %d (%q) has no rate table", i, c.Name))
		}
		xys := Points(c.Rates)
		if len(xys) == 0 {
			return nil, errors.NewValueError("plotting.ROC", fmt.Sprintf("curve %d (%q) has no finite points", i, c.Name))
		}

		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return nil, errors.Wrapf(err, "plotting.ROC: curve %q", c.Name)
		}
		line.Color = plotutil.Color(i)
		points.Color = plotutil.Color(i)
		points.Shape = plotutil.Shape(i)
		p.Add(line, points)
		p.Legend.Add(legendLabel(c), line, points)
	}

	log.GetLoggerWithName("plotting").Debug("roc plot built",
		log.OperationKey, log.OperationPlot,
		"curves", len(curves),
	)
	return p, nil
}

// Points returns the finite (FPR, TPR) points of rt sorted by FPR, then TPR.
func Points(rt *metrics.RateTable) plotter.XYs {
	xys := make(plotter.XYs, 0, rt.Len())
	for _, row := range rt.Rows() {
		if math.IsNaN(row.FPR) || math.IsNaN(row.TPR) {
			continue
		}
		xys = append(xys, plotter.XY{X: row.FPR, Y: row.TPR})
	}
	slices.SortStableFunc(xys, func(a, b plotter.XY) int {
		if c := cmp.Compare(a.X, b.X); c != 0 {
			return c
		}
		return cmp.Compare(a.Y, b.Y)
	})
	return xys
}

func legendLabel(c NamedRates) string {
	auc, err := c.Rates.AUC()
	if err != nil {
		return c.Name
	}
	return fmt.Sprintf("%s (AUC %.3f)", c.Name, auc)
}

// WriteSVG renders p as SVG to w.
func WriteSVG(p *plot.Plot, w io.Writer, width, height vg.Length) error {
	wt, err := p.WriterTo(width, height, "svg")
	if err != nil {
		return errors.Wrap(err, "plotting: svg canvas")
	}
	if _, err := wt.WriteTo(w); err != nil {
		return errors.Wrap(err, "plotting: write svg")
	}
	return nil
}

// Save writes p to path; the format follows the file extension (.png, .svg, .pdf...).
func Save(p *plot.Plot, path string, width, height vg.Length) error {
	if err := p.Save(width, height, path); err != nil {
		return errors.Wrapf(err, "plotting: save %s", path)
	}
	return nil
}
