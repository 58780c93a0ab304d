// Package nbmetrics provides small notebook helpers for evaluating binary
// classifiers in Go.
//
// It thresholds a probability vector into a confusion matrix, aggregates
// true and false positive rates over several matrices, and renders several
// tables side by side as one raw-HTML payload for a notebook display.
//
// # Installation
//
//	go get github.com/YuminosukeSato/nbmetrics
//
// # Quick Start
//
//	package main
//
//	import (
//	    "os"
//
//	    "github.com/YuminosukeSato/nbmetrics/display"
//	    "github.com/YuminosukeSato/nbmetrics/metrics"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    yTrue := mat.NewVecDense(4, []float64{1, 1, 0, 0})
//	    yProba := mat.NewVecDense(4, []float64{0.9, 0.4, 0.3, 0.1})
//
//	    cm, err := metrics.ComputeConfusionMatrix(yTrue, yProba, 0.5)
//	    if err != nil {
//	        panic(err)
//	    }
//
//	    var ms metrics.NamedMatrices
//	    ms.Add(0.5, cm)
//	    rates, err := metrics.ComputeTPRFPR(ms)
//	    if err != nil {
//	        panic(err)
//	    }
//
//	    sink := display.NewWriterSink(os.Stdout)
//	    _ = display.SideBySide(sink, []any{cm, rates}, display.WithTitles("CM", "Rates"))
//	}
//
// # Packages
//
//   - metrics: confusion matrices, threshold sweeps, TPR/FPR tables and AUC
//   - display: side-by-side HTML rendering, title sequences and display sinks
//   - plotting: ROC curves with gonum/plot
//   - core/frame: labeled tables with multi-level labels and HTML output
//   - core/parallel: parallel processing utilities
//   - pkg/errors: structured errors and warnings on cockroachdb/errors
//   - pkg/log: structured logging on zerolog
//
// # License
//
// nbmetrics is released under the MIT License.
package nbmetrics
