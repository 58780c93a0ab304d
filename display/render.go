// Package display renders several tables side by side as one raw-HTML payload
// for notebook front ends.
//
//	sink := display.NewWriterSink(os.Stdout)
//	err := display.SideBySide(sink, []any{cm, rates}, display.WithTitles("Matrix", "Rates"))
//
// Each table becomes one fragment
//
//	<th style="text-align:center"><td style="vertical-align:top"><h2>TITLE</h2>TABLE</td></th>
//
// and the fragments are concatenated without separator. The <th>/<td> nesting
// is kept as is because existing notebooks depend on the resulting layout.
// Titles are written unescaped.
package display

import (
	"fmt"
	"iter"
	"strings"

	"github.com/YuminosukeSato/nbmetrics/core/frame"
	"github.com/YuminosukeSato/nbmetrics/pkg/errors"
	"github.com/YuminosukeSato/nbmetrics/pkg/log"
	"gonum.org/v1/gonum/mat"
)

const (
	fragmentOpen  = `<th style="text-align:center"><td style="vertical-align:top">`
	fragmentClose = `</td></th>`
	inlineStyle   = ` style="display:inline"`
)

type config struct {
	titles iter.Seq[string]
}

// Option configures Render and SideBySide.
type Option func(*config)

// WithTitles sets the table titles. Tables beyond the last title get LineBreak.
func WithTitles(titles ...string) Option {
	return func(c *config) {
		c.titles = Of(titles...)
	}
}

// WithTitleSeq sets an arbitrary title sequence. If it ends before the
// tables do, the remaining tables get LineBreak. A nil seq means BlankTitles.
func WithTitleSeq(seq iter.Seq[string]) Option {
	return func(c *config) {
		if seq == nil {
			seq = BlankTitles()
		}
		c.titles = seq
	}
}

// Render builds the side-by-side payload without emitting it.
//
// Every element of tables must be a frame.Table or a mat.Matrix; anything
// else fails with a TypeError before any rendering happens. Nothing is
// returned on failure.
func Render(tables []any, opts ...Option) (string, error) {
	cfg := config{titles: BlankTitles()}
	for _, opt := range opts {
		opt(&cfg)
	}

	resolved := make([]frame.Table, len(tables))
	for i, t := range tables {
		ft, err := asTable(i, t)
		if err != nil {
			return "", err
		}
		resolved[i] = ft
	}

	next, stop := iter.Pull(Chain(cfg.titles, Repeat(LineBreak)))
	defer stop()

	var sb strings.Builder
	for i, t := range resolved {
		title, _ := next()

		html, err := tableHTML(i, t)
		if err != nil {
			return "", err
		}

		sb.WriteString(fragmentOpen)
		sb.WriteString("<h2>")
		sb.WriteString(title)
		sb.WriteString("</h2>")
		sb.WriteString(html)
		sb.WriteString(fragmentClose)
	}
	return sb.String(), nil
}

// SideBySide renders tables and hands the payload to sink in a single call.
// With no tables the sink receives an empty payload.
func SideBySide(sink Sink, tables []any, opts ...Option) error {
	logger := log.GetLoggerWithName("display")

	payload, err := Render(tables, opts...)
	if err != nil {
		logger.Error("side-by-side render failed", err, log.OperationKey, log.OperationRender, log.TablesKey, len(tables))
		return err
	}
	if err := sink.DisplayHTML(payload); err != nil {
		return errors.Wrap(err, "display: sink")
	}

	logger.Debug("side-by-side rendered",
		log.OperationKey, log.OperationRender,
		log.TablesKey, len(tables),
		log.BytesKey, len(payload),
	)
	return nil
}

func asTable(i int, t any) (frame.Table, error) {
	switch v := t.(type) {
	case frame.Table:
		return v, nil
	case mat.Matrix:
		return frame.FromMatrix(v), nil
	default:
		return nil, errors.NewTypeError("display.Render", i, t, "frame.Table or mat.Matrix")
	}
}

// tableHTML renders t and forces its opening <table> tag to display inline.
func tableHTML(i int, t frame.Table) (html string, err error) {
	err = errors.SafeExecute(fmt.Sprintf("display.Render: table %d", i), func() error {
		var rerr error
		html, rerr = t.ToHTML()
		return rerr
	})
	if err != nil {
		return "", err
	}

	pos := strings.Index(html, "<table")
	if pos < 0 {
		return "", errors.NewValueError("display.Render", fmt.Sprintf("table %d: markup has no <table> element", i))
	}
	pos += len("<table")
	return html[:pos] + inlineStyle + html[pos:], nil
}
