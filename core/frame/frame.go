package frame

import (
	"fmt"
	"math"
	"strconv"

	"github.com/YuminosukeSato/nbmetrics/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Table is anything that can be shown as an HTML table.
type Table interface {
	// Dims returns the number of data rows and columns.
	Dims() (r, c int)

	// ToHTML returns the table markup, starting with a <table> element.
	ToHTML() (string, error)
}

// Frame is an immutable labeled 2-D table of values.
type Frame struct {
	index     Index
	columns   Index
	data      [][]any
	precision int
	colPrec   map[int]int
}

// Option configures a Frame.
type Option func(*Frame)

// WithPrecision renders float cells with a fixed number of decimals.
// The default, -1, uses the shortest representation.
func WithPrecision(p int) Option {
	return func(f *Frame) {
		f.precision = p
	}
}

// WithColumnPrecision overrides the float precision for column j only.
// A negative p uses the shortest representation for that column.
func WithColumnPrecision(j, p int) Option {
	return func(f *Frame) {
		if f.colPrec == nil {
			f.colPrec = make(map[int]int)
		}
		f.colPrec[j] = p
	}
}

// New creates a Frame from row-major data. The data is copied.
func New(data [][]any, index, columns Index, opts ...Option) (*Frame, error) {
	if len(data) != index.Len() {
		return nil, errors.NewDimensionError("frame.New", index.Len(), len(data), 0)
	}
	rows := make([][]any, len(data))
	for i, row := range data {
		if len(row) != columns.Len() {
			return nil, errors.NewDimensionError("frame.New", columns.Len(), len(row), 1)
		}
		rows[i] = append([]any(nil), row...)
	}

	f := &Frame{index: index, columns: columns, data: rows, precision: -1}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// FromMatrix creates a Frame with range labels from any gonum matrix.
func FromMatrix(m mat.Matrix, opts ...Option) *Frame {
	r, c := m.Dims()
	data := make([][]any, r)
	for i := 0; i < r; i++ {
		data[i] = make([]any, c)
		for j := 0; j < c; j++ {
			data[i][j] = m.At(i, j)
		}
	}
	f := &Frame{index: RangeIndex(r), columns: RangeIndex(c), data: data, precision: -1}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Dims returns the number of data rows and columns.
func (f *Frame) Dims() (r, c int) {
	return f.index.Len(), f.columns.Len()
}

// At returns the value at row i, column j.
func (f *Frame) At(i, j int) any {
	return f.data[i][j]
}

// Index returns the row index.
func (f *Frame) Index() Index { return f.index }

// Columns returns the column index.
func (f *Frame) Columns() Index { return f.columns }

// Format returns the display string of the cell at row i, column j.
func (f *Frame) Format(i, j int) string {
	p := f.precision
	if cp, ok := f.colPrec[j]; ok {
		p = cp
	}
	return formatValue(f.data[i][j], p)
}

func formatValue(v any, precision int) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return formatFloat(x, precision)
	case float32:
		return formatFloat(float64(x), precision)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

func formatFloat(x float64, precision int) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "inf"
	case math.IsInf(x, -1):
		return "-inf"
	}
	return strconv.FormatFloat(x, 'f', precision, 64)
}
