package frame

import (
	"html/template"
	"strings"

	"github.com/YuminosukeSato/nbmetrics/pkg/errors"
)

var tableTemplate = template.Must(template.New("frame").Parse(`<table border="1" class="dataframe">
  <thead>
{{- range .Header}}
    <tr>
{{- range .}}
      <th{{if gt .Span 1}} colspan="{{.Span}}" halign="left"{{end}}>{{.Text}}</th>
{{- end}}
    </tr>
{{- end}}
  </thead>
  <tbody>
{{- range .Body}}
    <tr>
{{- range .Labels}}
      <th{{if gt .Span 1}} rowspan="{{.Span}}" valign="top"{{end}}>{{.Text}}</th>
{{- end}}
{{- range .Cells}}
      <td>{{.}}</td>
{{- end}}
    </tr>
{{- end}}
  </tbody>
</table>`))

type headerCell struct {
	Text string
	Span int
}

type bodyRow struct {
	Labels []headerCell
	Cells  []string
}

type tableView struct {
	Header [][]headerCell
	Body   []bodyRow
}

// ToHTML renders the frame as an HTML table. Labels and cell values are
// escaped. Outer index levels with repeated labels are merged with rowspan and
// outer column levels with colspan.
func (f *Frame) ToHTML() (string, error) {
	var sb strings.Builder
	if err := tableTemplate.Execute(&sb, f.view()); err != nil {
		return "", errors.Wrap(err, "frame: render html")
	}
	return sb.String(), nil
}

func (f *Frame) view() tableView {
	var v tableView

	rowLevels := f.index.NLevels()
	colLevels := f.columns.NLevels()
	for l := 0; l < colLevels; l++ {
		row := make([]headerCell, 0, rowLevels+f.columns.Len())
		for k := 0; k < rowLevels; k++ {
			row = append(row, headerCell{Span: 1})
		}
		if l < colLevels-1 {
			for j, span := range f.columns.spans(l) {
				if span > 0 {
					row = append(row, headerCell{Text: f.columns.labels[j][l], Span: span})
				}
			}
		} else {
			for j := 0; j < f.columns.Len(); j++ {
				row = append(row, headerCell{Text: f.columns.labels[j][l], Span: 1})
			}
		}
		v.Header = append(v.Header, row)
	}

	spans := make([][]int, rowLevels)
	for l := 0; l < rowLevels-1; l++ {
		spans[l] = f.index.spans(l)
	}
	for i := 0; i < f.index.Len(); i++ {
		var row bodyRow
		for l := 0; l < rowLevels; l++ {
			if l < rowLevels-1 {
				if spans[l][i] == 0 {
					continue
				}
				row.Labels = append(row.Labels, headerCell{Text: f.index.labels[i][l], Span: spans[l][i]})
				continue
			}
			row.Labels = append(row.Labels, headerCell{Text: f.index.labels[i][l], Span: 1})
		}
		row.Cells = make([]string, f.columns.Len())
		for j := range row.Cells {
			row.Cells[j] = f.Format(i, j)
		}
		v.Body = append(v.Body, row)
	}
	return v
}
