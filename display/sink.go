package display

import (
	"html/template"
	"io"
	"sync"

	"github.com/YuminosukeSato/nbmetrics/pkg/errors"
)

// Sink receives a raw-HTML payload, typically a notebook display surface.
type Sink interface {
	DisplayHTML(html string) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(html string) error

// DisplayHTML implements Sink.
func (f SinkFunc) DisplayHTML(html string) error { return f(html) }

// WriterSink writes payloads to an io.Writer as they arrive.
type WriterSink struct {
	w io.Writer
}

// NewWriterSink returns a sink writing to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// DisplayHTML implements Sink.
func (s *WriterSink) DisplayHTML(html string) error {
	if _, err := io.WriteString(s.w, html); err != nil {
		return errors.Wrap(err, "write html")
	}
	return nil
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// PageSink wraps each payload in a standalone HTML document, for viewing
// output outside a notebook.
type PageSink struct {
	w     io.Writer
	title string
}

// NewPageSink returns a sink writing one HTML document per payload to w.
func NewPageSink(w io.Writer, title string) *PageSink {
	return &PageSink{w: w, title: title}
}

// DisplayHTML implements Sink.
func (s *PageSink) DisplayHTML(html string) error {
	err := pageTemplate.Execute(s.w, struct {
		Title string
		Body  template.HTML
	}{
		Title: s.title,
		// payload is trusted markup produced by Render
		Body: template.HTML(html),
	})
	if err != nil {
		return errors.Wrap(err, "write html page")
	}
	return nil
}

// Recorder keeps every payload in memory.
type Recorder struct {
	mu       sync.Mutex
	payloads []string
}

// DisplayHTML implements Sink.
func (r *Recorder) DisplayHTML(html string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payloads = append(r.payloads, html)
	return nil
}

// Payloads returns a copy of all recorded payloads in order.
func (r *Recorder) Payloads() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.payloads...)
}

// Last returns the most recent payload, or "" if none was recorded.
func (r *Recorder) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.payloads) == 0 {
		return ""
	}
	return r.payloads[len(r.payloads)-1]
}
