package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/linkmap/internal/model"
)

// JSONWriter renders the crawl report as JSON for tool integration.
// Standard encoding/json is sufficient here; the report is small and
// the types are plain structs.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed output.
	indent bool
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithPrettyPrint enables two-space indented JSON output.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
	}
}

// NewJSONWriter creates a JSONWriter with the given output filters.
// The filters apply to the discovered list inside the emitted report;
// edges and skip records are emitted as-is.
func NewJSONWriter(output io.Writer, opts Options, jsonOpts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output, opts)}
	for _, opt := range jsonOpts {
		opt(w)
	}
	return w
}

// Write implements Writer.
func (w *JSONWriter) Write(report *model.CrawlReport) (int, error) {
	// Emit a copy with the filtered list; the caller's report stays
	// verbatim.
	out := *report
	out.Discovered = w.filtered(report)

	var (
		data []byte
		err  error
	)
	if w.indent {
		data, err = json.MarshalIndent(&out, "", "  ")
	} else {
		data, err = json.Marshal(&out)
	}
	if err != nil {
		return 0, err
	}
	data = append(data, '\n')

	return w.output.Write(data)
}
