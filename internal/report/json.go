package report

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/go-faster/errors"

	"github.com/jonathan/checkhtml/internal/grader"
)

// DefaultIndent is the indentation used for JSON output.
const DefaultIndent = "    "

// JSONWriter outputs the result as an indented JSON object followed by a newline.
// Keys keep the order of the result.
type JSONWriter struct {
	output io.Writer
	indent string
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer) *JSONWriter {
	return &JSONWriter{output: output, indent: DefaultIndent}
}

// Write outputs result in JSON format.
func (w *JSONWriter) Write(result *grader.Result) error {
	raw, err := result.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "encode result")
	}

	// Selectors stay unescaped, so '>' and '&' are printed as written.
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", w.indent); err != nil {
		return errors.Wrap(err, "indent result")
	}
	buf.WriteByte('\n')

	if _, err := w.output.Write(buf.Bytes()); err != nil {
		return errors.Wrap(err, "write result")
	}
	return nil
}
