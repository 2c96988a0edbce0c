// Package report renders check results for the terminal.
package report

import (
	"fmt"
	"io"

	"github.com/jonathan/checkhtml/internal/grader"
)

// Supported output formats.
const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// Writer renders a check result.
type Writer interface {
	Write(result *grader.Result) error
}

// New returns the Writer for format writing to output.
func New(format string, output io.Writer) (Writer, error) {
	switch format {
	case FormatJSON, "":
		return NewJSONWriter(output), nil
	case FormatMarkdown, "md":
		return NewMarkdownWriter(output), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (supported: %s, %s)", format, FormatJSON, FormatMarkdown)
	}
}
