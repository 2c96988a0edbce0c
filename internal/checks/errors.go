// Package checks loads and validates the list of CSS selectors to look for in a document.
package checks

import (
	"fmt"
	"strings"

	"github.com/jonathan/checkhtml/internal/schemas"
)

// MalformedChecksError is returned when a checks file is not a JSON array of strings
type MalformedChecksError struct {
	Path    string
	Message string
	Fields  []schemas.FieldError
	Cause   error
}

func (e *MalformedChecksError) Error() string {
	var sb strings.Builder
	sb.WriteString("malformed checks")
	if e.Path != "" {
		sb.WriteString(" file ")
		sb.WriteString(e.Path)
	}
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}
	for _, field := range e.Fields {
		sb.WriteString(fmt.Sprintf("\n  %s: %s", field.Field, field.Message))
	}
	return sb.String()
}

func (e *MalformedChecksError) Unwrap() error {
	return e.Cause
}

// InvalidSelectorError is returned when an entry of the checks list is not a valid CSS selector
type InvalidSelectorError struct {
	Selector string
	Cause    error
}

func (e *InvalidSelectorError) Error() string {
	return fmt.Sprintf("invalid selector %q: %v", e.Selector, e.Cause)
}

func (e *InvalidSelectorError) Unwrap() error {
	return e.Cause
}
