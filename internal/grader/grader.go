// Package grader evaluates a list of CSS selectors against an HTML document
// and runs the local and remote check pipelines.
package grader

import (
	"context"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/jonathan/checkhtml/internal/checks"
	"github.com/jonathan/checkhtml/internal/document"
	"github.com/jonathan/checkhtml/internal/fetch"
	"github.com/jonathan/checkhtml/internal/logger"
)

// Querier answers presence queries for CSS selectors.
type Querier interface {
	Has(selector string) bool
}

// Evaluate records, for every selector of list in order, whether it matches
// at least one element of doc. Every selector is evaluated; callers pass a
// normalized list to get sorted, unique keys.
func Evaluate(doc Querier, list checks.List) *Result {
	result := NewResult()
	for _, selector := range list {
		result.Set(selector, doc.Has(selector))
	}
	return result
}

// CheckFile runs the local pipeline: load the HTML file, load the checks file
// and evaluate the sorted, de-duplicated checks against the document.
func CheckFile(ctx context.Context, htmlPath, checksPath string) (*Result, error) {
	doc, err := document.Load(htmlPath)
	if err != nil {
		return nil, err
	}
	logger.Debug(ctx, "loaded HTML document", zap.String("path", htmlPath))

	list, err := checks.Load(checksPath)
	if err != nil {
		return nil, err
	}
	logger.Debug(ctx, "loaded checks", zap.String("path", checksPath), zap.Int("count", len(list)))

	result := Evaluate(doc, list.Normalize())
	logger.Debug(ctx, "evaluated checks",
		zap.Int("selectors", result.Len()),
		zap.Int("present", result.Present()),
	)
	return result, nil
}

// Source retrieves the raw HTML served at a URL.
type Source interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Remote runs the remote pipeline: the fetched page is written to a temporary
// file, checked like a local file and removed again.
type Remote struct {
	Source Source
	// TempDir holds the temporary copy of the page; empty means os.TempDir().
	TempDir string
}

// Check fetches url and evaluates the checks file against the response body.
// The temporary file is removed whether or not evaluation succeeds.
func (r *Remote) Check(ctx context.Context, url, checksPath string) (*Result, error) {
	ctx = logger.WithFields(ctx, zap.String("url", url))

	body, err := r.Source.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	logger.Debug(ctx, "fetched page", zap.Int("bytes", len(body)))

	tmp, err := fetch.ToTempFile(r.TempDir, body)
	if err != nil {
		return nil, errors.Wrap(err, "store fetched page")
	}
	defer func() {
		if err := tmp.Remove(); err != nil {
			logger.Warn(ctx, "could not remove temporary file", zap.String("path", tmp.Path), zap.Error(err))
		}
	}()

	return CheckFile(ctx, tmp.Path, checksPath)
}
