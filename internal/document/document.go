// Package document loads HTML into a queryable tree and answers selector lookups against it.
package document

import (
	"bytes"
	"io"
	"os"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// Document is a parsed HTML document supporting CSS selector queries.
// Queries never modify the underlying tree.
type Document struct {
	doc *goquery.Document
}

// Load reads the file at path and parses it as HTML.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is supplied by the user on purpose
	if err != nil {
		return nil, &LoadError{Path: path, Cause: err}
	}
	return Parse(bytes.NewReader(data))
}

// Parse builds a Document from r. The character encoding is sniffed from a BOM
// or <meta charset> declaration and the content is decoded to UTF-8 before parsing.
// Malformed markup is recovered by the HTML5 parsing algorithm, so only read
// failures produce an error.
func Parse(r io.Reader) (*Document, error) {
	utf8Reader, err := charset.NewReader(r, "")
	if err != nil {
		return nil, &ParseError{Message: "failed to detect character encoding", Cause: err}
	}

	root, err := html.Parse(utf8Reader)
	if err != nil {
		return nil, &ParseError{Message: "failed to parse HTML", Cause: err}
	}

	return &Document{doc: goquery.NewDocumentFromNode(root)}, nil
}

// Count returns the number of elements matching selector. A selector that does
// not compile matches nothing.
func (d *Document) Count(selector string) int {
	return d.doc.Find(selector).Length()
}

// Has reports whether at least one element matches selector.
func (d *Document) Has(selector string) bool {
	return d.Count(selector) > 0
}
