package grader

import (
	"github.com/go-faster/jx"
)

// Result maps selectors to their presence in a document. Keys keep the order
// in which they were first set.
type Result struct {
	keys   []string
	values map[string]bool
}

// NewResult returns an empty Result.
func NewResult() *Result {
	return &Result{values: make(map[string]bool)}
}

// Set records presence for selector. Setting an existing selector overwrites
// its value without changing its position.
func (r *Result) Set(selector string, present bool) {
	if _, ok := r.values[selector]; !ok {
		r.keys = append(r.keys, selector)
	}
	r.values[selector] = present
}

// Get returns the recorded presence for selector and whether it was recorded.
func (r *Result) Get(selector string) (present, ok bool) {
	present, ok = r.values[selector]
	return present, ok
}

// Keys returns the selectors in insertion order.
func (r *Result) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// Len returns the number of selectors recorded.
func (r *Result) Len() int {
	return len(r.keys)
}

// Present returns how many selectors matched at least one element.
func (r *Result) Present() int {
	n := 0
	for _, present := range r.values {
		if present {
			n++
		}
	}
	return n
}

// MarshalJSON encodes the result as a JSON object with keys in insertion order.
func (r *Result) MarshalJSON() ([]byte, error) {
	var e jx.Encoder
	e.ObjStart()
	for _, key := range r.keys {
		e.FieldStart(key)
		e.Bool(r.values[key])
	}
	e.ObjEnd()
	return e.Bytes(), nil
}
