package checks

import (
	"encoding/json"
	"os"
	"slices"

	"github.com/andybalholm/cascadia"
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/jonathan/checkhtml/internal/schemas"
	checksschema "github.com/jonathan/checkhtml/schemas"
)

// List is an ordered sequence of CSS selectors.
type List []string

// Load reads and parses the checks file at path.
func Load(path string) (List, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is supplied by the user on purpose
	if err != nil {
		return nil, errors.Wrapf(err, "read checks file %s", path)
	}

	list, err := Parse(data)
	if err != nil {
		var malformed *MalformedChecksError
		if errors.As(err, &malformed) {
			malformed.Path = path
		}
		return nil, err
	}
	return list, nil
}

// Parse validates data against the checks schema, decodes it into a List and
// verifies that every entry compiles as a CSS selector. The empty selector is
// accepted and matches nothing.
func Parse(data []byte) (List, error) {
	if err := wellFormed(data); err != nil {
		return nil, &MalformedChecksError{Message: "not valid JSON", Cause: err}
	}

	if err := schemas.ValidateJSONBytes(checksschema.Checks, data); err != nil {
		return nil, toMalformed(err)
	}

	list, err := decode(data)
	if err != nil {
		return nil, &MalformedChecksError{Message: "failed to decode selector list", Cause: err}
	}

	for _, selector := range list {
		if selector == "" {
			continue
		}
		if _, err := cascadia.Compile(selector); err != nil {
			return nil, &InvalidSelectorError{Selector: selector, Cause: err}
		}
	}

	return list, nil
}

// Normalize returns a sorted copy of l with duplicate selectors removed.
func (l List) Normalize() List {
	sorted := slices.Clone(l)
	slices.Sort(sorted)
	return slices.Compact(sorted)
}

// wellFormed reports a syntax error for anything but a single JSON value,
// including trailing bytes after the array that schema validation and jx ignore.
func wellFormed(data []byte) error {
	var raw json.RawMessage
	return json.Unmarshal(data, &raw)
}

func decode(data []byte) (List, error) {
	list := List{}
	d := jx.DecodeBytes(data)
	err := d.Arr(func(d *jx.Decoder) error {
		selector, err := d.Str()
		if err != nil {
			return err
		}
		list = append(list, selector)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

func toMalformed(err error) error {
	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		return &MalformedChecksError{
			Message: "expected a JSON array of selector strings",
			Fields:  validationErr.Errors,
		}
	}

	var docErr *schemas.DocumentLoadError
	if errors.As(err, &docErr) {
		return &MalformedChecksError{Message: "not valid JSON", Cause: docErr.Cause}
	}

	return errors.Wrap(err, "validate checks")
}
