// Package schemas embeds the JSON Schemas for the files checkhtml reads.
package schemas

import _ "embed"

// Checks is the JSON Schema a checks file must satisfy.
//
//go:embed checks.schema.json
var Checks string
