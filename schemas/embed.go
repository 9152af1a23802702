// Package schemas holds the JSON Schema documents shipped with the binary.
package schemas

import _ "embed"

// StructuredResume is the JSON Schema of the generated resume record.
//
//go:embed structured_resume.schema.json
var StructuredResume string
