// Package rendering lays out a StructuredResume as a paginated PDF document.
package rendering

import "fmt"

// RenderError represents a failure of the PDF backend while laying out or writing a document
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
