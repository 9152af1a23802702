package generation

import "fmt"

// ConfigurationError is returned when the service credential is missing.
// No network call has been made when it is returned.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// ServiceError represents a failure of the generative AI call itself
type ServiceError struct {
	Message string
	Cause   error
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to generate resume from AI: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to generate resume from AI: %s", e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// ParseError represents a response that is not a valid resume document
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
