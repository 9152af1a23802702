package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jonathan/ats-resume-builder/internal/generation"
	"github.com/jonathan/ats-resume-builder/internal/rendering"
	"github.com/jonathan/ats-resume-builder/internal/server/ratelimit"
	"github.com/jonathan/ats-resume-builder/internal/session"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Fields  []string
	Message string
}

func (e *ErrValidation) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("validation error: missing required fields: %s", strings.Join(e.Fields, ", "))
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		configErr     *generation.ConfigurationError
		serviceErr    *generation.ServiceError
		parseErr      *generation.ParseError
		renderErr     *rendering.RenderError
		limitErr      *ratelimit.LimitError
	)

	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &limitErr):
		return http.StatusTooManyRequests
	case errors.Is(err, session.ErrInProgress):
		return http.StatusConflict
	case errors.Is(err, session.ErrNoResume):
		return http.StatusNotFound
	case errors.As(err, &configErr):
		return http.StatusServiceUnavailable
	case errors.As(err, &serviceErr), errors.As(err, &parseErr):
		return http.StatusBadGateway
	case errors.As(err, &renderErr):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
