package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/ats-resume-builder/internal/generation"
	"github.com/jonathan/ats-resume-builder/internal/rendering"
	"github.com/jonathan/ats-resume-builder/internal/server/ratelimit"
	"github.com/jonathan/ats-resume-builder/internal/session"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Fields: []string{"fullName", "email"}}
	assert.Equal(t, "validation error: missing required fields: fullName, email", err.Error())

	err = &ErrValidation{Message: "invalid body"}
	assert.Equal(t, "validation error: invalid body", err.Error())
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", &ErrValidation{Fields: []string{"email"}}, http.StatusBadRequest},
		{"in progress", session.ErrInProgress, http.StatusConflict},
		{"no resume", session.ErrNoResume, http.StatusNotFound},
		{"rate limited", &ratelimit.LimitError{}, http.StatusTooManyRequests},
		{"configuration", &generation.ConfigurationError{Message: "missing key"}, http.StatusServiceUnavailable},
		{"service", &generation.ServiceError{Message: "model call failed"}, http.StatusBadGateway},
		{"parse", &generation.ParseError{Message: "bad json"}, http.StatusBadGateway},
		{"wrapped parse", fmt.Errorf("generate: %w", &generation.ParseError{Message: "bad json"}), http.StatusBadGateway},
		{"render", &rendering.RenderError{Message: "failed to write PDF"}, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
