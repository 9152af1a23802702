package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/jonathan/ats-resume-builder/internal/session"
	"github.com/jonathan/ats-resume-builder/internal/types"
)

// handleGenerate runs one generation and responds with its outcome
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	input, ok := s.decodeInput(w, r)
	if !ok {
		return
	}

	outcome, err := s.session.Run(r.Context(), s.generator, input, s.generationGate(w, r))
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	status := http.StatusOK
	if outcome.State == session.Failure {
		status = HTTPStatus(outcome.Err)
	}
	s.jsonResponse(w, status, outcome)
}

// handleGenerateStream runs one generation and reports it as Server-Sent Events
func (s *Server) handleGenerateStream(w http.ResponseWriter, r *http.Request) {
	input, ok := s.decodeInput(w, r)
	if !ok {
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	snap, done, err := s.session.Start(r.Context(), s.generator, input, s.generationGate(w, r))
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	generationID := snap.ID.String()
	if err := sse.WriteEvent("state", map[string]any{
		"generation_id": generationID,
		"state":         session.Loading,
	}); err != nil {
		log.Printf("[stream] client went away: %v", err)
	}

	outcome := <-done
	if outcome.State == session.Success {
		sse.WriteComplete(outcome)
		return
	}
	sse.WriteError(generationID, outcome.Message)
}

// handleOutcome returns the current outcome
func (s *Server) handleOutcome(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.session.Outcome())
}

// decodeInput reads and validates a JSON RawResumeInput, writing the error response itself.
func (s *Server) decodeInput(w http.ResponseWriter, r *http.Request) (types.RawResumeInput, bool) {
	var input types.RawResumeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return input, false
	}

	if err := validateInput(&input); err != nil {
		var validationErr *ErrValidation
		if errors.As(err, &validationErr) {
			s.jsonResponse(w, http.StatusBadRequest, map[string]any{
				"error":  err.Error(),
				"fields": validationErr.Fields,
			})
			return input, false
		}
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return input, false
	}
	return input, true
}
