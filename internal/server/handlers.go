package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"mime"
	"net/http"

	"github.com/jonathan/ats-resume-builder/internal/rendering"
	"github.com/jonathan/ats-resume-builder/internal/session"
	"github.com/jonathan/ats-resume-builder/internal/types"
	"github.com/jonathan/ats-resume-builder/internal/view"
)

const inProgressNotice = "A resume is already being generated. Please wait for it to finish."

// handleIndex renders the form and the current outcome
func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	s.renderPage(w, http.StatusOK, "")
}

// handleGenerateForm submits the form and redirects back to the page, which
// shows the loading state until the generation resolves.
func (s *Server) handleGenerateForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderPage(w, http.StatusBadRequest, "The form could not be read.")
		return
	}

	input := inputFromForm(r)
	if err := validateInput(&input); err != nil {
		s.session.SetDraft(input)
		s.renderPage(w, http.StatusBadRequest, err.Error())
		return
	}

	// The generation outlives this request; the page polls for the outcome.
	_, _, err := s.session.Start(context.WithoutCancel(r.Context()), s.generator, input, s.generationGate(w, r))
	if errors.Is(err, session.ErrInProgress) {
		s.renderPage(w, http.StatusConflict, inProgressNotice)
		return
	}
	if err != nil {
		s.renderPage(w, HTTPStatus(err), err.Error())
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleResumeJSON returns the copy-JSON payload of the resume on display
func (s *Server) handleResumeJSON(w http.ResponseWriter, _ *http.Request) {
	resume := view.Page{Outcome: s.session.Outcome()}.Resume()
	if resume == nil {
		s.errorResponse(w, http.StatusNotFound, session.ErrNoResume.Error())
		return
	}

	text, err := resume.PrettyJSON()
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}

// handleResumePDF exports the resume on display under the contact details it was generated from
func (s *Server) handleResumePDF(w http.ResponseWriter, _ *http.Request) {
	resume, contact, err := s.session.ExportSource()
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	doc, err := rendering.ExportDocument(resume, contact)
	if err != nil {
		log.Printf("[export] %v", err)
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	log.Printf("[export] %s: %d page(s), %d bytes", doc.Filename, doc.Pages, len(doc.Data))

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": doc.Filename}))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(doc.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Data)
}

// renderPage writes the full page with the current draft and outcome
func (s *Server) renderPage(w http.ResponseWriter, status int, notice string) {
	page := view.Page{
		Form:    s.session.Draft(),
		Outcome: s.session.Outcome(),
		Notice:  notice,
	}

	var buf bytes.Buffer
	if err := view.Render(&buf, page); err != nil {
		log.Printf("Error rendering page: %v", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// inputFromForm reads the ten form fields by their names
func inputFromForm(r *http.Request) types.RawResumeInput {
	return types.RawResumeInput{
		FullName:     r.PostFormValue("fullName"),
		Email:        r.PostFormValue("email"),
		Phone:        r.PostFormValue("phone"),
		LinkedIn:     r.PostFormValue("linkedin"),
		Education:    r.PostFormValue("education"),
		Experience:   r.PostFormValue("experience"),
		Skills:       r.PostFormValue("skills"),
		Objective:    r.PostFormValue("objective"),
		Projects:     r.PostFormValue("projects"),
		OtherDetails: r.PostFormValue("otherDetails"),
	}
}

// validateInput rejects a submission with an empty required field
func validateInput(input *types.RawResumeInput) error {
	if err := input.Validate(); err != nil {
		return &ErrValidation{Fields: types.MissingFields(err), Message: err.Error()}
	}
	return nil
}
