// Package view renders the single-page form and resume display.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/jonathan/ats-resume-builder/internal/session"
	"github.com/jonathan/ats-resume-builder/internal/types"
)

//go:embed templates/*.html
var templateFiles embed.FS

var pageTemplate = template.Must(
	template.New("page.html").Funcs(template.FuncMap{
		"badge": BadgeClass,
	}).ParseFS(templateFiles, "templates/*.html"),
)

// RefreshSeconds is how often a loading page reloads itself.
const RefreshSeconds = 2

// Page is everything the page template needs.
type Page struct {
	// Form holds the values shown in the form fields.
	Form    types.RawResumeInput
	Outcome session.Outcome
	// Notice is a one-line message shown above the form, such as a rejected submission.
	Notice string
}

// Loading reports whether the submit control must be disabled.
func (p Page) Loading() bool {
	return p.Outcome.State == session.Loading
}

// Failed reports whether the error panel is shown.
func (p Page) Failed() bool {
	return p.Outcome.State == session.Failure
}

// Resume returns the resume on display, or nil.
func (p Page) Resume() *types.StructuredResume {
	if p.Outcome.State != session.Success {
		return nil
	}
	return p.Outcome.Resume
}

// ResumeJSON is the copy-JSON payload: the resume pretty-printed with a two-space indent.
func (p Page) ResumeJSON() string {
	resume := p.Resume()
	if resume == nil {
		return ""
	}
	text, err := resume.PrettyJSON()
	if err != nil {
		return ""
	}
	return text
}

// Refresh is the meta refresh interval, zero when the page is not loading.
func (p Page) Refresh() int {
	if p.Loading() {
		return RefreshSeconds
	}
	return 0
}

// BadgeClass returns the CSS class of the score badge.
func BadgeClass(score types.ATSScore) string {
	return "badge-" + string(score.Band())
}

// Render writes the full HTML page.
func Render(w io.Writer, page Page) error {
	if err := pageTemplate.Execute(w, page); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}
