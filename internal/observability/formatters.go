// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/ats-resume-builder/internal/rendering"
	"github.com/jonathan/ats-resume-builder/internal/types"
	"github.com/jonathan/ats-resume-builder/internal/validation"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to max runes, ending in "..." when cut.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// writeList appends up to maxItemsToShow entries and a remainder line.
func writeList(sb *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", truncate(items[i], 50)))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
	sb.WriteString("\n")
}

// PrintInput outputs the contact fields of a submission.
func (p *Printer) PrintInput(input types.RawResumeInput) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", input.FullName))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", input.Email))
	sb.WriteString(fmt.Sprintf("Phone:    %s\n", input.Phone))
	sb.WriteString(fmt.Sprintf("LinkedIn: %s", input.LinkedIn))
	if input.OtherDetails == "" {
		sb.WriteString("\n\nNo other details provided")
	}

	p.printBox("RESUME INPUT", sb.String())
}

// PrintResume outputs a human-readable summary of a generated resume.
func (p *Printer) PrintResume(resume *types.StructuredResume) {
	if resume == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ATS Score: %s (%s)\n\n", resume.ATSScore, resume.ATSScore.Band()))
	sb.WriteString(truncate(resume.Summary, 200) + "\n\n")

	var roles []string
	for _, exp := range resume.Experience {
		roles = append(roles, fmt.Sprintf("%s, %s (%d bullets)", exp.Role, exp.Company, len(exp.Achievements)))
	}
	writeList(&sb, "Experience", roles)

	var degrees []string
	for _, edu := range resume.Education {
		degrees = append(degrees, fmt.Sprintf("%s - %s", edu.Degree, edu.Year))
	}
	writeList(&sb, "Education", degrees)

	var projects []string
	for _, proj := range resume.Projects {
		projects = append(projects, proj.Title)
	}
	writeList(&sb, "Projects", projects)
	writeList(&sb, "Additional Information", resume.AdditionalInformation.Items())

	sb.WriteString(fmt.Sprintf("Skills: %s\n", strings.Join(resume.Skills, ", ")))
	sb.WriteString(fmt.Sprintf("Keywords: %s", strings.Join(resume.ATSKeywords, ", ")))

	p.printBox("GENERATED RESUME", sb.String())

	if len(resume.ImprovementSuggestions) > 0 {
		var suggestions strings.Builder
		writeList(&suggestions, fmt.Sprintf("%d suggestions", len(resume.ImprovementSuggestions)), resume.ImprovementSuggestions)
		p.printBox("IMPROVEMENT SUGGESTIONS", strings.TrimSuffix(suggestions.String(), "\n\n"))
	}
}

// PrintDocument outputs the result of a PDF export.
func (p *Printer) PrintDocument(doc *rendering.Document, path string) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File:  %s\n", path))
	sb.WriteString(fmt.Sprintf("Pages: %d\n", doc.Pages))
	sb.WriteString(fmt.Sprintf("Size:  %d bytes\n\n", len(doc.Data)))
	for _, entry := range doc.Outline {
		sb.WriteString(fmt.Sprintf("p%-3d %s\n", entry.Page, entry.Title))
	}

	p.printBox("EXPORTED PDF", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintReport outputs what was read back from a PDF.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintReport(report *validation.Report) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Pages: %d\n", report.Pages))
	writeList(&sb, "Outline", report.Outline)
	p.printBox("PDF INSPECTION", strings.TrimSuffix(sb.String(), "\n"))

	for i, text := range report.Text {
		fmt.Fprintf(p.out, "\n--- page %d ---\n%s\n", i+1, strings.TrimSpace(text))
	}
}
