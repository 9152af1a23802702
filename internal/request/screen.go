package request

import (
	"log"
	"regexp"

	"github.com/jonathan/ats-resume-builder/internal/types"
)

// Finding names a form field whose text looks like an instruction to the model.
type Finding struct {
	Field   string
	Matches []string
}

// instructionPatterns match obvious attempts to steer the model from inside a field.
var instructionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ignore\s+(all\s+)?(previous|prior|above)\s+instructions?`),
	regexp.MustCompile(`(?i)disregard\s+(all\s+)?(previous|prior|above)`),
	regexp.MustCompile(`(?i)forget\s+(all\s+)?(previous|prior|everything)`),
	regexp.MustCompile(`(?i)new\s+instructions?:`),
	regexp.MustCompile(`(?i)system\s+prompt`),
	regexp.MustCompile(`(?i)(set|give|make)\s+(the\s+)?ats_score\s+(to\s+)?100`),
}

// Screen reports fields containing instruction-like text. Fields are never
// modified; the prompt embeds them verbatim either way.
func Screen(input types.RawResumeInput) []Finding {
	fields := []struct {
		name  string
		value string
	}{
		{"fullName", input.FullName},
		{"email", input.Email},
		{"phone", input.Phone},
		{"linkedin", input.LinkedIn},
		{"education", input.Education},
		{"experience", input.Experience},
		{"skills", input.Skills},
		{"objective", input.Objective},
		{"projects", input.Projects},
		{"otherDetails", input.OtherDetails},
	}

	var findings []Finding
	for _, field := range fields {
		var matches []string
		for _, pattern := range instructionPatterns {
			if m := pattern.FindString(field.value); m != "" {
				matches = append(matches, m)
			}
		}
		if len(matches) > 0 {
			findings = append(findings, Finding{Field: field.name, Matches: matches})
		}
	}
	return findings
}

// LogFindings logs a warning per finding. It does not block generation.
func LogFindings(findings []Finding) {
	for _, f := range findings {
		log.Printf("[SECURITY WARNING] instruction-like text in %s: %q", f.Field, f.Matches)
	}
}
