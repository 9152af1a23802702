// Package types provides type definitions for structured data used throughout the resume builder.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// StructuredResume is the resume record produced by the generative model.
// Order within every list is display order.
type StructuredResume struct {
	Summary                string         `json:"summary"`
	Education              []Education    `json:"education"`
	Experience             []Experience   `json:"experience"`
	Skills                 []string       `json:"skills"`
	Projects               []Project      `json:"projects"`
	ATSKeywords            []string       `json:"ats_keywords"`
	ATSScore               ATSScore       `json:"ats_score"`
	ImprovementSuggestions []string       `json:"improvement_suggestions"`
	AdditionalInformation  AdditionalInfo `json:"additional_information"`
}

// Education represents one education entry
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
	Details     string `json:"details,omitempty"`
}

// Experience represents one role with its achievement bullets
type Experience struct {
	Company      string   `json:"company"`
	Role         string   `json:"role"`
	Duration     string   `json:"duration"`
	Achievements []string `json:"achievements"`
}

// Project represents a project entry
type Project struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// PrettyJSON returns the indent-2 serialization used by the copy-JSON action.
func (r *StructuredResume) PrettyJSON() (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal resume: %w", err)
	}
	return string(data), nil
}

// ATSScore is the score exactly as returned by the model ("85").
// The string is kept for display; Value interprets it.
type ATSScore string

// Score bounds accepted when interpreting an ATSScore.
const (
	MinATSScore = 0
	MaxATSScore = 100
)

// Value parses the score as an integer in [MinATSScore, MaxATSScore].
func (s ATSScore) Value() (int, error) {
	trimmed := strings.TrimSpace(string(s))
	if trimmed == "" {
		return 0, fmt.Errorf("ats_score is empty")
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("ats_score %q is not an integer", string(s))
	}
	if n < MinATSScore || n > MaxATSScore {
		return 0, fmt.Errorf("ats_score %d out of range [%d, %d]", n, MinATSScore, MaxATSScore)
	}
	return n, nil
}

// ScoreBand is the colour band of the score badge.
type ScoreBand string

const (
	BandGreen ScoreBand = "green"
	BandAmber ScoreBand = "amber"
	BandRed   ScoreBand = "red"
)

// Inclusive lower bounds of the green and amber bands.
const (
	GreenThreshold = 90
	AmberThreshold = 80
)

// Band maps the score to its badge colour. A score that does not parse is red.
func (s ATSScore) Band() ScoreBand {
	n, err := s.Value()
	switch {
	case err != nil:
		return BandRed
	case n >= GreenThreshold:
		return BandGreen
	case n >= AmberThreshold:
		return BandAmber
	default:
		return BandRed
	}
}

// AdditionalInfo is the optional "additional information" list.
// It is either present with at least one entry, or absent; an empty or
// null JSON array decodes to absent.
type AdditionalInfo struct {
	items []string
}

// NewAdditionalInfo builds the variant from entries. No entries means absent.
func NewAdditionalInfo(items ...string) AdditionalInfo {
	if len(items) == 0 {
		return AdditionalInfo{}
	}
	copied := make([]string, len(items))
	copy(copied, items)
	return AdditionalInfo{items: copied}
}

// Present reports whether the section has content.
func (a AdditionalInfo) Present() bool {
	return len(a.items) > 0
}

// Items returns the entries in display order. Absent yields nil.
func (a AdditionalInfo) Items() []string {
	return a.items
}

// MarshalJSON always emits an array; absent is [].
func (a AdditionalInfo) MarshalJSON() ([]byte, error) {
	if !a.Present() {
		return []byte("[]"), nil
	}
	return json.Marshal(a.items)
}

// UnmarshalJSON accepts an array of strings or null.
func (a *AdditionalInfo) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*a = NewAdditionalInfo(items...)
	return nil
}
