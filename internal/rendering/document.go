package rendering

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// whitespaceRun covers Unicode separators such as NBSP, which \s alone misses.
var whitespaceRun = regexp.MustCompile(`[\s\p{Z}]+`)

// Document is an exported resume ready to be downloaded or written to disk.
type Document struct {
	Filename string
	Data     []byte
	Pages    int
	// Footers holds the footer text stamped on each page, in page order.
	Footers []string
	Outline []OutlineEntry
	// Unsupported holds characters the built-in font cannot show; they print as '.'.
	Unsupported []rune
}

// OutlineEntry is a section heading and the page it starts on.
type OutlineEntry struct {
	Title string `json:"title"`
	Page  int    `json:"page"`
}

// Filename returns "<name with whitespace runs as underscores>_Resume.pdf".
func Filename(fullName string) string {
	return whitespaceRun.ReplaceAllString(fullName, "_") + "_Resume.pdf"
}

// FooterText returns the footer stamped on page of total.
func FooterText(fullName string, page, total int) string {
	return fmt.Sprintf("%s | Page %d of %d", fullName, page, total)
}

// HasSection reports whether a section with title was laid out.
func (d *Document) HasSection(title string) bool {
	for _, entry := range d.Outline {
		if entry.Title == title {
			return true
		}
	}
	return false
}

// WriteFile writes the document into dir under its Filename and returns the path.
func (d *Document) WriteFile(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, filepath.Base(d.Filename))
	if err := os.WriteFile(path, d.Data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
