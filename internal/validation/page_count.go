package validation

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/ats-resume-builder/internal/rendering"
	"github.com/ledongthuc/pdf"
)

// Report is what can be read back from a PDF.
type Report struct {
	Pages int      `json:"pages"`
	Text  []string `json:"text,omitempty"`
	// Outline holds the top-level bookmark titles in order.
	Outline []string `json:"outline"`
}

// ReadFile loads a PDF from disk.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileReadError{Message: fmt.Sprintf("failed to read %s", path), Cause: err}
	}
	return data, nil
}

func open(data []byte) (*pdf.Reader, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &Error{Message: "failed to parse PDF", Cause: err}
	}
	return reader, nil
}

// CountPDFPages returns the number of pages in a PDF document
func CountPDFPages(data []byte) (int, error) {
	reader, err := open(data)
	if err != nil {
		return 0, err
	}
	return reader.NumPage(), nil
}

// ExtractPageText returns the plain text of every page, in page order.
func ExtractPageText(data []byte) ([]string, error) {
	reader, err := open(data)
	if err != nil {
		return nil, err
	}
	return pageText(reader)
}

func pageText(reader *pdf.Reader) ([]string, error) {
	numPages := reader.NumPage()
	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, &Error{Message: fmt.Sprintf("failed to extract text from page %d", i), Cause: err}
		}
		pages = append(pages, text)
	}
	return pages, nil
}

// Inspect reads the page count and outline, and the page text when withText is set.
func Inspect(data []byte, withText bool) (*Report, error) {
	reader, err := open(data)
	if err != nil {
		return nil, err
	}

	report := &Report{Pages: reader.NumPage()}
	for _, entry := range reader.Outline().Child {
		report.Outline = append(report.Outline, entry.Title)
	}

	if withText {
		report.Text, err = pageText(reader)
		if err != nil {
			return nil, err
		}
	}
	return report, nil
}

// VerifyFooters checks that page i of N carries the "Name | Page i of N" footer.
func VerifyFooters(pages []string, fullName string) error {
	var bad []int
	for i, text := range pages {
		if !strings.Contains(text, rendering.FooterText(fullName, i+1, len(pages))) {
			bad = append(bad, i+1)
		}
	}
	if len(bad) > 0 {
		return &FooterError{Pages: bad}
	}
	return nil
}
