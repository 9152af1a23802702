package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/ats-resume-builder/internal/rendering"
	"github.com/jonathan/ats-resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contact() types.ContactInfo {
	return types.ContactInfo{
		FullName:    "Jane Doe",
		Email:       "jane@example.com",
		Phone:       "555-0100",
		LinkedInURL: "linkedin.com/in/janedoe",
	}
}

func resume(experiences int) *types.StructuredResume {
	r := &types.StructuredResume{
		Summary:  "Data analyst.",
		Skills:   []string{"SQL"},
		ATSScore: "85",
	}
	for i := 0; i < experiences; i++ {
		exp := types.Experience{Company: fmt.Sprintf("Company %d", i), Role: "Analyst", Duration: "2020"}
		for j := 0; j < 10; j++ {
			exp.Achievements = append(exp.Achievements, strings.Repeat("Improved the quarterly reporting process. ", 3))
		}
		r.Experience = append(r.Experience, exp)
	}
	return r
}

func export(t *testing.T, r *types.StructuredResume) *rendering.Document {
	t.Helper()
	doc, err := rendering.ExportDocument(r, contact())
	require.NoError(t, err)
	return doc
}

func TestCountPDFPages_SinglePage(t *testing.T) {
	doc := export(t, resume(1))

	count, err := CountPDFPages(doc.Data)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, doc.Pages, count)
}

func TestCountPDFPages_MatchesLayout(t *testing.T) {
	doc := export(t, resume(8))
	require.GreaterOrEqual(t, doc.Pages, 2)

	count, err := CountPDFPages(doc.Data)
	require.NoError(t, err)
	assert.Equal(t, doc.Pages, count)
}

func TestExtractPageText_Footers(t *testing.T) {
	doc := export(t, resume(8))

	pages, err := ExtractPageText(doc.Data)
	require.NoError(t, err)
	require.Len(t, pages, doc.Pages)

	assert.Contains(t, pages[0], "Jane Doe")
	assert.NoError(t, VerifyFooters(pages, "Jane Doe"))
}

func TestVerifyFooters(t *testing.T) {
	pages := []string{
		"body\nJane Doe | Page 1 of 3",
		"body without footer",
		"body\nJane Doe | Page 3 of 4",
	}

	err := VerifyFooters(pages, "Jane Doe")
	var footerErr *FooterError
	require.ErrorAs(t, err, &footerErr)
	assert.Equal(t, []int{2, 3}, footerErr.Pages)
	assert.Equal(t, "footer missing or incorrect on pages [2 3]", err.Error())
}

func TestInspect(t *testing.T) {
	r := resume(1)
	r.AdditionalInformation = types.NewAdditionalInfo("Volunteer tutor")
	doc := export(t, r)

	report, err := Inspect(doc.Data, false)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Pages)
	assert.Empty(t, report.Text)
	assert.Equal(t, []string{
		rendering.SectionSummary,
		rendering.SectionExperience,
		rendering.SectionEducation,
		rendering.SectionProjects,
		rendering.SectionAdditional,
		rendering.SectionSkills,
	}, report.Outline)

	withText, err := Inspect(doc.Data, true)
	require.NoError(t, err)
	require.Len(t, withText.Text, 1)
	assert.Contains(t, withText.Text[0], "Volunteer tutor")
}

func TestCountPDFPages_NotAPDF(t *testing.T) {
	_, err := CountPDFPages([]byte("definitely not a pdf"))

	var validationErr *Error
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, err.Error(), "failed to parse PDF")
}

func TestReadFile(t *testing.T) {
	doc := export(t, resume(1))
	path, err := doc.WriteFile(t.TempDir())
	require.NoError(t, err)

	data, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, doc.Data, data)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.pdf"))
	var readErr *FileReadError
	require.ErrorAs(t, err, &readErr)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
