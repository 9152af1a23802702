package rendering

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/ats-resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func janeDoe() types.ContactInfo {
	return types.ContactInfo{
		FullName:    "Jane Doe",
		Email:       "jane@example.com",
		Phone:       "555-0100",
		LinkedInURL: "linkedin.com/in/janedoe",
	}
}

func shortResume() *types.StructuredResume {
	return &types.StructuredResume{
		Summary: "Data analyst with five years of experience turning raw data into decisions.",
		Education: []types.Education{
			{Degree: "B.S. Statistics", Institution: "State University", Year: "2018", Details: "GPA 3.8"},
			{Degree: "Certificate", Institution: "Online Academy", Year: "2020"},
		},
		Experience: []types.Experience{
			{
				Company:      "Acme",
				Role:         "Data Analyst",
				Duration:     "2019 - Present",
				Achievements: []string{"Built dashboards used by 40 teams.", "Cut report latency by 60%."},
			},
		},
		Skills:                 []string{"SQL", "Python", "Tableau"},
		Projects:               []types.Project{{Title: "Churn Model", Description: "Predicted churn with gradient boosting."}},
		ATSKeywords:            []string{"SQL"},
		ATSScore:               "85",
		ImprovementSuggestions: []string{"Add certifications."},
	}
}

func longResume() *types.StructuredResume {
	resume := shortResume()
	for i := 0; i < 6; i++ {
		exp := types.Experience{
			Company:  fmt.Sprintf("Company %d", i),
			Role:     "Senior Data Analyst",
			Duration: "2015 - 2019",
		}
		for j := 0; j < 12; j++ {
			exp.Achievements = append(exp.Achievements, strings.Repeat("Delivered measurable improvements to reporting pipelines. ", 3))
		}
		resume.Experience = append(resume.Experience, exp)
	}
	return resume
}

func uncompressed(t *testing.T, resume *types.StructuredResume) *Document {
	t.Helper()
	doc, err := Export(resume, janeDoe(), Options{Uncompressed: true})
	require.NoError(t, err)
	return doc
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name     string
		fullName string
		expected string
	}{
		{name: "two words", fullName: "Jane Doe", expected: "Jane_Doe_Resume.pdf"},
		{name: "single word", fullName: "Cher", expected: "Cher_Resume.pdf"},
		{name: "whitespace run collapses", fullName: "Mary  Ann\tLee", expected: "Mary_Ann_Lee_Resume.pdf"},
		{name: "three words", fullName: "Riya Patel Shah", expected: "Riya_Patel_Shah_Resume.pdf"},
		{name: "no-break space", fullName: "Jane\u00a0Doe", expected: "Jane_Doe_Resume.pdf"},
		{name: "ideographic and thin spaces", fullName: "Jane\u3000Q\u2009Doe", expected: "Jane_Q_Doe_Resume.pdf"},
		{name: "mixed separators collapse", fullName: "Jane \u00a0\u2003Doe", expected: "Jane_Doe_Resume.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Filename(tt.fullName))
		})
	}
}

func TestExportDocument_SinglePage(t *testing.T) {
	doc, err := ExportDocument(shortResume(), janeDoe())
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(doc.Data, []byte("%PDF-")))
	assert.Equal(t, "Jane_Doe_Resume.pdf", doc.Filename)
	assert.Equal(t, 1, doc.Pages)
	assert.Equal(t, []string{"Jane Doe | Page 1 of 1"}, doc.Footers)
}

func TestExport_SectionOrder(t *testing.T) {
	doc := uncompressed(t, shortResume())

	var titles []string
	for _, entry := range doc.Outline {
		titles = append(titles, entry.Title)
		assert.Equal(t, 1, entry.Page)
	}
	assert.Equal(t, []string{
		SectionSummary, SectionExperience, SectionEducation, SectionProjects, SectionSkills,
	}, titles)
}

func TestExport_AdditionalInformationOnlyWhenPresent(t *testing.T) {
	absent := uncompressed(t, shortResume())
	assert.False(t, absent.HasSection(SectionAdditional))
	assert.NotContains(t, string(absent.Data), "ADDITIONAL INFORMATION")

	resume := shortResume()
	resume.AdditionalInformation = types.NewAdditionalInfo("Fluent in Spanish")
	present := uncompressed(t, resume)
	assert.True(t, present.HasSection(SectionAdditional))
	assert.Contains(t, string(present.Data), "(ADDITIONAL INFORMATION) Tj")

	idx := func(doc *Document, title string) int {
		for i, entry := range doc.Outline {
			if entry.Title == title {
				return i
			}
		}
		return -1
	}
	assert.Equal(t, idx(present, SectionProjects)+1, idx(present, SectionAdditional))
	assert.Equal(t, idx(present, SectionAdditional)+1, idx(present, SectionSkills))
}

func TestExport_HeaderAndBody(t *testing.T) {
	doc := uncompressed(t, shortResume())
	content := string(doc.Data)

	assert.Contains(t, content, "(Jane Doe) Tj")
	assert.Contains(t, content, "(PROFESSIONAL SUMMARY) Tj")
	assert.Contains(t, content, "(Data Analyst) Tj")
	assert.Contains(t, content, "(Acme | 2019 - Present) Tj")
	assert.Contains(t, content, "(B.S. Statistics - 2018) Tj")
	assert.Contains(t, content, "(GPA 3.8) Tj")
	assert.Contains(t, content, "(Churn Model) Tj")
	// Bullet and separator glyphs are written in the core font code page.
	assert.Contains(t, content, "(jane@example.com \x95 555-0100 \x95 linkedin.com/in/janedoe) Tj")
	assert.Contains(t, content, "(SQL  \x95  Python  \x95  Tableau) Tj")
	assert.Contains(t, content, "(\x95  Built dashboards used by 40 teams.) Tj")
}

func TestExport_Pagination(t *testing.T) {
	doc := uncompressed(t, longResume())

	require.GreaterOrEqual(t, doc.Pages, 2)
	require.Len(t, doc.Footers, doc.Pages)

	for i, footer := range doc.Footers {
		expected := fmt.Sprintf("Jane Doe | Page %d of %d", i+1, doc.Pages)
		assert.Equal(t, expected, footer)
		assert.Contains(t, string(doc.Data), "("+expected+") Tj")
	}
	assert.NotContains(t, string(doc.Data), fmt.Sprintf("Page %d of %d", doc.Pages+1, doc.Pages+1))

	last := doc.Outline[len(doc.Outline)-1]
	assert.Equal(t, SectionSkills, last.Title)
	assert.Equal(t, doc.Pages, last.Page)
	assert.Equal(t, 1, doc.Outline[0].Page)
}

func TestExport_TallParagraphBreaksAcrossPages(t *testing.T) {
	resume := shortResume()
	resume.Summary = strings.Repeat("An unusually long summary sentence that keeps going. ", 400)

	doc := uncompressed(t, resume)
	assert.GreaterOrEqual(t, doc.Pages, 2)
	assert.Len(t, doc.Footers, doc.Pages)
}

func TestExport_NonLatinText(t *testing.T) {
	resume := shortResume()
	resume.Summary = "Résumé — naïve café 数据"
	resume.Skills = []string{"Ñandú", "日本語"}

	var doc *Document
	assert.NotPanics(t, func() {
		var err error
		doc, err = ExportDocument(resume, janeDoe())
		require.NoError(t, err)
	})

	// Latin-1 accents and the em dash are in the code page; CJK is not.
	assert.Equal(t, []rune("数据日本語"), doc.Unsupported)
}

func TestExport_LatinTextFullySupported(t *testing.T) {
	resume := shortResume()
	resume.Summary = "Résumé naïve café Ñandú"

	doc, err := ExportDocument(resume, types.ContactInfo{FullName: "José Núñez", Email: "jose@x.com"})
	require.NoError(t, err)
	assert.Empty(t, doc.Unsupported)
}

func TestExport_EmptyLists(t *testing.T) {
	resume := &types.StructuredResume{Skills: []string{"SQL"}, ATSScore: "85"}

	doc, err := ExportDocument(resume, janeDoe())
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Pages)
}

func TestExport_NilResume(t *testing.T) {
	doc, err := ExportDocument(nil, janeDoe())
	assert.Nil(t, doc)

	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Contains(t, err.Error(), "no resume to export")
}

func TestDocument_WriteFile(t *testing.T) {
	doc, err := ExportDocument(shortResume(), janeDoe())
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "out")
	path, err := doc.WriteFile(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Jane_Doe_Resume.pdf"), path)

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, doc.Data, written)
}

func TestFooterText(t *testing.T) {
	assert.Equal(t, "Jane Doe | Page 2 of 3", FooterText("Jane Doe", 2, 3))
}

func TestRenderError(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := &RenderError{Message: "failed to write PDF", Cause: cause}

	assert.Equal(t, "render error: failed to write PDF: disk full", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "render error: boom", (&RenderError{Message: "boom"}).Error())
}
