package main

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/jonathan/ats-resume-builder/internal/rendering"
	"github.com/jonathan/ats-resume-builder/internal/types"
	"github.com/jonathan/ats-resume-builder/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSamplePDF(t *testing.T) string {
	t.Helper()
	doc, err := rendering.ExportDocument(sampleResume(), types.SampleInput().Contact())
	require.NoError(t, err)
	path, err := doc.WriteFile(t.TempDir())
	require.NoError(t, err)
	return path
}

func TestInspectPDFCommand_JSON(t *testing.T) {
	path := writeSamplePDF(t)

	stdout, stderr, err := executeCommand(t, "inspect-pdf", "--in", path, "--json", "--name", "Riya Patel")

	require.NoError(t, err)
	assert.Contains(t, stderr, "Footers verified on 1 page(s)")

	var report validation.Report
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, 1, report.Pages)
	assert.Empty(t, report.Text, "text is only printed with --text")
	assert.Equal(t, []string{
		rendering.SectionSummary,
		rendering.SectionExperience,
		rendering.SectionEducation,
		rendering.SectionProjects,
		rendering.SectionAdditional,
		rendering.SectionSkills,
	}, report.Outline)
}

func TestInspectPDFCommand_Text(t *testing.T) {
	path := writeSamplePDF(t)

	stdout, _, err := executeCommand(t, "inspect-pdf", "--in", path, "--text")

	require.NoError(t, err)
	assert.Contains(t, stdout, "PDF INSPECTION")
	assert.Contains(t, stdout, "--- page 1 ---")
	assert.Contains(t, stdout, "Riya Patel | Page 1 of 1")
}

func TestInspectPDFCommand_WrongName(t *testing.T) {
	path := writeSamplePDF(t)

	_, _, err := executeCommand(t, "inspect-pdf", "--in", path, "--name", "Someone Else")

	var footerErr *validation.FooterError
	require.ErrorAs(t, err, &footerErr)
	assert.Equal(t, []int{1}, footerErr.Pages)
}

func TestInspectPDFCommand_MissingFile(t *testing.T) {
	_, _, err := executeCommand(t, "inspect-pdf", "--in", filepath.Join(t.TempDir(), "missing.pdf"))

	var readErr *validation.FileReadError
	assert.ErrorAs(t, err, &readErr)
}
