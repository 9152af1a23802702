package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/ats-resume-builder/internal/observability"
	"github.com/jonathan/ats-resume-builder/internal/rendering"
	"github.com/jonathan/ats-resume-builder/internal/schemas"
	"github.com/jonathan/ats-resume-builder/internal/types"
	"github.com/spf13/cobra"
)

var exportPDFCmd = &cobra.Command{
	Use:   "export-pdf",
	Short: "Export a resume JSON file as a PDF",
	Long: `Lays out a StructuredResume under the contact header of a form JSON file and writes
<Name>_Resume.pdf with a "Name | Page X of N" footer on every page.`,
	RunE: runExportPDF,
}

var (
	exportResumeFile  string
	exportContactFile string
	exportOutDir      string
	exportVerbose     bool
)

func init() {
	exportPDFCmd.Flags().StringVarP(&exportResumeFile, "resume", "r", "", "Path to resume JSON file (required)")
	exportPDFCmd.Flags().StringVarP(&exportContactFile, "contact", "c", "", "Path to form or contact JSON file (required)")
	exportPDFCmd.Flags().StringVarP(&exportOutDir, "out-dir", "o", "", "Directory to write the PDF into")
	exportPDFCmd.Flags().BoolVarP(&exportVerbose, "verbose", "v", false, "Print the section outline of the PDF")

	_ = exportPDFCmd.MarkFlagRequired("resume")
	_ = exportPDFCmd.MarkFlagRequired("contact")

	rootCmd.AddCommand(exportPDFCmd)
}

func runExportPDF(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("out-dir") {
		cfg.OutDir = exportOutDir
	}
	if cfg.OutDir == "" {
		cfg.OutDir = "."
	}

	resume, err := readResume(exportResumeFile)
	if err != nil {
		return err
	}

	contact, err := readContact(exportContactFile)
	if err != nil {
		return err
	}

	doc, err := rendering.ExportDocument(resume, contact)
	if err != nil {
		return err
	}
	path, err := doc.WriteFile(cfg.OutDir)
	if err != nil {
		return err
	}

	if exportVerbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintDocument(doc, path)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "PDF written to: %s (%d page(s))\n", path, doc.Pages)
	return nil
}

// readResume loads a resume JSON file and checks it against the resume schema.
func readResume(path string) (*types.StructuredResume, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume file: %w", err)
	}
	if err := schemas.ValidateResume(string(data)); err != nil {
		return nil, fmt.Errorf("invalid resume file %s: %w", path, err)
	}

	var resume types.StructuredResume
	if err := json.Unmarshal(data, &resume); err != nil {
		return nil, fmt.Errorf("failed to unmarshal resume JSON: %w", err)
	}
	return &resume, nil
}

// readContact loads the header fields; a full form file works since the names match.
func readContact(path string) (types.ContactInfo, error) {
	var contact types.ContactInfo
	data, err := os.ReadFile(path)
	if err != nil {
		return contact, fmt.Errorf("failed to read contact file: %w", err)
	}
	if err := json.Unmarshal(data, &contact); err != nil {
		return contact, fmt.Errorf("failed to unmarshal contact JSON: %w", err)
	}
	if err := contact.Validate(); err != nil {
		return contact, fmt.Errorf("contact file is missing required fields: %s", strings.Join(types.MissingFields(err), ", "))
	}
	return contact, nil
}
