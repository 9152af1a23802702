package main

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/ats-resume-builder/internal/observability"
	"github.com/jonathan/ats-resume-builder/internal/validation"
	"github.com/spf13/cobra"
)

var inspectPDFCmd = &cobra.Command{
	Use:   "inspect-pdf",
	Short: "Report the pages, outline and text of an exported PDF",
	RunE:  runInspectPDF,
}

var (
	inspectInput string
	inspectText  bool
	inspectName  string
	inspectJSON  bool
)

func init() {
	inspectPDFCmd.Flags().StringVarP(&inspectInput, "in", "i", "", "Path to PDF file (required)")
	inspectPDFCmd.Flags().BoolVar(&inspectText, "text", false, "Include the text of every page")
	inspectPDFCmd.Flags().StringVar(&inspectName, "name", "", "Verify the page footers carry this name")
	inspectPDFCmd.Flags().BoolVar(&inspectJSON, "json", false, "Print the report as JSON")

	_ = inspectPDFCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(inspectPDFCmd)
}

func runInspectPDF(cmd *cobra.Command, _ []string) error {
	data, err := validation.ReadFile(inspectInput)
	if err != nil {
		return err
	}

	// Footer verification needs the page text even when it is not printed.
	report, err := validation.Inspect(data, inspectText || inspectName != "")
	if err != nil {
		return err
	}

	var footerErr error
	if inspectName != "" {
		footerErr = validation.VerifyFooters(report.Text, inspectName)
		if !inspectText {
			report.Text = nil
		}
	}

	if inspectJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(report); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
	} else {
		observability.NewPrinter(cmd.OutOrStdout()).PrintReport(report)
	}

	if footerErr != nil {
		return footerErr
	}
	if inspectName != "" {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Footers verified on %d page(s)\n", report.Pages)
	}
	return nil
}
