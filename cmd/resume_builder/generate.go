package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/ats-resume-builder/internal/config"
	"github.com/jonathan/ats-resume-builder/internal/generation"
	"github.com/jonathan/ats-resume-builder/internal/llm"
	"github.com/jonathan/ats-resume-builder/internal/observability"
	"github.com/jonathan/ats-resume-builder/internal/rendering"
	"github.com/jonathan/ats-resume-builder/internal/session"
	"github.com/jonathan/ats-resume-builder/internal/types"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a resume from a form JSON file",
	Long: `Sends the ten form fields to Gemini once and writes the StructuredResume as indented JSON.
With --pdf-dir the resume is also exported as <Name>_Resume.pdf.`,
	RunE: runGenerate,
}

var (
	generateInput   string
	generateSample  bool
	generateOut     string
	generatePDFDir  string
	generateAPIKey  string
	generateModel   string
	generateVerbose bool
)

// newGenerator builds the generator used by generate and serve.
var newGenerator = func(llmConfig *llm.Config, apiKey string) session.Generator {
	gen := generation.New(llmConfig)
	gen.Credential = generation.StaticCredential(apiKey)
	return gen
}

func init() {
	generateCmd.Flags().StringVarP(&generateInput, "in", "i", "", "Path to form JSON file")
	generateCmd.Flags().BoolVar(&generateSample, "sample", false, "Use the sample form values instead of --in")
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "Path to output resume JSON (stdout when empty)")
	generateCmd.Flags().StringVar(&generatePDFDir, "pdf-dir", "", "Directory to export the PDF into")
	generateCmd.Flags().StringVar(&generateAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY)")
	generateCmd.Flags().StringVar(&generateModel, "model", "", "Gemini model used for generation")
	generateCmd.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	// Step 1: Load config file if provided
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Step 2: Apply CLI overrides
	if cmd.Flags().Changed("in") {
		cfg.Input = generateInput
	}
	if cmd.Flags().Changed("pdf-dir") {
		cfg.OutDir = generatePDFDir
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = generateAPIKey
	}
	if cmd.Flags().Changed("model") {
		cfg.Model = generateModel
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = generateVerbose
	}
	cfg = cfg.MergeWithDefaults(config.Config{})

	// Step 3: Resolve the submission
	var input types.RawResumeInput
	switch {
	case generateSample && cfg.Input != "":
		return fmt.Errorf("--in and --sample are mutually exclusive; provide only one")
	case generateSample:
		input = types.SampleInput()
	case cfg.Input != "":
		input, err = readInput(cfg.Input)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("either --in or --sample must be provided (via flag or config)")
	}

	if err := input.Validate(); err != nil {
		return fmt.Errorf("missing required fields: %s", strings.Join(types.MissingFields(err), ", "))
	}

	printer := observability.NewPrinter(cmd.ErrOrStderr())
	if cfg.Verbose {
		printer.PrintInput(input)
	}

	// Step 4: Generate
	sess := session.New()
	outcome, err := sess.Run(context.Background(), newGenerator(cfg.LLMConfig(), cfg.APIKey), input)
	if err != nil {
		return err
	}
	if outcome.State != session.Success {
		return fmt.Errorf("generation failed: %w", outcome.Err)
	}
	if cfg.Verbose {
		printer.PrintResume(outcome.Resume)
	}

	// Step 5: Write outputs
	text, err := outcome.Resume.PrettyJSON()
	if err != nil {
		return err
	}
	if generateOut == "" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), text)
	} else {
		if err := writeFile(generateOut, []byte(text+"\n")); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Resume written to: %s\n", generateOut)
	}

	if cfg.OutDir == "" {
		return nil
	}
	resume, contact, err := sess.ExportSource()
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
	if cfg.Verbose {
		printer.PrintDocument(doc, path)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "PDF written to: %s (%d page(s))\n", path, doc.Pages)
	return nil
}

// readInput loads a form JSON file keyed by the form field names.
func readInput(path string) (types.RawResumeInput, error) {
	var input types.RawResumeInput
	data, err := os.ReadFile(path)
	if err != nil {
		return input, fmt.Errorf("failed to read input file: %w", err)
	}
	if err := json.Unmarshal(data, &input); err != nil {
		return input, fmt.Errorf("failed to unmarshal input JSON: %w", err)
	}
	return input, nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
