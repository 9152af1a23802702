package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/ats-resume-builder/internal/llm"
	"github.com/jonathan/ats-resume-builder/internal/session"
	"github.com/jonathan/ats-resume-builder/internal/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// executeCommand runs the CLI in-process and resets every flag afterwards,
// since the commands keep their flag values in package variables.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

type stubGenerator struct {
	resume *types.StructuredResume
	err    error
	inputs []types.RawResumeInput
}

func (g *stubGenerator) Generate(_ context.Context, input types.RawResumeInput) (*types.StructuredResume, error) {
	g.inputs = append(g.inputs, input)
	return g.resume, g.err
}

// useGenerator swaps the production generator for gen and records the config it was built with.
func useGenerator(t *testing.T, gen session.Generator) *[]string {
	t.Helper()
	var built []string
	original := newGenerator
	newGenerator = func(cfg *llm.Config, apiKey string) session.Generator {
		built = append(built, cfg.GetModel(llm.TierAdvanced)+"|"+apiKey)
		return gen
	}
	t.Cleanup(func() { newGenerator = original })
	return &built
}

func sampleResume() *types.StructuredResume {
	return &types.StructuredResume{
		Summary:                "Front-end developer building fast, accessible interfaces.",
		Education:              []types.Education{{Degree: "B.Tech Computer Engineering", Institution: "Gujarat Technological University", Year: "2024"}},
		Experience:             []types.Experience{{Company: "Sanskritix Global", Role: "Web Developer Intern", Duration: "Jun 2023 - Sep 2023", Achievements: []string{"Cut page load time by 35%."}}},
		Skills:                 []string{"React", "Tailwind CSS"},
		Projects:               []types.Project{{Title: "Portfolio Website", Description: "Responsive personal site."}},
		ATSKeywords:            []string{"React"},
		ATSScore:               "92",
		ImprovementSuggestions: []string{"Add a link to the portfolio."},
		AdditionalInformation:  types.NewAdditionalInfo("Certified AWS Cloud Practitioner (2023)"),
	}
}

func writeJSON(t *testing.T, dir, name string, v any) string {
	t.Helper()
	data, err := json.MarshalIndent(v, "", "  ")
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}
