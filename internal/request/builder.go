// Package request turns the raw form input into the instruction sent to the generative AI service.
package request

import (
	"github.com/jonathan/ats-resume-builder/internal/llm"
	"github.com/jonathan/ats-resume-builder/internal/prompts"
	"github.com/jonathan/ats-resume-builder/internal/types"
)

const (
	promptFile       = "generation.json"
	promptKey        = "build-resume"
	outputExampleKey = "output-example"
)

// Payload is the request handed to the generative AI service.
type Payload struct {
	// Prompt is the full natural-language instruction, input fields included.
	Prompt string
	// Tier selects the model used for generation.
	Tier llm.ModelTier
	// JSONOutput requests a JSON-formatted response.
	JSONOutput bool
}

// Build embeds every input field verbatim into the generation prompt.
// It performs no I/O beyond reading the embedded template.
func Build(input types.RawResumeInput) Payload {
	template := prompts.MustGet(promptFile, promptKey)
	prompt := prompts.Format(template, map[string]string{
		"FullName":      input.FullName,
		"Email":         input.Email,
		"Phone":         input.Phone,
		"LinkedIn":      input.LinkedIn,
		"Education":     input.Education,
		"Experience":    input.Experience,
		"Skills":        input.Skills,
		"Objective":     input.Objective,
		"Projects":      input.Projects,
		"OtherDetails":  input.OtherDetails,
		"OutputExample": prompts.MustGet(promptFile, outputExampleKey),
	})

	return Payload{
		Prompt:     prompt,
		Tier:       llm.TierAdvanced,
		JSONOutput: true,
	}
}
