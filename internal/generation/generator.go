// Package generation runs one resume generation: build the request, call the AI service, parse the answer.
package generation

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/jonathan/ats-resume-builder/internal/llm"
	"github.com/jonathan/ats-resume-builder/internal/request"
	"github.com/jonathan/ats-resume-builder/internal/schemas"
	"github.com/jonathan/ats-resume-builder/internal/types"
)

// Environment variables consulted for the service credential, in order.
const (
	APIKeyEnv         = "GEMINI_API_KEY"
	FallbackAPIKeyEnv = "API_KEY"
)

// CredentialSource returns the service credential, or "" when none is configured.
type CredentialSource func() string

// EnvCredential reads the credential from the process environment on every call.
func EnvCredential() string {
	if key := os.Getenv(APIKeyEnv); key != "" {
		return key
	}
	return os.Getenv(FallbackAPIKeyEnv)
}

// StaticCredential returns a source that prefers key and falls back to the environment.
func StaticCredential(key string) CredentialSource {
	return func() string {
		if key != "" {
			return key
		}
		return EnvCredential()
	}
}

// Generator turns a RawResumeInput into a StructuredResume.
// It performs exactly one service call per Generate and never retries.
type Generator struct {
	Config     *llm.Config
	Credential CredentialSource
	NewClient  llm.Factory
}

// New returns a Generator using the Gemini client and the environment credential.
func New(config *llm.Config) *Generator {
	if config == nil {
		config = llm.DefaultConfig()
	}
	return &Generator{
		Config:     config,
		Credential: EnvCredential,
		NewClient:  llm.NewClient,
	}
}

// Generate produces a resume for input. Errors are *ConfigurationError,
// *ServiceError or *ParseError.
func (g *Generator) Generate(ctx context.Context, input types.RawResumeInput) (*types.StructuredResume, error) {
	apiKey := ""
	if g.Credential != nil {
		apiKey = g.Credential()
	}
	if apiKey == "" {
		return nil, &ConfigurationError{Message: APIKeyEnv + " environment variable not set"}
	}

	request.LogFindings(request.Screen(input))
	payload := request.Build(input)

	client, err := g.NewClient(ctx, g.Config, apiKey)
	if err != nil {
		return nil, &ServiceError{Message: "failed to create LLM client", Cause: err}
	}
	defer func() { _ = client.Close() }()

	log.Printf("[generate] requesting resume from %s (%d prompt bytes)", client.GetModel(payload.Tier), len(payload.Prompt))

	responseText, err := send(ctx, client, payload)
	if err != nil {
		return nil, &ServiceError{Message: "model call failed", Cause: err}
	}

	return ParseResume(responseText)
}

// send makes the single service call in the response mode the payload asks for.
func send(ctx context.Context, client llm.Client, payload request.Payload) (string, error) {
	if payload.JSONOutput {
		return client.GenerateJSON(ctx, payload.Prompt, payload.Tier)
	}
	return client.GenerateContent(ctx, payload.Prompt, payload.Tier)
}

// ParseResume converts response text into a StructuredResume.
// Surrounding code fences are tolerated; anything not matching the schema is a *ParseError.
func ParseResume(responseText string) (*types.StructuredResume, error) {
	jsonText := llm.CleanJSONBlock(responseText)

	if !json.Valid([]byte(jsonText)) {
		return nil, &ParseError{Message: "response is not valid JSON"}
	}

	if err := schemas.ValidateResume(jsonText); err != nil {
		return nil, &ParseError{Message: "response does not match the resume schema", Cause: err}
	}

	var resume types.StructuredResume
	if err := json.Unmarshal([]byte(jsonText), &resume); err != nil {
		return nil, &ParseError{Message: "failed to decode resume", Cause: err}
	}

	score, err := resume.ATSScore.Value()
	if err != nil {
		return nil, &ParseError{Message: "invalid ats_score", Cause: err}
	}
	if score < 70 {
		log.Printf("[generate] ats_score %d is below the requested 70-100 range", score)
	}

	return &resume, nil
}
