package problemgen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/codemaster/internal/llm"
)

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// problemOutput is the raw LLM response before validation.
type problemOutput struct {
	ID                 string `json:"id"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	FunctionStub       string `json:"function_stub"`
	ExampleInput       string `json:"example_input"`
	ExampleOutput      string `json:"example_output"`
	RelativeDifficulty int    `json:"relative_difficulty"`
}

// Generate produces a single problem for the given language and level.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) (*Problem, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeProblemGen)

	req := llm.SingleTurn(systemPrompt, buildUserMessage(input))
	req.Schema = ProblemSchema
	req.MaxTokens = g.config.MaxTokens
	req.Temperature = g.config.Temperature

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw problemOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	idHint := raw.ID
	if idHint == "" {
		idHint = raw.Title
	}

	p := &Problem{
		ID:                 newProblemID(input.Language, input.Level, idHint),
		Title:              raw.Title,
		Description:        raw.Description,
		FunctionStub:       raw.FunctionStub,
		ExampleInput:       raw.ExampleInput,
		ExampleOutput:      raw.ExampleOutput,
		Points:             Points(input.Level, raw.RelativeDifficulty),
		Language:           input.Language,
		Level:              input.Level,
		Source:             SourceAI,
		RelativeDifficulty: raw.RelativeDifficulty,
	}

	// Run validators in order.
	for _, v := range g.config.Validators {
		if verr := v.Validate(p, input); verr != nil {
			return nil, verr
		}
	}

	return p, nil
}
