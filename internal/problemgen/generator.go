package problemgen

import (
	"context"
	"fmt"
)

// Generator produces one problem per call.
type Generator interface {
	Generate(ctx context.Context, input GenerateInput) (*Problem, error)
}

// Config tunes the LLMGenerator.
type Config struct {
	// Validators run in order on every generated problem; the first
	// rejection is returned as the error.
	Validators []Validator

	MaxTokens   int
	Temperature float64
}

func DefaultConfig() Config {
	return Config{
		Validators:  []Validator{&StructuralValidator{}, &StubValidator{}},
		MaxTokens:   1024,
		Temperature: 0.8,
	}
}

// Validator rejects generated problems that cannot be shown to a learner.
type Validator interface {
	Name() string
	Validate(p *Problem, input GenerateInput) *ValidationError
}

type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("generated problem rejected by %s: %s", e.Validator, e.Message)
}
