package problemgen

import (
	"strings"
	"unicode/utf8"
)

// StructuralValidator checks that required fields are present and within
// length limits.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(p *Problem, _ GenerateInput) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: msg}
	}

	switch {
	case strings.TrimSpace(p.Title) == "":
		return fail("title is empty")
	case utf8.RuneCountInString(p.Title) > 100:
		return fail("title exceeds 100 characters")
	case strings.TrimSpace(p.Description) == "":
		return fail("description is empty")
	case utf8.RuneCountInString(p.Description) > 3000:
		return fail("description exceeds 3000 characters")
	case strings.TrimSpace(p.FunctionStub) == "":
		return fail("function_stub is empty")
	case strings.TrimSpace(p.ExampleOutput) == "":
		return fail("example_output is empty")
	case p.RelativeDifficulty < 1 || p.RelativeDifficulty > 5:
		return fail("relative_difficulty must be between 1 and 5")
	case p.Points <= 0:
		return fail("points must be positive")
	}
	return nil
}

// StubValidator checks that the function stub has the shape the editor
// template expects for the language.
type StubValidator struct{}

func (v *StubValidator) Name() string { return "stub" }

func (v *StubValidator) Validate(p *Problem, input GenerateInput) *ValidationError {
	stub := strings.TrimSpace(p.FunctionStub)
	if !strings.Contains(stub, "(") || !strings.HasSuffix(strings.TrimRight(stub, ":;{ "), ")") {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "function_stub must be a call signature ending in a parameter list",
		}
	}

	name := strings.TrimSpace(stub[:strings.Index(stub, "(")])
	words := strings.Fields(name)
	switch input.Language {
	case C:
		if len(words) < 2 {
			return &ValidationError{Validator: v.Name(), Message: "C function_stub needs a return type"}
		}
	case Java:
		if len(words) < 3 || words[0] != "public" {
			return &ValidationError{Validator: v.Name(), Message: "Java function_stub must be a public method with a return type"}
		}
	}
	return nil
}
