package problemgen

import (
	"errors"
	"fmt"
	"strings"
)

// Language is a supported learning language.
type Language string

const (
	Python Language = "Python"
	C      Language = "C"
	Java   Language = "Java"
)

// Languages lists every supported language in display order.
var Languages = []Language{Python, C, Java}

// ParseLanguage resolves a language name case-insensitively.
func ParseLanguage(s string) (Language, error) {
	for _, l := range Languages {
		if strings.EqualFold(s, string(l)) {
			return l, nil
		}
	}
	return "", fmt.Errorf("unsupported language %q", s)
}

// Source records where a problem came from.
type Source string

const (
	SourceBank Source = "bank"
	SourceAI   Source = "ai"
)

// Problem is a programming exercise ready for display and grading.
type Problem struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	FunctionStub  string `json:"function_stub"`
	ExampleInput  string `json:"example_input"`
	ExampleOutput string `json:"example_output"`

	// Points is the full award for a first-try correct answer. Always > 0.
	Points int `json:"points"`

	Language Language `json:"language,omitempty"`
	Level    int      `json:"level,omitempty"`
	Source   Source   `json:"source,omitempty"`

	// RelativeDifficulty is the model's 1-5 rating within the level. Only
	// set on generated problems.
	RelativeDifficulty int `json:"-"`
}

// GenerateInput holds the context needed to generate a problem.
type GenerateInput struct {
	Language Language
	Level    int
}

// ErrLevelComplete is returned when every problem for a language and level
// has been solved.
var ErrLevelComplete = errors.New("all problems at this level are solved")
