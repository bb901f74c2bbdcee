package problemgen

import "github.com/abhisek/codemaster/internal/llm"

// ProblemSchema defines the JSON schema for LLM problem generation responses.
var ProblemSchema = &llm.Schema{
	Name:        "programming-problem",
	Description: "A single function-sized programming exercise",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id": map[string]any{
				"type":        "string",
				"description": "A short identifier for the problem, e.g. AI_PY_L1_SUM_DIGITS",
			},
			"title": map[string]any{
				"type":        "string",
				"description": "A short, descriptive title in Korean",
			},
			"description": map[string]any{
				"type":        "string",
				"description": "A clear problem description in Korean",
			},
			"function_stub": map[string]any{
				"type":        "string",
				"description": "The function signature the learner implements",
			},
			"example_input": map[string]any{
				"type":        "string",
				"description": "A simple, clear example input",
			},
			"example_output": map[string]any{
				"type":        "string",
				"description": "The output for the example input",
			},
			"relative_difficulty": map[string]any{
				"type":        "integer",
				"minimum":     1,
				"maximum":     5,
				"description": "1 (very easy for this level) to 5 (very hard for this level)",
			},
		},
		"required":             []any{"id", "title", "description", "function_stub", "example_input", "example_output", "relative_difficulty"},
		"additionalProperties": false,
	},
}
