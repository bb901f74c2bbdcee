package grading

import "github.com/abhisek/codemaster/internal/llm"

// GradeSchema is the structured output of one grading call.
var GradeSchema = &llm.Schema{
	Name:        "code-evaluation",
	Description: "Whether submitted code solves the problem, with feedback",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"is_correct": map[string]any{
				"type":        "boolean",
				"description": "True only if the code correctly solves the problem",
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": "Feedback for the learner in Korean",
			},
		},
		"required":             []any{"is_correct", "feedback"},
		"additionalProperties": false,
	},
}

// HintSchema is the structured output of one hint call.
var HintSchema = &llm.Schema{
	Name:        "problem-hint",
	Description: "A short hint that does not reveal the answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"hint": map[string]any{
				"type":        "string",
				"description": "A concise hint in Korean",
			},
		},
		"required":             []any{"hint"},
		"additionalProperties": false,
	},
}
