package llm

import (
	"encoding/json"
	"testing"
)

func TestPlaceholderProvider_MatchesSchema(t *testing.T) {
	schema := &Schema{
		Name: "code-evaluation",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"is_correct": map[string]any{"type": "boolean"},
				"feedback":   map[string]any{"type": "string"},
				"level":      map[string]any{"type": "integer", "minimum": 1, "maximum": 5},
				"language":   map[string]any{"type": "string", "enum": []any{"Python", "C"}},
				"tags":       map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			},
			"required":             []any{"is_correct", "feedback", "level", "language", "tags"},
			"additionalProperties": false,
		},
	}

	resp, err := NewPlaceholderProvider().Generate(t.Context(), Request{Schema: schema})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := structuredContent(schema, resp.Content); err != nil {
		t.Fatalf("placeholder does not satisfy its schema: %v\n%s", err, resp.Content)
	}

	var out map[string]any
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		t.Fatal(err)
	}
	if out["language"] != "Python" {
		t.Errorf("language = %v, want first enum value", out["language"])
	}
}
