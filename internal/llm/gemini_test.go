package llm

import (
	"testing"
)

func TestGeminiModelAliases(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.5-flash"},
		{"gemini-flash-lite", "gemini-2.5-flash-lite"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-2.5-flash-preview-05-20", "gemini-2.5-flash-preview-05-20"},
	}
	for _, tt := range tests {
		got := resolveModel("gemini", tt.input)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":      map[string]any{"type": "string"},
			"is_correct": map[string]any{"type": "boolean"},
			"language":   map[string]any{"type": "string", "enum": []any{"Python", "C", "Java"}},
			"relative_difficulty": map[string]any{
				"type":    "integer",
				"minimum": 1,
				"maximum": 5,
			},
			"tags": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []string{"title", "is_correct"},
	}

	schema := geminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 5 {
		t.Fatalf("expected 5 properties, got %d", len(schema.Properties))
	}
	if schema.Properties["is_correct"].Type != "BOOLEAN" {
		t.Fatalf("expected BOOLEAN for is_correct, got %s", schema.Properties["is_correct"].Type)
	}
	if len(schema.Properties["language"].Enum) != 3 {
		t.Fatalf("expected 3 enum values, got %d", len(schema.Properties["language"].Enum))
	}
	rd := schema.Properties["relative_difficulty"]
	if rd.Type != "INTEGER" {
		t.Fatalf("expected INTEGER for relative_difficulty, got %s", rd.Type)
	}
	if rd.Minimum == nil || *rd.Minimum != 1 {
		t.Fatalf("expected minimum 1, got %v", rd.Minimum)
	}
	if rd.Maximum == nil || *rd.Maximum != 5 {
		t.Fatalf("expected maximum 5, got %v", rd.Maximum)
	}
	if schema.Properties["tags"].Items.Type != "STRING" {
		t.Fatalf("expected STRING for tags items, got %s", schema.Properties["tags"].Items.Type)
	}
	if len(schema.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %d", len(schema.Required))
	}
}
