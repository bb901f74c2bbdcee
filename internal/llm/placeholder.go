package llm

import (
	"context"
	"encoding/json"
	"fmt"
)

// PlaceholderProvider answers every request with filler data shaped by the
// request schema. It runs the app end to end without network access.
type PlaceholderProvider struct{}

// NewPlaceholderProvider creates a PlaceholderProvider.
func NewPlaceholderProvider() *PlaceholderProvider {
	return &PlaceholderProvider{}
}

func (p *PlaceholderProvider) Generate(_ context.Context, req Request) (*Response, error) {
	var v any = "placeholder response"
	if req.Schema != nil {
		v = placeholderValue("value", req.Schema.Definition)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal placeholder: %w", err)
	}
	return &Response{Content: data, Model: "mock", StopReason: StopEnd}, nil
}

// ModelID returns "mock".
func (p *PlaceholderProvider) ModelID() string {
	return "mock"
}

func placeholderValue(name string, def map[string]any) any {
	if enum, ok := def["enum"].([]any); ok && len(enum) > 0 {
		return enum[0]
	}

	switch def["type"] {
	case "object":
		out := map[string]any{}
		props, _ := def["properties"].(map[string]any)
		for k, raw := range props {
			if prop, ok := raw.(map[string]any); ok {
				out[k] = placeholderValue(k, prop)
			}
		}
		return out
	case "array":
		items, _ := def["items"].(map[string]any)
		return []any{placeholderValue(name, items)}
	case "boolean":
		return true
	case "integer":
		if n, ok := numberValue(def["minimum"]); ok {
			return int(n)
		}
		return 1
	case "number":
		if n, ok := numberValue(def["minimum"]); ok {
			return n
		}
		return 1.0
	}
	return "placeholder " + name
}
