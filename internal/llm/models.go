package llm

// modelAliases maps the short model names accepted in configuration to
// vendor model IDs, per vendor. Names not listed are sent as given.
var modelAliases = map[string]map[string]string{
	"anthropic": {
		"claude-sonnet": "claude-sonnet-4-20250514",
		"claude-haiku":  "claude-haiku-4-5-20251001",
	},
	"openai": {
		"gpt-4o":      "gpt-4o",
		"gpt-4o-mini": "gpt-4o-mini",
	},
	"gemini": {
		"gemini-flash":      "gemini-2.5-flash",
		"gemini-flash-lite": "gemini-2.5-flash-lite",
		"gemini-pro":        "gemini-2.5-pro",
	},
}

func resolveModel(vendor, name string) string {
	if id, ok := modelAliases[vendor][name]; ok {
		return id
	}
	return name
}
