package llm

import "testing"

func clearVendorEnv(t *testing.T) {
	t.Helper()
	for _, prefix := range []string{"GEMINI", "OPENAI", "ANTHROPIC", "OPENROUTER"} {
		t.Setenv(prefix+"_API_KEY", "")
		t.Setenv("CODEMASTER_"+prefix+"_API_KEY", "")
		t.Setenv("CODEMASTER_"+prefix+"_MODEL", "")
	}
	t.Setenv("CODEMASTER_LLM_PROVIDER", "")
}

func TestConfigFromEnv(t *testing.T) {
	clearVendorEnv(t)
	t.Setenv("CODEMASTER_LLM_PROVIDER", "anthropic")
	t.Setenv("CODEMASTER_ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("CODEMASTER_ANTHROPIC_MODEL", "claude-sonnet")

	cfg := ConfigFromEnv()
	if cfg.Provider != "anthropic" || cfg.Anthropic.APIKey != "sk-ant" || cfg.Anthropic.Model != "claude-sonnet" {
		t.Fatalf("unexpected config: %+v", cfg.Anthropic)
	}
	if cfg.Gemini.Model != "gemini-flash" {
		t.Errorf("gemini model default lost: %q", cfg.Gemini.Model)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDiscoverConfig(t *testing.T) {
	clearVendorEnv(t)
	if _, ok := DiscoverConfig(); ok {
		t.Fatal("expected no provider without keys")
	}

	t.Setenv("OPENROUTER_API_KEY", "sk-or")
	t.Setenv("OPENAI_API_KEY", "sk-oai")
	cfg, ok := DiscoverConfig()
	if !ok {
		t.Fatal("expected a provider")
	}
	if cfg.Provider != "openai" || cfg.OpenAI.APIKey != "sk-oai" {
		t.Fatalf("provider = %q key = %q, want openai first", cfg.Provider, cfg.OpenAI.APIKey)
	}
}
