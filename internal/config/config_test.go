package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// clearLLMEnv blanks every variable the llm package reads so the host
// environment cannot leak a credential into a test.
func clearLLMEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CODEMASTER_LLM_PROVIDER",
		"CODEMASTER_GEMINI_API_KEY", "CODEMASTER_OPENAI_API_KEY",
		"CODEMASTER_ANTHROPIC_API_KEY", "CODEMASTER_OPENROUTER_API_KEY",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_MissingCredentialIsFatal(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("CODEMASTER_DATA_DIR", t.TempDir())

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when no API key is configured")
	}
	if !strings.Contains(err.Error(), "GEMINI_API_KEY") {
		t.Errorf("error should name the missing variable, got: %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearLLMEnv(t)
	dir := t.TempDir()
	t.Setenv("CODEMASTER_DATA_DIR", dir)
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.LLM.Provider != "gemini" {
		t.Errorf("provider = %q, want gemini", cfg.LLM.Provider)
	}
	if cfg.Governor.DailyLimit != 200 {
		t.Errorf("daily limit = %d, want 200", cfg.Governor.DailyLimit)
	}
	if cfg.Governor.PerMinuteLimit != 10 {
		t.Errorf("per-minute limit = %d, want 10", cfg.Governor.PerMinuteLimit)
	}
	if cfg.Governor.Window != time.Minute {
		t.Errorf("window = %v, want 1m", cfg.Governor.Window)
	}
	if cfg.LLM.Timeout != 90*time.Second {
		t.Errorf("timeout = %v, want 90s", cfg.LLM.Timeout)
	}
	if cfg.AccountsPath != filepath.Join(dir, "users.json") {
		t.Errorf("accounts path = %q", cfg.AccountsPath)
	}
	if cfg.PlacementPolicy != "linear" || cfg.PenaltyPolicy != "from-original" || cfg.ProblemMode != "auto" {
		t.Errorf("unexpected policy defaults: %q %q %q", cfg.PlacementPolicy, cfg.PenaltyPolicy, cfg.ProblemMode)
	}
}

func TestLoad_ExplicitMockProvider(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("CODEMASTER_DATA_DIR", t.TempDir())
	t.Setenv("CODEMASTER_LLM_PROVIDER", "mock")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LLM.Provider != "mock" {
		t.Errorf("provider = %q, want mock", cfg.LLM.Provider)
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("CODEMASTER_DATA_DIR", t.TempDir())
	t.Setenv("CODEMASTER_LLM_PROVIDER", "mock")
	t.Setenv("CODEMASTER_DAILY_LIMIT", "50")
	t.Setenv("CODEMASTER_PER_MINUTE_LIMIT", "3")
	t.Setenv("CODEMASTER_LLM_TIMEOUT", "15s")
	t.Setenv("CODEMASTER_PLACEMENT_POLICY", "ladder")
	t.Setenv("CODEMASTER_PENALTY_POLICY", "compounding")
	t.Setenv("CODEMASTER_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Governor.DailyLimit != 50 || cfg.Governor.PerMinuteLimit != 3 {
		t.Errorf("limits = %d/%d, want 50/3", cfg.Governor.DailyLimit, cfg.Governor.PerMinuteLimit)
	}
	if cfg.LLM.Timeout != 15*time.Second {
		t.Errorf("timeout = %v, want 15s", cfg.LLM.Timeout)
	}
	if cfg.PlacementPolicy != "ladder" || cfg.PenaltyPolicy != "compounding" {
		t.Errorf("policies = %q/%q", cfg.PlacementPolicy, cfg.PenaltyPolicy)
	}
	if len(cfg.HTTP.AllowedOrigins) != 2 || cfg.HTTP.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("origins = %v", cfg.HTTP.AllowedOrigins)
	}
}

func TestValidate_RejectsUnknownValues(t *testing.T) {
	base := func() *Config {
		return &Config{
			DataDir:         "/tmp/x",
			Governor:        GovernorConfig{DailyLimit: 1, PerMinuteLimit: 1},
			Usage:           UsageConfig{Backend: "file"},
			ProblemMode:     "auto",
			PlacementPolicy: "linear",
			PenaltyPolicy:   "from-original",
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"backend", func(c *Config) { c.Usage.Backend = "etcd" }},
		{"mode", func(c *Config) { c.ProblemMode = "random" }},
		{"placement", func(c *Config) { c.PlacementPolicy = "curve" }},
		{"penalty", func(c *Config) { c.PenaltyPolicy = "none" }},
		{"daily", func(c *Config) { c.Governor.DailyLimit = 0 }},
		{"redis addr", func(c *Config) { c.Usage.Backend = "redis"; c.Usage.RedisAddr = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			c.LLM.Provider = "mock"
			tt.mutate(c)
			if err := c.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestValidateHTTP_RequiresSecret(t *testing.T) {
	c := &Config{HTTP: HTTPConfig{Addr: ":8080", SessionSecret: "short"}}
	if err := c.ValidateHTTP(); err == nil {
		t.Fatal("expected error for short session secret")
	}
	c.HTTP.SessionSecret = strings.Repeat("k", 32)
	if err := c.ValidateHTTP(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadLocal_NoCredentialNeeded(t *testing.T) {
	clearLLMEnv(t)
	dir := t.TempDir()
	t.Setenv("CODEMASTER_DATA_DIR", dir)

	cfg, err := LoadLocal()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DBPath != filepath.Join(dir, "codemaster.db") {
		t.Errorf("db path = %q", cfg.DBPath)
	}

	t.Setenv("CODEMASTER_PENALTY_POLICY", "none")
	if _, err := LoadLocal(); err == nil {
		t.Fatal("expected error for unknown penalty policy")
	}
}
