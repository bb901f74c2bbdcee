package llm

import (
	"fmt"
	"os"
	"time"
)

// Config selects and configures the oracle backend.
type Config struct {
	// Provider is "gemini", "anthropic", "openai", "openrouter" or "mock".
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single oracle operation including retries.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

func DefaultConfig() Config {
	return Config{
		Provider:   "gemini",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 2,
			InitialWait: time.Second,
			MaxWait:     5 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 90 * time.Second,
	}
}

// vendors lists the real backends in discovery order. key and model point
// into c so one table drives env loading, discovery and validation.
func (c *Config) vendors() []vendorFields {
	return []vendorFields{
		{"gemini", "GEMINI", &c.Gemini.APIKey, &c.Gemini.Model},
		{"openai", "OPENAI", &c.OpenAI.APIKey, &c.OpenAI.Model},
		{"anthropic", "ANTHROPIC", &c.Anthropic.APIKey, &c.Anthropic.Model},
		{"openrouter", "OPENROUTER", &c.OpenRouter.APIKey, &c.OpenRouter.Model},
	}
}

type vendorFields struct {
	name      string
	envPrefix string
	key       *string
	model     *string
}

func (v vendorFields) keyVar() string {
	return "CODEMASTER_" + v.envPrefix + "_API_KEY"
}

// ConfigFromEnv applies CODEMASTER_* variables over the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	setFromEnv(&cfg.Provider, "CODEMASTER_LLM_PROVIDER")
	for _, v := range cfg.vendors() {
		setFromEnv(v.key, v.keyVar())
		setFromEnv(v.model, "CODEMASTER_"+v.envPrefix+"_MODEL")
	}
	setFromEnv(&cfg.OpenAI.BaseURL, "CODEMASTER_OPENAI_BASE_URL")
	setFromEnv(&cfg.OpenRouter.BaseURL, "CODEMASTER_OPENROUTER_BASE_URL")
	return cfg
}

// DiscoverConfig falls back to the vendors' own variables (GEMINI_API_KEY,
// OPENAI_API_KEY, ANTHROPIC_API_KEY, OPENROUTER_API_KEY, in that order) and
// selects the first provider whose key is set.
func DiscoverConfig() (Config, bool) {
	cfg := ConfigFromEnv()
	for _, v := range cfg.vendors() {
		if k := os.Getenv(v.envPrefix + "_API_KEY"); k != "" {
			cfg.Provider = v.name
			*v.key = k
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks that the selected provider has its API key.
func (c Config) Validate() error {
	if c.Provider == "mock" {
		return nil
	}
	for _, v := range c.vendors() {
		if v.name != c.Provider {
			continue
		}
		if *v.key == "" {
			return fmt.Errorf("%s (or %s_API_KEY) is required for the %s provider", v.keyVar(), v.envPrefix, v.name)
		}
		return nil
	}
	return fmt.Errorf("unknown LLM provider: %q", c.Provider)
}

// String describes the configuration without revealing credentials.
func (c Config) String() string {
	return fmt.Sprintf("provider=%s timeout=%s retries=%d", c.Provider, c.Timeout, c.Retry.MaxAttempts)
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
