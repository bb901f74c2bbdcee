// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/codemaster/internal/llm"
)

// Config holds all application configuration.
type Config struct {
	// DataDir holds the accounts, usage, bank and event files unless a
	// per-file override is set.
	DataDir string

	AccountsPath string
	UsagePath    string
	BankPath     string
	DBPath       string
	LogPath      string

	Governor GovernorConfig
	Usage    UsageConfig
	HTTP     HTTPConfig
	LLM      llm.Config

	// ProblemMode selects where problems come from: "auto", "bank" or "ai".
	ProblemMode string

	// PlacementPolicy names the threshold table used to level a new
	// account: "linear" or "ladder".
	PlacementPolicy string

	// PenaltyPolicy names the wrong-answer deduction rule:
	// "from-original" or "compounding".
	PenaltyPolicy string
}

// GovernorConfig holds the oracle call budget.
type GovernorConfig struct {
	DailyLimit     int
	PerMinuteLimit int
	Window         time.Duration
}

// UsageConfig selects where the usage record lives.
type UsageConfig struct {
	// Backend is "file" or "redis".
	Backend string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisKey      string
}

// HTTPConfig configures the serve command.
type HTTPConfig struct {
	Addr           string
	SessionSecret  string
	AllowedOrigins []string
	SecureCookies  bool
}

// Load reads configuration from environment variables. Callers that want
// .env support load it before calling Load.
func Load() (*Config, error) {
	cfg, err := read()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadLocal is Load for commands that only touch local files. The oracle
// credential is not required.
func LoadLocal() (*Config, error) {
	cfg, err := read()
	if err != nil {
		return nil, err
	}
	if err := cfg.validateLocal(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func read() (*Config, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, err
	}

	llmCfg := llm.ConfigFromEnv()
	if os.Getenv("CODEMASTER_LLM_PROVIDER") == "" && llmCfg.Validate() != nil {
		if discovered, ok := llm.DiscoverConfig(); ok {
			llmCfg = discovered
		}
	}
	if d := getEnvDuration("CODEMASTER_LLM_TIMEOUT", 0); d > 0 {
		llmCfg.Timeout = d
	}

	cfg := &Config{
		DataDir:      dataDir,
		AccountsPath: getEnv("CODEMASTER_ACCOUNTS_FILE", filepath.Join(dataDir, "users.json")),
		UsagePath:    getEnv("CODEMASTER_USAGE_FILE", filepath.Join(dataDir, "api_usage.json")),
		BankPath:     getEnv("CODEMASTER_BANK_FILE", filepath.Join(dataDir, "problems.json")),
		DBPath:       getEnv("CODEMASTER_DB", filepath.Join(dataDir, "codemaster.db")),
		LogPath:      getEnv("CODEMASTER_LOG_FILE", filepath.Join(dataDir, "codemaster.log")),
		Governor: GovernorConfig{
			DailyLimit:     getEnvInt("CODEMASTER_DAILY_LIMIT", 200),
			PerMinuteLimit: getEnvInt("CODEMASTER_PER_MINUTE_LIMIT", 10),
			Window:         time.Minute,
		},
		Usage: UsageConfig{
			Backend:       getEnv("CODEMASTER_USAGE_BACKEND", "file"),
			RedisAddr:     getEnv("CODEMASTER_REDIS_ADDR", "localhost:6379"),
			RedisPassword: getEnv("CODEMASTER_REDIS_PASSWORD", ""),
			RedisDB:       getEnvInt("CODEMASTER_REDIS_DB", 0),
			RedisKey:      getEnv("CODEMASTER_REDIS_KEY", "codemaster:api_usage"),
		},
		HTTP: HTTPConfig{
			Addr:           getEnv("CODEMASTER_HTTP_ADDR", ":8080"),
			SessionSecret:  getEnv("CODEMASTER_SESSION_SECRET", ""),
			AllowedOrigins: getEnvList("CODEMASTER_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
			SecureCookies:  getEnvBool("CODEMASTER_SECURE_COOKIES", false),
		},
		LLM:             llmCfg,
		ProblemMode:     getEnv("CODEMASTER_PROBLEM_MODE", "auto"),
		PlacementPolicy: getEnv("CODEMASTER_PLACEMENT_POLICY", "linear"),
		PenaltyPolicy:   getEnv("CODEMASTER_PENALTY_POLICY", "from-original"),
	}
	return cfg, nil
}

// Validate checks that the configuration is usable. A missing oracle
// credential is an error: the app never starts without one.
func (c *Config) Validate() error {
	if err := c.validateLocal(); err != nil {
		return err
	}
	if err := c.LLM.Validate(); err != nil {
		return fmt.Errorf("oracle credentials: %w", err)
	}
	return nil
}

func (c *Config) validateLocal() error {
	if c.DataDir == "" {
		return fmt.Errorf("CODEMASTER_DATA_DIR cannot be empty")
	}
	if c.Governor.DailyLimit <= 0 {
		return fmt.Errorf("CODEMASTER_DAILY_LIMIT must be > 0")
	}
	if c.Governor.PerMinuteLimit <= 0 {
		return fmt.Errorf("CODEMASTER_PER_MINUTE_LIMIT must be > 0")
	}
	switch c.Usage.Backend {
	case "file":
	case "redis":
		if c.Usage.RedisAddr == "" {
			return fmt.Errorf("CODEMASTER_REDIS_ADDR is required for the redis usage backend")
		}
	default:
		return fmt.Errorf("unknown usage backend: %q", c.Usage.Backend)
	}
	switch c.ProblemMode {
	case "auto", "bank", "ai":
	default:
		return fmt.Errorf("unknown problem mode: %q", c.ProblemMode)
	}
	switch c.PlacementPolicy {
	case "linear", "ladder":
	default:
		return fmt.Errorf("unknown placement policy: %q", c.PlacementPolicy)
	}
	switch c.PenaltyPolicy {
	case "from-original", "compounding":
	default:
		return fmt.Errorf("unknown penalty policy: %q", c.PenaltyPolicy)
	}
	return nil
}

// ValidateHTTP checks the settings only the serve command needs.
func (c *Config) ValidateHTTP() error {
	if c.HTTP.Addr == "" {
		return fmt.Errorf("CODEMASTER_HTTP_ADDR cannot be empty")
	}
	if len(c.HTTP.SessionSecret) < 32 {
		return fmt.Errorf("CODEMASTER_SESSION_SECRET must be at least 32 bytes")
	}
	return nil
}

// EnsureDataDir creates the data directory.
func (c *Config) EnsureDataDir() error {
	return os.MkdirAll(c.DataDir, 0o755)
}

// resolveDataDir resolves the data directory in priority order:
// 1. CODEMASTER_DATA_DIR environment variable
// 2. $XDG_DATA_HOME/codemaster
// 3. ~/.local/share/codemaster
func resolveDataDir() (string, error) {
	if p := os.Getenv("CODEMASTER_DATA_DIR"); p != "" {
		return p, nil
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "codemaster"), nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}

func getEnvList(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
