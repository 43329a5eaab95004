// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Port               string
	AppEnv             string
	MaxRequestBodySize int64
	Gemini             GeminiConfig
	History            HistoryConfig
	Transcript         TranscriptConfig
	LexiconPath        string
}

// GeminiConfig controls the upstream generative-language client.
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string // Empty uses the SDK default endpoint.
	Timeout time.Duration
}

// HistoryConfig controls the in-process conversation log.
type HistoryConfig struct {
	Capacity     int
	FallbackSeed uint64 // 0 = seed from the clock
}

// TranscriptConfig controls the in-memory SQLite transcript.
type TranscriptConfig struct {
	Enabled       bool
	Retention     time.Duration
	SweepInterval time.Duration
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	capacity := getEnvInt("HISTORY_CAPACITY", 500)
	if capacity <= 0 {
		capacity = 500
	}

	seed, err := getEnvUint64("FALLBACK_SEED", 0)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		AppEnv:             getEnv("APP_ENV", "development"),
		MaxRequestBodySize: int64(getEnvInt("MAX_REQUEST_BODY_BYTES", 1<<20)),
		Gemini: GeminiConfig{
			APIKey:  strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
			Model:   getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			BaseURL: getEnv("GEMINI_BASE_URL", ""),
			Timeout: getEnvDuration("GEMINI_TIMEOUT", 8*time.Second),
		},
		History: HistoryConfig{
			Capacity:     capacity,
			FallbackSeed: seed,
		},
		Transcript: TranscriptConfig{
			Enabled:       getEnvBool("TRANSCRIPT_ENABLED", true),
			Retention:     getEnvDuration("TRANSCRIPT_RETENTION", 24*time.Hour),
			SweepInterval: getEnvDuration("TRANSCRIPT_SWEEP_INTERVAL", 5*time.Minute),
		},
		LexiconPath: getEnv("LEXICON_PATH", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.Gemini.Model == "" {
		return fmt.Errorf("GEMINI_MODEL cannot be empty")
	}
	if c.Gemini.Timeout <= 0 {
		return fmt.Errorf("GEMINI_TIMEOUT must be > 0")
	}
	if c.MaxRequestBodySize <= 0 {
		return fmt.Errorf("MAX_REQUEST_BODY_BYTES must be > 0")
	}
	if c.Transcript.Enabled {
		if c.Transcript.Retention <= 0 {
			return fmt.Errorf("TRANSCRIPT_RETENTION must be > 0")
		}
		if c.Transcript.SweepInterval <= 0 {
			return fmt.Errorf("TRANSCRIPT_SWEEP_INTERVAL must be > 0")
		}
	}
	return nil
}

// HasAPIKey reports whether upstream generation is configured.
func (c *Config) HasAPIKey() bool {
	return c.Gemini.APIKey != ""
}

// IsProduction returns true when APP_ENV is "production".
func (c *Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.AppEnv), "production")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
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

func getEnvUint64(key string, fallback uint64) (uint64, error) {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	n, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return n, nil
}

// getEnvDuration accepts Go duration strings ("8s") or bare seconds ("8").
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	value = strings.TrimSpace(value)
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
