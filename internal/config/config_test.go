package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "APP_ENV", "GEMINI_API_KEY", "GEMINI_MODEL", "GEMINI_TIMEOUT",
		"HISTORY_CAPACITY", "FALLBACK_SEED", "TRANSCRIPT_ENABLED",
	} {
		t.Setenv(key, "")
	}
	// Setenv("") still counts as set for LookupEnv; restore the defaults explicitly.
	t.Setenv("PORT", "8080")
	t.Setenv("GEMINI_MODEL", "gemini-2.0-flash")
	t.Setenv("GEMINI_TIMEOUT", "8s")
	t.Setenv("TRANSCRIPT_ENABLED", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected port 8080, got %q", cfg.Port)
	}
	if cfg.HasAPIKey() {
		t.Error("Expected no API key")
	}
	if cfg.Gemini.Timeout != 8*time.Second {
		t.Errorf("Expected 8s timeout, got %v", cfg.Gemini.Timeout)
	}
	if cfg.History.Capacity != 500 {
		t.Errorf("Expected capacity 500 for empty HISTORY_CAPACITY, got %d", cfg.History.Capacity)
	}
	if cfg.History.FallbackSeed != 0 {
		t.Errorf("Expected seed 0, got %d", cfg.History.FallbackSeed)
	}
	if !cfg.Transcript.Enabled {
		t.Error("Expected transcript enabled")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "  secret  ")
	t.Setenv("GEMINI_TIMEOUT", "3")
	t.Setenv("HISTORY_CAPACITY", "42")
	t.Setenv("FALLBACK_SEED", "7")
	t.Setenv("APP_ENV", "Production")
	t.Setenv("TRANSCRIPT_ENABLED", "off")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Gemini.APIKey != "secret" {
		t.Errorf("Expected trimmed API key, got %q", cfg.Gemini.APIKey)
	}
	if cfg.Gemini.Timeout != 3*time.Second {
		t.Errorf("Expected bare seconds to parse, got %v", cfg.Gemini.Timeout)
	}
	if cfg.History.Capacity != 42 {
		t.Errorf("Expected capacity 42, got %d", cfg.History.Capacity)
	}
	if cfg.History.FallbackSeed != 7 {
		t.Errorf("Expected seed 7, got %d", cfg.History.FallbackSeed)
	}
	if !cfg.IsProduction() {
		t.Error("Expected production environment")
	}
	if cfg.Transcript.Enabled {
		t.Error("Expected transcript disabled")
	}
}

func TestLoadRejectsBadSeed(t *testing.T) {
	t.Setenv("FALLBACK_SEED", "not-a-number")

	if _, err := Load(); err == nil {
		t.Fatal("Expected error for invalid FALLBACK_SEED")
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Port:               "8080",
		MaxRequestBodySize: 1,
		Gemini:             GeminiConfig{Model: "m", Timeout: time.Second},
		Transcript:         TranscriptConfig{Enabled: true},
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("Expected error for zero transcript retention")
	}

	cfg.Transcript.Enabled = false
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Expected valid config, got %v", err)
	}

	cfg.Port = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("Expected error for empty port")
	}
}
