package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"LLM_API_KEY", "GROQ_API_KEY", "LLM_MODEL", "BOT_DIFFICULTY", "W_CENTER_REACH", "LLM_TIMEOUT_SECONDS", "ALLOWED_ORIGINS", "FRONTEND_URL"} {
		t.Setenv(key, "")
	}
	cfg := LoadConfig()
	if cfg.LLMAPIKey != "" || cfg.LLMModel != "gemma2-9b-it" || cfg.BotDifficulty != "medium" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.CenterReach != 7 || cfg.NeighborBonus != 2 {
		t.Fatalf("unexpected weights %v / %v", cfg.CenterReach, cfg.NeighborBonus)
	}
	if cfg.LLMTimeout != 20*time.Second {
		t.Fatalf("unexpected timeout %s", cfg.LLMTimeout)
	}
	if AppConfig != cfg {
		t.Fatalf("AppConfig should point at the loaded config")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("W_NEIGHBOR_BONUS", "3.5")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	cfg := LoadConfig()
	if cfg.LLMAPIKey != "gsk_test" {
		t.Fatalf("expected GROQ_API_KEY fallback, got %q", cfg.LLMAPIKey)
	}
	if cfg.NeighborBonus != 3.5 {
		t.Fatalf("expected override, got %v", cfg.NeighborBonus)
	}
	n := len(cfg.AllowedOrigins)
	if n != 4 || cfg.AllowedOrigins[n-1] != "https://b.example" {
		t.Fatalf("unexpected origins %v", cfg.AllowedOrigins)
	}
}

func TestGetEnvParsersFallBack(t *testing.T) {
	t.Setenv("TEST_INT", "abc")
	t.Setenv("TEST_FLOAT", "1.x")
	t.Setenv("TEST_DURATION", "5")
	if got := GetEnvAsInt("TEST_INT", 4); got != 4 {
		t.Fatalf("GetEnvAsInt = %d", got)
	}
	if got := GetEnvAsFloat("TEST_FLOAT", 1.5); got != 1.5 {
		t.Fatalf("GetEnvAsFloat = %v", got)
	}
	if got := GetEnvAsDuration("TEST_DURATION", time.Second); got != time.Second {
		t.Fatalf("GetEnvAsDuration = %s", got)
	}
	t.Setenv("TEST_DURATION", "90s")
	if got := GetEnvAsDuration("TEST_DURATION", time.Second); got != 90*time.Second {
		t.Fatalf("GetEnvAsDuration = %s", got)
	}
}
