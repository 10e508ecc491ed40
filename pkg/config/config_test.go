package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("PORT", "")
	t.Setenv("AI_PROVIDER", "")
	t.Setenv("JWT_TTL_MINUTES", "")
	t.Setenv("CHAT_RATE_PER_MINUTE", "")
	t.Setenv("GENERATIONS_PER_HOUR", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.AI.Provider != "gemini" || cfg.AI.Timeout != 30*time.Second {
		t.Fatalf("unexpected AI defaults %+v", cfg.AI)
	}
	if cfg.JWT.TTL != 24*time.Hour {
		t.Fatalf("expected 24h token ttl, got %s", cfg.JWT.TTL)
	}
	if cfg.Chat.RatePerMinute != 20 {
		t.Fatalf("expected 20 messages per minute, got %d", cfg.Chat.RatePerMinute)
	}
	if cfg.Itinerary.GenerationsPerHour != 10 {
		t.Fatalf("expected 10 generations per hour, got %d", cfg.Itinerary.GenerationsPerHour)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("AI_PROVIDER", "OpenAI")
	t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("AI_TEMPERATURE", "0.2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AI.Provider != "openai" {
		t.Fatalf("expected openai, got %s", cfg.AI.Provider)
	}
	if len(cfg.CorsOrigins) != 2 || cfg.CorsOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins %v", cfg.CorsOrigins)
	}
	if cfg.AI.Temperature != 0.2 {
		t.Fatalf("expected temperature 0.2, got %v", cfg.AI.Temperature)
	}
}

func TestLoadRejectsDefaultSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected an error for the development secret in production")
	}
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	t.Setenv("AI_PROVIDER", "llama")
	if _, err := Load(); err == nil {
		t.Fatalf("expected an error for an unknown provider")
	}
}
