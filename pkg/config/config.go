package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Port        string
	FrontendURL string
	CorsOrigins []string

	PostgresURL string

	JWT       JWTConfig
	AI        AIConfig
	Redis     RedisConfig
	Chat      ChatConfig
	Itinerary ItineraryConfig
	SMTP      SMTPConfig
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type AIConfig struct {
	Provider        string
	GeminiAPIKey    string
	Model           string
	Temperature     float32
	MaxOutputTokens int32
	Timeout         time.Duration
	OpenAIAPIKey    string
	OpenAIModel     string
}

type RedisConfig struct {
	Addr     string
	Password string
	Channel  string
}

type ChatConfig struct {
	RatePerMinute int
}

type ItineraryConfig struct {
	GenerationsPerHour int
}

type SMTPConfig struct {
	Host             string
	Port             int
	Username         string
	Password         string
	From             string
	FromName         string
	AgentNotifyEmail string
}

// UseSSL selects implicit TLS (SMTPS) over STARTTLS.
func (c SMTPConfig) UseSSL() bool { return c.Port == 465 }

const devJWTSecret = "dev-secret-change-me"

// Load reads .env when present and then the process environment.
func Load() (Config, error) {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	cfg := Config{
		Environment: getEnv("APP_ENV", "development"),
		Port:        getEnv("PORT", "8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		CorsOrigins: getEnvAsSlice("CORS_ORIGINS", []string{"http://localhost:3000"}),
		PostgresURL: getEnv("POSTGRES_URL", ""),
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", devJWTSecret),
			TTL:    time.Duration(getEnvAsInt("JWT_TTL_MINUTES", 1440)) * time.Minute,
		},
		AI: AIConfig{
			Provider:        strings.ToLower(getEnv("AI_PROVIDER", "gemini")),
			GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
			Model:           getEnv("AI_MODEL", "gemini-1.5-flash"),
			Temperature:     float32(getEnvAsFloat("AI_TEMPERATURE", 0.7)),
			MaxOutputTokens: int32(getEnvAsInt("AI_MAX_OUTPUT_TOKENS", 4096)),
			Timeout:         time.Duration(getEnvAsInt("AI_TIMEOUT_SECONDS", 30)) * time.Second,
			OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
			OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			Channel:  getEnv("REDIS_CHANNEL", "chat"),
		},
		Chat: ChatConfig{
			RatePerMinute: getEnvAsInt("CHAT_RATE_PER_MINUTE", 20),
		},
		Itinerary: ItineraryConfig{
			GenerationsPerHour: getEnvAsInt("GENERATIONS_PER_HOUR", 10),
		},
		SMTP: SMTPConfig{
			Host:             getEnv("SMTP_HOST", ""),
			Port:             getEnvAsInt("SMTP_PORT", 587),
			Username:         getEnv("SMTP_USERNAME", ""),
			Password:         getEnv("SMTP_PASSWORD", ""),
			From:             getEnv("SMTP_FROM", ""),
			FromName:         getEnv("SMTP_FROM_NAME", "Jharkhand Tourism"),
			AgentNotifyEmail: getEnv("AGENT_NOTIFY_EMAIL", ""),
		},
	}

	return cfg, validate(cfg)
}

func (c Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

func validate(cfg Config) error {
	if cfg.JWT.Secret == devJWTSecret && cfg.IsProduction() {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	if cfg.JWT.TTL <= 0 {
		return fmt.Errorf("JWT_TTL_MINUTES must be positive")
	}
	switch cfg.AI.Provider {
	case "gemini", "openai", "none":
	default:
		return fmt.Errorf("unknown AI_PROVIDER %q", cfg.AI.Provider)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
