package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Env         string
	DatabaseURL string

	JWTSecret   string
	JWTIssuer   string
	JWTTTLHours int

	OpenRouterAPIKey   string
	OpenRouterBase     string
	OpenRouterModel    string
	OpenRouterAppTitle string
	OpenRouterReferer  string
	LLMTimeoutSeconds  int
}

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("APP_ENV", "development"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret:   getEnv("JWT_SECRET", "dev-secret-change"),
		JWTIssuer:   getEnv("JWT_ISSUER", "resumeforge"),
		JWTTTLHours: getEnvInt("JWT_TTL_HOURS", 168), // 7 days

		OpenRouterAPIKey:   os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterBase:     os.Getenv("OPENROUTER_BASE_URL"),
		OpenRouterModel:    getEnv("OPENROUTER_MODEL", "qwen/qwen2.5-32b-instruct"),
		OpenRouterAppTitle: getEnv("OPENROUTER_APP_TITLE", "ResumeForge"),
		OpenRouterReferer:  os.Getenv("OPENROUTER_REFERER"),
		LLMTimeoutSeconds:  getEnvInt("LLM_TIMEOUT_SECONDS", 60),
	}
	return cfg
}

// DevMode reports whether the server runs without TLS-only cookies.
func (c Config) DevMode() bool { return c.Env == "development" }

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
