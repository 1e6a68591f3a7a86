package config

import (
	"os"

	"github.com/breevs/roulette-backend/utils/logger"

	"github.com/joho/godotenv"
)

// Config holds all environment-sourced settings.
type Config struct {
	Port        string
	DatabaseURL string
	RedisAddr   string // optional, prediction cache disabled when empty
	CORSOrigin  string

	GeminiAPIKey     string
	GeminiModel      string // long-form narrative model
	GeminiFlashModel string // commentary / prediction model
}

// Load reads .env and the environment and validates required vars.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, reading environment variables")
	}

	cfg := &Config{
		Port:             getEnv("PORT", "4000"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		CORSOrigin:       getEnv("CORS_ORIGIN", "http://localhost:3000"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-1.5-pro"),
		GeminiFlashModel: getEnv("GEMINI_FLASH_MODEL", "gemini-1.5-flash"),
	}

	if cfg.DatabaseURL == "" {
		logger.Log.Fatal("DATABASE_URL is required in .env or environment")
	}
	if cfg.GeminiAPIKey == "" {
		logger.Warn("GEMINI_API_KEY is not set, generation endpoints will fail")
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
