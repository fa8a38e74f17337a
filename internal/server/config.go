package server

import (
	"fmt"
	"os"
	"strconv"
)

// Config is read from the environment. A .env file, if present, is loaded by
// the entrypoint before this runs.
type Config struct {
	Port        int
	DatabaseURL string
	GeminiKey   string
	GeminiModel string
}

func LoadConfig() (Config, error) {
	cfg := Config{
		Port:        8080,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		GeminiKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiModel: os.Getenv("GEMINI_MODEL"),
	}
	if raw := os.Getenv("PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PORT %q: %w", raw, err)
		}
		cfg.Port = port
	}
	if cfg.GeminiKey == "" {
		return Config{}, fmt.Errorf("GEMINI_API_KEY is required")
	}
	return cfg, nil
}
