package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// AppConfig holds all configuration for the assistant, loaded from the
// environment and config.yaml.
type AppConfig struct {
	// GeminiAPIKey authenticates against the hosted model. Environment only.
	GeminiAPIKey string
	// Port the HTTP server listens on.
	Port string
	// RedisAddr, when set, switches state persistence from the local JSON
	// file to Redis.
	RedisAddr string

	// Model is the Gemini model id the deployment is pinned to.
	Model string `yaml:"model"`
	// HistoryWindow bounds how many trailing transcript entries are
	// replayed to the model per turn.
	HistoryWindow int `yaml:"history_window"`
	// StatePath is where the file-backed store keeps the document.
	StatePath string `yaml:"state_path"`
}

// LoadConfig reads .env (local development only), environment variables,
// and config.yaml. In release mode configuration comes straight from the
// environment, e.g. via Docker Compose.
func LoadConfig() (*AppConfig, error) {
	if os.Getenv("GIN_MODE") != "release" {
		if err := godotenv.Load(); err != nil {
			log.Println("WARNING: No .env file found for local development.")
		}
	}

	cfg := &AppConfig{
		// Defaults, overridable from config.yaml.
		Model:         "gemini-2.0-flash",
		HistoryWindow: 10,
		StatePath:     "gurumate_state.json",
	}

	if data, err := os.ReadFile("config.yaml"); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config.yaml: %w", err)
		}
	} else {
		log.Println("WARNING: No config.yaml found, using built-in defaults.")
	}

	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is not set")
	}

	cfg.Port = os.Getenv("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	cfg.RedisAddr = os.Getenv("REDIS_ADDR")

	if cfg.HistoryWindow <= 0 {
		cfg.HistoryWindow = 10
	}

	return cfg, nil
}
