// Package config loads the service environment configuration and per-deck
// YAML configs.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Server holds the HTTP tool-server configuration, read from the environment.
type Server struct {
	Port string

	// Auth
	DeckgenAPIKey string

	// Customer configs root (one directory per customer with config.yaml
	// and requirements.json).
	ConfigsDir string

	// Upload limits for spreadsheet parsing.
	MaxUploadBytes int64
}

func Load() Server {
	cfg := Server{
		Port:           envOr("PORT", "8092"),
		DeckgenAPIKey:  os.Getenv("DECKGEN_API_KEY"),
		ConfigsDir:     envOr("CONFIGS_DIR", "configs"),
		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 20971520), // 20MB
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 20971520
	}
	return cfg
}

func (c Server) Validate() error {
	if c.DeckgenAPIKey == "" {
		return fmt.Errorf("DECKGEN_API_KEY is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
