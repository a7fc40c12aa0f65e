package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config keeps runtime settings for the planner service.
type Config struct {
	Addr        string
	DatabaseURL string

	OpenAIKey   string
	OpenAIModel string

	// Optional Telegram digest push.
	TelegramToken  string
	TelegramChatID int64
	DigestTime     string // HH:MM, empty disables the digest
}

// Load reads configuration from the environment (and a local .env file
// when present) with sane defaults.
func Load() (Config, error) {
	// Missing .env is fine; real environments set vars directly.
	_ = godotenv.Load()

	cfg := Config{
		Addr:          strings.TrimSpace(os.Getenv("MYTIME_ADDR")),
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		OpenAIKey:     strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIModel:   strings.TrimSpace(os.Getenv("OPENAI_MODEL")),
		TelegramToken: strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
		DigestTime:    strings.TrimSpace(os.Getenv("DIGEST_TIME")),
	}

	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "mytime.db"
	}
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = "gpt-4o-mini"
	}

	if raw := strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")); raw != "" {
		chatID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("TELEGRAM_CHAT_ID must be an integer: %w", err)
		}
		cfg.TelegramChatID = chatID
	}

	if cfg.TelegramToken != "" && cfg.TelegramChatID == 0 {
		return cfg, fmt.Errorf("TELEGRAM_CHAT_ID is required when TELEGRAM_TOKEN is set")
	}

	return cfg, nil
}

// DigestEnabled reports whether the daily Telegram digest should run.
func (c Config) DigestEnabled() bool {
	return c.TelegramToken != "" && c.DigestTime != ""
}
