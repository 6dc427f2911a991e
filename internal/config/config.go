// Package config loads the runtime configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config carries everything the daemon needs to wire its backends.
// DatabaseURL and RedisURL may be empty, in which case the in-memory
// store and a silent history recorder are used.
type Config struct {
	DatabaseURL     string
	RedisURL        string
	LogLevel        logrus.Level
	BuyIntentWindow time.Duration
	BotTurnTimeout  time.Duration
}

// Load reads .env when present, then the environment. Missing optional
// values fall back to defaults; malformed values are an error.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisURL:        os.Getenv("REDIS_URL"),
		LogLevel:        logrus.InfoLevel,
		BuyIntentWindow: 10 * time.Second,
		BotTurnTimeout:  10 * time.Second,
	}

	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		level, err := logrus.ParseLevel(raw)
		if err != nil {
			return nil, fmt.Errorf("LOG_LEVEL: %w", err)
		}
		cfg.LogLevel = level
	}
	if raw := os.Getenv("BUY_INTENT_WINDOW"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("BUY_INTENT_WINDOW: %w", err)
		}
		cfg.BuyIntentWindow = d
	}
	if raw := os.Getenv("BOT_TURN_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("BOT_TURN_TIMEOUT: %w", err)
		}
		cfg.BotTurnTimeout = d
	}
	return cfg, nil
}
