package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

type Config struct {
	Bind          string
	Port          int
	RoundDuration time.Duration
	Intermission  time.Duration
	DefaultRounds int
	MaxRounds     int
	PromptURL     string
	PromptTimeout time.Duration
}

func Default() Config {
	return Config{
		Bind:          "0.0.0.0",
		Port:          8080,
		RoundDuration: 30 * time.Second,
		Intermission:  3 * time.Second,
		DefaultRounds: 5,
		MaxRounds:     20,
		PromptURL:     "https://picsum.photos/400/300",
		PromptTimeout: 10 * time.Second,
	}
}

func Load() Config {
	cfg := Default()
	if raw := os.Getenv("BIND"); raw != "" {
		cfg.Bind = raw
	}
	if raw := os.Getenv("PORT"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.Port = value
		}
	}
	if raw := os.Getenv("ROUND_DURATION"); raw != "" {
		if value, err := time.ParseDuration(raw); err == nil && value > 0 {
			cfg.RoundDuration = value
		}
	}
	if raw := os.Getenv("INTERMISSION"); raw != "" {
		if value, err := time.ParseDuration(raw); err == nil && value > 0 {
			cfg.Intermission = value
		}
	}
	if raw := os.Getenv("DEFAULT_ROUNDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DefaultRounds = value
		}
	}
	if raw := os.Getenv("MAX_ROUNDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.MaxRounds = value
		}
	}
	if raw := os.Getenv("PROMPT_URL"); raw != "" {
		cfg.PromptURL = raw
	}
	if raw := os.Getenv("PROMPT_TIMEOUT"); raw != "" {
		if value, err := time.ParseDuration(raw); err == nil && value > 0 {
			cfg.PromptTimeout = value
		}
	}
	return cfg
}
