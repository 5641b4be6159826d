// Package config reads runtime settings from the environment.
// main loads .env first (godotenv), so values there apply too; CLI flags
// override whatever Load returns.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Config holds process-wide settings.
type Config struct {
	LogLevel      zerolog.Level
	DBPath        string
	Port          string
	SessionSecret string
	ClientOrigin  string
	TestMode      bool

	// Seed, when set, makes generated codes reproducible.
	Seed string

	// DailySalt keys the date-seeded daily game.
	DailySalt string
}

// Load reads the environment, falling back to development defaults.
func Load() Config {
	lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return Config{
		LogLevel:      lvl,
		DBPath:        getEnv("MASTERMIND_DB", "./data/mastermind.db"),
		Port:          getEnv("PORT", "5176"),
		SessionSecret: getEnv("SESSION_SECRET", "dev_secret_change_me"),
		ClientOrigin:  getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		TestMode:      envBool("MASTERMIND_TEST_MODE", false),
		Seed:          os.Getenv("MASTERMIND_SEED"),
		DailySalt:     getEnv("DAILY_SALT", "local_dev_salt"),
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envBool(k string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
