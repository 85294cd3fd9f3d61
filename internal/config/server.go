package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ServerConfig holds settings for the HTTP API, read from the environment.
type ServerConfig struct {
	Addr         string
	RulesPath    string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	SentryDSN         string
	SentryEnvironment string
	SentryRelease     string
}

// LoadServer reads .env (if present) and builds the server configuration
// from environment variables.
func LoadServer() ServerConfig {
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables")
	}

	cfg := ServerConfig{
		Addr:         envOr("LISTEN_ADDR", ":"+envOr("PORT", "8080")),
		RulesPath:    os.Getenv("RULES_FILE"),
		ReadTimeout:  envDuration("READ_TIMEOUT", 10*time.Second),
		WriteTimeout: envDuration("WRITE_TIMEOUT", 10*time.Second),

		SentryDSN:         os.Getenv("SENTRY_DSN"),
		SentryEnvironment: envOr("SENTRY_ENVIRONMENT", "production"),
		SentryRelease:     envOr("SENTRY_RELEASE", "tashmash@1.0.0"),
	}

	log.Printf("config: loaded (addr=%s, rules=%s)", cfg.Addr, orDefault(cfg.RulesPath, "(built-in)"))
	return cfg
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
