package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr             string
	DBPath           string
	LogLevel         string
	CORSOrigins      []string
	SyncQueueSize    int
	AutoSyncInterval int // seconds between auto cloud saves, 0 disables
	RemoteTimeout    int // seconds before a remote sync request is abandoned
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:             envOr("ADDR", ":8080"),
		DBPath:           envOr("DB_PATH", "islandlog.db"),
		LogLevel:         envOr("LOG_LEVEL", "INFO"),
		CORSOrigins:      splitList(envOr("CORS_ORIGINS", "*")),
		SyncQueueSize:    envIntOr("SYNC_QUEUE_SIZE", 16),
		AutoSyncInterval: envIntOr("AUTO_SYNC_INTERVAL", 300),
		RemoteTimeout:    envIntOr("REMOTE_TIMEOUT", 20),
	}
}

// Validate checks the configuration for values the server cannot run with.
// All problems are reported at once.
func (c Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL must be DEBUG, INFO, WARN or ERROR, got %q", c.LogLevel))
	}
	if c.SyncQueueSize < 1 {
		problems = append(problems, "SYNC_QUEUE_SIZE must be at least 1")
	}
	if c.AutoSyncInterval < 0 {
		problems = append(problems, "AUTO_SYNC_INTERVAL cannot be negative")
	}
	if c.RemoteTimeout < 1 {
		problems = append(problems, "REMOTE_TIMEOUT must be at least 1 second")
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
