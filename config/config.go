package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds everything the server reads from the environment.
type AppConfig struct {
	Port            string
	SessionTTL      time.Duration
	CleanupInterval time.Duration
	MaxAttempts     int
	DatabaseURL     string
	AllowOrigins    []string
}

// Load reads .env when present and assembles the runtime configuration.
// Malformed values log a warning and keep their defaults.
func Load() AppConfig {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, reading environment variables")
	}

	return AppConfig{
		Port:            envString("PORT", "4000"),
		SessionTTL:      envDuration("SESSION_TTL", time.Hour),
		CleanupInterval: envDuration("CLEANUP_INTERVAL", time.Minute),
		MaxAttempts:     envInt("MAX_GENERATION_ATTEMPTS", 100),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		AllowOrigins:    envList("ALLOW_ORIGINS", "http://localhost:3000"),
	}
}

func envString(key, fallback string) string {
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
	if err != nil || d <= 0 {
		log.Printf("[WARN] invalid %s %q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("[WARN] invalid %s %q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func envList(key, fallback string) []string {
	v := os.Getenv(key)
	if v == "" {
		v = fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
