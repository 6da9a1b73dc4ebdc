package config

import (
	"log"
	"os"
	"strings"
)

// Config holds application configuration.
type Config struct {
	Port            string
	CORSAllowOrigin []string
	Env             string
	StateBackend    string
	StateDir        string
	DatabaseURL     string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("XQR_ENV", "dev"))
	dbURL := os.Getenv("XQR_DATABASE_URL")
	backend := normalizeBackend(getEnv("XQR_STATE_BACKEND", "file"))

	if backend == "postgres" && dbURL == "" {
		log.Printf("XQR_DATABASE_URL is required for the postgres state backend")
	}

	return Config{
		Port:            getEnv("XQR_PORT", "8080"),
		CORSAllowOrigin: splitAndTrim(getEnv("XQR_CORS_ALLOW_ORIGINS", "*")),
		Env:             env,
		StateBackend:    backend,
		StateDir:        getEnv("XQR_STATE_DIR", ""),
		DatabaseURL:     dbURL,
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeBackend(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "postgres", "pg", "database", "db":
		return "postgres"
	case "memory", "mem":
		return "memory"
	default:
		return "file"
	}
}
