package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration.
type Config struct {
	Port            string
	CORSAllowOrigin []string
	Env             string
	DatabaseURL     string

	LLMAPIKey         string
	LLMEndpoint       string
	LLMModel          string
	LLMTimeoutSeconds int
	LLMMaxTokens      int

	SpacesKey      string
	SpacesSecret   string
	SpacesEndpoint string
	SpacesRegion   string
	SpacesBucket   string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		Env:             env,
		DatabaseURL:     dbURL,

		LLMAPIKey:         getEnv("DO_AGENT_API_KEY", ""),
		LLMEndpoint:       getEnv("DO_AGENT_BASE_URL", ""),
		LLMModel:          getEnv("LLM_MODEL", "meta-llama/Meta-Llama-3.1-8B-Instruct"),
		LLMTimeoutSeconds: getEnvInt("LLM_TIMEOUT_SECONDS", 60),
		LLMMaxTokens:      getEnvInt("LLM_MAX_TOKENS", 2000),

		SpacesKey:      getEnv("DO_SPACES_KEY", ""),
		SpacesSecret:   getEnv("DO_SPACES_SECRET", ""),
		SpacesEndpoint: getEnv("DO_SPACES_ENDPOINT", ""),
		SpacesRegion:   getEnv("DO_SPACES_REGION", "nyc3"),
		SpacesBucket:   getEnv("DO_SPACES_BUCKET", "garden-planner-logs"),
	}
}

// LLMConfigured reports whether the upstream agent credentials are present.
func (c Config) LLMConfigured() bool {
	return strings.TrimSpace(c.LLMAPIKey) != "" && strings.TrimSpace(c.LLMEndpoint) != ""
}

// SpacesConfigured reports whether the object-storage mirror can be enabled.
func (c Config) SpacesConfigured() bool {
	return strings.TrimSpace(c.SpacesKey) != "" &&
		strings.TrimSpace(c.SpacesSecret) != "" &&
		strings.TrimSpace(c.SpacesEndpoint) != ""
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		log.Printf("config %s invalid int %q; using %d", key, raw, def)
		return def
	}
	return val
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
