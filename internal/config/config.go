package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// app config, loaded from environment variables
type Config struct {
	Port string

	// AI provider; empty disables AI-assisted paths entirely
	Provider   string
	LLMTimeout time.Duration

	// session store: "memory" or "mongo"
	StoreBackend string
	MongoURI     string
	MongoDB      string

	// question bank: postgres in deployments, sqlite path for local runs
	PostgresDSN string
	SQLitePath  string

	// redis for report cache and completion events; empty disables both
	RedisAddr      string
	ReportCacheTTL time.Duration

	// remote collaborators
	SandboxURL     string
	SandboxTimeout time.Duration
	PatternsURL    string

	// optional bearer auth on the API
	JWTSecret string

	// stale-session sweeper
	SweepSchedule      string
	SessionIdleTimeout time.Duration
}

func LoadConfig() (*Config, error) {
	config := &Config{
		Port:               getEnvOrDefault("PORT", "8086"),
		Provider:           getEnvOrDefault("AI_PROVIDER", ""),
		LLMTimeout:         getDurationOrDefault("LLM_TIMEOUT", 8*time.Second),
		StoreBackend:       getEnvOrDefault("SESSION_STORE", "memory"),
		MongoURI:           os.Getenv("MONGODB_URI"),
		MongoDB:            getEnvOrDefault("MONGODB_DB", "studenthub"),
		PostgresDSN:        os.Getenv("POSTGRES_DSN"),
		SQLitePath:         getEnvOrDefault("SQLITE_PATH", "interview_bank.db"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		ReportCacheTTL:     getDurationOrDefault("REPORT_CACHE_TTL", 24*time.Hour),
		SandboxURL:         os.Getenv("SANDBOX_URL"),
		SandboxTimeout:     getDurationOrDefault("SANDBOX_TIMEOUT", 10*time.Second),
		PatternsURL:        os.Getenv("PATTERNS_URL"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		SweepSchedule:      getEnvOrDefault("SWEEP_SCHEDULE", "*/10 * * * *"),
		SessionIdleTimeout: getDurationOrDefault("SESSION_IDLE_TIMEOUT", 2*time.Hour),
	}
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Provider != "" && config.Provider != "gemini" {
		return errors.New("unsupported AI provider: " + config.Provider + ". Currently supported: gemini")
	}
	switch config.StoreBackend {
	case "memory":
	case "mongo":
		if config.MongoURI == "" {
			return errors.New("SESSION_STORE=mongo requires MONGODB_URI")
		}
	default:
		return errors.New("unsupported session store: " + config.StoreBackend + ". Currently supported: memory, mongo")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
