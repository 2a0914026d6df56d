package config

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

const (
	defaultMigrationsDir   = "./migrations"
	defaultLogLevel        = "info"
	defaultTokenTTL        = 24 * time.Hour
	defaultJanitorInterval = time.Hour
)

// Load reads configuration from environment variables and .env file.
// It exits the process if a required variable is missing or malformed.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	cfg, err := load(os.LookupEnv)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	return cfg
}

func load(lookup func(string) (string, bool)) (Config, error) {
	var missing []string
	// getEnv returns a required variable and remembers the ones that are not set.
	getEnv := func(key string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		missing = append(missing, key)
		return ""
	}
	getEnvDefault := func(key, fallback string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		return fallback
	}
	getDuration := func(key string, fallback time.Duration) (time.Duration, error) {
		value, ok := lookup(key)
		if !ok || value == "" {
			return fallback, nil
		}
		d, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("environment variable %s: %w", key, err)
		}
		if d <= 0 {
			return 0, fmt.Errorf("environment variable %s must be positive, got %s", key, value)
		}
		return d, nil
	}

	tokenTTL, err := getDuration("TOKEN_TTL", defaultTokenTTL)
	if err != nil {
		return Config{}, err
	}
	janitorInterval, err := getDuration("JANITOR_INTERVAL", defaultJanitorInterval)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBName:        getEnv("DB_NAME"),
		MigrationsDir: getEnvDefault("MIGRATIONS_DIR", defaultMigrationsDir),
		Port:          getEnv("PORT"),
		LogLevel:      getEnvDefault("LOG_LEVEL", defaultLogLevel),
		Auth: AuthConfig{
			JWTSecret:       getEnv("JWT_SECRET"),
			TokenTTL:        tokenTTL,
			JanitorInterval: janitorInterval,
		},
		Slack: SlackConfig{
			Token: getEnvDefault("SLACK_BOT_TOKEN", ""),
		},
		Push: PushConfig{
			Audience:       getEnvDefault("PUBSUB_PUSH_AUDIENCE", ""),
			ServiceAccount: getEnvDefault("PUBSUB_PUSH_SERVICE_ACCOUNT", ""),
			Token:          getEnvDefault("PUBSUB_PUSH_TOKEN", ""),
		},
		Turso: TursoConfig{
			PrimaryURL: getEnvDefault("TURSO_PRIMARY_URL", ""),
			AuthToken:  getEnvDefault("TURSO_AUTH_TOKEN", ""),
		},
		ProjectID: getEnvDefault("GCP_PROJECT", ""),
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %v", missing)
	}
	if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, fmt.Errorf("environment variable LOG_LEVEL: %w", err)
	}
	return cfg, nil
}
