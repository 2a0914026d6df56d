package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	LogLevel      string
	Auth          AuthConfig
	Slack         SlackConfig
	Push          PushConfig
	Turso         TursoConfig
	ProjectID     string
}

type AuthConfig struct {
	JWTSecret       string
	TokenTTL        time.Duration
	JanitorInterval time.Duration
}

// SlackConfig holds the bot token. Recap channels are set per owner on the profile.
type SlackConfig struct {
	Token string
}

// Enabled reports whether recaps can be posted to Slack.
func (c SlackConfig) Enabled() bool {
	return c.Token != ""
}

// PushConfig authenticates Pub/Sub push deliveries: either the OIDC audience
// (optionally pinned to a service account) or a shared query token.
type PushConfig struct {
	Audience       string
	ServiceAccount string
	Token          string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
