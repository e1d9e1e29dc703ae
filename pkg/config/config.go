package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents the application configuration
type Config struct {
	// Telegram bot credential
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN" validate:"required"`

	// Backend API configuration
	BackendAPIURL        string `env:"BACKEND_API_URL" validate:"required,url"`
	BackendInternalToken string `env:"BACKEND_INTERNAL_TOKEN" validate:"required"`

	// Authorization: comma-separated Telegram user IDs allowed to use the bot
	AllowedUserIDs []int64 `env:"ALLOWED_USER_IDS" validate:"required"`

	// Retry configuration for backend requests
	MaxRetries     int           `env:"MAX_RETRIES" default:"3"`
	RetryDelay     time.Duration `env:"RETRY_DELAY" default:"1s"`
	RetryBackoff   float64       `env:"RETRY_BACKOFF" default:"2.0"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" default:"30s"`

	// Conversation session eviction
	SessionTTL time.Duration `env:"SESSION_TTL" default:"30m"`

	// Metrics/health listener address; empty disables the listener
	MetricsAddr string `env:"METRICS_ADDR" default:":9090"`

	// AI triage configuration
	AIAgentEnabled  bool   `env:"AI_AGENT_ENABLED" default:"false"`
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`

	// Optional code-aware tag catalog (YAML)
	TagsFile string `env:"TAGS_FILE"`

	// Application configuration
	LogLevel  string `env:"LOG_LEVEL" validate:"oneof=debug info warn error" default:"info"`
	LogFormat string `env:"LOG_FORMAT" validate:"oneof=text json" default:"text"`
}

// Provider defines the interface for configuration management
// This enables dependency injection and easy testing
type Provider interface {
	Load() (*Config, error)
	Validate(*Config) error
	LoadFromEnv() (*Config, error)
}

// Loader implements the Provider interface
type Loader struct {
	envLoader EnvLoader
}

// EnvLoader defines interface for environment variable loading
// This allows for testing with mock environment variables
type EnvLoader interface {
	Getenv(key string) string
	LookupEnv(key string) (string, bool)
}

// OSEnvLoader implements EnvLoader using os package
type OSEnvLoader struct{}

func (o *OSEnvLoader) Getenv(key string) string {
	return os.Getenv(key)
}

func (o *OSEnvLoader) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// NewLoader creates a new configuration loader
func NewLoader() Provider {
	return &Loader{
		envLoader: &OSEnvLoader{},
	}
}

// NewLoaderWithEnv creates a loader with custom environment loader (for testing)
func NewLoaderWithEnv(envLoader EnvLoader) Provider {
	return &Loader{
		envLoader: envLoader,
	}
}

// Load loads configuration from environment variables
func (l *Loader) Load() (*Config, error) {
	return l.LoadFromEnv()
}

// LoadFromEnv loads configuration from environment variables
func (l *Loader) LoadFromEnv() (*Config, error) {
	config := &Config{}

	config.TelegramBotToken = l.envLoader.Getenv("TELEGRAM_BOT_TOKEN")
	config.BackendAPIURL = l.envLoader.Getenv("BACKEND_API_URL")
	config.BackendInternalToken = l.envLoader.Getenv("BACKEND_INTERNAL_TOKEN")

	allowedIDs, err := parseAllowedUserIDs(l.envLoader.Getenv("ALLOWED_USER_IDS"))
	if err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	config.AllowedUserIDs = allowedIDs

	config.MaxRetries = l.getIntWithDefault("MAX_RETRIES", 3)
	config.RetryDelay = l.getDurationWithDefault("RETRY_DELAY", 1*time.Second)
	config.RetryBackoff = l.getFloatWithDefault("RETRY_BACKOFF", 2.0)
	config.RequestTimeout = l.getDurationWithDefault("REQUEST_TIMEOUT", 30*time.Second)
	config.SessionTTL = l.getDurationWithDefault("SESSION_TTL", 30*time.Minute)

	config.MetricsAddr = l.getEnvWithDefault("METRICS_ADDR", ":9090")

	config.AIAgentEnabled = l.getBoolWithDefault("AI_AGENT_ENABLED", false)
	config.AnthropicAPIKey = l.envLoader.Getenv("ANTHROPIC_API_KEY")
	config.TagsFile = l.envLoader.Getenv("TAGS_FILE")

	config.LogLevel = l.getEnvWithDefault("LOG_LEVEL", "info")
	config.LogFormat = l.getEnvWithDefault("LOG_FORMAT", "text")

	// Validate configuration
	if err := l.Validate(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (l *Loader) Validate(config *Config) error {
	var errors []string

	if config.TelegramBotToken == "" {
		errors = append(errors, "TELEGRAM_BOT_TOKEN is required")
	}

	if config.BackendAPIURL == "" {
		errors = append(errors, "BACKEND_API_URL is required")
	} else if err := validateURL(config.BackendAPIURL); err != nil {
		errors = append(errors, fmt.Sprintf("BACKEND_API_URL is invalid: %v", err))
	}

	if config.BackendInternalToken == "" {
		errors = append(errors, "BACKEND_INTERNAL_TOKEN is required")
	}

	if len(config.AllowedUserIDs) == 0 {
		errors = append(errors, "ALLOWED_USER_IDS is required and must contain at least one user ID")
	}

	if config.MaxRetries < 1 {
		errors = append(errors, "MAX_RETRIES must be at least 1")
	}

	if config.RetryBackoff < 1.0 {
		errors = append(errors, "RETRY_BACKOFF must be at least 1.0")
	}

	if config.AIAgentEnabled && config.AnthropicAPIKey == "" {
		errors = append(errors, "ANTHROPIC_API_KEY is required when AI_AGENT_ENABLED is true")
	}

	if !isValidLogLevel(config.LogLevel) {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of debug, info, warn, error (got %q)", config.LogLevel))
	}

	if config.LogFormat != "text" && config.LogFormat != "json" {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be text or json (got %q)", config.LogFormat))
	}

	if len(errors) > 0 {
		return &ValidationError{Errors: errors}
	}

	return nil
}

// IsUserAllowed reports whether the given Telegram user ID is on the allow-list
func (c *Config) IsUserAllowed(userID int64) bool {
	for _, id := range c.AllowedUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// parseAllowedUserIDs parses the comma-separated allow-list
func parseAllowedUserIDs(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ALLOWED_USER_IDS entry %q: %w", part, err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func validateURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return err
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("URL must use http or https scheme")
	}
	if parsed.Host == "" {
		return fmt.Errorf("URL must include a host")
	}
	return nil
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

// getEnvWithDefault returns the environment variable value or a default
func (l *Loader) getEnvWithDefault(key, defaultValue string) string {
	if value, exists := l.envLoader.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// getIntWithDefault returns the environment variable as int or a default
func (l *Loader) getIntWithDefault(key string, defaultValue int) int {
	if value, exists := l.envLoader.LookupEnv(key); exists && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getFloatWithDefault returns the environment variable as float64 or a default
func (l *Loader) getFloatWithDefault(key string, defaultValue float64) float64 {
	if value, exists := l.envLoader.LookupEnv(key); exists && value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getBoolWithDefault returns the environment variable as bool or a default
func (l *Loader) getBoolWithDefault(key string, defaultValue bool) bool {
	if value, exists := l.envLoader.LookupEnv(key); exists && value != "" {
		if parsed, err := strconv.ParseBool(strings.ToLower(value)); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getDurationWithDefault returns the environment variable as duration or a default
func (l *Loader) getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	if value, exists := l.envLoader.LookupEnv(key); exists && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// ValidationError represents configuration validation failures
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("configuration errors: %s", strings.Join(e.Errors, "; "))
}
