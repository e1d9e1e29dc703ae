package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDotEnvLoader_Load_FileNotExists(t *testing.T) {
	// Missing .env files are fine; the process environment still wins
	dotEnvLoader := &DotEnvLoader{
		Loader:   &Loader{envLoader: NewMockEnvLoader(validEnvVars())},
		envFiles: []string{"non-existent.env"},
	}

	config, err := dotEnvLoader.Load()

	if err != nil {
		t.Fatalf("Expected no error for missing .env file, got: %v", err)
	}

	if config.TelegramBotToken != "123456:test-token" {
		t.Errorf("Expected config to be loaded from environment variables")
	}
}

func TestDotEnvLoader_Load_ValidFile(t *testing.T) {
	// Clear any existing environment variables that might interfere
	for _, key := range []string{
		"TELEGRAM_BOT_TOKEN", "BACKEND_API_URL", "BACKEND_INTERNAL_TOKEN",
		"ALLOWED_USER_IDS", "LOG_LEVEL", "LOG_FORMAT",
	} {
		_ = os.Unsetenv(key)
	}

	tmpDir := t.TempDir()
	envFile := filepath.Join(tmpDir, ".env")

	envContent := `TELEGRAM_BOT_TOKEN=123456:file-token
BACKEND_API_URL=https://bugs.example.com/api
BACKEND_INTERNAL_TOKEN=file-secret
ALLOWED_USER_IDS=42,1001
LOG_LEVEL=debug
`

	if err := os.WriteFile(envFile, []byte(envContent), 0644); err != nil {
		t.Fatalf("Failed to create test .env file: %v", err)
	}

	loader := NewDotEnvLoader(envFile)
	config, err := loader.Load()

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if config.TelegramBotToken != "123456:file-token" {
		t.Errorf("Expected TELEGRAM_BOT_TOKEN from .env file, got '%s'", config.TelegramBotToken)
	}
	if len(config.AllowedUserIDs) != 2 {
		t.Errorf("Expected 2 allowed user IDs, got %v", config.AllowedUserIDs)
	}
	if config.LogLevel != "debug" {
		t.Errorf("Expected LOG_LEVEL 'debug' from .env file, got '%s'", config.LogLevel)
	}

	// Cleanup the variables godotenv exported into the process
	for _, key := range []string{
		"TELEGRAM_BOT_TOKEN", "BACKEND_API_URL", "BACKEND_INTERNAL_TOKEN",
		"ALLOWED_USER_IDS", "LOG_LEVEL",
	} {
		_ = os.Unsetenv(key)
	}
}

func TestEnvFileError(t *testing.T) {
	inner := os.ErrPermission
	err := NewEnvFileError("/etc/app/.env", inner)

	if err.Error() == "" {
		t.Error("Expected a non-empty error message")
	}
	if err.Unwrap() != inner {
		t.Error("Expected Unwrap to return the underlying error")
	}
}
