package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.DatasetsDir != "datasets" {
		t.Errorf("Expected datasets_dir to be 'datasets', got '%s'", config.DatasetsDir)
	}

	if config.Database.Provider != "postgresql" {
		t.Errorf("Expected database provider to be 'postgresql', got '%s'", config.Database.Provider)
	}

	if config.Database.URLEnv != "DATABASE_URL" {
		t.Errorf("Expected database url_env to be 'DATABASE_URL', got '%s'", config.Database.URLEnv)
	}
}

func TestInitializeProject(t *testing.T) {
	// Create a temporary directory for testing
	tempDir, err := os.MkdirTemp("", "reseed-test")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	// Change to temp directory
	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get current directory: %v", err)
	}
	defer os.Chdir(originalDir)

	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}

	// Test initialization
	if err := InitializeProject(); err != nil {
		t.Fatalf("Failed to initialize project: %v", err)
	}

	// Check if config file was created
	configPath := filepath.Join(tempDir, ConfigFileName)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Errorf("Config file was not created at %s", configPath)
	}

	// Check if the datasets directory was created
	if _, err := os.Stat(filepath.Join(tempDir, "datasets")); os.IsNotExist(err) {
		t.Error("Directory datasets was not created")
	}

	// Test that second initialization fails
	if err := InitializeProject(); err == nil {
		t.Error("Expected second initialization to fail, but it succeeded")
	}
}

func TestIsInitialized(t *testing.T) {
	// Create a temporary directory for testing
	tempDir, err := os.MkdirTemp("", "reseed-test")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	// Change to temp directory
	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get current directory: %v", err)
	}
	defer os.Chdir(originalDir)

	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}

	// Should not be initialized initially
	if IsInitialized() {
		t.Error("Expected project to not be initialized, but it was")
	}

	// Create config file
	configPath := filepath.Join(tempDir, ConfigFileName)
	if err := os.WriteFile(configPath, []byte("{}"), 0644); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}

	// Should be initialized now
	if !IsInitialized() {
		t.Error("Expected project to be initialized, but it wasn't")
	}
}

func TestGetDatabaseURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Database.URLEnv = "RESEED_TEST_DATABASE_URL"

	if _, err := cfg.GetDatabaseURL(); err == nil {
		t.Error("Expected an error when the environment variable is unset")
	}

	t.Setenv("RESEED_TEST_DATABASE_URL", "sqlite://./data.sqlite")

	url, err := cfg.GetDatabaseURL()
	if err != nil {
		t.Fatalf("Failed to get database URL: %v", err)
	}
	if url != "sqlite://./data.sqlite" {
		t.Errorf("Expected database URL 'sqlite://./data.sqlite', got '%s'", url)
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected default config to validate, got error: %v", err)
	}

	cfg.Database.Provider = "oracle"
	if err := cfg.Validate(); err == nil {
		t.Error("Expected an unsupported provider to fail validation")
	}

	cfg = DefaultConfig()
	cfg.DatasetsDir = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Expected an empty datasets_dir to fail validation")
	}
}
