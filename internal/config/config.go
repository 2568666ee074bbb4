package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// ConfigFileName is the project config file reseed looks for in the
// working directory.
const ConfigFileName = "reseed.config.json"

type Config struct {
	Version     string   `json:"version" mapstructure:"version"`
	DatasetsDir string   `json:"datasets_dir" mapstructure:"datasets_dir"`
	Database    Database `json:"database" mapstructure:"database"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider"`
	// URLEnv names the environment variable holding the connection URL.
	// The config file never carries the credential itself.
	URLEnv string `json:"url_env" mapstructure:"url_env"`
}

func DefaultConfig() *Config {
	return &Config{
		Version:     "1",
		DatasetsDir: "datasets",
		Database: Database{
			Provider: "postgresql",
			URLEnv:   "DATABASE_URL",
		},
	}
}

func Load() (*Config, error) {
	var cfg Config

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Set defaults
	if cfg.Version == "" {
		cfg.Version = "1"
	}
	if cfg.DatasetsDir == "" {
		cfg.DatasetsDir = "datasets"
	}
	if cfg.Database.Provider == "" {
		cfg.Database.Provider = "postgresql"
	}
	if cfg.Database.URLEnv == "" {
		cfg.Database.URLEnv = "DATABASE_URL"
	}

	return &cfg, nil
}

func (c *Config) GetDatabaseURL() (string, error) {
	dbURL := os.Getenv(c.Database.URLEnv)
	if dbURL == "" {
		return "", fmt.Errorf("database URL not found in environment variable %s", c.Database.URLEnv)
	}
	return dbURL, nil
}

func (c *Config) Validate() error {
	supportedProviders := []string{"postgresql", "postgres", "mysql", "sqlite", "sqlite3"}
	supported := false
	for _, provider := range supportedProviders {
		if c.Database.Provider == provider {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("unsupported database provider: %s. Supported providers: %v", c.Database.Provider, supportedProviders)
	}

	if c.DatasetsDir == "" {
		return fmt.Errorf("datasets_dir cannot be empty")
	}

	return nil
}

func (c *Config) EnsureDirectories() error {
	if c.DatasetsDir == "" || c.DatasetsDir == "." {
		return nil
	}
	if err := os.MkdirAll(c.DatasetsDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", c.DatasetsDir, err)
	}
	return nil
}

// IsInitialized reports whether the working directory already carries a
// reseed config file.
func IsInitialized() bool {
	_, err := os.Stat(ConfigFileName)
	return err == nil
}

// InitializeProject writes the default config file and creates the
// datasets directory. Fails if the project is already initialized.
func InitializeProject() error {
	if IsInitialized() {
		return fmt.Errorf("project is already initialized (%s exists)", ConfigFileName)
	}

	cfg := DefaultConfig()
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(ConfigFileName, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", ConfigFileName, err)
	}

	return cfg.EnsureDirectories()
}
