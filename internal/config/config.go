// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github-signal-sync/internal/model"
)

// Config holds all configuration for the application.
type Config struct {
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
	DBURL     string `mapstructure:"DB_URL" masq:"secret"`
	HTTPAddr  string `mapstructure:"HTTP_ADDR"`

	GithubToken             string        `mapstructure:"GITHUB_TOKEN" masq:"secret"`
	GithubAPIURL            string        `mapstructure:"GITHUB_API_URL"`
	GithubAppID             int64         `mapstructure:"GITHUB_APP_ID"`
	GithubAppInstallationID int64         `mapstructure:"GITHUB_APP_INSTALLATION_ID"`
	GithubAppPrivateKey     string        `mapstructure:"GITHUB_APP_PRIVATE_KEY" masq:"secret"`
	GithubRepository        string        `mapstructure:"GITHUB_REPOSITORY"`
	GithubPageSize          int           `mapstructure:"GITHUB_PAGE_SIZE"`
	GithubRequestTimeout    time.Duration `mapstructure:"GITHUB_REQUEST_TIMEOUT"`

	SyncInterval time.Duration `mapstructure:"SYNC_INTERVAL"`

	SentryDSN string `mapstructure:"SENTRY_DSN" masq:"secret"`
	SentryEnv string `mapstructure:"SENTRY_ENV"`

	// DefaultRepo is GithubRepository parsed; zero when unset.
	DefaultRepo model.RepoIdentifier `mapstructure:"-"`
}

var defaults = map[string]any{
	"LOG_LEVEL":                  "info",
	"LOG_FORMAT":                 "json",
	"DB_URL":                     "",
	"HTTP_ADDR":                  ":8080",
	"GITHUB_TOKEN":               "",
	"GITHUB_API_URL":             "",
	"GITHUB_APP_ID":              0,
	"GITHUB_APP_INSTALLATION_ID": 0,
	"GITHUB_APP_PRIVATE_KEY":     "",
	"GITHUB_REPOSITORY":          "",
	"GITHUB_PAGE_SIZE":           100,
	"GITHUB_REQUEST_TIMEOUT":     "30s",
	"SYNC_INTERVAL":              "0s",
	"SENTRY_DSN":                 "",
	"SENTRY_ENV":                 "",
}

// LoadConfig reads configuration from file and/or environment variables.
func LoadConfig() (*Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
		// Unmarshal only sees env-only keys that were bound explicitly.
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	// Load from .env file if it exists
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read .env: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.DBURL == "" {
		return errors.New("DB_URL is a required configuration field")
	}

	if c.GithubAppID != 0 || c.GithubAppInstallationID != 0 || c.GithubAppPrivateKey != "" {
		if c.GithubAppID == 0 || c.GithubAppInstallationID == 0 || c.GithubAppPrivateKey == "" {
			return errors.New("GITHUB_APP_ID, GITHUB_APP_INSTALLATION_ID and GITHUB_APP_PRIVATE_KEY must be set together")
		}
		// Keys passed through a single-line env var carry escaped newlines.
		c.GithubAppPrivateKey = strings.ReplaceAll(c.GithubAppPrivateKey, `\n`, "\n")
	}

	if c.GithubPageSize < 1 || c.GithubPageSize > 100 {
		return fmt.Errorf("GITHUB_PAGE_SIZE must be between 1 and 100, got %d", c.GithubPageSize)
	}
	if c.GithubRequestTimeout <= 0 {
		return errors.New("GITHUB_REQUEST_TIMEOUT must be positive")
	}
	if c.SyncInterval < 0 {
		return errors.New("SYNC_INTERVAL must not be negative")
	}

	if c.GithubRepository != "" {
		id, err := model.ParseRepoIdentifier(c.GithubRepository)
		if err != nil {
			return fmt.Errorf("GITHUB_REPOSITORY: %w", err)
		}
		c.DefaultRepo = id
	}
	return nil
}
