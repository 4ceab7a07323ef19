// Package config loads marquee's configuration with viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "MARQUEE"

// Config holds all application configuration
type Config struct {
	TMDB        TMDBConfig        `mapstructure:"tmdb"`
	Preferences PreferencesConfig `mapstructure:"preferences"`
	Cache       CacheConfig       `mapstructure:"cache"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

// TMDBConfig holds API endpoint and credential configuration
type TMDBConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	APIKey         string        `mapstructure:"api_key"`      // v3 key
	AccessToken    string        `mapstructure:"access_token"` // v4 read access token
	Language       string        `mapstructure:"language"`
	Timeout        time.Duration `mapstructure:"timeout"`
	StrictDecoding bool          `mapstructure:"strict_decoding"`
}

// PreferencesConfig holds display defaults. Values saved in the
// preferences database take precedence.
type PreferencesConfig struct {
	DefaultSort  string `mapstructure:"default_sort"` // e.g. "vote_average.desc"
	IncludeAdult bool   `mapstructure:"include_adult"`
}

// CacheConfig holds the location of the preferences database
type CacheConfig struct {
	Dir string `mapstructure:"dir"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		TMDB: TMDBConfig{
			BaseURL:        "https://api.themoviedb.org/3",
			Language:       "en-US",
			Timeout:        30 * time.Second,
			StrictDecoding: true,
		},
		Preferences: PreferencesConfig{
			DefaultSort: "original_order.asc",
		},
		Cache: CacheConfig{
			Dir: defaultCachePath(),
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "marquee", "marquee.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "marquee", "marquee.log")
	}
}

// DefaultConfigPath returns the default config directory for the current OS
func DefaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "marquee")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "marquee")
	}
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "marquee", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "marquee", "cache")
	}
}

// LoadConfig loads configuration from the default locations and environment
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(DefaultConfigPath(), ".")
}

// LoadConfigFrom loads config.yaml from the first of dirs that has one,
// then applies MARQUEE_* environment overrides (MARQUEE_TMDB_API_KEY etc).
func LoadConfigFrom(dirs ...string) (*Config, error) {
	cfg := DefaultConfig()
	v := newViper(cfg)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// newViper builds a viper instance whose defaults mirror cfg, so every key
// is known to AutomaticEnv
func newViper(cfg *Config) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setAll(v.SetDefault, cfg)
	return v
}

// setAll applies every key of cfg through set. Keys are spelled out
// individually so the file always uses snake_case names.
func setAll(set func(key string, value any), cfg *Config) {
	set("tmdb.base_url", cfg.TMDB.BaseURL)
	set("tmdb.api_key", cfg.TMDB.APIKey)
	set("tmdb.access_token", cfg.TMDB.AccessToken)
	set("tmdb.language", cfg.TMDB.Language)
	set("tmdb.timeout", cfg.TMDB.Timeout.String())
	set("tmdb.strict_decoding", cfg.TMDB.StrictDecoding)

	set("preferences.default_sort", cfg.Preferences.DefaultSort)
	set("preferences.include_adult", cfg.Preferences.IncludeAdult)

	set("cache.dir", cfg.Cache.Dir)

	set("logging.file", cfg.Logging.File)
	set("logging.level", cfg.Logging.Level)
}

// SaveConfig saves the configuration to config.yaml in the default directory
func SaveConfig(cfg *Config) error {
	return SaveConfigTo(DefaultConfigPath(), cfg)
}

// SaveConfigTo saves the configuration to dir/config.yaml
func SaveConfigTo(dir string, cfg *Config) error {
	// Ensure config directory exists
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	setAll(v.Set, cfg)

	configFile := filepath.Join(dir, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// IsConfigured returns true if an API key or access token is set
func (c *Config) IsConfigured() bool {
	return c.TMDB.APIKey != "" || c.TMDB.AccessToken != ""
}

// ClearCredentials removes the API key and access token from the config
// file while preserving every other setting
func ClearCredentials(dir string) error {
	cfg, err := LoadConfigFrom(dir)
	if err != nil {
		return err
	}
	cfg.TMDB.APIKey = ""
	cfg.TMDB.AccessToken = ""
	return SaveConfigTo(dir, cfg)
}
