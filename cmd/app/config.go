package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// API hosts per environment
const (
	TestHost       = "https://test.api.amadeus.com"
	ProductionHost = "https://api.amadeus.com"
)

// Config holds the complete application configuration
type Config struct {
	// API configuration
	API APIConfig `mapstructure:"api"`

	// Cache configuration
	Cache CacheConfig `mapstructure:"cache"`

	// Compare configuration
	Compare CompareConfig `mapstructure:"compare"`

	// Application configuration
	App AppConfig `mapstructure:"app"`
}

// APIConfig holds upstream API configuration
type APIConfig struct {
	// Key is the API client id (AMADEUS_API_KEY)
	Key string `mapstructure:"key"`

	// Secret is the API client secret (AMADEUS_API_SECRET)
	Secret string `mapstructure:"secret"`

	// Env selects the upstream host: "test" or "production"
	Env string `mapstructure:"env"`

	// ReadTimeout is the timeout for reference-data calls
	ReadTimeout time.Duration `mapstructure:"read_timeout"`

	// SearchTimeout is the timeout for search and pricing calls
	SearchTimeout time.Duration `mapstructure:"search_timeout"`

	// AuthTimeout is the timeout for the token exchange
	AuthTimeout time.Duration `mapstructure:"auth_timeout"`

	// MaxAttempts is the ceiling for rate-limit retries
	MaxAttempts int `mapstructure:"max_attempts"`
}

// BaseURL returns the upstream host for the configured environment
func (c APIConfig) BaseURL() string {
	if strings.EqualFold(c.Env, "production") {
		return ProductionHost
	}
	return TestHost
}

// CacheConfig holds token cache configuration
type CacheConfig struct {
	// Dir is the state directory for the token file; empty means the
	// user cache directory
	Dir string `mapstructure:"dir"`
}

// TokenPath returns the token cache file path for the given environment.
// Test and production tokens are cached separately.
func (c CacheConfig) TokenPath(env string) (string, error) {
	dir := c.Dir
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve cache directory: %w", err)
		}
		dir = filepath.Join(base, "amadeus-cli")
	}

	name := "token-test.json"
	if strings.EqualFold(env, "production") {
		name = "token-production.json"
	}

	return filepath.Join(dir, name), nil
}

// CompareConfig holds price comparison configuration
type CompareConfig struct {
	// Workers is the bound on concurrent date searches
	Workers int `mapstructure:"workers"`

	// MaxOffers is how many offers to request per date
	MaxOffers int `mapstructure:"max_offers"`
}

// AppConfig holds application configuration
type AppConfig struct {
	// LogLevel is the log level
	LogLevel string `mapstructure:"log_level"`

	// LogFormat is "text" or "json"
	LogFormat string `mapstructure:"log_format"`

	// Currency is the default currency code for price display
	Currency string `mapstructure:"currency"`
}

// Load loads configuration from files and environment
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Configure paths and file types
	configureViper(v)

	// Read config file if present
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal configuration
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// configureViper sets up Viper configuration paths and types
func configureViper(v *viper.Viper) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	// Enable environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Credential and environment bindings used by the original tools
	_ = v.BindEnv("api.key", "AMADEUS_API_KEY")
	_ = v.BindEnv("api.secret", "AMADEUS_API_SECRET")
	_ = v.BindEnv("api.env", "AMADEUS_ENV")
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("api.env", "test")
	v.SetDefault("api.read_timeout", 30*time.Second)
	v.SetDefault("api.search_timeout", 60*time.Second)
	v.SetDefault("api.auth_timeout", 30*time.Second)
	v.SetDefault("api.max_attempts", 3)

	v.SetDefault("compare.workers", 1)
	v.SetDefault("compare.max_offers", 5)

	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_format", "text")
	v.SetDefault("app.currency", "GBP")
}

// validateConfig validates the loaded configuration
func validateConfig(config *Config) error {
	env := strings.ToLower(config.API.Env)
	if env != "test" && env != "production" {
		return fmt.Errorf("api.env must be \"test\" or \"production\", got %q", config.API.Env)
	}

	if config.API.MaxAttempts < 1 {
		return errors.New("api.max_attempts must be at least 1")
	}

	if config.Compare.Workers < 1 {
		return errors.New("compare.workers must be at least 1")
	}

	if config.Compare.MaxOffers < 1 {
		return errors.New("compare.max_offers must be at least 1")
	}

	return nil
}
