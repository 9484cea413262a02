package config

import (
	"context"
	"fmt"
	"os"
	"time"

	mojang "github.com/steviee/go-mojang"
	"gopkg.in/yaml.v3"
)

// Config represents the user configuration for go-mojang.
type Config struct {
	API     APIConfig     `yaml:"api" json:"api"`
	Cache   CacheConfig   `yaml:"cache" json:"cache"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// APIConfig holds Mojang API client settings.
type APIConfig struct {
	Timeout          time.Duration `yaml:"timeout" json:"timeout"`
	UserAgent        string        `yaml:"user_agent" json:"user_agent"`
	MaxAttempts      int           `yaml:"max_attempts" json:"max_attempts"`
	RetryOnRatelimit bool          `yaml:"retry_on_ratelimit" json:"retry_on_ratelimit"`
	RatelimitDelay   time.Duration `yaml:"ratelimit_delay" json:"ratelimit_delay"`
}

// CacheConfig holds UUID lookup cache settings.
type CacheConfig struct {
	Disabled bool          `yaml:"disabled" json:"disabled"`
	Size     int           `yaml:"size" json:"size"`
	TTL      time.Duration `yaml:"ttl" json:"ttl"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			Timeout:          mojang.DefaultTimeout,
			UserAgent:        mojang.DefaultUserAgent,
			MaxAttempts:      mojang.DefaultMaxAttempts,
			RetryOnRatelimit: false,
			RatelimitDelay:   mojang.DefaultRatelimitDelay,
		},
		Cache: CacheConfig{
			Disabled: false,
			Size:     mojang.DefaultCacheSize,
			TTL:      mojang.DefaultCacheTTL,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// ClientConfig converts the configuration into options for
// mojang.NewClient.
func (c *Config) ClientConfig() mojang.Config {
	return mojang.Config{
		Timeout:          c.API.Timeout,
		UserAgent:        c.API.UserAgent,
		MaxAttempts:      c.API.MaxAttempts,
		RetryOnRatelimit: c.API.RetryOnRatelimit,
		RatelimitDelay:   c.API.RatelimitDelay,
		CacheSize:        c.Cache.Size,
		CacheTTL:         c.Cache.TTL,
		DisableCache:     c.Cache.Disabled,
	}
}

// LoadConfig loads the configuration from the config file.
// If the file doesn't exist, it creates a new one with defaults.
// If the file is corrupted, it backs up the corrupted file and creates a fresh one.
func LoadConfig(ctx context.Context) (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// Create default config
		cfg := DefaultConfig()
		if err := SaveConfig(ctx, cfg); err != nil {
			return nil, fmt.Errorf("failed to save default config: %w", err)
		}
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		// Config file is corrupted, backup and create fresh
		backupPath := configPath + ".corrupted"
		if backupErr := os.Rename(configPath, backupPath); backupErr != nil {
			return nil, fmt.Errorf("config file is corrupted and failed to create backup: %w (original error: %v)", backupErr, err)
		}

		// Create fresh config
		cfg := DefaultConfig()
		if saveErr := SaveConfig(ctx, cfg); saveErr != nil {
			return nil, fmt.Errorf("config file was corrupted (backed up to %s), failed to save fresh config: %w (original error: %v)", backupPath, saveErr, err)
		}

		return cfg, nil
	}

	// Validate config
	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// SaveConfig saves the configuration to the config file using atomic writes.
func SaveConfig(ctx context.Context, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}

	// Validate config before saving
	if err := ValidateConfig(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	// Marshal to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Atomic write
	if err := AtomicWrite(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// ValidateConfig validates the configuration.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}

	// Validate API settings
	if cfg.API.Timeout <= 0 {
		return fmt.Errorf("API timeout must be positive, got %v", cfg.API.Timeout)
	}

	if cfg.API.UserAgent == "" {
		return fmt.Errorf("user agent cannot be empty")
	}

	if cfg.API.MaxAttempts < 1 {
		return fmt.Errorf("max attempts must be at least 1, got %d", cfg.API.MaxAttempts)
	}

	if cfg.API.RatelimitDelay < 0 {
		return fmt.Errorf("ratelimit delay must be >= 0, got %v", cfg.API.RatelimitDelay)
	}

	// Validate cache settings
	if cfg.Cache.Size < 1 {
		return fmt.Errorf("cache size must be at least 1, got %d", cfg.Cache.Size)
	}

	if cfg.Cache.TTL <= 0 {
		return fmt.Errorf("cache TTL must be positive, got %v", cfg.Cache.TTL)
	}

	// Validate logging
	validLogLevels := []string{"debug", "info", "warn", "error"}
	validLevel := false
	for _, level := range validLogLevels {
		if cfg.Logging.Level == level {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid log level: %q (must be debug, info, warn, or error)", cfg.Logging.Level)
	}

	return nil
}
