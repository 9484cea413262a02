package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/steviee/go-mojang/internal/config"
)

var (
	// Global flags
	cfgFile string
	jsonOut bool
	quiet   bool
	verbose bool

	// Global logger
	logger *slog.Logger
)

// NewRootCommand creates and returns the root cobra command
func NewRootCommand(version, commit, date, builtBy string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "go-mojang",
		Short: "Query Mojang player data from the command line",
		Long: `go-mojang is a CLI for the public Mojang API.

It resolves usernames to UUIDs (single or batched), looks up the current
username for a known UUID, fetches full player profiles including skin
and cape textures, and lists blocked server hashes.

Requests are retried with exponential backoff on transient upstream
errors, and UUID lookups are cached to stay clear of rate limits.`,
		Example: `  # Resolve a username to its UUID
  go-mojang lookup notch

  # Resolve several usernames in one batch
  go-mojang lookup notch jeb_ dinnerbone

  # Look up the current username for a UUID
  go-mojang username 069a79f4-44e9-4726-a5be-fca90e38aaf5

  # Fetch a full profile with skin and cape URLs
  go-mojang profile notch

  # List blocked server hashes
  go-mojang blocked`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Config first so the logger can honor the configured level
			if err := initConfig(); err != nil {
				return fmt.Errorf("failed to initialize config: %w", err)
			}

			if err := initLogger(); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			if path := viper.ConfigFileUsed(); path != "" {
				logger.Debug("using config file", "path", path)
			}

			return nil
		},
	}

	// Add global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/go-mojang/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose logging")

	// Mark json and quiet as mutually exclusive
	rootCmd.MarkFlagsMutuallyExclusive("json", "quiet")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Add version command
	rootCmd.AddCommand(NewVersionCommand(version, commit, date, builtBy))

	// Add lookup commands
	rootCmd.AddCommand(NewLookupCommand())
	rootCmd.AddCommand(NewUsernameCommand())
	rootCmd.AddCommand(NewProfileCommand())
	rootCmd.AddCommand(NewBlockedCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// initLogger initializes the global logger based on flags and the
// configured log level
func initLogger() error {
	var level slog.Level

	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	default:
		level = parseLevel(viper.GetString("logging.level"))
	}

	var handler slog.Handler
	if jsonOut {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	}

	logger = slog.New(handler)
	slog.SetDefault(logger)

	return nil
}

// parseLevel maps a configured log level to a slog.Level, defaulting to
// info for unknown values.
func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// initConfig reads in config file and ENV variables if set
func initConfig() error {
	// Local overrides from a .env file, if present
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Search config in ~/.config/go-mojang directory
		configDir, err := config.GetConfigDir()
		if err != nil {
			return fmt.Errorf("get config directory: %w", err)
		}

		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match
	viper.SetEnvPrefix("MOJANG")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("read config file: %w", err)
		}
	}

	return nil
}

// setDefaults seeds viper with the library defaults so commands can read
// settings without caring whether a config file exists.
func setDefaults() {
	defaults := config.DefaultConfig()

	viper.SetDefault("api.timeout", defaults.API.Timeout)
	viper.SetDefault("api.user_agent", defaults.API.UserAgent)
	viper.SetDefault("api.max_attempts", defaults.API.MaxAttempts)
	viper.SetDefault("api.retry_on_ratelimit", defaults.API.RetryOnRatelimit)
	viper.SetDefault("api.ratelimit_delay", defaults.API.RatelimitDelay)
	viper.SetDefault("cache.disabled", defaults.Cache.Disabled)
	viper.SetDefault("cache.size", defaults.Cache.Size)
	viper.SetDefault("cache.ttl", defaults.Cache.TTL)
	viper.SetDefault("logging.level", defaults.Logging.Level)
}

// GetLogger returns the global logger instance
func GetLogger() *slog.Logger {
	return logger
}

// IsJSONOutput returns true if JSON output is enabled
func IsJSONOutput() bool {
	return jsonOut
}

// IsQuiet returns true if quiet mode is enabled
func IsQuiet() bool {
	return quiet
}

// IsVerbose returns true if verbose mode is enabled
func IsVerbose() bool {
	return verbose
}
