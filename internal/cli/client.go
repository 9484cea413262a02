package cli

import (
	"github.com/spf13/viper"
	mojang "github.com/steviee/go-mojang"
)

// newClient builds a Mojang API client from the effective configuration,
// merging config file values, environment variables and defaults.
func newClient() (*mojang.Client, error) {
	cfg := mojang.Config{
		Timeout:          viper.GetDuration("api.timeout"),
		UserAgent:        viper.GetString("api.user_agent"),
		MaxAttempts:      viper.GetInt("api.max_attempts"),
		RetryOnRatelimit: viper.GetBool("api.retry_on_ratelimit"),
		RatelimitDelay:   viper.GetDuration("api.ratelimit_delay"),
		CacheSize:        viper.GetInt("cache.size"),
		CacheTTL:         viper.GetDuration("cache.ttl"),
		DisableCache:     viper.GetBool("cache.disabled"),
	}

	return mojang.NewClient(&cfg)
}
