// Package config loads service configuration from an optional config file,
// a local .env, and environment variables, in increasing order of precedence.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the root configuration for the patient-intake service.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Lookup  LookupConfig  `mapstructure:"lookup"`
	Relay   RelayConfig   `mapstructure:"relay"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig captures HTTP server level configuration.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LookupConfig addresses the open-data datastore behind the city/street
// autocomplete, plus the caching and degradation knobs in front of it.
type LookupConfig struct {
	BaseURL          string        `mapstructure:"base_url"`
	CityResourceID   string        `mapstructure:"city_resource_id"`
	StreetResourceID string        `mapstructure:"street_resource_id"`
	Timeout          time.Duration `mapstructure:"timeout"`
	CacheTTL         time.Duration `mapstructure:"cache_ttl"`
	MaxResults       int           `mapstructure:"max_results"`
	MinQueryLength   int           `mapstructure:"min_query_length"`
	FetchLimit       int           `mapstructure:"fetch_limit"`
	BreakerFailures  int           `mapstructure:"breaker_failures"`
	BreakerSuccesses int           `mapstructure:"breaker_successes"`
}

// RelayConfig addresses the automation webhook that receives validated
// registrations. An empty WebhookURL is tolerated at startup and reported as
// a configuration error on the first submission attempt.
type RelayConfig struct {
	WebhookURL string        `mapstructure:"webhook_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// RedisConfig configures the optional lookup cache. An empty URL disables
// caching entirely.
type RedisConfig struct {
	URL string `mapstructure:"url"`
}

// LoggingConfig controls log verbosity and output format.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration. A config.yaml in ./configs or the working
// directory is optional; environment variables (INTAKE_SERVER_ADDR and
// friends) always win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	v.SetEnvPrefix("INTAKE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	// Empty defaults keep every key known to viper so environment overrides
	// bind even without a config file.
	v.SetDefault("lookup.base_url", "")
	v.SetDefault("lookup.city_resource_id", "")
	v.SetDefault("lookup.street_resource_id", "")
	v.SetDefault("lookup.timeout", 5*time.Second)
	v.SetDefault("lookup.cache_ttl", 15*time.Minute)
	v.SetDefault("lookup.max_results", 20)
	v.SetDefault("lookup.min_query_length", 2)
	v.SetDefault("lookup.fetch_limit", 64)
	v.SetDefault("lookup.breaker_failures", 5)
	v.SetDefault("lookup.breaker_successes", 1)

	v.SetDefault("relay.webhook_url", "")
	v.SetDefault("relay.timeout", 30*time.Second)

	v.SetDefault("redis.url", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

func validate(cfg *Config) error {
	if cfg.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	if cfg.Lookup.MaxResults <= 0 {
		return fmt.Errorf("lookup.max_results must be positive")
	}
	if cfg.Lookup.MinQueryLength < 1 {
		return fmt.Errorf("lookup.min_query_length must be at least 1")
	}
	return nil
}
