// Package config loads cinelist settings from an optional YAML file and
// CINELIST_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "CINELIST"

// Settings is the full runtime configuration.
type Settings struct {
	Server    ServerSettings    `mapstructure:"server"`
	TMDB      TMDBSettings      `mapstructure:"tmdb"`
	RateLimit RateLimitSettings `mapstructure:"ratelimit"`
	Cache     CacheSettings     `mapstructure:"cache"`
	Log       LogSettings       `mapstructure:"log"`
}

type ServerSettings struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	// TrustedProxies are addresses or CIDR ranges allowed to set
	// X-Forwarded-For. Empty means forwarding headers are ignored.
	TrustedProxies []string `mapstructure:"trusted_proxies"`
	// InboundLimit enables the per-client governor on /api.
	InboundLimit bool `mapstructure:"inbound_limit"`
	// SettingsPerMinute caps state-changing settings calls per client IP.
	SettingsPerMinute int `mapstructure:"settings_per_minute"`
}

type TMDBSettings struct {
	APIKey         string        `mapstructure:"api_key"`
	BaseURL        string        `mapstructure:"base_url"`
	Language       string        `mapstructure:"language"`
	MaxRetries     int           `mapstructure:"max_retries"`
	InitialDelay   time.Duration `mapstructure:"initial_delay"`
	RequestSpacing time.Duration `mapstructure:"request_spacing"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

// RateLimitSettings sizes the outbound TMDB governor.
type RateLimitSettings struct {
	MaxRequests int           `mapstructure:"max_requests"`
	Window      time.Duration `mapstructure:"window"`
}

type CacheSettings struct {
	Dir           string        `mapstructure:"dir"`
	TTL           time.Duration `mapstructure:"ttl"`
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	RedisPrefix   string        `mapstructure:"redis_prefix"`
	// WarmInterval refreshes the home bundle and genre lists in the
	// background. Zero disables warming.
	WarmInterval time.Duration `mapstructure:"warm_interval"`
}

// LogSettings controls the rotating log file. An empty File logs to stdout only.
type LogSettings struct {
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.allowed_origins", []string{})
	v.SetDefault("server.trusted_proxies", []string{})
	v.SetDefault("server.inbound_limit", true)
	v.SetDefault("server.settings_per_minute", 10)

	v.SetDefault("tmdb.api_key", "")
	v.SetDefault("tmdb.base_url", "https://api.themoviedb.org/3")
	v.SetDefault("tmdb.language", "tr-TR")
	v.SetDefault("tmdb.max_retries", 3)
	v.SetDefault("tmdb.initial_delay", time.Second)
	v.SetDefault("tmdb.request_spacing", 100*time.Millisecond)
	v.SetDefault("tmdb.timeout", 15*time.Second)

	v.SetDefault("ratelimit.max_requests", 40)
	v.SetDefault("ratelimit.window", 10*time.Second)

	v.SetDefault("cache.dir", "cache")
	v.SetDefault("cache.ttl", 6*time.Hour)
	v.SetDefault("cache.redis_addr", "")
	v.SetDefault("cache.redis_password", "")
	v.SetDefault("cache.redis_db", 0)
	v.SetDefault("cache.redis_prefix", "cinelist:")
	v.SetDefault("cache.warm_interval", 30*time.Minute)

	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
	v.SetDefault("log.compress", true)
}

// New returns a viper instance with defaults and environment binding applied.
// Nested keys map to env vars with dots replaced by underscores, so
// tmdb.api_key reads CINELIST_TMDB_API_KEY. TMDB_API_KEY is also honored.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("tmdb.api_key", envPrefix+"_TMDB_API_KEY", "TMDB_API_KEY")
	return v
}

// Load reads path (or ./cinelist.yaml when path is empty and the file
// exists) on top of defaults and the environment.
func Load(path string) (*Settings, error) {
	v := New()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("cinelist")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}
	return FromViper(v)
}

// FromViper decodes and validates settings from v.
func FromViper(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	s.TMDB.APIKey = strings.TrimSpace(s.TMDB.APIKey)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate rejects settings the server cannot run with.
func (s *Settings) Validate() error {
	var errs []error
	if s.Server.Port <= 0 || s.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", s.Server.Port))
	}
	if s.Server.SettingsPerMinute <= 0 {
		errs = append(errs, errors.New("server.settings_per_minute must be positive"))
	}
	if s.RateLimit.MaxRequests <= 0 {
		errs = append(errs, errors.New("ratelimit.max_requests must be positive"))
	}
	if s.RateLimit.Window <= 0 {
		errs = append(errs, errors.New("ratelimit.window must be positive"))
	}
	if s.TMDB.MaxRetries < 0 {
		errs = append(errs, errors.New("tmdb.max_retries must not be negative"))
	}
	if s.Cache.WarmInterval < 0 {
		errs = append(errs, errors.New("cache.warm_interval must not be negative"))
	}
	if s.Cache.TTL <= 0 {
		errs = append(errs, errors.New("cache.ttl must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
