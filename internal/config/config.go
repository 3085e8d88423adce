// Package config provides configuration management for the application.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Config struct {
	Server  ServerConfig
	Auth    AuthConfig
	YouTube YouTubeConfig
	Cache   CacheConfig
	Logging LoggingConfig
	Demo    DemoConfig
	API     APIConfig
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int
	ShutdownTimeout time.Duration
}

// AuthConfig tells the credential provider where to look for an
// authorized-user token.
type AuthConfig struct {
	CredentialsEnv string // env var holding authorized-user JSON
	TokenFile      string // fallback token file path
}

// YouTubeConfig contains upstream API configuration.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type YouTubeConfig struct {
	ChannelID        string // analytics scope; empty means the authorized channel
	MaxResults       int64  // listing cap per pass
	AnalyticsStart   string // start date of the analytics window, YYYY-MM-DD
	MaxFilterLength  int    // serialized analytics filter cap, characters
	MaxFilterVideos  int    // id cap applied when the filter would overflow
	DailyQuotaLimit  int
	PerItemFallback  bool // explicit degraded mode: per-video analytics queries
	PadMinutes       bool // format durations as MM:SS instead of M:SS
}

// CacheConfig contains cache store configuration.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type CacheConfig struct {
	Backend  string // "file" or "redis"
	Dir      string
	RedisURL string
	TTL      time.Duration // entry freshness window
	SweepAge time.Duration // age past which entries are removed for any scope
}

// DemoConfig controls the canned-data fallback used when the listing source
// is unavailable.
type DemoConfig struct {
	Enabled bool
}

// APIConfig contains API surface configuration.
type APIConfig struct {
	Keys []string // optional; empty disables API-key auth
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level string
	File  string
}

// Load loads configuration from file and environment variables.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvPrefix("APP")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use defaults and env vars
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	// Server
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.shutdowntimeout", 30*time.Second)

	// Auth
	viper.SetDefault("auth.credentialsenv", "GOOGLE_CREDENTIALS")
	viper.SetDefault("auth.tokenfile", "token.json")

	// YouTube
	viper.SetDefault("youtube.channelid", "")
	viper.SetDefault("youtube.maxresults", 50)
	viper.SetDefault("youtube.analyticsstart", "2025-01-01")
	viper.SetDefault("youtube.maxfilterlength", 1500)
	viper.SetDefault("youtube.maxfiltervideos", 100)
	viper.SetDefault("youtube.dailyquotalimit", 10000)
	viper.SetDefault("youtube.peritemfallback", false)
	viper.SetDefault("youtube.padminutes", false)

	// Cache
	viper.SetDefault("cache.backend", "file")
	viper.SetDefault("cache.dir", "analytics_cache")
	viper.SetDefault("cache.redisurl", "")
	viper.SetDefault("cache.ttl", 6*time.Hour)
	viper.SetDefault("cache.sweepage", 24*time.Hour)

	// Demo
	viper.SetDefault("demo.enabled", false)

	// Logging
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.file", "")
}
