package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.YouTube.MaxResults != 50 {
		t.Errorf("YouTube.MaxResults = %d, want 50", cfg.YouTube.MaxResults)
	}
	if cfg.YouTube.MaxFilterLength != 1500 {
		t.Errorf("YouTube.MaxFilterLength = %d, want 1500", cfg.YouTube.MaxFilterLength)
	}
	if cfg.YouTube.MaxFilterVideos != 100 {
		t.Errorf("YouTube.MaxFilterVideos = %d, want 100", cfg.YouTube.MaxFilterVideos)
	}
	if cfg.YouTube.PerItemFallback {
		t.Error("YouTube.PerItemFallback = true, want false by default")
	}
	if cfg.Cache.Backend != "file" {
		t.Errorf("Cache.Backend = %q, want file", cfg.Cache.Backend)
	}
	if cfg.Cache.TTL != 6*time.Hour {
		t.Errorf("Cache.TTL = %v, want 6h", cfg.Cache.TTL)
	}
	if cfg.Cache.SweepAge != 24*time.Hour {
		t.Errorf("Cache.SweepAge = %v, want 24h", cfg.Cache.SweepAge)
	}
	if cfg.Demo.Enabled {
		t.Error("Demo.Enabled = true, want false by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
	if cfg.Auth.CredentialsEnv != "GOOGLE_CREDENTIALS" {
		t.Errorf("Auth.CredentialsEnv = %q, want GOOGLE_CREDENTIALS", cfg.Auth.CredentialsEnv)
	}
	if cfg.Auth.TokenFile != "token.json" {
		t.Errorf("Auth.TokenFile = %q, want token.json", cfg.Auth.TokenFile)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	viper.Reset()
	t.Setenv("APP_SERVER_PORT", "9090")
	t.Setenv("APP_CACHE_BACKEND", "redis")

	// AutomaticEnv does not surface nested keys through Unmarshal unless
	// they are bound, so bind the ones under test explicitly.
	viper.SetEnvPrefix("APP")
	_ = viper.BindEnv("server.port", "APP_SERVER_PORT")
	_ = viper.BindEnv("cache.backend", "APP_CACHE_BACKEND")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Cache.Backend != "redis" {
		t.Errorf("Cache.Backend = %q, want redis", cfg.Cache.Backend)
	}
}
