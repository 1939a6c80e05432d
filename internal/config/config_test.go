package config

import (
	"testing"
)

func validConfig() Config {
	return Config{
		Database: DatabaseConfig{DSN: "postgres://u:p@localhost:5432/phoenix"},
		Cache:    CacheConfig{Capacity: 1000, NumShards: 8},
		Assets:   AssetsConfig{LogoHost: "https://s3.tosdr.org/logos", ThemeDir: "themes", Theme: "crisp"},
		Phoenix:  PhoenixConfig{URL: "https://api.tosdr.org", APIEndpoint: "/v1"},
		Log:      LogConfig{Level: "info", Format: "json"},
	}
}

func TestValidate_OK(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_CacheCapacity(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Cache.Capacity = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero cache capacity")
	}
}

func TestValidate_LogoHostTrailingSlash(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Assets.LogoHost = "https://s3.tosdr.org/logos/"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for trailing slash in logo host")
	}
}

func TestValidate_EndpointMissingSlash(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Phoenix.APIEndpoint = "v1"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for endpoint without leading slash")
	}
}

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("DATABASE_DSN", "postgres://u:p@localhost:5432/phoenix")
	t.Setenv("ASSETS_LOGO_HOST", "https://s3.tosdr.org/logos")
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Database.MaxConns != 25 {
		t.Errorf("max_conns default: got %d, want 25", cfg.Database.MaxConns)
	}
	if cfg.Cache.Capacity != 100000 {
		t.Errorf("cache capacity default: got %d, want 100000", cfg.Cache.Capacity)
	}
	if cfg.Phoenix.APIEndpoint != "/v1" {
		t.Errorf("api endpoint default: got %q, want %q", cfg.Phoenix.APIEndpoint, "/v1")
	}
}
