package config

import (
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Listing.DefaultLimit != 10 {
		t.Errorf("Expected default limit 10, got %d", cfg.Listing.DefaultLimit)
	}
	if cfg.Listing.MaxLimit != 100 {
		t.Errorf("Expected max limit 100, got %d", cfg.Listing.MaxLimit)
	}
	if cfg.Listing.QueryTimeout != 10*time.Second {
		t.Errorf("Expected query timeout 10s, got %s", cfg.Listing.QueryTimeout)
	}
	if cfg.RateLimit.Enabled {
		t.Error("Expected rate limiting disabled by default")
	}
	if cfg.Redis.BreakerThreshold != 5 || cfg.Redis.BreakerCooldown != 30*time.Second {
		t.Errorf("Unexpected breaker defaults: %d, %s", cfg.Redis.BreakerThreshold, cfg.Redis.BreakerCooldown)
	}
	if cfg.App.BodyLimit != 60*1024*1024 {
		t.Errorf("Expected 60MiB body limit, got %d", cfg.App.BodyLimit)
	}
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("LISTING_MAX_LIMIT", "50")
	t.Setenv("LISTING_QUERY_TIMEOUT", "2s")
	t.Setenv("CORS_ORIGIN", "https://a.example, ,https://b.example")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !cfg.IsProduction() {
		t.Error("Expected production environment")
	}
	if cfg.Listing.MaxLimit != 50 {
		t.Errorf("Expected max limit 50, got %d", cfg.Listing.MaxLimit)
	}
	if cfg.Listing.QueryTimeout != 2*time.Second {
		t.Errorf("Expected query timeout 2s, got %s", cfg.Listing.QueryTimeout)
	}
	if len(cfg.CORS.Origins) != 2 || cfg.CORS.Origins[1] != "https://b.example" {
		t.Errorf("Unexpected origins: %v", cfg.CORS.Origins)
	}
}

func TestLoadConfig_RejectsInconsistentLimits(t *testing.T) {
	t.Setenv("LISTING_DEFAULT_LIMIT", "20")
	t.Setenv("LISTING_MAX_LIMIT", "5")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("Expected error when max limit is below default limit")
	}
}

func TestGetEnvHelpers_FallBackOnGarbage(t *testing.T) {
	t.Setenv("X_INT", "abc")
	t.Setenv("X_BOOL", "maybe")
	t.Setenv("X_DUR", "soon")

	if got := getEnvAsInt("X_INT", 7); got != 7 {
		t.Errorf("Expected 7, got %d", got)
	}
	if got := getEnvAsBool("X_BOOL", true); !got {
		t.Error("Expected fallback true")
	}
	if got := getEnvAsDuration("X_DUR", time.Minute); got != time.Minute {
		t.Errorf("Expected 1m, got %s", got)
	}
}
