package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Environment != "development" {
		t.Errorf("environment = %q, want development", cfg.Environment)
	}
	if cfg.LogLevel != "" {
		t.Errorf("log level = %q, want empty for environment fallback", cfg.LogLevel)
	}
	if cfg.HTTP.Port != 8080 {
		t.Errorf("http port = %d, want 8080", cfg.HTTP.Port)
	}
	if cfg.Listings.SweepInterval != time.Hour {
		t.Errorf("sweep interval = %v, want 1h", cfg.Listings.SweepInterval)
	}
	if cfg.Listings.DefaultDurationDays != 30 {
		t.Errorf("default duration days = %d, want 30", cfg.Listings.DefaultDurationDays)
	}
	if cfg.Analytics.DedupWindow != 0 {
		t.Errorf("dedup window = %v, want disabled by default", cfg.Analytics.DedupWindow)
	}
	if cfg.Analytics.TopLimit != 5 || cfg.Analytics.RecentLimit != 10 || cfg.Analytics.SeriesDays != 7 {
		t.Errorf("analytics limits = %+v, want 5/10/7", cfg.Analytics)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HOMEFIND_ENVIRONMENT", "production")
	t.Setenv("HOMEFIND_LISTINGS.SWEEPINTERVAL", "30m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Environment != "production" {
		t.Errorf("environment = %q, want production from env", cfg.Environment)
	}
}
