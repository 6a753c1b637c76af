package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/dgallion1/gymscore/internal/view"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "RESULTS_URL", "FETCH_TIMEOUT", "STATS_WINDOW", "CONTAINER_ID", "LAYOUT", "PAGE_TITLE", "PAGE_NOTICE", "ALLROUND_LABEL", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.Port != "8090" {
		t.Errorf("expected port 8090, got %q", cfg.Port)
	}
	if cfg.ResultsURL != DefaultResultsURL {
		t.Errorf("expected default results url, got %q", cfg.ResultsURL)
	}
	if cfg.FetchTimeout != 15*time.Second {
		t.Errorf("expected 15s timeout, got %v", cfg.FetchTimeout)
	}
	if cfg.ContainerID != "tables" {
		t.Errorf("expected container tables, got %q", cfg.ContainerID)
	}
	if cfg.ViewLayout() != view.LayoutTabs {
		t.Errorf("expected tabs layout, got %q", cfg.Layout)
	}
	if cfg.AllroundLabel != "Mångkamp" {
		t.Errorf("expected Mångkamp label, got %q", cfg.AllroundLabel)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("expected info level, got %v", cfg.LogLevel)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("RESULTS_URL", "http://localhost:8000/results.json")
	t.Setenv("FETCH_TIMEOUT", "3s")
	t.Setenv("STATS_WINDOW", "-1m")
	t.Setenv("LAYOUT", "sections")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()
	if cfg.Port != "9000" || cfg.ResultsURL != "http://localhost:8000/results.json" {
		t.Errorf("unexpected overrides: %+v", cfg)
	}
	if cfg.FetchTimeout != 3*time.Second {
		t.Errorf("expected 3s, got %v", cfg.FetchTimeout)
	}
	if cfg.StatsWindow != time.Hour {
		t.Errorf("expected negative window to fall back to 1h, got %v", cfg.StatsWindow)
	}
	if cfg.ViewLayout() != view.LayoutSections {
		t.Errorf("expected sections, got %q", cfg.Layout)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("expected debug, got %v", cfg.LogLevel)
	}
}

func TestValidate(t *testing.T) {
	base := Config{ResultsURL: DefaultResultsURL, Layout: "tabs", ContainerID: "tables"}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"relative url", func(c *Config) { c.ResultsURL = "/results.json" }, true},
		{"ftp url", func(c *Config) { c.ResultsURL = "ftp://example.com/r.json" }, true},
		{"unknown layout", func(c *Config) { c.Layout = "grid" }, true},
		{"empty container", func(c *Config) { c.ContainerID = "" }, true},
		{"container with space", func(c *Config) { c.ContainerID = "my tables" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("expected error=%v, got %v", tt.wantErr, err)
			}
		})
	}
}
