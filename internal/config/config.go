package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/dgallion1/gymscore/internal/view"
)

// DefaultResultsURL is the document published by the TeamGym scraper.
const DefaultResultsURL = "https://datpengu.github.io/TeamGymScore/results.json"

type Config struct {
	Port string

	// Upstream document
	ResultsURL   string
	FetchTimeout time.Duration
	StatsWindow  time.Duration

	// Page
	ContainerID   string
	Layout        string
	PageTitle     string
	PageNotice    string
	AllroundLabel string

	LogLevel slog.Level
}

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first without overriding set variables.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port: envOr("PORT", "8090"),

		ResultsURL:   envOr("RESULTS_URL", DefaultResultsURL),
		FetchTimeout: envDuration("FETCH_TIMEOUT", 15*time.Second),
		StatsWindow:  envDuration("STATS_WINDOW", 1*time.Hour),

		ContainerID:   envOr("CONTAINER_ID", "tables"),
		Layout:        envOr("LAYOUT", string(view.LayoutTabs)),
		PageTitle:     envOr("PAGE_TITLE", "TeamGym Results"),
		PageNotice:    os.Getenv("PAGE_NOTICE"),
		AllroundLabel: envOr("ALLROUND_LABEL", view.DefaultAllroundLabel),

		LogLevel: envLevel("LOG_LEVEL", slog.LevelInfo),
	}

	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 15 * time.Second
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	u, err := url.Parse(c.ResultsURL)
	if err != nil {
		return fmt.Errorf("RESULTS_URL is invalid: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("RESULTS_URL must be an absolute http(s) URL, got %q", c.ResultsURL)
	}
	if _, err := view.ParseLayout(c.Layout); err != nil {
		return fmt.Errorf("LAYOUT: %w", err)
	}
	if c.ContainerID == "" || strings.ContainsAny(c.ContainerID, " \t\n") {
		return fmt.Errorf("CONTAINER_ID must be a non-empty id without whitespace, got %q", c.ContainerID)
	}
	return nil
}

// ViewLayout returns the validated layout.
func (c Config) ViewLayout() view.Layout {
	l, err := view.ParseLayout(c.Layout)
	if err != nil {
		return view.LayoutTabs
	}
	return l
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		if n, err := strconv.Atoi(v); err == nil {
			return time.Duration(n) * time.Second
		}
	}
	return fallback
}

func envLevel(key string, fallback slog.Level) slog.Level {
	if v := os.Getenv(key); v != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(v)); err == nil {
			return l
		}
	}
	return fallback
}
