package main

import (
	"testing"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

func parseConfig(t *testing.T) (config, error) {
	t.Helper()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	return cfg, validator.New().Struct(cfg)
}

func TestConfig_Defaults(t *testing.T) {
	cfg, err := parseConfig(t)
	if err != nil {
		t.Fatalf("Config with defaults failed: %v", err)
	}

	if cfg.BaseURL != "https://api.artic.edu/api/v1" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.PageLimit != 12 {
		t.Errorf("PageLimit = %d, want 12", cfg.PageLimit)
	}
	if cfg.ContinueOnShortPage {
		t.Error("ContinueOnShortPage should default to false")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestConfig_InvalidPageLimit(t *testing.T) {
	t.Setenv("ARTGRID_PAGE_LIMIT", "0")

	if _, err := parseConfig(t); err == nil {
		t.Error("Expected validation error for zero page limit")
	}
}

func TestConfig_InvalidLogLevel(t *testing.T) {
	t.Setenv("ARTGRID_LOG_LEVEL", "verbose")

	if _, err := parseConfig(t); err == nil {
		t.Error("Expected validation error for unknown log level")
	}
}

func TestConfig_InvalidBaseURL(t *testing.T) {
	t.Setenv("ARTGRID_BASE_URL", "not a url")

	if _, err := parseConfig(t); err == nil {
		t.Error("Expected validation error for malformed base URL")
	}
}

func TestConfig_Overrides(t *testing.T) {
	t.Setenv("ARTGRID_PAGE_LIMIT", "25")
	t.Setenv("ARTGRID_CONTINUE_ON_SHORT_PAGE", "true")

	cfg, err := parseConfig(t)
	if err != nil {
		t.Fatalf("Config failed: %v", err)
	}

	if cfg.PageLimit != 25 {
		t.Errorf("PageLimit = %d, want 25", cfg.PageLimit)
	}
	if !cfg.ContinueOnShortPage {
		t.Error("ContinueOnShortPage should be true")
	}
}
