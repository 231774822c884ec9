// Command artgrid is a terminal data grid for the Art Institute of Chicago
// artworks API: browse pages, and bulk-select the first N unique artworks
// across pages.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/caarlos0/env/v11"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rkoenig/artic-client/internal/tui"
	"github.com/rkoenig/artic-client/pkg/artworks"
	"github.com/rkoenig/artic-client/pkg/client"
	"github.com/rkoenig/artic-client/pkg/grid"
	"github.com/rkoenig/artic-client/pkg/logging"
	"github.com/rkoenig/artic-client/pkg/selector"
)

// config holds the runtime configuration, parsed from the environment.
type config struct {
	BaseURL   string `env:"ARTGRID_BASE_URL" envDefault:"https://api.artic.edu/api/v1" validate:"url"`
	UserAgent string `env:"ARTGRID_USER_AGENT" envDefault:"artgrid/0.1.0 (github.com/rkoenig/artic-client)" validate:"required"`

	PageLimit         int     `env:"ARTGRID_PAGE_LIMIT" envDefault:"12" validate:"gt=0,lte=100"`
	RequestsPerSecond float64 `env:"ARTGRID_RPS" envDefault:"5" validate:"gte=0"`

	// ContinueOnShortPage enables the corrected selection walk that keeps
	// advancing when duplicates cut a page short.
	ContinueOnShortPage bool `env:"ARTGRID_CONTINUE_ON_SHORT_PAGE" envDefault:"false"`

	// LogFile keeps structured logs off the terminal the grid draws on.
	LogFile  string `env:"ARTGRID_LOG_FILE" envDefault:"artgrid.log"`
	LogLevel string `env:"ARTGRID_LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	// MetricsAddr serves Prometheus metrics when set, e.g. ":9090".
	MetricsAddr string `env:"ARTGRID_METRICS_ADDR" envDefault:""`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "artgrid: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("validate configuration: %w", err)
	}

	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	logger := logging.Setup(logging.Config{
		Level:  logging.LogLevel(cfg.LogLevel),
		Output: logFile,
	})

	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		go func() {
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				logger.Error().Err(err).Str("addr", cfg.MetricsAddr).Msg("Metrics server failed")
			}
		}()
		logger.Info().Str("addr", cfg.MetricsAddr).Msg("Serving Prometheus metrics")
	}

	apiClient, err := client.New(client.Config{
		BaseURL:           cfg.BaseURL,
		UserAgent:         cfg.UserAgent,
		RequestsPerSecond: cfg.RequestsPerSecond,
	})
	if err != nil {
		return fmt.Errorf("create API client: %w", err)
	}

	fetcher := artworks.NewFetcher(apiClient, cfg.PageLimit)

	bridge := tui.NewBridge()
	driver, err := grid.NewDriver(fetcher, bridge, bridge, selector.Options{
		ContinueOnShortPage: cfg.ContinueOnShortPage,
	})
	if err != nil {
		return fmt.Errorf("create grid driver: %w", err)
	}

	logger.Info().
		Str("base_url", cfg.BaseURL).
		Int("page_limit", cfg.PageLimit).
		Bool("continue_on_short_page", cfg.ContinueOnShortPage).
		Msg("Starting artgrid")

	program := tea.NewProgram(tui.New(driver, bridge, cfg.PageLimit), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run UI: %w", err)
	}

	return nil
}
