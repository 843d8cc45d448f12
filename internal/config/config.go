package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Input data.
	ShapefilePath string
	WorkbookPath  string
	SheetPrefix   string
	StateFP       string
	StateName     string
	FirstYear     int
	LastYear      int
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	firstYear, err := parseYear("DASHBOARD_FIRST_YEAR", 2020)
	if err != nil {
		return nil, err
	}
	lastYear, err := parseYear("DASHBOARD_LAST_YEAR", 2024)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		ShapefilePath: sharedcfg.EnvOrDefault("SHAPEFILE_PATH", "tn_counties/tl_2021_us_county/tl_2021_us_county.shp"),
		WorkbookPath:  sharedcfg.EnvOrDefault("WORKBOOK_PATH", "data/pass-rates.xlsx"),
		SheetPrefix:   sharedcfg.EnvOrDefault("SHEET_PREFIX", "Heatmap-"),
		StateFP:       sharedcfg.EnvOrDefault("STATE_FP", "47"),
		StateName:     sharedcfg.EnvOrDefault("STATE_NAME", "Tennessee"),
		FirstYear:     firstYear,
		LastYear:      lastYear,
	}

	if cfg.ShapefilePath == "" {
		return nil, errors.New("SHAPEFILE_PATH is required")
	}
	if cfg.WorkbookPath == "" {
		return nil, errors.New("WORKBOOK_PATH is required")
	}
	if cfg.StateFP == "" {
		return nil, errors.New("STATE_FP is required")
	}
	if cfg.LastYear < cfg.FirstYear {
		return nil, fmt.Errorf("DASHBOARD_LAST_YEAR (%d) is before DASHBOARD_FIRST_YEAR (%d)", cfg.LastYear, cfg.FirstYear)
	}

	return cfg, nil
}

// Years lists every selectable year, oldest first.
func (c *Config) Years() []int {
	years := make([]int, 0, c.LastYear-c.FirstYear+1)
	for y := c.FirstYear; y <= c.LastYear; y++ {
		years = append(years, y)
	}
	return years
}

func parseYear(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1900 || n > 9999 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return n, nil
}
