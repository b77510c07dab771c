// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// BuildingsFile is the path of the campus buildings GeoJSON collection.
	BuildingsFile string `koanf:"buildings_file"`

	// OccupancyFile is the path of the ten-minute occupancy CSV table.
	OccupancyFile string `koanf:"occupancy_file"`

	// ExcludedDates lists YYYY-MM-DD dates dropped at load time
	// (known-incomplete days in the source feed).
	ExcludedDates []string `koanf:"excluded_dates"`

	// Aliases adds shorthand query terms on top of the built-in table,
	// mapping a term to an official-name fragment.
	Aliases map[string]string `koanf:"aliases"`

	// WatchDataFiles enables reloading when a data file changes on disk.
	WatchDataFiles bool `koanf:"watch_data_files"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use and currently
// unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:       "info",
		Addr:           ":8080",
		BuildingsFile:  "data/campus_buildings_categories.geojson",
		OccupancyFile:  "data/ten_min_occupancy_summary.csv",
		ExcludedDates:  []string{"2025-04-13"},
		Aliases:        map[string]string{},
		WatchDataFiles: true,
	}
}
