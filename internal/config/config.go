// Package config loads runtime settings from environment variables,
// grounded on the teacher's own config.go: plain os.Getenv reads with
// typed defaults, no flag-parsing library involved (flags are a CLI-layer
// concern, handled in cmd/codeatlas via cobra).
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds every tunable the extraction pipeline and query engine
// read outside of command-line flags.
type Config struct {
	Workers       int
	OutputDir     string
	OverviewDepth int
}

// Load reads a .env file if present (ignored if absent — godotenv.Load
// returns an error for a missing file that callers are expected to
// tolerate) and then environment variables, falling back to defaults for
// anything unset or unparsable.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Workers:       0, // 0 means "let the driver pick runtime.NumCPU()"
		OutputDir:     ".codeatlas",
		OverviewDepth: 3,
	}

	if v := os.Getenv("CODEATLAS_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Workers = n
		}
	}
	if v := os.Getenv("CODEATLAS_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("CODEATLAS_OVERVIEW_DEPTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.OverviewDepth = n
		}
	}

	return cfg
}
