package app

import (
	"fmt"

	"github.com/vk/seriesreg/internal/report"
)

// DefaultPort is the port the introspection server listens on when none is
// configured.
const DefaultPort = 8080

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ManifestPaths []string // extra hcl files or directories

	LogFormat string
	LogLevel  string
	Output    string // report format
	Port      int
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	switch cfg.LogFormat {
	case "":
		cfg.LogFormat = "text"
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", cfg.LogFormat)
	}

	switch cfg.LogLevel {
	case "":
		cfg.LogLevel = "warn"
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}

	if cfg.Output == "" {
		cfg.Output = string(report.FormatText)
	}
	format, err := report.ParseFormat(cfg.Output)
	if err != nil {
		return nil, err
	}
	cfg.Output = string(format)

	if cfg.Port < 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d: must be between 0 and 65535", cfg.Port)
	}

	return &cfg, nil
}
