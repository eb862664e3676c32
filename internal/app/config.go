package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// PlotPath is a plotfile or a directory of plotfiles.
	PlotPath string
	// OutDir receives rendered artifacts.
	OutDir string

	// Separator is the datablock delimiter for plots that do not set one.
	Separator string
	// Precision is the significant-digit count for float cells. 0 keeps
	// the dataset default.
	Precision int
	// Workers bounds concurrent plot rendering.
	Workers int

	LogFormat string
	LogLevel  string

	// Echo prints each generated script before it runs.
	Echo bool
	// KeepScripts persists each generated script in the working directory.
	KeepScripts bool
	// Watch keeps the process alive, re-rendering when plotfiles change.
	Watch bool
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.PlotPath == "" {
		return nil, errors.New("PlotPath is a required configuration field and cannot be empty")
	}
	if cfg.Precision < 0 {
		return nil, errors.New("Precision must not be negative")
	}
	return &cfg, nil
}
