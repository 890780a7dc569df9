// Package app holds the CLI-wide configuration the cobra commands in
// cmd/vibenes bind their flags to, adapted from the teacher's
// internal/app/config.go down to what a headless, deterministic emulator
// core actually needs (no window/video/input-mapping knobs, since those
// live in pkg/gui's own defaults).
package app

import "github.com/vibenes/core/pkg/logger"

// Config is shared by every subcommand's flag set.
type Config struct {
	// LogLevel is one of "off", "error", "warn", "info", "debug".
	LogLevel string
	// LogFile is a path to append logs to; empty means stdout.
	LogFile string

	// Frames is how many frames `headless` runs before writing its
	// save-state and exiting.
	Frames int
	// Out is the save-state path `headless` writes to.
	Out string
}

// NewConfig returns the default configuration before flags are parsed.
func NewConfig() *Config {
	return &Config{
		LogLevel: "info",
		LogFile:  "",
		Frames:   60,
		Out:      "snapshot.bin",
	}
}

// ApplyLogging configures the process-wide logger per the parsed flags.
func (c *Config) ApplyLogging() error {
	level := logger.GetLevelFromString(c.LogLevel)
	if c.LogFile == "" {
		logger.Initialize(level, nil)
		return nil
	}
	f, err := openLogFile(c.LogFile)
	if err != nil {
		return err
	}
	logger.Initialize(level, f)
	return nil
}
