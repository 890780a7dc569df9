// Package logger provides the process-wide, per-subsystem-gated logger used
// throughout VibeNES. It keeps the teacher's LogCPU/LogPPU/LogAPU/LogMapper
// call-site shape but backs it with charmbracelet/log instead of raw
// fmt.Fprintf, so levels, timestamps, and styling come from a real logging
// library rather than a hand-rolled one.
package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Level mirrors charmbracelet/log's levels so callers need not import it
// directly.
type Level = log.Level

const (
	LevelDebug = log.DebugLevel
	LevelInfo  = log.InfoLevel
	LevelWarn  = log.WarnLevel
	LevelError = log.ErrorLevel
	LevelOff   = log.FatalLevel + 1
)

type subsystemGate struct {
	cpu    bool
	ppu    bool
	apu    bool
	mapper bool
}

var (
	base  *log.Logger
	gates = subsystemGate{cpu: true}

	cpuLog    *log.Logger
	ppuLog    *log.Logger
	apuLog    *log.Logger
	mapperLog *log.Logger
)

func init() {
	Initialize(LevelInfo, os.Stdout)
}

// Initialize (re)configures the global logger. A nil writer defaults to
// os.Stdout, matching the teacher's "empty filename means stdout" rule.
func Initialize(level Level, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	base = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.000",
	})
	base.SetLevel(level)

	cpuLog = base.With("subsystem", "cpu")
	ppuLog = base.With("subsystem", "ppu")
	apuLog = base.With("subsystem", "apu")
	mapperLog = base.With("subsystem", "mapper")
}

// SetLevel adjusts the active log level without recreating writers.
func SetLevel(level Level) {
	if base != nil {
		base.SetLevel(level)
	}
}

// SetCPULogging enables or disables CPU instruction tracing.
func SetCPULogging(enabled bool) { gates.cpu = enabled }

// SetPPULogging enables or disables PPU dot-level tracing.
func SetPPULogging(enabled bool) { gates.ppu = enabled }

// SetAPULogging enables or disables APU register tracing.
func SetAPULogging(enabled bool) { gates.apu = enabled }

// SetMapperLogging enables or disables mapper bank/IRQ tracing.
func SetMapperLogging(enabled bool) { gates.mapper = enabled }

// LogCPU logs a CPU-subsystem debug line when CPU tracing is enabled.
func LogCPU(format string, args ...interface{}) {
	if gates.cpu {
		cpuLog.Debugf(format, args...)
	}
}

// LogPPU logs a PPU-subsystem debug line when PPU tracing is enabled.
func LogPPU(format string, args ...interface{}) {
	if gates.ppu {
		ppuLog.Debugf(format, args...)
	}
}

// LogAPU logs an APU-subsystem debug line when APU tracing is enabled.
func LogAPU(format string, args ...interface{}) {
	if gates.apu {
		apuLog.Debugf(format, args...)
	}
}

// LogMapper logs a mapper-subsystem debug line when mapper tracing is enabled.
func LogMapper(format string, args ...interface{}) {
	if gates.mapper {
		mapperLog.Debugf(format, args...)
	}
}

// LogInfo logs a general informational line.
func LogInfo(format string, args ...interface{}) { base.Infof(format, args...) }

// LogWarn logs a warning line.
func LogWarn(format string, args ...interface{}) { base.Warnf(format, args...) }

// LogError logs an error line.
func LogError(format string, args ...interface{}) { base.Errorf(format, args...) }

// GetLevelFromString converts a CLI-facing level name to a Level, defaulting
// to LevelInfo on an unrecognized string.
func GetLevelFromString(s string) Level {
	switch s {
	case "off":
		return LevelOff
	case "error":
		return LevelError
	case "warn":
		return LevelWarn
	case "info":
		return LevelInfo
	case "debug", "trace":
		return LevelDebug
	default:
		return LevelInfo
	}
}
