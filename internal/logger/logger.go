// Package logger configures the process-wide zerolog logger: a
// console-friendly writer in an interactive terminal, plain JSON
// otherwise, with verbosity and color controlled by internal/config's
// global flags.
package logger

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/tensorc/tlc/internal/config"
)

// Log is the process-wide logger. Init must run once at startup, after
// flags are parsed, before any stage logs anything.
var Log zerolog.Logger

// Init builds Log from the current config flags and stderr's terminal
// state: a ConsoleWriter when stderr is a terminal and color was not
// explicitly disabled, plain JSON lines otherwise (the shape a CI log
// collector expects).
func Init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level := zerolog.InfoLevel
	if config.Verbose {
		level = zerolog.DebugLevel
	}

	var out zerolog.Logger
	if isatty.IsTerminal(os.Stderr.Fd()) && !config.NoColor {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: config.NoColor}).With().Timestamp().Logger()
	} else {
		out = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	Log = out.Level(level)
}

// StageName derives a short log label for a pipeline processor from its
// concrete type, e.g. "SemaProcessor" for pipeline.SemaProcessor.
func StageName(v any) string {
	name := fmt.Sprintf("%T", v)
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimPrefix(name, "*")
}
