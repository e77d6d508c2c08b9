// Package config holds process-wide constants and flags for the tlc
// driver: file extensions, backend names, and the CLI's global mode
// switches.
package config

// Version is the current tlc version, set at build time via -ldflags.
var Version = "0.1.0"

// SourceFileExt is the extension for a YAML-serialized Program, the
// interchange format an upstream front end delivers to this module.
const SourceFileExt = ".tlc.yaml"

// Backend names accepted by -backend.
const (
	BackendText     = "text"
	BackendGorgonia = "gorgonia"
)

// Verbose enables extra diagnostic logging; set once at startup from -v.
var Verbose = false

// NoColor disables ANSI color in console logging; set from -no-color.
// logger.Init separately falls back to uncolored JSON output when stderr
// is not a terminal, without changing this flag.
var NoColor = false
