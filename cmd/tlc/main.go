package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/tensorc/tlc/internal/ast"
	"github.com/tensorc/tlc/internal/cache"
	"github.com/tensorc/tlc/internal/config"
	"github.com/tensorc/tlc/internal/hostinspect"
	"github.com/tensorc/tlc/internal/logger"
	"github.com/tensorc/tlc/pkg/compiler"
)

func usage() {
	fmt.Fprintf(os.Stderr, "tlc %s\n", config.Version)
	fmt.Fprintln(os.Stderr, "usage: tlc [-backend text|gorgonia] [-module-prefix name] [-cache path] [-v] [-no-color] <source.tlc.yaml>")
	fmt.Fprintln(os.Stderr, "       tlc inspect-backend [-backend gorgonia] [-dir path]")
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "internal error: %v\n", r)
			os.Exit(1)
		}
	}()

	args := os.Args[1:]
	if len(args) > 0 && args[0] == "inspect-backend" {
		runInspectBackend(args[1:])
		return
	}

	backend := config.BackendText
	modulePrefix := ""
	cachePath := ""
	var sourcePath string

	for i := 0; i < len(args); i++ {
		switch arg := args[i]; {
		case arg == "-backend" || arg == "--backend":
			i++
			if i >= len(args) {
				usage()
				os.Exit(2)
			}
			backend = args[i]
		case arg == "-module-prefix" || arg == "--module-prefix":
			i++
			if i >= len(args) {
				usage()
				os.Exit(2)
			}
			modulePrefix = args[i]
		case arg == "-cache" || arg == "--cache":
			i++
			if i >= len(args) {
				usage()
				os.Exit(2)
			}
			cachePath = args[i]
		case arg == "-v" || arg == "--verbose":
			config.Verbose = true
		case arg == "-no-color" || arg == "--no-color":
			config.NoColor = true
		case arg == "-h" || arg == "--help":
			usage()
			return
		case strings.HasPrefix(arg, "-"):
			fmt.Fprintf(os.Stderr, "unknown flag %q\n", arg)
			usage()
			os.Exit(2)
		default:
			sourcePath = arg
		}
	}

	logger.Init()

	if sourcePath == "" {
		usage()
		os.Exit(2)
	}

	runID := uuid.NewString()
	log := logger.Log.With().Str("run", runID).Str("file", filepath.Base(sourcePath)).Logger()

	data, err := os.ReadFile(sourcePath)
	if err != nil {
		log.Error().Err(err).Msg("reading source")
		os.Exit(1)
	}

	prog, err := ast.LoadYAML(data)
	if err != nil {
		log.Error().Err(err).Msg("decoding program")
		os.Exit(1)
	}
	prog.File = sourcePath

	var c *cache.Cache
	if cachePath != "" {
		c, err = cache.Open(cachePath)
		if err != nil {
			log.Error().Err(err).Msg("opening cache")
			os.Exit(1)
		}
		defer c.Close()
	}

	result := compiler.Compile(prog, compiler.Options{
		Backend:      backend,
		ModulePrefix: modulePrefix,
		Cache:        c,
		Source:       data,
	})

	if result.Err != nil {
		log.Error().Str("code", string(result.Err.Code)).Msg(result.Err.Error())
		fmt.Fprintln(os.Stderr, result.Err.Error())
		os.Exit(1)
	}

	fmt.Print(result.Output)
}

// backendRequirements maps a -backend name to the symbols inspect-backend
// checks for; only a backend whose generated code actually calls into a
// host tensor library needs one.
func backendRequirements(backend string) ([]hostinspect.Requirement, error) {
	switch backend {
	case config.BackendGorgonia:
		return hostinspect.GorgoniaRequirements, nil
	case config.BackendText:
		return nil, fmt.Errorf("backend %q renders plain text and calls no host package", backend)
	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}
}

// runInspectBackend implements `tlc inspect-backend`: it verifies, via
// go/packages, that the configured backend's host dependency still
// exports every symbol that backend's Emitter generates calls to.
func runInspectBackend(args []string) {
	backend := config.BackendGorgonia
	dir := "."

	for i := 0; i < len(args); i++ {
		switch arg := args[i]; {
		case arg == "-backend" || arg == "--backend":
			i++
			if i >= len(args) {
				usage()
				os.Exit(2)
			}
			backend = args[i]
		case arg == "-dir" || arg == "--dir":
			i++
			if i >= len(args) {
				usage()
				os.Exit(2)
			}
			dir = args[i]
		case arg == "-h" || arg == "--help":
			usage()
			return
		default:
			fmt.Fprintf(os.Stderr, "unknown flag %q\n", arg)
			usage()
			os.Exit(2)
		}
	}

	logger.Init()

	reqs, err := backendRequirements(backend)
	if err != nil {
		logger.Log.Error().Err(err).Msg("inspect-backend")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := hostinspect.Check(dir, reqs); err != nil {
		logger.Log.Error().Err(err).Msg("inspect-backend")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("backend %q: every required symbol resolved in %s\n", backend, dir)
}
