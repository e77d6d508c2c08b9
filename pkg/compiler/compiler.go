// Package compiler exposes the whole pipeline, Sema through emission, as a
// single Compile call: the public surface cmd/tlc (and any embedder) uses.
package compiler

import (
	"fmt"

	"github.com/tensorc/tlc/internal/ast"
	"github.com/tensorc/tlc/internal/cache"
	"github.com/tensorc/tlc/internal/config"
	"github.com/tensorc/tlc/internal/diag"
	"github.com/tensorc/tlc/internal/emit"
	"github.com/tensorc/tlc/internal/pipeline"
	"github.com/tensorc/tlc/internal/token"
)

// Options configures one compile run.
type Options struct {
	// Backend selects the Emitter: config.BackendText or config.BackendGorgonia.
	Backend string
	// ModulePrefix is TextEmitter's import alias (ignored for Gorgonia).
	ModulePrefix string
	// Cache, if non-nil, is consulted before compiling and updated after.
	Cache *cache.Cache
	// Source is the raw bytes compiled, used only to derive the cache key.
	Source []byte
}

// Result is a finished compile: exactly one of Output or Err is set.
type Result struct {
	Output string
	Err    *diag.Error
}

// Compile runs every stage over prog and returns the rendered program
// text, or the first diagnostic raised.
func Compile(prog *ast.Program, opts Options) *Result {
	var key string
	if opts.Cache != nil && opts.Source != nil {
		key = cache.Key(opts.Source, opts.Backend)
		if out, hit, err := opts.Cache.Lookup(key); err == nil && hit {
			return &Result{Output: out}
		}
	}

	emitter, err := newEmitter(opts)
	if err != nil {
		return &Result{Err: diag.Internal(diag.ErrIUnknownBackend, token.Position{},
			"compiler: %s", err)}
	}

	ctx := &pipeline.PipelineContext{
		FilePath: prog.File,
		Program:  prog,
		Emitter:  emitter,
	}

	p := pipeline.New(
		pipeline.SemaProcessor{},
		pipeline.DirectProcessor{},
		pipeline.TransformProcessor{},
		pipeline.DeclareProcessor{},
		pipeline.NetGenProcessor{},
	)
	ctx = p.Run(ctx)

	if ctx.Err != nil {
		return &Result{Err: ctx.Err}
	}

	if opts.Cache != nil && opts.Source != nil {
		_ = opts.Cache.Store(key, ctx.Output)
	}
	return &Result{Output: ctx.Output}
}

func newEmitter(opts Options) (emit.Emitter, error) {
	switch opts.Backend {
	case "", config.BackendText:
		prefix := opts.ModulePrefix
		if prefix == "" {
			prefix = "np"
		}
		return emit.NewTextEmitter(prefix), nil
	case config.BackendGorgonia:
		return emit.NewGorgoniaEmitter(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", opts.Backend)
	}
}
