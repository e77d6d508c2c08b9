package pipeline

import (
	"github.com/tensorc/tlc/internal/ast"
	"github.com/tensorc/tlc/internal/codegen/direct"
	"github.com/tensorc/tlc/internal/codegen/transform"
	"github.com/tensorc/tlc/internal/diag"
	"github.com/tensorc/tlc/internal/emit"
	"github.com/tensorc/tlc/internal/exprtree"
	"github.com/tensorc/tlc/internal/sema"
)

// PipelineContext is the single value threaded through every stage. Unlike
// a diagnostics-collecting frontend, the compiler core halts at its first
// error (SPEC_FULL.md's no-partial-output rule), so Err is singular: once
// set, every later stage's Process is a no-op.
type PipelineContext struct {
	FilePath string
	Program  *ast.Program

	Sema    *sema.Result
	Builder *exprtree.Builder

	DirectAssignments []direct.Assignment
	Assignments       []transform.Assignment

	Emitter emit.Emitter
	Output  string

	Err *diag.Error
}

func (ctx *PipelineContext) fail(err *diag.Error) *PipelineContext {
	ctx.Err = err
	return ctx
}
