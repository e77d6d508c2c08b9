package pipeline

import "github.com/tensorc/tlc/internal/codegen/direct"

// DirectProcessor runs DirectCodeGen over a successfully analyzed program.
type DirectProcessor struct{}

func (DirectProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Err != nil {
		return ctx
	}
	gen := direct.New(ctx.Sema)
	if err := gen.Run(ctx.Program); err != nil {
		return ctx.fail(err)
	}
	ctx.DirectAssignments = gen.Assignments
	ctx.Builder = gen.Builder
	return ctx
}
