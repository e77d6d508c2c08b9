package pipeline

import "github.com/tensorc/tlc/internal/sema"

// SemaProcessor runs semantic analysis, populating ctx.Sema on success.
type SemaProcessor struct{}

func (SemaProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Err != nil {
		return ctx
	}
	result, err := sema.Analyze(ctx.Program)
	if err != nil {
		return ctx.fail(err)
	}
	ctx.Sema = result
	return ctx
}
