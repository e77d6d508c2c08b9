package pipeline

import "github.com/tensorc/tlc/internal/codegen/netgen"

// NetGenProcessor runs GraphCodeGen over the transformed assignment list,
// emitting through ctx.Emitter, then captures the emitter's rendered text.
type NetGenProcessor struct{}

func (NetGenProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Err != nil {
		return ctx
	}

	assignments := make([]netgen.Assignment, len(ctx.Assignments))
	for i, a := range ctx.Assignments {
		assignments[i] = netgen.Assignment{LHS: a.LHS, RHS: a.RHS}
	}

	gen := netgen.New(ctx.Emitter)
	if err := gen.Run(assignments); err != nil {
		return ctx.fail(err)
	}

	if stringer, ok := ctx.Emitter.(interface{ String() string }); ok {
		ctx.Output = stringer.String()
	}
	return ctx
}
