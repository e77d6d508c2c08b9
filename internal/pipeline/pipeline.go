// Package pipeline drives the compiler's five stages (Sema, DirectCodeGen,
// ExprTree transformers, GraphCodeGen, emission) as an ordered list of
// Processors over one shared PipelineContext, the same stage-list shape
// used for a parse/analyze/evaluate front end.
package pipeline

import "github.com/tensorc/tlc/internal/logger"

// Processor runs one pipeline stage, reading and writing ctx in place (or
// returning a replacement) and returning it for the next stage.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline is an ordered list of stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes every stage in order. Each stage is responsible for
// no-oping once ctx.Err is set, since the compiler halts at its first
// diagnostic rather than collecting a batch.
func (p *Pipeline) Run(initial *PipelineContext) *PipelineContext {
	ctx := initial
	for _, proc := range p.processors {
		stage := logger.StageName(proc)
		logger.Log.Debug().Str("stage", stage).Msg("pipeline stage start")
		ctx = proc.Process(ctx)
		if ctx.Err != nil {
			logger.Log.Debug().Str("stage", stage).Str("code", string(ctx.Err.Code)).Msg("pipeline stage failed")
		}
	}
	return ctx
}
