package pipeline

import "github.com/tensorc/tlc/internal/symbols"

// DeclareProcessor emits a declareVariable call for every program-level
// variable symbol, in declaration order, before GraphCodeGen emits any
// operation referencing it.
type DeclareProcessor struct{}

func (DeclareProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Err != nil {
		return ctx
	}
	for _, sym := range ctx.Sema.Table.All() {
		if sym.Kind != symbols.Variable {
			continue
		}
		ctx.Emitter.DeclareVariable(sym.Name, sym.Type.Dims(), sym.IO)
	}
	return ctx
}
