package pipeline

import (
	"github.com/tensorc/tlc/internal/codegen/transform"
	"github.com/tensorc/tlc/internal/symbols"
)

// TransformProcessor runs the ExprTree rewrite passes (currently just
// StackExprRemover) over DirectCodeGen's output.
type TransformProcessor struct{}

func (TransformProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Err != nil {
		return ctx
	}

	assignments := make([]transform.Assignment, len(ctx.DirectAssignments))
	for i, a := range ctx.DirectAssignments {
		assignments[i] = transform.Assignment{LHS: a.LHS, RHS: a.RHS}
	}

	remover := transform.NewStackRemover(ctx.Builder, declaredNames(ctx.Sema.Table))
	ctx.Assignments = remover.Run(assignments)
	return ctx
}

// declaredNames is the set of names StackExprRemover must treat as
// user-declared (inputs, outputs, locals), as opposed to a synthetic
// single-use temporary the lifter introduced.
func declaredNames(table *symbols.Table) map[string]bool {
	declared := make(map[string]bool)
	for _, sym := range table.All() {
		if sym.Kind == symbols.Variable {
			declared[sym.Name] = true
		}
	}
	return declared
}
