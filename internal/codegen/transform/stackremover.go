package transform

import (
	"strconv"

	"github.com/tensorc/tlc/internal/exprtree"
)

// StackRemover eliminates Stack nodes by decomposing a stack assignment
// into one assignment per element, each carrying an extra index
// annotation. It is a three-phase pass: lift every nested Stack to the top
// of its assignment (reusing Lifter), decompose each now-top-level Stack
// assignment while recording synthetic-identifier substitutions, then
// apply those substitutions everywhere.
type StackRemover struct {
	builder      *exprtree.Builder
	declared     map[string]bool
	replacements map[string]*exprtree.Identifier
}

// NewStackRemover creates a StackRemover. declared names the program's
// user-declared variables (inputs, outputs, locals); any other identifier
// name encountered is assumed to be a Lifter-introduced temporary with a
// single definition and single use.
func NewStackRemover(builder *exprtree.Builder, declared map[string]bool) *StackRemover {
	return &StackRemover{
		builder:      builder,
		declared:     declared,
		replacements: make(map[string]*exprtree.Identifier),
	}
}

func isStack(n exprtree.Node) bool {
	_, ok := n.(*exprtree.Stack)
	return ok
}

// Run executes all three phases and returns the rewritten assignment list.
func (sr *StackRemover) Run(assignments []Assignment) []Assignment {
	lifter := NewLifter(sr.builder, isStack)
	lifted := lifter.TransformAssignments(assignments)

	decomposed := sr.decompose(lifted)

	for i := range decomposed {
		asn := &decomposed[i]
		if repl, ok := sr.replacements[asn.LHS.Name]; ok {
			asn.LHS = sr.buildReplacement(asn.LHS, repl)
		}
		asn.RHS = sr.applyReplacements(asn.RHS)
	}
	return decomposed
}

// decompose is phase B: every top-level Stack assignment is replaced by
// one assignment per element (or a recorded substitution, for elements
// that are themselves unused synthetic identifiers).
func (sr *StackRemover) decompose(assignments []Assignment) []Assignment {
	out := make([]Assignment, 0, len(assignments))
	for _, asn := range assignments {
		stack, ok := asn.RHS.(*exprtree.Stack)
		if !ok {
			out = append(out, asn)
			continue
		}

		for i, child := range stack.Members {
			extended := &exprtree.Identifier{
				Name:       asn.LHS.Name,
				ResultDims: append([]int{}, asn.LHS.Dims()...),
				Indices:    append(append([]string{}, asn.LHS.Indices...), strconv.Itoa(i)),
			}

			if childID, ok := child.(*exprtree.Identifier); ok && !sr.declared[childID.Name] {
				sr.replacements[childID.Name] = extended
				continue
			}
			out = append(out, Assignment{LHS: extended, RHS: child})
		}
	}
	return out
}

// buildReplacement merges target's own index annotations with original's,
// target's first, so a chain of nested synthetic substitutions composes
// outermost-first.
func (sr *StackRemover) buildReplacement(original, target *exprtree.Identifier) *exprtree.Identifier {
	indices := append(append([]string{}, target.Indices...), original.Indices...)
	return &exprtree.Identifier{
		Name:       target.Name,
		ResultDims: append([]int{}, target.Dims()...),
		Indices:    indices,
	}
}

func (sr *StackRemover) applyReplacements(n exprtree.Node) exprtree.Node {
	if id, ok := n.(*exprtree.Identifier); ok {
		if target, found := sr.replacements[id.Name]; found {
			return sr.buildReplacement(id, target)
		}
		return n
	}

	for i, child := range children(n) {
		setChildAt(n, i, sr.applyReplacements(child))
	}
	return n
}
