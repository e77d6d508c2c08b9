// Package transform implements the ExprTree rewrite passes: a generic
// predicate-driven Lifter and the StackExprRemover built on top of it.
// Every pass is a Transformer walking the assignment list with an explicit
// (parent, childIndex) cursor threaded through the call stack, rather than
// mutable fields on the transformer itself, so a transform is reentrant and
// has no hidden state between assignments.
package transform

import "github.com/tensorc/tlc/internal/exprtree"

// Assignment is one (lhs, rhs) pair in execution order, the unit every
// transformer rewrites in place.
type Assignment struct {
	LHS *exprtree.Identifier
	RHS exprtree.Node
}

// cursor identifies where a node sits in its parent so a rewrite can splice
// in a replacement: parent == nil means the node is an assignment's RHS.
type cursor struct {
	parent     exprtree.Node
	childIndex int
}

// setChildAt replaces parent's child at childIndex with replacement.
// Callers handle the root case (no parent) themselves, by assigning
// directly to the assignment's RHS.
func setChildAt(parent exprtree.Node, childIndex int, replacement exprtree.Node) {
	switch p := parent.(type) {
	case *exprtree.Binary:
		if childIndex == 0 {
			p.Left = replacement
		} else {
			p.Right = replacement
		}
	case *exprtree.Contraction:
		if childIndex == 0 {
			p.Left = replacement
		} else {
			p.Right = replacement
		}
	case *exprtree.Stack:
		p.Members[childIndex] = replacement
	case *exprtree.Transposition:
		p.Operand = replacement
	}
}

// children returns n's direct child nodes in traversal order.
func children(n exprtree.Node) []exprtree.Node {
	switch t := n.(type) {
	case *exprtree.Binary:
		return []exprtree.Node{t.Left, t.Right}
	case *exprtree.Contraction:
		return []exprtree.Node{t.Left, t.Right}
	case *exprtree.Stack:
		return t.Members
	case *exprtree.Transposition:
		return []exprtree.Node{t.Operand}
	default:
		return nil
	}
}
