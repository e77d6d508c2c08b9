package transform

import (
	"fmt"

	"github.com/tensorc/tlc/internal/exprtree"
)

// Predicate reports whether a node should be lifted to its own assignment.
type Predicate func(exprtree.Node) bool

// Lifter extracts every subtree matching a predicate into a fresh
// synthetic assignment, replacing its original position with a reference
// to the new identifier. Extraction is post-order (innermost matches
// first) and never re-examines an already-lifted subtree.
type Lifter struct {
	builder   *exprtree.Builder
	predicate Predicate
	seq       int
}

// NewLifter creates a Lifter that extracts nodes matching pred, allocating
// new IR nodes from builder.
func NewLifter(builder *exprtree.Builder, pred Predicate) *Lifter {
	return &Lifter{builder: builder, predicate: pred}
}

func (l *Lifter) freshName() string {
	name := fmt.Sprintf("$lift%d", l.seq)
	l.seq++
	return name
}

// TransformAssignments runs the lift over every assignment in order,
// returning the expanded assignment list (synthetic assignments inserted
// immediately before the one they were extracted from).
func (l *Lifter) TransformAssignments(assignments []Assignment) []Assignment {
	out := make([]Assignment, 0, len(assignments))
	for _, asn := range assignments {
		var pending []Assignment
		asn.RHS = l.liftNode(asn.RHS, cursor{parent: nil}, &pending)
		out = append(out, pending...)
		out = append(out, asn)
	}
	return out
}

func (l *Lifter) liftNode(n exprtree.Node, c cursor, pending *[]Assignment) exprtree.Node {
	for i, child := range children(n) {
		newChild := l.liftNode(child, cursor{parent: n, childIndex: i}, pending)
		setChildAt(n, i, newChild)
	}

	if c.parent != nil && l.predicate(n) {
		tmp := l.builder.CreateIdentifier(l.freshName(), n.Dims()).(*exprtree.Identifier)
		*pending = append(*pending, Assignment{LHS: tmp, RHS: n})
		return tmp
	}
	return n
}
