package transform

import (
	"testing"

	"github.com/tensorc/tlc/internal/exprtree"
)

// TestLifterExtractsNestedMatch checks that a predicate match nested inside
// another node (not the assignment's own RHS) gets pulled out to its own
// synthetic assignment, with the original position replaced by a reference.
func TestLifterExtractsNestedMatch(t *testing.T) {
	builder := exprtree.NewBuilder()
	a := ident("A", 2, 2)
	b := ident("B", 2, 2)
	contraction := &exprtree.Contraction{ResultDims: []int{2, 2}, Left: a, LeftIdx: []int{1}, Right: b, RightIdx: []int{0}}
	c := ident("C", 2, 2)
	sum := &exprtree.Binary{KindTag: exprtree.KindAdd, ResultDims: []int{2, 2}, Left: contraction, Right: c}

	isContraction := func(n exprtree.Node) bool {
		_, ok := n.(*exprtree.Contraction)
		return ok
	}

	lifter := NewLifter(builder, isContraction)
	out := lifter.TransformAssignments([]Assignment{{LHS: ident("D", 2, 2), RHS: sum}})

	if len(out) != 2 {
		t.Fatalf("expected the nested contraction lifted into its own assignment, got %d: %+v", len(out), out)
	}
	if out[0].RHS != contraction {
		t.Fatalf("lifted assignment's RHS should be the original contraction node")
	}

	rewritten, ok := out[1].RHS.(*exprtree.Binary)
	if !ok {
		t.Fatalf("final assignment's RHS should still be the Binary sum, got %T", out[1].RHS)
	}
	if rewritten.Left != out[0].LHS {
		t.Fatalf("sum's Left must now reference the lifted temporary")
	}
}

// TestLifterIgnoresTopLevelMatch checks that a predicate match sitting
// directly at an assignment's RHS (no parent) is left in place: lifting
// only pulls out nested matches.
func TestLifterIgnoresTopLevelMatch(t *testing.T) {
	builder := exprtree.NewBuilder()
	a := ident("A", 2, 2)
	b := ident("B", 2, 2)
	contraction := &exprtree.Contraction{ResultDims: []int{2, 2}, Left: a, LeftIdx: []int{1}, Right: b, RightIdx: []int{0}}

	isContraction := func(n exprtree.Node) bool {
		_, ok := n.(*exprtree.Contraction)
		return ok
	}

	lifter := NewLifter(builder, isContraction)
	out := lifter.TransformAssignments([]Assignment{{LHS: ident("D", 2, 2), RHS: contraction}})

	if len(out) != 1 {
		t.Fatalf("a top-level match must not be lifted into an extra assignment, got %d", len(out))
	}
	if out[0].RHS != contraction {
		t.Fatalf("top-level RHS must be left untouched")
	}
}
