// Package netgen implements GraphCodeGen: for each assignment it builds a
// tensor-network graph from the (already DirectCodeGen-lowered,
// transformer-rewritten) ExprTree, then reduces that graph by repeatedly
// selecting and contracting an edge set between sequence-adjacent nodes,
// finally chaining whatever nodes remain into a left-to-right product.
//
// Because DirectCodeGen has already partitioned and index-adjusted every
// contraction relative to its own two operands, this pass never repeats
// that partitioning: an ExprTree Contraction node already names indices
// local to its Left and Right children, so building its edges is a direct
// wire-up rather than a re-derivation of contrL/contrR/mixed.
package netgen

import (
	"github.com/tensorc/tlc/internal/diag"
	"github.com/tensorc/tlc/internal/emit"
	"github.com/tensorc/tlc/internal/exprtree"
	"github.com/tensorc/tlc/internal/graph"
	"github.com/tensorc/tlc/internal/token"
)

// Assignment mirrors transform.Assignment; netgen depends only on
// exprtree, not on the transform package, to keep the two independent.
type Assignment struct {
	LHS *exprtree.Identifier
	RHS exprtree.Node
}

// leg is one exposed outer dimension of the sub-expression currently being
// built: the graph node carrying it, and which of that node's legs it is.
type leg struct {
	node graph.NodeID
	idx  int
}

// Gen runs GraphCodeGen over an assignment list, emitting through e.
type Gen struct {
	emitter emit.Emitter

	g     *graph.Graph
	names map[graph.NodeID]string
}

func New(e emit.Emitter) *Gen {
	return &Gen{emitter: e}
}

// Run builds and reduces one network per assignment, in order, emitting a
// DeclareVariable-free sequence of operation calls followed by a final
// Assign into each assignment's left-hand side.
func (gen *Gen) Run(assignments []Assignment) *diag.Error {
	for _, asn := range assignments {
		gen.g = graph.New()
		gen.names = make(map[graph.NodeID]string)

		if _, err := gen.build(asn.RHS); err != nil {
			return err
		}

		final, err := gen.reduce()
		if err != nil {
			return err
		}

		gen.emitter.Assign(asn.LHS.DisplayName(), final)
	}
	return nil
}

// build walks n, adding nodes/edges to gen.g and returning n's exposed
// outer legs in dimension order.
func (gen *Gen) build(n exprtree.Node) ([]leg, *diag.Error) {
	switch t := n.(type) {
	case *exprtree.Identifier:
		return gen.buildLeaf(t.DisplayName(), t.Dims()), nil

	case *exprtree.Stack:
		members := make([]string, len(t.Members))
		for i, m := range t.Members {
			temp, err := gen.subExprTemp(m)
			if err != nil {
				return nil, err
			}
			members[i] = temp
		}
		result := gen.emitter.FreshTemp()
		gen.emitter.Stack(result, members)
		return gen.buildLeaf(result, t.Dims()), nil

	case *exprtree.Binary:
		if t.KindTag == exprtree.KindProduct {
			left, err := gen.build(t.Left)
			if err != nil {
				return nil, err
			}
			right, err := gen.build(t.Right)
			if err != nil {
				return nil, err
			}
			return append(append([]leg{}, left...), right...), nil
		}
		return gen.buildElementwise(t)

	case *exprtree.Contraction:
		return gen.buildContraction(t)

	case *exprtree.Transposition:
		return gen.buildTransposition(t)

	default:
		return nil, diag.Internal(diag.ErrIExprNotFound, token.Position{},
			"netgen: unhandled ExprTree node kind %v", n.Kind())
	}
}

// buildLeaf adds a fresh node of the given dims, binding it into gen.g's
// sequence and returning its legs.
func (gen *Gen) buildLeaf(name string, dims []int) []leg {
	id := gen.g.AddNode(name, len(dims))
	gen.names[id] = name
	gen.spliceAtEnd(id)

	legs := make([]leg, len(dims))
	for i := range dims {
		legs[i] = leg{node: id, idx: i}
	}
	return legs
}

// spliceAtEnd appends id after the current last node in gen.g's sequence.
func (gen *Gen) spliceAtEnd(id graph.NodeID) {
	start := gen.g.StartNode()
	if start == graph.NoNode {
		gen.g.UpdateSequence(id, graph.NoNode, graph.NoNode)
		return
	}
	tail := start
	for gen.g.Node(tail).Succ != graph.NoNode {
		tail = gen.g.Node(tail).Succ
	}
	if tail == id {
		return
	}
	gen.g.UpdateSequence(id, tail, graph.NoNode)
}

func opSymbol(k exprtree.Kind) string {
	switch k {
	case exprtree.KindAdd:
		return "+"
	case exprtree.KindSub:
		return "-"
	case exprtree.KindMul, exprtree.KindScalarMul:
		return "*"
	case exprtree.KindDiv, exprtree.KindScalarDiv:
		return "/"
	default:
		return "?"
	}
}

func (gen *Gen) buildElementwise(t *exprtree.Binary) ([]leg, *diag.Error) {
	tl, err := gen.subExprTemp(t.Left)
	if err != nil {
		return nil, err
	}
	tr, err := gen.subExprTemp(t.Right)
	if err != nil {
		return nil, err
	}
	result := gen.emitter.FreshTemp()
	gen.emitter.Elementwise(result, opSymbol(t.KindTag), tl, tr)
	return gen.buildLeaf(result, t.Dims()), nil
}

func (gen *Gen) buildTransposition(t *exprtree.Transposition) ([]leg, *diag.Error) {
	tOperand, err := gen.subExprTemp(t.Operand)
	if err != nil {
		return nil, err
	}
	result := gen.emitter.FreshTemp()
	gen.emitter.Transposition(result, tOperand, len(t.Dims()), t.Pairs)
	return gen.buildLeaf(result, t.Dims()), nil
}

// buildContraction recursively builds Left and Right in the CURRENT graph
// (contributing their nodes to the same network as the caller, so later
// reduction can contract across statement-level sibling operands too),
// wires an edge for every paired index, and returns the surviving legs in
// the same order CreateContraction computes ResultDims.
func (gen *Gen) buildContraction(t *exprtree.Contraction) ([]leg, *diag.Error) {
	left, err := gen.build(t.Left)
	if err != nil {
		return nil, err
	}
	right, err := gen.build(t.Right)
	if err != nil {
		return nil, err
	}

	for i := range t.LeftIdx {
		a := left[t.LeftIdx[i]]
		b := right[t.RightIdx[i]]
		label := ""
		if _, ok := gen.g.AddEdge(label, a.node, a.idx, b.node, b.idx); !ok {
			return nil, diag.Internal(diag.ErrIDuplicateEdge, token.Position{},
				"netgen: leg already bound while wiring a contraction edge")
		}
	}

	combined := append(append([]leg{}, left...), right...)
	removed := make(map[int]bool, len(t.LeftIdx)*2)
	for _, i := range t.LeftIdx {
		removed[i] = true
	}
	for _, i := range t.RightIdx {
		removed[len(left)+i] = true
	}

	out := make([]leg, 0, len(combined)-len(removed))
	for i, l := range combined {
		if !removed[i] {
			out = append(out, l)
		}
	}
	return out, nil
}

// subExprTemp emits n to its own temporary if it is not already a bare
// identifier reference, matching the short-circuit that avoids building a
// pointless one-node sub-graph for a plain variable reference.
func (gen *Gen) subExprTemp(n exprtree.Node) (string, *diag.Error) {
	if id, ok := n.(*exprtree.Identifier); ok {
		return id.DisplayName(), nil
	}

	savedGraph, savedNames := gen.g, gen.names
	gen.g = graph.New()
	gen.names = make(map[graph.NodeID]string)

	_, err := gen.build(n)
	if err != nil {
		gen.g, gen.names = savedGraph, savedNames
		return "", err
	}
	result, err := gen.reduce()
	gen.g, gen.names = savedGraph, savedNames
	return result, err
}
