package netgen

import (
	"github.com/tensorc/tlc/internal/diag"
	"github.com/tensorc/tlc/internal/graph"
	"github.com/tensorc/tlc/internal/token"
)

// reduce drives emitGraph: while edges remain, contract the next
// sequence-adjacent edge set into a merged node; once none remain, chain
// the surviving sequence into a left-to-right product. Returns the final
// temporary (or bare identifier name, for a one-node graph) naming the
// assignment's value.
func (gen *Gen) reduce() (string, *diag.Error) {
	for gen.g.NumEdges() > 0 {
		toContract, err := gen.selectEdgesToContract()
		if err != nil {
			return "", err
		}
		if err := gen.contractEdgeSet(toContract); err != nil {
			return "", err
		}
	}
	return gen.chainRemainingProducts(), nil
}

// selectEdgesToContract walks the sequence from its start node; the first
// consecutive pair with any edge between them is the set to contract.
func (gen *Gen) selectEdgesToContract() ([]graph.EdgeID, *diag.Error) {
	n := gen.g.StartNode()
	for n != graph.NoNode && gen.g.Node(n).Succ != graph.NoNode {
		succ := gen.g.Node(n).Succ
		if between := gen.g.EdgesBetween(n, succ); len(between) > 0 {
			return between, nil
		}
		n = succ
	}
	return nil, diag.Internal(diag.ErrINoEdgeBetween, token.Position{},
		"netgen: graph has edges left but no sequence-adjacent pair carries one")
}

func adjustForContractions(g *graph.Graph, oldNode graph.NodeID, toContract []graph.EdgeID) func(int) int {
	return func(index int) int {
		adj := 0
		for _, eid := range toContract {
			e := g.Edge(eid)
			oldIdx := e.SrcIndex
			if e.SrcNode != oldNode {
				oldIdx = e.TgtIndex
			}
			if oldIdx < index {
				adj++
			}
		}
		return index - adj
	}
}

// replaceEdgesAtNode rebinds every edge in edgesAtOld (all touching
// oldNode) to newNode instead, shifting the rebound leg index by shift
// after adjusting it downward for contracted legs removed below it.
func (gen *Gen) replaceEdgesAtNode(oldNode graph.NodeID, edgesAtOld []graph.EdgeID, newNode graph.NodeID, shift int, toContract []graph.EdgeID) *diag.Error {
	adjust := adjustForContractions(gen.g, oldNode, toContract)

	for _, eid := range edgesAtOld {
		e := gen.g.Edge(eid)
		newSrcNode, newSrcIdx := e.SrcNode, e.SrcIndex
		if e.SrcNode == oldNode {
			newSrcNode, newSrcIdx = newNode, adjust(e.SrcIndex)+shift
		}
		newTgtNode, newTgtIdx := e.TgtNode, e.TgtIndex
		if e.TgtNode == oldNode {
			newTgtNode, newTgtIdx = newNode, adjust(e.TgtIndex)+shift
		}

		gen.g.EraseEdge(eid)
		if _, ok := gen.g.AddEdge("", newSrcNode, newSrcIdx, newTgtNode, newTgtIdx); !ok {
			return diag.Internal(diag.ErrIMalformedGraph, token.Position{},
				"netgen: failed to rebind a surviving edge onto a merged node")
		}
	}
	return nil
}

// contractEdgeSet emits one Contract call for toContract (all running
// between the same adjacent src/tgt pair), merges src and tgt into a new
// sequence node carrying their surviving legs, and removes the old nodes.
func (gen *Gen) contractEdgeSet(toContract []graph.EdgeID) *diag.Error {
	first := gen.g.Edge(toContract[0])
	src, tgt := first.SrcNode, first.TgtNode

	var srcIdx, tgtIdx []int
	for _, eid := range toContract {
		e := gen.g.Edge(eid)
		srcIdx = append(srcIdx, e.SrcIndex)
		tgtIdx = append(tgtIdx, e.TgtIndex)
	}

	result := gen.emitter.FreshTemp()
	gen.emitter.Contract(result, gen.names[src], srcIdx, gen.names[tgt], tgtIdx)

	contractSet := make(map[graph.EdgeID]bool, len(toContract))
	for _, eid := range toContract {
		contractSet[eid] = true
	}
	edgesAtSrc := gen.g.RemainingLegs(src, contractSet)
	edgesAtTgt := gen.g.RemainingLegs(tgt, contractSet)

	rankSrc := gen.g.Node(src).Rank
	rankTgt := gen.g.Node(tgt).Rank
	newRank := rankSrc + rankTgt - 2*len(toContract)

	pred, succ := gen.g.Node(src).Pred, gen.g.Node(tgt).Succ
	merged := gen.g.AddNode(result, newRank)
	gen.names[merged] = result
	gen.g.UpdateSequence(merged, pred, succ)

	if err := gen.replaceEdgesAtNode(src, edgesAtSrc, merged, 0, toContract); err != nil {
		return err
	}
	if err := gen.replaceEdgesAtNode(tgt, edgesAtTgt, merged, rankSrc-len(toContract), toContract); err != nil {
		return err
	}

	for _, eid := range toContract {
		gen.g.EraseEdge(eid)
	}

	// src and tgt have already been spliced out by merged's UpdateSequence
	// above; detach their own stale Pred/Succ before erasing so EraseNode's
	// relinking (which would otherwise restore the old src->tgt link) is a
	// no-op.
	gen.g.UpdateSequence(src, graph.NoNode, graph.NoNode)
	gen.g.UpdateSequence(tgt, graph.NoNode, graph.NoNode)

	if !gen.g.EraseNode(src) {
		return diag.Internal(diag.ErrIMalformedGraph, token.Position{}, "netgen: contracted source node still has bound legs")
	}
	if !gen.g.EraseNode(tgt) {
		return diag.Internal(diag.ErrIMalformedGraph, token.Position{}, "netgen: contracted target node still has bound legs")
	}
	return nil
}

// chainRemainingProducts walks the (edge-free) sequence start to end,
// folding it into a single left-to-right tensor product.
func (gen *Gen) chainRemainingProducts() string {
	n := gen.g.StartNode()
	if n == graph.NoNode {
		return ""
	}
	temp := gen.names[n]
	for gen.g.Node(n).Succ != graph.NoNode {
		succ := gen.g.Node(n).Succ
		result := gen.emitter.FreshTemp()
		gen.emitter.Product(result, temp, gen.names[succ])
		temp = result
		n = succ
	}
	return temp
}
