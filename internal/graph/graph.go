// Package graph implements the tensor-network graph: nodes are operands
// with one leg per dimension, edges are contracted index pairs between two
// legs, and a doubly-linked sequence orders nodes left-to-right for the
// product fallback when no edges remain. Nodes and edges live in
// append-only tables indexed by position (NodeID/EdgeID); erasure tombstones
// an entry rather than shrinking the table, so every previously-issued ID
// stays valid to look up (even if no longer live).
package graph

// NodeID indexes into a Graph's node table. NoNode marks an absent link.
type NodeID int

// EdgeID indexes into a Graph's edge table. NoEdge marks an unset leg.
type EdgeID int

const (
	NoNode NodeID = -1
	NoEdge EdgeID = -1
)

// Node is one operand in the network: Legs[i] names the edge bound to
// dimension i, or NoEdge if that dimension is still free. Pred/Succ form
// the sequence's doubly-linked chain.
type Node struct {
	Label string
	Rank  int
	Legs  []EdgeID
	Pred  NodeID
	Succ  NodeID
	live  bool
}

// Edge connects one leg of a source node to one leg of a target node.
type Edge struct {
	Label    string
	SrcNode  NodeID
	SrcIndex int
	TgtNode  NodeID
	TgtIndex int
	live     bool
}

// Graph is one tensor network, built fresh per statement (or per
// sub-expression emitted to a temporary).
type Graph struct {
	nodes []*Node
	edges []*Edge
}

func New() *Graph { return &Graph{} }

// AddNode appends a fresh, fully-unconnected node of the given rank.
func (g *Graph) AddNode(label string, rank int) NodeID {
	legs := make([]EdgeID, rank)
	for i := range legs {
		legs[i] = NoEdge
	}
	g.nodes = append(g.nodes, &Node{Label: label, Rank: rank, Legs: legs, Pred: NoNode, Succ: NoNode, live: true})
	return NodeID(len(g.nodes) - 1)
}

// Node returns the node at id. Callers must only call this with an id
// returned by AddNode on this graph.
func (g *Graph) Node(id NodeID) *Node { return g.nodes[id] }

// IsLiveNode reports whether id still denotes a node (not yet erased).
func (g *Graph) IsLiveNode(id NodeID) bool { return id >= 0 && int(id) < len(g.nodes) && g.nodes[id].live }

func (g *Graph) IsSet(id NodeID, leg int) bool { return g.nodes[id].Legs[leg] != NoEdge }

func (g *Graph) AnySet(id NodeID) bool {
	for _, e := range g.nodes[id].Legs {
		if e != NoEdge {
			return true
		}
	}
	return false
}

func (g *Graph) CountSet(id NodeID) int {
	n := 0
	for _, e := range g.nodes[id].Legs {
		if e != NoEdge {
			n++
		}
	}
	return n
}

// UpdateSequence splices id into the sequence between pred and succ,
// relinking both neighbors. Either may be NoNode.
func (g *Graph) UpdateSequence(id, pred, succ NodeID) {
	n := g.nodes[id]
	n.Pred = pred
	if pred != NoNode {
		g.nodes[pred].Succ = id
	}
	n.Succ = succ
	if succ != NoNode {
		g.nodes[succ].Pred = id
	}
}

// AddEdge binds srcNode's srcIndex leg to tgtNode's tgtIndex leg. Fails
// (returns NoEdge, false) if either leg is already bound; callers treat
// that as a fatal internal invariant violation, never a recoverable case.
func (g *Graph) AddEdge(label string, srcNode NodeID, srcIndex int, tgtNode NodeID, tgtIndex int) (EdgeID, bool) {
	if g.IsSet(srcNode, srcIndex) || g.IsSet(tgtNode, tgtIndex) {
		return NoEdge, false
	}
	g.edges = append(g.edges, &Edge{
		Label: label, SrcNode: srcNode, SrcIndex: srcIndex, TgtNode: tgtNode, TgtIndex: tgtIndex, live: true,
	})
	id := EdgeID(len(g.edges) - 1)
	g.nodes[srcNode].Legs[srcIndex] = id
	g.nodes[tgtNode].Legs[tgtIndex] = id
	return id, true
}

func (g *Graph) Edge(id EdgeID) *Edge { return g.edges[id] }

func (g *Graph) IsLiveEdge(id EdgeID) bool { return id >= 0 && int(id) < len(g.edges) && g.edges[id].live }

// EraseEdge unbinds both of the edge's legs and tombstones it.
func (g *Graph) EraseEdge(id EdgeID) bool {
	if !g.IsLiveEdge(id) {
		return false
	}
	e := g.edges[id]
	g.nodes[e.SrcNode].Legs[e.SrcIndex] = NoEdge
	g.nodes[e.TgtNode].Legs[e.TgtIndex] = NoEdge
	e.live = false
	return true
}

// EraseNode tombstones a node with no bound legs, relinking its sequence
// neighbors around the gap. Fails if any leg is still bound.
func (g *Graph) EraseNode(id NodeID) bool {
	if !g.IsLiveNode(id) {
		return false
	}
	n := g.nodes[id]
	if g.AnySet(id) {
		return false
	}
	if n.Pred != NoNode {
		g.nodes[n.Pred].Succ = n.Succ
	}
	if n.Succ != NoNode {
		g.nodes[n.Succ].Pred = n.Pred
	}
	n.live = false
	return true
}

// NumEdges counts live edges.
func (g *Graph) NumEdges() int {
	n := 0
	for _, e := range g.edges {
		if e.live {
			n++
		}
	}
	return n
}

// EdgesBetween returns, in insertion order, every live edge whose source
// is src and target is tgt.
func (g *Graph) EdgesBetween(src, tgt NodeID) []EdgeID {
	var out []EdgeID
	for i, e := range g.edges {
		if e.live && e.SrcNode == src && e.TgtNode == tgt {
			out = append(out, EdgeID(i))
		}
	}
	return out
}

// RemainingLegs returns the live edges bound to n's legs that are not
// present in exclude.
func (g *Graph) RemainingLegs(n NodeID, exclude map[EdgeID]bool) []EdgeID {
	var out []EdgeID
	for _, e := range g.nodes[n].Legs {
		if e == NoEdge || exclude[e] {
			continue
		}
		out = append(out, e)
	}
	return out
}

// StartNode returns the head of the sequence containing any live node, or
// NoNode if the graph is empty.
func (g *Graph) StartNode() NodeID {
	for i, n := range g.nodes {
		if !n.live {
			continue
		}
		id := NodeID(i)
		for g.nodes[id].Pred != NoNode {
			id = g.nodes[id].Pred
		}
		return id
	}
	return NoNode
}
