package graph

import "testing"

func TestAddNodeUnconnected(t *testing.T) {
	g := New()
	n := g.AddNode("a", 3)
	if !g.IsLiveNode(n) {
		t.Fatalf("freshly added node must be live")
	}
	if g.AnySet(n) {
		t.Fatalf("freshly added node must have no bound legs")
	}
	if g.CountSet(n) != 0 {
		t.Fatalf("CountSet = %d, want 0", g.CountSet(n))
	}
}

func TestAddEdgeBindsBothLegs(t *testing.T) {
	g := New()
	a := g.AddNode("a", 2)
	b := g.AddNode("b", 2)
	eid, ok := g.AddEdge("", a, 0, b, 1)
	if !ok {
		t.Fatalf("AddEdge failed on unbound legs")
	}
	if !g.IsSet(a, 0) || !g.IsSet(b, 1) {
		t.Fatalf("AddEdge did not bind both legs")
	}
	if g.CountSet(a) != 1 || g.CountSet(b) != 1 {
		t.Fatalf("unexpected leg counts after AddEdge")
	}
	if g.Edge(eid).SrcNode != a || g.Edge(eid).TgtNode != b {
		t.Fatalf("edge endpoints do not match what was bound")
	}
}

func TestAddEdgeRejectsAlreadyBoundLeg(t *testing.T) {
	g := New()
	a := g.AddNode("a", 2)
	b := g.AddNode("b", 2)
	c := g.AddNode("c", 2)
	if _, ok := g.AddEdge("", a, 0, b, 0); !ok {
		t.Fatalf("first AddEdge should succeed")
	}
	if _, ok := g.AddEdge("", a, 0, c, 0); ok {
		t.Fatalf("AddEdge onto an already-bound leg must fail")
	}
}

func TestEraseEdgeUnbindsLegs(t *testing.T) {
	g := New()
	a := g.AddNode("a", 1)
	b := g.AddNode("b", 1)
	eid, _ := g.AddEdge("", a, 0, b, 0)
	if !g.EraseEdge(eid) {
		t.Fatalf("EraseEdge on a live edge should succeed")
	}
	if g.IsSet(a, 0) || g.IsSet(b, 0) {
		t.Fatalf("erased edge must leave both legs unbound")
	}
	if g.IsLiveEdge(eid) {
		t.Fatalf("erased edge must not report live")
	}
	if g.EraseEdge(eid) {
		t.Fatalf("erasing an already-erased edge must fail")
	}
}

func TestEraseNodeRequiresNoBoundLegs(t *testing.T) {
	g := New()
	a := g.AddNode("a", 1)
	b := g.AddNode("b", 1)
	eid, _ := g.AddEdge("", a, 0, b, 0)
	if g.EraseNode(a) {
		t.Fatalf("EraseNode must fail while a leg is still bound")
	}
	g.EraseEdge(eid)
	if !g.EraseNode(a) {
		t.Fatalf("EraseNode must succeed once all legs are unbound")
	}
	if g.IsLiveNode(a) {
		t.Fatalf("erased node must not report live")
	}
}

func TestSequenceRelinkOnErase(t *testing.T) {
	g := New()
	a := g.AddNode("a", 0)
	b := g.AddNode("b", 0)
	c := g.AddNode("c", 0)
	g.UpdateSequence(a, NoNode, b)
	g.UpdateSequence(b, a, c)
	g.UpdateSequence(c, b, NoNode)

	if g.StartNode() != a {
		t.Fatalf("StartNode() = %v, want a", g.StartNode())
	}
	if !g.EraseNode(b) {
		t.Fatalf("erasing rank-0 node b should succeed (no legs to bind)")
	}
	if g.Node(a).Succ != c {
		t.Fatalf("erasing b must relink a.Succ to c, got %v", g.Node(a).Succ)
	}
	if g.Node(c).Pred != a {
		t.Fatalf("erasing b must relink c.Pred to a, got %v", g.Node(c).Pred)
	}
}

func TestEdgesBetweenIsDirectional(t *testing.T) {
	g := New()
	a := g.AddNode("a", 2)
	b := g.AddNode("b", 2)
	g.AddEdge("", a, 0, b, 0)
	if got := g.EdgesBetween(a, b); len(got) != 1 {
		t.Fatalf("EdgesBetween(a, b) = %d edges, want 1", len(got))
	}
	if got := g.EdgesBetween(b, a); len(got) != 0 {
		t.Fatalf("EdgesBetween(b, a) = %d edges, want 0 (directional, src must match)", len(got))
	}
}

func TestRemainingLegsExcludesGiven(t *testing.T) {
	g := New()
	a := g.AddNode("a", 3)
	b := g.AddNode("b", 1)
	c := g.AddNode("c", 1)
	d := g.AddNode("d", 1)
	e1, _ := g.AddEdge("", a, 0, b, 0)
	e2, _ := g.AddEdge("", a, 1, c, 0)
	g.AddEdge("", a, 2, d, 0)

	exclude := map[EdgeID]bool{e1: true, e2: true}
	remaining := g.RemainingLegs(a, exclude)
	if len(remaining) != 1 {
		t.Fatalf("RemainingLegs = %v, want exactly 1 leg left", remaining)
	}
}

func TestStartNodeEmptyGraph(t *testing.T) {
	g := New()
	if g.StartNode() != NoNode {
		t.Fatalf("StartNode() on an empty graph must be NoNode")
	}
}
