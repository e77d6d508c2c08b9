package ast

import "testing"

const matmulYAML = `
file: matmul.tlc.yaml
decls:
  - kind: var
    name: A
    io: input
    type: {kind: brack, elems: [{kind: int, value: 2}, {kind: int, value: 3}]}
  - kind: var
    name: B
    io: input
    type: {kind: brack, elems: [{kind: int, value: 3}, {kind: int, value: 4}]}
  - kind: var
    name: C
    io: output
    type: {kind: brack, elems: [{kind: int, value: 2}, {kind: int, value: 4}]}
statements:
  - name: C
    expr:
      kind: binary
      op: contraction
      left:
        kind: binary
        op: product
        left: {kind: ident, name: A}
        right: {kind: ident, name: B}
      right:
        kind: brack
        elems:
          - kind: brack
            elems: [{kind: int, value: 1}, {kind: int, value: 2}]
`

func TestLoadYAMLDecodesDeclsAndStatement(t *testing.T) {
	prog, err := LoadYAML([]byte(matmulYAML))
	if err != nil {
		t.Fatalf("LoadYAML failed: %v", err)
	}
	if prog.File != "matmul.tlc.yaml" {
		t.Fatalf("File = %q, want matmul.tlc.yaml", prog.File)
	}
	if len(prog.Decls) != 3 {
		t.Fatalf("len(Decls) = %d, want 3", len(prog.Decls))
	}

	a := prog.Decls[0]
	if a.Name != "A" || a.Kind != VarDecl || a.IO != IOInput {
		t.Fatalf("Decls[0] = %+v, want A/VarDecl/IOInput", a)
	}
	dims, ok := AsIntList(a.TypeExpr)
	if !ok || len(dims) != 2 || dims[0] != 2 || dims[1] != 3 {
		t.Fatalf("A's TypeExpr = %v (ok=%v), want [2 3]", dims, ok)
	}

	c := prog.Decls[2]
	if c.IO != IOOutput {
		t.Fatalf("C's IO = %v, want IOOutput", c.IO)
	}

	if len(prog.Statements) != 1 {
		t.Fatalf("len(Statements) = %d, want 1", len(prog.Statements))
	}
	stmt := prog.Statements[0]
	if stmt.Name != "C" {
		t.Fatalf("Statements[0].Name = %q, want C", stmt.Name)
	}
	con, ok := stmt.Expr.(*BinaryExpr)
	if !ok || con.Op != OpContraction {
		t.Fatalf("Statements[0].Expr = %+v, want a contraction BinaryExpr", stmt.Expr)
	}
	prod, ok := con.Left.(*BinaryExpr)
	if !ok || prod.Op != OpProduct {
		t.Fatalf("contraction's Left = %+v, want a product BinaryExpr", con.Left)
	}
	left, ok := prod.Left.(*Identifier)
	if !ok || left.Name != "A" {
		t.Fatalf("product's Left = %+v, want Identifier A", prod.Left)
	}

	lists, ok := AsListOfIntLists(con.Right)
	if !ok || len(lists) != 1 || len(lists[0]) != 2 || lists[0][0] != 1 || lists[0][1] != 2 {
		t.Fatalf("contraction's Right = %v (ok=%v), want [[1 2]]", lists, ok)
	}
}

func TestLoadYAMLRejectsUnknownOperator(t *testing.T) {
	src := `
statements:
  - name: C
    expr:
      kind: binary
      op: frobnicate
      left: {kind: ident, name: A}
      right: {kind: ident, name: B}
`
	if _, err := LoadYAML([]byte(src)); err == nil {
		t.Fatalf("expected an error for an unrecognized operator")
	}
}

func TestLoadYAMLRejectsMissingExpression(t *testing.T) {
	src := `
statements:
  - name: C
`
	if _, err := LoadYAML([]byte(src)); err == nil {
		t.Fatalf("expected an error for a statement with no expr")
	}
}
