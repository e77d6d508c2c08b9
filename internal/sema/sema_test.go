package sema

import (
	"testing"

	"github.com/tensorc/tlc/internal/ast"
)

func intList(vals ...int) *ast.BrackExpr {
	elems := make([]ast.Expr, len(vals))
	for i, v := range vals {
		elems[i] = &ast.Integer{Value: v}
	}
	return &ast.BrackExpr{Elems: elems}
}

func listOfIntLists(lists ...[]int) *ast.BrackExpr {
	elems := make([]ast.Expr, len(lists))
	for i, l := range lists {
		elems[i] = intList(l...)
	}
	return &ast.BrackExpr{Elems: elems}
}

func decl(name string, dims ...int) *ast.Decl {
	return &ast.Decl{Kind: ast.VarDecl, Name: name, TypeExpr: intList(dims...)}
}

func TestAnalyzeMatrixContraction(t *testing.T) {
	// A . B contracted over the shared dimension: after the outer product
	// A#B has dims [2, 3, 3, 4], positions 1 and 2 are the matching 3s.
	contraction := &ast.BinaryExpr{
		Op:    ast.OpContraction,
		Left:  &ast.BinaryExpr{Op: ast.OpProduct, Left: &ast.Identifier{Name: "A"}, Right: &ast.Identifier{Name: "B"}},
		Right: listOfIntLists([]int{1, 2}),
	}
	prog := &ast.Program{
		Decls: []*ast.Decl{
			decl("A", 2, 3),
			decl("B", 3, 4),
			decl("C", 2, 4),
		},
		Statements: []*ast.Stmt{
			{Name: "C", Expr: contraction},
		},
	}

	result, err := Analyze(prog)
	if err != nil {
		t.Fatalf("Analyze failed: %s", err.Error())
	}

	typ := result.TypeOf(contraction)
	if typ.Rank() != 2 || typ.Dim(0) != 2 || typ.Dim(1) != 4 {
		t.Fatalf("contraction result type = %s, want [2, 4]", typ)
	}
}

func TestAnalyzeUndeclaredAssignment(t *testing.T) {
	prog := &ast.Program{
		Statements: []*ast.Stmt{
			{Name: "missing", Expr: &ast.Integer{Value: 1}},
		},
	}
	_, err := Analyze(prog)
	if err == nil {
		t.Fatalf("expected an undeclared-symbol diagnostic")
	}
}

func TestAnalyzeDuplicateDecl(t *testing.T) {
	prog := &ast.Program{
		Decls: []*ast.Decl{decl("A", 2), decl("A", 3)},
	}
	_, err := Analyze(prog)
	if err == nil {
		t.Fatalf("expected a duplicate-declaration diagnostic")
	}
}

func TestAnalyzeStackRequiresMatchingMembers(t *testing.T) {
	prog := &ast.Program{
		Decls: []*ast.Decl{
			decl("A", 2),
			decl("B", 3),
			decl("C", 2, 2),
		},
		Statements: []*ast.Stmt{
			{
				Name: "C",
				Expr: &ast.BrackExpr{Elems: []ast.Expr{
					&ast.Identifier{Name: "A"},
					&ast.Identifier{Name: "B"},
				}},
			},
		},
	}
	_, err := Analyze(prog)
	if err == nil {
		t.Fatalf("expected a stack type-mismatch diagnostic")
	}
}

func TestAnalyzeScalarMulBroadcasts(t *testing.T) {
	prog := &ast.Program{
		Decls: []*ast.Decl{
			decl("s"),
			decl("A", 2, 2),
			decl("C", 2, 2),
		},
		Statements: []*ast.Stmt{
			{
				Name: "C",
				Expr: &ast.BinaryExpr{
					Op:    ast.OpMul,
					Left:  &ast.Identifier{Name: "s"},
					Right: &ast.Identifier{Name: "A"},
				},
			},
		},
	}
	if _, err := Analyze(prog); err != nil {
		t.Fatalf("scalar * tensor should type-check, got %s", err.Error())
	}
}
