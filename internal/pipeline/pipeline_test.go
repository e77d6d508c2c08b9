package pipeline

import (
	"testing"

	"github.com/tensorc/tlc/internal/ast"
	"github.com/tensorc/tlc/internal/emit"
	"github.com/tensorc/tlc/internal/logger"
)

func init() {
	logger.Init()
}

func intList(vals ...int) *ast.BrackExpr {
	elems := make([]ast.Expr, len(vals))
	for i, v := range vals {
		elems[i] = &ast.Integer{Value: v}
	}
	return &ast.BrackExpr{Elems: elems}
}

func decl(name string, dims ...int) *ast.Decl {
	return &ast.Decl{Kind: ast.VarDecl, Name: name, TypeExpr: intList(dims...)}
}

func matrixMulProgram() *ast.Program {
	contraction := &ast.BinaryExpr{
		Op:    ast.OpContraction,
		Left:  &ast.BinaryExpr{Op: ast.OpProduct, Left: &ast.Identifier{Name: "A"}, Right: &ast.Identifier{Name: "B"}},
		Right: &ast.BrackExpr{Elems: []ast.Expr{intList(1, 2)}},
	}
	return &ast.Program{
		Decls: []*ast.Decl{
			{Kind: ast.VarDecl, Name: "A", TypeExpr: intList(2, 3), IO: ast.IOInput},
			{Kind: ast.VarDecl, Name: "B", TypeExpr: intList(3, 4), IO: ast.IOInput},
			{Kind: ast.VarDecl, Name: "C", TypeExpr: intList(2, 4), IO: ast.IOOutput},
		},
		Statements: []*ast.Stmt{{Name: "C", Expr: contraction}},
	}
}

func runAll(ctx *PipelineContext) *PipelineContext {
	p := New(SemaProcessor{}, DirectProcessor{}, TransformProcessor{}, DeclareProcessor{}, NetGenProcessor{})
	return p.Run(ctx)
}

func TestPipelineEndToEndMatrixMultiply(t *testing.T) {
	e := emit.NewTextEmitter("np")
	ctx := &PipelineContext{Program: matrixMulProgram(), Emitter: e}
	ctx = runAll(ctx)

	if ctx.Err != nil {
		t.Fatalf("pipeline failed: %s", ctx.Err.Error())
	}
	if ctx.Output == "" {
		t.Fatalf("expected non-empty rendered output")
	}
	if want := "C = "; !contains(ctx.Output, want) {
		t.Fatalf("expected output to assign C, got %q", ctx.Output)
	}
}

func TestPipelineHaltsAtFirstError(t *testing.T) {
	prog := &ast.Program{
		Statements: []*ast.Stmt{{Name: "missing", Expr: &ast.Integer{Value: 1}}},
	}
	e := emit.NewTextEmitter("np")
	ctx := &PipelineContext{Program: prog, Emitter: e}
	ctx = runAll(ctx)

	if ctx.Err == nil {
		t.Fatalf("expected Sema's undeclared-symbol error to halt the pipeline")
	}
	if ctx.Output != "" {
		t.Fatalf("expected no output on failure, got %q", ctx.Output)
	}
	if ctx.DirectAssignments != nil {
		t.Fatalf("DirectProcessor must no-op once Sema has already failed")
	}
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
