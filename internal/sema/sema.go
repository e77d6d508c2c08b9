// Package sema implements semantic analysis with structural tensor typing:
// it walks the AST, populates the symbol table, annotates every expression
// node with a type, and validates contractions/stacks/assignments.
//
// Analyze either succeeds, returning a populated Result, or fails with a
// single diagnostic describing the first semantic error encountered. There
// is no partial result and no error recovery: analysis stops at the first
// problem.
package sema

import (
	"github.com/tensorc/tlc/internal/ast"
	"github.com/tensorc/tlc/internal/diag"
	"github.com/tensorc/tlc/internal/symbols"
	"github.com/tensorc/tlc/internal/token"
	"github.com/tensorc/tlc/internal/typesystem"
)

// Result is everything downstream passes (DirectCodeGen, GraphCodeGen) need
// from a successful analysis.
type Result struct {
	Interner    *typesystem.Interner
	Table       *symbols.Table
	TypeMap     map[ast.Expr]*typesystem.TensorType
	ElemDirects []*ast.ElemDirect
}

// TypeOf returns the type Sema recorded for e. Panics if e was never typed;
// callers only call this after a successful Analyze, on nodes Sema is
// documented to visit.
func (r *Result) TypeOf(e ast.Expr) *typesystem.TensorType {
	t, ok := r.TypeMap[e]
	if !ok {
		panic("sema: TypeOf called on an untyped expression node")
	}
	return t
}

// sema holds the mutable analysis state for a single Analyze call.
type sema struct {
	interner *typesystem.Interner
	table    *symbols.Table
	typeMap  map[ast.Expr]*typesystem.TensorType
}

// Analyze performs semantic analysis on prog.
func Analyze(prog *ast.Program) (*Result, *diag.Error) {
	s := &sema{
		interner: typesystem.NewInterner(),
		table:    symbols.NewTable(),
		typeMap:  make(map[ast.Expr]*typesystem.TensorType),
	}

	for _, d := range prog.Decls {
		if err := s.visitDecl(d); err != nil {
			return nil, err
		}
	}

	for _, st := range prog.Statements {
		if err := s.visitStmt(st); err != nil {
			return nil, err
		}
	}

	return &Result{
		Interner:    s.interner,
		Table:       s.table,
		TypeMap:     s.typeMap,
		ElemDirects: prog.ElemDirs,
	}, nil
}

// visitTypeExpr resolves a Decl's type expression: either a named type
// (identifier referencing a Type symbol) or an integer list.
func (s *sema) visitTypeExpr(e ast.Expr) (*typesystem.TensorType, *diag.Error) {
	if id, ok := e.(*ast.Identifier); ok {
		if sym, found := s.table.Get(id.Name); found && sym.Kind == symbols.TypeSym {
			return sym.Type, nil
		}
	}
	if dims, ok := ast.AsIntList(e); ok {
		return s.interner.GetOrCreate(dims), nil
	}
	return nil, diag.New(diag.ErrSInvalidTypeExpr, e.Pos(),
		"type expression must be a named type or an integer list")
}

func (s *sema) visitDecl(d *ast.Decl) *diag.Error {
	typ, err := s.visitTypeExpr(d.TypeExpr)
	if err != nil {
		return err
	}

	if _, exists := s.table.Get(d.Name); exists {
		return diag.New(diag.ErrSDuplicateDecl, d.Position,
			"symbol %q already declared", d.Name)
	}

	kind := symbols.Variable
	if d.Kind == ast.TypeDecl {
		kind = symbols.TypeSym
		if typ.Name() == "" {
			typ.SetName(d.Name)
		}
	}

	s.table.Add(&symbols.Symbol{
		Kind: kind,
		Name: d.Name,
		Type: typ,
		IO:   d.IO,
		Decl: d,
	})
	return nil
}

func (s *sema) visitStmt(st *ast.Stmt) *diag.Error {
	sym, ok := s.table.Get(st.Name)
	if !ok || sym.Kind != symbols.Variable {
		return diag.New(diag.ErrSUndeclared, st.Position,
			"assignment to undeclared symbol %q", st.Name)
	}

	typ, err := s.typeOf(st.Expr)
	if err != nil {
		return err
	}

	if !typ.Equal(sym.Type) {
		return diag.New(diag.ErrSAssignMismatch, st.Position,
			"cannot assign %s to %q of type %s", typ, st.Name, sym.Type)
	}
	return nil
}

func (s *sema) record(e ast.Expr, t *typesystem.TensorType) *typesystem.TensorType {
	s.typeMap[e] = t
	return t
}

func undeclaredErr(pos token.Position, name string) *diag.Error {
	return diag.New(diag.ErrSUndeclared, pos, "use of undeclared symbol %q", name)
}
