// Package symbols implements a flat symbol table over interned tensor
// types: one name space, variable and type symbols, with input/output
// lists tracked separately in declaration order.
package symbols

import (
	"github.com/tensorc/tlc/internal/ast"
	"github.com/tensorc/tlc/internal/typesystem"
)

// Kind distinguishes a variable symbol from a type symbol.
type Kind int

const (
	Variable Kind = iota
	TypeSym
)

// Symbol is (kind, name, type, origin-declaration). Variable symbols may
// additionally be flagged input/output.
type Symbol struct {
	Kind    Kind
	Name    string
	Type    *typesystem.TensorType
	IO      ast.IOFlag
	Decl    *ast.Decl
}

// Table is a flat, name-keyed symbol table. Add fails (returns false)
// if the name is already present. Input/output lists are maintained
// separately from the main map, in declaration order.
type Table struct {
	byName  map[string]*Symbol
	order   []*Symbol
	inputs  []*Symbol
	outputs []*Symbol
}

// NewTable creates an empty symbol table.
func NewTable() *Table {
	return &Table{byName: make(map[string]*Symbol)}
}

// Add installs sym, returning false if its name is already declared.
func (t *Table) Add(sym *Symbol) bool {
	if _, exists := t.byName[sym.Name]; exists {
		return false
	}
	t.byName[sym.Name] = sym
	t.order = append(t.order, sym)

	if sym.Kind == Variable {
		switch sym.IO {
		case ast.IOInput:
			t.inputs = append(t.inputs, sym)
		case ast.IOOutput:
			t.outputs = append(t.outputs, sym)
		}
	}
	return true
}

// Get looks up a symbol by name.
func (t *Table) Get(name string) (*Symbol, bool) {
	s, ok := t.byName[name]
	return s, ok
}

// All iterates symbols in declaration order.
func (t *Table) All() []*Symbol { return t.order }

// Inputs returns variable symbols flagged as program inputs, in declaration
// order.
func (t *Table) Inputs() []*Symbol { return t.inputs }

// Outputs returns variable symbols flagged as program outputs, in
// declaration order.
func (t *Table) Outputs() []*Symbol { return t.outputs }
