package ast

import (
	"fmt"

	"github.com/tensorc/tlc/internal/token"
	"gopkg.in/yaml.v3"
)

// This file implements the YAML interchange format for Program. The lexer
// and parser live upstream of this module, so cmd/tlc accepts the AST an
// upstream front end would have produced, serialized as YAML. Expr is a
// tagged union dispatched on a `kind:` field, unmarshaled by hand rather
// than via reflection over a Go union type, since there is no such native
// construct.

type yamlProgram struct {
	File       string           `yaml:"file"`
	Decls      []yaml.Node      `yaml:"decls"`
	Statements []yamlStmt       `yaml:"statements"`
	ElemDirs   []yamlElemDirect `yaml:"elemDirects"`
}

type yamlStmt struct {
	Name string    `yaml:"name"`
	Expr yaml.Node `yaml:"expr"`
}

type yamlElemDirect struct {
	Pos        int      `yaml:"pos"`
	Dim        int      `yaml:"dim"`
	SymbolList []string `yaml:"symbols"`
}

type yamlDecl struct {
	Kind string    `yaml:"kind"` // "var" | "type"
	Name string    `yaml:"name"`
	IO   string    `yaml:"io"` // "", "input", "output"
	Type yaml.Node `yaml:"type"`
}

// LoadYAML parses a serialized Program from data.
func LoadYAML(data []byte) (*Program, error) {
	var p Program
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UnmarshalYAML implements the Program top-level decode.
func (p *Program) UnmarshalYAML(value *yaml.Node) error {
	var raw yamlProgram
	if err := value.Decode(&raw); err != nil {
		return err
	}

	p.File = raw.File
	for _, dn := range raw.Decls {
		var yd yamlDecl
		if err := dn.Decode(&yd); err != nil {
			return err
		}
		typeExpr, err := decodeExpr(&yd.Type)
		if err != nil {
			return fmt.Errorf("decl %q: %w", yd.Name, err)
		}
		d := &Decl{
			Position: posOf(&dn, p.File),
			Name:     yd.Name,
			TypeExpr: typeExpr,
		}
		switch yd.Kind {
		case "type":
			d.Kind = TypeDecl
		default:
			d.Kind = VarDecl
		}
		switch yd.IO {
		case "input":
			d.IO = IOInput
		case "output":
			d.IO = IOOutput
		default:
			d.IO = IONone
		}
		p.Decls = append(p.Decls, d)
	}

	for _, ys := range raw.Statements {
		expr, err := decodeExpr(&ys.Expr)
		if err != nil {
			return fmt.Errorf("statement %q: %w", ys.Name, err)
		}
		p.Statements = append(p.Statements, &Stmt{
			Position: posOf(&ys.Expr, p.File),
			Name:     ys.Name,
			Expr:     expr,
		})
	}

	for _, ye := range raw.ElemDirs {
		p.ElemDirs = append(p.ElemDirs, &ElemDirect{
			ElemPos:    ye.Pos,
			Dim:        ye.Dim,
			SymbolList: ye.SymbolList,
		})
	}

	return nil
}

func posOf(n *yaml.Node, file string) token.Position {
	if n == nil {
		return token.Position{File: file}
	}
	return token.Position{File: file, Line: n.Line, Column: n.Column}
}

type yamlExpr struct {
	Kind  string      `yaml:"kind"`
	Name  string      `yaml:"name"`  // ident
	Value int         `yaml:"value"` // int
	Elems []yaml.Node `yaml:"elems"` // brack
	Inner yaml.Node   `yaml:"inner"` // paren
	Op    string      `yaml:"op"`    // binary
	Left  yaml.Node   `yaml:"left"`
	Right yaml.Node   `yaml:"right"`
}

func decodeExpr(n *yaml.Node) (Expr, error) {
	if n == nil || n.IsZero() || n.Kind == 0 {
		return nil, fmt.Errorf("missing expression")
	}
	var raw yamlExpr
	if err := n.Decode(&raw); err != nil {
		return nil, err
	}
	pos := posOf(n, "")

	switch raw.Kind {
	case "ident":
		return &Identifier{Position: pos, Name: raw.Name}, nil
	case "int":
		return &Integer{Position: pos, Value: raw.Value}, nil
	case "brack":
		elems := make([]Expr, 0, len(raw.Elems))
		for i := range raw.Elems {
			e, err := decodeExpr(&raw.Elems[i])
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
		}
		return &BrackExpr{Position: pos, Elems: elems}, nil
	case "paren":
		inner, err := decodeExpr(&raw.Inner)
		if err != nil {
			return nil, err
		}
		return &ParenExpr{Position: pos, Inner: inner}, nil
	case "binary":
		left, err := decodeExpr(&raw.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpr(&raw.Right)
		if err != nil {
			return nil, err
		}
		op, err := decodeOp(raw.Op)
		if err != nil {
			return nil, err
		}
		return &BinaryExpr{Position: pos, Op: op, Left: left, Right: right}, nil
	default:
		return nil, fmt.Errorf("unknown expression kind %q", raw.Kind)
	}
}

func decodeOp(s string) (Op, error) {
	switch s {
	case "#", "product":
		return OpProduct, nil
	case "+", "add":
		return OpAdd, nil
	case "-", "sub":
		return OpSub, nil
	case "*", "mul":
		return OpMul, nil
	case "/", "div":
		return OpDiv, nil
	case ".", "contraction":
		return OpContraction, nil
	case "^", "transposition":
		return OpTransposition, nil
	default:
		return 0, fmt.Errorf("unknown operator %q", s)
	}
}
