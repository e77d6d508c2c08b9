// Package direct implements DirectCodeGen: the AST-to-ExprTree translation,
// including the index-rebalancing algorithm that lowers a contraction over
// a tensor-product sub-tree into nested Contraction IR nodes with concrete,
// operand-relative index lists.
package direct

import (
	"sort"

	"github.com/tensorc/tlc/internal/ast"
	"github.com/tensorc/tlc/internal/diag"
	"github.com/tensorc/tlc/internal/exprtree"
	"github.com/tensorc/tlc/internal/sema"
)

// Assignment is one (lhs, rhs) pair in execution order.
type Assignment struct {
	LHS *exprtree.Identifier
	RHS exprtree.Node
}

// Gen runs DirectCodeGen over a fully-analyzed program, producing the
// ordered assignment list the transformers and GraphCodeGen consume.
type Gen struct {
	result  *sema.Result
	Builder *exprtree.Builder

	// exprMap mirrors the translated node for every AST expression visited.
	exprMap map[ast.Expr]exprtree.Node

	Assignments []Assignment
}

// New creates a DirectCodeGen driven by a successful Sema result.
func New(result *sema.Result) *Gen {
	return &Gen{
		result:  result,
		Builder: exprtree.NewBuilder(),
		exprMap: make(map[ast.Expr]exprtree.Node),
	}
}

// Run translates every statement in prog, in order, appending one
// Assignment per statement.
func (g *Gen) Run(prog *ast.Program) *diag.Error {
	for _, st := range prog.Statements {
		rhs, err := g.translate(st.Expr)
		if err != nil {
			return err
		}
		sym, _ := g.result.Table.Get(st.Name)
		lhs := &exprtree.Identifier{Name: st.Name, ResultDims: append([]int{}, sym.Type.Dims()...)}
		g.Assignments = append(g.Assignments, Assignment{LHS: lhs, RHS: rhs})
	}
	return nil
}

func (g *Gen) remember(e ast.Expr, n exprtree.Node) exprtree.Node {
	g.exprMap[e] = n
	return n
}

// translate dispatches on AST expression kind, building the matching
// ExprTree node.
func (g *Gen) translate(e ast.Expr) (exprtree.Node, *diag.Error) {
	switch n := e.(type) {
	case *ast.Identifier:
		sym, _ := g.result.Table.Get(n.Name)
		return g.remember(n, g.Builder.CreateIdentifier(n.Name, sym.Type.Dims())), nil

	case *ast.ParenExpr:
		inner, err := g.translate(n.Inner)
		if err != nil {
			return nil, err
		}
		return g.remember(n, inner), nil

	case *ast.BrackExpr:
		members := make([]exprtree.Node, 0, len(n.Elems))
		for _, el := range n.Elems {
			m, err := g.translate(el)
			if err != nil {
				return nil, err
			}
			members = append(members, m)
		}
		return g.remember(n, g.Builder.CreateStack(members)), nil

	case *ast.BinaryExpr:
		return g.translateBinary(n)

	default:
		return nil, diag.Internal(diag.ErrIExprNotFound, e.Pos(), "direct: unhandled expression kind %T", e)
	}
}

func (g *Gen) translateBinary(n *ast.BinaryExpr) (exprtree.Node, *diag.Error) {
	switch n.Op {
	case ast.OpContraction:
		lists, ok := ast.AsListOfIntLists(n.Right)
		if !ok || len(lists) == 0 {
			return nil, diag.Internal(diag.ErrINonPairContraction, n.Position,
				"direct: contraction index operand is not a non-empty list of lists")
		}
		for _, l := range lists {
			if len(l) != 2 {
				return nil, diag.Internal(diag.ErrINonPairContraction, n.Position,
					"direct: cannot handle general contractions: index tuple %v is not a pair", l)
			}
		}
		tensor, err := g.lowerContraction(n.Left, toPairs(lists))
		if err != nil {
			return nil, err
		}
		return g.remember(n, tensor), nil

	case ast.OpTransposition:
		left, err := g.translate(n.Left)
		if err != nil {
			return nil, err
		}
		pairs, ok := ast.AsListOfIntLists(n.Right)
		if !ok || len(pairs) == 0 {
			return nil, diag.Internal(diag.ErrINonPairContraction, n.Position,
				"direct: transposition index operand is not a non-empty list of pairs")
		}
		return g.remember(n, g.Builder.CreateTransposition(left, toPairs(pairs))), nil

	default:
		left, err := g.translate(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := g.translate(n.Right)
		if err != nil {
			return nil, err
		}

		var result exprtree.Node
		switch n.Op {
		case ast.OpAdd:
			result = g.Builder.CreateAdd(left, right)
		case ast.OpSub:
			result = g.Builder.CreateSub(left, right)
		case ast.OpMul:
			if g.result.Interner.IsScalar(g.result.TypeOf(n.Left)) {
				result = g.Builder.CreateScalarMul(left, right)
			} else {
				result = g.Builder.CreateMul(left, right)
			}
		case ast.OpDiv:
			if g.result.Interner.IsScalar(g.result.TypeOf(n.Right)) {
				result = g.Builder.CreateScalarDiv(left, right)
			} else {
				result = g.Builder.CreateDiv(left, right)
			}
		case ast.OpProduct:
			result = g.Builder.CreateProduct(left, right)
		default:
			return nil, diag.Internal(diag.ErrIExprNotFound, n.Position, "direct: invalid binary expression")
		}
		return g.remember(n, result), nil
	}
}

func toPairs(lists [][]int) [][2]int {
	out := make([][2]int, len(lists))
	for i, l := range lists {
		out[i] = [2]int{l[0], l[1]}
	}
	return out
}

// extractProduct unwraps transparent ParenExprs looking for a tensor-product
// BinaryExpr. Returns nil if e does not reduce to one.
func extractProduct(e ast.Expr) *ast.BinaryExpr {
	for {
		switch n := e.(type) {
		case *ast.ParenExpr:
			e = n.Inner
		case *ast.BinaryExpr:
			if n.Op == ast.OpProduct {
				return n
			}
			return nil
		default:
			return nil
		}
	}
}

// lowerContraction recursively pushes a contraction's index pairs down into
// the product sub-tree they belong to, emitting one IR Contraction node per
// recursion level that has any cross-operand (mixed) pairs.
func (g *Gen) lowerContraction(e ast.Expr, indices [][2]int) (exprtree.Node, *diag.Error) {
	if len(indices) == 0 {
		return g.translate(e)
	}

	prod := extractProduct(e)
	if prod == nil {
		return nil, diag.Internal(diag.ErrINotAProduct, e.Pos(),
			"direct: cannot contract over a non-product sub-tree")
	}

	rankL := g.result.TypeOf(prod.Left).Rank()

	var contrL, contrR, mixed [][2]int
	for _, p := range indices {
		a, b := p[0], p[1]
		switch {
		case a < rankL && b < rankL:
			contrL = append(contrL, p)
		case a >= rankL && b >= rankL:
			contrR = append(contrR, p)
		default:
			mixed = append(mixed, p)
		}
	}

	leftNode, err := g.lowerContraction(prod.Left, contrL)
	if err != nil {
		return nil, err
	}

	rankContractedL := rankL - 2*len(contrL)

	shiftedR := shiftPairs(contrR, -rankL)
	rightNode, err := g.lowerContraction(prod.Right, shiftedR)
	if err != nil {
		return nil, err
	}

	if len(mixed) == 0 {
		return g.Builder.CreateProduct(leftNode, rightNode), nil
	}

	indL := make([]int, len(mixed))
	indR := make([]int, len(mixed))
	for i, p := range mixed {
		indL[i] = p[0]
		indR[i] = p[1]
	}

	indL = adjustForRemoved(indL, contrL)
	indR = adjustForRemoved(indR, contrL, contrR)
	indR = shiftInts(indR, -rankContractedL)

	return g.Builder.CreateContraction(leftNode, indL, rightNode, indR), nil
}

func shiftPairs(pairs [][2]int, delta int) [][2]int {
	out := make([][2]int, len(pairs))
	for i, p := range pairs {
		out[i] = [2]int{p[0] + delta, p[1] + delta}
	}
	return out
}

func shiftInts(list []int, delta int) []int {
	out := make([]int, len(list))
	for i, v := range list {
		out[i] = v + delta
	}
	return out
}

// adjustForRemoved subtracts, from each entry of list, the number of
// already-removed indices (flattened across every set in removedSets) that
// are strictly less than that entry's original value. Counting is always
// against the original raw values so the adjustment composes correctly
// across contrL and contrR; subtracting against a partially-adjusted value
// would double-count or miss positions whenever contrL and contrR are both
// non-empty.
func adjustForRemoved(list []int, removedSets ...[][2]int) []int {
	var flat []int
	for _, set := range removedSets {
		for _, p := range set {
			flat = append(flat, p[0], p[1])
		}
	}
	sort.Ints(flat)

	out := make([]int, len(list))
	for i, v := range list {
		n := sort.SearchInts(flat, v)
		out[i] = v - n
	}
	return out
}
