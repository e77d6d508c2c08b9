package sema

import (
	"sort"

	"github.com/tensorc/tlc/internal/ast"
	"github.com/tensorc/tlc/internal/diag"
	"github.com/tensorc/tlc/internal/symbols"
	"github.com/tensorc/tlc/internal/typesystem"
)

// typeOf types e per the structural typing rules for each expression kind,
// recording every visited node in the type map.
func (s *sema) typeOf(e ast.Expr) (*typesystem.TensorType, *diag.Error) {
	switch n := e.(type) {
	case *ast.Identifier:
		sym, ok := s.table.Get(n.Name)
		if !ok || sym.Kind != symbols.Variable {
			return nil, undeclaredErr(n.Position, n.Name)
		}
		return s.record(n, sym.Type), nil

	case *ast.Integer:
		return s.record(n, s.interner.Scalar()), nil

	case *ast.ParenExpr:
		t, err := s.typeOf(n.Inner)
		if err != nil {
			return nil, err
		}
		return s.record(n, t), nil

	case *ast.BrackExpr:
		return s.typeOfStack(n)

	case *ast.BinaryExpr:
		return s.typeOfBinary(n)

	default:
		return nil, diag.Internal(diag.ErrIExprNotFound, e.Pos(),
			"sema: unhandled expression kind %T", e)
	}
}

func (s *sema) typeOfStack(n *ast.BrackExpr) (*typesystem.TensorType, *diag.Error) {
	if len(n.Elems) == 0 {
		return nil, diag.New(diag.ErrSStackEmpty, n.Position, "tensor stack cannot be empty")
	}

	first, err := s.typeOf(n.Elems[0])
	if err != nil {
		return nil, err
	}
	for _, el := range n.Elems[1:] {
		t, err := s.typeOf(el)
		if err != nil {
			return nil, err
		}
		if !t.Equal(first) {
			return nil, diag.New(diag.ErrSStackTypeMismatch, el.Pos(),
				"type mismatch in tensor stack: %s vs %s", t, first)
		}
	}

	dims := make([]int, 0, first.Rank()+1)
	dims = append(dims, len(n.Elems))
	dims = append(dims, first.Dims()...)
	return s.record(n, s.interner.GetOrCreate(dims)), nil
}

func (s *sema) typeOfBinary(n *ast.BinaryExpr) (*typesystem.TensorType, *diag.Error) {
	switch n.Op {
	case ast.OpProduct:
		left, err := s.typeOf(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := s.typeOf(n.Right)
		if err != nil {
			return nil, err
		}
		dims := append(append([]int{}, left.Dims()...), right.Dims()...)
		return s.record(n, s.interner.GetOrCreate(dims)), nil

	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv:
		left, err := s.typeOf(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := s.typeOf(n.Right)
		if err != nil {
			return nil, err
		}

		if left.Equal(right) {
			return s.record(n, left), nil
		}
		if n.Op == ast.OpMul && s.interner.IsScalar(left) {
			return s.record(n, right), nil
		}
		if n.Op == ast.OpDiv && s.interner.IsScalar(right) {
			return s.record(n, left), nil
		}
		return nil, diag.New(diag.ErrSAssignMismatch, n.Position,
			"operand type mismatch in %s expression: %s vs %s", n.Op, left, right)

	case ast.OpContraction:
		return s.typeOfContraction(n)

	case ast.OpTransposition:
		return s.typeOfTransposition(n)

	default:
		return nil, diag.Internal(diag.ErrIExprNotFound, n.Position,
			"sema: invalid binary operator %v", n.Op)
	}
}

func (s *sema) typeOfContraction(n *ast.BinaryExpr) (*typesystem.TensorType, *diag.Error) {
	left, err := s.typeOf(n.Left)
	if err != nil {
		return nil, err
	}

	lists, ok := ast.AsListOfIntLists(n.Right)
	if !ok {
		return nil, diag.New(diag.ErrSContractionNotList, n.Right.Pos(),
			"right member of contraction must be a list of integer lists")
	}
	if len(lists) == 0 {
		return nil, diag.New(diag.ErrSContractionEmpty, n.Right.Pos(),
			"contracting over an empty index list")
	}

	seen := make(map[int]bool)
	var toErase []int
	for _, list := range lists {
		if len(list) == 0 {
			continue
		}
		dim := -1
		for _, idx := range list {
			if idx < 0 || idx >= left.Rank() {
				return nil, diag.New(diag.ErrSIndexOutOfRange, n.Right.Pos(),
					"contraction index %d out of range for %s", idx, left)
			}
			if dim == -1 {
				dim = left.Dim(idx)
			} else if left.Dim(idx) != dim {
				return nil, diag.New(diag.ErrSContractionDimIncompat, n.Right.Pos(),
					"incompatible dimensions in contraction index list")
			}
			if seen[idx] {
				return nil, diag.New(diag.ErrSContractionDupIdx, n.Right.Pos(),
					"index %d appears multiple times in contraction", idx)
			}
			seen[idx] = true
			toErase = append(toErase, idx)
		}
	}

	sort.Ints(toErase)
	res := append([]int{}, left.Dims()...)
	erased := 0
	for _, idx := range toErase {
		pos := idx - erased
		res = append(res[:pos], res[pos+1:]...)
		erased++
	}

	return s.record(n, s.interner.GetOrCreate(res)), nil
}

func (s *sema) typeOfTransposition(n *ast.BinaryExpr) (*typesystem.TensorType, *diag.Error) {
	left, err := s.typeOf(n.Left)
	if err != nil {
		return nil, err
	}

	pairs, ok := ast.AsListOfIntLists(n.Right)
	if !ok {
		return nil, diag.New(diag.ErrSTransposeNotList, n.Right.Pos(),
			"right member of transposition must be a list of index pairs")
	}
	if len(pairs) == 0 {
		return nil, diag.New(diag.ErrSContractionEmpty, n.Right.Pos(),
			"transposition over an empty pair list")
	}

	dims := append([]int{}, left.Dims()...)
	for _, p := range pairs {
		if len(p) != 2 {
			return nil, diag.New(diag.ErrSTransposeNotList, n.Right.Pos(),
				"each transposition entry must be an index pair")
		}
		i, j := p[0], p[1]
		if i < 0 || i >= len(dims) || j < 0 || j >= len(dims) {
			return nil, diag.New(diag.ErrSIndexOutOfRange, n.Right.Pos(),
				"transposition index out of range for %s", left)
		}
		dims[i], dims[j] = dims[j], dims[i]
	}

	return s.record(n, s.interner.GetOrCreate(dims)), nil
}
