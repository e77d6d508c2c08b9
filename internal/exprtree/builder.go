package exprtree

// Builder is the arena that owns every ExprTree node created during code
// generation for one compilation unit. Nodes hold back-references to their
// children by plain Go pointer identity; no cycles are permitted, the IR
// is a DAG rooted at assignments, and sharing is allowed. The whole arena is
// released in one shot via Release, rather than individually freeing or
// reference-counting nodes.
type Builder struct {
	nodes []Node
}

// NewBuilder creates an empty arena.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) own(n Node) Node {
	b.nodes = append(b.nodes, n)
	return n
}

// Release discards the arena's record of every node this builder has
// created, so Len reports 0 afterwards. The nodes themselves are not
// modified; Node pointers callers still hold remain ordinary Go values.
func (b *Builder) Release() {
	b.nodes = nil
}

// Len reports how many nodes are currently live in the arena.
func (b *Builder) Len() int { return len(b.nodes) }

func binary(kind Kind, dims []int, l, r Node) *Binary {
	return &Binary{KindTag: kind, ResultDims: dims, Left: l, Right: r}
}

func (b *Builder) CreateAdd(l, r Node) Node       { return b.own(binary(KindAdd, l.Dims(), l, r)) }
func (b *Builder) CreateSub(l, r Node) Node       { return b.own(binary(KindSub, l.Dims(), l, r)) }
func (b *Builder) CreateMul(l, r Node) Node       { return b.own(binary(KindMul, l.Dims(), l, r)) }
func (b *Builder) CreateDiv(l, r Node) Node       { return b.own(binary(KindDiv, l.Dims(), l, r)) }
func (b *Builder) CreateScalarMul(l, r Node) Node { return b.own(binary(KindScalarMul, r.Dims(), l, r)) }
func (b *Builder) CreateScalarDiv(l, r Node) Node { return b.own(binary(KindScalarDiv, l.Dims(), l, r)) }

// CreateProduct builds Product(lhs, rhs); dims = lhs.Dims() ++ rhs.Dims().
func (b *Builder) CreateProduct(l, r Node) Node {
	dims := append(append([]int{}, l.Dims()...), r.Dims()...)
	return b.own(binary(KindProduct, dims, l, r))
}

// CreateContraction builds Contraction(lhs, leftIdx, rhs, rightIdx). Callers
// are responsible for having validated len(leftIdx) == len(rightIdx) and the
// matched-dimension invariant (Sema does this upstream; DirectCodeGen and
// GraphCodeGen only ever construct already-validated index lists).
func (b *Builder) CreateContraction(l Node, leftIdx []int, r Node, rightIdx []int) Node {
	dims := removeIndices(append(append([]int{}, l.Dims()...), r.Dims()...), concatShifted(leftIdx, rightIdx, len(l.Dims())))
	return b.own(&Contraction{
		ResultDims: dims,
		Left:       l,
		LeftIdx:    append([]int{}, leftIdx...),
		Right:      r,
		RightIdx:   append([]int{}, rightIdx...),
	})
}

// CreateStack builds Stack([m0..mk-1]); result is [k] ++ d where d is the
// (shared, caller-validated) dimension vector of the members.
func (b *Builder) CreateStack(members []Node) Node {
	var d []int
	if len(members) > 0 {
		d = members[0].Dims()
	}
	dims := append([]int{len(members)}, d...)
	return b.own(&Stack{ResultDims: dims, Members: append([]Node{}, members...)})
}

// CreateIdentifier builds a bare Identifier(name, dims) with no index
// annotations.
func (b *Builder) CreateIdentifier(name string, dims []int) Node {
	return b.own(&Identifier{Name: name, ResultDims: append([]int{}, dims...)})
}

// CreateTransposition builds Transposition(operand, pairs); dims are
// operand's dims with each listed pair of positions swapped.
func (b *Builder) CreateTransposition(operand Node, pairs [][2]int) Node {
	dims := append([]int{}, operand.Dims()...)
	for _, p := range pairs {
		dims[p[0]], dims[p[1]] = dims[p[1]], dims[p[0]]
	}
	return b.own(&Transposition{ResultDims: dims, Operand: operand, Pairs: pairs})
}

// removeIndices removes, from dims, every position named in idx (which must
// be sorted ascending and hold distinct values), returning the remainder.
func removeIndices(dims []int, idx []int) []int {
	erased := 0
	res := append([]int{}, dims...)
	for _, i := range idx {
		pos := i - erased
		res = append(res[:pos], res[pos+1:]...)
		erased++
	}
	return res
}

// concatShifted merges leftIdx (as-is) with rightIdx (shifted by
// leftRank, since rightIdx is relative to the right operand alone) into one
// sorted index list over the concatenated lhs++rhs dimension vector.
func concatShifted(leftIdx, rightIdx []int, leftRank int) []int {
	all := make([]int, 0, len(leftIdx)+len(rightIdx))
	all = append(all, leftIdx...)
	for _, i := range rightIdx {
		all = append(all, i+leftRank)
	}
	// insertion sort: these lists are always short (contraction arity).
	for i := 1; i < len(all); i++ {
		for j := i; j > 0 && all[j-1] > all[j]; j-- {
			all[j-1], all[j] = all[j], all[j-1]
		}
	}
	return all
}
