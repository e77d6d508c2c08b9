package emit

import (
	"fmt"
	"strings"

	"github.com/tensorc/tlc/internal/ast"
)

// GorgoniaEmitter renders a Go source function body operating on
// *tensor.Dense values from gorgonia.org/tensor's eager API (not its lazy
// computation-graph API, which is built for training loops rather than a
// one-shot translation of a static expression).
type GorgoniaEmitter struct {
	TempCounter
	buf strings.Builder
}

func NewGorgoniaEmitter() *GorgoniaEmitter { return &GorgoniaEmitter{} }

func (e *GorgoniaEmitter) append(line string) {
	e.buf.WriteString("\t" + line)
	e.buf.WriteByte('\n')
}

// String returns the generated function body, one statement per line.
func (e *GorgoniaEmitter) String() string { return e.buf.String() }

func (e *GorgoniaEmitter) DeclareVariable(name string, dims []int, io ast.IOFlag) {
	shape := make([]string, len(dims))
	for i, d := range dims {
		shape[i] = fmt.Sprintf("%d", d)
	}
	e.append(fmt.Sprintf("var %s *tensor.Dense // shape (%s)", name, strings.Join(shape, ", ")))
}

func (e *GorgoniaEmitter) Assign(lhsName, rhsTemp string) {
	e.append(fmt.Sprintf("%s = %s", lhsName, rhsTemp))
}

func (e *GorgoniaEmitter) Product(out, a, b string) {
	e.append(fmt.Sprintf("%s, err := tensor.Outer(%s, %s)", out, a, b))
	e.append("if err != nil { return nil, err }")
}

func (e *GorgoniaEmitter) Contract(out string, a string, aIdx []int, b string, bIdx []int) {
	e.append(fmt.Sprintf("%s, err := tensor.Contract(%s, %s, %s, %s)",
		out, a, b, intSliceLit(aIdx), intSliceLit(bIdx)))
	e.append("if err != nil { return nil, err }")
}

func (e *GorgoniaEmitter) Elementwise(out string, op string, a, b string) {
	fn := map[string]string{"+": "tensor.Add", "-": "tensor.Sub", "*": "tensor.Mul", "/": "tensor.Div"}[op]
	e.append(fmt.Sprintf("%s, err := %s(%s, %s)", out, fn, a, b))
	e.append("if err != nil { return nil, err }")
}

func (e *GorgoniaEmitter) Stack(out string, operands []string) {
	e.append(fmt.Sprintf("%s, err := tensor.Stack(0, %s)", out, strings.Join(operands, ", ")))
	e.append("if err != nil { return nil, err }")
}

func (e *GorgoniaEmitter) Transposition(out string, a string, rank int, pairs [][2]int) {
	e.append(fmt.Sprintf("%s, err := %s.SafeT(%s)", out, a, transposePermLit(rank, pairs)))
	e.append("if err != nil { return nil, err }")
}

func intSliceLit(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprintf("%d", x)
	}
	return "[]int{" + strings.Join(parts, ", ") + "}"
}

// transposePermLit composes pairs (each a dimension swap) into the single
// full axis permutation SafeT expects, starting from the identity and
// applying each swap in order.
func transposePermLit(rank int, pairs [][2]int) string {
	perm := make([]int, rank)
	for i := range perm {
		perm[i] = i
	}
	for _, p := range pairs {
		perm[p[0]], perm[p[1]] = perm[p[1]], perm[p[0]]
	}
	parts := make([]string, rank)
	for i, x := range perm {
		parts[i] = fmt.Sprintf("%d", x)
	}
	return strings.Join(parts, ", ")
}
