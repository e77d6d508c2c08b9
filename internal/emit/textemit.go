package emit

import (
	"fmt"
	"strings"

	"github.com/tensorc/tlc/internal/ast"
)

// TextEmitter renders a NumPy-flavored source text: tensordot, stack and
// swapaxes calls appended to an internal buffer, one line per operation.
type TextEmitter struct {
	TempCounter
	ModulePrefix string
	buf          strings.Builder
}

// NewTextEmitter creates a TextEmitter importing NumPy under prefix (e.g.
// "np").
func NewTextEmitter(modulePrefix string) *TextEmitter {
	return &TextEmitter{ModulePrefix: modulePrefix}
}

func (e *TextEmitter) append(line string) {
	e.buf.WriteString(line)
	e.buf.WriteByte('\n')
}

// String returns everything emitted so far.
func (e *TextEmitter) String() string { return e.buf.String() }

func (e *TextEmitter) DeclareVariable(name string, dims []int, io ast.IOFlag) {
	e.append(fmt.Sprintf("# %s : %s", name, dimsString(dims)))
}

func (e *TextEmitter) Assign(lhsName, rhsTemp string) {
	e.append(fmt.Sprintf("%s = %s", lhsName, rhsTemp))
}

func (e *TextEmitter) Product(out, a, b string) {
	e.append(fmt.Sprintf("%s = %s.tensordot(%s, %s, axes=0)", out, e.ModulePrefix, a, b))
}

func (e *TextEmitter) Contract(out string, a string, aIdx []int, b string, bIdx []int) {
	side := func(xs []int) string {
		if len(xs) == 1 {
			return intsJoin(xs)
		}
		return intsString(xs)
	}
	e.append(fmt.Sprintf("%s = %s.tensordot(%s, %s, axes=(%s, %s))",
		out, e.ModulePrefix, a, b, side(aIdx), side(bIdx)))
}

func (e *TextEmitter) Elementwise(out string, op string, a, b string) {
	e.append(fmt.Sprintf("%s = %s %s %s", out, a, op, b))
}

func (e *TextEmitter) Stack(out string, operands []string) {
	e.append(fmt.Sprintf("%s = %s.stack([%s])", out, e.ModulePrefix, strings.Join(operands, ", ")))
}

func (e *TextEmitter) Transposition(out string, a string, rank int, pairs [][2]int) {
	expr := a
	for _, p := range pairs {
		expr = fmt.Sprintf("%s.swapaxes(%s, %d, %d)", e.ModulePrefix, expr, p[0], p[1])
	}
	e.append(fmt.Sprintf("%s = %s", out, expr))
}

func dimsString(dims []int) string {
	return intsString(dims)
}

func intsString(xs []int) string {
	return "(" + intsJoin(xs) + ")"
}

// intsJoin renders xs as a bare comma-joined list, with no wrapping
// parens: Contract wraps a multi-index side itself and writes a
// single-index side as a bare integer, so the per-side list must not
// double up.
func intsJoin(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprintf("%d", x)
	}
	return strings.Join(parts, ", ")
}
