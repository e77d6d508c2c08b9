// Package emit defines the downstream emitter contract: the fixed set of
// named operations GraphCodeGen and the pipeline's declaration stage call to
// produce output,
// plus a shared temporary-name counter concrete backends can embed.
package emit

import "github.com/tensorc/tlc/internal/ast"

// Emitter is the only way code generation talks to an output backend. Every
// operation takes previously-generated temporary names (or declared
// variable names) and, where relevant, produces a new one.
type Emitter interface {
	DeclareVariable(name string, dims []int, io ast.IOFlag)
	Assign(lhsName, rhsTemp string)
	Product(out, a, b string)
	Contract(out string, a string, aIdx []int, b string, bIdx []int)
	Elementwise(out string, op string, a, b string)
	Stack(out string, operands []string)
	Transposition(out string, a string, rank int, pairs [][2]int)
	FreshTemp() string
}

// TempCounter is a shared freshTemp() implementation: sequential "%tN"
// names, embeddable by any concrete Emitter.
type TempCounter struct {
	seq int
}

func (c *TempCounter) FreshTemp() string {
	name := tempName(c.seq)
	c.seq++
	return name
}

func tempName(n int) string {
	digits := [...]byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9'}
	if n == 0 {
		return "%t0"
	}
	var buf []byte
	for n > 0 {
		buf = append([]byte{digits[n%10]}, buf...)
		n /= 10
	}
	return "%t" + string(buf)
}
