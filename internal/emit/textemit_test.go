package emit

import (
	"strings"
	"testing"

	"github.com/tensorc/tlc/internal/ast"
)

func TestTextEmitterFreshTempSequential(t *testing.T) {
	e := NewTextEmitter("np")
	if got, want := e.FreshTemp(), "%t0"; got != want {
		t.Fatalf("FreshTemp() = %q, want %q", got, want)
	}
	if got, want := e.FreshTemp(), "%t1"; got != want {
		t.Fatalf("FreshTemp() = %q, want %q", got, want)
	}
}

func TestTextEmitterContract(t *testing.T) {
	e := NewTextEmitter("np")
	e.Contract("%t0", "A", []int{1}, "B", []int{0})
	out := e.String()
	if !strings.Contains(out, "np.tensordot(A, B, axes=(1, 0))") {
		t.Fatalf("unexpected contract rendering: %q", out)
	}
}

func TestTextEmitterTranspositionChainsSwaps(t *testing.T) {
	e := NewTextEmitter("np")
	e.Transposition("%t0", "A", 3, [][2]int{{0, 1}, {1, 2}})
	out := e.String()
	if !strings.Contains(out, "np.swapaxes(np.swapaxes(A, 0, 1), 1, 2)") {
		t.Fatalf("expected chained swapaxes calls, got %q", out)
	}
}

func TestTextEmitterDeclareAndAssign(t *testing.T) {
	e := NewTextEmitter("np")
	e.DeclareVariable("A", []int{2, 3}, ast.IOInput)
	e.Assign("C", "%t1")
	out := e.String()
	if !strings.Contains(out, "A : (2, 3)") {
		t.Fatalf("expected declare comment with dims, got %q", out)
	}
	if !strings.Contains(out, "C = %t1") {
		t.Fatalf("expected assign line, got %q", out)
	}
}
