package diag

import (
	"strings"
	"testing"

	"github.com/tensorc/tlc/internal/token"
)

func TestNewIsNotInternal(t *testing.T) {
	e := New(ErrSUndeclared, token.Position{File: "f", Line: 3, Column: 1}, "undeclared symbol %q", "x")
	if e.IsInternal() {
		t.Fatalf("a New (user-facing) diagnostic must not report IsInternal")
	}
	if !strings.Contains(e.Error(), "undeclared symbol \"x\"") {
		t.Fatalf("Error() = %q, want it to contain the formatted message", e.Error())
	}
	if strings.Contains(e.Error(), "[internal]") {
		t.Fatalf("Error() = %q, a user diagnostic must not be tagged [internal]", e.Error())
	}
}

func TestInternalIsInternal(t *testing.T) {
	e := Internal(ErrIMalformedGraph, token.Position{}, "leg table disagrees with edge table")
	if !e.IsInternal() {
		t.Fatalf("an Internal diagnostic must report IsInternal")
	}
	if !strings.Contains(e.Error(), "[internal]") {
		t.Fatalf("Error() = %q, want it tagged [internal]", e.Error())
	}
}

func TestErrorIncludesPosition(t *testing.T) {
	pos := token.Position{File: "prog.tlc.yaml", Line: 5, Column: 2}
	e := New(ErrSDuplicateDecl, pos, "duplicate %q", "A")
	if !strings.Contains(e.Error(), pos.String()) {
		t.Fatalf("Error() = %q, want it to contain the rendered position %q", e.Error(), pos.String())
	}
}
