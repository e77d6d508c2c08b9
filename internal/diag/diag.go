// Package diag classifies every error the compiler can raise into a user
// diagnostic or an internal invariant violation, per the two error classes
// the core must keep visibly distinct.
package diag

import (
	"fmt"

	"github.com/tensorc/tlc/internal/token"
)

// Code identifies a stable diagnostic category. User-facing Sema
// diagnostics use the "ErrS0xx" family; internal invariants use "ErrI0xx".
type Code string

const (
	ErrSDuplicateDecl      Code = "ErrS001" // duplicate declaration
	ErrSUndeclared         Code = "ErrS002" // use of undeclared identifier
	ErrSAssignMismatch     Code = "ErrS003" // assignment type mismatch
	ErrSContractionNotList Code = "ErrS004" // non-list index argument to contraction
	ErrSContractionEmpty   Code = "ErrS005" // empty outer contraction list
	ErrSContractionDupIdx  Code = "ErrS006" // duplicate index in contraction
	ErrSContractionDimIncompat Code = "ErrS007" // incompatible dims within one inner index list
	ErrSStackEmpty         Code = "ErrS008" // empty bracket/stack expression
	ErrSStackTypeMismatch  Code = "ErrS009" // type mismatch between stack members
	ErrSInvalidTypeExpr    Code = "ErrS010" // type expression is neither a named type nor an int list
	ErrSTransposeNotList   Code = "ErrS011" // transposition right operand not a list of pairs
	ErrSIndexOutOfRange    Code = "ErrS012" // contraction/transposition index out of bounds

	ErrINonPairContraction Code = "ErrI001" // contraction tuple is not a pair
	ErrINotAProduct        Code = "ErrI002" // contraction over a non-product sub-tree
	ErrIDuplicateEdge      Code = "ErrI003" // duplicate edge attachment on a leg
	ErrINoEdgeBetween      Code = "ErrI004" // no edge found between consecutive sequence nodes
	ErrIExprNotFound       Code = "ErrI005" // ExprTree-map lookup on an untranslated node
	ErrIMalformedGraph     Code = "ErrI006" // graph invariant violated (leg/edge table disagreement)
	ErrIUnknownBackend     Code = "ErrI007" // compiler.Options named a backend no Emitter implements
)

func (c Code) isInternal() bool {
	return len(c) > 3 && c[3] == 'I'
}

// Error is a single compiler diagnostic: either a user-facing semantic
// error or an internal invariant violation, distinguished by Code.
type Error struct {
	Code    Code
	Pos     token.Position
	Message string
}

func (e *Error) Error() string {
	if e.Code.isInternal() {
		return fmt.Sprintf("%s: [internal] %s: %s", e.Pos, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Pos, e.Code, e.Message)
}

// IsInternal reports whether this diagnostic represents an unreachable,
// implementation-level invariant violation rather than a user mistake.
func (e *Error) IsInternal() bool {
	return e.Code.isInternal()
}

// New builds a user-facing semantic diagnostic.
func New(code Code, pos token.Position, format string, args ...any) *Error {
	return &Error{Code: code, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// Internal builds an internal-invariant diagnostic. Reserved for states the
// rest of the pipeline assumes Sema has already ruled out.
func Internal(code Code, pos token.Position, format string, args ...any) *Error {
	return &Error{Code: code, Pos: pos, Message: fmt.Sprintf(format, args...)}
}
