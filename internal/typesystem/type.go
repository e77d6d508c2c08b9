// Package typesystem implements structural tensor types and their interner.
//
// A TensorType is an ordered sequence of positive integer dimensions; rank 0
// is the unique scalar type. Types are interned: two types with equal
// dimension sequences are the same entity (pointer-identity after lookup).
package typesystem

import "strings"

// TensorType is an interned, structurally-keyed tensor shape.
type TensorType struct {
	dims []int
	// name is the optional user-declared type name associated with this
	// type, for emission purposes. Sema sets it from the first type
	// declaration that resolves to this TensorType and leaves it unchanged
	// for any later one; nothing rejects a second declaration of the same
	// shape.
	name string
}

// Dims returns the dimension vector. Callers must not mutate the result.
func (t *TensorType) Dims() []int { return t.dims }

// Rank returns the number of dimensions.
func (t *TensorType) Rank() int { return len(t.dims) }

// Dim returns the dimension at index i.
func (t *TensorType) Dim(i int) int { return t.dims[i] }

// Name returns the user-declared type name, or "" if anonymous.
func (t *TensorType) Name() string { return t.name }

// SetName associates a user-declared type name with this type. Called once,
// from Sema, when a `type` declaration resolves to an integer-list type
// expression.
func (t *TensorType) SetName(name string) { t.name = name }

func (t *TensorType) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, d := range t.dims {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(itoa(d))
	}
	b.WriteByte(']')
	return b.String()
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Equal reports structural equality. Since types are interned, pointer
// equality after a call to Interner.GetOrCreate is equivalent, but callers
// holding types from separate interners (e.g. tests) can still compare
// structurally.
func (t *TensorType) Equal(other *TensorType) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil {
		return false
	}
	if len(t.dims) != len(other.dims) {
		return false
	}
	for i, d := range t.dims {
		if other.dims[i] != d {
			return false
		}
	}
	return true
}

func key(dims []int) string {
	var b strings.Builder
	for _, d := range dims {
		b.WriteString(itoa(d))
		b.WriteByte(',')
	}
	return b.String()
}

// Interner owns every TensorType for a compilation unit's lifetime.
// GetOrCreate is pointer-identity-based after lookup by dimension
// sequence.
type Interner struct {
	byKey   map[string]*TensorType
	order   []*TensorType
	scalar  *TensorType
}

// NewInterner creates an interner pre-seeded with the unique scalar type.
func NewInterner() *Interner {
	in := &Interner{byKey: make(map[string]*TensorType)}
	in.scalar = in.GetOrCreate(nil)
	return in
}

// GetOrCreate returns the interned type for dims, creating it if this is the
// first time this dimension sequence has been seen.
func (in *Interner) GetOrCreate(dims []int) *TensorType {
	k := key(dims)
	if t, ok := in.byKey[k]; ok {
		return t
	}
	cp := make([]int, len(dims))
	copy(cp, dims)
	t := &TensorType{dims: cp}
	in.byKey[k] = t
	in.order = append(in.order, t)
	return t
}

// Scalar returns the unique rank-0 type.
func (in *Interner) Scalar() *TensorType { return in.scalar }

// IsScalar reports whether t is the rank-0 type.
func (in *Interner) IsScalar(t *TensorType) bool { return t.Rank() == 0 }

// All iterates interned types in creation order.
func (in *Interner) All() []*TensorType {
	return in.order
}
