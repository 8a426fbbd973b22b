// Package pixel defines the fixed-arity sample tuples used by the line
// transcoders: Triplet for three-component pixels and Quad for
// three components plus an auxiliary (alpha) sample.
package pixel

// Sample is the storage type of one component value.
type Sample interface {
	uint8 | uint16
}

// Component positions. The named accessors alias these indices.
const (
	V1 = 0 // R
	V2 = 1 // G
	V3 = 2 // B
	V4 = 3 // A (Quad only)
)

// Triplet holds three samples. V[0..2] are also reachable as R, G, B.
type Triplet[S Sample] struct {
	V [3]S
}

// NewTriplet truncates each value to the sample width.
func NewTriplet[S Sample](v1, v2, v3 int) Triplet[S] {
	return Triplet[S]{V: [3]S{S(v1), S(v2), S(v3)}}
}

// Component returns the sample at position i (0-2).
func (t Triplet[S]) Component(i int) S { return t.V[i] }

func (t Triplet[S]) R() S { return t.V[V1] }
func (t Triplet[S]) G() S { return t.V[V2] }
func (t Triplet[S]) B() S { return t.V[V3] }

// Equal reports whether all three samples match.
func (t Triplet[S]) Equal(o Triplet[S]) bool {
	return t.V == o.V
}

// Quad is a Triplet extended by a fourth sample.
type Quad[S Sample] struct {
	Triplet[S]
	V4 S
}

// NewQuad extends t with alpha, truncated to the sample width.
func NewQuad[S Sample](t Triplet[S], alpha int) Quad[S] {
	return Quad[S]{Triplet: t, V4: S(alpha)}
}

// Component returns the sample at position i (0-3).
func (q Quad[S]) Component(i int) S {
	if i == V4 {
		return q.V4
	}
	return q.Triplet.V[i]
}

// A returns the auxiliary sample.
func (q Quad[S]) A() S { return q.V4 }

// Equal reports whether all four samples match.
func (q Quad[S]) Equal(o Quad[S]) bool {
	return q.Triplet.Equal(o.Triplet) && q.V4 == o.V4
}

// Size returns the storage size of S in bytes.
func Size[S Sample]() int {
	var s S
	switch any(s).(type) {
	case uint16:
		return 2
	default:
		return 1
	}
}

// Bits returns the storage width of S in bits.
func Bits[S Sample]() int {
	return 8 * Size[S]()
}
