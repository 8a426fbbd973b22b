package lossless

import (
	"fmt"

	"github.com/cocosip/go-jpegls/jpegls/common"
)

const (
	// MinC and MaxC bound the bias-correction value C.
	MinC = -128
	MaxC = 127

	// maxMagnitude bounds A and |B| (ISO/IEC 14495-1, A.12).
	maxMagnitude = 65536 * 256

	// maxGolombK caps the Golomb parameter search.
	maxGolombK = 32

	// RegularContextCount is the number of regular-mode contexts (365).
	RegularContextCount = 365
)

// Context holds the statistical model for a specific context
type Context struct {
	A int // Accumulated prediction error magnitude
	B int // Bias accumulator
	N int // Occurrence count, never 0
	C int // Bias correction value in [MinC, MaxC]
}

// NewContext creates a new context seeded with A = a.
func NewContext(a int) Context {
	return Context{A: a, B: 0, N: 1, C: 0}
}

// GetErrorCorrection returns the error correction term for Golomb parameter k.
//   - k != 0: 0
//   - k == 0: +1 when 2*B + N - 1 > 0, otherwise -1
func (ctx *Context) GetErrorCorrection(k int) int {
	if k != 0 {
		return 0
	}
	return -common.Sign(-(2*ctx.B + ctx.N - 1))
}

// UpdateVariables updates the context after coding errval
// (ISO/IEC 14495-1, code segments A.12 and A.13).
//
// An ErrCorruptState error is returned when N is zero on entry or when A or
// |B| would leave the valid range; in that case the context is not modified.
func (ctx *Context) UpdateVariables(errval, near, nreset int) error {
	if ctx.N == 0 {
		return fmt.Errorf("%w: N is zero", common.ErrCorruptState)
	}

	a := ctx.A + common.Abs(errval)
	b := ctx.B + errval*(2*near+1)
	n := ctx.N
	c := ctx.C

	if a >= maxMagnitude || common.Abs(b) >= maxMagnitude {
		return fmt.Errorf("%w: A=%d B=%d after errval=%d", common.ErrCorruptState, a, b, errval)
	}

	if n == nreset {
		a >>= 1
		b >>= 1
		n >>= 1
	}

	n++

	if b <= -n {
		b = common.Max(-n+1, b+n)
		if c > MinC {
			c--
		}
	} else if b > 0 {
		b = common.Min(b-n, 0)
		if c < MaxC {
			c++
		}
	}

	if n == 0 {
		return fmt.Errorf("%w: N is zero after update", common.ErrCorruptState)
	}

	ctx.A, ctx.B, ctx.N, ctx.C = a, b, n, c
	return nil
}

// GetGolomb returns the smallest k >= 0 such that N << k >= A.
func (ctx *Context) GetGolomb() int {
	n, a := ctx.N, ctx.A
	k := 0
	for k < maxGolombK && (n<<uint(k)) < a {
		k++
	}
	return k
}

// ContextTable holds all regular contexts of one encode or decode session.
// It is not safe for concurrent use; sessions must not share a table.
type ContextTable struct {
	contexts []Context
	traits   Traits
}

// NewContextTable creates a table of RegularContextCount contexts seeded
// from traits.AInit.
func NewContextTable(traits Traits) *ContextTable {
	contexts := make([]Context, RegularContextCount)
	for i := range contexts {
		contexts[i] = NewContext(traits.AInit)
	}

	return &ContextTable{
		contexts: contexts,
		traits:   traits,
	}
}

// Len returns the number of contexts in the table.
func (ct *ContextTable) Len() int {
	return len(ct.contexts)
}

// Traits returns the coding parameters the table was built with.
func (ct *ContextTable) Traits() Traits {
	return ct.traits
}

// Get returns the context at index.
func (ct *ContextTable) Get(index int) (*Context, error) {
	if index < 0 || index >= len(ct.contexts) {
		return nil, fmt.Errorf("%w: %d (table has %d)", common.ErrContextIndex, index, len(ct.contexts))
	}
	return &ct.contexts[index], nil
}

// Update applies UpdateVariables to the context at index using the
// session's NEAR and RESET values.
func (ct *ContextTable) Update(index, errval int) error {
	ctx, err := ct.Get(index)
	if err != nil {
		return err
	}
	if err := ctx.UpdateVariables(errval, ct.traits.Near, ct.traits.Reset); err != nil {
		return fmt.Errorf("context %d: %w", index, err)
	}
	return nil
}

// Reset restores every context to its initial state.
func (ct *ContextTable) Reset() {
	for i := range ct.contexts {
		ct.contexts[i] = NewContext(ct.traits.AInit)
	}
}
