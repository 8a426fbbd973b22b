package lossless

import (
	"fmt"

	"github.com/cocosip/go-dicom/pkg/dicom/transfer"
	"github.com/cocosip/go-jpegls/jpegls/common"
)

// DefaultReset is the default RESET threshold (ISO/IEC 14495-1, C.2.4.1.1).
const DefaultReset = 64

// Traits captures the derived JPEG-LS coding parameters of one session.
type Traits struct {
	MaxVal int
	Near   int
	Range  int
	Qbpp   int
	Limit  int
	Reset  int
	AInit  int // Initial value of A for every context
}

// NewTraits computes derived parameters (Annex A.2.1 and C.2.4.1.1).
// A reset of 0 selects DefaultReset.
func NewTraits(maxVal, near, reset int) (Traits, error) {
	if maxVal < 1 || maxVal > 65535 {
		return Traits{}, fmt.Errorf("%w: MAXVAL %d (must be 1-65535)", common.ErrInvalidParameter, maxVal)
	}
	if near < 0 || near > common.Min(255, maxVal/2) {
		return Traits{}, fmt.Errorf("%w: NEAR %d (must be 0-%d)", common.ErrInvalidParameter, near, common.Min(255, maxVal/2))
	}
	if reset == 0 {
		reset = DefaultReset
	}
	if reset < 3 || reset > 65535 {
		return Traits{}, fmt.Errorf("%w: RESET %d (must be 3-65535)", common.ErrInvalidParameter, reset)
	}

	range_ := (maxVal+2*near)/(2*near+1) + 1
	bpp := common.Max(2, common.Log2(maxVal+1))
	qbpp := common.Log2(range_)

	return Traits{
		MaxVal: maxVal,
		Near:   near,
		Range:  range_,
		Qbpp:   qbpp,
		Limit:  2 * (bpp + common.Max(8, bpp)),
		Reset:  reset,
		AInit:  common.Max(2, (range_+32)/64),
	}, nil
}

// NewTraitsForBitDepth is NewTraits with MAXVAL = 2^bitDepth - 1.
func NewTraitsForBitDepth(bitDepth, near int) (Traits, error) {
	if bitDepth < 2 || bitDepth > 16 {
		return Traits{}, fmt.Errorf("%w: %d (must be 2-16)", common.ErrInvalidBitDepth, bitDepth)
	}
	return NewTraits((1<<uint(bitDepth))-1, near, DefaultReset)
}

// IsLossless reports whether NEAR is 0.
func (t Traits) IsLossless() bool {
	return t.Near == 0
}

// TransferSyntaxUID returns the DICOM transfer syntax a session coded with
// these traits produces.
func (t Traits) TransferSyntaxUID() string {
	if t.IsLossless() {
		return transfer.JPEGLSLossless.UID().UID()
	}
	return transfer.JPEGLSNearLossless.UID().UID()
}
