// Package colortransform implements the reversible color transforms applied
// by JPEG-LS implementations before coding multi-component images.
//
// All transforms work modulo 2^bits, where bits is the number of significant
// bits per sample (the storage width unless set otherwise). Inputs must fit
// in bits; for those, Inverse(Forward(x)) returns x exactly.
package colortransform

import "github.com/cocosip/go-jpegls/jpegls/pixel"

// Transform converts three components to their coded representation and back.
type Transform[S pixel.Sample] interface {
	// Name identifies the transform in the registry
	Name() string

	// Forward maps (R, G, B) to the coded triplet
	Forward(r, g, b int) pixel.Triplet[S]

	// Inverse maps a coded triplet back to (R, G, B)
	Inverse(v1, v2, v3 int) pixel.Triplet[S]
}

// modulus holds the sample range of a transform. A zero value means the
// full storage width of S.
type modulus[S pixel.Sample] struct {
	bits int
}

func (m modulus[S]) rng() int {
	if m.bits <= 0 || m.bits > pixel.Bits[S]() {
		return 1 << uint(pixel.Bits[S]())
	}
	return 1 << uint(m.bits)
}

func (m modulus[S]) triplet(v1, v2, v3 int) pixel.Triplet[S] {
	mask := m.rng() - 1
	return pixel.NewTriplet[S](v1&mask, v2&mask, v3&mask)
}

// None passes samples through unchanged.
type None[S pixel.Sample] struct{}

func (None[S]) Name() string { return "none" }

func (None[S]) Forward(r, g, b int) pixel.Triplet[S] {
	return pixel.NewTriplet[S](r, g, b)
}

func (None[S]) Inverse(v1, v2, v3 int) pixel.Triplet[S] {
	return pixel.NewTriplet[S](v1, v2, v3)
}

// HP1 codes R and B as differences from G.
type HP1[S pixel.Sample] struct{ modulus[S] }

// NewHP1 returns HP1 for samples with bits significant bits.
func NewHP1[S pixel.Sample](bits int) HP1[S] { return HP1[S]{modulus[S]{bits}} }

func (HP1[S]) Name() string { return "hp1" }

func (t HP1[S]) Forward(r, g, b int) pixel.Triplet[S] {
	half := t.rng() / 2
	return t.triplet(r-g+half, g, b-g+half)
}

func (t HP1[S]) Inverse(v1, v2, v3 int) pixel.Triplet[S] {
	half := t.rng() / 2
	return t.triplet(v1+v2-half, v2, v3+v2-half)
}

// HP2 codes R against G and B against the mean of R and G.
type HP2[S pixel.Sample] struct{ modulus[S] }

// NewHP2 returns HP2 for samples with bits significant bits.
func NewHP2[S pixel.Sample](bits int) HP2[S] { return HP2[S]{modulus[S]{bits}} }

func (HP2[S]) Name() string { return "hp2" }

func (t HP2[S]) Forward(r, g, b int) pixel.Triplet[S] {
	half := t.rng() / 2
	return t.triplet(r-g+half, g, b-((r+g)>>1)-half)
}

func (t HP2[S]) Inverse(v1, v2, v3 int) pixel.Triplet[S] {
	mask := t.rng() - 1
	half := t.rng() / 2
	r := (v1 + v2 - half) & mask
	g := v2 & mask
	return t.triplet(r, g, v3+((r+g)>>1)-half)
}

// HP3 codes G against the mean of the R and B differences.
type HP3[S pixel.Sample] struct{ modulus[S] }

// NewHP3 returns HP3 for samples with bits significant bits.
func NewHP3[S pixel.Sample](bits int) HP3[S] { return HP3[S]{modulus[S]{bits}} }

func (HP3[S]) Name() string { return "hp3" }

func (t HP3[S]) Forward(r, g, b int) pixel.Triplet[S] {
	rng := t.rng()
	mask := rng - 1
	v2 := (b - g + rng/2) & mask
	v3 := (r - g + rng/2) & mask
	return t.triplet(g+((v2+v3)>>2)-rng/4, v2, v3)
}

func (t HP3[S]) Inverse(v1, v2, v3 int) pixel.Triplet[S] {
	rng := t.rng()
	mask := rng - 1
	v2 &= mask
	v3 &= mask
	g := v1 - ((v3 + v2) >> 2) + rng/4
	return t.triplet(v3+g-rng/2, g, v2+g-rng/2)
}

// IsIdentity reports whether t leaves samples unchanged.
func IsIdentity[S pixel.Sample](t Transform[S]) bool {
	if t == nil {
		return true
	}
	_, ok := t.(None[S])
	return ok
}
