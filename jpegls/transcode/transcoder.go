// Package transcode adapts external pixel layouts to the canonical
// per-scanline sample stream consumed by the JPEG-LS predictive coder,
// and back.
//
// One LineTranscoder serves one encode or decode session. PullLine is called
// once per scanline during encoding and PushLine once per scanline during
// decoding, in row order. Instances are not safe for concurrent use.
package transcode

import (
	"fmt"
	"io"

	"github.com/cocosip/go-jpegls/jpegls/colortransform"
	"github.com/cocosip/go-jpegls/jpegls/common"
	"github.com/cocosip/go-jpegls/jpegls/pixel"
)

// LineTranscoder moves one scanline between the external representation and
// the canonical buffer.
//
// stride is the distance, in samples, between component planes of a
// line-interleaved canonical buffer. Variants that do not gather or scatter
// planes ignore it.
type LineTranscoder[S pixel.Sample] interface {
	// PullLine fills dst with the next external scanline (encoding)
	PullLine(dst []S, pixelCount, stride int) error

	// PushLine writes one decoded canonical scanline to the external
	// destination (decoding)
	PushLine(src []S, pixelCount, stride int) error
}

// Interleave is the JPEG-LS interleave mode (ILV).
type Interleave int

const (
	// InterleaveNone codes one component at a time
	InterleaveNone Interleave = iota
	// InterleaveLine stores each component across the row before the next
	InterleaveLine
	// InterleaveSample stores packed tuples
	InterleaveSample
)

func (i Interleave) String() string {
	switch i {
	case InterleaveNone:
		return "none"
	case InterleaveLine:
		return "line"
	case InterleaveSample:
		return "sample"
	default:
		return fmt.Sprintf("Interleave(%d)", int(i))
	}
}

// Config describes the external pixel layout.
type Config struct {
	Components   int        // 1-4; transforms need 3 or 4
	Interleave   Interleave // ILV mode of the scan
	OutputBGR    bool       // swap first and third component on the external side
	BytesPerLine int        // external row pitch, may include padding
	SampleBits   int        // storage width of one sample: 8 or 16
}

// Validate checks the configuration on its own. New performs additional
// checks that depend on the sample type and transform.
func (c Config) Validate() error {
	if c.Components < 1 || c.Components > 4 {
		return fmt.Errorf("%w: %w: %d (must be 1-4)", common.ErrInvalidConfiguration, common.ErrInvalidComponents, c.Components)
	}
	if c.SampleBits != 8 && c.SampleBits != 16 {
		return fmt.Errorf("%w: %w: %d (must be 8 or 16)", common.ErrInvalidConfiguration, common.ErrInvalidBitDepth, c.SampleBits)
	}
	if c.Interleave < InterleaveNone || c.Interleave > InterleaveSample {
		return fmt.Errorf("%w: %w: %v", common.ErrInvalidConfiguration, common.ErrInvalidInterleave, c.Interleave)
	}
	if c.Interleave != InterleaveNone && c.Components == 1 {
		return fmt.Errorf("%w: %w: %v with a single component", common.ErrInvalidConfiguration, common.ErrInvalidInterleave, c.Interleave)
	}
	if c.BytesPerLine < 0 {
		return fmt.Errorf("%w: negative bytes per line %d", common.ErrInvalidConfiguration, c.BytesPerLine)
	}
	return nil
}

// samplesPerPixel is the number of samples one PullLine/PushLine pixel
// carries in the external buffer.
func (c Config) samplesPerPixel() int {
	if c.Interleave == InterleaveNone {
		return 1
	}
	return c.Components
}

// Source is the external pixel data: a raw memory buffer advanced by
// Config.BytesPerLine per line, or a byte stream. Exactly one must be set.
// Raw must stay valid for the life of the transcoder.
type Source struct {
	Raw    []byte
	Stream io.Reader
}

// New selects the transcoder variant for cfg, src and transform t.
// A nil t means no color transform.
//
//   - identity transform, no channel swap: raw-memory or stream passthrough,
//     except 3/4-component line-interleaved data, which goes through the
//     transform variant to honor the canonical plane stride
//   - otherwise: the transform variant
//
// Configuration mismatches are rejected here, before any I/O.
func New[S pixel.Sample](cfg Config, src Source, t colortransform.Transform[S]) (LineTranscoder[S], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.SampleBits != pixel.Bits[S]() {
		return nil, fmt.Errorf("%w: %w: config has %d-bit samples, transcoder uses %d-bit",
			common.ErrInvalidConfiguration, common.ErrInvalidBitDepth, cfg.SampleBits, pixel.Bits[S]())
	}
	if (src.Raw == nil) == (src.Stream == nil) {
		return nil, fmt.Errorf("%w: exactly one of raw buffer or stream is required", common.ErrInvalidConfiguration)
	}
	if src.Raw != nil && cfg.BytesPerLine == 0 {
		return nil, fmt.Errorf("%w: bytes per line is required for a raw buffer", common.ErrInvalidConfiguration)
	}

	identity := colortransform.IsIdentity(t) && !cfg.OutputBGR
	planar := cfg.Interleave == InterleaveLine && (cfg.Components == 3 || cfg.Components == 4)

	if identity && !planar {
		if src.Stream != nil {
			return NewStream[S](src.Stream, cfg.samplesPerPixel()), nil
		}
		return NewRawMemory[S](src.Raw, cfg.samplesPerPixel(), cfg.BytesPerLine), nil
	}

	if t == nil {
		t = colortransform.None[S]{}
	}
	tr, err := NewTransformed(cfg, src, t)
	if err != nil {
		return nil, err
	}
	return tr, nil
}

// checkPixelCount rejects a negative line length before it reaches a slice
// expression.
func checkPixelCount(pixelCount int) error {
	if pixelCount < 0 {
		return fmt.Errorf("%w: pixel count %d", common.ErrInvalidParameter, pixelCount)
	}
	return nil
}

// checkPitch verifies that a line payload of size bytes fits in one row of
// the external buffer. Rows may be padded but never overlap.
func checkPitch(size, bytesPerLine int) error {
	if size > bytesPerLine {
		return fmt.Errorf("%w: line payload %d bytes exceeds bytes per line %d",
			common.ErrInvalidParameter, size, bytesPerLine)
	}
	return nil
}

func checkLen(what string, have, need int) error {
	if have < need {
		return fmt.Errorf("%w: %s has %d, need %d", common.ErrBufferTooSmall, what, have, need)
	}
	return nil
}
