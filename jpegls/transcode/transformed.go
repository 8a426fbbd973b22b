package transcode

import (
	"fmt"
	"io"

	"github.com/cocosip/go-jpegls/jpegls/colortransform"
	"github.com/cocosip/go-jpegls/jpegls/common"
	"github.com/cocosip/go-jpegls/jpegls/pixel"
)

// Transformed applies a color transform, interleave conversion and an
// optional R/B swap while moving lines.
//
// Supported layouts:
//   - 3 components, sample-interleaved: packed triplets transformed in place
//   - 3 components, line-interleaved: triplets scattered to/gathered from planes
//   - 4 components, line-interleaved: the first three transformed, the fourth
//     passed through
//
// The swap is applied on the external side: before the forward transform when
// pulling, after the inverse transform when pushing.
type Transformed[S pixel.Sample] struct {
	cfg       Config
	transform colortransform.Transform[S]

	raw    []byte
	pos    int
	stream io.Reader

	line    []S    // external line as samples
	staging []byte // stream read buffer
}

// NewTransformed creates the transform variant. It rejects layouts the
// transform path cannot serve.
func NewTransformed[S pixel.Sample](cfg Config, src Source, t colortransform.Transform[S]) (*Transformed[S], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("%w: nil color transform", common.ErrInvalidConfiguration)
	}
	switch {
	case cfg.Components == 3 && (cfg.Interleave == InterleaveSample || cfg.Interleave == InterleaveLine):
	case cfg.Components == 4 && cfg.Interleave == InterleaveLine:
	case cfg.Components != 3 && cfg.Components != 4:
		return nil, fmt.Errorf("%w: %w: color transform needs 3 or 4 components, got %d",
			common.ErrInvalidConfiguration, common.ErrInvalidComponents, cfg.Components)
	default:
		return nil, fmt.Errorf("%w: %w: %d components with %v interleave",
			common.ErrInvalidConfiguration, common.ErrInvalidInterleave, cfg.Components, cfg.Interleave)
	}
	if (src.Raw == nil) == (src.Stream == nil) {
		return nil, fmt.Errorf("%w: exactly one of raw buffer or stream is required", common.ErrInvalidConfiguration)
	}
	if src.Raw != nil && cfg.BytesPerLine == 0 {
		return nil, fmt.Errorf("%w: bytes per line is required for a raw buffer", common.ErrInvalidConfiguration)
	}

	return &Transformed[S]{
		cfg:       cfg,
		transform: t,
		raw:       src.Raw,
		stream:    src.Stream,
	}, nil
}

// PullLine reads the next external line, applies the optional swap and the
// forward transform, and stores the result in dst in canonical layout.
func (p *Transformed[S]) PullLine(dst []S, pixelCount, stride int) error {
	if err := checkPixelCount(pixelCount); err != nil {
		return err
	}
	comps := p.cfg.Components
	n := pixelCount * comps
	size := n * pixel.Size[S]()

	if err := p.checkCanonical("canonical line", len(dst), pixelCount, stride); err != nil {
		return err
	}

	var src []byte
	if p.stream != nil {
		p.staging = growBytes(p.staging, size)
		if err := readLine(p.stream, p.staging); err != nil {
			return err
		}
		src = p.staging
	} else {
		if err := checkPitch(size, p.cfg.BytesPerLine); err != nil {
			return err
		}
		if err := checkLen(fmt.Sprintf("raw buffer at offset %d", p.pos), len(p.raw)-p.pos, size); err != nil {
			return err
		}
		src = p.raw[p.pos : p.pos+size]
		p.pos += p.cfg.BytesPerLine
	}

	p.line = growSamples(p.line, n)
	loadSamples(p.line, src)
	if p.cfg.OutputBGR {
		SwapRB(p.line, comps, pixelCount)
	}

	forward := p.transform.Forward
	switch {
	case comps == 3 && p.cfg.Interleave == InterleaveSample:
		TransformLine(dst, p.line, pixelCount, forward)
	case comps == 3:
		TripletToLine(dst, stride, p.line, pixelCount, forward)
	default:
		QuadToLine(dst, stride, p.line, pixelCount, forward)
	}
	return nil
}

// PushLine applies the inverse transform and the optional swap to one
// canonical line and writes it to the external buffer.
//
// Stream-sourced instances are encode-only and PushLine does nothing.
func (p *Transformed[S]) PushLine(src []S, pixelCount, stride int) error {
	if p.stream != nil {
		return nil
	}
	if err := checkPixelCount(pixelCount); err != nil {
		return err
	}

	comps := p.cfg.Components
	if err := p.checkCanonical("canonical line", len(src), pixelCount, stride); err != nil {
		return err
	}

	count := pixelCount
	if p.cfg.Interleave == InterleaveLine {
		count = min(pixelCount, stride)
	}
	n := count * comps
	size := n * pixel.Size[S]()
	if err := checkPitch(size, p.cfg.BytesPerLine); err != nil {
		return err
	}
	if err := checkLen(fmt.Sprintf("raw buffer at offset %d", p.pos), len(p.raw)-p.pos, size); err != nil {
		return err
	}

	p.line = growSamples(p.line, n)
	inverse := p.transform.Inverse
	switch {
	case comps == 3 && p.cfg.Interleave == InterleaveSample:
		TransformLine(p.line, src, count, inverse)
	case comps == 3:
		LineToTriplet(p.line, count, src, stride, inverse)
	default:
		LineToQuad(p.line, count, src, stride, inverse)
	}

	if p.cfg.OutputBGR {
		SwapRB(p.line, comps, count)
	}

	storeSamples(p.raw[p.pos:p.pos+size], p.line)
	p.pos += p.cfg.BytesPerLine
	return nil
}

// checkCanonical verifies a canonical buffer can hold one line.
func (p *Transformed[S]) checkCanonical(what string, have, pixelCount, stride int) error {
	comps := p.cfg.Components
	if p.cfg.Interleave == InterleaveSample {
		return checkLen(what, have, pixelCount*comps)
	}
	if stride <= 0 {
		return fmt.Errorf("%w: plane stride %d", common.ErrInvalidParameter, stride)
	}
	count := min(pixelCount, stride)
	if count == 0 {
		return nil
	}
	return checkLen(what, have, (comps-1)*stride+count)
}
