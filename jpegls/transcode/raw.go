package transcode

import (
	"fmt"

	"github.com/cocosip/go-jpegls/jpegls/pixel"
)

// RawMemory copies lines between a caller-owned memory buffer and the
// canonical buffer without any transform. The external position advances by
// bytesPerLine per call, which may exceed the line payload for padded rows
// but never be smaller.
type RawMemory[S pixel.Sample] struct {
	raw             []byte
	pos             int
	samplesPerPixel int
	bytesPerLine    int
}

// NewRawMemory creates a passthrough transcoder over raw.
func NewRawMemory[S pixel.Sample](raw []byte, samplesPerPixel, bytesPerLine int) *RawMemory[S] {
	return &RawMemory[S]{
		raw:             raw,
		samplesPerPixel: samplesPerPixel,
		bytesPerLine:    bytesPerLine,
	}
}

// PullLine copies pixelCount pixels from the external buffer into dst.
// stride is ignored.
func (p *RawMemory[S]) PullLine(dst []S, pixelCount, stride int) error {
	if err := checkPixelCount(pixelCount); err != nil {
		return err
	}
	n := pixelCount * p.samplesPerPixel
	size := n * pixel.Size[S]()
	if err := checkPitch(size, p.bytesPerLine); err != nil {
		return err
	}
	if err := checkLen("canonical line", len(dst), n); err != nil {
		return err
	}
	if err := checkLen(fmt.Sprintf("raw buffer at offset %d", p.pos), len(p.raw)-p.pos, size); err != nil {
		return err
	}

	loadSamples(dst[:n], p.raw[p.pos:p.pos+size])
	p.pos += p.bytesPerLine
	return nil
}

// PushLine copies pixelCount pixels from src into the external buffer.
// stride is ignored.
func (p *RawMemory[S]) PushLine(src []S, pixelCount, stride int) error {
	if err := checkPixelCount(pixelCount); err != nil {
		return err
	}
	n := pixelCount * p.samplesPerPixel
	size := n * pixel.Size[S]()
	if err := checkPitch(size, p.bytesPerLine); err != nil {
		return err
	}
	if err := checkLen("canonical line", len(src), n); err != nil {
		return err
	}
	if err := checkLen(fmt.Sprintf("raw buffer at offset %d", p.pos), len(p.raw)-p.pos, size); err != nil {
		return err
	}

	storeSamples(p.raw[p.pos:p.pos+size], src[:n])
	p.pos += p.bytesPerLine
	return nil
}

// Offset returns the current byte position in the external buffer.
func (p *RawMemory[S]) Offset() int {
	return p.pos
}
