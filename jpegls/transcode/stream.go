package transcode

import (
	"errors"
	"fmt"
	"io"

	"github.com/cocosip/go-jpegls/jpegls/common"
	"github.com/cocosip/go-jpegls/jpegls/pixel"
)

// Stream pulls lines from an input byte stream. It is encode-only:
// PushLine does nothing.
type Stream[S pixel.Sample] struct {
	r               io.Reader
	samplesPerPixel int
	buf             []byte
}

// NewStream creates a stream-sourced passthrough transcoder.
func NewStream[S pixel.Sample](r io.Reader, samplesPerPixel int) *Stream[S] {
	return &Stream[S]{r: r, samplesPerPixel: samplesPerPixel}
}

// PullLine reads pixelCount pixels from the stream into dst. A stream that
// ends first yields ErrSourceExhausted. stride is ignored.
func (p *Stream[S]) PullLine(dst []S, pixelCount, stride int) error {
	if err := checkPixelCount(pixelCount); err != nil {
		return err
	}
	n := pixelCount * p.samplesPerPixel
	if err := checkLen("canonical line", len(dst), n); err != nil {
		return err
	}

	p.buf = growBytes(p.buf, n*pixel.Size[S]())
	if err := readLine(p.r, p.buf); err != nil {
		return err
	}

	loadSamples(dst[:n], p.buf)
	return nil
}

// PushLine is a no-op: a stream source has no external destination.
func (p *Stream[S]) PushLine(src []S, pixelCount, stride int) error {
	return nil
}

// readLine fills buf from r. A read that returns no bytes before buf is
// full ends the line with ErrSourceExhausted.
func readLine(r io.Reader, buf []byte) error {
	off := 0
	for off < len(buf) {
		n, err := r.Read(buf[off:])
		off += n
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read line: %w", err)
		}
		if n == 0 && off < len(buf) {
			return fmt.Errorf("%w: got %d of %d bytes", common.ErrSourceExhausted, off, len(buf))
		}
	}
	return nil
}
