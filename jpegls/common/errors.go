package common

import "errors"

// Common errors
var (
	// ErrCorruptState is returned when a context's statistics break an
	// internal invariant. The current encode/decode session must be aborted.
	ErrCorruptState = errors.New("jpegls: corrupt context state")

	// ErrSourceExhausted is returned when an input stream ends before a full
	// line was delivered (insufficient uncompressed input).
	ErrSourceExhausted = errors.New("jpegls: source exhausted before full line delivered")

	ErrInvalidConfiguration = errors.New("jpegls: invalid transcoder configuration")
	ErrInvalidComponents    = errors.New("invalid number of components")
	ErrInvalidBitDepth      = errors.New("invalid bit depth")
	ErrInvalidInterleave    = errors.New("invalid interleave mode")
	ErrInvalidParameter     = errors.New("invalid parameter")
	ErrBufferTooSmall       = errors.New("buffer too small")
	ErrContextIndex         = errors.New("context index out of range")
)
