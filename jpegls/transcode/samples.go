package transcode

import (
	"encoding/binary"

	"github.com/cocosip/go-jpegls/jpegls/pixel"
)

// External 16-bit samples are little-endian (DICOM native byte order).

// loadSamples unpacks len(dst) samples from src.
func loadSamples[S pixel.Sample](dst []S, src []byte) {
	switch d := any(dst).(type) {
	case []uint8:
		copy(d, src)
	case []uint16:
		for i := range d {
			d[i] = binary.LittleEndian.Uint16(src[2*i:])
		}
	}
}

// storeSamples packs src into dst.
func storeSamples[S pixel.Sample](dst []byte, src []S) {
	switch s := any(src).(type) {
	case []uint8:
		copy(dst, s)
	case []uint16:
		for i, v := range s {
			binary.LittleEndian.PutUint16(dst[2*i:], v)
		}
	}
}

// growSamples returns buf resliced to n, reallocating only when too small.
func growSamples[S pixel.Sample](buf []S, n int) []S {
	if cap(buf) < n {
		return make([]S, n)
	}
	return buf[:n]
}

func growBytes(buf []byte, n int) []byte {
	if cap(buf) < n {
		return make([]byte, n)
	}
	return buf[:n]
}
