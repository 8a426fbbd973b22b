package common

import "encoding/binary"

// ReadUint16BE reads a big-endian 16-bit value from the start of b.
func ReadUint16BE(b []byte) (uint16, error) {
	if len(b) < 2 {
		return 0, ErrBufferTooSmall
	}
	return binary.BigEndian.Uint16(b), nil
}

// ReadUint32BE reads a big-endian 32-bit value from the start of b.
func ReadUint32BE(b []byte) (uint32, error) {
	if len(b) < 4 {
		return 0, ErrBufferTooSmall
	}
	return binary.BigEndian.Uint32(b), nil
}

// ReadUint64BE reads a big-endian 64-bit value from the start of b.
func ReadUint64BE(b []byte) (uint64, error) {
	if len(b) < 8 {
		return 0, ErrBufferTooSmall
	}
	return binary.BigEndian.Uint64(b), nil
}
