package common

import "unsafe"

// SliceToBytes reinterprets a slice of fixed-size records as raw bytes for GPU upload.
// The result aliases the input's backing array and must be treated as read-only.
//
// Parameters:
//   - data: the records to view
//
// Returns:
//   - []byte: a byte view over data, or nil when data is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), int(unsafe.Sizeof(zero))*len(data))
}

// PadTo4 returns b extended with zero bytes up to the next multiple of four.
// Buffer copies in WebGPU must be 4-byte aligned, so index data made of uint16 values
// with an odd count needs this before upload.
//
// Parameters:
//   - b: the bytes to pad
//
// Returns:
//   - []byte: b itself when already aligned, otherwise a padded copy
func PadTo4(b []byte) []byte {
	rem := len(b) % 4
	if rem == 0 {
		return b
	}
	out := make([]byte, len(b)+4-rem)
	copy(out, b)
	return out
}
