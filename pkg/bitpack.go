package msgtree

import (
	"bytes"
	"fmt"

	"github.com/icza/bitio"
)

// PackBits stores a '0'/'1' message as real bits, MSB first. The last byte is
// zero padded; the number of bits must be kept to unpack it.
func PackBits(bits string) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := bitio.NewWriter(buf)
	for pos := 0; pos < len(bits); pos++ {
		var err error
		switch bits[pos] {
		case '0':
			err = w.WriteBool(false)
		case '1':
			err = w.WriteBool(true)
		default:
			return nil, &BitstreamError{Pos: pos, Err: ErrInvalidBit}
		}
		if err != nil {
			return nil, fmt.Errorf("error packing bit %d: %w", pos, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("error flushing packed bits: %w", err)
	}
	return buf.Bytes(), nil
}

// UnpackBits reverses PackBits for the first n bits of packed.
func UnpackBits(packed []byte, n int) (string, error) {
	if n > len(packed)*8 {
		return "", fmt.Errorf("cannot unpack %d bits from %d bytes", n, len(packed))
	}
	r := bitio.NewReader(bytes.NewReader(packed))
	out := make([]byte, n)
	for pos := 0; pos < n; pos++ {
		bit, err := r.ReadBool()
		if err != nil {
			return "", fmt.Errorf("error unpacking bit %d: %w", pos, err)
		}
		if bit {
			out[pos] = '1'
		} else {
			out[pos] = '0'
		}
	}
	return string(out), nil
}
