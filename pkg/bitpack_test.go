package msgtree

import (
	"bytes"
	"errors"
	"testing"
)

func TestPackBits(t *testing.T) {
	cases := []struct {
		bits   string
		packed []byte
	}{
		{"", []byte{}},
		{"1", []byte{0x80}},
		{"01000001", []byte{0x41}},
		{"0100000101", []byte{0x41, 0x40}},
	}

	for _, c := range cases {
		t.Run(c.bits, func(t *testing.T) {
			packed, err := PackBits(c.bits)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(packed, c.packed) {
				t.Errorf("expected %x, got %x", c.packed, packed)
			}
			unpacked, err := UnpackBits(packed, len(c.bits))
			if err != nil {
				t.Fatal(err)
			}
			if unpacked != c.bits {
				t.Errorf("expected %q back, got %q", c.bits, unpacked)
			}
		})
	}
}

func TestPackBitsErrors(t *testing.T) {
	if _, err := PackBits("0120"); !errors.Is(err, ErrInvalidBit) {
		t.Errorf("expected ErrInvalidBit, got %v", err)
	}
	if _, err := UnpackBits([]byte{0xff}, 9); err == nil {
		t.Error("expected an error unpacking more bits than available")
	}
}
