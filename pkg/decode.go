package msgtree

import "strings"

// Decode walks the tree bit by bit, '0' to the left and '1' to the right,
// emitting a character every time a leaf is reached and starting again from
// the root. A partial code left at the end of bits is dropped.
func Decode(root *Node, bits string) (string, error) {
	decoded, _, err := decode(root, bits)
	return decoded, err
}

// DecodeStrict is Decode, except that bits ending in the middle of a code
// fail with ErrIncompletePath.
func DecodeStrict(root *Node, bits string) (string, error) {
	decoded, pending, err := decode(root, bits)
	if err != nil {
		return "", err
	}
	if pending >= 0 {
		return "", &BitstreamError{Pos: pending, Err: ErrIncompletePath}
	}
	return decoded, nil
}

// decode returns the decoded text and the position where the trailing
// partial code started, or -1 when bits ended on a leaf.
func decode(root *Node, bits string) (string, int, error) {
	if root == nil {
		return "", -1, ErrEmptyTreeSpec
	}
	if len(bits) == 0 {
		return "", -1, nil
	}
	if root.IsLeaf() {
		return "", -1, ErrDegenerateTree
	}

	var sb strings.Builder
	cursor := root
	start := -1
	for pos := 0; pos < len(bits); pos++ {
		if cursor == root {
			start = pos
		}
		switch bits[pos] {
		case '0':
			cursor = cursor.Left
		case '1':
			cursor = cursor.Right
		default:
			return "", -1, &BitstreamError{Pos: pos, Err: ErrInvalidBit}
		}
		if cursor == nil {
			return "", -1, &BitstreamError{Pos: pos, Err: ErrMalformedTreeSpec}
		}
		if cursor.IsLeaf() {
			sb.WriteRune(cursor.Payload)
			cursor = root
		}
	}

	if cursor != root {
		if configuration.Verbosity > 1 {
			logger.Info("Dropping partial code at the end of the message", "decode")
		}
		return sb.String(), start, nil
	}
	return sb.String(), -1, nil
}
