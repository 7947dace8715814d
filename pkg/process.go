package msgtree

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Result is everything produced from a single archive.
type Result struct {
	Name    string
	Shape   string
	Bits    string
	Codes   CodeTable
	Message string
	Stats   Statistics
	Error   bool
}

// DecodeArchive builds the tree of the archive and decodes its message. Tree
// errors abort before anything is decoded.
func DecodeArchive(archive Archive, strict bool) (Result, error) {
	root, err := BuildTree(archive.Shape)
	if err != nil {
		return Result{Name: archive.Name, Error: true}, fmt.Errorf("error building tree for %q: %w", archive.Name, err)
	}
	return decodeWithTree(archive, root, strict)
}

// DecodeArchiveCached is DecodeArchive reusing trees already built for the
// same shape.
func DecodeArchiveCached(archive Archive, strict bool, cache *TreeCache) (Result, error) {
	root, err := cache.Get(archive.Shape)
	if err != nil {
		return Result{Name: archive.Name, Error: true}, fmt.Errorf("error building tree for %q: %w", archive.Name, err)
	}
	return decodeWithTree(archive, root, strict)
}

func decodeWithTree(archive Archive, root *Node, strict bool) (Result, error) {
	decodeFunc := Decode
	if strict {
		decodeFunc = DecodeStrict
	}
	message, err := decodeFunc(root, archive.Bits)
	if err != nil {
		return Result{Name: archive.Name, Error: true}, fmt.Errorf("error decoding %q: %w", archive.Name, err)
	}

	result := Result{
		Name:    archive.Name,
		Shape:   archive.Shape,
		Bits:    archive.Bits,
		Codes:   BuildCodeTable(root),
		Message: message,
		Stats:   ComputeStatistics(len(archive.Bits), utf8.RuneCountInString(message)),
	}
	if configuration.Verbosity > 1 {
		message := fmt.Sprintf("Decoded %s: %d characters from %d bits", archive.Name, result.Stats.Chars, result.Stats.Bits)
		logger.Info(message, "decode")
	}
	return result, nil
}

// Verify encodes the decoded message again with the code table and checks it
// against the original bits. Trailing bits dropped by a lenient decode are
// reported, not treated as a mismatch.
func Verify(result Result) (trailing int, err error) {
	encoded, err := result.Codes.Encode(result.Message)
	if err != nil {
		return 0, err
	}
	if !strings.HasPrefix(result.Bits, encoded) {
		return 0, fmt.Errorf("re-encoded message of %q does not match its bits", result.Name)
	}
	return len(result.Bits) - len(encoded), nil
}
