package msgtree

import (
	"errors"
	"testing"
)

func TestDecodeArchive(t *testing.T) {
	archive := Archive{Name: "monogram", Shape: "^a^^!^dc^rb", Bits: "0111110010110101001111100100"}

	result, err := DecodeArchive(archive, true)
	if err != nil {
		t.Fatal(err)
	}
	if result.Message != "abracadabra!" {
		t.Errorf("unexpected message %q", result.Message)
	}
	if len(result.Codes) != 6 {
		t.Errorf("expected 6 codes, got %d", len(result.Codes))
	}
	if result.Stats.Bits != 28 || result.Stats.Chars != 12 {
		t.Errorf("unexpected statistics %+v", result.Stats)
	}
	if trailing, err := Verify(result); err != nil || trailing != 0 {
		t.Errorf("expected a clean verification, got %d trailing bits, %v", trailing, err)
	}
}

func TestDecodeArchiveCountsRunes(t *testing.T) {
	result, err := DecodeArchive(Archive{Shape: "^^é€^ab", Bits: "0001"}, false)
	if err != nil {
		t.Fatal(err)
	}
	if result.Stats.Chars != 2 {
		t.Errorf("expected 2 characters, got %d", result.Stats.Chars)
	}
}

func TestDecodeArchiveErrors(t *testing.T) {
	cases := []struct {
		name    string
		archive Archive
		strict  bool
		err     error
	}{
		{"empty shape", Archive{Shape: "", Bits: "01"}, false, ErrEmptyTreeSpec},
		{"malformed shape", Archive{Shape: "^a", Bits: "01"}, false, ErrMalformedTreeSpec},
		{"degenerate", Archive{Shape: "a", Bits: "01"}, false, ErrDegenerateTree},
		{"strict trailing bits", Archive{Shape: "^a^bc", Bits: "01"}, true, ErrIncompletePath},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			result, err := DecodeArchive(c.archive, c.strict)
			if !errors.Is(err, c.err) {
				t.Fatalf("expected %v, got %v", c.err, err)
			}
			if !result.Error || result.Message != "" {
				t.Errorf("expected an error result, got %+v", result)
			}
		})
	}
}

func TestVerifyTrailingBits(t *testing.T) {
	result, err := DecodeArchive(Archive{Shape: "^a^bc", Bits: "01"}, false)
	if err != nil {
		t.Fatal(err)
	}
	trailing, err := Verify(result)
	if err != nil {
		t.Fatal(err)
	}
	if trailing != 1 {
		t.Errorf("expected 1 trailing bit, got %d", trailing)
	}
}
