package msgtree

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestBuildCodeTable(t *testing.T) {
	cases := []struct {
		shape string
		table CodeTable
	}{
		{"^ab", CodeTable{{'a', "0"}, {'b', "1"}}},
		{"^^abc", CodeTable{{'a', "00"}, {'b', "01"}, {'c', "1"}}},
		{"^a^^!^dc^rb", CodeTable{
			{'a', "0"}, {'!', "100"}, {'d', "1010"}, {'c', "1011"}, {'r', "110"}, {'b', "111"},
		}},
		{"a", CodeTable{{'a', ""}}},
	}

	for _, c := range cases {
		t.Run(fmt.Sprintf("%q", c.shape), func(t *testing.T) {
			got := BuildCodeTable(mustBuild(t, c.shape))
			if len(got) != len(c.table) {
				t.Fatalf("expected %v, got %v", c.table, got)
			}
			for i := range got {
				if got[i] != c.table[i] {
					t.Errorf("entry %d: expected %v, got %v", i, c.table[i], got[i])
				}
			}
		})
	}
}

func TestCodeTablePrefixFree(t *testing.T) {
	for _, shape := range []string{"^a^^!^dc^rb", "^^^abcd", "^^ab^cd", "^^ \n^ab"} {
		t.Run(fmt.Sprintf("%q", shape), func(t *testing.T) {
			root := mustBuild(t, shape)
			table := BuildCodeTable(root)
			if len(table) != root.Leaves() {
				t.Errorf("expected %d codes, got %d", root.Leaves(), len(table))
			}
			for i, a := range table {
				for j, b := range table {
					if i != j && strings.HasPrefix(b.Code, a.Code) {
						t.Errorf("code %q of %q is a prefix of %q of %q", a.Code, a.Symbol, b.Code, b.Symbol)
					}
				}
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	cases := []struct {
		shape, message string
	}{
		{"^ab", "abba"},
		{"^a^^!^dc^rb", "abracadabra!"},
		{"^^ \n^ab", "a b\nab \n"},
		{"^^é€^ab", "€éab"},
	}

	for _, c := range cases {
		t.Run(fmt.Sprintf("%q", c.message), func(t *testing.T) {
			root := mustBuild(t, c.shape)
			bits, err := BuildCodeTable(root).Encode(c.message)
			if err != nil {
				t.Fatal(err)
			}
			got, err := DecodeStrict(root, bits)
			if err != nil {
				t.Fatal(err)
			}
			if got != c.message {
				t.Errorf("expected %q, got %q", c.message, got)
			}
		})
	}
}

func TestEncodeUnknownSymbol(t *testing.T) {
	table := BuildCodeTable(mustBuild(t, "^ab"))
	_, err := table.Encode("abc")
	if !errors.Is(err, ErrUnknownSymbol) {
		t.Errorf("expected ErrUnknownSymbol, got %v", err)
	}
}

func TestLookup(t *testing.T) {
	table := BuildCodeTable(mustBuild(t, "^a^bc"))
	if code, ok := table.Lookup('c'); !ok || code != "11" {
		t.Errorf("expected code \"11\" for 'c', got %q, %t", code, ok)
	}
	if _, ok := table.Lookup('z'); ok {
		t.Error("did not expect a code for 'z'")
	}
	if got := string(table.Symbols()); got != "abc" {
		t.Errorf("expected symbols \"abc\", got %q", got)
	}
}

func TestPrintCodes(t *testing.T) {
	var buf bytes.Buffer
	PrintCodes(&buf, BuildCodeTable(mustBuild(t, "^^ \n^ab")))

	expected := "character            code: \n" +
		"--------------------------\n" +
		" \t\t\t00\n" +
		"\\n\t\t\t01\n" +
		"a\t\t\t10\n" +
		"b\t\t\t11\n"
	if buf.String() != expected {
		t.Errorf("expected\n%s\ngot\n%s", expected, buf.String())
	}
}

func TestTreeFromCodeTable(t *testing.T) {
	for _, shape := range []string{"^ab", "^a^^!^dc^rb", "^^ \n^ab", "^^^abcd", "a"} {
		t.Run(fmt.Sprintf("%q", shape), func(t *testing.T) {
			table := BuildCodeTable(mustBuild(t, shape))
			// row order must not matter
			reversed := make(CodeTable, len(table))
			for i, entry := range table {
				reversed[len(table)-1-i] = entry
			}
			root, err := TreeFromCodeTable(reversed)
			if err != nil {
				t.Fatal(err)
			}
			if got := root.PreOrder(); got != shape {
				t.Errorf("expected %q, got %q", shape, got)
			}
		})
	}
}

func TestTreeFromCodeTableErrors(t *testing.T) {
	cases := []struct {
		name  string
		table CodeTable
		err   error
	}{
		{"empty", CodeTable{}, ErrEmptyTreeSpec},
		{"prefix", CodeTable{{'a', "0"}, {'b', "01"}, {'c', "1"}}, ErrMalformedTreeSpec},
		{"extended", CodeTable{{'b', "01"}, {'a', "0"}, {'c', "1"}}, ErrMalformedTreeSpec},
		{"duplicate", CodeTable{{'a', "0"}, {'b', "0"}}, ErrMalformedTreeSpec},
		{"single child", CodeTable{{'a', "0"}, {'b', "10"}}, ErrMalformedTreeSpec},
		{"marker symbol", CodeTable{{InternalMarker, "0"}, {'b', "1"}}, ErrMalformedTreeSpec},
		{"invalid bit", CodeTable{{'a', "0"}, {'b', "2"}}, ErrInvalidBit},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := TreeFromCodeTable(c.table); !errors.Is(err, c.err) {
				t.Errorf("expected %v, got %v", c.err, err)
			}
		})
	}
}
