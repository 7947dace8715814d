package msgtree

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

type CodeEntry struct {
	Symbol rune
	Code   string
}

// CodeTable lists the code of every leaf in tree traversal order.
type CodeTable []CodeEntry

// BuildCodeTable walks the tree accumulating '0' for left and '1' for right,
// recording the path of every leaf.
func BuildCodeTable(root *Node) CodeTable {
	table := CodeTable{}
	root.walk(func(node *Node, path string) {
		if node.IsLeaf() {
			table = append(table, CodeEntry{Symbol: node.Payload, Code: path})
		}
	}, "")
	return table
}

func (t CodeTable) Lookup(symbol rune) (string, bool) {
	for _, entry := range t {
		if entry.Symbol == symbol {
			return entry.Code, true
		}
	}
	return "", false
}

func (t CodeTable) Symbols() []rune {
	symbols := make([]rune, len(t))
	for i, entry := range t {
		symbols[i] = entry.Symbol
	}
	return symbols
}

// Encode concatenates the code of every character of message.
func (t CodeTable) Encode(message string) (string, error) {
	codes := make(map[rune]string, len(t))
	for _, entry := range t {
		codes[entry.Symbol] = entry.Code
	}

	var sb strings.Builder
	for i, symbol := range message {
		code, ok := codes[symbol]
		if !ok {
			return "", fmt.Errorf("%w: %q at offset %d", ErrUnknownSymbol, symbol, i)
		}
		sb.WriteString(code)
	}
	return sb.String(), nil
}

// PrintCodes writes one row per leaf with its printable symbol and code.
func PrintCodes(w io.Writer, table CodeTable) {
	fmt.Fprintln(w, "character            code: ")
	fmt.Fprintln(w, "--------------------------")
	for _, entry := range table {
		fmt.Fprintf(w, "%s\t\t\t%s\n", SymbolString(entry.Symbol), entry.Code)
	}
}

// SymbolString renders a leaf symbol on a single line.
func SymbolString(symbol rune) string {
	if strconv.IsPrint(symbol) {
		return string(symbol)
	}
	quoted := strconv.QuoteRune(symbol)
	return quoted[1 : len(quoted)-1]
}

// TreeFromCodeTable rebuilds the tree described by a code table, inserting
// every code as a path from the root. The codes must be prefix free and
// leave no internal node with a single child.
func TreeFromCodeTable(table CodeTable) (*Node, error) {
	if len(table) == 0 {
		return nil, ErrEmptyTreeSpec
	}
	if len(table) == 1 && table[0].Code == "" && table[0].Symbol != InternalMarker {
		return newNode(table[0].Symbol), nil
	}

	root := newNode(InternalMarker)
	for _, entry := range table {
		if entry.Code == "" || entry.Symbol == InternalMarker {
			return nil, fmt.Errorf("%w: invalid entry %q -> %q", ErrMalformedTreeSpec, entry.Symbol, entry.Code)
		}
		current := root
		for pos := 0; pos < len(entry.Code); pos++ {
			if !current.IsInternal() {
				return nil, fmt.Errorf("%w: code of %q extends the code of %q", ErrMalformedTreeSpec, entry.Symbol, current.Payload)
			}
			next := &current.Left
			switch entry.Code[pos] {
			case '0':
			case '1':
				next = &current.Right
			default:
				return nil, &BitstreamError{Pos: pos, Err: ErrInvalidBit}
			}
			if *next == nil {
				*next = newNode(InternalMarker)
			}
			current = *next
		}
		if !current.IsLeaf() || !current.IsInternal() {
			return nil, fmt.Errorf("%w: code %q of %q is already taken", ErrMalformedTreeSpec, entry.Code, entry.Symbol)
		}
		current.Payload = entry.Symbol
	}

	var incomplete error
	root.walk(func(node *Node, path string) {
		if incomplete == nil && node.IsInternal() && (node.Left == nil || node.Right == nil) {
			incomplete = fmt.Errorf("%w: node at %q has a single child", ErrMalformedTreeSpec, path)
		}
	}, "")
	if incomplete != nil {
		return nil, incomplete
	}
	return root, nil
}
