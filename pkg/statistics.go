package msgtree

import (
	"fmt"
	"io"
)

type Statistics struct {
	Bits           int     `json:"bits"`
	Chars          int     `json:"chars"`
	AvgBitsPerChar float64 `json:"avg_bits_per_char"`
	SpaceSavings   float64 `json:"space_savings"`
}

// ComputeStatistics derives the compression figures from the length of the
// bit message and the number of decoded characters. Metrics that would divide
// by zero are left at zero.
func ComputeStatistics(bits int, chars int) Statistics {
	stats := Statistics{Bits: bits, Chars: chars}
	if chars > 0 {
		stats.AvgBitsPerChar = float64(bits) / float64(chars)
	}
	if bits > 0 {
		stats.SpaceSavings = (1 - float64(chars)/float64(bits)) * 100
	}
	return stats
}

func PrintStatistics(w io.Writer, stats Statistics) {
	fmt.Fprintln(w, "\nSTATISTICS:")
	fmt.Fprintf(w, "Avg bits/char:       \t%.1f\n", stats.AvgBitsPerChar)
	fmt.Fprintf(w, "Total characters:    \t%d\n", stats.Chars)
	fmt.Fprintf(w, "Space Savings:       \t%.1f%%\n", stats.SpaceSavings)
}
