package cpu

import (
	"strings"
	"unicode"
)

// CODON_WIDTH is the number of symbols in a codon.
const CODON_WIDTH = 3

// Clean removes all whitespace from source text.
func Clean(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
}

// Tokenize cuts whitespace-free text into successive codons.
// A trailing group shorter than CODON_WIDTH is kept as the last codon.
func Tokenize(text string) (codons []Codon) {
	for len(text) > 0 {
		n := min(CODON_WIDTH, len(text))
		codons = append(codons, Codon(text[:n]))
		text = text[n:]
	}

	return
}

// Complete returns true if the codon has the full width.
func (codon Codon) Complete() bool {
	return len(codon) == CODON_WIDTH
}
