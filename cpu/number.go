package cpu

import (
	"strconv"
)

// DecodeNumber greedily decodes the run of digit codons starting at index.
//
// The run ends at the first codon not in the DigitTable or at the end of
// the codons. An empty run decodes as 0. Returns the value and the index of
// the first codon not consumed.
func DecodeNumber(codons []Codon, index int) (value uint32, next int, err error) {
	digits := []byte{'0'}

	next = index
	for next >= 0 && next < len(codons) {
		digit, ok := DigitTable[codons[next]]
		if !ok {
			break
		}
		digits = append(digits, digit)
		next++
	}

	v64, perr := strconv.ParseUint(string(digits), 10, 32)
	if perr != nil {
		err = &ErrOverflow{Index: index, Digits: string(digits[1:])}
		return
	}

	value = uint32(v64)

	return
}

// EncodeNumber spells a value as canonical digit codons.
func EncodeNumber(value uint32) (codons []Codon) {
	for _, digit := range strconv.FormatUint(uint64(value), 10) {
		codons = append(codons, _digitCodon[digit-'0'])
	}

	return
}
