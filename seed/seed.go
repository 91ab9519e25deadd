// Package seed turns world seeds (text or integer) into the 32-bit state
// that drives every deterministic generator in the module.
package seed

import (
	"strconv"
	"strings"
	"unicode/utf16"
)

// Seed is any value that hashes to a generator state.
type Seed interface {
	Hash() uint32
}

// Text is a textual seed such as "my-world-seed".
type Text string

// Int is a numeric seed. Only the low 32 bits are used.
type Int int64

// Hash folds the text into a 32-bit signed accumulator one UTF-16 code unit
// at a time (acc = acc*31 + c with wraparound) and returns its magnitude.
// Zero is remapped to 1.
func (t Text) Hash() uint32 {
	var acc int32
	for _, c := range utf16.Encode([]rune(string(t))) {
		acc = (acc << 5) - acc + int32(c)
	}
	return nonZero(abs32(acc))
}

// Hash returns the low 32 bits of the integer, with zero remapped to 1.
func (n Int) Hash() uint32 {
	return nonZero(uint32(n))
}

// Hash is shorthand for s.Hash().
func Hash(s Seed) uint32 {
	return s.Hash()
}

// TextPrefix forces Parse to treat the rest of the string as Text, so
// numeric text seeds such as "text:12345" stay reachable from config files
// and flags.
const TextPrefix = "text:"

// Parse interprets a command-line or config seed. A TextPrefix-prefixed
// string becomes Text of the remainder, plain decimal integers become Int,
// and everything else is Text.
func Parse(s string) Seed {
	if rest, ok := strings.CutPrefix(s, TextPrefix); ok {
		return Text(rest)
	}
	trimmed := strings.TrimSpace(s)
	if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return Int(n)
	}
	return Text(s)
}

// Derive produces a child seed for a named layer (e.g. "moisture") so that
// independent fields generated from one world seed do not share a stream.
func Derive(base uint32, label string) uint32 {
	return Text(strconv.FormatUint(uint64(base), 10) + ":" + label).Hash()
}

// abs32 returns |v| as unsigned so that MinInt32 maps to 0x80000000
// instead of overflowing.
func abs32(v int32) uint32 {
	if v < 0 {
		return uint32(-int64(v))
	}
	return uint32(v)
}

// nonZero keeps generators away from the degenerate all-zero state.
func nonZero(v uint32) uint32 {
	if v == 0 {
		return 1
	}
	return v
}
