package memimage

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

// Word is one memory word as big-endian bytes, most significant byte first.
type Word []byte

// Words is the ordered content of the memory; index is the word address.
type Words []Word

// Width returns the word width in bytes.
func (w Word) Width() int {
	return len(w)
}

// Hex returns the value as lowercase hex, zero-padded to 2*Width digits.
func (w Word) Hex() string {
	return hex.EncodeToString(w)
}

// Binary returns the value as '0'/'1' characters, zero-padded to 8*Width
// digits, most significant bit first.
func (w Word) Binary() string {
	var sb strings.Builder
	sb.Grow(len(w) * 8)
	for _, b := range w {
		fmt.Fprintf(&sb, "%08b", b)
	}
	return sb.String()
}

// Big returns the unsigned value of the word.
func (w Word) Big() *big.Int {
	return new(big.Int).SetBytes(w)
}

// Uint64 returns the unsigned value of the word. It reports false when the
// word is wider than 8 bytes.
func (w Word) Uint64() (uint64, bool) {
	if len(w) > 8 {
		return 0, false
	}
	var v uint64
	for _, b := range w {
		v = v<<8 | uint64(b)
	}
	return v, true
}

// Decompose slices shaped into width-byte words. When invert is set the
// byte order inside each word is reversed before interpretation, which
// turns a little-endian image into big-endian words. Inversion has no
// effect for width 1.
//
// Decompose panics if width is not positive or len(shaped) is not a
// multiple of width; Shape guarantees both.
func Decompose(shaped []byte, width int, invert bool) Words {
	if width <= 0 || len(shaped)%width != 0 {
		panic(fmt.Sprintf("memimage: %d bytes cannot be split into %d-byte words", len(shaped), width))
	}

	words := make(Words, 0, len(shaped)/width)
	for off := 0; off < len(shaped); off += width {
		w := make(Word, width)
		copy(w, shaped[off:off+width])
		if invert {
			for i, j := 0, width-1; i < j; i, j = i+1, j-1 {
				w[i], w[j] = w[j], w[i]
			}
		}
		words = append(words, w)
	}
	return words
}

// Build shapes raw and decomposes it into words in one step.
func Build(raw []byte, depth, width int, pad byte, invert bool) Words {
	return Decompose(Shape(raw, depth, width, pad), width, invert)
}
