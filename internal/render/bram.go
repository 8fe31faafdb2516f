package render

import (
	"bytes"
	"io"

	"github.com/roach88/meminit/internal/memimage"
)

// BRAM writes one line per word: the word in binary, most significant bit
// first, zero-padded to Width*8 characters. There is no header or footer.
// The result is what memory_loader_pkg reads on the VHDL side.
func BRAM(w io.Writer, words memimage.Words, meta Meta) error {
	var buf bytes.Buffer
	buf.Grow(len(words) * (meta.Width*8 + 1))

	for _, word := range words {
		buf.WriteString(word.Binary())
		buf.WriteByte('\n')
	}
	return flush(w, &buf)
}
