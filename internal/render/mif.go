package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/roach88/meminit/internal/memimage"
)

// MIF writes an Altera Memory Initialization File with hex radix for both
// addresses and data. WIDTH is given in bits.
func MIF(w io.Writer, words memimage.Words, meta Meta) error {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "DEPTH = %d;\n", len(words))
	fmt.Fprintf(&buf, "WIDTH = %d;\n", meta.Width*8)
	buf.WriteString("ADDRESS_RADIX = HEX;\n")
	buf.WriteString("DATA_RADIX = HEX;\n")
	buf.WriteString("CONTENT\n")
	buf.WriteString("BEGIN\n")

	for i, word := range words {
		fmt.Fprintf(&buf, "%x : %s;\n", i, word.Hex())
	}

	buf.WriteString("END;\n")
	return flush(w, &buf)
}
