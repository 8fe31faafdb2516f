package render

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/roach88/meminit/internal/memimage"
)

const (
	// lineBudget is the target maximum line length of the VHD body.
	lineBudget = 80

	// assocOverhead is the fixed part of one association:
	// 4 indent + ` => x"` + `"` + `,`.
	assocOverhead = 12

	// dateLayout renders as e.g. "Monday, October 19 2026".
	dateLayout = "Monday, January 02 2006"
)

// VHD writes a VHDL package declaring one constant of type t_meminit_array
// (from memory_loader_pkg) holding all words, highest index first in the
// array bounds and ascending in the aggregate.
func VHD(w io.Writer, words memimage.Words, meta Meta) error {
	if len(words) == 0 {
		return fmt.Errorf("vhd: %w", ErrEmptyImage)
	}

	var buf bytes.Buffer
	writeBanner(&buf, meta)

	buf.WriteString("library ieee;\n")
	buf.WriteString("use ieee.std_logic_1164.all;\n")
	buf.WriteString("use ieee.numeric_std.all;\n")
	buf.WriteString("\n")
	buf.WriteString("library work;\n")
	buf.WriteString("use work.memory_loader_pkg.all;\n")
	buf.WriteString("\n")
	fmt.Fprintf(&buf, "package %s_pkg is\n", meta.Name)
	buf.WriteString("\n")

	count := len(words)
	fmt.Fprintf(&buf, "  constant %s : t_meminit_array(%d downto 0, %d downto 0) := (\n",
		meta.Name, count-1, meta.Width*8-1)

	iwidth := len(strconv.Itoa(count))
	cols := Columns(count, meta.Width)
	for i, word := range words {
		fmt.Fprintf(&buf, "    %*d => x\"%s\"", iwidth, i, word.Hex())
		if i == count-1 {
			buf.WriteString(");\n")
			continue
		}
		buf.WriteByte(',')
		if i%cols == cols-1 {
			buf.WriteByte('\n')
		}
	}

	buf.WriteString("\n")
	fmt.Fprintf(&buf, "end package %s_pkg;\n", meta.Name)
	return flush(w, &buf)
}

// Columns returns how many associations fit on one line of the constant
// body for count words of width bytes. It is at least 1.
func Columns(count, width int) int {
	iwidth := len(strconv.Itoa(count))
	cols := lineBudget / (assocOverhead + iwidth + width*2)
	if cols < 1 {
		return 1
	}
	return cols
}

func writeBanner(buf *bytes.Buffer, meta Meta) {
	rule := strings.Repeat("-", lineBudget)

	buf.WriteString(rule + "\n")
	fmt.Fprintf(buf, "-- Memory initialization file for %s\n", meta.Source)
	buf.WriteString("--\n")
	fmt.Fprintf(buf, "-- This file was automatically generated on %s\n", meta.Generated.Format(dateLayout))
	fmt.Fprintf(buf, "-- by %s using the following arguments:\n", meta.Program)
	for _, p := range meta.Params {
		fmt.Fprintf(buf, "--   %s = %s\n", p.Key, p.Value)
	}
	buf.WriteString("--\n")
	if meta.RunID != "" {
		fmt.Fprintf(buf, "-- run id: %s\n", meta.RunID)
	}
	if meta.Digest != "" {
		fmt.Fprintf(buf, "-- image digest: %s\n", meta.Digest)
	}
	buf.WriteString(rule + "\n")
	buf.WriteString("\n")
}
