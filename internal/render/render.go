// Package render encodes a word sequence into one of the supported
// memory-initialization text formats.
//
// Encoders are pure: the same words and Meta always produce the same bytes.
// Each encoder renders into memory and writes to the destination once, so a
// failing encoder never leaves partial output behind.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/roach88/meminit/internal/memimage"
)

// Format identifies an output encoding.
type Format string

const (
	// FormatBRAM is one ASCII-binary line per word.
	FormatBRAM Format = "BRAM"
	// FormatMIF is an Altera/Intel Memory Initialization File.
	FormatMIF Format = "MIF"
	// FormatVHD is a VHDL package holding a constant t_meminit_array.
	FormatVHD Format = "VHD"
)

// ValidFormats lists the accepted output formats in help order.
var ValidFormats = []Format{FormatBRAM, FormatMIF, FormatVHD}

// Valid reports whether f is one of ValidFormats. Comparison is exact;
// callers normalize case first.
func (f Format) Valid() bool {
	for _, v := range ValidFormats {
		if f == v {
			return true
		}
	}
	return false
}

var (
	// ErrUnknownFormat is returned by Encode for a format it cannot render.
	ErrUnknownFormat = errors.New("unknown output format")

	// ErrEmptyImage is returned by VHD for an image with no words; VHDL has
	// no syntax for an empty positional aggregate.
	ErrEmptyImage = errors.New("image contains no words")
)

// Param is one provenance entry of the VHD banner.
type Param struct {
	Key   string
	Value string
}

// Meta carries everything an encoder needs besides the words.
type Meta struct {
	// Width is the word width in bytes. It is needed even when there are
	// no words.
	Width int

	// Name is the VHDL constant identifier; the package is Name + "_pkg".
	Name string

	// Source is the input file name as given on the command line.
	Source string

	// Program is the name of the generating tool.
	Program string

	// Generated is the generation time shown in the banner.
	Generated time.Time

	// RunID identifies this invocation in the banner.
	RunID string

	// Digest is the digest of the raw input image.
	Digest string

	// Params is the full parameter set, in banner order.
	Params []Param
}

// Encoder renders words into w.
type Encoder func(w io.Writer, words memimage.Words, meta Meta) error

// For returns the encoder for f.
func For(f Format) (Encoder, error) {
	switch f {
	case FormatBRAM:
		return BRAM, nil
	case FormatMIF:
		return MIF, nil
	case FormatVHD:
		return VHD, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// Encode renders words in format f into w.
func Encode(w io.Writer, f Format, words memimage.Words, meta Meta) error {
	enc, err := For(f)
	if err != nil {
		return err
	}
	return enc(w, words, meta)
}

// flush writes the rendered buffer in one call.
func flush(w io.Writer, buf *bytes.Buffer) error {
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
