package memimage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/marcinbor85/gohex"
)

// InputFormat selects how the input file is decoded into bytes.
type InputFormat string

const (
	// InputBinary reads the file as a raw byte image (objcopy -O binary).
	InputBinary InputFormat = "bin"
	// InputIntelHex parses the file as Intel HEX and flattens its segments.
	InputIntelHex InputFormat = "hex"
)

// ValidInputFormats lists the accepted input formats.
var ValidInputFormats = []InputFormat{InputBinary, InputIntelHex}

// zstdSuffix marks raw inputs that are decompressed before use.
const zstdSuffix = ".zst"

// MaxImageBytes caps the size of a shaped image and of a flattened Intel
// HEX address span.
const MaxImageBytes = 1 << 30

var (
	// ErrRead is returned when the input file cannot be opened or read.
	ErrRead = errors.New("reading input")

	// ErrDecode is returned when the input cannot be decoded in its format.
	ErrDecode = errors.New("decoding input")
)

// Load reads the whole input file and returns its bytes.
//
// The file is closed before Load returns. Raw inputs ending in ".zst" are
// zstd-decompressed. Intel HEX inputs are flattened into one contiguous
// image spanning the lowest to the highest populated address, with gaps
// filled by fill.
func Load(path string, format InputFormat, fill byte) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	defer f.Close()

	switch format {
	case InputBinary, "":
		return readBinary(f, strings.HasSuffix(path, zstdSuffix))
	case InputIntelHex:
		return readIntelHex(f, fill)
	default:
		return nil, fmt.Errorf("%w: unknown input format %q", ErrDecode, format)
	}
}

func readBinary(r io.Reader, compressed bool) ([]byte, error) {
	if !compressed {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRead, err)
		}
		return data, nil
	}

	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: zstd: %w", ErrDecode, err)
	}
	defer dec.Close()

	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: zstd: %w", ErrDecode, err)
	}
	return data, nil
}

func readIntelHex(r io.Reader, fill byte) ([]byte, error) {
	mem := gohex.NewMemory()
	if err := mem.ParseIntelHex(r); err != nil {
		return nil, fmt.Errorf("%w: intel hex: %w", ErrDecode, err)
	}

	segments := mem.GetDataSegments()
	if len(segments) == 0 {
		return []byte{}, nil
	}

	lo := segments[0].Address
	hi := uint64(lo)
	for _, seg := range segments {
		if seg.Address < lo {
			lo = seg.Address
		}
		end := uint64(seg.Address) + uint64(len(seg.Data))
		if end > hi {
			hi = end
		}
	}

	span := hi - uint64(lo)
	if span > MaxImageBytes {
		return nil, fmt.Errorf("%w: intel hex: address span %#x exceeds %d bytes", ErrDecode, span, MaxImageBytes)
	}
	return mem.ToBinary(lo, uint32(span), fill), nil
}
