package memimage

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/marcinbor85/gohex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeDepthZeroRoundsUpToWidth(t *testing.T) {
	tests := []struct {
		name  string
		raw   []byte
		width int
		want  []byte
	}{
		{"exact", []byte{1, 2, 3, 4}, 4, []byte{1, 2, 3, 4}},
		{"three of four", []byte{0x0a, 0x0b, 0x0c}, 4, []byte{0x0a, 0x0b, 0x0c, 0x00}},
		{"one over", []byte{1, 2, 3, 4, 5}, 4, []byte{1, 2, 3, 4, 5, 0, 0, 0}},
		{"width one", []byte{1, 2, 3}, 1, []byte{1, 2, 3}},
		{"empty", []byte{}, 4, []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Shape(tt.raw, 0, tt.width, 0)
			assert.Equal(t, tt.want, got)
			assert.Zero(t, len(got)%tt.width)
		})
	}
}

func TestShapePadsWithPadValue(t *testing.T) {
	got := Shape([]byte{0x01}, 0, 4, 0xff)
	assert.Equal(t, []byte{0x01, 0xff, 0xff, 0xff}, got)

	got = Shape([]byte{0x01, 0x02}, 3, 2, 0xaa)
	assert.Equal(t, []byte{0x01, 0x02, 0xaa, 0xaa, 0xaa, 0xaa}, got)
}

func TestShapeDepthTruncates(t *testing.T) {
	raw := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9}
	got := Shape(raw, 2, 2, 0xee)
	assert.Equal(t, []byte{1, 2, 3, 4}, got)
}

func TestShapeDepthEqualIsUnchanged(t *testing.T) {
	raw := []byte{1, 2, 3, 4}
	got := Shape(raw, 2, 2, 0xee)
	assert.Equal(t, raw, got)
}

func TestShapeDoesNotMutateInput(t *testing.T) {
	raw := []byte{1, 2, 3}
	backing := make([]byte, 3, 16)
	copy(backing, raw)

	_ = Shape(backing, 0, 4, 0xff)
	assert.Equal(t, raw, backing)
	assert.Equal(t, byte(0), backing[:4][3], "spare capacity must stay untouched")
}

func TestShapeLengthProperty(t *testing.T) {
	for n := 0; n < 20; n++ {
		for width := 1; width <= 8; width++ {
			raw := bytes.Repeat([]byte{0x5a}, n)

			got := Shape(raw, 0, width, 0)
			assert.Zero(t, len(got)%width)
			assert.GreaterOrEqual(t, len(got), n)
			assert.Less(t, len(got)-n, width, "smallest multiple of width")

			for depth := 1; depth <= 4; depth++ {
				got := Shape(raw, depth, width, 0x11)
				require.Len(t, got, depth*width)
				for i := n; i < len(got); i++ {
					assert.Equal(t, byte(0x11), got[i])
				}
			}
		}
	}
}

func TestShapePanicsOnBadWidth(t *testing.T) {
	assert.Panics(t, func() { Shape([]byte{1}, 0, 0, 0) })
}

func TestDecomposeBigEndian(t *testing.T) {
	words := Decompose([]byte{0x01, 0x02, 0x03, 0x04}, 4, false)
	require.Len(t, words, 1)
	assert.Equal(t, "01020304", words[0].Hex())

	v, ok := words[0].Uint64()
	require.True(t, ok)
	assert.Equal(t, uint64(0x01020304), v)
}

func TestDecomposeInvert(t *testing.T) {
	words := Decompose([]byte{0x01, 0x02, 0x03, 0x04}, 4, true)
	require.Len(t, words, 1)
	assert.Equal(t, "04030201", words[0].Hex())
}

func TestDecomposeInvertWidthOneIsNoop(t *testing.T) {
	raw := []byte{0x10, 0x20, 0x30}
	assert.Equal(t, Decompose(raw, 1, false), Decompose(raw, 1, true))
}

func TestDecomposeDoesNotMutateInput(t *testing.T) {
	raw := []byte{1, 2, 3, 4}
	_ = Decompose(raw, 2, true)
	assert.Equal(t, []byte{1, 2, 3, 4}, raw)
}

func TestDecomposeInvariant(t *testing.T) {
	shaped := Shape(bytes.Repeat([]byte{0xab}, 13), 0, 3, 0)
	words := Decompose(shaped, 3, false)
	assert.Equal(t, len(shaped), len(words)*3)
	for _, w := range words {
		assert.Equal(t, 3, w.Width())
	}
}

func TestDecomposePanicsOnRaggedInput(t *testing.T) {
	assert.Panics(t, func() { Decompose([]byte{1, 2, 3}, 2, false) })
}

func TestBuildPadsPartialWord(t *testing.T) {
	words := Build([]byte{0x0a, 0x0b, 0x0c}, 0, 4, 0, false)
	require.Len(t, words, 1)
	assert.Equal(t, "0a0b0c00", words[0].Hex())
}

func TestWordBinary(t *testing.T) {
	w := Word{0x01, 0x02, 0x03, 0x04}
	assert.Equal(t, "00000001000000100000001100000100", w.Binary())

	// Round trip: parsing the rendered line yields the same line again.
	v, err := strconv.ParseUint(w.Binary(), 2, 64)
	require.NoError(t, err)
	back := Word{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
	assert.Equal(t, w.Binary(), back.Binary())
}

func TestWideWords(t *testing.T) {
	raw := bytes.Repeat([]byte{0xff}, 16)
	words := Decompose(raw, 16, false)
	require.Len(t, words, 1)

	_, ok := words[0].Uint64()
	assert.False(t, ok, "16-byte word does not fit uint64")
	assert.Equal(t, 128, words[0].Big().BitLen())
	assert.Len(t, words[0].Binary(), 128)
	assert.Len(t, words[0].Hex(), 32)
}

func TestDigest(t *testing.T) {
	d1 := Digest([]byte{1, 2, 3})
	d2 := Digest([]byte{1, 2, 3})
	d3 := Digest([]byte{1, 2, 4})

	assert.Equal(t, d1, d2)
	assert.NotEqual(t, d1, d3)
	assert.Len(t, d1, 64)
}

func TestLoadBinary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.bin")
	require.NoError(t, os.WriteFile(path, []byte{1, 2, 3}, 0644))

	got, err := Load(path, InputBinary, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.bin"), InputBinary, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRead)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadUnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.bin")
	require.NoError(t, os.WriteFile(path, []byte{1}, 0644))

	_, err := Load(path, InputFormat("srec"), 0)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestLoadZstd(t *testing.T) {
	raw := bytes.Repeat([]byte{0xde, 0xad, 0xbe, 0xef}, 64)

	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	compressed := enc.EncodeAll(raw, nil)
	require.NoError(t, enc.Close())

	path := filepath.Join(t.TempDir(), "image.bin.zst")
	require.NoError(t, os.WriteFile(path, compressed, 0644))

	got, err := Load(path, InputBinary, 0)
	require.NoError(t, err)
	assert.Equal(t, raw, got)
}

func TestLoadCorruptZstd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.bin.zst")
	require.NoError(t, os.WriteFile(path, []byte("not zstd at all"), 0644))

	_, err := Load(path, InputBinary, 0)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestLoadIntelHexFillsGaps(t *testing.T) {
	mem := gohex.NewMemory()
	require.NoError(t, mem.AddBinary(0x1000, []byte{0x01, 0x02}))
	require.NoError(t, mem.AddBinary(0x1004, []byte{0x05}))

	var buf bytes.Buffer
	require.NoError(t, mem.DumpIntelHex(&buf, 16))

	path := filepath.Join(t.TempDir(), "image.hex")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	got, err := Load(path, InputIntelHex, 0xff)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02, 0xff, 0xff, 0x05}, got)
}

func TestLoadIntelHexRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.hex")
	require.NoError(t, os.WriteFile(path, []byte(":zz\n"), 0644))

	_, err := Load(path, InputIntelHex, 0)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestLoadIntelHexRejectsOversizedSpan(t *testing.T) {
	// Each image holds one byte at 0x00000000 and one in a far upper segment.
	tests := []struct {
		name    string
		records string
	}{
		{"just over the limit", ":0100000000FF\n:020000044000BA\n:0100000000FF\n:00000001FF\n"},
		{"whole address space", ":0100000000FF\n:02000004FFFFFC\n:01FFFE000002\n:00000001FF\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "image.hex")
			require.NoError(t, os.WriteFile(path, []byte(tt.records), 0644))

			got, err := Load(path, InputIntelHex, 0)
			assert.ErrorIs(t, err, ErrDecode)
			assert.ErrorContains(t, err, "address span")
			assert.Nil(t, got)
		})
	}
}
