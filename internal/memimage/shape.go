package memimage

import "fmt"

// Shape fits raw to the memory geometry.
//
// With depth > 0 the result is exactly depth*width bytes: shorter input is
// padded with pad, longer input is truncated. With depth == 0 the input is
// padded with pad up to the next multiple of width. The result length is
// always a multiple of width.
//
// Shape panics if width is not positive; callers validate geometry first.
func Shape(raw []byte, depth, width int, pad byte) []byte {
	if width <= 0 {
		panic(fmt.Sprintf("memimage: invalid width %d", width))
	}

	target := len(raw)
	if depth > 0 {
		target = depth * width
	}
	if rem := target % width; rem != 0 {
		target += width - rem
	}

	out := make([]byte, target)
	n := copy(out, raw)
	for i := n; i < target; i++ {
		out[i] = pad
	}
	return out
}
