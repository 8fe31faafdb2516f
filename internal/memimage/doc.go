// Package memimage turns a raw memory image into an ordered sequence of
// fixed-width words.
//
// The pipeline is strictly forward:
//
//	raw, err := memimage.Load(path, memimage.InputBinary)
//	shaped := memimage.Shape(raw, depth, width, pad)
//	words := memimage.Decompose(shaped, width, invert)
//
// Every stage returns a fresh slice; inputs are never modified in place.
// Words are stored as big-endian byte strings of exactly width bytes, so
// arbitrarily wide memories are supported without integer overflow.
package memimage
