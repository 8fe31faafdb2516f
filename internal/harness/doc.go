// Package harness runs end-to-end conversion scenarios.
//
// A scenario describes an input image, a parameter set and assertions on
// the result. The harness runs the full pipeline (shape, decompose,
// encode) with a fixed clock and run ID, so the generated text is
// byte-stable and can be compared against golden files.
//
// # Scenario Format
//
//	name: boot_rom
//	description: "What this scenario validates"
//	input: "01 02 03 04 05"
//	config:
//	  oformat: VHD
//	  width: 2
//	  depth: 12
//	  pad: 255
//	  name: boot_rom
//	assertions:
//	  - type: word_count
//	    count: 12
//	  - type: contains
//	    text: "package boot_rom_pkg is"
//
// input is hex, whitespace is ignored. config takes the same keys as a
// meminit profile.
//
// # Assertion Types
//
//   - word_count: the image has exactly count words
//   - line_count: the output has exactly count lines
//   - words: the words, as hex, equal the listed values
//   - contains: the output contains text
//
// # Golden Files
//
// RunWithGolden compares the output against testdata/golden/{name}.golden.
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
package harness
