// Command meminit generates block RAM initialization files from binary
// images.
//
// Usage:
//
//	meminit -of output_format input_file > output_file
package main

import (
	"os"

	"github.com/roach88/meminit/internal/cli"
)

func main() {
	os.Exit(cli.Execute(cli.NewRootCommand(), os.Args[1:], os.Stdout, os.Stderr))
}
