package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/meminit/internal/config"
	"github.com/roach88/meminit/internal/memimage"
	"github.com/roach88/meminit/internal/provenance"
	"github.com/roach88/meminit/internal/render"
)

// ProgramName is stamped into generated files.
const ProgramName = "meminit"

// RootOptions holds the flags of the meminit command.
type RootOptions struct {
	Verbose    bool
	Format     string // diagnostics format: "json" | "text"
	ConfigPath string

	// Conversion flags. They only override the profile when set explicitly.
	OutputFormat string
	InputFormat  string
	Width        int
	Depth        int
	Pad          int
	Invert       bool
	Name         string
}

// ValidFormats defines the allowed diagnostics formats.
var ValidFormats = []string{"text", "json"}

// Env supplies the time and run identity of a conversion.
type Env struct {
	Clock provenance.Clock
	IDs   provenance.IDGenerator
}

// DefaultEnv uses the wall clock and UUIDv7 run IDs.
func DefaultEnv() Env {
	return Env{
		Clock: provenance.SystemClock{},
		IDs:   provenance.UUIDv7Generator{},
	}
}

// NewRootCommand creates the meminit command with the default environment.
func NewRootCommand() *cobra.Command {
	return NewRootCommandWithEnv(DefaultEnv())
}

// NewRootCommandWithEnv creates the meminit command. Tests pass a fixed
// clock and run ID generator to get byte-stable output.
func NewRootCommandWithEnv(env Env) *cobra.Command {
	opts := &RootOptions{}
	defaults := config.Default()

	cmd := &cobra.Command{
		Use:   "meminit [flags] <input>",
		Short: "meminit - generate block RAM initialization files",
		Long: `Generate an initialization file for block RAMs from a binary image.

The input is normally raw binary, such as the output of
"objcopy -O binary". The image is padded or truncated to depth*width
bytes, split into width-byte words and written to standard output as:

  BRAM  ASCII binary, one word per line, for memory_loader_pkg
  MIF   Altera/Intel Memory Initialization File
  VHD   VHDL package with a constant t_meminit_array`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - Execute prints a hint
		SilenceErrors: true, // Don't print errors - we handle our own error output
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, opts, env, args[0])
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&opts.Invert, "invert", "i", false, "invert endianness of the input words")
	flags.StringVarP(&opts.OutputFormat, "oformat", "o", string(defaults.Format),
		fmt.Sprintf("output format, %s (also -of)", joinFormats(render.ValidFormats)))
	flags.StringVar(&opts.InputFormat, "iformat", string(defaults.InputFormat),
		fmt.Sprintf("input format, %s", joinFormats(memimage.ValidInputFormats)))
	flags.IntVarP(&opts.Depth, "depth", "d", defaults.Depth,
		"depth of memory in words (default is derived from the input size)")
	flags.IntVarP(&opts.Width, "width", "w", defaults.Width, "width of memory in bytes")
	flags.IntVarP(&opts.Pad, "pad", "p", defaults.Pad,
		fmt.Sprintf("byte padding value, 0 to %d", config.MaxPad))
	flags.StringVarP(&opts.Name, "name", "n", defaults.Name, "name of the VHDL constant and package")
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "YAML profile with default parameters")

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose diagnostics on stderr")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "diagnostics format (json|text)")

	return cmd
}

// resolveConfig layers defaults, the optional profile and explicitly set
// flags, then normalizes and validates the result.
func resolveConfig(cmd *cobra.Command, opts *RootOptions, input string) (config.RunConfig, error) {
	cfg := config.Default()

	if opts.ConfigPath != "" {
		profile, err := config.LoadProfile(opts.ConfigPath)
		if err != nil {
			return cfg, err
		}
		profile.Apply(&cfg)
	}

	flags := cmd.Flags()
	if flags.Changed("oformat") {
		cfg.Format = render.Format(opts.OutputFormat)
	}
	if flags.Changed("iformat") {
		cfg.InputFormat = memimage.InputFormat(opts.InputFormat)
	}
	if flags.Changed("width") {
		cfg.Width = opts.Width
	}
	if flags.Changed("depth") {
		cfg.Depth = opts.Depth
	}
	if flags.Changed("pad") {
		cfg.Pad = opts.Pad
	}
	if flags.Changed("invert") {
		cfg.Invert = opts.Invert
	}
	if flags.Changed("name") {
		cfg.Name = opts.Name
	}
	cfg.InputPath = input

	cfg.Normalize()
	return cfg, cfg.Validate()
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

func joinFormats[T ~string](formats []T) string {
	parts := make([]string, len(formats))
	for i, f := range formats {
		parts[i] = string(f)
	}
	return strings.Join(parts, "|")
}
