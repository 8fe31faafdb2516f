// Package config holds the parameters of one conversion run.
//
// A RunConfig starts from Default, is optionally overlaid by a YAML
// profile and then by explicit command-line flags, and is finally
// normalized and validated before any input is read.
package config

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/roach88/meminit/internal/memimage"
	"github.com/roach88/meminit/internal/render"
)

// Defaults for a run.
const (
	DefaultWidth = 4
	DefaultName  = "mem_init"
	MaxPad       = 255
)

// ErrInvalidConfig marks every parameter error. Callers treat it as a
// usage error.
var ErrInvalidConfig = errors.New("invalid configuration")

// vhdlIdentifier matches a basic VHDL identifier: a letter, then letters or
// digits optionally separated by single underscores.
var vhdlIdentifier = regexp.MustCompile(`^[A-Za-z](_?[A-Za-z0-9])*$`)

// RunConfig is the full parameter set of one invocation.
type RunConfig struct {
	InputPath   string               `yaml:"-"`
	Format      render.Format        `yaml:"oformat"`
	InputFormat memimage.InputFormat `yaml:"iformat"`
	Width       int                  `yaml:"width"`
	Depth       int                  `yaml:"depth"`
	Pad         int                  `yaml:"pad"`
	Invert      bool                 `yaml:"invert"`
	Name        string               `yaml:"name"`
}

// Default returns the configuration used when nothing is specified.
func Default() RunConfig {
	return RunConfig{
		Format:      render.FormatBRAM,
		InputFormat: memimage.InputBinary,
		Width:       DefaultWidth,
		Name:        DefaultName,
	}
}

// Normalize upper-cases the output format and lower-cases the input format
// and the name.
func (c *RunConfig) Normalize() {
	c.Format = render.Format(cases.Upper(language.Und).String(string(c.Format)))
	c.InputFormat = memimage.InputFormat(cases.Lower(language.Und).String(string(c.InputFormat)))
	c.Name = cases.Lower(language.Und).String(c.Name)
}

// Validate reports every invalid parameter, joined into one error. Each
// wraps ErrInvalidConfig.
func (c RunConfig) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...)))
	}

	if c.InputPath == "" {
		bad("input file is required")
	}
	if !c.Format.Valid() {
		bad("output format %q must be one of %v", c.Format, render.ValidFormats)
	}
	if !validInputFormat(c.InputFormat) {
		bad("input format %q must be one of %v", c.InputFormat, memimage.ValidInputFormats)
	}
	if c.Width <= 0 {
		bad("width must be a positive number of bytes, got %d", c.Width)
	}
	if c.Depth < 0 {
		bad("depth must not be negative, got %d", c.Depth)
	}
	if c.Width > memimage.MaxImageBytes {
		bad("width must not exceed %d bytes, got %d", memimage.MaxImageBytes, c.Width)
	} else if c.Width > 0 && c.Depth > memimage.MaxImageBytes/c.Width {
		bad("depth %d of %d-byte words exceeds the %d byte image limit", c.Depth, c.Width, memimage.MaxImageBytes)
	}
	if c.Pad < 0 || c.Pad > MaxPad {
		bad("padding value must be between 0 and %d, got %d", MaxPad, c.Pad)
	}
	if c.Format == render.FormatVHD && !vhdlIdentifier.MatchString(c.Name) {
		bad("name %q is not a valid VHDL identifier", c.Name)
	}

	return errors.Join(errs...)
}

// PadByte returns Pad as a byte. Only meaningful after Validate.
func (c RunConfig) PadByte() byte {
	return byte(c.Pad & 0xff)
}

// Params lists every parameter for provenance banners, in a fixed order.
func (c RunConfig) Params() []render.Param {
	return []render.Param{
		{Key: "input", Value: c.InputPath},
		{Key: "oformat", Value: string(c.Format)},
		{Key: "iformat", Value: string(c.InputFormat)},
		{Key: "width", Value: strconv.Itoa(c.Width)},
		{Key: "depth", Value: strconv.Itoa(c.Depth)},
		{Key: "pad", Value: strconv.Itoa(c.Pad)},
		{Key: "invert", Value: strconv.FormatBool(c.Invert)},
		{Key: "name", Value: c.Name},
	}
}

func validInputFormat(f memimage.InputFormat) bool {
	for _, v := range memimage.ValidInputFormats {
		if f == v {
			return true
		}
	}
	return false
}
