package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/roach88/meminit/internal/memimage"
	"github.com/roach88/meminit/internal/render"
)

//go:embed profile.cue
var profileSchema string

// ErrProfile is returned when a profile cannot be read or does not match
// the schema.
var ErrProfile = errors.New("invalid profile")

// Profile is a reusable set of run parameters, typically one per memory
// instance in a design. Nil fields are unset.
type Profile struct {
	Format      *string `yaml:"oformat"`
	InputFormat *string `yaml:"iformat"`
	Width       *int    `yaml:"width"`
	Depth       *int    `yaml:"depth"`
	Pad         *int    `yaml:"pad"`
	Invert      *bool   `yaml:"invert"`
	Name        *string `yaml:"name"`
}

// LoadProfile reads and validates the YAML profile at path.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProfile, err)
	}
	p, err := ParseProfile(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// ParseProfile validates data against the profile schema and decodes it.
// Unknown keys are rejected.
func ParseProfile(data []byte) (*Profile, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProfile, err)
	}
	if doc == nil {
		doc = map[string]any{}
	}

	if err := checkSchema(doc); err != nil {
		return nil, err
	}

	var p Profile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrProfile, err)
	}
	return &p, nil
}

func checkSchema(doc map[string]any) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(profileSchema)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compiling profile schema: %w", err)
	}

	def := schema.LookupPath(cue.ParsePath("#Profile"))
	value := def.Unify(ctx.Encode(doc))
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("%w: %w", ErrProfile, err)
	}
	return nil
}

// Apply copies every set profile field into c.
func (p *Profile) Apply(c *RunConfig) {
	if p == nil {
		return
	}
	if p.Format != nil {
		c.Format = render.Format(*p.Format)
	}
	if p.InputFormat != nil {
		c.InputFormat = memimage.InputFormat(*p.InputFormat)
	}
	if p.Width != nil {
		c.Width = *p.Width
	}
	if p.Depth != nil {
		c.Depth = *p.Depth
	}
	if p.Pad != nil {
		c.Pad = *p.Pad
	}
	if p.Invert != nil {
		c.Invert = *p.Invert
	}
	if p.Name != nil {
		c.Name = *p.Name
	}
}
