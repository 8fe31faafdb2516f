package harness

import (
	"bytes"
	"fmt"
	"time"

	"github.com/roach88/meminit/internal/config"
	"github.com/roach88/meminit/internal/memimage"
	"github.com/roach88/meminit/internal/provenance"
	"github.com/roach88/meminit/internal/render"
	"github.com/roach88/meminit/internal/testutil"
)

// GeneratedAt is the generation time stamped into every scenario output.
var GeneratedAt = time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)

// Program is the generator name stamped into every scenario output.
const Program = "meminit"

// Harness runs scenarios with a fixed clock and run ID.
type Harness struct {
	clock provenance.Clock
	ids   provenance.IDGenerator
}

// Run executes a scenario and returns the result.
//
// Execution flow:
// 1. Resolve the parameter set (defaults, then scenario config)
// 2. Shape and decompose the input image
// 3. Encode with fixed provenance
// 4. Evaluate assertions
//
// An invalid parameter set or an encoder failure is returned as an error;
// failed assertions are reported in the result.
func Run(scenario *Scenario) (*Result, error) {
	h := &Harness{
		clock: testutil.NewFixedClock(GeneratedAt),
		ids:   testutil.NewFixedIDGenerator(scenario.RunID),
	}
	return h.run(scenario)
}

func (h *Harness) run(scenario *Scenario) (*Result, error) {
	raw, err := scenario.InputBytes()
	if err != nil {
		return nil, err
	}

	cfg := config.Default()
	scenario.Config.Apply(&cfg)
	cfg.InputPath = scenario.Source
	if cfg.InputPath == "" {
		cfg.InputPath = scenario.Name + ".bin"
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	words := memimage.Build(raw, cfg.Depth, cfg.Width, cfg.PadByte(), cfg.Invert)
	meta := render.Meta{
		Width:     cfg.Width,
		Name:      cfg.Name,
		Source:    cfg.InputPath,
		Program:   Program,
		Generated: h.clock.Now(),
		RunID:     h.ids.Generate(),
		Digest:    memimage.Digest(raw),
		Params:    cfg.Params(),
	}

	var buf bytes.Buffer
	if err := render.Encode(&buf, cfg.Format, words, meta); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	result := NewResult()
	result.Config = cfg
	result.Words = words
	result.Output = buf.String()

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}
