package harness

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/meminit/internal/config"
)

// Scenario defines one conversion and what its result must look like.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Input is the raw image as hex bytes. Whitespace is ignored.
	Input string `yaml:"input"`

	// Source is the file name shown in provenance banners.
	// Defaults to Name + ".bin".
	Source string `yaml:"source,omitempty"`

	// Config overrides the default run parameters.
	Config config.Profile `yaml:"config"`

	// Assertions validate the words and the generated text.
	Assertions []Assertion `yaml:"assertions"`

	// RunID is a fixed run ID for the banner.
	// If empty, testutil.DefaultRunID is used.
	RunID string `yaml:"run_id,omitempty"`
}

// Assertion validates the result of a scenario.
type Assertion struct {
	// Type specifies the assertion type:
	// - "word_count": image has Count words
	// - "line_count": output has Count lines
	// - "words": word values equal Words (hex)
	// - "contains": output contains Text
	Type string `yaml:"type"`

	// Count is the expected number (word_count, line_count).
	Count int `yaml:"count,omitempty"`

	// Words are the expected word values in hex (words).
	Words []string `yaml:"words,omitempty"`

	// Text is the expected substring (contains).
	Text string `yaml:"text,omitempty"`
}

// Assertion type constants.
const (
	AssertWordCount = "word_count"
	AssertLineCount = "line_count"
	AssertWords     = "words"
	AssertContains  = "contains"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML with strict field validation.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// LoadScenarios loads every *.yaml scenario in dir, sorted by file name.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, path := range paths {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// InputBytes decodes the hex input.
func (s *Scenario) InputBytes() ([]byte, error) {
	compact := strings.Join(strings.Fields(s.Input), "")
	data, err := hex.DecodeString(compact)
	if err != nil {
		return nil, fmt.Errorf("input: %w", err)
	}
	return data, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if _, err := s.InputBytes(); err != nil {
		return err
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertWordCount, AssertLineCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must not be negative", index)
		}
	case AssertWords:
		if a.Words == nil {
			return fmt.Errorf("assertions[%d]: words is required for %s", index, a.Type)
		}
	case AssertContains:
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for %s", index, a.Type)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
