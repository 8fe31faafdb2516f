package testutil

// DefaultRunID is returned by a FixedIDGenerator created with an empty ID.
const DefaultRunID = "00000000-0000-7000-8000-000000000000"

// FixedIDGenerator generates the same run ID every time.
//
// This enables golden comparison of output that embeds a run ID.
//
// Thread-safety: FixedIDGenerator is stateless and safe for concurrent use.
type FixedIDGenerator struct {
	id string
}

// NewFixedIDGenerator creates a new fixed run ID generator.
//
// If id is empty, Generate() returns DefaultRunID.
func NewFixedIDGenerator(id string) *FixedIDGenerator {
	if id == "" {
		id = DefaultRunID
	}
	return &FixedIDGenerator{id: id}
}

// Generate returns the fixed run ID.
//
// Implements provenance.IDGenerator.
func (g *FixedIDGenerator) Generate() string {
	return g.id
}
