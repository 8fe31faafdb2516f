// Package provenance supplies the time and run identity stamped into
// generated files.
package provenance

import (
	"time"

	"github.com/google/uuid"
)

// Clock returns the generation time.
type Clock interface {
	Now() time.Time
}

// IDGenerator returns a run identifier.
type IDGenerator interface {
	Generate() string
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current local time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// UUIDv7Generator generates time-sortable UUIDv7 run IDs.
//
// Format: "01890a5d-ac96-774b-bcce-b302099a8057" (36 characters)
//
// Panics if UUID generation fails (should never happen in practice).
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
