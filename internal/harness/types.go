package harness

import (
	"github.com/roach88/meminit/internal/config"
	"github.com/roach88/meminit/internal/memimage"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall success: all assertions held.
	Pass bool

	// Config is the resolved parameter set the scenario ran with.
	Config config.RunConfig

	// Words is the decomposed image.
	Words memimage.Words

	// Output is the generated text.
	Output string

	// Errors contains assertion failure messages.
	// Empty if Pass is true.
	Errors []string
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
