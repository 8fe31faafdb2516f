package harness

import (
	"fmt"
	"strings"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)
	return buf.String()
}

func assertWordCount(result *Result, a Assertion) error {
	if got := len(result.Words); got != a.Count {
		return &AssertionError{
			Type:     AssertWordCount,
			Expected: fmt.Sprintf("%d words", a.Count),
			Actual:   fmt.Sprintf("%d words", got),
		}
	}
	return nil
}

func assertLineCount(result *Result, a Assertion) error {
	got := strings.Count(result.Output, "\n")
	if got != a.Count {
		return &AssertionError{
			Type:     AssertLineCount,
			Expected: fmt.Sprintf("%d lines", a.Count),
			Actual:   fmt.Sprintf("%d lines", got),
		}
	}
	return nil
}

func assertWords(result *Result, a Assertion) error {
	got := make([]string, len(result.Words))
	for i, w := range result.Words {
		got[i] = w.Hex()
	}

	want := make([]string, len(a.Words))
	for i, w := range a.Words {
		want[i] = strings.ToLower(w)
	}

	if strings.Join(got, " ") != strings.Join(want, " ") {
		return &AssertionError{
			Type:     AssertWords,
			Expected: strings.Join(want, " "),
			Actual:   strings.Join(got, " "),
		}
	}
	return nil
}

func assertContains(result *Result, a Assertion) error {
	if !strings.Contains(result.Output, a.Text) {
		return &AssertionError{
			Type:     AssertContains,
			Expected: fmt.Sprintf("output containing %q", a.Text),
			Actual:   fmt.Sprintf("%d bytes of output without it", len(result.Output)),
		}
	}
	return nil
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertWordCount:
			err = assertWordCount(result, assertion)
		case AssertLineCount:
			err = assertLineCount(result, assertion)
		case AssertWords:
			err = assertWords(result, assertion)
		case AssertContains:
			err = assertContains(result, assertion)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
