package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Runtime failure (unreadable input, undecodable image, write error)
	ExitCommandError = 2 // Usage error (bad flags, missing input argument, invalid parameters)
)

// Error codes reported in diagnostics.
const (
	ErrCodeUsage        = "E002" // Invalid arguments or parameters
	ErrCodeProfile      = "E003" // Profile unreadable or invalid
	ErrCodeReadFailed   = "E004" // Input file cannot be opened or read
	ErrCodeDecodeFailed = "E005" // Input cannot be decoded in its format
	ErrCodeEncodeFailed = "E006" // Encoder rejected the image
	ErrCodeWriteFailed  = "E007" // Output write error
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil and ExitFailure if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter separates generated output from diagnostics.
//
// Writer only ever receives the generated file. Errors and verbose logs go
// to ErrWriter, as text or JSON depending on Format, so redirecting stdout
// into a .mif or .vhd file is always safe.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer
	Verbose   bool
}

// CLIResponse is the JSON shape of an error report.
type CLIResponse struct {
	Status string    `json:"status"`          // "error"
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`              // "E002", "E004", etc.
	Message string `json:"message"`           // human-readable message
	Details string `json:"details,omitempty"` // underlying cause
}

// Error reports an error on the diagnostics writer.
func (f *OutputFormatter) Error(code, message string, cause error) error {
	w := f.GetErrWriter()
	if f.Format == "json" {
		resp := CLIResponse{Status: "error", Error: &CLIError{Code: code, Message: message}}
		if cause != nil {
			resp.Error.Details = cause.Error()
		}
		return json.NewEncoder(w).Encode(resp)
	}

	fmt.Fprintf(w, "Error [%s]: %s\n", code, message)
	if cause != nil {
		fmt.Fprintf(w, "  %v\n", cause)
	}
	return nil
}

// Logger returns a structured logger on the diagnostics writer. It logs at
// Debug when verbose, otherwise only warnings and above.
func (f *OutputFormatter) Logger() *slog.Logger {
	level := slog.LevelWarn
	if f.Verbose {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	if f.Format == "json" {
		return slog.New(slog.NewJSONHandler(f.GetErrWriter(), handlerOpts))
	}
	return slog.New(slog.NewTextHandler(f.GetErrWriter(), handlerOpts))
}

// GetErrWriter returns the appropriate writer for diagnostic output.
// Returns ErrWriter if set, otherwise io.Discard.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return io.Discard
}

// fail reports err and converts it into an ExitError with code.
func (f *OutputFormatter) fail(exitCode int, errCode, message string, err error) error {
	_ = f.Error(errCode, message, err)
	return WrapExitError(exitCode, message, err)
}
