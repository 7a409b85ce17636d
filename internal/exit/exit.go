// Package exit maps command outcomes to process exit codes.
package exit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	CodeOK          = 0
	CodeFailure     = 1
	CodeInterrupted = 130
)

// Result holds the output destination and exit code for program termination.
type Result struct {
	Output   io.Writer
	ExitCode int
	Message  string
}

// Print writes the result message to the configured output destination.
func (r *Result) Print() {
	if r.Message == "" {
		return
	}
	fmt.Fprintln(r.Output, r.Message)
}

// Success creates a successful exit result that outputs to stdout with exit code 0.
func Success(message string) *Result {
	return &Result{
		Output:   os.Stdout,
		ExitCode: CodeOK,
		Message:  message,
	}
}

// Error creates an error exit result that outputs to stderr with exit code 1.
func Error(message string) *Result {
	return &Result{
		Output:   os.Stderr,
		ExitCode: CodeFailure,
		Message:  message,
	}
}

// Errorf creates an error exit result with formatted message.
func Errorf(format string, a ...any) *Result {
	return Error(fmt.Sprintf(format, a...))
}

// FromError classifies err. Cancellation exits with 130 and no message,
// following the shell convention for SIGINT.
func FromError(err error) *Result {
	switch {
	case err == nil:
		return Success("")
	case errors.Is(err, context.Canceled):
		return &Result{Output: os.Stderr, ExitCode: CodeInterrupted}
	default:
		return Errorf("Error: %v", err)
	}
}
