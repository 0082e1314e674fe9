// Package errors provides sentinel errors and custom error types for the draftmsg application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	// ErrMissingAPIKey indicates that no API credential could be resolved
	// from the environment. This is a configuration error with its own
	// exit code at the CLI boundary.
	ErrMissingAPIKey = errors.New("GEMINI_API_KEY environment variable is not set")

	// ErrServiceUnavailable indicates that the generation service stayed
	// unavailable after all retry attempts. Callers degrade to a no-op
	// rather than failing the commit.
	ErrServiceUnavailable = errors.New("generation service unavailable")

	// ErrEmptyMessage indicates that the model returned content but
	// nothing usable survived sanitization.
	ErrEmptyMessage = errors.New("no text returned from model or failed to parse response")
)

// GenerationError represents a non-transient failure from the generation API
type GenerationError struct {
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generation API call failed: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("generation API call failed: %s", e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// NewGenerationError creates a new GenerationError
func NewGenerationError(message string, err error) *GenerationError {
	return &GenerationError{Message: message, Err: err}
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}
