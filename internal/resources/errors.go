package resources

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors
var (
	// ErrNotFound indicates a required path or generated artifact does not exist
	ErrNotFound = errors.New("not found")

	// ErrNotADirectory indicates a supplied base directory exists but is not a directory
	ErrNotADirectory = errors.New("not a directory")

	// ErrMemoryFormat indicates a memory value does not match any recognized shape
	ErrMemoryFormat = errors.New("cannot parse memory value")

	// ErrTimeFormat indicates a time value does not match any recognized shape
	ErrTimeFormat = errors.New("cannot parse time value")
)

// NotFoundError reports a generated artifact that could not be located.
// It carries every search root that was tried so operators can diagnose
// a misplaced experiment directory from the message alone.
type NotFoundError struct {
	Target   string   // What was being looked for (e.g., "finished config", "run script")
	ExpID    string   // Experiment ID the artifact belongs to
	Searched []string // Every root that was searched, in priority order
}

func (e *NotFoundError) Error() string {
	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("could not find %s for expid=%s", e.Target, e.ExpID))
	if len(e.Searched) > 0 {
		msg.WriteString("\nSearched in the following locations:")
		for _, p := range e.Searched {
			msg.WriteString("\n  " + p)
		}
	}
	return msg.String()
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(target, expID string, searched []string) *NotFoundError {
	return &NotFoundError{
		Target:   target,
		ExpID:    expID,
		Searched: searched,
	}
}

// ToolError represents a non-zero exit from the external check command.
// Captured stderr is attached for diagnosis; the command is never retried.
type ToolError struct {
	Command string // Full command line that was executed
	Stderr  string // Captured standard error
	Err     error  // Underlying exec error
}

func (e *ToolError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("external tool failed: %s: %v\nStderr: %s",
			e.Command, e.Err, strings.TrimSpace(e.Stderr))
	}
	return fmt.Sprintf("external tool failed: %s: %v", e.Command, e.Err)
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// NewToolError creates a new ToolError
func NewToolError(command, stderr string, err error) *ToolError {
	return &ToolError{
		Command: command,
		Stderr:  stderr,
		Err:     err,
	}
}

// IsNotFound checks if an error is a NotFoundError or wraps ErrNotFound
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsParseError checks if an error came from a unit normalizer
func IsParseError(err error) bool {
	return errors.Is(err, ErrMemoryFormat) || errors.Is(err, ErrTimeFormat)
}

// IsToolError checks if an error is a ToolError
func IsToolError(err error) bool {
	var te *ToolError
	return errors.As(err, &te)
}
