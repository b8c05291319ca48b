package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for expected failure modes
var (
	ErrToolNotInstalled = errors.New("required tool not installed")
	ErrTimeout          = errors.New("operation timed out")
	ErrNoSoundfont      = errors.New("no soundfont found")
	ErrEmptyOutput      = errors.New("output file missing or empty")
)

// ProcessError represents a failure in an external process
type ProcessError struct {
	Tool     string // "fluidsynth", "timidity", "ffmpeg"
	Stage    string // "synthesis", "encoding"
	ExitCode int
	Stderr   string
	Cause    error
}

func (e *ProcessError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s failed at %s (exit %d): %s", e.Tool, e.Stage, e.ExitCode, e.Stderr)
	}
	return fmt.Sprintf("%s failed at %s (exit %d)", e.Tool, e.Stage, e.ExitCode)
}

func (e *ProcessError) Unwrap() error {
	return e.Cause
}

// NewProcessError creates a ProcessError
func NewProcessError(tool, stage string, exitCode int, stderr string, cause error) *ProcessError {
	return &ProcessError{
		Tool:     tool,
		Stage:    stage,
		ExitCode: exitCode,
		Stderr:   stderr,
		Cause:    cause,
	}
}

// RenderError means every score writer in the chain failed. The raw
// writer has no optional dependency, so in practice this only happens
// on an I/O fault at the score path.
type RenderError struct {
	Attempted []string
	Cause     error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("score rendering failed (tried %s): %v",
		strings.Join(e.Attempted, ", "), e.Cause)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// TranscodeError means every audio backend failed or was unavailable.
// There is no further fallback; the message tells the operator what to
// install.
type TranscodeError struct {
	Attempted []string
}

func (e *TranscodeError) Error() string {
	return fmt.Sprintf(
		"audio transcoding failed (tried %s); install fluidsynth with a General MIDI soundfont, or timidity, plus ffmpeg for MP3 encoding",
		strings.Join(e.Attempted, ", "))
}
