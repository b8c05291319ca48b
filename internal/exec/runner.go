package exec

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"

	apperrors "github.com/bonsai/AirAp/internal/errors"
)

// Result holds command execution output
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
	TimedOut bool
}

// Runner executes external tools with captured output and a bounded
// timeout. Every backend invocation in the pipeline goes through it.
type Runner struct{}

// NewRunner creates a new command runner
func NewRunner() *Runner {
	return &Runner{}
}

// Run executes a command, waiting at most timeout for it to finish.
// A timeout of zero means the caller's context is the only bound.
func (r *Runner) Run(ctx context.Context, timeout time.Duration, name string, args ...string) (*Result, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
		TimedOut: ctx.Err() == context.DeadlineExceeded,
	}

	if exitErr, ok := err.(*exec.ExitError); ok {
		result.ExitCode = exitErr.ExitCode()
	}

	if result.TimedOut {
		return result, fmt.Errorf("%s: %w after %s", name, apperrors.ErrTimeout, timeout)
	}
	if err != nil {
		return result, fmt.Errorf("command %s failed: %w", name, err)
	}

	return result, nil
}

// Installed reports whether a tool can be found on PATH (or at the
// given absolute path).
func (r *Runner) Installed(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
