package helpers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sync"
)

// CommandRunner defines an interface for executing system commands
// This allows for mocking in tests and dependency injection
type CommandRunner interface {
	// CommandExists checks if a command is available in PATH
	CommandExists(name string) bool

	// LookPath resolves a command name through PATH
	LookPath(name string) (string, error)

	// RunCommand executes a command and returns its stdout once it exits
	// or the context is done, whichever comes first
	RunCommand(ctx context.Context, name string, args ...string) (string, error)

	// GetExitCode extracts the exit code from a command error
	GetExitCode(err error) int
}

// OSCommandRunner is the default implementation using os/exec
type OSCommandRunner struct {
	commandCache sync.Map // map[string]bool
}

// NewOSCommandRunner creates a new OSCommandRunner instance
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{}
}

// CommandExists checks if a command is available in PATH
func (r *OSCommandRunner) CommandExists(name string) bool {
	if cached, ok := r.commandCache.Load(name); ok {
		if exists, ok := cached.(bool); ok {
			return exists
		}
		r.commandCache.Delete(name)
	}

	_, err := exec.LookPath(name)
	exists := err == nil
	r.commandCache.Store(name, exists)
	return exists
}

// LookPath resolves a command name through PATH
func (r *OSCommandRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// RunCommand executes a command without a shell and returns stdout.
// Stdin is not connected and no console window is allocated on Windows.
//
// When ctx is done before the process exits, the process is abandoned, not
// killed: RunCommand returns immediately and a background goroutine reaps
// the child whenever it finishes. Callers must not assume it has exited.
// SECURITY: Uses separate arguments to prevent command injection
func (r *OSCommandRunner) RunCommand(ctx context.Context, name string, args ...string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("command %q not started: %w", name, err)
	}

	cmd := exec.Command(name, args...)
	hideWindow(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("command %q failed to start: %w", name, err)
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	select {
	case err := <-done:
		if err != nil {
			return stdout.String(), fmt.Errorf("command %q failed: %w\nstderr: %s", name, err, stderr.String())
		}
		return stdout.String(), nil
	case <-ctx.Done():
		return "", fmt.Errorf("command %q abandoned: %w", name, ctx.Err())
	}
}

// GetExitCode extracts the exit code from a command error.
// Returns -1 when the process never exited (start failure, abandoned).
func (r *OSCommandRunner) GetExitCode(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}

	return -1
}
