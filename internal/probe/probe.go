// Package probe asks a Python interpreter for its version.
//
// The interpreter runs a fixed inline script that prints the major and minor
// version followed by a guard token. Output is accepted only when it is
// exactly those three fields, so unrelated stdout noise, partial writes and
// interpreters with unusual -c handling are rejected instead of misread.
package probe

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/quantmind-br/pylocate/internal/core"
	"github.com/quantmind-br/pylocate/internal/helpers"
	"github.com/rs/zerolog"
)

const (
	// DefaultCommand is resolved through the process PATH
	DefaultCommand = "python"
	// DefaultTimeout bounds the wait for the interpreter to exit
	DefaultTimeout = 5000 * time.Millisecond
	// GuardToken is the literal third field of a valid probe reply
	GuardToken = "kwgood"
	// Script is passed to the interpreter with -c
	Script = "import sys; print(sys.version_info.major, sys.version_info.minor, '" + GuardToken + "')"
)

var (
	// ErrProbeFailed wraps every reason a version could not be obtained
	ErrProbeFailed = errors.New("version probe failed")
	// ErrMalformedOutput is returned by ParseOutput for any reply that
	// breaks the "<major> <minor> kwgood" contract
	ErrMalformedOutput = errors.New("malformed probe output")
)

// Config controls how the interpreter is invoked. Zero fields take defaults.
type Config struct {
	Command string
	Timeout time.Duration
}

// Prober runs the version probe
type Prober struct {
	runner  helpers.CommandRunner
	command string
	timeout time.Duration
	log     *zerolog.Logger
}

// New creates a Prober
func New(runner helpers.CommandRunner, cfg Config, log *zerolog.Logger) *Prober {
	if cfg.Command == "" {
		cfg.Command = DefaultCommand
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}

	return &Prober{
		runner:  runner,
		command: cfg.Command,
		timeout: cfg.Timeout,
		log:     log,
	}
}

// Command returns the interpreter command used by ProbeVersion
func (p *Prober) Command() string {
	return p.command
}

// Timeout returns the bounded wait applied to each probe
func (p *Prober) Timeout() time.Duration {
	return p.timeout
}

// ProbeVersion probes the configured command, resolved through PATH. It does
// not depend on which executable candidate a caller is evaluating.
func (p *Prober) ProbeVersion(ctx context.Context) (core.Version, error) {
	return p.ProbeInterpreter(ctx, p.command)
}

// ProbeInterpreter probes a specific interpreter, either a bare command name
// or a path.
func (p *Prober) ProbeInterpreter(ctx context.Context, interpreter string) (core.Version, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	out, err := p.runner.RunCommand(ctx, interpreter, "-c", Script)
	if err != nil {
		code := p.runner.GetExitCode(err)
		if code < 0 {
			p.log.Debug().Err(err).Str("interpreter", interpreter).Msg("probe did not complete")
			return core.Version{}, fmt.Errorf("%w: %w", ErrProbeFailed, err)
		}
		// A non-zero exit is tolerated; the guarded output decides.
		p.log.Debug().Int("exit_code", code).Str("interpreter", interpreter).Msg("probe exited with non-zero status")
	}

	v, err := ParseOutput(out)
	if err != nil {
		p.log.Debug().Err(err).Str("interpreter", interpreter).Msg("probe output rejected")
		return core.Version{}, fmt.Errorf("%w: %w", ErrProbeFailed, err)
	}

	p.log.Debug().Str("interpreter", interpreter).Str("version", v.String()).Msg("probed interpreter")
	return v, nil
}

// ParseOutput parses "<major> <minor> kwgood". Surrounding whitespace is
// trimmed; fields must be separated by single spaces. Any integer is
// accepted for the version fields except the 0 0 pair.
func ParseOutput(out string) (core.Version, error) {
	fields := strings.Split(strings.TrimSpace(out), " ")
	if len(fields) != 3 {
		return core.Version{}, fmt.Errorf("%w: want 3 fields, got %d", ErrMalformedOutput, len(fields))
	}
	if fields[2] != GuardToken {
		return core.Version{}, fmt.Errorf("%w: guard token %q", ErrMalformedOutput, fields[2])
	}

	major, err := strconv.Atoi(fields[0])
	if err != nil {
		return core.Version{}, fmt.Errorf("%w: major: %w", ErrMalformedOutput, err)
	}
	minor, err := strconv.Atoi(fields[1])
	if err != nil {
		return core.Version{}, fmt.Errorf("%w: minor: %w", ErrMalformedOutput, err)
	}

	v := core.Version{Major: major, Minor: minor}
	if !v.Valid() {
		return core.Version{}, fmt.Errorf("%w: zero version", ErrMalformedOutput)
	}
	return v, nil
}
