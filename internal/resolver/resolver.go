// Package resolver finds the Python shared library matching an interpreter
// discovered on the search path.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/quantmind-br/pylocate/internal/core"
	"github.com/quantmind-br/pylocate/internal/finder"
	"github.com/quantmind-br/pylocate/internal/fsops"
	"github.com/quantmind-br/pylocate/internal/platform"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

var (
	// ErrNotFound is returned when no candidate yields a library on the search path
	ErrNotFound = errors.New("python library not found")
	// ErrNoParentDir marks a candidate path without a containing directory
	ErrNoParentDir = errors.New("candidate has no parent directory")
	// ErrLibraryMissing marks a candidate whose library is on no search directory
	ErrLibraryMissing = errors.New("library not on search path")
	// ErrUnknownVersion marks a probe that reported success without a version
	ErrUnknownVersion = errors.New("interpreter version unknown")
)

// VersionProber is satisfied by *probe.Prober
type VersionProber interface {
	ProbeVersion(ctx context.Context) (core.Version, error)
	ProbeInterpreter(ctx context.Context, interpreter string) (core.Version, error)
}

// Options tunes resolution
type Options struct {
	// PerCandidate probes each candidate by its absolute path instead of the
	// bare command resolved through PATH. Off by default: every candidate then
	// sees the version of whichever interpreter PATH resolves first.
	PerCandidate bool
}

// Attempt records what happened to one candidate
type Attempt struct {
	Candidate string       `json:"candidate"`
	Version   core.Version `json:"version"`
	Library   string       `json:"library,omitempty"`
	Path      string       `json:"path,omitempty"`
	Err       error        `json:"-"`
}

// Resolver runs the discovery pipeline
type Resolver struct {
	fs       afero.Fs
	env      platform.Environment
	platform core.Platform
	prober   VersionProber
	opts     Options
	log      *zerolog.Logger
}

// New creates a Resolver. The platform is computed by the caller once.
func New(fs afero.Fs, env platform.Environment, plat core.Platform, prober VersionProber, opts Options, log *zerolog.Logger) *Resolver {
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	return &Resolver{
		fs:       fs,
		env:      env,
		platform: plat,
		prober:   prober,
		opts:     opts,
		log:      log,
	}
}

// Platform returns the platform the resolver was built for
func (r *Resolver) Platform() core.Platform {
	return r.platform
}

// SearchPaths reads the search path from the injected environment
func (r *Resolver) SearchPaths() ([]string, error) {
	return platform.SearchPaths(r.env, r.platform.Kind)
}

// Candidates lists interpreter executables on searchPaths
func (r *Resolver) Candidates(searchPaths []string) ([]string, error) {
	return finder.FindExecutables(r.fs, r.platform.Kind, searchPaths)
}

// Resolve reads the search path from the environment and finds the library
func (r *Resolver) Resolve(ctx context.Context) (string, error) {
	paths, err := r.SearchPaths()
	if err != nil {
		return "", err
	}
	return r.FindLibrary(ctx, paths)
}

// FindLibrary returns the absolute path of the first library matching a
// candidate interpreter, or ErrNotFound.
func (r *Resolver) FindLibrary(ctx context.Context, searchPaths []string) (string, error) {
	path, _, err := r.Trace(ctx, searchPaths)
	return path, err
}

// Trace is FindLibrary that also reports every candidate it examined
func (r *Resolver) Trace(ctx context.Context, searchPaths []string) (string, []Attempt, error) {
	candidates, err := r.Candidates(searchPaths)
	if err != nil {
		return "", nil, err
	}
	if len(candidates) == 0 {
		r.log.Debug().Int("search_paths", len(searchPaths)).Msg("no interpreter candidates")
		return "", nil, ErrNotFound
	}

	if r.opts.PerCandidate {
		r.log.Info().Msg("probing each candidate by path instead of the PATH interpreter")
	}

	attempts := make([]Attempt, 0, len(candidates))
	for _, candidate := range candidates {
		attempt := Attempt{Candidate: candidate}

		v, err := r.probe(ctx, candidate)
		if err == nil && !v.Valid() {
			err = ErrUnknownVersion
		}
		if err != nil {
			attempt.Err = err
			attempts = append(attempts, attempt)
			r.log.Debug().Err(err).Str("candidate", candidate).Msg("skipping candidate")
			continue
		}
		attempt.Version = v

		if _, ok := parentDir(candidate); !ok {
			attempt.Err = ErrNoParentDir
			attempts = append(attempts, attempt)
			r.log.Debug().Str("candidate", candidate).Msg("skipping candidate without parent directory")
			continue
		}

		name, err := LibraryName(r.platform, v)
		if err != nil {
			attempt.Err = err
			attempts = append(attempts, attempt)
			return "", attempts, err
		}
		attempt.Library = name

		if found, ok := r.searchLibrary(searchPaths, name); ok {
			attempt.Path = found
			attempts = append(attempts, attempt)
			r.log.Debug().Str("candidate", candidate).Str("library", found).Msg("resolved python library")
			return found, attempts, nil
		}

		attempt.Err = ErrLibraryMissing
		attempts = append(attempts, attempt)
		r.log.Debug().Str("candidate", candidate).Str("library", name).Msg("library not on search path")
	}

	return "", attempts, ErrNotFound
}

func (r *Resolver) probe(ctx context.Context, candidate string) (core.Version, error) {
	if r.opts.PerCandidate {
		return r.prober.ProbeInterpreter(ctx, candidate)
	}
	return r.prober.ProbeVersion(ctx)
}

// searchLibrary checks every search directory in priority order
func (r *Resolver) searchLibrary(searchPaths []string, name string) (string, bool) {
	for _, dir := range searchPaths {
		candidate := filepath.Join(dir, name)
		if !fsops.IsFile(r.fs, candidate) {
			continue
		}
		if abs, err := filepath.Abs(candidate); err == nil {
			return abs, true
		}
		return candidate, true
	}
	return "", false
}

// LibraryName derives the shared library filename for a Python version.
// Windows outside a hybrid shell uses pythonXY.dll; POSIX hosts and hybrid
// shells use libpythonX.Y.so.
func LibraryName(plat core.Platform, v core.Version) (string, error) {
	if !v.Valid() {
		return "", fmt.Errorf("no library name for unknown version %s", v)
	}

	switch {
	case plat.Kind == core.KindWindows && !plat.HybridShell:
		return fmt.Sprintf("python%d%d.dll", v.Major, v.Minor), nil
	case plat.UsesPosixNaming():
		return fmt.Sprintf("libpython%d.%d.so", v.Major, v.Minor), nil
	default:
		return "", core.ErrUnsupportedPlatform
	}
}

// parentDir returns the directory containing path. Roots and empty paths
// have none.
func parentDir(path string) (string, bool) {
	if path == "" {
		return "", false
	}
	dir := filepath.Dir(path)
	if dir == path {
		return "", false
	}
	return dir, true
}
