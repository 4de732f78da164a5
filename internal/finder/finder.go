// Package finder scans search directories for Python interpreter executables.
package finder

import (
	"path/filepath"

	"github.com/quantmind-br/pylocate/internal/core"
	"github.com/quantmind-br/pylocate/internal/fsops"
	"github.com/spf13/afero"
)

var (
	windowsNames = []string{"python.exe", "python3.exe", "py.exe", "py3.exe"}
	posixNames   = []string{"python3", "python"}
)

// CandidateNames returns the interpreter filenames tried in each directory,
// in the order they are tested.
func CandidateNames(kind core.Kind) ([]string, error) {
	switch kind {
	case core.KindWindows:
		return append([]string(nil), windowsNames...), nil
	case core.KindPosix:
		return append([]string(nil), posixNames...), nil
	default:
		return nil, core.ErrUnsupportedPlatform
	}
}

// FindExecutables returns every existing dir/name combination, directory-major
// and name-minor. Duplicate directories produce duplicate entries. An empty
// result is not an error.
func FindExecutables(fs afero.Fs, kind core.Kind, searchPaths []string) ([]string, error) {
	names, err := CandidateNames(kind)
	if err != nil {
		return nil, err
	}

	found := make([]string, 0)
	for _, dir := range searchPaths {
		for _, name := range names {
			candidate := filepath.Join(dir, name)
			if fsops.IsFile(fs, candidate) {
				found = append(found, candidate)
			}
		}
	}

	return found, nil
}
