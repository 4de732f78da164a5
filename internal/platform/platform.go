// Package platform classifies the host and reads the interpreter search path.
package platform

import (
	"runtime"
	"strings"

	"github.com/quantmind-br/pylocate/internal/core"
)

const (
	// PathVar holds the executable search path on every supported host
	PathVar = "PATH"
	// HybridShellVar is set by MSYS2 shells to the active subsystem
	HybridShellVar = "MSYSTEM"
)

// hybridShells are the MSYSTEM values that select POSIX library naming
var hybridShells = map[string]bool{
	"MINGW64": true,
	"MINGW32": true,
}

// posixGOOS lists the GOOS values matched by the unix build constraint
var posixGOOS = map[string]bool{
	"aix":       true,
	"android":   true,
	"darwin":    true,
	"dragonfly": true,
	"freebsd":   true,
	"hurd":      true,
	"illumos":   true,
	"ios":       true,
	"linux":     true,
	"netbsd":    true,
	"openbsd":   true,
	"solaris":   true,
}

// KindFor maps a GOOS value to a platform kind
func KindFor(goos string) core.Kind {
	switch {
	case goos == "windows":
		return core.KindWindows
	case posixGOOS[goos]:
		return core.KindPosix
	default:
		return core.KindOther
	}
}

// Detect computes the platform for the running process
func Detect(env Environment) core.Platform {
	return DetectFor(runtime.GOOS, env)
}

// DetectFor computes the platform as if running on goos
func DetectFor(goos string, env Environment) core.Platform {
	return core.Platform{
		Kind:        KindFor(goos),
		HybridShell: IsHybridShell(env),
	}
}

// IsHybridShell reports whether MSYSTEM names a MinGW shell. The comparison
// is exact and case-sensitive.
func IsHybridShell(env Environment) bool {
	v, ok := env.LookupEnv(HybridShellVar)
	if !ok {
		return false
	}
	return hybridShells[v]
}

// Separator returns the PATH list separator for kind
func Separator(kind core.Kind) (string, error) {
	switch kind {
	case core.KindWindows:
		return ";", nil
	case core.KindPosix:
		return ":", nil
	default:
		return "", core.ErrUnsupportedPlatform
	}
}

// SearchPaths splits PATH into directories in priority order. A missing
// variable yields nil without error; directories are not checked for
// existence.
func SearchPaths(env Environment, kind core.Kind) ([]string, error) {
	sep, err := Separator(kind)
	if err != nil {
		return nil, err
	}

	value, ok := env.LookupEnv(PathVar)
	if !ok {
		return nil, nil
	}

	return strings.Split(value, sep), nil
}
