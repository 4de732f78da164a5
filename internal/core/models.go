package core

import (
	"errors"
	"fmt"
)

// ErrUnsupportedPlatform is returned by every component that branches on
// the platform kind when the host is neither Windows nor POSIX.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// Kind represents the host operating system family
type Kind string

const (
	KindWindows Kind = "windows"
	KindPosix   Kind = "posix"
	KindOther   Kind = "other"
)

// Supported reports whether the pipeline knows the naming conventions for k
func (k Kind) Supported() bool {
	return k == KindWindows || k == KindPosix
}

// Platform is computed once per process and passed to each component
type Platform struct {
	Kind Kind `json:"kind"`
	// HybridShell is set under MSYS2/MinGW shells, which use POSIX library
	// naming even though Kind is Windows.
	HybridShell bool `json:"hybrid_shell"`
}

// UsesPosixNaming reports whether libraries follow the libpythonX.Y.so form
func (p Platform) UsesPosixNaming() bool {
	return p.Kind == KindPosix || p.HybridShell
}

// Version is a Python (major, minor) pair
type Version struct {
	Major int `json:"major"`
	Minor int `json:"minor"`
}

// Valid reports whether v carries a real version. The zero value is never a
// real interpreter version.
func (v Version) Valid() bool {
	return v.Major != 0 || v.Minor != 0
}

// String returns the version as "major.minor"
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Exit codes used by the CLI
const (
	ExitSuccess     = 0
	ExitGeneral     = 1
	ExitInvalidArgs = 2
	ExitNotFound    = 3
)
