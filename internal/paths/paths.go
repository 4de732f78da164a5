package paths

import (
	"os"
	"path/filepath"
)

// AppName names the per-user config and data directories
const AppName = "pylocate"

// Resolver computes the default per-user locations of pylocate's own files
type Resolver struct {
	homeDir string
}

// NewResolver creates a Resolver for the current user's HOME. When HOME
// cannot be determined the working directory is used.
func NewResolver() *Resolver {
	homeDir, err := os.UserHomeDir()
	if err != nil || homeDir == "" {
		homeDir = os.Getenv("HOME")
	}
	if homeDir == "" {
		homeDir = "."
	}
	return &Resolver{homeDir: homeDir}
}

// NewResolverWithHome creates a Resolver with an explicit home directory
func NewResolverWithHome(homeDir string) *Resolver {
	return &Resolver{homeDir: homeDir}
}

// HomeDir returns the resolved home directory
func (r *Resolver) HomeDir() string {
	return r.homeDir
}

// ConfigDir returns ~/.config/pylocate
func (r *Resolver) ConfigDir() string {
	return filepath.Join(r.homeDir, ".config", AppName)
}

// ConfigFile returns ~/.config/pylocate/config.toml
func (r *Resolver) ConfigFile() string {
	return filepath.Join(r.ConfigDir(), "config.toml")
}

// DataDir returns ~/.local/share/pylocate
func (r *Resolver) DataDir() string {
	return filepath.Join(r.homeDir, ".local", "share", AppName)
}

// LogFile returns the default rotating log file
func (r *Resolver) LogFile() string {
	return filepath.Join(r.DataDir(), AppName+".log")
}

// Expand replaces a leading ~ with the home directory and expands
// environment variables.
func (r *Resolver) Expand(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		path = filepath.Join(r.homeDir, path[1:])
	}

	return os.ExpandEnv(path)
}
