//go:build !windows

package helpers

import "os/exec"

// hideWindow is a no-op outside Windows
func hideWindow(_ *exec.Cmd) {}
