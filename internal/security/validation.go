package security

import (
	"fmt"
	"strings"
)

// maxPathLen bounds interpreter paths and command names
const maxPathLen = 4096

// ValidateExecutable checks an interpreter command or path before it is
// handed to the process runner. Arguments never pass through a shell, so
// only values that cannot name a file at all are rejected.
func ValidateExecutable(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("executable cannot be empty")
	}

	if len(name) >= maxPathLen {
		return fmt.Errorf("executable path too long (max %d characters)", maxPathLen)
	}

	if strings.Contains(name, "\x00") {
		return fmt.Errorf("executable contains null byte")
	}

	if strings.ContainsAny(name, "\r\n") {
		return fmt.Errorf("executable contains line break")
	}

	return nil
}

// SanitizeForDisplay strips control characters so an untrusted path can
// be echoed to a terminal.
func SanitizeForDisplay(input string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, input)
}
