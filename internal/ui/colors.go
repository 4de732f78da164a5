package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Color scheme for pylocate
var (
	Success = color.New(color.FgGreen)
	Error   = color.New(color.FgRed, color.Bold)
	Warning = color.New(color.FgYellow)
	Info    = color.New(color.FgCyan)

	Highlight = color.New(color.FgHiCyan, color.Bold)
	Muted     = color.New(color.Faint)
	Bold      = color.New(color.Bold)

	CheckMark = color.GreenString("✓")
	CrossMark = color.RedString("✗")
	Arrow     = color.CyanString("→")
	Bullet    = color.HiBlackString("•")
)

// InitColors initializes color settings from the configured mode and the
// environment. mode is one of auto, always or never.
func InitColors(mode string) {
	switch mode {
	case "never":
		color.NoColor = true
		return
	case "always":
		color.NoColor = false
		return
	}

	// Respect NO_COLOR environment variable
	if os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}

	// Respect TERM environment variable
	if os.Getenv("TERM") == "dumb" {
		color.NoColor = true
	}
}

// DisableColors disables all color output
func DisableColors() {
	color.NoColor = true
}

// EnableColors enables color output
func EnableColors() {
	color.NoColor = false
}

// AreColorsEnabled returns whether colors are currently enabled
func AreColorsEnabled() bool {
	return !color.NoColor
}

// Printer writes styled messages to a command's output streams
type Printer struct {
	out io.Writer
	err io.Writer
}

// NewPrinter creates a Printer; errors and warnings go to errOut
func NewPrinter(out, errOut io.Writer) *Printer {
	return &Printer{out: out, err: errOut}
}

// Success prints a success message
func (p *Printer) Success(format string, args ...interface{}) {
	Success.Fprintf(p.out, "%s %s\n", CheckMark, fmt.Sprintf(format, args...))
}

// Error prints an error message
func (p *Printer) Error(format string, args ...interface{}) {
	Error.Fprintf(p.err, "%s Error: %s\n", CrossMark, fmt.Sprintf(format, args...))
}

// Warning prints a warning message
func (p *Printer) Warning(format string, args ...interface{}) {
	Warning.Fprintf(p.err, "Warning: %s\n", fmt.Sprintf(format, args...))
}

// Info prints an info message
func (p *Printer) Info(format string, args ...interface{}) {
	Info.Fprintf(p.out, "%s %s\n", Arrow, fmt.Sprintf(format, args...))
}

// KeyValue prints a key-value pair with color
func (p *Printer) KeyValue(key, value string) {
	Bold.Fprintf(p.out, "%s: ", key)
	fmt.Fprintln(p.out, value)
}

// Header prints a section header
func (p *Printer) Header(text string) {
	fmt.Fprintln(p.out)
	Bold.Fprintln(p.out, text)
	Muted.Fprintln(p.out, "────────────────────────────────────────")
}

// Subheader prints a subsection header
func (p *Printer) Subheader(text string) {
	fmt.Fprintln(p.out)
	Highlight.Fprintln(p.out, text)
}

// List prints a bulleted list
func (p *Printer) List(items []string) {
	for _, item := range items {
		fmt.Fprintf(p.out, "  %s %s\n", Bullet, item)
	}
}

// NumberedList prints a numbered list
func (p *Printer) NumberedList(items []string) {
	for i, item := range items {
		Bold.Fprintf(p.out, "%d. ", i+1)
		fmt.Fprintln(p.out, item)
	}
}

// Line prints plain text
func (p *Printer) Line(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// SprintSuccess returns a success string without printing
func SprintSuccess(format string, args ...interface{}) string {
	return fmt.Sprintf("%s %s", CheckMark, fmt.Sprintf(format, args...))
}

// SprintError returns an error string without printing
func SprintError(format string, args ...interface{}) string {
	return fmt.Sprintf("%s %s", CrossMark, fmt.Sprintf(format, args...))
}
