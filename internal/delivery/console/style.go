package console

import (
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// Style is an ANSI SGR sequence.
type Style string

const (
	Cyan     Style = "\033[96m"
	DarkCyan Style = "\033[36m"
	Blue     Style = "\033[94m"
	Green    Style = "\033[92m"
	Yellow   Style = "\033[93m"
	Red      Style = "\033[91m"
	Bold     Style = "\033[1m"
)

const reset = "\033[0m"

// Palette wraps text in styles when enabled. The zero value is plain text.
type Palette struct {
	Enabled bool
}

// Paint returns text wrapped in s and a reset sequence.
func (p Palette) Paint(s Style, text string) string {
	if !p.Enabled {
		return text
	}
	return string(s) + text + reset
}

// DetectColor reports whether f should receive colour: a terminal, and NO_COLOR unset.
func DetectColor(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Stdout returns a writer that understands ANSI sequences on every platform.
func Stdout() io.Writer {
	return colorable.NewColorableStdout()
}
