// Package ui decides how human-facing output is styled and holds the shared
// lipgloss styles.
package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format represents how prompts and messages are rendered
type Format int

const (
	// FormatAuto picks styled output when the stream is a color terminal
	FormatAuto Format = iota
	// FormatStyled renders with colors and text attributes
	FormatStyled
	// FormatPlain renders bare text
	FormatPlain
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatStyled:
		return "styled"
	case FormatPlain:
		return "plain"
	default:
		return "unknown"
	}
}

// ParseFormat parses a string into a Format value
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto", "":
		return FormatAuto, nil
	case "styled", "term", "terminal":
		return FormatStyled, nil
	case "plain", "text":
		return FormatPlain, nil
	default:
		return FormatAuto, fmt.Errorf("unknown format: %s", s)
	}
}

// DetectFormat determines the format to use for output based on environment
// and terminal capabilities
func DetectFormat(output *os.File) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatPlain
	}

	// Piped or redirected
	if output == nil || (!isatty.IsTerminal(output.Fd()) && !isatty.IsCygwinTerminal(output.Fd())) {
		return FormatPlain
	}

	if termenv.NewOutput(output).ColorProfile() == termenv.Ascii {
		return FormatPlain
	}
	return FormatStyled
}

// Resolve turns FormatAuto into a concrete format for output.
func Resolve(f Format, output *os.File) Format {
	if f == FormatAuto {
		return DetectFormat(output)
	}
	return f
}

// IsInteractive reports whether f is connected to a terminal.
func IsInteractive(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
