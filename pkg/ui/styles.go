package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Adaptive colors shared by all human-facing output
var (
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#81C784"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "#E65100", Dark: "#FFB74D"}
	ColorError   = lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#E57373"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#616161", Dark: "#9E9E9E"}
	ColorAccent  = lipgloss.AdaptiveColor{Light: "#1565C0", Dark: "#64B5F6"}
)

// Styles groups the lipgloss styles for one output stream.
type Styles struct {
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Culprit lipgloss.Style
}

// NewStyles returns styled renderers for f, or pass-through styles when f is
// FormatPlain.
func NewStyles(f Format) Styles {
	if f == FormatPlain {
		plain := lipgloss.NewStyle()
		return Styles{Success: plain, Warning: plain, Error: plain, Muted: plain, Culprit: plain}
	}
	return Styles{
		Success: lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(ColorWarning),
		Error:   lipgloss.NewStyle().Foreground(ColorError).Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(ColorMuted),
		Culprit: lipgloss.NewStyle().Foreground(ColorAccent).Bold(true).Underline(true),
	}
}
