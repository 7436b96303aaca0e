// Package style renders dotlink's terminal output with lipgloss.
package style

import (
	"os"

	"github.com/arthur-debert/dotlink/pkg/types"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Base styles
var (
	// Headers and titles
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	// Text styles
	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	// Status styles
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	// Path styles
	PathStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Italic(true)

	LinkStyle = lipgloss.NewStyle().
			Foreground(LinkColor).
			Bold(true)

	StaticStyle = lipgloss.NewStyle().
			Foreground(StaticColor).
			Bold(true)
)

// Indicators are rendered on use so they follow the active color profile.
func SuccessIndicator() string { return SuccessStyle.Render("✓") }
func ErrorIndicator() string   { return ErrorStyle.Render("✗") }
func WarningIndicator() string { return WarningStyle.Render("!") }
func InfoIndicator() string    { return InfoStyle.Render("•") }
func PendingIndicator() string { return MutedStyle.Render("○") }

// AvailabilityStyle returns the style used for an availability label.
func AvailabilityStyle(a types.Availability) lipgloss.Style {
	switch a {
	case types.AvailabilityAvailable:
		return SuccessStyle
	case types.AvailabilityAlwaysInstall:
		return StaticStyle
	case types.AvailabilityDetectionFailure:
		return ErrorStyle
	case types.AvailabilityUnavailable, types.AvailabilityNoLogic:
		return MutedStyle
	default:
		return InfoStyle
	}
}

// AvailabilityIndicator returns the marker shown before a component.
func AvailabilityIndicator(a types.Availability) string {
	switch {
	case a == types.AvailabilityDetectionFailure:
		return ErrorIndicator()
	case a.Installable():
		return SuccessIndicator()
	default:
		return PendingIndicator()
	}
}

// ActionIndicator returns the marker shown before a link outcome.
func ActionIndicator(a types.Action) string {
	switch a {
	case types.ActionLinked, types.ActionUnlinked:
		return SuccessIndicator()
	case types.ActionConflict:
		return WarningIndicator()
	case types.ActionNotLinked:
		return PendingIndicator()
	default:
		return InfoIndicator()
	}
}

// ConfigureOutput picks the color profile for f: plain text when it is not
// a terminal, otherwise whatever the environment supports (NO_COLOR and
// CLICOLOR_FORCE included).
func ConfigureOutput(f *os.File) {
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.NewOutput(f).EnvColorProfile())
}

// Plain disables all styling, for tests and machine-readable output.
func Plain() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// Helper functions
func Indent(s string, level int) string {
	return lipgloss.NewStyle().PaddingLeft(level * 2).Render(s)
}

func Bold(s string) string {
	return lipgloss.NewStyle().Bold(true).Render(s)
}
