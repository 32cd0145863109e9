package ui

import "github.com/charmbracelet/lipgloss"

// Theme colors used throughout the UI
const (
	ColorAccent    = "86"  // Cyan/green - titles, focused inputs
	ColorHighlight = "205" // Magenta - selected rows, borders
	ColorDanger    = "196" // Red - errors
	ColorMuted     = "241" // Gray - hints, placeholders
	ColorText      = "252" // Light gray - normal text
	ColorWarning   = "208" // Orange - validation hints
	ColorOK        = "42"  // Green - running apps
)

// Styles contains shared style definitions used by the registry and composer.
var Styles = struct {
	Title     lipgloss.Style // Bold accent - view titles
	Box       lipgloss.Style // Composer modal box
	ErrorBox  lipgloss.Style // Backend/transport failure message
	Selected  lipgloss.Style // Highlighted registry row
	Normal    lipgloss.Style // Registry rows
	Muted     lipgloss.Style // Secondary row text (URL, port)
	Hint      lipgloss.Style // Key hints
	Empty     lipgloss.Style // Loading / empty placeholders
	Tag       lipgloss.Style // Framework tag
	Running   lipgloss.Style
	Stopped   lipgloss.Style
	Label     lipgloss.Style // Form field labels
	Focused   lipgloss.Style // Label of the focused field
	Invalid   lipgloss.Style // Local validation hint
	Button    lipgloss.Style
	ButtonOn  lipgloss.Style // Focused submit button
	ButtonOff lipgloss.Style // Disabled while submitting
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(1, 2).
		Margin(1),
	ErrorBox: lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(ColorDanger)).
		Foreground(lipgloss.Color(ColorDanger)).
		Padding(0, 1),
	Selected: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Hint: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Empty: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)).
		Italic(true),
	Tag: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)).
		Background(lipgloss.Color("236")).
		Padding(0, 1),
	Running: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorOK)),
	Stopped: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Label: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Focused: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)).
		Bold(true),
	Invalid: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorWarning)),
	Button: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorMuted)).
		Padding(0, 2),
	ButtonOn: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccent)).
		Foreground(lipgloss.Color(ColorAccent)).
		Bold(true).
		Padding(0, 2),
	ButtonOff: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorMuted)).
		Foreground(lipgloss.Color(ColorMuted)).
		Padding(0, 2),
}
