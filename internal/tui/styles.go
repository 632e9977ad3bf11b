// Package tui provides the terminal home dashboard for Companheiro.
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette for the dashboard.
var (
	ColorPrimary = lipgloss.Color("#7C3AED") // Purple
	ColorMuted   = lipgloss.Color("#6B7280") // Gray
	ColorWarning = lipgloss.Color("#F59E0B") // Yellow
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorSuccess = lipgloss.Color("#10B981") // Green
	ColorToday   = lipgloss.Color("#3B82F6") // Blue
	ColorBorder  = lipgloss.Color("#4B5563") // Dark gray

	// Light-background variants used when dark mode is off.
	ColorMutedLight  = lipgloss.Color("#9CA3AF")
	ColorBorderLight = lipgloss.Color("#D1D5DB")
)

// Theme holds the style set for one display mode. The stored darkMode
// preference picks the theme at startup and the 'm' key flips it live.
type Theme struct {
	Dark bool

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Muted    lipgloss.Style
	Taken    lipgloss.Style
	Today    lipgloss.Style
	Cursor   lipgloss.Style

	Box      lipgloss.Style
	AlertBox lipgloss.Style

	Help     lipgloss.Style
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style
}

// NewTheme builds the style set for the given mode.
func NewTheme(dark bool) Theme {
	muted := ColorMuted
	border := ColorBorder
	if !dark {
		muted = ColorMutedLight
		border = ColorBorderLight
	}

	return Theme{
		Dark: dark,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary),

		Subtitle: lipgloss.NewStyle().
			Foreground(muted),

		Success: lipgloss.NewStyle().
			Foreground(ColorSuccess),

		Warning: lipgloss.NewStyle().
			Foreground(ColorWarning),

		Error: lipgloss.NewStyle().
			Foreground(ColorError),

		Muted: lipgloss.NewStyle().
			Foreground(muted),

		Taken: lipgloss.NewStyle().
			Strikethrough(true).
			Foreground(muted),

		Today: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorToday),

		Cursor: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(1, 2).
			MarginBottom(1),

		AlertBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorWarning).
			Padding(1, 2).
			MarginBottom(1),

		Help: lipgloss.NewStyle().
			Foreground(muted).
			MarginTop(1),

		HelpKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSuccess),

		HelpDesc: lipgloss.NewStyle().
			Foreground(muted),
	}
}
