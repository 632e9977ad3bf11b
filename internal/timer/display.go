// Package timer provides the one-off countdown reminder.
package timer

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Display handles the visual rendering of a countdown.
type Display struct {
	Writer   io.Writer
	UseColor bool
}

// NewDisplay creates a new countdown display.
func NewDisplay() *Display {
	return &Display{
		Writer:   os.Stdout,
		UseColor: true,
	}
}

// Styles for the countdown display.
var (
	clockStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")) // Purple

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6")) // Blue

	doneStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#10B981")) // Green

	progressStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280")) // Gray

	statusStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#6B7280")) // Gray
)

// FormatDuration formats a duration as MM:SS or HH:MM:SS.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	totalSeconds := int(d.Seconds())
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// Render renders the running countdown.
func (d *Display) Render(label string, remaining, total time.Duration, paused bool) string {
	var output string

	if d.UseColor {
		output += labelStyle.Render(label)
	} else {
		output += label
	}
	output += "\n\n"

	timeStr := FormatDuration(remaining)
	if d.UseColor {
		output += clockStyle.Render(timeStr)
	} else {
		output += timeStr
	}
	output += "\n\n"

	progress := 1.0 - (float64(remaining) / float64(total))
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	progressBar := d.renderProgressBar(progress, 30)
	if d.UseColor {
		output += progressStyle.Render(progressBar)
	} else {
		output += progressBar
	}
	output += "\n\n"

	var status string
	if paused {
		status = "[PAUSADO] ESPAÇO continua, Q cancela"
	} else {
		status = "ESPAÇO pausa, Q cancela"
	}
	if d.UseColor {
		output += statusStyle.Render(status)
	} else {
		output += status
	}

	return output
}

// renderProgressBar creates a progress bar string.
func (d *Display) renderProgressBar(progress float64, width int) string {
	filled := int(progress * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	empty := width - filled

	bar := ""
	for i := 0; i < filled; i++ {
		bar += "█" // Full block
	}
	for i := 0; i < empty; i++ {
		bar += "░" // Light shade
	}

	percentage := int(progress * 100)
	return fmt.Sprintf("[%s] %d%%", bar, percentage)
}

// ClearScreen clears the terminal screen.
func (d *Display) ClearScreen() {
	fmt.Fprint(d.Writer, "\033[H\033[2J")
}

// MoveCursorHome moves cursor to home position.
func (d *Display) MoveCursorHome() {
	fmt.Fprint(d.Writer, "\033[H")
}

// RenderDone renders the completion message.
func (d *Display) RenderDone(label string, total time.Duration) string {
	var output string

	header := "Tempo esgotado!"
	if d.UseColor {
		output += doneStyle.Render(header)
	} else {
		output += header
	}
	output += "\n\n"

	detail := fmt.Sprintf("%s (%s)", label, FormatDuration(total))
	if d.UseColor {
		output += statusStyle.Render(detail)
	} else {
		output += detail
	}

	return output
}

// RenderCancelled renders the cancellation message.
func (d *Display) RenderCancelled(remaining time.Duration) string {
	msg := fmt.Sprintf("Lembrete cancelado. Faltavam %s.", FormatDuration(remaining))
	if d.UseColor {
		return statusStyle.Render(msg)
	}
	return msg
}
