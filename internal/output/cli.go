package output

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/ljmonteiro/companheiro/internal/model"
	"github.com/ljmonteiro/companheiro/internal/parser"
)

// Styles for CLI output.
var (
	// Colors
	colorPrimary = lipgloss.Color("#7C3AED") // Purple
	colorMuted   = lipgloss.Color("#6B7280") // Gray
	colorWarning = lipgloss.Color("#F59E0B") // Yellow
	colorError   = lipgloss.Color("#EF4444") // Red
	colorSuccess = lipgloss.Color("#10B981") // Green
	colorToday   = lipgloss.Color("#3B82F6") // Blue

	// Styles
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning)

	styleError = lipgloss.NewStyle().
			Foreground(colorError)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleTaken = lipgloss.NewStyle().
			Strikethrough(true).
			Foreground(colorMuted)

	styleToday = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorToday)

	styleAssistant = lipgloss.NewStyle().
			Foreground(colorPrimary)
)

// CLIFormatter provides CLI-specific formatting.
type CLIFormatter struct {
	*Formatter
}

// NewCLIFormatter creates a new CLI formatter.
func NewCLIFormatter(f *Formatter) *CLIFormatter {
	return &CLIFormatter{Formatter: f}
}

// Title prints a title.
func (c *CLIFormatter) Title(text string) {
	if c.IsColorEnabled() {
		c.Println(styleTitle.Render(text))
	} else {
		c.Println(text)
	}
}

// Success prints a success message.
func (c *CLIFormatter) Success(text string) {
	if c.IsColorEnabled() {
		c.Println(styleSuccess.Render("✓ " + text))
	} else {
		c.Println("✓ " + text)
	}
}

// Warning prints a warning message.
func (c *CLIFormatter) Warning(text string) {
	if c.IsColorEnabled() {
		c.Println(styleWarning.Render("⚠ " + text))
	} else {
		c.Println("⚠ " + text)
	}
}

// Error prints an error message.
func (c *CLIFormatter) Error(text string) {
	if c.IsColorEnabled() {
		c.Println(styleError.Render("✗ " + text))
	} else {
		c.Println("✗ " + text)
	}
}

// Muted prints muted text.
func (c *CLIFormatter) Muted(text string) {
	if c.IsColorEnabled() {
		c.Println(styleMuted.Render(text))
	} else {
		c.Println(text)
	}
}

// PrintMedications prints the medication list with the taken counter.
func (c *CLIFormatter) PrintMedications(meds []*model.Medication) {
	if len(meds) == 0 {
		c.Muted("Nenhum remédio cadastrado.")
		c.Muted("Use 'companheiro med add <nome> <hora>' para cadastrar.")
		return
	}

	c.Title(fmt.Sprintf("Remédios (%d/%d tomados)", model.CountTaken(meds), len(meds)))
	for _, med := range meds {
		line := fmt.Sprintf("  %s  %s  %s", checkbox(med.Taken), med.Time, med.Name)
		if med.Taken && c.IsColorEnabled() {
			line = styleTaken.Render(line)
		}
		c.Println(line)
		c.Muted("      id: " + med.ID)
	}
}

// PrintAppointments prints the appointment list ordered by time. Today's
// entries are highlighted and past ones greyed out.
func (c *CLIFormatter) PrintAppointments(appts []*model.Appointment, now time.Time) {
	if len(appts) == 0 {
		c.Muted("Nenhuma consulta agendada.")
		c.Muted("Use 'companheiro appt add' para agendar.")
		return
	}

	sorted := make([]*model.Appointment, len(appts))
	copy(sorted, appts)
	model.SortByTime(sorted)

	c.Title(fmt.Sprintf("Consultas (%d)", len(sorted)))
	for _, appt := range sorted {
		when := parser.FormatWhen(appt.At(), now)
		line := fmt.Sprintf("  %s — %s", when, appt.Title)
		if appt.Location != "" {
			line += " (" + appt.Location + ")"
		}

		switch {
		case appt.IsPast(now):
			if c.IsColorEnabled() {
				line = styleMuted.Render(line)
			}
			c.Println(line)
		case appt.IsToday(now):
			if c.IsColorEnabled() {
				line = styleToday.Render(line)
			}
			c.Println(line)
			c.Muted("      " + parser.FormatTimeUntil(appt.At(), now))
		default:
			c.Println(line)
		}
		c.Muted("      id: " + appt.ID)
	}
}

// PrintProfile prints the stored profile.
func (c *CLIFormatter) PrintProfile(profile model.Profile) {
	c.Title("Perfil")
	c.Printf("  Nome: %s\n", orUnset(profile.Name))
	c.Printf("  Modo escuro: %s\n", onOff(profile.DarkMode))
	c.Printf("  Voz: %s\n", onOff(profile.VoiceEnabled))
}

// PrintActivities prints the activity suggestion list.
func (c *CLIFormatter) PrintActivities() {
	c.Title("Sugestões de atividade")
	for i, act := range model.Activities() {
		c.Printf("  %d. %s", i+1, act.Title)
		if c.IsColorEnabled() {
			c.Println(styleMuted.Render(" — " + act.Desc))
		} else {
			c.Println(" — " + act.Desc)
		}
	}
}

// PrintAssistant prints one assistant chat turn.
func (c *CLIFormatter) PrintAssistant(text string) {
	if c.IsColorEnabled() {
		c.Println(styleAssistant.Render("IAn: ") + text)
	} else {
		c.Println("IAn: " + text)
	}
}

func checkbox(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}

func orUnset(s string) string {
	if s == "" {
		return "(não definido)"
	}
	return s
}

func onOff(on bool) string {
	if on {
		return "ativado"
	}
	return "desativado"
}
