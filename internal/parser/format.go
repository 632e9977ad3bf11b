package parser

import (
	"fmt"
	"time"
)

// FormatWhen formats an appointment moment for display, relative to now.
func FormatWhen(t, now time.Time) string {
	var datePart string
	switch {
	case isSameDay(t, now):
		datePart = "Hoje"
	case isSameDay(t, now.AddDate(0, 0, 1)):
		datePart = "Amanhã"
	default:
		datePart = t.Format("02/01/2006")
	}
	return fmt.Sprintf("%s às %s", datePart, t.Format("15:04"))
}

// FormatTimeUntil formats the remaining time before an appointment.
func FormatTimeUntil(t, now time.Time) string {
	diff := t.Sub(now)
	if diff < 0 {
		return "já passou"
	}

	if diff < time.Minute {
		return "agora"
	}
	if diff < time.Hour {
		mins := int(diff.Minutes())
		if mins == 1 {
			return "em 1 minuto"
		}
		return fmt.Sprintf("em %d minutos", mins)
	}
	if diff < 24*time.Hour {
		hours := int(diff.Hours())
		mins := int(diff.Minutes()) % 60
		if hours == 1 {
			if mins > 0 {
				return fmt.Sprintf("em 1 hora e %d minutos", mins)
			}
			return "em 1 hora"
		}
		if mins > 0 {
			return fmt.Sprintf("em %d horas e %d minutos", hours, mins)
		}
		return fmt.Sprintf("em %d horas", hours)
	}

	days := int(diff.Hours() / 24)
	if days == 1 {
		return "em 1 dia"
	}
	return fmt.Sprintf("em %d dias", days)
}
