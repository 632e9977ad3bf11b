package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/ljmonteiro/companheiro/internal/model"
	"github.com/ljmonteiro/companheiro/internal/parser"
)

// MedicationsComponent displays the medication checklist.
type MedicationsComponent struct {
	Medications []*model.Medication
	Cursor      int
	Focused     bool
	Theme       Theme
	Width       int
}

// View renders the medication checklist.
func (mc *MedicationsComponent) View() string {
	var content strings.Builder

	title := fmt.Sprintf("Remédios (%d/%d tomados)",
		model.CountTaken(mc.Medications), len(mc.Medications))
	content.WriteString(mc.Theme.Title.Render(title))
	content.WriteString("\n\n")

	if len(mc.Medications) == 0 {
		content.WriteString(mc.Theme.Muted.Render("Nenhum remédio cadastrado"))
	} else {
		for i, med := range mc.Medications {
			if i > 0 {
				content.WriteString("\n")
			}
			content.WriteString(mc.renderMedication(i, med))
		}
	}

	box := mc.Theme.Box.Width(mc.Width - 4)
	return box.Render(content.String())
}

func (mc *MedicationsComponent) renderMedication(i int, med *model.Medication) string {
	cursor := "  "
	if mc.Focused && i == mc.Cursor {
		cursor = mc.Theme.Cursor.Render("> ")
	}

	line := fmt.Sprintf("%s %s  %s", checkbox(med.Taken), med.Time, med.Name)
	if med.Taken {
		line = mc.Theme.Taken.Render(line)
	}
	return cursor + line
}

// AppointmentsComponent displays upcoming appointments.
type AppointmentsComponent struct {
	Appointments []*model.Appointment
	Now          time.Time
	Theme        Theme
	Width        int
}

// View renders the appointment list.
func (ac *AppointmentsComponent) View() string {
	var content strings.Builder

	content.WriteString(ac.Theme.Title.Render("Consultas"))
	content.WriteString("\n\n")

	if len(ac.Appointments) == 0 {
		content.WriteString(ac.Theme.Muted.Render("Nenhuma consulta agendada"))
	} else {
		sorted := make([]*model.Appointment, len(ac.Appointments))
		copy(sorted, ac.Appointments)
		model.SortByTime(sorted)

		for i, appt := range sorted {
			if i > 0 {
				content.WriteString("\n")
			}
			content.WriteString(ac.renderAppointment(appt))
		}
	}

	box := ac.Theme.Box.Width(ac.Width - 4)
	return box.Render(content.String())
}

func (ac *AppointmentsComponent) renderAppointment(appt *model.Appointment) string {
	line := fmt.Sprintf("%s — %s", parser.FormatWhen(appt.At(), ac.Now), appt.Title)
	if appt.Location != "" {
		line += " (" + appt.Location + ")"
	}

	switch {
	case appt.IsPast(ac.Now):
		return ac.Theme.Muted.Render(line)
	case appt.IsToday(ac.Now):
		return ac.Theme.Today.Render(line) + "\n" +
			ac.Theme.Subtitle.Render("    "+parser.FormatTimeUntil(appt.At(), ac.Now))
	default:
		return line
	}
}

// ActivitiesComponent displays the activity suggestions.
type ActivitiesComponent struct {
	Theme Theme
	Width int
}

// View renders the suggestion list.
func (sc *ActivitiesComponent) View() string {
	var content strings.Builder

	content.WriteString(sc.Theme.Title.Render("Que tal hoje?"))
	content.WriteString("\n\n")

	for i, act := range model.Activities() {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(act.Title)
		content.WriteString("  ")
		content.WriteString(sc.Theme.Subtitle.Render(act.Desc))
	}

	box := sc.Theme.Box.Width(sc.Width - 4)
	return box.Render(content.String())
}

// HelpBar renders the key hints at the bottom.
func HelpBar(theme Theme) string {
	keys := []struct {
		key  string
		desc string
	}{
		{"↑/↓", "navegar"},
		{"espaço", "tomar/desfazer"},
		{"m", "modo escuro"},
		{"r", "atualizar"},
		{"q", "sair"},
	}

	var parts []string
	for _, k := range keys {
		parts = append(parts, theme.HelpKey.Render(k.key)+" "+theme.HelpDesc.Render(k.desc))
	}

	return theme.Help.Render(strings.Join(parts, "  •  "))
}

func checkbox(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}
