package model

import (
	"fmt"
	"time"
)

// AlertType defines the kind of reminder alert.
type AlertType string

// Alert types.
const (
	AlertMedicationDue  AlertType = "medication_due"
	AlertAppointment1h  AlertType = "appointment_1h"
	AlertAppointment10m AlertType = "appointment_10m"
	AlertCountdown      AlertType = "countdown"
	AlertTest           AlertType = "test"
)

// Alert is a reminder event raised by the engine. Title and Body carry the
// user-facing pt-BR strings; Spoken is the line read aloud when voice output
// is enabled.
type Alert struct {
	Type      AlertType `json:"type"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Spoken    string    `json:"spoken,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMedicationAlert builds the "time for your medication" alert.
func NewMedicationAlert(med *Medication) *Alert {
	return &Alert{
		Type:      AlertMedicationDue,
		Title:     fmt.Sprintf("Hora do remédio: %s", med.Name),
		Body:      "É hora de tomar seu remédio!",
		Spoken:    fmt.Sprintf("Está na hora de tomar o remédio %s.", med.Name),
		Timestamp: time.Now(),
	}
}

// NewAppointment1hAlert builds the one-hour pre-alert.
func NewAppointment1hAlert(appt *Appointment) *Alert {
	body := fmt.Sprintf("Às %s", appt.Time)
	if appt.Location != "" {
		body += " em " + appt.Location
	}
	return &Alert{
		Type:      AlertAppointment1h,
		Title:     fmt.Sprintf("Consulta em 1 hora: %s", appt.Title),
		Body:      body,
		Spoken:    fmt.Sprintf("Você tem uma consulta em uma hora: %s.", appt.Title),
		Timestamp: time.Now(),
	}
}

// NewAppointment10mAlert builds the ten-minute pre-alert.
func NewAppointment10mAlert(appt *Appointment) *Alert {
	return &Alert{
		Type:      AlertAppointment10m,
		Title:     fmt.Sprintf("Consulta em 10 minutos: %s", appt.Title),
		Body:      "Não esqueça de se preparar!",
		Spoken:    fmt.Sprintf("Sua consulta %s é daqui a dez minutos.", appt.Title),
		Timestamp: time.Now(),
	}
}

// NewCountdownAlert builds the alert fired when a countdown reminder ends.
func NewCountdownAlert(label string) *Alert {
	return &Alert{
		Type:      AlertCountdown,
		Title:     "Companheiro",
		Body:      label,
		Spoken:    label,
		Timestamp: time.Now(),
	}
}
