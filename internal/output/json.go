package output

import (
	"time"

	"github.com/ljmonteiro/companheiro/internal/model"
)

// JSONFormatter provides JSON-specific formatting.
type JSONFormatter struct {
	*Formatter
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(f *Formatter) *JSONFormatter {
	return &JSONFormatter{Formatter: f}
}

// MedicationOutput represents a medication in JSON output.
type MedicationOutput struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Time  string `json:"time"`
	Taken bool   `json:"taken"`
}

// NewMedicationOutput creates a MedicationOutput from a Medication.
func NewMedicationOutput(m *model.Medication) *MedicationOutput {
	return &MedicationOutput{
		ID:    m.ID,
		Name:  m.Name,
		Time:  m.Time,
		Taken: m.Taken,
	}
}

// MedicationsResponse represents the medication list output in JSON.
type MedicationsResponse struct {
	Medications []*MedicationOutput `json:"medications"`
	TotalCount  int                 `json:"total_count"`
	TakenCount  int                 `json:"taken_count"`
}

// NewMedicationsResponse creates a MedicationsResponse from medications.
func NewMedicationsResponse(meds []*model.Medication) *MedicationsResponse {
	outputs := make([]*MedicationOutput, len(meds))
	for i, m := range meds {
		outputs[i] = NewMedicationOutput(m)
	}
	return &MedicationsResponse{
		Medications: outputs,
		TotalCount:  len(meds),
		TakenCount:  model.CountTaken(meds),
	}
}

// AppointmentOutput represents an appointment in JSON output.
type AppointmentOutput struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Location string `json:"location,omitempty"`
	Notified bool   `json:"notified,omitempty"`
	IsToday  bool   `json:"is_today"`
	IsPast   bool   `json:"is_past"`
}

// NewAppointmentOutput creates an AppointmentOutput from an Appointment.
func NewAppointmentOutput(a *model.Appointment, now time.Time) *AppointmentOutput {
	return &AppointmentOutput{
		ID:       a.ID,
		Title:    a.Title,
		Date:     a.Date,
		Time:     a.Time,
		Location: a.Location,
		Notified: a.Notified,
		IsToday:  a.IsToday(now),
		IsPast:   a.IsPast(now),
	}
}

// AppointmentsResponse represents the appointment list output in JSON.
type AppointmentsResponse struct {
	Appointments []*AppointmentOutput `json:"appointments"`
	TotalCount   int                  `json:"total_count"`
}

// NewAppointmentsResponse creates an AppointmentsResponse from appointments.
func NewAppointmentsResponse(appts []*model.Appointment, now time.Time) *AppointmentsResponse {
	sorted := make([]*model.Appointment, len(appts))
	copy(sorted, appts)
	model.SortByTime(sorted)

	outputs := make([]*AppointmentOutput, len(sorted))
	for i, a := range sorted {
		outputs[i] = NewAppointmentOutput(a, now)
	}
	return &AppointmentsResponse{
		Appointments: outputs,
		TotalCount:   len(outputs),
	}
}

// ProfileResponse represents the profile output in JSON.
type ProfileResponse struct {
	Name         string `json:"name"`
	DarkMode     bool   `json:"dark_mode"`
	VoiceEnabled bool   `json:"voice_enabled"`
}

// NewProfileResponse creates a ProfileResponse from a Profile.
func NewProfileResponse(p model.Profile) *ProfileResponse {
	return &ProfileResponse{
		Name:         p.Name,
		DarkMode:     p.DarkMode,
		VoiceEnabled: p.VoiceEnabled,
	}
}

// ChatResponse represents one chat exchange in JSON.
type ChatResponse struct {
	Status string `json:"status"`
	Reply  string `json:"reply"`
}

// ErrorResponse represents an error in JSON.
type ErrorResponse struct {
	Status  string `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// StatusResponse represents the daemon status output in JSON.
type StatusResponse struct {
	Status  string `json:"status"`
	PID     int    `json:"pid,omitempty"`
	NextRun string `json:"next_run,omitempty"`
}
