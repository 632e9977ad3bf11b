package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMedication(t *testing.T) {
	med := NewMedication("Losartana", "08:00")
	assert.NotEmpty(t, med.ID)
	assert.Equal(t, "Losartana", med.Name)
	assert.Equal(t, "08:00", med.Time)
	assert.False(t, med.Taken)

	other := NewMedication("Losartana", "08:00")
	assert.NotEqual(t, med.ID, other.ID)
}

func TestMedicationIsDueAt(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 5, 30, 0, time.Local)

	tests := []struct {
		name string
		med  Medication
		due  bool
	}{
		{"due at exact minute", Medication{Time: "08:05"}, true},
		{"not due when taken", Medication{Time: "08:05", Taken: true}, false},
		{"not due other minute", Medication{Time: "08:06"}, false},
		{"zero padding matters", Medication{Time: "8:05"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.due, tt.med.IsDueAt(now))
		})
	}
}

func TestCountTaken(t *testing.T) {
	meds := []*Medication{
		{Name: "a", Taken: true},
		{Name: "b"},
		{Name: "c", Taken: true},
	}
	assert.Equal(t, 2, CountTaken(meds))
	assert.Equal(t, 0, CountTaken(nil))
}

func TestAppointmentAt(t *testing.T) {
	appt := Appointment{Date: "2026-03-10", Time: "14:30"}
	at := appt.At()
	require.False(t, at.IsZero())
	assert.Equal(t, time.Date(2026, 3, 10, 14, 30, 0, 0, time.Local), at)

	bad := Appointment{Date: "not-a-date", Time: "14:30"}
	assert.True(t, bad.At().IsZero())
}

func TestAppointmentMinutesUntil(t *testing.T) {
	now := time.Date(2026, 3, 10, 13, 30, 0, 0, time.Local)
	appt := Appointment{Date: "2026-03-10", Time: "14:30"}
	assert.InDelta(t, 60.0, appt.MinutesUntil(now), 0.001)

	past := Appointment{Date: "2026-03-10", Time: "13:00"}
	assert.Less(t, past.MinutesUntil(now), 0.0)
}

func TestAppointmentTodayPast(t *testing.T) {
	now := time.Date(2026, 3, 10, 13, 30, 0, 0, time.Local)

	today := Appointment{Date: "2026-03-10", Time: "18:00"}
	assert.True(t, today.IsToday(now))
	assert.False(t, today.IsPast(now))

	gone := Appointment{Date: "2026-03-09", Time: "18:00"}
	assert.False(t, gone.IsToday(now))
	assert.True(t, gone.IsPast(now))
}

func TestSortByTime(t *testing.T) {
	appts := []*Appointment{
		{ID: "later", Date: "2026-03-11", Time: "09:00"},
		{ID: "soon", Date: "2026-03-10", Time: "14:00"},
		{ID: "middle", Date: "2026-03-10", Time: "18:00"},
	}
	SortByTime(appts)
	assert.Equal(t, "soon", appts[0].ID)
	assert.Equal(t, "middle", appts[1].ID)
	assert.Equal(t, "later", appts[2].ID)
}

func TestProfileFirstRun(t *testing.T) {
	p := Profile{}
	assert.True(t, p.FirstRun())
	p.Name = "Maria"
	assert.False(t, p.FirstRun())

	// Callable directly on returned values, the way Session.Profile() is used.
	assert.True(t, Profile{}.FirstRun())
}

func TestMedicationAlertStrings(t *testing.T) {
	alert := NewMedicationAlert(&Medication{Name: "Vitamina D", Time: "08:00"})
	assert.Equal(t, AlertMedicationDue, alert.Type)
	assert.Equal(t, "Hora do remédio: Vitamina D", alert.Title)
	assert.Equal(t, "É hora de tomar seu remédio!", alert.Body)
}

func TestAppointmentAlertStrings(t *testing.T) {
	appt := &Appointment{Title: "Cardiologista", Time: "15:00", Location: "Clínica Vida"}

	oneHour := NewAppointment1hAlert(appt)
	assert.Equal(t, "Consulta em 1 hora: Cardiologista", oneHour.Title)
	assert.Equal(t, "Às 15:00 em Clínica Vida", oneHour.Body)

	appt.Location = ""
	oneHour = NewAppointment1hAlert(appt)
	assert.Equal(t, "Às 15:00", oneHour.Body)

	tenMin := NewAppointment10mAlert(appt)
	assert.Equal(t, "Consulta em 10 minutos: Cardiologista", tenMin.Title)
	assert.Equal(t, "Não esqueça de se preparar!", tenMin.Body)
}
