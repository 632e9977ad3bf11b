package output

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ljmonteiro/companheiro/internal/model"
)

func newBufferFormatter() (*CLIFormatter, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	f := NewFormatter()
	f.Writer = buf
	f.ColorMode = ColorNever
	return NewCLIFormatter(f), buf
}

func TestIsColorEnabled(t *testing.T) {
	f := NewFormatter()
	f.Writer = &bytes.Buffer{}

	f.ColorMode = ColorAlways
	assert.True(t, f.IsColorEnabled())

	f.ColorMode = ColorNever
	assert.False(t, f.IsColorEnabled())

	// Auto with a non-file writer is never colored.
	f.ColorMode = ColorAuto
	assert.False(t, f.IsColorEnabled())
}

func TestPrintMedications(t *testing.T) {
	c, buf := newBufferFormatter()
	meds := []*model.Medication{
		{ID: "a", Name: "Losartana", Time: "08:00", Taken: true},
		{ID: "b", Name: "Vitamina D", Time: "12:00"},
	}

	c.PrintMedications(meds)
	out := buf.String()
	assert.Contains(t, out, "1/2 tomados")
	assert.Contains(t, out, "[x]  08:00  Losartana")
	assert.Contains(t, out, "[ ]  12:00  Vitamina D")
}

func TestPrintMedicationsEmpty(t *testing.T) {
	c, buf := newBufferFormatter()
	c.PrintMedications(nil)
	assert.Contains(t, buf.String(), "Nenhum remédio cadastrado.")
}

func TestPrintAppointmentsSorted(t *testing.T) {
	c, buf := newBufferFormatter()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	appts := []*model.Appointment{
		{ID: "b", Title: "Dentista", Date: "2026-03-20", Time: "10:00"},
		{ID: "a", Title: "Cardiologista", Date: "2026-03-10", Time: "15:00", Location: "Clínica Central"},
	}

	c.PrintAppointments(appts, now)
	out := buf.String()

	cardio := bytes.Index([]byte(out), []byte("Cardiologista"))
	dentista := bytes.Index([]byte(out), []byte("Dentista"))
	require.GreaterOrEqual(t, cardio, 0)
	require.GreaterOrEqual(t, dentista, 0)
	assert.Less(t, cardio, dentista, "earlier appointment prints first")
	assert.Contains(t, out, "Hoje às 15:00")
	assert.Contains(t, out, "Clínica Central")
	assert.Contains(t, out, "em 3 horas")

	// Input order untouched.
	assert.Equal(t, "b", appts[0].ID)
}

func TestPrintAppointmentsEmpty(t *testing.T) {
	c, buf := newBufferFormatter()
	c.PrintAppointments(nil, time.Now())
	assert.Contains(t, buf.String(), "Nenhuma consulta agendada.")
}

func TestPrintProfile(t *testing.T) {
	c, buf := newBufferFormatter()
	c.PrintProfile(model.Profile{Name: "Maria", DarkMode: true})
	out := buf.String()
	assert.Contains(t, out, "Nome: Maria")
	assert.Contains(t, out, "Modo escuro: ativado")
	assert.Contains(t, out, "Voz: desativado")

	buf.Reset()
	c.PrintProfile(model.Profile{})
	assert.Contains(t, buf.String(), "Nome: (não definido)")
}

func TestPrintActivities(t *testing.T) {
	c, buf := newBufferFormatter()
	c.PrintActivities()
	out := buf.String()
	for _, act := range model.Activities() {
		assert.Contains(t, out, act.Title)
	}
}

func TestPrintAssistant(t *testing.T) {
	c, buf := newBufferFormatter()
	c.PrintAssistant("Oi, vó!")
	assert.Equal(t, "IAn: Oi, vó!\n", buf.String())
}

func TestMedicationsResponse(t *testing.T) {
	meds := []*model.Medication{
		{ID: "a", Name: "Losartana", Time: "08:00", Taken: true},
		{ID: "b", Name: "Vitamina D", Time: "12:00"},
	}

	resp := NewMedicationsResponse(meds)
	assert.Equal(t, 2, resp.TotalCount)
	assert.Equal(t, 1, resp.TakenCount)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"taken_count":1`)
}

func TestAppointmentsResponseSortedAndFlagged(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	appts := []*model.Appointment{
		{ID: "b", Title: "Dentista", Date: "2026-03-20", Time: "10:00"},
		{ID: "a", Title: "Cardiologista", Date: "2026-03-10", Time: "15:00"},
		{ID: "c", Title: "Exame", Date: "2026-03-01", Time: "09:00"},
	}

	resp := NewAppointmentsResponse(appts, now)
	require.Len(t, resp.Appointments, 3)
	assert.Equal(t, "c", resp.Appointments[0].ID)
	assert.True(t, resp.Appointments[0].IsPast)
	assert.Equal(t, "a", resp.Appointments[1].ID)
	assert.True(t, resp.Appointments[1].IsToday)
	assert.Equal(t, "b", resp.Appointments[2].ID)
	assert.False(t, resp.Appointments[2].IsToday)
}

func TestFormatterJSONOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	f := NewFormatter()
	f.Writer = buf

	require.NoError(t, f.JSON(&ChatResponse{Status: "ok", Reply: "Oi!"}))

	var parsed ChatResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))
	assert.Equal(t, "Oi!", parsed.Reply)
}
