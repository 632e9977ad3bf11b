package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ljmonteiro/companheiro/internal/errors"
)

func TestTimeOfDay(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"08:00", true},
		{"00:00", true},
		{"23:59", true},
		{"14:30", true},
		{"8:00", false},
		{"24:00", false},
		{"12:60", false},
		{"12:5", false},
		{"noon", false},
		{"", false},
		{"08:00 ", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			err := TimeOfDay(tt.value)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.True(t, errors.IsUserError(err))
				assert.True(t, errors.Is(err, errors.ErrInvalidTime))
			}
		})
	}
}

func TestDate(t *testing.T) {
	assert.NoError(t, Date("2026-03-10"))
	assert.NoError(t, Date("2026-12-31"))
	assert.Error(t, Date("2026-02-30"))
	assert.Error(t, Date("10/03/2026"))
	assert.Error(t, Date("2026-3-10"))
	assert.Error(t, Date(""))
	assert.True(t, errors.Is(Date("10/03/2026"), errors.ErrInvalidDate))
}

func TestUserName(t *testing.T) {
	assert.NoError(t, UserName("Maria"))
	assert.NoError(t, UserName("José da Silva"))
	assert.Error(t, UserName(""))
	assert.True(t, errors.Is(UserName(""), errors.ErrNameRequired))
	assert.Error(t, UserName(strings.Repeat("a", MaxNameLength+1)))
}

func TestMedicationName(t *testing.T) {
	assert.NoError(t, MedicationName("Losartana 50mg"))
	assert.Error(t, MedicationName(""))
	assert.Error(t, MedicationName(strings.Repeat("x", MaxMedicationNameLength+1)))
}

func TestAppointmentTitle(t *testing.T) {
	assert.NoError(t, AppointmentTitle("Cardiologista"))
	assert.Error(t, AppointmentTitle(""))
	assert.Error(t, AppointmentTitle(strings.Repeat("x", MaxTitleLength+1)))
}

func TestLocation(t *testing.T) {
	assert.NoError(t, Location(""))
	assert.NoError(t, Location("Clínica São Lucas, sala 3"))
	assert.Error(t, Location(strings.Repeat("x", MaxLocationLength+1)))
}

func TestChatMessage(t *testing.T) {
	assert.NoError(t, ChatMessage("Oi, tudo bem?"))
	assert.NoError(t, ChatMessage(""))
	assert.Error(t, ChatMessage(strings.Repeat("x", MaxChatMessageLength+1)))
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "Maria", SanitizeName("  Maria  "))
	assert.Equal(t, "José", SanitizeName("Jo\x00sé\n"))
	assert.Equal(t, "Café ☕", SanitizeName("Café ☕"))
}

func TestCollapseSpaces(t *testing.T) {
	assert.Equal(t, "oi tudo bem", CollapseSpaces("oi\n tudo \t bem"))
	assert.Equal(t, "", CollapseSpaces("   "))
}
