package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)

func TestParseWhenISO(t *testing.T) {
	result := ParseWhen("2026-03-15 14:00", testNow)
	require.NoError(t, result.Error)
	assert.Equal(t, "2026-03-15", result.Date)
	assert.Equal(t, "14:00", result.Time)
}

func TestParseWhenNaturalLanguage(t *testing.T) {
	result := ParseWhen("tomorrow 2pm", testNow)
	require.NoError(t, result.Error)
	assert.Equal(t, "2026-03-11", result.Date)
	assert.Equal(t, "14:00", result.Time)
}

func TestParseWhenPastTodayRollsForward(t *testing.T) {
	// 09:00 already passed at noon, so it means tomorrow morning.
	result := ParseWhen("9am", testNow)
	require.NoError(t, result.Error)
	assert.Equal(t, "2026-03-11", result.Date)
	assert.Equal(t, "09:00", result.Time)
}

func TestParseWhenPastDateRejected(t *testing.T) {
	result := ParseWhen("2026-01-01 10:00", testNow)
	assert.Error(t, result.Error)
}

func TestParseWhenEmpty(t *testing.T) {
	assert.Error(t, ParseWhen("", testNow).Error)
	assert.Error(t, ParseWhen("   ", testNow).Error)
}

func TestParseWhenGarbage(t *testing.T) {
	assert.Error(t, ParseWhen("not a date at all xyzzy", testNow).Error)
}

func TestParseWhenArgs(t *testing.T) {
	result := ParseWhenArgs([]string{"2026-03-15", "14:00"}, testNow)
	require.NoError(t, result.Error)
	assert.Equal(t, "2026-03-15", result.Date)

	assert.Error(t, ParseWhenArgs(nil, testNow).Error)
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"08:00", "08:00"},
		{"8:30", "08:30"},
		{"8", "08:00"},
		{"8h", "08:00"},
		{"14h30", "14:30"},
		{"23:59", "23:59"},
		{"0", "00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseClock(tt.input, testNow)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseClockInvalid(t *testing.T) {
	for _, input := range []string{"", "24", "12:60", "xyzzy not a time"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseClock(input, testNow)
			assert.Error(t, err)
		})
	}
}

func TestFormatWhen(t *testing.T) {
	today := time.Date(2026, 3, 10, 15, 30, 0, 0, time.Local)
	tomorrow := time.Date(2026, 3, 11, 9, 0, 0, 0, time.Local)
	later := time.Date(2026, 4, 2, 10, 0, 0, 0, time.Local)

	assert.Equal(t, "Hoje às 15:30", FormatWhen(today, testNow))
	assert.Equal(t, "Amanhã às 09:00", FormatWhen(tomorrow, testNow))
	assert.Equal(t, "02/04/2026 às 10:00", FormatWhen(later, testNow))
}

func TestFormatTimeUntil(t *testing.T) {
	assert.Equal(t, "já passou", FormatTimeUntil(testNow.Add(-time.Hour), testNow))
	assert.Equal(t, "agora", FormatTimeUntil(testNow.Add(30*time.Second), testNow))
	assert.Equal(t, "em 45 minutos", FormatTimeUntil(testNow.Add(45*time.Minute), testNow))
	assert.Equal(t, "em 1 hora", FormatTimeUntil(testNow.Add(time.Hour), testNow))
	assert.Equal(t, "em 2 horas e 15 minutos", FormatTimeUntil(testNow.Add(2*time.Hour+15*time.Minute), testNow))
	assert.Equal(t, "em 3 dias", FormatTimeUntil(testNow.Add(72*time.Hour), testNow))
}
