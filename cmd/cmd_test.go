package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRemindDuration(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"20m", 20 * time.Minute, false},
		{"1h30m", 90 * time.Minute, false},
		{"45s", 45 * time.Second, false},
		{"20", 20 * time.Minute, false},
		{"90", 90 * time.Minute, false},
		{"0", 0, true},
		{"-5", 0, true},
		{"-5m", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := parseRemindDuration(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d)
		})
	}
}

func TestParseOnOff(t *testing.T) {
	for _, input := range []string{"on", "ON", "true", "1", "sim"} {
		on, err := parseOnOff(input)
		require.NoError(t, err, input)
		assert.True(t, on, input)
	}

	for _, input := range []string{"off", "false", "0", "não", "nao"} {
		on, err := parseOnOff(input)
		require.NoError(t, err, input)
		assert.False(t, on, input)
	}

	_, err := parseOnOff("maybe")
	require.Error(t, err)
}
