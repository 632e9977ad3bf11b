// Package validate provides input validation helpers for the Companheiro CLI.
package validate

import (
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/ljmonteiro/companheiro/internal/errors"
)

const (
	// MaxNameLength is the maximum length for the user name.
	MaxNameLength = 64
	// MaxMedicationNameLength is the maximum length for a medication name.
	MaxMedicationNameLength = 128
	// MaxTitleLength is the maximum length for an appointment title.
	MaxTitleLength = 128
	// MaxLocationLength is the maximum length for an appointment location.
	MaxLocationLength = 256
	// MaxChatMessageLength is the maximum length for one chat message.
	MaxChatMessageLength = 4096
)

// timeRegex validates zero-padded 24-hour clock times.
var timeRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// TimeOfDay validates a zero-padded HH:MM clock time. The reminder check
// compares times as strings, so padding is mandatory: "8:00" never matches
// a tick at "08:00".
func TimeOfDay(value string) error {
	if value == "" {
		return errors.NewUserError("Time cannot be empty",
			"Provide a time like 08:00").WithCause(errors.ErrInvalidTime)
	}
	if !timeRegex.MatchString(value) {
		return errors.NewUserErrorWithField("time", value,
			"Invalid time format",
			"Use zero-padded 24-hour HH:MM, like 08:00 or 14:30").WithCause(errors.ErrInvalidTime)
	}
	return nil
}

// Date validates a YYYY-MM-DD calendar date.
func Date(value string) error {
	if value == "" {
		return errors.NewUserError("Date cannot be empty",
			"Provide a date like 2026-03-10").WithCause(errors.ErrInvalidDate)
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return errors.NewUserErrorWithField("date", value,
			"Invalid date format",
			"Use YYYY-MM-DD, like 2026-03-10").WithCause(errors.ErrInvalidDate)
	}
	return nil
}

// UserName validates the profile name.
func UserName(name string) error {
	if name == "" {
		return errors.NewUserError("Name cannot be empty",
			"Tell me what to call you").WithCause(errors.ErrNameRequired)
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return errors.NewUserErrorWithField("name", name,
			"Name too long",
			"Names must be 64 characters or fewer")
	}
	return nil
}

// MedicationName validates a medication name.
func MedicationName(name string) error {
	if name == "" {
		return errors.NewUserError("Medication name cannot be empty", "Provide the medication name")
	}
	if utf8.RuneCountInString(name) > MaxMedicationNameLength {
		return errors.NewUserErrorWithField("medication", name,
			"Medication name too long",
			"Medication names must be 128 characters or fewer")
	}
	return nil
}

// AppointmentTitle validates an appointment title.
func AppointmentTitle(title string) error {
	if title == "" {
		return errors.NewUserError("Appointment title cannot be empty", "Provide the appointment title")
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return errors.NewUserErrorWithField("title", title,
			"Appointment title too long",
			"Titles must be 128 characters or fewer")
	}
	return nil
}

// Location validates an optional appointment location.
func Location(location string) error {
	if utf8.RuneCountInString(location) > MaxLocationLength {
		return errors.NewUserError(
			"Location too long",
			"Locations must be 256 characters or fewer")
	}
	return nil
}

// ChatMessage validates one chat input line.
func ChatMessage(text string) error {
	if utf8.RuneCountInString(text) > MaxChatMessageLength {
		return errors.NewUserError(
			"Message too long",
			"Messages must be 4096 characters or fewer")
	}
	return nil
}
