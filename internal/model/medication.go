package model

import (
	"time"

	"github.com/google/uuid"
)

// Medication is a daily-recurring medication entry. Time is a zero-padded
// HH:MM clock time with no date component; the reminder check compares it
// against the current wall-clock minute as a string.
type Medication struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Time  string `json:"time"`
	Taken bool   `json:"taken"`
}

// NewMedication creates a medication with a fresh id and Taken unset.
func NewMedication(name, timeOfDay string) *Medication {
	return &Medication{
		ID:   uuid.New().String(),
		Name: name,
		Time: timeOfDay,
	}
}

// IsDueAt reports whether the medication is due at the given wall-clock
// instant: the current minute reads exactly Time and it was not taken yet.
// Level-triggered; there is no per-day latch.
func (m *Medication) IsDueAt(now time.Time) bool {
	return !m.Taken && m.Time == now.Format("15:04")
}

// CountTaken returns how many medications in the list are marked taken.
func CountTaken(meds []*Medication) int {
	n := 0
	for _, m := range meds {
		if m.Taken {
			n++
		}
	}
	return n
}
