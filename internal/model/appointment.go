package model

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Appointment is a dated medical appointment. Date is YYYY-MM-DD and Time is
// HH:MM; both are interpreted in the local time zone when composed into a
// timestamp. Notified latches true once the one-hour pre-alert has fired.
type Appointment struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Location string `json:"location,omitempty"`
	Notified bool   `json:"notified,omitempty"`
}

// NewAppointment creates an appointment with a fresh id.
func NewAppointment(title, date, timeOfDay, location string) *Appointment {
	return &Appointment{
		ID:       uuid.New().String(),
		Title:    title,
		Date:     date,
		Time:     timeOfDay,
		Location: location,
	}
}

// At composes Date and Time into a local-time timestamp. A malformed pair
// yields the zero time.
func (a *Appointment) At() time.Time {
	t, err := time.ParseInLocation("2006-01-02T15:04", a.Date+"T"+a.Time, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

// MinutesUntil returns the fractional minutes from now until the appointment.
// Negative once the appointment has passed.
func (a *Appointment) MinutesUntil(now time.Time) float64 {
	return a.At().Sub(now).Minutes()
}

// IsToday reports whether the appointment falls on the same local calendar
// day as now.
func (a *Appointment) IsToday(now time.Time) bool {
	return a.Date == now.Format("2006-01-02")
}

// IsPast reports whether the appointment time has already passed.
func (a *Appointment) IsPast(now time.Time) bool {
	return a.At().Before(now)
}

// SortByTime orders appointments by their composed timestamp, soonest first.
// The sort is stable so equal timestamps keep insertion order.
func SortByTime(appts []*Appointment) {
	sort.SliceStable(appts, func(i, j int) bool {
		return appts[i].At().Before(appts[j].At())
	})
}
