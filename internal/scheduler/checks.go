package scheduler

import (
	"context"
	"time"

	"github.com/ljmonteiro/companheiro/internal/logging"
	"github.com/ljmonteiro/companheiro/internal/model"
	"github.com/ljmonteiro/companheiro/internal/notify"
	"github.com/ljmonteiro/companheiro/internal/session"
)

// CheckRecorder observes reminder passes for operational counters. All
// methods must be safe for concurrent use.
type CheckRecorder interface {
	RecordCheck(at time.Time)
	RecordAlert(delivered bool)
}

// ReminderChecker scans the session collections against the wall clock and
// raises alerts. It never returns an error: every failure inside a tick is
// logged and swallowed so the next tick always runs.
type ReminderChecker struct {
	session    *session.Session
	dispatcher *notify.Dispatcher
	recorder   CheckRecorder
	now        func() time.Time
}

// NewReminderChecker creates a checker over the shared session.
func NewReminderChecker(sess *session.Session, dispatcher *notify.Dispatcher) *ReminderChecker {
	return &ReminderChecker{
		session:    sess,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

// SetNow overrides the clock. Tests only.
func (c *ReminderChecker) SetNow(now func() time.Time) {
	c.now = now
}

// SetRecorder attaches an observer for operational counters.
func (c *ReminderChecker) SetRecorder(r CheckRecorder) {
	c.recorder = r
}

func (c *ReminderChecker) deliver(alert *model.Alert, voiceEnabled bool) {
	result := c.dispatcher.Deliver(alert, voiceEnabled)
	if c.recorder != nil {
		c.recorder.RecordAlert(result.Notified)
	}
}

// Check runs one reminder pass.
//
// Medication checks are level-triggered: a medication fires on every tick
// whose wall-clock minute equals its time while taken is still false. There
// is deliberately no per-medication dedup flag.
//
// The one-hour appointment pre-alert is one-shot: it latches the notified
// flag and persists both collections immediately. The ten-minute pre-alert
// carries no such latch and can fire on each tick inside its two-minute
// window.
func (c *ReminderChecker) Check() {
	now := c.now()
	ctx := context.Background()
	profile := c.session.Profile()
	if c.recorder != nil {
		c.recorder.RecordCheck(now)
	}

	for _, med := range c.session.Medications() {
		if med.IsDueAt(now) {
			logging.Info("medication due",
				logging.KeyMedicationID, med.ID,
				"name", med.Name)
			c.deliver(model.NewMedicationAlert(med), profile.VoiceEnabled)
		}
	}

	for _, appt := range c.session.Appointments() {
		minutes := appt.MinutesUntil(now)

		if minutes > 59 && minutes < 61 && !appt.Notified {
			logging.Info("appointment one hour away",
				logging.KeyAppointmentID, appt.ID,
				"title", appt.Title)
			c.deliver(model.NewAppointment1hAlert(appt), profile.VoiceEnabled)
			c.session.MarkAppointmentNotified(ctx, appt.ID)
		}

		if minutes > 9 && minutes < 11 {
			logging.Info("appointment ten minutes away",
				logging.KeyAppointmentID, appt.ID,
				"title", appt.Title)
			c.deliver(model.NewAppointment10mAlert(appt), profile.VoiceEnabled)
		}
	}
}
