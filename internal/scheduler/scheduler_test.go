package scheduler

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ljmonteiro/companheiro/internal/config"
	"github.com/ljmonteiro/companheiro/internal/model"
	"github.com/ljmonteiro/companheiro/internal/notify"
	"github.com/ljmonteiro/companheiro/internal/session"
	"github.com/ljmonteiro/companheiro/internal/storage"
)

// recordingNotifier collects delivered alerts.
type recordingNotifier struct {
	alerts []*model.Alert
}

func (n *recordingNotifier) Notify(a *model.Alert) error { n.alerts = append(n.alerts, a); return nil }
func (n *recordingNotifier) Chime() error                { return nil }
func (n *recordingNotifier) Available() bool             { return true }

// silentSpeaker satisfies voice.Speaker without side effects.
type silentSpeaker struct{ lines []string }

func (s *silentSpeaker) Speak(text string) error { s.lines = append(s.lines, text); return nil }
func (s *silentSpeaker) Stop()                   {}
func (s *silentSpeaker) Available() bool         { return true }

func newTestChecker(t *testing.T) (*ReminderChecker, *session.Session, *recordingNotifier, *silentSpeaker) {
	t.Helper()
	store, err := storage.OpenLocal(storage.LocalOptions{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	sess := session.New(storage.NewRecordsRepo(store), storage.NewProfileRepo(store))
	sess.Load(context.Background())

	notifier := &recordingNotifier{}
	speaker := &silentSpeaker{}
	checker := NewReminderChecker(sess, notify.NewDispatcher(notifier, speaker))
	return checker, sess, notifier, speaker
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestMedicationDueFires(t *testing.T) {
	checker, sess, notifier, _ := newTestChecker(t)
	ctx := context.Background()

	sess.AddMedication(ctx, "Vitamina D", "08:00")
	checker.SetNow(fixedClock(time.Date(2026, 3, 10, 8, 0, 10, 0, time.Local)))

	checker.Check()

	require.Len(t, notifier.alerts, 1)
	assert.Equal(t, model.AlertMedicationDue, notifier.alerts[0].Type)
	assert.Equal(t, "Hora do remédio: Vitamina D", notifier.alerts[0].Title)
}

func TestMedicationTakenDoesNotFire(t *testing.T) {
	checker, sess, notifier, _ := newTestChecker(t)
	ctx := context.Background()

	med := sess.AddMedication(ctx, "Vitamina D", "08:00")
	sess.ToggleMedication(ctx, med.ID)
	checker.SetNow(fixedClock(time.Date(2026, 3, 10, 8, 0, 10, 0, time.Local)))

	checker.Check()
	assert.Empty(t, notifier.alerts)
}

func TestMedicationOtherMinuteDoesNotFire(t *testing.T) {
	checker, sess, notifier, _ := newTestChecker(t)
	ctx := context.Background()

	sess.AddMedication(ctx, "Vitamina D", "08:00")
	checker.SetNow(fixedClock(time.Date(2026, 3, 10, 8, 1, 0, 0, time.Local)))

	checker.Check()
	assert.Empty(t, notifier.alerts)
}

func TestMedicationLevelTriggered(t *testing.T) {
	checker, sess, notifier, _ := newTestChecker(t)
	ctx := context.Background()

	sess.AddMedication(ctx, "Vitamina D", "08:00")

	// Two ticks inside the same wall-clock minute both fire; there is no
	// dedup flag for medications.
	checker.SetNow(fixedClock(time.Date(2026, 3, 10, 8, 0, 5, 0, time.Local)))
	checker.Check()
	checker.SetNow(fixedClock(time.Date(2026, 3, 10, 8, 0, 59, 0, time.Local)))
	checker.Check()

	assert.Len(t, notifier.alerts, 2)
}

func TestAppointmentOneHourAlertIsOneShot(t *testing.T) {
	checker, sess, notifier, _ := newTestChecker(t)
	ctx := context.Background()

	now := time.Date(2026, 3, 10, 13, 0, 0, 0, time.Local)
	sess.AddAppointment(ctx, "Cardiologista", "2026-03-10", "14:00", "")
	checker.SetNow(fixedClock(now))

	checker.Check()
	require.Len(t, notifier.alerts, 1)
	assert.Equal(t, model.AlertAppointment1h, notifier.alerts[0].Type)
	assert.True(t, sess.Appointments()[0].Notified)

	// A later tick still inside the window does not fire again.
	checker.SetNow(fixedClock(now.Add(30 * time.Second)))
	checker.Check()
	assert.Len(t, notifier.alerts, 1)
}

func TestAppointmentOneHourWindowBounds(t *testing.T) {
	tests := []struct {
		name    string
		offset  time.Duration
		expects int
	}{
		{"just inside lower edge", 60*time.Minute - 30*time.Second, 1},
		{"just inside upper edge", 60*time.Minute + 30*time.Second, 1},
		{"exactly 59 minutes", 59 * time.Minute, 0},
		{"exactly 61 minutes", 61 * time.Minute, 0},
		{"far away", 3 * time.Hour, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker, sess, notifier, _ := newTestChecker(t)
			ctx := context.Background()

			at := time.Date(2026, 3, 10, 15, 0, 0, 0, time.Local)
			sess.AddAppointment(ctx, "Consulta", at.Format("2006-01-02"), at.Format("15:04"), "")
			checker.SetNow(fixedClock(at.Add(-tt.offset)))

			checker.Check()
			assert.Len(t, notifier.alerts, tt.expects)
		})
	}
}

func TestAppointmentTenMinuteAlertHasNoLatch(t *testing.T) {
	checker, sess, notifier, _ := newTestChecker(t)
	ctx := context.Background()

	at := time.Date(2026, 3, 10, 15, 0, 0, 0, time.Local)
	sess.AddAppointment(ctx, "Consulta", at.Format("2006-01-02"), at.Format("15:04"), "")

	// Both ticks inside the 9-11 minute window fire; the duplicate window
	// is preserved behavior, not a bug.
	checker.SetNow(fixedClock(at.Add(-10*time.Minute - 30*time.Second)))
	checker.Check()
	checker.SetNow(fixedClock(at.Add(-9*time.Minute - 30*time.Second)))
	checker.Check()

	require.Len(t, notifier.alerts, 2)
	assert.Equal(t, model.AlertAppointment10m, notifier.alerts[0].Type)
	assert.Equal(t, model.AlertAppointment10m, notifier.alerts[1].Type)
	assert.False(t, sess.Appointments()[0].Notified)
}

func TestPastAppointmentDoesNotFire(t *testing.T) {
	checker, sess, notifier, _ := newTestChecker(t)
	ctx := context.Background()

	sess.AddAppointment(ctx, "Consulta", "2026-03-09", "10:00", "")
	checker.SetNow(fixedClock(time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)))

	checker.Check()
	assert.Empty(t, notifier.alerts)
}

func TestSpokenAlertFollowsVoiceFlag(t *testing.T) {
	checker, sess, _, speaker := newTestChecker(t)
	ctx := context.Background()

	sess.AddMedication(ctx, "Vitamina D", "08:00")
	checker.SetNow(fixedClock(time.Date(2026, 3, 10, 8, 0, 0, 0, time.Local)))

	checker.Check()
	assert.Empty(t, speaker.lines, "voice disabled by default")

	sess.SetVoiceEnabled(ctx, true)
	checker.Check()
	require.Len(t, speaker.lines, 1)
	assert.Contains(t, speaker.lines[0], "Vitamina D")
}

func TestSchedulerStartStop(t *testing.T) {
	checker, _, _, _ := newTestChecker(t)
	s := NewScheduler(checker, config.SchedulerConfig{
		TickSpec:       "0 * * * * *",
		SleepThreshold: time.Hour,
	})

	require.NoError(t, s.Start())
	assert.False(t, s.NextRun().IsZero())
	s.Stop()
}

func TestSchedulerRejectsBadSpec(t *testing.T) {
	checker, _, _, _ := newTestChecker(t)
	s := NewScheduler(checker, config.SchedulerConfig{TickSpec: "not a cron spec"})
	assert.Error(t, s.Start())
}

func TestSchedulerSkipsStaleTick(t *testing.T) {
	checker, sess, notifier, _ := newTestChecker(t)
	ctx := context.Background()

	sess.AddMedication(ctx, "Vitamina D", "08:00")
	checker.SetNow(fixedClock(time.Date(2026, 3, 10, 8, 0, 0, 0, time.Local)))

	s := NewScheduler(checker, config.SchedulerConfig{
		TickSpec:       "0 * * * * *",
		SleepThreshold: time.Hour,
	})

	// Simulate waking from a long suspend: the gap exceeds the threshold,
	// so the tick must be skipped without checking reminders.
	s.lastCheck = time.Now().Add(-2 * time.Hour)
	s.runTick()
	assert.Empty(t, notifier.alerts)

	// A normal tick right after runs the check.
	s.runTick()
	assert.Len(t, notifier.alerts, 1)
}

func TestManyRecordsSingleTick(t *testing.T) {
	checker, sess, notifier, _ := newTestChecker(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		sess.AddMedication(ctx, fmt.Sprintf("Remédio %d", i), "08:00")
	}
	sess.AddMedication(ctx, "Outro", "09:00")
	checker.SetNow(fixedClock(time.Date(2026, 3, 10, 8, 0, 0, 0, time.Local)))

	checker.Check()
	assert.Len(t, notifier.alerts, 5)
}
