// Package session owns the in-memory application state shared between the
// user-facing commands and the reminder scheduler. All mutation goes through
// the methods here; each one also triggers the joint persistence of both
// record collections, so there is exactly one writer path to the store.
package session

import (
	"context"
	"strings"
	"sync"

	"github.com/ljmonteiro/companheiro/internal/logging"
	"github.com/ljmonteiro/companheiro/internal/model"
	"github.com/ljmonteiro/companheiro/internal/storage"
)

// Session holds the medication and appointment collections plus the user
// profile for the lifetime of the process.
type Session struct {
	mu sync.Mutex

	medications  []*model.Medication
	appointments []*model.Appointment
	profile      *model.Profile

	records  *storage.RecordsRepo
	profiles *storage.ProfileRepo
}

// New creates an empty session over the given repositories.
func New(records *storage.RecordsRepo, profiles *storage.ProfileRepo) *Session {
	return &Session{
		profile:  &model.Profile{},
		records:  records,
		profiles: profiles,
	}
}

// Load populates the session from the store. Read failures degrade to empty
// collections and a first-run profile; Load never fails.
func (s *Session) Load(ctx context.Context) {
	meds, appts := s.records.Load(ctx)
	profile := s.profiles.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.medications = meds
	s.appointments = appts
	s.profile = profile
}

// Medications returns a snapshot copy of the medication list.
func (s *Session) Medications() []*model.Medication {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Medication, len(s.medications))
	for i, m := range s.medications {
		c := *m
		out[i] = &c
	}
	return out
}

// Appointments returns a snapshot copy of the appointment list.
func (s *Session) Appointments() []*model.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Appointment, len(s.appointments))
	for i, a := range s.appointments {
		c := *a
		out[i] = &c
	}
	return out
}

// Profile returns a copy of the current profile.
func (s *Session) Profile() model.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.profile
}

// AddMedication appends a new medication and persists the pair. Empty
// required fields make it a silent no-op, mirroring the add form behavior.
func (s *Session) AddMedication(ctx context.Context, name, timeOfDay string) *model.Medication {
	name = strings.TrimSpace(name)
	if name == "" || timeOfDay == "" {
		return nil
	}

	med := model.NewMedication(name, timeOfDay)

	s.mu.Lock()
	s.medications = append(s.medications, med)
	s.persistLocked(ctx)
	s.mu.Unlock()

	c := *med
	return &c
}

// ToggleMedication flips the taken flag of exactly one medication. It
// returns the new taken state and whether a medication with the given id
// exists.
func (s *Session) ToggleMedication(ctx context.Context, id string) (taken, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.medications {
		if m.ID == id {
			m.Taken = !m.Taken
			s.persistLocked(ctx)
			return m.Taken, true
		}
	}
	return false, false
}

// DeleteMedication removes a medication by id, preserving the order of the
// rest. Deleting an unknown id is a no-op.
func (s *Session) DeleteMedication(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.medications[:0]
	removed := false
	for _, m := range s.medications {
		if m.ID == id {
			removed = true
			continue
		}
		kept = append(kept, m)
	}
	s.medications = kept
	if removed {
		s.persistLocked(ctx)
	}
}

// AddAppointment appends a new appointment and persists the pair. Empty
// required fields make it a silent no-op; location stays optional.
func (s *Session) AddAppointment(ctx context.Context, title, date, timeOfDay, location string) *model.Appointment {
	title = strings.TrimSpace(title)
	if title == "" || date == "" || timeOfDay == "" {
		return nil
	}

	appt := model.NewAppointment(title, date, timeOfDay, strings.TrimSpace(location))

	s.mu.Lock()
	s.appointments = append(s.appointments, appt)
	s.persistLocked(ctx)
	s.mu.Unlock()

	c := *appt
	return &c
}

// DeleteAppointment removes an appointment by id. Deleting an unknown id is
// a no-op.
func (s *Session) DeleteAppointment(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.appointments[:0]
	removed := false
	for _, a := range s.appointments {
		if a.ID == id {
			removed = true
			continue
		}
		kept = append(kept, a)
	}
	s.appointments = kept
	if removed {
		s.persistLocked(ctx)
	}
}

// MarkAppointmentNotified latches the one-shot notified flag and persists
// immediately. The flag never resets once set.
func (s *Session) MarkAppointmentNotified(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.appointments {
		if a.ID == id && !a.Notified {
			a.Notified = true
			s.persistLocked(ctx)
			return
		}
	}
}

// SetName persists the display name and updates the profile.
func (s *Session) SetName(ctx context.Context, name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile.Name = name
	if err := s.profiles.SaveName(ctx, name); err != nil {
		logging.Warn("profile save failed", logging.KeyStoreKey, model.KeyUserName, logging.KeyError, err)
	}
}

// SetDarkMode persists the dark-mode flag.
func (s *Session) SetDarkMode(ctx context.Context, on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile.DarkMode = on
	if err := s.profiles.SaveDarkMode(ctx, on); err != nil {
		logging.Warn("profile save failed", logging.KeyStoreKey, model.KeyDarkMode, logging.KeyError, err)
	}
}

// SetVoiceEnabled persists the voice-output flag.
func (s *Session) SetVoiceEnabled(ctx context.Context, on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile.VoiceEnabled = on
	if err := s.profiles.SaveVoiceEnabled(ctx, on); err != nil {
		logging.Warn("profile save failed", logging.KeyStoreKey, model.KeyVoiceEnabled, logging.KeyError, err)
	}
}

// persistLocked writes both collections as a pair. Write failures are
// logged and ignored so a store outage never blocks the user's flow.
// Callers must hold s.mu.
func (s *Session) persistLocked(ctx context.Context) {
	if err := s.records.Save(ctx, s.medications, s.appointments); err != nil {
		logging.Warn("records save failed", logging.KeyError, err)
	}
}
