package storage

import (
	"context"
	"encoding/json"

	apperrors "github.com/ljmonteiro/companheiro/internal/errors"
	"github.com/ljmonteiro/companheiro/internal/logging"
	"github.com/ljmonteiro/companheiro/internal/model"
)

// RecordsRepo persists the medication and appointment collections. The two
// lists are always written together as a pair so a later load sees a
// consistent snapshot of both.
type RecordsRepo struct {
	store Store
}

// NewRecordsRepo creates a records repository over the given store.
func NewRecordsRepo(store Store) *RecordsRepo {
	return &RecordsRepo{store: store}
}

// Load reads both collections. Any read or decode failure for a key yields
// an empty list for that key; it is never surfaced as an error.
func (r *RecordsRepo) Load(ctx context.Context) ([]*model.Medication, []*model.Appointment) {
	var meds []*model.Medication
	if raw, err := r.store.Get(ctx, model.KeyMedications); err == nil {
		if err := json.Unmarshal([]byte(raw), &meds); err != nil {
			logging.Warn("discarding unreadable medications value", logging.KeyError, err)
			meds = nil
		}
	} else if !IsErrKeyNotFound(err) {
		logging.Warn("medications read failed, starting empty", logging.KeyError, err)
	}

	var appts []*model.Appointment
	if raw, err := r.store.Get(ctx, model.KeyAppointments); err == nil {
		if err := json.Unmarshal([]byte(raw), &appts); err != nil {
			logging.Warn("discarding unreadable appointments value", logging.KeyError, err)
			appts = nil
		}
	} else if !IsErrKeyNotFound(err) {
		logging.Warn("appointments read failed, starting empty", logging.KeyError, err)
	}

	return meds, appts
}

// Save writes both collections as a pair. The first failure is returned but
// callers treat it as log-and-ignore.
func (r *RecordsRepo) Save(ctx context.Context, meds []*model.Medication, appts []*model.Appointment) error {
	medsJSON, err := json.Marshal(orEmptyMeds(meds))
	if err != nil {
		return err
	}
	apptsJSON, err := json.Marshal(orEmptyAppts(appts))
	if err != nil {
		return err
	}

	if err := r.store.Set(ctx, model.KeyMedications, string(medsJSON)); err != nil {
		return apperrors.Wrap(err, "save medications")
	}
	if err := r.store.Set(ctx, model.KeyAppointments, string(apptsJSON)); err != nil {
		return apperrors.Wrap(err, "save appointments")
	}
	return nil
}

// orEmptyMeds keeps the persisted form a JSON array, never null.
func orEmptyMeds(meds []*model.Medication) []*model.Medication {
	if meds == nil {
		return []*model.Medication{}
	}
	return meds
}

func orEmptyAppts(appts []*model.Appointment) []*model.Appointment {
	if appts == nil {
		return []*model.Appointment{}
	}
	return appts
}
