package storage

import (
	"context"
	"strconv"

	"github.com/ljmonteiro/companheiro/internal/logging"
	"github.com/ljmonteiro/companheiro/internal/model"
)

// ProfileRepo persists the user profile. Each field has its own key; the
// booleans are stored as "true"/"false" strings.
type ProfileRepo struct {
	store Store
}

// NewProfileRepo creates a profile repository over the given store.
func NewProfileRepo(store Store) *ProfileRepo {
	return &ProfileRepo{store: store}
}

// Load reads the profile. A missing or unreadable name leaves Name empty,
// which is the first-run signal; missing flags default to false.
func (r *ProfileRepo) Load(ctx context.Context) *model.Profile {
	p := &model.Profile{}

	if v, err := r.store.Get(ctx, model.KeyUserName); err == nil {
		p.Name = v
	} else if !IsErrKeyNotFound(err) {
		logging.Warn("userName read failed, treating as first run", logging.KeyError, err)
	}

	p.DarkMode = r.loadBool(ctx, model.KeyDarkMode)
	p.VoiceEnabled = r.loadBool(ctx, model.KeyVoiceEnabled)
	return p
}

func (r *ProfileRepo) loadBool(ctx context.Context, key string) bool {
	v, err := r.store.Get(ctx, key)
	if err != nil {
		if !IsErrKeyNotFound(err) {
			logging.Warn("profile flag read failed", logging.KeyStoreKey, key, logging.KeyError, err)
		}
		return false
	}
	return v == "true"
}

// SaveName persists the display name.
func (r *ProfileRepo) SaveName(ctx context.Context, name string) error {
	return r.store.Set(ctx, model.KeyUserName, name)
}

// SaveDarkMode persists the dark-mode flag.
func (r *ProfileRepo) SaveDarkMode(ctx context.Context, on bool) error {
	return r.store.Set(ctx, model.KeyDarkMode, strconv.FormatBool(on))
}

// SaveVoiceEnabled persists the voice-output flag.
func (r *ProfileRepo) SaveVoiceEnabled(ctx context.Context, on bool) error {
	return r.store.Set(ctx, model.KeyVoiceEnabled, strconv.FormatBool(on))
}
