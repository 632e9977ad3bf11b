package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ljmonteiro/companheiro/internal/config"
	apperrors "github.com/ljmonteiro/companheiro/internal/errors"
	"github.com/ljmonteiro/companheiro/internal/model"
)

func openTestStore(t *testing.T) *LocalStore {
	t.Helper()
	store, err := OpenLocal(LocalOptions{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestLocalStoreRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "userName")
	assert.True(t, IsErrKeyNotFound(err))

	require.NoError(t, store.Set(ctx, "userName", "Maria"))
	v, err := store.Get(ctx, "userName")
	require.NoError(t, err)
	assert.Equal(t, "Maria", v)

	require.NoError(t, store.Delete(ctx, "userName"))
	_, err = store.Get(ctx, "userName")
	assert.True(t, IsErrKeyNotFound(err))
}

func TestLocalStoreList(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "medications", "[]"))
	require.NoError(t, store.Set(ctx, "appointments", "[]"))
	require.NoError(t, store.Set(ctx, "userName", "Maria"))

	keys, err := store.List(ctx, "med")
	require.NoError(t, err)
	assert.Equal(t, []string{"medications"}, keys)

	keys, err = store.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, keys, 3)
}

// fakeKVHandler implements the remote key/value service contract in memory.
type fakeKVHandler struct {
	mu   sync.Mutex
	data map[string]string
}

func (h *fakeKVHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if r.URL.Path == "/kv" {
		prefix := r.URL.Query().Get("prefix")
		var keys []string
		for k := range h.data {
			if strings.HasPrefix(k, prefix) {
				keys = append(keys, k)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"keys": keys})
		return
	}

	key := strings.TrimPrefix(r.URL.Path, "/kv/")
	switch r.Method {
	case http.MethodGet:
		v, ok := h.data[key]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"key": key, "value": v})
	case http.MethodPut:
		var body struct {
			Value string `json:"value"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		h.data[key] = body.Value
		w.WriteHeader(http.StatusOK)
	case http.MethodDelete:
		delete(h.data, key)
		w.WriteHeader(http.StatusOK)
	}
}

func TestRemoteStore(t *testing.T) {
	srv := httptest.NewServer(&fakeKVHandler{data: map[string]string{}})
	defer srv.Close()

	store := NewRemoteStore(srv.URL, 5*time.Second)
	ctx := context.Background()

	_, err := store.Get(ctx, "darkMode")
	assert.True(t, IsErrKeyNotFound(err))

	require.NoError(t, store.Set(ctx, "darkMode", "true"))
	v, err := store.Get(ctx, "darkMode")
	require.NoError(t, err)
	assert.Equal(t, "true", v)

	keys, err := store.List(ctx, "dark")
	require.NoError(t, err)
	assert.Equal(t, []string{"darkMode"}, keys)

	require.NoError(t, store.Delete(ctx, "darkMode"))
	require.NoError(t, store.Delete(ctx, "darkMode"), "deleting an absent key is not an error")
}

func TestRemoteStoreParsesUnlabelledJSON(t *testing.T) {
	// Some key/value services answer JSON without a Content-Type header;
	// the client must still decode the body instead of reporting the key
	// as empty.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/kv" {
			fmt.Fprint(w, `{"keys":["userName"]}`)
			return
		}
		fmt.Fprint(w, `{"key":"userName","value":"Maria"}`)
	}))
	defer srv.Close()

	store := NewRemoteStore(srv.URL, 5*time.Second)
	ctx := context.Background()

	v, err := store.Get(ctx, "userName")
	require.NoError(t, err)
	assert.Equal(t, "Maria", v)

	keys, err := store.List(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, []string{"userName"}, keys)
}

func TestRemoteStoreServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	store := NewRemoteStore(srv.URL, 5*time.Second)
	ctx := context.Background()

	_, err := store.Get(ctx, "userName")
	assert.True(t, apperrors.Is(err, apperrors.ErrStoreUnavailable))

	err = store.Set(ctx, "userName", "Maria")
	assert.True(t, apperrors.Is(err, apperrors.ErrStoreUnavailable))
}

func TestOpenSelectsBackend(t *testing.T) {
	// Remote without a URL is a configuration error.
	_, err := Open(config.StoreConfig{Backend: config.BackendRemote})
	assert.Error(t, err)

	// Unknown backends are rejected rather than silently falling back.
	_, err = Open(config.StoreConfig{Backend: "cloud"})
	assert.Error(t, err)

	remote, err := Open(config.StoreConfig{
		Backend:       config.BackendRemote,
		RemoteURL:     "http://kv.local:8080",
		RemoteTimeout: time.Second,
	})
	require.NoError(t, err)
	assert.IsType(t, &RemoteStore{}, remote)
}

func TestRecordsRepoRoundTrip(t *testing.T) {
	store := openTestStore(t)
	repo := NewRecordsRepo(store)
	ctx := context.Background()

	meds := []*model.Medication{
		{ID: "1", Name: "Losartana", Time: "08:00"},
		{ID: "2", Name: "Vitamina D", Time: "12:00", Taken: true},
	}
	appts := []*model.Appointment{
		{ID: "3", Title: "Cardiologista", Date: "2026-03-10", Time: "14:00", Location: "Clínica Vida"},
	}

	require.NoError(t, repo.Save(ctx, meds, appts))

	gotMeds, gotAppts := repo.Load(ctx)
	assert.Equal(t, meds, gotMeds)
	assert.Equal(t, appts, gotAppts)
}

func TestRecordsRepoLoadDefaults(t *testing.T) {
	store := openTestStore(t)
	repo := NewRecordsRepo(store)
	ctx := context.Background()

	meds, appts := repo.Load(ctx)
	assert.Empty(t, meds)
	assert.Empty(t, appts)

	// Corrupt values degrade to empty, not errors.
	require.NoError(t, store.Set(ctx, model.KeyMedications, "{not json"))
	meds, _ = repo.Load(ctx)
	assert.Empty(t, meds)
}

func TestRecordsRepoSaveWritesPair(t *testing.T) {
	store := openTestStore(t)
	repo := NewRecordsRepo(store)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, nil, nil))

	medsRaw, err := store.Get(ctx, model.KeyMedications)
	require.NoError(t, err)
	assert.Equal(t, "[]", medsRaw)

	apptsRaw, err := store.Get(ctx, model.KeyAppointments)
	require.NoError(t, err)
	assert.Equal(t, "[]", apptsRaw)
}

func TestProfileRepo(t *testing.T) {
	store := openTestStore(t)
	repo := NewProfileRepo(store)
	ctx := context.Background()

	p := repo.Load(ctx)
	assert.True(t, p.FirstRun())
	assert.False(t, p.DarkMode)
	assert.False(t, p.VoiceEnabled)

	require.NoError(t, repo.SaveName(ctx, "Maria"))
	require.NoError(t, repo.SaveDarkMode(ctx, true))
	require.NoError(t, repo.SaveVoiceEnabled(ctx, true))

	p = repo.Load(ctx)
	assert.False(t, p.FirstRun())
	assert.Equal(t, "Maria", p.Name)
	assert.True(t, p.DarkMode)
	assert.True(t, p.VoiceEnabled)

	raw, err := store.Get(ctx, model.KeyDarkMode)
	require.NoError(t, err)
	assert.Equal(t, "true", raw)
}
