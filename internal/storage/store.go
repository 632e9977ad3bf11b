// Package storage provides the key/value persistence layer for Companheiro.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/ljmonteiro/companheiro/internal/config"
)

// AppName is the application name used for data directories.
const AppName = "companheiro"

var (
	// ErrKeyNotFound is returned when a key is not found in the store.
	ErrKeyNotFound = errors.New("key not found")
)

// IsErrKeyNotFound returns true if the error is a key not found error.
func IsErrKeyNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound)
}

// Store is the key/value contract shared by both backends. Values are
// strings; readers must treat any Get failure as "value absent" and degrade
// to defaults rather than surfacing a blocking error.
type Store interface {
	// Get retrieves the value for a key. Returns ErrKeyNotFound when absent.
	Get(ctx context.Context, key string) (string, error)
	// Set stores a value under a key.
	Set(ctx context.Context, key, value string) error
	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// List returns all keys with the given prefix.
	List(ctx context.Context, prefix string) ([]string, error)
	// Close releases the backend.
	Close() error
}

// Open selects and opens the configured backend. The selection happens once
// here; call sites only ever see the Store interface.
func Open(cfg config.StoreConfig) (Store, error) {
	switch cfg.Backend {
	case config.BackendRemote:
		if cfg.RemoteURL == "" {
			return nil, fmt.Errorf("remote store selected but no URL configured")
		}
		return NewRemoteStore(cfg.RemoteURL, cfg.RemoteTimeout), nil
	case config.BackendLocal, "":
		return OpenLocal(LocalOptions{Path: cfg.Path})
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
