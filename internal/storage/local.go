package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	badger "github.com/dgraph-io/badger/v4"

	apperrors "github.com/ljmonteiro/companheiro/internal/errors"
)

// LocalStore is the Badger-backed store used when no shared key/value
// service is configured.
type LocalStore struct {
	db *badger.DB
}

// LocalOptions configures the local store.
type LocalOptions struct {
	// Path is the database directory path. Empty string uses the default.
	Path string
	// InMemory forces in-memory mode regardless of Path.
	InMemory bool
}

// DefaultPath returns the default database path following XDG spec.
func DefaultPath() string {
	return filepath.Join(xdg.DataHome, AppName, "db")
}

// OpenLocal opens or creates a local store at the given path.
func OpenLocal(opts LocalOptions) (*LocalStore, error) {
	var badgerOpts badger.Options

	if opts.InMemory {
		// In-memory mode for testing
		badgerOpts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		path := opts.Path
		if path == "" {
			path = DefaultPath()
		}
		if err := os.MkdirAll(path, 0755); err != nil {
			return nil, apperrors.NewSystemErrorWithOp("open local store",
				"cannot create the data directory", err)
		}
		badgerOpts = badger.DefaultOptions(path)
	}

	// Reduce logging noise
	badgerOpts = badgerOpts.WithLoggingLevel(badger.ERROR)

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, apperrors.NewSystemErrorWithOp("open local store",
			"cannot open the local database", err)
	}

	return &LocalStore{db: db}, nil
}

// Get retrieves the value for a key.
func (s *LocalStore) Get(_ context.Context, key string) (string, error) {
	var value string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrKeyNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			value = string(val)
			return nil
		})
	})
	return value, err
}

// Set stores a value under a key.
func (s *LocalStore) Set(_ context.Context, key, value string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
}

// Delete removes a key.
func (s *LocalStore) Delete(_ context.Context, key string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

// List returns all keys with the given prefix.
func (s *LocalStore) List(_ context.Context, prefix string) ([]string, error) {
	var keys []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefixBytes := []byte(prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			key := make([]byte, len(item.Key()))
			copy(key, item.Key())
			keys = append(keys, string(key))
		}
		return nil
	})
	return keys, err
}

// Close closes the underlying database.
func (s *LocalStore) Close() error {
	return s.db.Close()
}
