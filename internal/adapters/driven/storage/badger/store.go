// Package badger provides a BadgerDB-backed implementation of the profile
// and query log ports. Values are versioned JSON envelopes from the codec
// package, keyed by prefix.
package badger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/custodia-labs/shopsearch/internal/adapters/driven/storage/codec"
	"github.com/custodia-labs/shopsearch/internal/core/domain"
	"github.com/custodia-labs/shopsearch/internal/core/ports/driven"
	"github.com/custodia-labs/shopsearch/internal/logger"
)

// DirName is the Badger directory inside the data directory.
const DirName = "badger"

// Key prefixes for BadgerDB storage
const (
	profileKeyPrefix = "profile:"
	queryLogKey      = "query_log"
)

// Store wraps one Badger database.
type Store struct {
	db   *badger.DB
	path string
}

// NewStore opens (or creates) a Badger database under dataDir.
// If dataDir is empty, defaults to ~/.shopsearch/data/badger.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".shopsearch", "data")
	}
	path := filepath.Join(dataDir, DirName)
	if err := os.MkdirAll(path, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening badger: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// NewInMemoryStore opens a Badger database that lives only in memory.
func NewInMemoryStore() (*Store, error) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("opening badger: %w", err)
	}
	return &Store{db: db, path: ":memory:"}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database directory.
func (s *Store) Path() string {
	return s.path
}

// ProfileStore returns a ProfileStore interface backed by this store.
func (s *Store) ProfileStore() driven.ProfileStore {
	return &profileStore{db: s.db}
}

// QueryLogStore returns a QueryLogStore interface backed by this store.
func (s *Store) QueryLogStore() driven.QueryLogStore {
	return &queryLogStore{db: s.db}
}

// profileStore implements driven.ProfileStore.
type profileStore struct {
	db *badger.DB
}

var _ driven.ProfileStore = (*profileStore)(nil)

// Save stores or replaces a profile.
func (s *profileStore) Save(_ context.Context, snapshot domain.ProfileSnapshot) error {
	if snapshot.UserID == "" {
		return fmt.Errorf("set profile: %w", domain.ErrInvalidInput)
	}
	data, err := codec.EncodeProfile(snapshot)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(profileKeyPrefix+snapshot.UserID), data); err != nil {
			return fmt.Errorf("set profile: %w", err)
		}
		return nil
	})
}

// Get retrieves a profile by user ID.
func (s *profileStore) Get(_ context.Context, userID string) (*domain.ProfileSnapshot, error) {
	var snapshot domain.ProfileSnapshot

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(profileKeyPrefix + userID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return domain.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get profile: %w", err)
		}

		return item.Value(func(val []byte) error {
			snapshot, err = codec.DecodeProfile(val)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// List returns every stored profile. Badger iterates keys in byte order,
// so profiles come back sorted by user ID. Profiles that cannot be decoded
// are logged and skipped.
func (s *profileStore) List(_ context.Context) ([]domain.ProfileSnapshot, error) {
	var snapshots []domain.ProfileSnapshot

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(profileKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				snapshot, err := codec.DecodeProfile(val)
				if err != nil {
					logger.Warn("Skipping profile %s: %v",
						strings.TrimPrefix(string(it.Item().Key()), profileKeyPrefix), err)
					return nil
				}
				snapshots = append(snapshots, snapshot)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return snapshots, nil
}

// Delete removes a profile.
func (s *profileStore) Delete(_ context.Context, userID string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(profileKeyPrefix + userID))
		if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete profile: %w", err)
		}
		return nil
	})
}

// queryLogStore implements driven.QueryLogStore.
type queryLogStore struct {
	db *badger.DB
}

var _ driven.QueryLogStore = (*queryLogStore)(nil)

// SaveQueryLog replaces the stored log.
func (s *queryLogStore) SaveQueryLog(_ context.Context, snapshot domain.QueryLogSnapshot) error {
	data, err := codec.EncodeQueryLog(snapshot, time.Now())
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(queryLogKey), data); err != nil {
			return fmt.Errorf("set query log: %w", err)
		}
		return nil
	})
}

// LoadQueryLog returns the stored log, or an empty snapshot.
func (s *queryLogStore) LoadQueryLog(_ context.Context) (domain.QueryLogSnapshot, error) {
	var snapshot domain.QueryLogSnapshot

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(queryLogKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get query log: %w", err)
		}
		return item.Value(func(val []byte) error {
			snapshot, err = codec.DecodeQueryLog(val)
			return err
		})
	})
	if err != nil {
		return domain.QueryLogSnapshot{}, err
	}
	return snapshot, nil
}
