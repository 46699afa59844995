package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/streamverse/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketState = []byte("state")
)

// Keys for persisted local state
const (
	KeyMyList = "my_list"
)

// CredentialKey returns the state key holding a provider's API key
func CredentialKey(p domain.Provider) string {
	return string(p) + "_api_key"
}

// StateStore implements domain.StateStore using BoltDB.
type StateStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

// Open opens (or creates) the state database at path.
// An empty path gives a memory-only store with no persistence.
func Open(path string) (*StateStore, error) {
	if path == "" {
		return &StateStore{cache: make(map[string][]byte)}, nil
	}

	path = expandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketState)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &StateStore{db: db, cache: make(map[string][]byte)}, nil
}

// NewMemoryStore returns a store that never touches disk
func NewMemoryStore() *StateStore {
	s, _ := Open("")
	return s
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

func (s *StateStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load decodes the value stored under key into dest
func (s *StateStore) Load(key string, dest any) error {
	data, ok := s.getRaw(key)
	if !ok {
		return domain.ErrNotFound
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("%w: key %q: %w", domain.ErrPersistenceRead, key, err)
	}
	return nil
}

// Save encodes value as JSON and stores it under key
func (s *StateStore) Save(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.setRaw(key, data)
}

// setRaw stores bytes under key without encoding them
func (s *StateStore) setRaw(key string, data []byte) error {
	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketState).Put([]byte(key), data)
	})
}

// Delete removes key. Missing keys are not an error.
func (s *StateStore) Delete(key string) error {
	s.mu.Lock()
	delete(s.cache, key)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketState).Delete([]byte(key))
	})
}

// Clear wipes all local state
func (s *StateStore) Clear() error {
	s.mu.Lock()
	s.cache = make(map[string][]byte)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketState)
		var keys [][]byte
		if err := b.ForEach(func(k, _ []byte) error {
			keys = append(keys, append([]byte(nil), k...))
			return nil
		}); err != nil {
			return err
		}
		var errs []error
		for _, k := range keys {
			if err := b.Delete(k); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})
}

func (s *StateStore) getRaw(key string) ([]byte, bool) {
	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return data, true
	}
	s.mu.RUnlock()

	if s.db == nil {
		return nil, false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketState).Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return nil, false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()

	return data, true
}
