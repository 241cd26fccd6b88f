package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketSession   = []byte("session")
	bucketBookmarks = []byte("bookmarks")
)

// Keys
const (
	keyLastTime = "last_time"
	keyCursor   = "cursor"
	keyList     = "list"
)

// maxBookmarks caps the stored bookmark list; the oldest are dropped first
const maxBookmarks = 32

// StateStore implements domain.StateStore using BoltDB.
type StateStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

// NewStateStore opens (or creates) the bolt file at path.
// An empty path gives a memory-only store.
func NewStateStore(path string) (*StateStore, error) {
	if path == "" {
		// Memory-only mode (no persistence)
		return &StateStore{cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	// Create buckets
	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketSession, bucketBookmarks} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &StateStore{db: db, cache: make(map[string][]byte)}, nil
}

func (s *StateStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *StateStore) get(bucket []byte, key string, dest interface{}) bool {
	cacheKey := string(bucket) + ":" + key

	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	// Read from BoltDB
	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *StateStore) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	cacheKey := string(bucket) + ":" + key

	// Update memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	// Write to BoltDB
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		return b.Put([]byte(key), data)
	})
}

func (s *StateStore) delete(bucket []byte, key string) error {
	cacheKey := string(bucket) + ":" + key

	// Clear from memory cache
	s.mu.Lock()
	delete(s.cache, cacheKey)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		return b.Delete([]byte(key))
	})
}

// === Chart time ===

func (s *StateStore) GetLastTime() (time.Time, bool) {
	var t time.Time
	ok := s.get(bucketSession, keyLastTime, &t)
	return t, ok
}

func (s *StateStore) SaveLastTime(t time.Time) error {
	return s.set(bucketSession, keyLastTime, t)
}

// === Menu ===

func (s *StateStore) GetCursor() (int, bool) {
	var row int
	ok := s.get(bucketSession, keyCursor, &row)
	return row, ok
}

func (s *StateStore) SaveCursor(row int) error {
	return s.set(bucketSession, keyCursor, row)
}

// === Bookmarks ===

// GetBookmarks returns bookmarked chart times in chronological order
func (s *StateStore) GetBookmarks() ([]time.Time, bool) {
	var marks []time.Time
	ok := s.get(bucketBookmarks, keyList, &marks)
	return marks, ok
}

// AddBookmark stores t, ignoring duplicates of the same instant
func (s *StateStore) AddBookmark(t time.Time) error {
	marks, _ := s.GetBookmarks()
	for _, m := range marks {
		if m.Equal(t) {
			return nil
		}
	}

	marks = append(marks, t)
	sort.Slice(marks, func(i, j int) bool { return marks[i].Before(marks[j]) })
	if len(marks) > maxBookmarks {
		marks = marks[len(marks)-maxBookmarks:]
	}
	return s.set(bucketBookmarks, keyList, marks)
}

func (s *StateStore) ClearBookmarks() error {
	return s.delete(bucketBookmarks, keyList)
}
