package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"creatorlane/internal/config"
)

var (
	// ErrUnavailable means the storage engine could not be reached
	// (closed store, bad file, failed write).
	ErrUnavailable = errors.New("store unavailable")
	// ErrCorrupt means a persisted value exists but does not decode.
	ErrCorrupt = errors.New("corrupt record")
)

// Record is one persisted collection snapshot: a storage key mapping to a
// serialized JSON value.
type Record struct {
	Key       string `gorm:"primaryKey"`
	Value     string
	UpdatedAt time.Time
}

// Store owns every collection snapshot for the process. All reads and writes
// go through its mutex, so there is exactly one view of each key at any time
// and writers cannot clobber each other from stale snapshots.
type Store struct {
	mu     sync.RWMutex
	db     *gorm.DB
	cache  map[string]json.RawMessage
	subs   map[string][]chan string
	closed bool
}

// Conn is the process-wide store, initialized by Init
var Conn *Store

// Init opens the store at STORE_PATH
func Init() {
	var err error
	Conn, err = New(config.StorePath())
	if err != nil {
		log.Fatal().Err(err).Str("path", config.StorePath()).Msg("unable to open store")
	}
	log.Info().Str("path", config.StorePath()).Msg("store opened")
}

// New opens (or creates) a store file and warms the in-memory mirror.
func New(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	s := &Store{
		db:    db,
		cache: make(map[string]json.RawMessage),
		subs:  make(map[string][]chan string),
	}

	var recs []Record
	if err := db.Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	for _, r := range recs {
		s.cache[r.Key] = json.RawMessage(r.Value)
	}
	return s, nil
}

// Close releases the underlying database. Further writes fail with
// ErrUnavailable.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetRaw returns the serialized value stored at key. ok is false when the
// key has never been written.
func (s *Store) GetRaw(key string) (raw json.RawMessage, ok bool, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, false, ErrUnavailable
	}
	raw, ok = s.cache[key]
	return raw, ok, nil
}

// SetRaw persists a serialized value under key and updates the mirror.
func (s *Store) SetRaw(key string, raw json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setLocked(key, raw)
}

// Delete removes a key entirely, so later reads fall back to defaults.
// Logout uses this on the session key.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrUnavailable
	}
	if err := s.db.Delete(&Record{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	delete(s.cache, key)
	s.notifyLocked(key)
	return nil
}

// Keys lists every key currently stored, for diagnostics and the seed tool.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.cache))
	for k := range s.cache {
		keys = append(keys, k)
	}
	return keys
}

// Subscribe returns a channel that receives the key after every committed
// write to it. The second return value unregisters the subscription.
func (s *Store) Subscribe(key string) (<-chan string, func()) {
	ch := make(chan string, 8)
	s.mu.Lock()
	s.subs[key] = append(s.subs[key], ch)
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		chans := s.subs[key]
		for i, c := range chans {
			if c == ch {
				s.subs[key] = append(chans[:i], chans[i+1:]...)
				break
			}
		}
	}
	return ch, cancel
}

// setLocked persists and mirrors one key. Caller holds the write lock.
func (s *Store) setLocked(key string, raw json.RawMessage) error {
	if s.closed {
		return ErrUnavailable
	}
	rec := Record{Key: key, Value: string(raw), UpdatedAt: time.Now().UTC()}
	if err := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	s.cache[key] = raw
	s.notifyLocked(key)
	return nil
}

// notifyLocked pushes a change event to subscribers without blocking; a slow
// subscriber misses intermediate events, never holds up a write.
func (s *Store) notifyLocked(key string) {
	for _, ch := range s.subs[key] {
		select {
		case ch <- key:
		default:
		}
	}
}
