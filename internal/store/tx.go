package store

import (
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Tx stages writes to several keys and commits them in one database
// transaction, so paired collections (orders/bookings, messages and their
// parent conversation) can never be observed half-written.
type Tx struct {
	s     *Store
	stage map[string]json.RawMessage
	order []string
}

// Tx runs fn with a staged view of the store. Writes made through the Tx
// helpers become visible, in memory and on disk, only if fn returns nil and
// the underlying transaction commits. The whole Tx runs under the store's
// write lock.
func (s *Store) Tx(fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrUnavailable
	}

	tx := &Tx{s: s, stage: make(map[string]json.RawMessage)}
	if err := fn(tx); err != nil {
		return err
	}
	if len(tx.stage) == 0 {
		return nil
	}

	err := s.db.Transaction(func(db *gorm.DB) error {
		for _, key := range tx.order {
			rec := Record{Key: key, Value: string(tx.stage[key])}
			if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	for _, key := range tx.order {
		s.cache[key] = tx.stage[key]
		s.notifyLocked(key)
	}
	return nil
}

// get reads through the staging overlay, then the mirror.
func (tx *Tx) get(key string) (json.RawMessage, bool) {
	if raw, ok := tx.stage[key]; ok {
		return raw, true
	}
	raw, ok := tx.s.cache[key]
	return raw, ok
}

// set stages a write, remembering first-write order for the commit.
func (tx *Tx) set(key string, raw json.RawMessage) {
	if _, ok := tx.stage[key]; !ok {
		tx.order = append(tx.order, key)
	}
	tx.stage[key] = raw
}

// TxGet decodes the staged value at key, falling back to def on absence.
func TxGet[T any](tx *Tx, key string, def T) (T, error) {
	raw, ok := tx.get(key)
	if !ok {
		return def, nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return def, fmt.Errorf("%w: key %q: %v", ErrCorrupt, key, err)
	}
	return v, nil
}

// TxSet stages a replacement value for key.
func TxSet[T any](tx *Tx, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	tx.set(key, raw)
	return nil
}

// TxUpdate applies fn to the staged value at key and stages the result.
func TxUpdate[T any](tx *Tx, key string, def T, fn func(prev T) T) error {
	prev, err := TxGet(tx, key, def)
	if err != nil {
		return err
	}
	return TxSet(tx, key, fn(prev))
}

// TxAppend stages rec appended to the slice collection at key.
func TxAppend[T any](tx *Tx, key string, rec T) error {
	return TxUpdate(tx, key, []T(nil), func(prev []T) []T { return append(prev, rec) })
}
