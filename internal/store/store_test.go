package store_test

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creatorlane/internal/store"
)

type widget struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

func newStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func widgets(s *store.Store) store.Keyed[widget] {
	return store.OpenKeyed(s, "widgets", func(w widget) string { return w.ID })
}

func TestAbsentKeyReturnsDefault(t *testing.T) {
	s := newStore(t)

	_, v, err := store.Open(s, "nothing", widget{Label: "fallback"})
	require.NoError(t, err)
	assert.Equal(t, "fallback", v.Label)
}

func TestReadIsIdempotent(t *testing.T) {
	s := newStore(t)

	col, _, err := store.Open(s, "w", widget{})
	require.NoError(t, err)
	require.NoError(t, col.Set(widget{ID: "1", Label: "a"}))

	first, err := col.Get()
	require.NoError(t, err)
	second, err := col.Get()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestWriteThenReadThroughSecondBinding(t *testing.T) {
	s := newStore(t)

	col, _, err := store.Open(s, "w", widget{})
	require.NoError(t, err)
	require.NoError(t, col.Set(widget{ID: "1", Label: "hello"}))

	_, v, err := store.Open(s, "w", widget{})
	require.NoError(t, err)
	assert.Equal(t, "hello", v.Label)
}

func TestRoundTripSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")

	s, err := store.New(path)
	require.NoError(t, err)
	col, _, err := store.Open(s, "w", widget{})
	require.NoError(t, err)
	require.NoError(t, col.Set(widget{ID: "42", Label: "kept"}))
	require.NoError(t, s.Close())

	s2, err := store.New(path)
	require.NoError(t, err)
	defer s2.Close()

	_, v, err := store.Open(s2, "w", widget{})
	require.NoError(t, err)
	assert.Equal(t, "42", v.ID)
	assert.Equal(t, "kept", v.Label)
}

func TestCorruptValueKeepsDefault(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.SetRaw("bad", json.RawMessage(`{not json`)))

	_, v, err := store.Open(s, "bad", widget{Label: "safe"})
	require.ErrorIs(t, err, store.ErrCorrupt)
	assert.Equal(t, "safe", v.Label)
}

func TestCorruptValueAbortsUpdate(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.SetRaw("bad", json.RawMessage(`]]`)))

	col, _, _ := store.Open(s, "bad", widget{})
	err := col.Update(func(prev widget) widget { return prev })
	require.ErrorIs(t, err, store.ErrCorrupt)

	// The corrupt payload must still be there, not clobbered by a default.
	raw, ok, err := s.GetRaw("bad")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "]]", string(raw))
}

func TestClosedStoreIsUnavailable(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Close())

	_, _, err := s.GetRaw("w")
	assert.ErrorIs(t, err, store.ErrUnavailable)

	err = s.SetRaw("w", json.RawMessage(`{}`))
	assert.ErrorIs(t, err, store.ErrUnavailable)

	err = s.Tx(func(tx *store.Tx) error { return nil })
	assert.ErrorIs(t, err, store.ErrUnavailable)
}

func TestDeleteFallsBackToDefault(t *testing.T) {
	s := newStore(t)

	col, _, err := store.Open(s, "w", widget{Label: "def"})
	require.NoError(t, err)
	require.NoError(t, col.Set(widget{ID: "1", Label: "live"}))
	require.NoError(t, s.Delete("w"))

	v, err := col.Get()
	require.NoError(t, err)
	assert.Equal(t, "def", v.Label)
}

func TestKeyedPutFindDelete(t *testing.T) {
	s := newStore(t)
	col := widgets(s)

	require.NoError(t, col.Append(widget{ID: "a", Label: "one"}))
	require.NoError(t, col.Append(widget{ID: "b", Label: "two"}))

	// Put with an existing id replaces in place.
	require.NoError(t, col.Put(widget{ID: "a", Label: "uno"}))
	all, err := col.Get()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "uno", all[0].Label)

	got, found, err := col.Find("b")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "two", got.Label)

	require.NoError(t, col.Delete("a"))
	_, found, err = col.Find("a")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestTxCommitsAllKeys(t *testing.T) {
	s := newStore(t)

	err := s.Tx(func(tx *store.Tx) error {
		if err := store.TxAppend(tx, "lefts", widget{ID: "l"}); err != nil {
			return err
		}
		return store.TxAppend(tx, "rights", widget{ID: "r"})
	})
	require.NoError(t, err)

	lefts, err := store.OpenKeyed(s, "lefts", func(w widget) string { return w.ID }).Get()
	require.NoError(t, err)
	rights, err := store.OpenKeyed(s, "rights", func(w widget) string { return w.ID }).Get()
	require.NoError(t, err)
	assert.Len(t, lefts, 1)
	assert.Len(t, rights, 1)
}

func TestTxAbortLeavesNothingBehind(t *testing.T) {
	s := newStore(t)
	boom := errors.New("boom")

	err := s.Tx(func(tx *store.Tx) error {
		if err := store.TxAppend(tx, "lefts", widget{ID: "l"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, ok, err := s.GetRaw("lefts")
	require.NoError(t, err)
	assert.False(t, ok, "aborted tx must not leave a partial write")
}

func TestTxReadsItsOwnWrites(t *testing.T) {
	s := newStore(t)

	err := s.Tx(func(tx *store.Tx) error {
		if err := store.TxAppend(tx, "w", widget{ID: "1"}); err != nil {
			return err
		}
		staged, err := store.TxGet(tx, "w", []widget(nil))
		if err != nil {
			return err
		}
		require.Len(t, staged, 1)
		return nil
	})
	require.NoError(t, err)
}

func TestSubscribeSeesCommittedWrites(t *testing.T) {
	s := newStore(t)

	ch, cancel := s.Subscribe("w")
	defer cancel()

	require.NoError(t, s.SetRaw("w", json.RawMessage(`[]`)))

	select {
	case key := <-ch:
		assert.Equal(t, "w", key)
	case <-time.After(time.Second):
		t.Fatal("no notification after write")
	}
}

func TestConcurrentAppendsLoseNothing(t *testing.T) {
	s := newStore(t)
	col := widgets(s)

	const workers, each = 4, 25
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < each; i++ {
				_ = col.Append(widget{ID: "x"})
			}
		}(w)
	}
	wg.Wait()

	all, err := col.Get()
	require.NoError(t, err)
	assert.Len(t, all, workers*each)
}
