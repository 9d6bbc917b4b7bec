package alerts_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creatorlane/internal/alerts"
	"creatorlane/internal/store"
)

func newStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestForReturnsNewestFirstPerUser(t *testing.T) {
	s := newStore(t)

	require.NoError(t, alerts.Notify(s, "u1", alerts.KindBooking, "first", "", "o1"))
	require.NoError(t, alerts.Notify(s, "u1", alerts.KindPayment, "second", "", "o1"))
	require.NoError(t, alerts.Notify(s, "u2", alerts.KindMessage, "other", "", ""))

	items, err := alerts.For(s, "u1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "second", items[0].Title)
	assert.Equal(t, "first", items[1].Title)

	others, err := alerts.For(s, "u2")
	require.NoError(t, err)
	assert.Len(t, others, 1)
}

func TestMarkRead(t *testing.T) {
	s := newStore(t)

	require.NoError(t, alerts.Notify(s, "u1", alerts.KindBooking, "hello", "", ""))
	items, err := alerts.For(s, "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Nil(t, items[0].ReadAt)

	ok, err := alerts.MarkRead(s, "u1", items[0].ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// Marking twice, or as another user, is a no-op.
	ok, err = alerts.MarkRead(s, "u1", items[0].ID)
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = alerts.MarkRead(s, "u2", items[0].ID)
	require.NoError(t, err)
	assert.False(t, ok)

	items, err = alerts.For(s, "u1")
	require.NoError(t, err)
	assert.NotNil(t, items[0].ReadAt)
}
