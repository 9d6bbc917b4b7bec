package alerts

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"creatorlane/internal/store"
)

// Notify appends one notification for the user. Best-effort by policy: a
// failure is logged, never propagated, and never retried.
func Notify(s *store.Store, userID, kind, title, body, reference string) error {
	n := Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Kind:      kind,
		Title:     title,
		Body:      body,
		Reference: reference,
		CreatedAt: time.Now().UTC(),
	}
	err := collection(s).Append(n)
	if err != nil {
		log.Warn().Err(err).Str("kind", kind).Msg("notification dropped")
	}
	return err
}

// For returns the user's notifications, newest first.
func For(s *store.Store, userID string) ([]Notification, error) {
	items, err := collection(s).Filter(func(n Notification) bool { return n.UserID == userID })
	if err != nil {
		return nil, err
	}
	// stored oldest-first; reverse for display
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return items, nil
}

// MarkRead stamps readAt on one of the user's notifications.
func MarkRead(s *store.Store, userID, id string) (bool, error) {
	updated := false
	err := collection(s).Update(func(prev []Notification) []Notification {
		for i, n := range prev {
			if n.ID == id && n.UserID == userID && n.ReadAt == nil {
				now := time.Now().UTC()
				prev[i].ReadAt = &now
				updated = true
			}
		}
		return prev
	})
	return updated, err
}

func collection(s *store.Store) store.Keyed[Notification] {
	return store.OpenKeyed(s, store.KeyNotifications, func(n Notification) string { return n.ID })
}
