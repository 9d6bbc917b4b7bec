package messaging

import (
	"time"

	"github.com/google/uuid"

	"creatorlane/internal/store"
)

// Conversations binds the conversations collection.
func Conversations(s *store.Store) store.Keyed[Conversation] {
	return store.OpenKeyed(s, store.KeyConversations, func(c Conversation) string { return c.ID })
}

// ConversationsFor returns every conversation the user participates in,
// preserving stored order.
func ConversationsFor(s *store.Store, userID string) ([]Conversation, error) {
	return Conversations(s).Filter(func(c Conversation) bool { return c.Has(userID) })
}

// EnsureConversation finds the conversation between a and b, updating its
// last-message line, or appends a new one. Deduplication is a linear scan;
// the first record containing both participants wins.
func EnsureConversation(s *store.Store, a, b Participant, lastMessage string) (Conversation, error) {
	var out Conversation
	err := s.Tx(func(tx *store.Tx) error {
		var err error
		out, err = EnsureConversationTx(tx, a, b, lastMessage)
		return err
	})
	return out, err
}

// EnsureConversationTx is EnsureConversation staged inside an open
// transaction, so the hire flow can bootstrap the thread atomically with the
// order pair.
func EnsureConversationTx(tx *store.Tx, a, b Participant, lastMessage string) (Conversation, error) {
	now := time.Now().UTC()
	var out Conversation
	err := store.TxUpdate(tx, store.KeyConversations, []Conversation(nil), func(prev []Conversation) []Conversation {
		for i, convo := range prev {
			if convo.Has(a.ID) && convo.Has(b.ID) {
				prev[i].LastMessage = lastMessage
				prev[i].UpdatedAt = now
				out = prev[i]
				return prev
			}
		}
		out = Conversation{
			ID:                 uuid.New().String(),
			Participants:       []string{a.ID, b.ID},
			ParticipantNames:   []string{a.Name, b.Name},
			ParticipantAvatars: []string{a.Avatar, b.Avatar},
			LastMessage:        lastMessage,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		return append(prev, out)
	})
	return out, err
}
