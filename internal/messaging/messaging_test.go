package messaging_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creatorlane/internal/messaging"
	"creatorlane/internal/store"
)

var (
	maya = messaging.Participant{ID: "u-maya", Name: "Maya", Avatar: "a1"}
	alex = messaging.Participant{ID: "u-alex", Name: "Alex", Avatar: "a2"}
	nina = messaging.Participant{ID: "u-nina", Name: "Nina", Avatar: "a3"}
)

func newStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestEnsureConversationDeduplicates(t *testing.T) {
	s := newStore(t)

	first, err := messaging.EnsureConversation(s, maya, alex, "hi")
	require.NoError(t, err)

	// Same pair in either order reuses the thread and refreshes the line.
	second, err := messaging.EnsureConversation(s, alex, maya, "hello again")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "hello again", second.LastMessage)

	all, err := messaging.Conversations(s).Get()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestEnsureConversationSeparatePairs(t *testing.T) {
	s := newStore(t)

	a, err := messaging.EnsureConversation(s, maya, alex, "hi alex")
	require.NoError(t, err)
	b, err := messaging.EnsureConversation(s, maya, nina, "hi nina")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)

	mine, err := messaging.ConversationsFor(s, maya.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	theirs, err := messaging.ConversationsFor(s, nina.ID)
	require.NoError(t, err)
	require.Len(t, theirs, 1)
	assert.Equal(t, b.ID, theirs[0].ID)
}

func TestSendAppendsAndPatchesConversation(t *testing.T) {
	s := newStore(t)

	convo, err := messaging.EnsureConversation(s, maya, alex, "booking sent")
	require.NoError(t, err)

	msg, err := messaging.Send(s, convo.ID, maya.ID, "when can you start?")
	require.NoError(t, err)
	assert.Equal(t, maya.ID, msg.SenderID)
	assert.Equal(t, alex.ID, msg.ReceiverID)
	assert.False(t, msg.Read)

	updated, found, err := messaging.Conversations(s).Find(convo.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "when can you start?", updated.LastMessage)
}

func TestSendRejectsOutsiders(t *testing.T) {
	s := newStore(t)

	convo, err := messaging.EnsureConversation(s, maya, alex, "hi")
	require.NoError(t, err)

	_, err = messaging.Send(s, convo.ID, nina.ID, "let me in")
	require.ErrorIs(t, err, messaging.ErrNotParticipant)

	// The rejected send must not leave a message behind.
	msgs, err := messaging.ForConversation(s, convo.ID)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestSendRequiresContent(t *testing.T) {
	s := newStore(t)
	convo, err := messaging.EnsureConversation(s, maya, alex, "hi")
	require.NoError(t, err)

	_, err = messaging.Send(s, convo.ID, maya.ID, "")
	assert.Error(t, err)
}

func TestMessagesForFiltersBySenderOrReceiver(t *testing.T) {
	s := newStore(t)

	ab, err := messaging.EnsureConversation(s, maya, alex, "")
	require.NoError(t, err)
	an, err := messaging.EnsureConversation(s, alex, nina, "")
	require.NoError(t, err)

	_, err = messaging.Send(s, ab.ID, maya.ID, "one")
	require.NoError(t, err)
	_, err = messaging.Send(s, ab.ID, alex.ID, "two")
	require.NoError(t, err)
	_, err = messaging.Send(s, an.ID, nina.ID, "three")
	require.NoError(t, err)

	mayas, err := messaging.MessagesFor(s, maya.ID)
	require.NoError(t, err)
	assert.Len(t, mayas, 2)

	alexs, err := messaging.MessagesFor(s, alex.ID)
	require.NoError(t, err)
	assert.Len(t, alexs, 3)

	ninas, err := messaging.MessagesFor(s, nina.ID)
	require.NoError(t, err)
	assert.Len(t, ninas, 1)
}

func TestMarkConversationReadFlipsOnlyInbound(t *testing.T) {
	s := newStore(t)

	convo, err := messaging.EnsureConversation(s, maya, alex, "")
	require.NoError(t, err)
	_, err = messaging.Send(s, convo.ID, maya.ID, "one")
	require.NoError(t, err)
	_, err = messaging.Send(s, convo.ID, maya.ID, "two")
	require.NoError(t, err)
	_, err = messaging.Send(s, convo.ID, alex.ID, "reply")
	require.NoError(t, err)

	unread, err := messaging.UnreadCount(s, alex.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, unread)

	flipped, err := messaging.MarkConversationRead(s, convo.ID, alex.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, flipped)

	unread, err = messaging.UnreadCount(s, alex.ID)
	require.NoError(t, err)
	assert.Zero(t, unread)

	// Maya's inbound message is untouched.
	unread, err = messaging.UnreadCount(s, maya.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, unread)
}
