package messaging

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"creatorlane/internal/alerts"
	"creatorlane/internal/store"
)

// ErrNotParticipant means the user is not part of the conversation.
var ErrNotParticipant = errors.New("not a participant in this conversation")

// Messages binds the messages collection.
func Messages(s *store.Store) store.Keyed[Message] {
	return store.OpenKeyed(s, store.KeyMessages, func(m Message) string { return m.ID })
}

// Send appends a message and patches the parent conversation's last-message
// line in one transaction.
func Send(s *store.Store, conversationID, senderID, content string) (Message, error) {
	if content == "" {
		return Message{}, fmt.Errorf("message content is required")
	}

	var msg Message
	err := s.Tx(func(tx *store.Tx) error {
		convos, err := store.TxGet(tx, store.KeyConversations, []Conversation(nil))
		if err != nil {
			return err
		}
		idx := -1
		for i, convo := range convos {
			if convo.ID == conversationID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("conversation %s not found", conversationID)
		}
		if !convos[idx].Has(senderID) {
			return ErrNotParticipant
		}

		now := time.Now().UTC()
		msg = Message{
			ID:             uuid.New().String(),
			ConversationID: conversationID,
			SenderID:       senderID,
			ReceiverID:     convos[idx].Other(senderID).ID,
			Content:        content,
			Timestamp:      now,
			Read:           false,
		}
		if err := store.TxAppend(tx, store.KeyMessages, msg); err != nil {
			return err
		}

		convos[idx].LastMessage = content
		convos[idx].UpdatedAt = now
		return store.TxSet(tx, store.KeyConversations, convos)
	})
	return msg, err
}

// MessagesFor returns exactly the messages where the user appears as sender
// or receiver, in stored order.
func MessagesFor(s *store.Store, userID string) ([]Message, error) {
	return Messages(s).Filter(func(m Message) bool {
		return m.SenderID == userID || m.ReceiverID == userID
	})
}

// ForConversation returns a thread's messages ordered by timestamp.
func ForConversation(s *store.Store, conversationID string) ([]Message, error) {
	msgs, err := Messages(s).Filter(func(m Message) bool { return m.ConversationID == conversationID })
	if err != nil {
		return nil, err
	}
	sort.SliceStable(msgs, func(i, j int) bool { return msgs[i].Timestamp.Before(msgs[j].Timestamp) })
	return msgs, nil
}

// MarkConversationRead flips the read flag on every message addressed to the
// user in the thread. Returns how many were flipped.
func MarkConversationRead(s *store.Store, conversationID, userID string) (int, error) {
	count := 0
	err := Messages(s).Update(func(prev []Message) []Message {
		for i, m := range prev {
			if m.ConversationID == conversationID && m.ReceiverID == userID && !m.Read {
				prev[i].Read = true
				count++
			}
		}
		return prev
	})
	return count, err
}

// UnreadCount counts unread messages addressed to the user across threads.
func UnreadCount(s *store.Store, userID string) (int, error) {
	msgs, err := Messages(s).Filter(func(m Message) bool {
		return m.ReceiverID == userID && !m.Read
	})
	if err != nil {
		return 0, err
	}
	return len(msgs), nil
}

// =========================
// Handlers
// =========================

// ListConversations - the Messages view: current user's threads
func ListConversations(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	convos, err := ConversationsFor(store.Conn, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load conversations"})
	}
	return c.JSON(http.StatusOK, echo.Map{"conversations": convos})
}

// GetConversation - one thread with its messages, oldest first
func GetConversation(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	convoID := c.Param("id")
	convo, found, err := Conversations(store.Conn).Find(convoID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load conversation"})
	}
	if !found {
		// unknown thread falls back to the messages list view
		return c.JSON(http.StatusNotFound, echo.Map{"error": "conversation not found", "redirect": "/messages"})
	}
	if !convo.Has(userID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": ErrNotParticipant.Error()})
	}

	msgs, err := ForConversation(store.Conn, convoID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load messages"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"conversation": convo,
		"messages":     msgs,
		"other":        convo.Other(userID),
	})
}

// SendMessage - append to the thread and notify the receiver
func SendMessage(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	convoID := c.Param("id")
	var body struct {
		Content string `json:"content"`
	}
	if err := c.Bind(&body); err != nil || body.Content == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
	}

	msg, err := Send(store.Conn, convoID, userID, body.Content)
	if err != nil {
		if errors.Is(err, ErrNotParticipant) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": err.Error()})
		}
		if errors.Is(err, store.ErrUnavailable) {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "storage unavailable"})
		}
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	}

	_ = alerts.Notify(store.Conn, msg.ReceiverID, alerts.KindMessage, "New message", msg.Content, msg.ID)

	return c.JSON(http.StatusOK, echo.Map{"message": msg})
}

// MarkRead - reader clears the unread flags in a thread
func MarkRead(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	count, err := MarkConversationRead(store.Conn, c.Param("id"), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update"})
	}
	return c.JSON(http.StatusOK, echo.Map{"read": count})
}
