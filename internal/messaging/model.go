package messaging

import "time"

// Participant is the identity slice of a user embedded in a conversation.
type Participant struct {
	ID     string
	Name   string
	Avatar string
}

// Conversation is a two-party thread. The name/avatar slices are parallel
// arrays indexed like Participants, the persisted layout the views expect.
type Conversation struct {
	ID                 string    `json:"id"`
	Participants       []string  `json:"participants"`
	ParticipantNames   []string  `json:"participantNames"`
	ParticipantAvatars []string  `json:"participantAvatars"`
	LastMessage        string    `json:"lastMessage"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Has reports whether the user participates in the conversation.
func (c Conversation) Has(userID string) bool {
	for _, id := range c.Participants {
		if id == userID {
			return true
		}
	}
	return false
}

// Other returns the counterparty of userID.
func (c Conversation) Other(userID string) Participant {
	for i, id := range c.Participants {
		if id != userID {
			p := Participant{ID: id}
			if i < len(c.ParticipantNames) {
				p.Name = c.ParticipantNames[i]
			}
			if i < len(c.ParticipantAvatars) {
				p.Avatar = c.ParticipantAvatars[i]
			}
			return p
		}
	}
	return Participant{}
}

// Message records are append-only; only the read flag ever changes.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	SenderID       string    `json:"senderId"`
	ReceiverID     string    `json:"receiverId"`
	Content        string    `json:"content"`
	Timestamp      time.Time `json:"timestamp"`
	Read           bool      `json:"read"`
}
