package messaging

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"creatorlane/internal/store"
)

type wsEvent struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type hub struct {
	conversationID string
	clients        map[*websocket.Conn]bool
	mu             sync.RWMutex
}

var (
	hubsMu sync.RWMutex
	hubs   = make(map[string]*hub)
)

func getHub(conversationID string) *hub {
	hubsMu.Lock()
	defer hubsMu.Unlock()
	if h, ok := hubs[conversationID]; ok {
		return h
	}
	h := &hub{conversationID: conversationID, clients: make(map[*websocket.Conn]bool)}
	hubs[conversationID] = h
	return h
}

func (h *hub) broadcast(evt wsEvent) {
	payload, _ := json.Marshal(evt)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		_ = c.WriteMessage(websocket.TextMessage, payload)
	}
}

func (h *hub) register(c *websocket.Conn) {
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()
}

func (h *hub) unregister(c *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// StartRelay watches the messages collection and pushes every newly
// committed message to the websocket clients of its thread. Returns a stop
// function. The relay is the only consumer that needs cross-view change
// propagation, so it rides the store's subscription channel instead of
// being called from the send path.
func StartRelay(s *store.Store) func() {
	events, cancel := s.Subscribe(store.KeyMessages)
	done := make(chan struct{})
	lastSeen := time.Now().UTC()

	go func() {
		for {
			select {
			case <-done:
				return
			case _, ok := <-events:
				if !ok {
					return
				}
				msgs, err := Messages(s).Filter(func(m Message) bool {
					return m.Timestamp.After(lastSeen)
				})
				if err != nil {
					log.Warn().Err(err).Msg("relay read failed")
					continue
				}
				for _, m := range msgs {
					if m.Timestamp.After(lastSeen) {
						lastSeen = m.Timestamp
					}
					getHub(m.ConversationID).broadcast(wsEvent{Type: "message:new", Data: m})
				}
			}
		}
	}()

	return func() {
		cancel()
		close(done)
	}
}

// ConversationWS - websocket for realtime updates on a thread
func ConversationWS(c echo.Context) error {
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
		return c.JSON(http.StatusNotFound, echo.Map{"error": "conversation not found"})
	}
	if !convo.Has(userID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": ErrNotParticipant.Error()})
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	h := getHub(convoID)
	h.register(conn)
	defer func() {
		h.unregister(conn)
		_ = conn.Close()
	}()

	// clients only listen; the read loop just detects disconnects
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return nil
		}
	}
}
