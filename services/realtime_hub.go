package services

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type WSClient struct {
	UserID uint
	Conn   *websocket.Conn
}

// RealtimeEvent is the envelope every websocket message uses. Kind is
// "reminder.due" for scan-loop notifications.
type RealtimeEvent struct {
	Kind    string    `json:"kind"`
	SentAt  time.Time `json:"sent_at"`
	Payload any       `json:"payload"`
}

// RealtimeHub fans reminder events out to a user's open websocket
// connections. A user with no open connection simply misses the event;
// the reminder itself stays queryable over the REST surface.
type RealtimeHub struct {
	mu      sync.RWMutex
	clients map[uint]map[*WSClient]struct{}
}

func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{clients: make(map[uint]map[*WSClient]struct{})}
}

func (h *RealtimeHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.UserID] == nil {
		h.clients[c.UserID] = make(map[*WSClient]struct{})
	}
	h.clients[c.UserID][c] = struct{}{}
	h.mu.Unlock()
}

func (h *RealtimeHub) Unregister(c *WSClient) {
	h.mu.Lock()
	if set := h.clients[c.UserID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.UserID)
		}
	}
	h.mu.Unlock()
	_ = c.Conn.Close()
}

// Broadcast sends one event to every open connection of a user. Write
// errors are ignored here; the connection's read loop notices the dead
// peer and unregisters it.
func (h *RealtimeHub) Broadcast(userID uint, kind string, payload any) {
	msg, err := json.Marshal(RealtimeEvent{Kind: kind, SentAt: time.Now(), Payload: payload})
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[userID] {
		_ = c.Conn.WriteMessage(websocket.TextMessage, msg)
	}
}
