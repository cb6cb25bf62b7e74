package realtime

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"fitplan/internal/models/response_models"
	"fitplan/pkg/logger"
)

const writeTimeout = 10 * time.Second

// Hub tracks open WebSocket connections per user and fans plan events out
// to every session the user has open.
type Hub struct {
	log *logger.Logger

	mu    sync.RWMutex
	conns map[string]map[*websocket.Conn]bool
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		log:   log.With("service", "RealtimeHub"),
		conns: make(map[string]map[*websocket.Conn]bool),
	}
}

func (h *Hub) Register(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[userID] == nil {
		h.conns[userID] = make(map[*websocket.Conn]bool)
	}
	h.conns[userID][conn] = true
}

func (h *Hub) Unregister(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.conns[userID]; ok {
		delete(set, conn)
		if len(set) == 0 {
			delete(h.conns, userID)
		}
	}
	_ = conn.Close()
}

// Deliver sends the event to every live connection of the target user.
// Dead connections are dropped on write failure.
func (h *Hub) Deliver(event response_models.PlanCompletedEvent) {
	h.mu.RLock()
	var targets []*websocket.Conn
	for conn := range h.conns[event.UserID] {
		targets = append(targets, conn)
	}
	h.mu.RUnlock()

	for _, conn := range targets {
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(event); err != nil {
			h.log.Warn("websocket write failed, dropping connection", "user_id", event.UserID, "error", err)
			h.Unregister(event.UserID, conn)
		}
	}
}
