package feedback

import (
	"encoding/json"
	"sync"
)

// WSEvent is a real-time event pushed to clients subscribed to a record's
// thread.
type WSEvent struct {
	Type         string      `json:"type"`
	RepositoryID string      `json:"repository_id"`
	Payload      interface{} `json:"payload,omitempty"`
}

const EventNewFeedback = "new_feedback"

// connection represents one WebSocket client subscribed to a single record.
type connection struct {
	userID   int64
	recordID string
	send     chan []byte
}

// Hub tracks live thread subscriptions, keyed by record id.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[*connection]bool
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[*connection]bool)}
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[c.recordID] == nil {
		h.subs[c.recordID] = make(map[*connection]bool)
	}
	h.subs[c.recordID][c] = true
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.subs[c.recordID]; ok && conns[c] {
		delete(conns, c)
		close(c.send)
		if len(conns) == 0 {
			delete(h.subs, c.recordID)
		}
	}
}

// BroadcastMessage pushes a freshly appended message to every client watching
// the record's thread.
func (h *Hub) BroadcastMessage(recordID string, m *Message) {
	data, err := json.Marshal(&WSEvent{
		Type:         EventNewFeedback,
		RepositoryID: recordID,
		Payload:      m,
	})
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.subs[recordID] {
		if c.userID == m.AuthorID {
			// the author already has the message from the POST response
			continue
		}
		select {
		case c.send <- data:
		default:
			// client too slow, skip
		}
	}
}
