package websocket

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/IdoSagiv/connect-four/internal/service/match"
)

const (
	MessageSnapshot      = "snapshot"
	MessageRoundStarted  = "round_started"
	MessageMoveMade      = "move_made"
	MessageRoundFinished = "round_finished"
)

// Message is the envelope pushed to spectators.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub fans match events out to spectators and remembers the latest snapshot
// so late joiners see the current board.
type Hub struct {
	mu      sync.RWMutex
	clients map[int64]*Client
	nextID  int64
	latest  *match.Snapshot
}

func NewHub() *Hub {
	return &Hub{clients: make(map[int64]*Client)}
}

func (h *Hub) RoundStarted(s match.Snapshot) {
	h.publish(MessageRoundStarted, s, s)
}

func (h *Hub) MoveMade(s match.Snapshot) {
	h.publish(MessageMoveMade, s, s)
}

func (h *Hub) RoundFinished(r match.Result) {
	h.publish(MessageRoundFinished, r.Snapshot, r)
}

// Latest returns the most recent snapshot, if a round has started.
func (h *Hub) Latest() (match.Snapshot, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.latest == nil {
		return match.Snapshot{}, false
	}
	return *h.latest, true
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) publish(msgType string, snap match.Snapshot, data interface{}) {
	payload, err := json.Marshal(Message{Type: msgType, Data: data})
	if err != nil {
		log.Printf("[WS] Failed to encode %s: %v", msgType, err)
		return
	}

	h.mu.Lock()
	h.latest = &snap
	clients := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		if !c.enqueue(payload) {
			log.Printf("[WS] Dropping %s for spectator %d", msgType, c.id)
		}
	}
}

// register adds c and queues the current snapshot for it.
func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c.id] = c
	latest := h.latest
	h.mu.Unlock()

	if latest != nil {
		if payload, err := json.Marshal(Message{Type: MessageSnapshot, Data: latest}); err == nil {
			c.enqueue(payload)
		}
	}
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if current, ok := h.clients[c.id]; ok && current == c {
		delete(h.clients, c.id)
	}
	h.mu.Unlock()
	c.close()
}

func (h *Hub) newID() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	return h.nextID
}

// Close disconnects every spectator.
func (h *Hub) Close() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[int64]*Client)
	h.mu.Unlock()

	for _, c := range clients {
		c.close()
	}
}
