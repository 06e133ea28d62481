package websocket

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/fortuna/gridiron/internal/models"
)

// Event is one update pushed to connected dashboard clients
type Event struct {
	Type      string      `json:"type"`
	Key       string      `json:"key,omitempty"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Event types pushed over the update stream
const (
	EventCacheRefresh = "cache_refresh"
	EventPredictions  = "predictions"
)

// Hub maintains the set of active clients and fans events out to them.
// It is push-only: clients receive updates, their inbound frames are
// discarded.
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
}

// NewHub creates a hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
	}
}

// Run processes register/unregister/broadcast events until the process
// exits. Start it in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			log.Printf("[ws] client connected (%d total)", h.ClientCount())

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			log.Printf("[ws] client disconnected (%d total)", h.ClientCount())

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow consumer, drop the frame rather than block the hub
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Publish serializes an event and queues it for all clients
func (h *Hub) Publish(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[ws] marshaling event: %v", err)
		return
	}

	select {
	case h.broadcast <- data:
	default:
		log.Printf("[ws] broadcast queue full, dropping %s event", event.Type)
	}
}

// PublishPredictions pushes the batch summary of a freshly scored week
// slate. Satisfies the prediction service's event publisher.
func (h *Hub) PublishPredictions(year, week int, summary models.PredictionSummary) {
	h.Publish(Event{
		Type:    EventPredictions,
		Key:     fmt.Sprintf("games:%d:%d", year, week),
		Payload: summary,
	})
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
