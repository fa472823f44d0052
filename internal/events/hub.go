package events

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"cardvault/pkg/models"
)

// CardEvent is pushed to connected browsers whenever the collection
// changes. Type is one of "card.created", "card.updated", "card.deleted".
type CardEvent struct {
	Type       string    `json:"type"`
	CardID     int64     `json:"card_id"`
	PlayerName string    `json:"player_name,omitempty"`
	At         time.Time `json:"at"`
}

func NewEvent(typ string, card models.Card) CardEvent {
	return CardEvent{
		Type:       typ,
		CardID:     card.ID,
		PlayerName: card.PlayerName,
		At:         time.Now().UTC(),
	}
}

// Hub fans card events out to websocket clients.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]struct{})}
}

func (h *Hub) Add(ws *websocket.Conn) {
	h.mu.Lock()
	h.clients[ws] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Remove(ws *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, ws)
	h.mu.Unlock()
	_ = ws.Close()
}

func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast sends the event to every client, dropping connections whose
// writes fail.
func (h *Hub) Broadcast(ev CardEvent) {
	b, err := json.Marshal(ev)
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for ws := range h.clients {
		if err := ws.WriteMessage(websocket.TextMessage, b); err != nil {
			_ = ws.Close()
			delete(h.clients, ws)
		}
	}
}
