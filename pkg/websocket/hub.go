package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Hub fans fleet events out to connected dashboard sessions. Clients may
// subscribe to a single driver's room for focused views; everything else
// is broadcast fleet-wide.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	rooms      map[string]map[*Client]bool
	mutex      sync.RWMutex
}

type Message struct {
	Type      string                 `json:"type"`
	DriverID  string                 `json:"driver_id,omitempty"`
	Timestamp int64                  `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

const (
	EventSyncStarted     = "sync_started"
	EventSyncCompleted   = "sync_completed"
	EventSyncFailed      = "sync_failed"
	EventDriverUpdated   = "driver_updated"
	EventAlertDispatched = "alert_dispatched"
)

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]bool),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.clients[client] = true

	welcome := Message{
		Type:      "welcome",
		Timestamp: time.Now().Unix(),
		Data: map[string]interface{}{
			"message": "Connected to fleet event feed",
		},
	}
	h.sendToClient(client, welcome)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)

		for roomID, room := range h.rooms {
			if _, exists := room[client]; exists {
				delete(room, client)
				if len(room) == 0 {
					delete(h.rooms, roomID)
				}
			}
		}
	}
}

func (h *Hub) broadcastMessage(message []byte) {
	var msg Message
	if err := json.Unmarshal(message, &msg); err != nil {
		log.Printf("Error unmarshaling message: %v", err)
		return
	}

	h.sendToAll(msg)
}

func (h *Hub) sendToAll(message Message) {
	data, _ := json.Marshal(message)

	h.mutex.RLock()
	var stalled []*Client
	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			stalled = append(stalled, client)
		}
	}
	h.mutex.RUnlock()

	// Eviction mutates the maps and closes send, so it must happen
	// outside the read lock. unregisterClient is idempotent; a client
	// collected by two concurrent broadcasts is only closed once.
	for _, client := range stalled {
		h.unregisterClient(client)
	}
}

func (h *Hub) sendToRoom(roomID string, message Message) {
	data, _ := json.Marshal(message)

	h.mutex.RLock()
	var stalled []*Client
	for client := range h.rooms[roomID] {
		select {
		case client.send <- data:
		default:
			stalled = append(stalled, client)
		}
	}
	h.mutex.RUnlock()

	for _, client := range stalled {
		h.unregisterClient(client)
	}
}

// sendToClient delivers best-effort to a single client. The caller holds
// the hub lock; a full buffer drops the message and leaves eviction to
// the broadcast paths.
func (h *Hub) sendToClient(client *Client, message Message) {
	data, _ := json.Marshal(message)
	select {
	case client.send <- data:
	default:
	}
}

// PublishFleetEvent broadcasts an event to every connected session and,
// when the event names a driver, to that driver's room as well.
func (h *Hub) PublishFleetEvent(eventType, driverID string, data map[string]interface{}) {
	message := Message{
		Type:      eventType,
		DriverID:  driverID,
		Timestamp: time.Now().Unix(),
		Data:      data,
	}

	h.sendToAll(message)
	if driverID != "" {
		h.sendToRoom("driver_"+driverID, message)
	}
}

func (h *Hub) joinRoom(client *Client, roomID string) {
	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[*Client]bool)
	}
	h.rooms[roomID][client] = true
	client.rooms[roomID] = true
}

func (h *Hub) LeaveRoom(client *Client, roomID string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if room, exists := h.rooms[roomID]; exists {
		delete(room, client)
		delete(client.rooms, roomID)

		if len(room) == 0 {
			delete(h.rooms, roomID)
		}
	}
}
