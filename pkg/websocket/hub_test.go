package websocket

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStalledClient(hub *Hub) *Client {
	// Zero-capacity buffer so every delivery attempt hits the eviction
	// branch.
	return &Client{
		hub:   hub,
		send:  make(chan []byte),
		rooms: make(map[string]bool),
	}
}

func TestConcurrentPublishEvictsStalledClients(t *testing.T) {
	hub := NewHub()

	const clientCount = 512
	hub.mutex.Lock()
	for i := 0; i < clientCount; i++ {
		client := newStalledClient(hub)
		hub.clients[client] = true
		hub.joinRoom(client, "driver_d-1")
	}
	hub.mutex.Unlock()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.PublishFleetEvent(EventSyncCompleted, "d-1", map[string]interface{}{"synced": 1})
		}()
	}
	wg.Wait()

	hub.mutex.RLock()
	defer hub.mutex.RUnlock()
	assert.Empty(t, hub.clients)
	assert.Empty(t, hub.rooms)
}

func TestUnregisterClientIdempotent(t *testing.T) {
	hub := NewHub()
	client := newStalledClient(hub)

	hub.mutex.Lock()
	hub.clients[client] = true
	hub.joinRoom(client, "driver_d-2")
	hub.mutex.Unlock()

	hub.unregisterClient(client)
	require.NotPanics(t, func() { hub.unregisterClient(client) })

	// The channel is closed exactly once by the first call.
	_, open := <-client.send
	assert.False(t, open)
}

func TestPublishDeliversToResponsiveClient(t *testing.T) {
	hub := NewHub()
	client := &Client{hub: hub, send: make(chan []byte, 4), rooms: make(map[string]bool)}

	hub.mutex.Lock()
	hub.clients[client] = true
	hub.mutex.Unlock()

	hub.PublishFleetEvent(EventAlertDispatched, "", map[string]interface{}{"channel": "sms"})

	require.Len(t, client.send, 1)
	hub.mutex.RLock()
	defer hub.mutex.RUnlock()
	assert.Contains(t, hub.clients, client)
}
