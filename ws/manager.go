package ws

import (
	"context"
	"sync"

	"memberhub_backend/internal/logger"
)

// WebSocketManager tracks live connections per user. A user may hold several
// connections (tabs, devices); a push reaches all of them.
type WebSocketManager struct {
	clients    map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
}

func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run serialises registration until ctx is cancelled, then closes every
// connection.
func (manager *WebSocketManager) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(manager.done)
			manager.closeAll()
			return

		case client := <-manager.register:
			manager.mu.Lock()
			if manager.clients[client.UserID] == nil {
				manager.clients[client.UserID] = make(map[*Client]bool)
			}
			manager.clients[client.UserID][client] = true
			manager.mu.Unlock()
			logger.Debug("websocket client registered", "user_id", client.UserID, "total", manager.GetClientCount())

		case client := <-manager.unregister:
			manager.remove(client)
		}
	}
}

func (manager *WebSocketManager) remove(client *Client) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	conns, ok := manager.clients[client.UserID]
	if !ok || !conns[client] {
		return
	}
	client.closed = true
	close(client.Send)
	delete(conns, client)
	if len(conns) == 0 {
		delete(manager.clients, client.UserID)
	}
	logger.Debug("websocket client unregistered", "user_id", client.UserID)
}

// drop asks Run to forget client; a no-op once Run has returned
func (manager *WebSocketManager) drop(client *Client) {
	select {
	case manager.unregister <- client:
	case <-manager.done:
	}
}

func (manager *WebSocketManager) closeAll() {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	for userID, conns := range manager.clients {
		for client := range conns {
			client.closed = true
			close(client.Send)
		}
		delete(manager.clients, userID)
	}
}

// PushToUser delivers payload to every connection of userID. A connection
// whose buffer is full is dropped.
func (manager *WebSocketManager) PushToUser(userID string, payload any) {
	manager.mu.RLock()
	defer manager.mu.RUnlock()

	for client := range manager.clients[userID] {
		select {
		case client.Send <- payload:
		default:
			logger.Warn("websocket send buffer full, dropping client", "user_id", userID)
			go manager.drop(client)
		}
	}
}

// reply queues payload for one client unless the manager already closed its
// Send channel. A full buffer drops the payload.
func (manager *WebSocketManager) reply(client *Client, payload any) {
	manager.mu.RLock()
	defer manager.mu.RUnlock()

	if client.closed {
		return
	}
	select {
	case client.Send <- payload:
	default:
	}
}

// GetClientCount returns the number of open connections
func (manager *WebSocketManager) GetClientCount() int {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	total := 0
	for _, conns := range manager.clients {
		total += len(conns)
	}
	return total
}

func (manager *WebSocketManager) IsUserConnected(userID string) bool {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return len(manager.clients[userID]) > 0
}
