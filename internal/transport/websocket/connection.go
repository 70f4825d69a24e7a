package websocket

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/dropfour/backend/internal/domain"
)

// socket is the subset of *websocket.Conn the manager writes through.
// Gorilla sockets reject concurrent writers, so every write to a
// registered socket must take the connection's write lock.
type socket interface {
	WriteMessage(messageType int, data []byte) error
	WriteJSON(v any) error
	Close() error
}

type connection struct {
	username string
	conn     socket
	writeMu  sync.Mutex
}

// ConnectionManager tracks one live socket per user and serializes
// writes per connection.
type ConnectionManager struct {
	mu          sync.RWMutex
	connections map[int64]*connection
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{connections: make(map[int64]*connection)}
}

func (cm *ConnectionManager) AddConnection(userID int64, username string, conn socket) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.connections[userID] = &connection{username: username, conn: conn}
}

func (cm *ConnectionManager) RemoveConnection(userID int64) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	delete(cm.connections, userID)
}

func (cm *ConnectionManager) IsConnected(userID int64) bool {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	_, ok := cm.connections[userID]
	return ok
}

// DisconnectUser closes an existing socket, e.g. when the same user
// connects from a second device.
func (cm *ConnectionManager) DisconnectUser(userID int64, reason string) {
	cm.mu.Lock()
	c, ok := cm.connections[userID]
	if ok {
		delete(cm.connections, userID)
	}
	cm.mu.Unlock()

	if ok {
		c.writeMu.Lock()
		c.conn.WriteJSON(domain.ErrorMessage{Type: "disconnected", Message: reason})
		c.writeMu.Unlock()
		c.conn.Close()
	}
}

// SendMessage delivers one server message to a connected user.
func (cm *ConnectionManager) SendMessage(userID int64, message domain.ServerMessage) error {
	cm.mu.RLock()
	c, ok := cm.connections[userID]
	cm.mu.RUnlock()
	if !ok {
		return fmt.Errorf("user %d is not connected", userID)
	}

	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Ping sends a keepalive control frame through the connection's write
// lock.
func (cm *ConnectionManager) Ping(userID int64) error {
	cm.mu.RLock()
	c, ok := cm.connections[userID]
	cm.mu.RUnlock()
	if !ok {
		return fmt.Errorf("user %d is not connected", userID)
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.PingMessage, nil)
}
