package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/gomoku-agent/internal/domain"
)

// ConnectionManager handles active WebSocket connections thread-safely
type ConnectionManager struct {
	connections map[string]*websocket.Conn

	// writeMu ensures only one goroutine writes to a specific socket at a time.
	// conn.WriteJSON is not safe for concurrent use and the agent replies
	// from its own goroutine.
	writeMu map[string]*sync.Mutex

	mu sync.RWMutex // Protects the maps themselves
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[string]*websocket.Conn),
		writeMu:     make(map[string]*sync.Mutex),
	}
}

// AddConnection registers a new connection and initializes its write lock
func (cm *ConnectionManager) AddConnection(clientID string, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if oldConn, exists := cm.connections[clientID]; exists {
		oldConn.Close()
	}

	cm.connections[clientID] = conn
	cm.writeMu[clientID] = &sync.Mutex{}
}

// RemoveConnection removes a client's connection and cleans up locks
func (cm *ConnectionManager) RemoveConnection(clientID string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if conn, exists := cm.connections[clientID]; exists {
		conn.Close()
		delete(cm.connections, clientID)
		delete(cm.writeMu, clientID)
	}
}

func (cm *ConnectionManager) Count() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.connections)
}

// SendMessage sends a JSON message to a specific client
func (cm *ConnectionManager) SendMessage(clientID string, message domain.ServerMessage) error {
	return cm.send(clientID, message)
}

func (cm *ConnectionManager) SendError(clientID string, text string) error {
	return cm.send(clientID, domain.ErrorMessage{Type: "error", Message: text})
}

func (cm *ConnectionManager) send(clientID string, v any) error {
	cm.mu.RLock()
	conn, exists := cm.connections[clientID]
	mu, muExists := cm.writeMu[clientID]
	cm.mu.RUnlock()

	if !exists || !muExists {
		return nil // Client disconnected, ignore
	}

	mu.Lock()
	defer mu.Unlock()

	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return conn.WriteJSON(v)
}

// Ping writes a keep-alive ping under the client's write lock.
func (cm *ConnectionManager) Ping(clientID string) error {
	cm.mu.RLock()
	conn, exists := cm.connections[clientID]
	mu, muExists := cm.writeMu[clientID]
	cm.mu.RUnlock()

	if !exists || !muExists {
		return websocket.ErrCloseSent
	}

	mu.Lock()
	defer mu.Unlock()
	return conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(10*time.Second))
}
