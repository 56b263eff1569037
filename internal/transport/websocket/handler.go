package websocket

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/iamasit07/gomoku-agent/internal/domain"
	"github.com/iamasit07/gomoku-agent/internal/service/game"
	"github.com/iamasit07/gomoku-agent/pkg/uid"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// Handler manages WebSocket dependencies
type Handler struct {
	ConnManager    *ConnectionManager
	SessionManager *game.SessionManager
	Upgrader       websocket.Upgrader
}

// NewHandler creates a new WebSocket handler with dependencies
func NewHandler(cm *ConnectionManager, sm *game.SessionManager, allowedOrigins []string) *Handler {
	return &Handler{
		ConnManager:    cm,
		SessionManager: sm,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				for _, allowed := range allowedOrigins {
					if allowed == origin {
						return true
					}
				}
				log.Printf("[WS] Rejected origin %s", origin)
				return false
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleWebSocket upgrades the connection and runs one play session
func (h *Handler) HandleWebSocket(c *gin.Context) {
	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	h.handleConnection(conn)
}

// handleConnection manages the lifecycle of a single WebSocket connection
func (h *Handler) handleConnection(conn *websocket.Conn) {
	clientID := uid.GenerateClientID()
	h.ConnManager.AddConnection(clientID, conn)
	log.Printf("[WS] Client %s connected", clientID)

	// Set read deadline to detect stale connections
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := h.ConnManager.Ping(clientID); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	defer func() {
		close(done)
		log.Printf("[WS] Connection closed for client %s", clientID)
		if gs, exists := h.SessionManager.GetSessionByClientID(clientID); exists {
			gs.HandleDisconnect()
		}
		h.ConnManager.RemoveConnection(clientID)
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] Client %s disconnected unexpectedly: %v", clientID, err)
			}
			return
		}

		var msg domain.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[WS] Invalid message format: %v", err)
			h.ConnManager.SendError(clientID, "Invalid message format")
			continue
		}

		if err := h.processMessage(clientID, msg); err != nil {
			h.ConnManager.SendError(clientID, err.Error())
		}
	}
}

func (h *Handler) processMessage(clientID string, msg domain.ClientMessage) error {
	switch msg.Type {
	case "start":
		side := msg.Player
		if side == "" {
			side = "X"
		}
		player, err := domain.ParsePlayer(side)
		if err != nil {
			return err
		}
		_, err = h.SessionManager.CreateSession(clientID, player, msg.Difficulty)
		return err

	case "move":
		if msg.Row == nil || msg.Col == nil {
			return errors.New("move needs row and col")
		}
		gs, exists := h.SessionManager.GetSessionByClientID(clientID)
		if !exists {
			return errors.New("no active game, send start first")
		}
		return gs.HandleMove(clientID, domain.Move{Row: *msg.Row, Col: *msg.Col})

	case "leave":
		if gs, exists := h.SessionManager.GetSessionByClientID(clientID); exists {
			gs.HandleDisconnect()
		}
		return nil

	default:
		log.Printf("[WS] Unknown message type from %s: %s", clientID, msg.Type)
		return errors.New("unknown message type")
	}
}
