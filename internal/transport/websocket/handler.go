package websocket

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/dropfour/backend/internal/domain"
	"github.com/dropfour/backend/internal/service/bot"
	"github.com/dropfour/backend/internal/service/game"
	"github.com/dropfour/backend/internal/service/matchmaking"
	"github.com/dropfour/backend/pkg/auth"
)

const (
	readDeadline = 60 * time.Second
	pingInterval = 30 * time.Second
)

// Handler owns the WebSocket surface: auth handshake, message
// routing, and the matchmaking listener.
type Handler struct {
	connManager *ConnectionManager
	queue       *matchmaking.Queue
	sessions    *game.Manager
	tokens      *auth.TokenManager
	upgrader    websocket.Upgrader
}

func NewHandler(cm *ConnectionManager, queue *matchmaking.Queue, sessions *game.Manager, tokens *auth.TokenManager, allowedOrigins []string) *Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return &Handler{
		connManager: cm,
		queue:       queue,
		sessions:    sessions,
		tokens:      tokens,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed[origin]
			},
		},
	}
}

// Serve upgrades the request and runs the connection loop.
func (h *Handler) Serve(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] upgrade error: %v", err)
		return
	}
	h.handleConnection(conn)
}

func (h *Handler) handleConnection(conn *websocket.Conn) {
	conn.SetReadDeadline(time.Now().Add(readDeadline))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readDeadline))
		return nil
	})

	// First message must be an authenticated init. Until the socket is
	// registered with the manager nothing else writes to it, so the
	// handshake replies can use the connection directly.
	var init domain.ClientMessage
	if err := conn.ReadJSON(&init); err != nil {
		conn.Close()
		return
	}
	if init.Type != "init" || init.JWT == "" {
		conn.WriteJSON(domain.ErrorMessage{Type: "error", Message: "authentication required"})
		conn.Close()
		return
	}
	claims, err := h.tokens.Validate(init.JWT)
	if err != nil {
		conn.WriteJSON(domain.ErrorMessage{Type: "error", Message: "invalid or expired token"})
		conn.Close()
		return
	}

	userID, username := claims.UserID, claims.Username
	if h.connManager.IsConnected(userID) {
		h.connManager.DisconnectUser(userID, "logged in from another device")
	}
	h.connManager.AddConnection(userID, username, conn)
	log.Printf("[WS] user %d (%s) connected", userID, username)

	// From here on the session and match-listener goroutines may write
	// concurrently, so every write, pings included, goes through the
	// manager's per-connection lock.
	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := h.connManager.Ping(userID); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	defer func() {
		log.Printf("[WS] user %d (%s) disconnected", userID, username)
		h.queue.Remove(userID)
		h.connManager.RemoveConnection(userID)
		if s, ok := h.sessions.SessionByUserID(userID); ok && !s.Game.IsFinished() {
			s.Forfeit(userID, h.connManager)
		}
		conn.Close()
	}()

	for {
		var msg domain.ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		conn.SetReadDeadline(time.Now().Add(readDeadline))
		h.route(userID, username, msg)
	}
}

func (h *Handler) route(userID int64, username string, msg domain.ClientMessage) {
	switch msg.Type {
	case "play_bot":
		h.handlePlayBot(userID, username, msg)
	case "join_queue":
		h.handleJoinQueue(userID, username)
	case "move":
		h.handleMove(userID, msg)
	case "resign":
		h.handleResign(userID)
	default:
		h.connManager.SendMessage(userID, domain.ServerMessage{Type: "error", Message: "unknown message type"})
	}
}

func (h *Handler) handlePlayBot(userID int64, username string, msg domain.ClientMessage) {
	h.abandonCurrentGame(userID)

	difficulty := bot.Difficulty(msg.Difficulty)
	switch difficulty {
	case bot.Easy, bot.Medium, bot.Hard:
	default:
		difficulty = bot.Medium
	}
	h.sessions.CreateBotSession(userID, username, difficulty, h.connManager)
}

func (h *Handler) handleJoinQueue(userID int64, username string) {
	h.abandonCurrentGame(userID)
	h.queue.Add(userID, username)
	h.connManager.SendMessage(userID, domain.ServerMessage{Type: "queue_joined"})
}

func (h *Handler) handleMove(userID int64, msg domain.ClientMessage) {
	s, ok := h.sessions.SessionByUserID(userID)
	if !ok {
		h.connManager.SendMessage(userID, domain.ServerMessage{Type: "error", Message: "no active game"})
		return
	}
	if err := s.HandleMove(userID, msg.Column, h.connManager); err != nil {
		h.connManager.SendMessage(userID, domain.ServerMessage{Type: "invalid_move", Message: err.Error()})
	}
}

func (h *Handler) handleResign(userID int64) {
	if s, ok := h.sessions.SessionByUserID(userID); ok {
		s.Forfeit(userID, h.connManager)
	}
}

func (h *Handler) abandonCurrentGame(userID int64) {
	if s, ok := h.sessions.SessionByUserID(userID); ok && !s.Game.IsFinished() {
		s.Forfeit(userID, h.connManager)
		h.sessions.RemoveSession(s.GameID)
	}
}

// RunMatchListener consumes the matchmaking channel and starts
// sessions. Blocks; run it in its own goroutine.
func (h *Handler) RunMatchListener() {
	for match := range h.queue.Matches {
		if match.BotMatch {
			h.sessions.CreateBotSession(match.Player1ID, match.Player1Username, bot.Medium, h.connManager)
			continue
		}
		h.sessions.CreatePvPSession(
			match.Player1ID, match.Player1Username,
			match.Player2ID, match.Player2Username,
			h.connManager,
		)
	}
}
