package game

import (
	"log"
	"sync"
	"time"

	"github.com/dropfour/backend/internal/domain"
	"github.com/dropfour/backend/internal/service/bot"
	"github.com/dropfour/backend/pkg/uid"
)

// ConnectionSender delivers server messages to connected users.
type ConnectionSender interface {
	SendMessage(userID int64, message domain.ServerMessage) error
}

// Session is one live game: human vs human, or human vs bot when
// Player2ID is nil.
type Session struct {
	GameID          string
	Player1ID       int64
	Player1Username string
	Player2ID       *int64 // nil for a bot opponent
	Player2Username string
	Difficulty      bot.Difficulty
	Game            *domain.Game
	CreatedAt       time.Time
	FinishedAt      time.Time
	Reason          string

	mu      sync.Mutex
	manager *Manager
}

func newSession(m *Manager, p1ID int64, p1Name string, p2ID *int64, p2Name string, difficulty bot.Difficulty) *Session {
	return &Session{
		GameID:          uid.GameID(),
		Player1ID:       p1ID,
		Player1Username: p1Name,
		Player2ID:       p2ID,
		Player2Username: p2Name,
		Difficulty:      difficulty,
		Game:            domain.NewGame(),
		CreatedAt:       time.Now(),
		manager:         m,
	}
}

func (s *Session) IsBotGame() bool {
	return s.Player2ID == nil
}

func (s *Session) playerID(userID int64) (domain.PlayerID, bool) {
	if userID == s.Player1ID {
		return domain.Player1, true
	}
	if s.Player2ID != nil && userID == *s.Player2ID {
		return domain.Player2, true
	}
	return domain.Empty, false
}

func (s *Session) username(p domain.PlayerID) string {
	if p == domain.Player1 {
		return s.Player1Username
	}
	return s.Player2Username
}

func (s *Session) announceStart(conn ConnectionSender) {
	s.send(conn, domain.Player1, domain.ServerMessage{
		Type:        "game_start",
		GameID:      s.GameID,
		Opponent:    s.Player2Username,
		YourPlayer:  int(domain.Player1),
		CurrentTurn: int(s.Game.CurrentPlayer),
	})
	if !s.IsBotGame() {
		s.send(conn, domain.Player2, domain.ServerMessage{
			Type:        "game_start",
			GameID:      s.GameID,
			Opponent:    s.Player1Username,
			YourPlayer:  int(domain.Player2),
			CurrentTurn: int(s.Game.CurrentPlayer),
		})
	}
}

// HandleMove applies a human move and, in bot games, the engine's
// reply. All session mutation happens under the lock.
func (s *Session) HandleMove(userID int64, column int, conn ConnectionSender) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, ok := s.playerID(userID)
	if !ok {
		return domain.ErrIllegalState
	}

	row, err := s.Game.MakeMove(player, column)
	if err != nil {
		return err
	}
	s.broadcastMove(conn, player, column, row)

	if s.Game.IsFinished() {
		s.finish(conn, "")
		return nil
	}

	if s.IsBotGame() && s.Game.CurrentPlayer == domain.Player2 {
		if err := s.makeBotMove(conn); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) makeBotMove(conn ConnectionSender) error {
	started := time.Now()
	col, score, err := s.manager.bots.ChooseColumn(s.Game.Board, domain.Player2, s.Difficulty)
	if err != nil {
		return err
	}
	elapsed := time.Since(started)

	row, err := s.Game.MakeMove(domain.Player2, col)
	if err != nil {
		return err
	}
	s.broadcastMove(conn, domain.Player2, col, row)

	s.manager.publish("engine_move", map[string]any{
		"game_id":    s.GameID,
		"difficulty": string(s.Difficulty),
		"column":     col,
		"score":      score,
		"latency_ms": elapsed.Milliseconds(),
		"move_count": s.Game.MoveCount,
	})

	if s.Game.IsFinished() {
		s.finish(conn, "")
	}
	return nil
}

func (s *Session) broadcastMove(conn ConnectionSender, player domain.PlayerID, column, row int) {
	msg := domain.ServerMessage{
		Type:     "move_made",
		GameID:   s.GameID,
		Player:   int(player),
		Column:   &column,
		Row:      &row,
		Board:    s.Game.Board.Grid(),
		NextTurn: int(s.Game.CurrentPlayer),
	}
	s.send(conn, domain.Player1, msg)
	s.send(conn, domain.Player2, msg)
}

// Forfeit ends the game because userID abandoned it.
func (s *Session) Forfeit(userID int64, conn ConnectionSender) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Game.IsFinished() {
		return
	}
	player, ok := s.playerID(userID)
	if !ok {
		return
	}
	s.Game.Status = domain.StatusWon
	s.Game.Winner = player.Opponent()
	s.finish(conn, "forfeit")
}

// finish records the result, notifies both sides and schedules the
// session for removal. Caller holds the lock.
func (s *Session) finish(conn ConnectionSender, reason string) {
	s.FinishedAt = time.Now()
	s.Reason = reason

	result := s.Game.Result()
	msg := domain.ServerMessage{
		Type:   "game_over",
		GameID: s.GameID,
		Winner: int(result.Winner),
		Board:  s.Game.Board.Grid(),
		Reason: reason,
	}
	s.send(conn, domain.Player1, msg)
	s.send(conn, domain.Player2, msg)

	s.recordStats(result)

	s.manager.publish("game_finished", map[string]any{
		"game_id":    s.GameID,
		"winner":     int(result.Winner),
		"status":     string(result.Status),
		"reason":     reason,
		"moves":      s.Game.MoveCount,
		"duration_s": int(s.FinishedAt.Sub(s.CreatedAt).Seconds()),
		"bot_game":   s.IsBotGame(),
	})

	s.manager.removeLater(s.GameID)
}

func (s *Session) recordStats(result domain.GameResult) {
	drawn := result.Status == domain.StatusDraw

	record := func(userID int64, p domain.PlayerID) {
		won := result.Status == domain.StatusWon && result.Winner == p
		if err := s.manager.stats.RecordResult(userID, won, drawn); err != nil {
			log.Printf("[SESSION] failed to record result for user %d: %v", userID, err)
		}
	}
	record(s.Player1ID, domain.Player1)
	if s.Player2ID != nil {
		record(*s.Player2ID, domain.Player2)
	}
}

func (s *Session) send(conn ConnectionSender, p domain.PlayerID, msg domain.ServerMessage) {
	if p == domain.Player2 && s.IsBotGame() {
		return
	}
	userID := s.Player1ID
	if p == domain.Player2 {
		userID = *s.Player2ID
	}
	if err := conn.SendMessage(userID, msg); err != nil {
		log.Printf("[SESSION] send to %s failed: %v", s.username(p), err)
	}
}
