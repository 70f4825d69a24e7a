package game

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/dropfour/backend/internal/service/bot"
)

// StatsRepository persists aggregate per-player results.
type StatsRepository interface {
	RecordResult(userID int64, won, drawn bool) error
}

// EventPublisher emits game lifecycle events. *analytics.Producer
// satisfies it; a nil publisher disables analytics.
type EventPublisher interface {
	Publish(ctx context.Context, event string, payload map[string]any)
}

// removeDelay keeps finished sessions queryable briefly so clients
// can fetch the final position before the session disappears.
const removeDelay = 30 * time.Second

// Manager owns every live session and the indexes into them.
type Manager struct {
	sessions   map[string]*Session // gameID → session
	userToGame map[int64]string    // userID → gameID
	mu         sync.RWMutex

	stats    StatsRepository
	bots     *bot.Service
	producer EventPublisher
}

func NewManager(stats StatsRepository, bots *bot.Service, producer EventPublisher) *Manager {
	return &Manager{
		sessions:   make(map[string]*Session),
		userToGame: make(map[int64]string),
		stats:      stats,
		bots:       bots,
		producer:   producer,
	}
}

// CreateBotSession starts a game between a human and the bot at the
// given difficulty. The human always plays first.
func (m *Manager) CreateBotSession(userID int64, username string, difficulty bot.Difficulty, conn ConnectionSender) *Session {
	m.mu.Lock()
	s := newSession(m, userID, username, nil, bot.Name(difficulty), difficulty)
	m.sessions[s.GameID] = s
	m.userToGame[userID] = s.GameID
	m.mu.Unlock()

	log.Printf("[SESSION] created bot game %s: %s vs %s (%s)", s.GameID, username, s.Player2Username, difficulty)
	m.publish("game_started", map[string]any{
		"game_id":    s.GameID,
		"bot_game":   true,
		"difficulty": string(difficulty),
		"player1":    username,
	})
	s.announceStart(conn)
	return s
}

// CreatePvPSession starts a game between two humans.
func (m *Manager) CreatePvPSession(p1ID int64, p1Name string, p2ID int64, p2Name string, conn ConnectionSender) *Session {
	m.mu.Lock()
	s := newSession(m, p1ID, p1Name, &p2ID, p2Name, "")
	m.sessions[s.GameID] = s
	m.userToGame[p1ID] = s.GameID
	m.userToGame[p2ID] = s.GameID
	m.mu.Unlock()

	log.Printf("[SESSION] created match %s: %s vs %s", s.GameID, p1Name, p2Name)
	m.publish("game_started", map[string]any{
		"game_id":  s.GameID,
		"bot_game": false,
		"player1":  p1Name,
		"player2":  p2Name,
	})
	s.announceStart(conn)
	return s
}

func (m *Manager) publish(event string, payload map[string]any) {
	if m.producer == nil {
		return
	}
	m.producer.Publish(context.Background(), event, payload)
}

func (m *Manager) SessionByGameID(gameID string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[gameID]
	return s, ok
}

func (m *Manager) SessionByUserID(userID int64) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	gameID, ok := m.userToGame[userID]
	if !ok {
		return nil, false
	}
	s, ok := m.sessions[gameID]
	return s, ok
}

func (m *Manager) HasActiveGame(userID int64) bool {
	s, ok := m.SessionByUserID(userID)
	return ok && !s.Game.IsFinished()
}

// RemoveSession drops a session and its user indexes immediately.
func (m *Manager) RemoveSession(gameID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[gameID]
	if !ok {
		return
	}
	delete(m.sessions, gameID)
	if m.userToGame[s.Player1ID] == gameID {
		delete(m.userToGame, s.Player1ID)
	}
	if s.Player2ID != nil && m.userToGame[*s.Player2ID] == gameID {
		delete(m.userToGame, *s.Player2ID)
	}
}

func (m *Manager) removeLater(gameID string) {
	time.AfterFunc(removeDelay, func() {
		m.RemoveSession(gameID)
	})
}

// CleanupStale drops unfinished sessions older than maxAge. Run from
// the background worker to reclaim abandoned games.
func (m *Manager) CleanupStale(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	cutoff := time.Now().Add(-maxAge)
	for gameID, s := range m.sessions {
		if s.CreatedAt.After(cutoff) {
			continue
		}
		delete(m.sessions, gameID)
		if m.userToGame[s.Player1ID] == gameID {
			delete(m.userToGame, s.Player1ID)
		}
		if s.Player2ID != nil && m.userToGame[*s.Player2ID] == gameID {
			delete(m.userToGame, *s.Player2ID)
		}
		removed++
	}
	if removed > 0 {
		log.Printf("[CLEANUP] removed %d stale sessions", removed)
	}
	return removed
}
