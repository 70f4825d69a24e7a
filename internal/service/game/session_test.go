package game

import (
	"context"
	"sync"
	"testing"

	"github.com/dropfour/backend/internal/domain"
	"github.com/dropfour/backend/internal/service/bot"
)

type fakeStats struct {
	mu      sync.Mutex
	results []struct {
		UserID int64
		Won    bool
		Drawn  bool
	}
}

func (f *fakeStats) RecordResult(userID int64, won, drawn bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results = append(f.results, struct {
		UserID int64
		Won    bool
		Drawn  bool
	}{userID, won, drawn})
	return nil
}

type fakeConn struct {
	mu       sync.Mutex
	messages map[int64][]domain.ServerMessage
}

func newFakeConn() *fakeConn {
	return &fakeConn{messages: make(map[int64][]domain.ServerMessage)}
}

func (f *fakeConn) SendMessage(userID int64, msg domain.ServerMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages[userID] = append(f.messages[userID], msg)
	return nil
}

func (f *fakeConn) lastType(userID int64) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	msgs := f.messages[userID]
	if len(msgs) == 0 {
		return ""
	}
	return msgs[len(msgs)-1].Type
}

type fakeProducer struct {
	mu     sync.Mutex
	events map[string]map[string]any
}

func newFakeProducer() *fakeProducer {
	return &fakeProducer{events: make(map[string]map[string]any)}
}

func (f *fakeProducer) Publish(ctx context.Context, event string, payload map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events[event] = payload
}

func (f *fakeProducer) payload(event string) (map[string]any, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.events[event]
	return p, ok
}

func TestBotSessionPlaysEngineReply(t *testing.T) {
	m := NewManager(&fakeStats{}, bot.NewService(3), nil)
	conn := newFakeConn()

	s := m.CreateBotSession(1, "casey", bot.Hard, conn)
	if conn.lastType(1) != "game_start" {
		t.Fatalf("expected game_start, got %q", conn.lastType(1))
	}

	if err := s.HandleMove(1, 3, conn); err != nil {
		t.Fatalf("move failed: %v", err)
	}

	// Human move plus engine reply should both have been broadcast.
	if got := len(conn.messages[1]); got != 3 {
		t.Fatalf("expected 3 messages (start + 2 moves), got %d", got)
	}
	if s.Game.MoveCount != 2 {
		t.Fatalf("expected 2 moves on the board, got %d", s.Game.MoveCount)
	}
	if s.Game.CurrentPlayer != domain.Player1 {
		t.Fatalf("turn should be back with the human")
	}
}

func TestSessionPublishesLifecycleEvents(t *testing.T) {
	producer := newFakeProducer()
	m := NewManager(&fakeStats{}, bot.NewService(3), producer)
	conn := newFakeConn()

	s := m.CreateBotSession(1, "casey", bot.Hard, conn)
	if _, ok := producer.payload("game_started"); !ok {
		t.Fatalf("no game_started event published")
	}

	if err := s.HandleMove(1, 3, conn); err != nil {
		t.Fatalf("move failed: %v", err)
	}
	move, ok := producer.payload("engine_move")
	if !ok {
		t.Fatalf("no engine_move event published")
	}
	if _, ok := move["score"]; !ok {
		t.Fatalf("engine_move payload missing the decision score: %v", move)
	}
	if _, ok := move["latency_ms"]; !ok {
		t.Fatalf("engine_move payload missing latency: %v", move)
	}

	s.Forfeit(1, conn)
	if _, ok := producer.payload("game_finished"); !ok {
		t.Fatalf("no game_finished event published")
	}
}

func TestSessionRejectsOutOfTurnMove(t *testing.T) {
	m := NewManager(&fakeStats{}, bot.NewService(3), nil)
	conn := newFakeConn()

	s := m.CreatePvPSession(1, "casey", 2, "jordan", conn)
	if err := s.HandleMove(2, 3, conn); err != domain.ErrNotYourTurn {
		t.Fatalf("expected ErrNotYourTurn, got %v", err)
	}
	if err := s.HandleMove(99, 3, conn); err != domain.ErrIllegalState {
		t.Fatalf("expected ErrIllegalState for a stranger, got %v", err)
	}
}

func TestPvPWinRecordsStats(t *testing.T) {
	stats := &fakeStats{}
	m := NewManager(stats, bot.NewService(3), nil)
	conn := newFakeConn()

	s := m.CreatePvPSession(1, "casey", 2, "jordan", conn)

	// Player1 builds a vertical four on column 0.
	seq := []struct {
		user int64
		col  int
	}{{1, 0}, {2, 6}, {1, 0}, {2, 6}, {1, 0}, {2, 5}, {1, 0}}
	for _, mv := range seq {
		if err := s.HandleMove(mv.user, mv.col, conn); err != nil {
			t.Fatalf("move %+v failed: %v", mv, err)
		}
	}

	if conn.lastType(1) != "game_over" || conn.lastType(2) != "game_over" {
		t.Fatalf("both players should see game_over")
	}
	if len(stats.results) != 2 {
		t.Fatalf("expected 2 stat records, got %d", len(stats.results))
	}
	for _, r := range stats.results {
		if r.UserID == 1 && !r.Won {
			t.Fatalf("winner not recorded as won")
		}
		if r.UserID == 2 && r.Won {
			t.Fatalf("loser recorded as won")
		}
	}
}

func TestForfeitAwardsWinToOpponent(t *testing.T) {
	stats := &fakeStats{}
	m := NewManager(stats, bot.NewService(3), nil)
	conn := newFakeConn()

	s := m.CreatePvPSession(1, "casey", 2, "jordan", conn)
	s.Forfeit(1, conn)

	if !s.Game.IsFinished() || s.Game.Winner != domain.Player2 {
		t.Fatalf("expected Player2 to win by forfeit, got %+v", s.Game.Result())
	}
	if s.Reason != "forfeit" {
		t.Fatalf("expected forfeit reason, got %q", s.Reason)
	}
}

func TestManagerIndexes(t *testing.T) {
	m := NewManager(&fakeStats{}, bot.NewService(3), nil)
	conn := newFakeConn()

	s := m.CreateBotSession(7, "casey", bot.Easy, conn)
	if !m.HasActiveGame(7) {
		t.Fatalf("expected active game for user 7")
	}
	if got, ok := m.SessionByGameID(s.GameID); !ok || got != s {
		t.Fatalf("lookup by game ID failed")
	}
	if got, ok := m.SessionByUserID(7); !ok || got != s {
		t.Fatalf("lookup by user ID failed")
	}

	m.RemoveSession(s.GameID)
	if m.HasActiveGame(7) {
		t.Fatalf("session should be gone after removal")
	}
}
