package websocket

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dropfour/backend/internal/domain"
)

// slowSocket counts writes that overlap in time; gorilla sockets
// panic on exactly that.
type slowSocket struct {
	active   int32
	overlaps int32
	writes   int32
}

func (s *slowSocket) write() error {
	if atomic.AddInt32(&s.active, 1) > 1 {
		atomic.AddInt32(&s.overlaps, 1)
	}
	time.Sleep(time.Millisecond)
	atomic.AddInt32(&s.active, -1)
	atomic.AddInt32(&s.writes, 1)
	return nil
}

func (s *slowSocket) WriteMessage(int, []byte) error { return s.write() }
func (s *slowSocket) WriteJSON(any) error            { return s.write() }
func (s *slowSocket) Close() error                   { return nil }

func TestWritesToOneSocketAreSerialized(t *testing.T) {
	cm := NewConnectionManager()
	sock := &slowSocket{}
	cm.AddConnection(1, "casey", sock)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := cm.SendMessage(1, domain.ServerMessage{Type: "move_made"}); err != nil {
				t.Errorf("send failed: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if err := cm.Ping(1); err != nil {
				t.Errorf("ping failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if n := atomic.LoadInt32(&sock.overlaps); n != 0 {
		t.Fatalf("%d writes overlapped on one socket", n)
	}
	if got := atomic.LoadInt32(&sock.writes); got != 16 {
		t.Fatalf("expected 16 writes, got %d", got)
	}
}

func TestPingUnknownUserFails(t *testing.T) {
	cm := NewConnectionManager()
	if err := cm.Ping(42); err == nil {
		t.Fatalf("expected an error for an unregistered user")
	}
}
