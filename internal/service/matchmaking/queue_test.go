package matchmaking

import (
	"testing"
	"time"
)

func TestTwoPlayersAreMatched(t *testing.T) {
	q := NewQueue(time.Minute)
	q.Add(1, "casey")
	q.Add(2, "jordan")

	select {
	case m := <-q.Matches:
		if m.BotMatch {
			t.Fatalf("expected a human match, got a bot match")
		}
		if m.Player1ID != 1 || m.Player2ID != 2 {
			t.Fatalf("unexpected pairing: %+v", m)
		}
	case <-time.After(time.Second):
		t.Fatalf("no match produced")
	}

	if q.Waiting(1) || q.Waiting(2) {
		t.Fatalf("matched players should leave the queue")
	}
}

func TestLonePlayerFallsBackToBot(t *testing.T) {
	q := NewQueue(20 * time.Millisecond)
	q.Add(1, "casey")

	select {
	case m := <-q.Matches:
		if !m.BotMatch {
			t.Fatalf("expected a bot match, got %+v", m)
		}
		if m.Player1ID != 1 {
			t.Fatalf("wrong player in bot match: %+v", m)
		}
	case <-time.After(time.Second):
		t.Fatalf("timeout did not produce a bot match")
	}
}

func TestRemoveCancelsTimeout(t *testing.T) {
	q := NewQueue(20 * time.Millisecond)
	q.Add(1, "casey")
	q.Remove(1)

	select {
	case m := <-q.Matches:
		t.Fatalf("unexpected match after removal: %+v", m)
	case <-time.After(100 * time.Millisecond):
	}
	if q.Waiting(1) {
		t.Fatalf("removed player still waiting")
	}
}

func TestQueueStaysUsableWhileDeliveryBlocks(t *testing.T) {
	q := NewQueue(time.Minute)

	// Fill the match channel so the next delivery blocks.
	for i := 0; i < cap(q.Matches); i++ {
		q.Matches <- Match{}
	}

	q.Add(1, "casey")
	delivered := make(chan struct{})
	go func() {
		q.Add(2, "jordan")
		close(delivered)
	}()

	// The blocked delivery must not hold the queue's lock.
	answered := make(chan bool, 1)
	go func() {
		answered <- q.Waiting(3)
	}()
	select {
	case waiting := <-answered:
		if waiting {
			t.Fatalf("player 3 never joined the queue")
		}
	case <-time.After(time.Second):
		t.Fatalf("queue locked up behind a blocked match delivery")
	}

	// Draining the channel unblocks the delivery.
	<-q.Matches
	select {
	case <-delivered:
	case <-time.After(time.Second):
		t.Fatalf("match was never delivered after draining the channel")
	}
}

func TestDuplicateAddIsIgnored(t *testing.T) {
	q := NewQueue(time.Minute)
	q.Add(1, "casey")
	q.Add(1, "casey")

	select {
	case m := <-q.Matches:
		t.Fatalf("a player should not match against themselves: %+v", m)
	case <-time.After(50 * time.Millisecond):
	}
}
