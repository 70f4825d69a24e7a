package matchmaking

import (
	"log"
	"sync"
	"time"
)

// Match pairs two humans, or one human with the bot when BotMatch is
// set (nobody else joined within the timeout).
type Match struct {
	Player1ID       int64
	Player1Username string
	Player2ID       int64
	Player2Username string
	BotMatch        bool
}

// Queue is a first-come first-served matchmaking queue. A player who
// waits longer than the timeout is matched against the bot instead.
type Queue struct {
	mu      sync.Mutex
	waiting map[int64]string
	timers  map[int64]*time.Timer
	timeout time.Duration

	Matches chan Match
}

func NewQueue(timeout time.Duration) *Queue {
	return &Queue{
		waiting: make(map[int64]string),
		timers:  make(map[int64]*time.Timer),
		timeout: timeout,
		Matches: make(chan Match, 100),
	}
}

// Add puts a player in the queue. If someone is already waiting the
// two are matched immediately. Matches are delivered on the channel
// after the lock is released, so a slow or absent listener never
// wedges the queue itself.
func (q *Queue) Add(userID int64, username string) {
	q.mu.Lock()

	if _, exists := q.waiting[userID]; exists {
		q.mu.Unlock()
		return
	}

	var match *Match
	for oppID, oppName := range q.waiting {
		delete(q.waiting, oppID)
		q.stopTimer(oppID)
		match = &Match{
			Player1ID:       oppID,
			Player1Username: oppName,
			Player2ID:       userID,
			Player2Username: username,
		}
		break
	}

	if match == nil {
		q.waiting[userID] = username
		q.timers[userID] = time.AfterFunc(q.timeout, func() {
			q.handleTimeout(userID)
		})
	}
	q.mu.Unlock()

	if match != nil {
		log.Printf("[QUEUE] matched %s with %s", match.Player1Username, username)
		q.Matches <- *match
		return
	}
	log.Printf("[QUEUE] %s waiting for an opponent", username)
}

// Remove takes a player out of the queue, e.g. on disconnect.
func (q *Queue) Remove(userID int64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.waiting, userID)
	q.stopTimer(userID)
}

// Waiting reports whether the player is still queued.
func (q *Queue) Waiting(userID int64) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	_, ok := q.waiting[userID]
	return ok
}

func (q *Queue) handleTimeout(userID int64) {
	q.mu.Lock()
	username, ok := q.waiting[userID]
	if ok {
		delete(q.waiting, userID)
		q.stopTimer(userID)
	}
	q.mu.Unlock()
	if !ok {
		return
	}

	log.Printf("[QUEUE] %s timed out waiting, matching with bot", username)
	q.Matches <- Match{
		Player1ID:       userID,
		Player1Username: username,
		BotMatch:        true,
	}
}

func (q *Queue) stopTimer(userID int64) {
	if timer, ok := q.timers[userID]; ok {
		timer.Stop()
		delete(q.timers, userID)
	}
}
