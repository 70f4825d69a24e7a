package cleanup

import (
	"log"
	"time"

	"github.com/dropfour/backend/internal/service/game"
)

const (
	interval = 1 * time.Hour
	maxAge   = 6 * time.Hour
)

// Worker periodically reclaims abandoned game sessions.
type Worker struct {
	sessions *game.Manager
	stop     chan struct{}
}

func NewWorker(sessions *game.Manager) *Worker {
	return &Worker{sessions: sessions, stop: make(chan struct{})}
}

func (w *Worker) Start() {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.sessions.CleanupStale(maxAge)
			case <-w.stop:
				return
			}
		}
	}()
	log.Println("[CLEANUP] background worker started")
}

func (w *Worker) Stop() {
	close(w.stop)
}
