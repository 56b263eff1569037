package cleanup

import (
	"log"
	"time"

	"github.com/iamasit07/gomoku-agent/internal/service/game"
)

type Worker struct {
	SessionManager *game.SessionManager
	Interval       time.Duration
	stop           chan struct{}
}

func NewWorker(sm *game.SessionManager, interval time.Duration) *Worker {
	if interval <= 0 {
		interval = 1 * time.Hour
	}
	return &Worker{SessionManager: sm, Interval: interval, stop: make(chan struct{})}
}

// Start initiates the background ticker
func (w *Worker) Start() {
	go w.runCleanup()

	ticker := time.NewTicker(w.Interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.runCleanup()
			case <-w.stop:
				return
			}
		}
	}()
	log.Println("[CLEANUP] Background worker started")
}

func (w *Worker) Stop() {
	close(w.stop)
}

// runCleanup executes the actual cleanup logic
func (w *Worker) runCleanup() int {
	removed := w.SessionManager.CleanupOldSessions()
	if removed > 0 {
		log.Printf("[CLEANUP] Removed %d stale play sessions", removed)
	}
	return removed
}
