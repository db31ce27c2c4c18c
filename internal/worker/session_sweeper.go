package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// ExpiredSessionStore deletes sessions whose expiry has passed, returning how
// many rows were removed.
type ExpiredSessionStore interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// SessionSweeper periodically purges expired admin sessions. Sessions are
// already invalid the moment they expire; the sweep only reclaims rows.
type SessionSweeper struct {
	sessions ExpiredSessionStore
	interval time.Duration
}

// NewSessionSweeper constructs a SessionSweeper.
func NewSessionSweeper(sessions ExpiredSessionStore, interval time.Duration) *SessionSweeper {
	return &SessionSweeper{sessions: sessions, interval: interval}
}

// Start begins the periodic sweep loop until context is canceled.
func (w *SessionSweeper) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting session sweeper")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Session sweeper stopped")
			return
		}
	}
}

func (w *SessionSweeper) run(ctx context.Context) {
	n, err := w.sessions.DeleteExpired(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to purge expired sessions")
		return
	}
	if n > 0 {
		log.Info().Int64("purged", n).Msg("Expired sessions removed")
	}
}
