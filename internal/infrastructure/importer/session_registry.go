package importer

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/morabaat/backend/internal/domain/bulk"
	"github.com/morabaat/backend/internal/domain/shared"
)

// SessionRegistry holds in-flight import sessions in process memory. The
// import worker mutates a session while status endpoints read it, so every
// access goes through the registry mutex and reads hand out copies.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*bulk.Session

	maxAge time.Duration
	logger *zap.Logger
	stop   chan struct{}
	once   sync.Once
}

// NewSessionRegistry creates a registry that forgets terminal sessions
// maxAge after they finish.
func NewSessionRegistry(maxAge time.Duration, logger *zap.Logger) *SessionRegistry {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionRegistry{
		sessions: make(map[string]*bulk.Session),
		maxAge:   maxAge,
		logger:   logger,
		stop:     make(chan struct{}),
	}
}

// Register adds a new session to the registry
func (r *SessionRegistry) Register(s *bulk.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
}

// Get returns a snapshot of a session, or shared.ErrNotFound when the id is
// unknown or already swept.
func (r *SessionRegistry) Get(id string) (bulk.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return bulk.Session{}, shared.ErrNotFound
	}
	return snapshot(s), nil
}

// List returns snapshots of all known sessions, newest first
func (r *SessionRegistry) List() []bulk.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]bulk.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, snapshot(s))
	}
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].StartedAt.After(out[i].StartedAt) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out
}

// Update runs fn on the live session under the registry lock. The worker and
// the pause/resume/cancel endpoints both funnel through here.
func (r *SessionRegistry) Update(id string, fn func(*bulk.Session) error) (bulk.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return bulk.Session{}, shared.ErrNotFound
	}
	if err := fn(s); err != nil {
		return snapshot(s), err
	}
	return snapshot(s), nil
}

// Status returns just the current status of a session. Import workers poll
// this between rows to observe pause and cancel requests.
func (r *SessionRegistry) Status(id string) (bulk.SessionStatus, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return "", shared.ErrNotFound
	}
	return s.Status, nil
}

// StartSweeper launches the background loop that drops terminal sessions
// older than maxAge. It returns immediately; Stop or ctx cancellation ends
// the loop.
func (r *SessionRegistry) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-r.stop:
				return
			case <-ticker.C:
				r.sweep()
			}
		}
	}()
}

// Stop ends the sweeper loop
func (r *SessionRegistry) Stop() {
	r.once.Do(func() { close(r.stop) })
}

func (r *SessionRegistry) sweep() {
	cutoff := time.Now().Add(-r.maxAge)
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.sessions {
		if !s.Status.IsTerminal() || s.CompletedAt == nil {
			continue
		}
		if s.CompletedAt.Before(cutoff) {
			delete(r.sessions, id)
			r.logger.Debug("swept finished import session",
				zap.String("session_id", id),
				zap.String("status", string(s.Status)))
		}
	}
}

// snapshot copies a session so readers never alias worker-owned slices
func snapshot(s *bulk.Session) bulk.Session {
	out := *s
	out.Errors = append([]bulk.RowError(nil), s.Errors...)
	out.Skips = append([]bulk.RowError(nil), s.Skips...)
	if s.CompletedAt != nil {
		t := *s.CompletedAt
		out.CompletedAt = &t
	}
	return out
}
