package session

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/merchantdash/datagrid"
)

var _ datagrid.SessionStore = (*Pool)(nil)

var (
	// ErrCapacity is returned when a new session would exceed the pool limit.
	ErrCapacity = errors.New("session: pool capacity reached")
	// ErrNotFound is returned for unknown or expired session ids.
	ErrNotFound = errors.New("session: not found")
)

// Factory builds the grid for a new session.
type Factory func() *datagrid.Grid

// Session is one live grid instance. The grid is only touched under the
// session lock; use Do.
type Session struct {
	ID        string
	CreatedAt time.Time
	LastUsed  time.Time

	grid *datagrid.Grid
	mu   sync.Mutex
}

// Do runs fn with exclusive access to the session's grid.
func (s *Session) Do(fn func(g *datagrid.Grid)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.grid)
}

// Pool keeps grid sessions keyed by id and expires them after an idle or
// absolute timeout.
type Pool struct {
	factory     Factory
	sessions    map[string]*Session
	mu          sync.Mutex
	idleTimeout time.Duration
	absTimeout  time.Duration
	maxSessions int
	cleanupStop chan struct{}
	closeOnce   sync.Once
	now         func() time.Time
}

// Options tunes a Pool. Zero timeouts never expire; zero MaxSessions is unlimited.
type Options struct {
	MaxSessions     int
	IdleTimeout     time.Duration
	AbsTimeout      time.Duration
	CleanupInterval time.Duration
}

// NewPool creates a pool and starts its cleanup routine.
func NewPool(factory Factory, opts Options) *Pool {
	p := &Pool{
		factory:     factory,
		sessions:    make(map[string]*Session),
		idleTimeout: opts.IdleTimeout,
		absTimeout:  opts.AbsTimeout,
		maxSessions: opts.MaxSessions,
		cleanupStop: make(chan struct{}),
		now:         time.Now,
	}
	interval := opts.CleanupInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	p.startCleanupRoutine(interval)
	return p
}

// Close stops the cleanup routine and drops every session.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.cleanupStop)
		p.mu.Lock()
		defer p.mu.Unlock()
		clear(p.sessions)
	})
}

func (p *Pool) startCleanupRoutine(interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		for {
			select {
			case <-ticker.C:
				p.cleanupTimeouts()
			case <-p.cleanupStop:
				ticker.Stop()
				return
			}
		}
	}()
}

func (p *Pool) cleanupTimeouts() {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	for sid, s := range p.sessions {
		if p.expired(s, now) {
			slog.Info("Cleaning up expired grid session", "session", sid)
			delete(p.sessions, sid)
		}
	}
}

func (p *Pool) expired(s *Session, now time.Time) bool {
	if p.absTimeout > 0 && now.Sub(s.CreatedAt) > p.absTimeout {
		return true
	}
	return p.idleTimeout > 0 && now.Sub(s.LastUsed) > p.idleTimeout
}

// Acquire returns the live session for sid, or creates a new one when sid is
// empty, unknown or expired. created reports whether a new session was made.
func (p *Pool) Acquire(sid string) (s *Session, created bool, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	if s, ok := p.sessions[sid]; ok {
		if !p.expired(s, now) {
			s.LastUsed = now
			return s, false, nil
		}
		slog.Info("Grid session expired", "session", sid)
		delete(p.sessions, sid)
	}

	if p.maxSessions > 0 && len(p.sessions) >= p.maxSessions {
		return nil, false, fmt.Errorf("%w (max %d)", ErrCapacity, p.maxSessions)
	}

	s = &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		LastUsed:  now,
		grid:      p.factory(),
	}
	p.sessions[s.ID] = s
	slog.Debug("Grid session created", "session", s.ID, "active", len(p.sessions))
	return s, true, nil
}

// Get returns a live session without creating one.
func (p *Pool) Get(sid string) (*Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.sessions[sid]
	if !ok || p.expired(s, p.now()) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, sid)
	}
	s.LastUsed = p.now()
	return s, nil
}

// With runs fn on the grid of session sid, creating the session when needed,
// and returns the id actually used.
func (p *Pool) With(sid string, fn func(g *datagrid.Grid)) (string, error) {
	s, _, err := p.Acquire(sid)
	if err != nil {
		return "", err
	}
	s.Do(fn)
	return s.ID, nil
}

// Remove drops a session.
func (p *Pool) Remove(sid string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.sessions, sid)
}

// Len is the number of sessions held, expired or not.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.sessions)
}
