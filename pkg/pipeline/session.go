package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"pageforge/pkg/brief"
	"pageforge/pkg/deploy"
	"pageforge/pkg/generate"
	"pageforge/pkg/research"
	"pageforge/pkg/sitegen"
)

// Session holds everything produced for one user's current run. Retained
// artifacts let a deploy be retried without regenerating code.
type Session struct {
	// ID distinguishes this run in logs when a user's session is
	// replaced mid-flight.
	ID         string
	User       string
	Stage      Stage
	StartedAt  time.Time
	FinishedAt time.Time

	Record   *brief.BusinessRecord
	Research *research.Bundle
	Docs     *generate.Documents
	Site     *sitegen.Output
	Deploy   *deploy.Result
	Err      string

	generation uint64
	cancel     context.CancelFunc
}

// Store keeps at most one session per user. Starting a run while one is
// in flight cancels the old run; its late results are discarded.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Begin cancels any in-flight run for user and installs a fresh session.
// The returned context is cancelled if a newer run replaces this one.
func (s *Store) Begin(ctx context.Context, user string) (*Session, context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var gen uint64
	if prev, ok := s.sessions[user]; ok {
		if prev.cancel != nil {
			prev.cancel()
		}
		gen = prev.generation + 1
	}
	runCtx, cancel := context.WithCancel(ctx)
	sess := &Session{
		ID:         uuid.NewString(),
		User:       user,
		Stage:      StageIdle,
		StartedAt:  time.Now(),
		generation: gen,
		cancel:     cancel,
	}
	s.sessions[user] = sess
	return sess, runCtx
}

// Get returns the current session for user, or nil.
func (s *Store) Get(user string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[user]
}

// current reports whether sess is still the user's live session.
func (s *Store) current(sess *Session) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.sessions[sess.User]
	return ok && cur.generation == sess.generation
}

// advance moves sess to stage if sess is still current. It returns false
// when a newer run has replaced sess, in which case the caller must stop.
func (s *Store) advance(sess *Session, stage Stage) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.sessions[sess.User]
	if !ok || cur.generation != sess.generation {
		return false
	}
	cur.Stage = stage
	if Terminal(stage) {
		cur.FinishedAt = time.Now()
	}
	return true
}
