package session

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sanjkatariya/infraFix/internal/models"
)

// TokenPrefix marks tokens handed out by the mock login.
const TokenPrefix = "mock-jwt-token-"

// Store is an in-memory session store keyed by bearer token.
// Sessions do not survive a restart.
type Store struct {
	mu   sync.RWMutex
	data map[string]models.Session
	ttl  time.Duration
	now  func() time.Time
}

type Option func(*Store)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore returns a store whose sessions live for ttl. ttl <= 0 means
// sessions never expire.
func NewStore(ttl time.Duration, opts ...Option) *Store {
	s := &Store{data: make(map[string]models.Session), ttl: ttl, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Create binds a new token to user and returns the stored session.
func (s *Store) Create(user models.User) models.Session {
	now := s.now()
	sess := models.Session{
		Token: newToken(now),
		User:  user,
	}
	if s.ttl > 0 {
		sess.Expiry = now.Add(s.ttl)
	}
	s.mu.Lock()
	s.data[sess.Token] = sess
	s.mu.Unlock()
	return sess
}

// newToken keeps the mock-jwt-token-<millis> shape clients already parse,
// with a random tail so two logins in the same millisecond differ.
func newToken(now time.Time) string {
	tail := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%s%d-%s", TokenPrefix, now.UnixMilli(), tail)
}

// Get returns the session for token if present and not expired.
func (s *Store) Get(token string) (models.Session, bool) {
	s.mu.RLock()
	sess, ok := s.data[token]
	s.mu.RUnlock()
	if !ok {
		return models.Session{}, false
	}
	if s.expired(sess, s.now()) {
		// Expired; delete lazily
		s.Delete(token)
		return models.Session{}, false
	}
	return sess, true
}

// Delete removes a session by token.
func (s *Store) Delete(token string) {
	s.mu.Lock()
	delete(s.data, token)
	s.mu.Unlock()
}

func (s *Store) expired(sess models.Session, now time.Time) bool {
	return !sess.Expiry.IsZero() && sess.Expiry.Before(now)
}

// Sweep removes expired sessions and reports how many were dropped.
func (s *Store) Sweep() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k, v := range s.data {
		if s.expired(v, now) {
			delete(s.data, k)
			n++
		}
	}
	return n
}

// StartSweeper periodically removes expired sessions until ctx is done.
// It blocks; run it in its own goroutine.
func (s *Store) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// List returns the live sessions, soonest expiry first.
func (s *Store) List() []models.Session {
	now := s.now()
	s.mu.RLock()
	out := make([]models.Session, 0, len(s.data))
	for _, v := range s.data {
		if !s.expired(v, now) {
			out = append(out, v)
		}
	}
	s.mu.RUnlock()
	slices.SortFunc(out, func(a, b models.Session) int {
		if c := a.Expiry.Compare(b.Expiry); c != 0 {
			return c
		}
		return strings.Compare(a.Token, b.Token)
	})
	return out
}

// Len returns the number of stored sessions, expired ones included.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
