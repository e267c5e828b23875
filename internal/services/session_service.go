// internal/services/session_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront/internal/cart"
	"github.com/javajoker/storefront/internal/config"
	"github.com/javajoker/storefront/internal/notify"
	"github.com/javajoker/storefront/internal/utils"
)

var ErrSessionNotFound = errors.New("session not found")

// Session is one shopper's in-memory state: a cart value and a
// notification queue.
type Session struct {
	ID            string
	CreatedAt     time.Time
	Notifications *notify.Queue

	mu       sync.Mutex
	cart     cart.State
	lastSeen time.Time
}

func (s *Session) Cart() cart.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart
}

// Update replaces the cart with fn(current) and returns both states.
func (s *Session) Update(fn func(cart.State) cart.State) (prev, next cart.State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev = s.cart
	s.cart = fn(prev)
	return prev, s.cart
}

func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

type SessionService struct {
	mu            sync.RWMutex
	sessions      map[string]*Session
	config        config.SessionConfig
	notifications *NotificationService
	now           func() time.Time
	logger        *logrus.Entry
}

func NewSessionService(cfg config.SessionConfig, notifications *NotificationService) *SessionService {
	return &SessionService{
		sessions:      make(map[string]*Session),
		config:        cfg,
		notifications: notifications,
		now:           time.Now,
		logger:        logrus.WithField("component", "sessions"),
	}
}

// Create starts a session and returns it with its signed token.
func (s *SessionService) Create() (*Session, string, error) {
	id := uuid.NewString()
	now := s.now()

	token, err := utils.GenerateSessionToken(id, s.config.TokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign session token: %w", err)
	}

	sess := &Session{
		ID:            id,
		CreatedAt:     now,
		Notifications: s.notifications.NewQueue(id),
		cart:          cart.New(),
		lastSeen:      now,
	}

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	s.logger.WithField("session_id", id).Info("Session created")
	return sess, token, nil
}

// Get returns a live session and marks it as seen.
func (s *SessionService) Get(id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	sess.touch(s.now())
	return sess, nil
}

// Resolve validates a session token and returns its session.
func (s *SessionService) Resolve(token string) (*Session, error) {
	claims, err := utils.ValidateSessionToken(token)
	if err != nil {
		return nil, err
	}
	return s.Get(claims.SessionID)
}

func (s *SessionService) Delete(id string) bool {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if ok {
		sess.Notifications.Clear()
	}
	return ok
}

func (s *SessionService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep evicts sessions idle for longer than the configured timeout and
// cancels their pending notification timers.
func (s *SessionService) Sweep() int {
	cutoff := s.now().Add(-s.config.IdleTimeout)

	var evicted []*Session
	s.mu.Lock()
	for id, sess := range s.sessions {
		if sess.LastSeen().Before(cutoff) {
			delete(s.sessions, id)
			evicted = append(evicted, sess)
		}
	}
	s.mu.Unlock()

	for _, sess := range evicted {
		sess.Notifications.Clear()
	}

	if len(evicted) > 0 {
		s.logger.WithField("evicted", len(evicted)).Info("Idle sessions evicted")
	}
	return len(evicted)
}

// Run sweeps on every interval tick until ctx is done.
func (s *SessionService) Run(ctx context.Context) {
	interval := s.config.SweepInterval
	if interval <= 0 {
		interval = time.Minute
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
