package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/hrms-lite-web/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-web/internal/domain/calendar"
	"github.com/cmlabs-hris/hrms-lite-web/internal/pkg/clock"
	"github.com/google/uuid"
)

// Store keeps sessions in memory and evicts those idle longer than ttl.
type Store struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	ttl         time.Duration
	flashWindow time.Duration
	clock       *clock.Clock
	onSettled   func(date, employeeID string)
}

// NewStore creates a store. onSettled runs when any row's saved flash ends.
func NewStore(ttl, flashWindow time.Duration, clk *clock.Clock, onSettled func(date, employeeID string)) *Store {
	return &Store{
		sessions:    make(map[string]*Session),
		ttl:         ttl,
		flashWindow: flashWindow,
		clock:       clk,
		onSettled:   onSettled,
	}
}

// Create starts a session with the calendar on the current month.
func (s *Store) Create() (*Session, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	sess := &Session{
		ID:          id.String(),
		Picker:      calendar.NewPicker(calendar.MonthOf(now)),
		History:     &attendance.HistoryState{},
		tables:      make(map[string]*attendance.DayTable),
		lastSeen:    now,
		flashWindow: s.flashWindow,
		onSettled:   s.onSettled,
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess, nil
}

// Get returns a live session and marks it as seen.
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}

	now := s.clock.Now()
	if sess.idleSince(now) > s.ttl {
		return nil, false
	}
	sess.touch(now)
	return sess, true
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep removes expired sessions. It fits cron.SessionSweeper.
func (s *Store) Sweep(ctx context.Context) error {
	now := s.clock.Now()

	s.mu.Lock()
	removed := 0
	for id, sess := range s.sessions {
		if sess.idleSince(now) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	remaining := len(s.sessions)
	s.mu.Unlock()

	if removed > 0 {
		slog.InfoContext(ctx, "Expired sessions removed", "removed", removed, "remaining", remaining)
	}
	return nil
}
