package session

import (
	"sync"
	"time"

	"github.com/cmlabs-hris/hrms-lite-web/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-web/internal/domain/calendar"
)

// Session is the UI state of one browser: calendar picker, per-date table
// state and history view. Backend data is never cached here.
type Session struct {
	ID      string
	Picker  *calendar.Picker
	History *attendance.HistoryState

	mu          sync.Mutex
	tables      map[string]*attendance.DayTable
	lastSeen    time.Time
	flashWindow time.Duration
	onSettled   func(date, employeeID string)
}

// Table returns the day table for date, creating it on first use.
func (s *Session) Table(date string) *attendance.DayTable {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tables[date]
	if !ok {
		t = attendance.NewDayTable(date, s.flashWindow, s.onSettled)
		s.tables[date] = t
	}
	return t
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}
