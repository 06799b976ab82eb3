package attendance

import (
	"strings"
	"sync"
)

// HistoryState is the UI state of the employee history view.
type HistoryState struct {
	mu         sync.Mutex
	employeeID string
	filter     HistoryFilter
}

// SelectEmployee switches the view to another employee and drops any
// active date filter.
func (s *HistoryState) SelectEmployee(employeeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employeeID = strings.TrimSpace(employeeID)
	s.filter = HistoryFilter{}
}

// ApplyFilter activates a date range. At least one bound is required.
func (s *HistoryState) ApplyFilter(filter HistoryFilter) error {
	if err := filter.Validate(); err != nil {
		return err
	}
	if filter.IsEmpty() {
		return ErrEmptyFilter
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.employeeID == "" {
		return ErrNoEmployee
	}
	s.filter = filter
	return nil
}

func (s *HistoryState) ClearFilter() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = HistoryFilter{}
}

// Current returns the selected employee and the active filter.
func (s *HistoryState) Current() (string, HistoryFilter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.employeeID, s.filter
}
