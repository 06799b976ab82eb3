package attendance

import (
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/hrms-lite-web/internal/pkg/mutation"
)

// DayTable is the UI state of the date attendance table for one date: the
// current selection, one mutation machine per row and one for bulk actions.
// Roster data itself is never held here; it is refetched from the backend.
type DayTable struct {
	mu           sync.Mutex
	date         string
	selected     map[string]struct{}
	rows         map[string]*mutation.Machine
	bulk         *mutation.Machine
	flashWindow  time.Duration
	onRowSettled func(date, employeeID string)
}

// NewDayTable creates the table state for date. onRowSettled runs when a
// row's saved flash window ends.
func NewDayTable(date string, flashWindow time.Duration, onRowSettled func(date, employeeID string)) *DayTable {
	return &DayTable{
		date:         date,
		selected:     make(map[string]struct{}),
		rows:         make(map[string]*mutation.Machine),
		bulk:         mutation.NewMachine(0, nil),
		flashWindow:  flashWindow,
		onRowSettled: onRowSettled,
	}
}

func (t *DayTable) Date() string {
	return t.date
}

func (t *DayTable) Toggle(employeeID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.selected[employeeID]; ok {
		delete(t.selected, employeeID)
		return
	}
	t.selected[employeeID] = struct{}{}
}

// ToggleAll clears the selection when every id is selected, otherwise
// selects all of them.
func (t *DayTable) ToggleAll(ids []string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.allSelectedLocked(ids) {
		t.selected = make(map[string]struct{})
		return
	}
	t.selected = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		t.selected[id] = struct{}{}
	}
}

// AllSelected reports whether ids is non-empty and every id is selected.
func (t *DayTable) AllSelected(ids []string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.allSelectedLocked(ids)
}

func (t *DayTable) allSelectedLocked(ids []string) bool {
	if len(ids) == 0 {
		return false
	}
	for _, id := range ids {
		if _, ok := t.selected[id]; !ok {
			return false
		}
	}
	return true
}

func (t *DayTable) IsSelected(employeeID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.selected[employeeID]
	return ok
}

// Selection returns the selected ids in sorted order.
func (t *DayTable) Selection() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	ids := make([]string, 0, len(t.selected))
	for id := range t.selected {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (t *DayTable) ClearSelection() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selected = make(map[string]struct{})
}

// Prune drops selected ids that are no longer on the roster.
func (t *DayTable) Prune(ids []string) {
	keep := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		keep[id] = struct{}{}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for id := range t.selected {
		if _, ok := keep[id]; !ok {
			delete(t.selected, id)
		}
	}
}

// Row returns the mutation machine of one row, creating it on first use.
func (t *DayTable) Row(employeeID string) *mutation.Machine {
	t.mu.Lock()
	defer t.mu.Unlock()
	m, ok := t.rows[employeeID]
	if !ok {
		m = mutation.NewMachine(t.flashWindow, func() {
			if t.onRowSettled != nil {
				t.onRowSettled(t.date, employeeID)
			}
		})
		t.rows[employeeID] = m
	}
	return m
}

func (t *DayTable) RowState(employeeID string) mutation.State {
	t.mu.Lock()
	m, ok := t.rows[employeeID]
	t.mu.Unlock()
	if !ok {
		return mutation.Idle
	}
	return m.State()
}

// RowError returns the cause of a row's last attempt while the row is in
// the failed state.
func (t *DayTable) RowError(employeeID string) error {
	t.mu.Lock()
	m, ok := t.rows[employeeID]
	t.mu.Unlock()
	if !ok || m.State() != mutation.Failed {
		return nil
	}
	return m.Err()
}

func (t *DayTable) Bulk() *mutation.Machine {
	return t.bulk
}
