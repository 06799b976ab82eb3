package calendar

import "sync"

// Picker holds the calendar view month and the selected date of one
// browser session.
type Picker struct {
	mu       sync.Mutex
	view     Month
	selected string
}

func NewPicker(view Month) *Picker {
	return &Picker{view: view}
}

// Select toggles date as the selection. Future dates are ignored and
// report false.
func (p *Picker) Select(date, today string) bool {
	if date > today {
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.selected == date {
		p.selected = ""
	} else {
		p.selected = date
	}
	return true
}

// Navigate moves the view by delta months and returns the new view.
func (p *Picker) Navigate(delta int) Month {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.view = p.view.Add(delta)
	return p.view
}

func (p *Picker) View() Month {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.view
}

// Selected returns the selected date, empty when nothing is selected.
func (p *Picker) Selected() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.selected
}
