// Package readiness holds the process-wide backend readiness signal.
//
//	initializing --first healthy probe--> ready
//
// Ready is terminal; nothing moves the gate back.
package readiness

import (
	"sync"
	"time"
)

// HubKey and EventName address the one-time readiness announcement on the
// SSE hub.
const (
	HubKey    = "readiness"
	EventName = "readiness"
)

type Phase string

const (
	PhaseInitializing Phase = "initializing"
	PhaseReady        Phase = "ready"
)

// Status is the read-only view handed to the UI.
type Status struct {
	Phase    Phase      `json:"phase"`
	Ready    bool       `json:"ready"`
	Attempts int        `json:"attempts"`
	ReadyAt  *time.Time `json:"ready_at,omitempty"`
}

type Gate struct {
	mu       sync.RWMutex
	phase    Phase
	attempts int
	readyAt  time.Time
	done     chan struct{}
}

func NewGate() *Gate {
	return &Gate{
		phase: PhaseInitializing,
		done:  make(chan struct{}),
	}
}

// Attempt records one failed probe while initializing.
func (g *Gate) Attempt() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.phase == PhaseInitializing {
		g.attempts++
	}
}

// MarkReady moves the gate to ready. It reports true only for the call
// that made the transition.
func (g *Gate) MarkReady() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.phase == PhaseReady {
		return false
	}
	g.attempts++
	g.phase = PhaseReady
	g.readyAt = time.Now()
	close(g.done)
	return true
}

func (g *Gate) Ready() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.phase == PhaseReady
}

// Done is closed once the gate is ready.
func (g *Gate) Done() <-chan struct{} {
	return g.done
}

func (g *Gate) Status() Status {
	g.mu.RLock()
	defer g.mu.RUnlock()
	s := Status{Phase: g.phase, Ready: g.phase == PhaseReady, Attempts: g.attempts}
	if s.Ready {
		at := g.readyAt
		s.ReadyAt = &at
	}
	return s
}
