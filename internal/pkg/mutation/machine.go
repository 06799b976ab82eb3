// Package mutation models a single mutable unit of the UI (one table row, one
// bulk action) as an explicit state machine:
//
//	idle ──start──▶ in-flight ──succeed──▶ succeeded ──expire──▶ idle
//	                    │                      │
//	                    └──fail──▶ failed      └──start──▶ in-flight
//
// A unit in flight rejects another start, which is the only mutual exclusion
// the UI needs. The succeeded state is timed: it reverts to idle after the
// machine's window.
package mutation

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

type State int

const (
	Idle State = iota
	InFlight
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case InFlight:
		return "in_flight"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type Event int

const (
	Start Event = iota
	Succeed
	Fail
	Expire
)

func (e Event) String() string {
	switch e {
	case Start:
		return "start"
	case Succeed:
		return "succeed"
	case Fail:
		return "fail"
	case Expire:
		return "expire"
	}
	return fmt.Sprintf("Event(%d)", int(e))
}

var transitions = map[State]map[Event]State{
	Idle:      {Start: InFlight},
	InFlight:  {Succeed: Succeeded, Fail: Failed},
	Succeeded: {Start: InFlight, Expire: Idle},
	Failed:    {Start: InFlight},
}

var (
	ErrInFlight          = errors.New("mutation already in flight")
	ErrInvalidTransition = errors.New("invalid mutation transition")
)

// Next returns the state reached from s on e.
func Next(s State, e Event) (State, error) {
	next, ok := transitions[s][e]
	if !ok {
		if s == InFlight && e == Start {
			return s, ErrInFlight
		}
		return s, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, e, s)
	}
	return next, nil
}

type Machine struct {
	mu       sync.Mutex
	state    State
	err      error
	window   time.Duration
	timer    *time.Timer
	gen      uint64
	onExpire func()
}

// NewMachine creates an idle machine. onExpire, if set, runs after the
// succeeded window elapses and the machine is back to idle.
func NewMachine(window time.Duration, onExpire func()) *Machine {
	return &Machine{
		window:   window,
		onExpire: onExpire,
	}
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Err returns the error of the last failed attempt.
func (m *Machine) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

func (m *Machine) Busy() bool {
	return m.State() == InFlight
}

func (m *Machine) fire(e Event) error {
	next, err := Next(m.state, e)
	if err != nil {
		return err
	}
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.gen++
	m.state = next
	return nil
}

// Begin moves the machine to in-flight. It fails with ErrInFlight when an
// attempt is already running.
func (m *Machine) Begin() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fire(Start); err != nil {
		return err
	}
	m.err = nil
	return nil
}

// Succeed settles the attempt successfully and arms the revert timer.
func (m *Machine) Succeed() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fire(Succeed); err != nil {
		return err
	}

	gen := m.gen
	m.timer = time.AfterFunc(m.window, func() { m.expire(gen) })
	return nil
}

func (m *Machine) expire(gen uint64) {
	m.mu.Lock()
	if m.gen != gen || m.state != Succeeded {
		m.mu.Unlock()
		return
	}
	_ = m.fire(Expire)
	onExpire := m.onExpire
	m.mu.Unlock()

	if onExpire != nil {
		onExpire()
	}
}

// Fail settles the attempt with cause.
func (m *Machine) Fail(cause error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fire(Fail); err != nil {
		return err
	}
	m.err = cause
	return nil
}

// Run wraps fn in Begin and Succeed/Fail.
func (m *Machine) Run(fn func() error) error {
	if err := m.Begin(); err != nil {
		return err
	}
	if err := fn(); err != nil {
		_ = m.Fail(err)
		return err
	}
	return m.Succeed()
}
