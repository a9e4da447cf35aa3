package fsm

import (
	"errors"
	"fmt"
)

// ErrUnknownState is returned by Change when no state is registered under the
// requested name.
var ErrUnknownState = errors.New("fsm: unknown state")

// State defines the lifecycle every concrete state implements. C is the
// per-tick context forwarded by Machine.Update (the player for enemy AI, the
// input intent for the player).
type State[C any] interface {
	Enter(params any)
	Exit()
	Update(dt float64, ctx C)
}

// Machine holds a name to state registry and drives the enter/exit/update
// protocol. At most one state is current at a time.
type Machine[K ~string, C any] struct {
	states  map[K]State[C]
	current State[C]
	name    K
	hasCur  bool
}

// New creates an empty machine.
func New[K ~string, C any]() *Machine[K, C] {
	return &Machine[K, C]{states: make(map[K]State[C])}
}

// Add registers s under name. Registering the same name again replaces the
// previous state; this is meant for construction time only.
func (m *Machine[K, C]) Add(name K, s State[C]) {
	if m.states == nil {
		m.states = make(map[K]State[C])
	}
	m.states[name] = s
}

// Has reports whether a state is registered under name.
func (m *Machine[K, C]) Has(name K) bool {
	_, ok := m.states[name]
	return ok
}

// Change exits the current state and enters the one registered under name.
// An unregistered name is rejected before anything is exited.
func (m *Machine[K, C]) Change(name K, params any) error {
	next, ok := m.states[name]
	if !ok || next == nil {
		return fmt.Errorf("%w %q", ErrUnknownState, string(name))
	}
	if m.hasCur && m.current != nil {
		m.current.Exit()
	}
	m.current = next
	m.name = name
	m.hasCur = true
	next.Enter(params)
	return nil
}

// Update forwards to the current state only.
func (m *Machine[K, C]) Update(dt float64, ctx C) {
	if m == nil || !m.hasCur || m.current == nil {
		return
	}
	m.current.Update(dt, ctx)
}

// Current returns the name of the active state, or the zero name.
func (m *Machine[K, C]) Current() K {
	if m == nil {
		var zero K
		return zero
	}
	return m.name
}

// State returns the active state, or nil before the first Change.
func (m *Machine[K, C]) State() State[C] {
	if m == nil {
		return nil
	}
	return m.current
}
