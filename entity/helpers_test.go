package entity

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/milk9111/emberfall/common"
	"github.com/milk9111/emberfall/component"
	"github.com/milk9111/emberfall/logger"
	"github.com/milk9111/emberfall/prefabs"
)

// seqRand replays fixed values; IntN clamps into range.
type seqRand struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (r *seqRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.5
	}
	v := r.floats[r.fi%len(r.floats)]
	r.fi++
	return v
}

func (r *seqRand) IntN(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[r.ii%len(r.ints)]
	r.ii++
	if v >= n {
		v = n - 1
	}
	return v
}

type recordingSFX struct{ names []string }

func (r *recordingSFX) PlaySFX(name string, volume float64) { r.names = append(r.names, name) }

// wallOracle is solid for x >= X (when X > 0) or everywhere when All is set.
type wallOracle struct {
	X   float64
	All bool
}

func (w wallOracle) IsPositionCollidable(x, y float64) bool {
	return w.All || (w.X > 0 && x >= w.X)
}

type harness struct {
	env    *Env
	sfx    *recordingSFX
	rnd    *seqRand
	events []component.CombatEvent
	tuning *prefabs.Tuning
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	tuning, err := prefabs.LoadTuning()
	require.NoError(t, err)

	h := &harness{sfx: &recordingSFX{}, rnd: &seqRand{}, tuning: tuning}
	h.env = &Env{
		SFX:    h.sfx,
		Events: &component.CombatEventEmitter{},
		Rand:   h.rnd,
		Log:    logger.Discard(),
	}
	h.env.Events.Subscribe(func(evt component.CombatEvent) { h.events = append(h.events, evt) })
	return h
}

func (h *harness) factory() *Factory { return NewFactory(h.tuning.Enemies, h.env) }

func (h *harness) enemy(t *testing.T, typ string, x, y float64, level int) *Enemy {
	t.Helper()
	e, err := h.factory().Create(typ, x, y, Options{Level: level})
	require.NoError(t, err)
	return e
}

func (h *harness) player(t *testing.T, x, y float64) *Player {
	t.Helper()
	p, err := NewPlayer(h.tuning.Player, h.env, x, y)
	require.NoError(t, err)
	return p
}

func (h *harness) count(typ component.CombatEventType) int {
	n := 0
	for _, e := range h.events {
		if e.Type == typ {
			n++
		}
	}
	return n
}

// fakeTarget lets tests hold parry and dash flags in combinations the real
// player cannot reach.
type fakeTarget struct {
	pos      common.Vec2
	dead     bool
	parrying bool
	dashing  bool

	damage  []float64
	parried int
	dodged  int
}

func (f *fakeTarget) Position() common.Vec2 { return f.pos }
func (f *fakeTarget) Alive() bool           { return !f.dead }
func (f *fakeTarget) IsInParryWindow() bool { return f.parrying }
func (f *fakeTarget) IsDashing() bool       { return f.dashing }
func (f *fakeTarget) SuccessfulParry()      { f.parried++ }
func (f *fakeTarget) ShowDodgeText()        { f.dodged++ }
func (f *fakeTarget) TakeDamage(a float64) bool {
	f.damage = append(f.damage, a)
	return false
}

// driveTo updates e until it reaches state or the budget runs out.
func driveTo(t *testing.T, e *Enemy, target Target, state EnemyStateName, dt float64) {
	t.Helper()
	for i := 0; i < 200 && e.State() != state; i++ {
		e.Update(dt, target)
	}
	require.Equal(t, state, e.State())
}
