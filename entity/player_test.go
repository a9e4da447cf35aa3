package entity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/emberfall/component"
)

func TestPlayerDamageWithMultiplierAndImmunity(t *testing.T) {
	h := newHarness(t)
	p := h.player(t, 100, 100)
	p.DamageMultiplier = 1.4

	assert.False(t, p.TakeDamage(10))
	assert.Equal(t, 86.0, p.Health.Current)
	assert.Equal(t, 1.0, p.ImmunityTimer)
	assert.Equal(t, 1, h.count(component.EventCameraShake))

	assert.False(t, p.TakeDamage(10))
	assert.Equal(t, 86.0, p.Health.Current, "immune")

	p.Update(1.0, Intent{})
	p.TakeDamage(10)
	assert.Equal(t, 72.0, p.Health.Current)
}

func TestPlayerDeath(t *testing.T) {
	h := newHarness(t)
	p := h.player(t, 100, 100)

	assert.True(t, p.TakeDamage(250))
	assert.False(t, p.Alive())
	assert.Equal(t, 1, h.count(component.EventDeath))

	p.ImmunityTimer = 0
	assert.False(t, p.TakeDamage(10))
	p.Update(1, Intent{MoveX: 1})
	assert.Equal(t, 100.0, p.Pos.X)

	p.Reset(10, 20)
	assert.True(t, p.Alive())
	assert.Equal(t, p.Health.Max, p.Health.Current)
	assert.Equal(t, PlayerIdle, p.State())
}

func TestPlayerWalk(t *testing.T) {
	h := newHarness(t)
	p := h.player(t, 100, 100)

	p.Update(0.5, Intent{MoveX: 1})
	require.Equal(t, PlayerWalk, p.State())
	assert.True(t, p.Moving)

	p.Update(0.5, Intent{MoveX: 1})
	assert.InDelta(t, 160.0, p.Pos.X, 1e-9)
	assert.Equal(t, DirRight, p.Direction)

	p.Update(0.1, Intent{MoveX: 1, MoveY: -1})
	assert.Equal(t, DirUp, p.Direction)
	assert.InDelta(t, 160+12/math.Sqrt2, p.Pos.X, 1e-9)
	assert.InDelta(t, 100-12/math.Sqrt2, p.Pos.Y, 1e-9)

	p.Update(0.1, Intent{})
	assert.Equal(t, PlayerIdle, p.State())
	assert.False(t, p.Moving)
}

func TestPlayerSlidesAlongWalls(t *testing.T) {
	h := newHarness(t)
	h.env.Level = wallOracle{X: 130}
	p := h.player(t, 100, 100)

	p.Update(0.5, Intent{MoveX: 1})
	p.Update(0.5, Intent{MoveX: 1})
	assert.Equal(t, 100.0, p.Pos.X)

	p.Update(0.5, Intent{MoveX: 1, MoveY: 1})
	assert.Equal(t, 100.0, p.Pos.X)
	assert.Greater(t, p.Pos.Y, 100.0)
}

func TestPlayerAttackTimingAndCooldown(t *testing.T) {
	h := newHarness(t)
	p := h.player(t, 100, 100)

	p.Update(0.1, Intent{Attack: true, Dash: true, Parry: true})
	require.Equal(t, PlayerAttack, p.State())
	assert.True(t, p.Attacking)
	assert.False(t, p.HasDealtDamage)
	assert.Equal(t, []string{"sword-swing"}, h.sfx.names)

	n := 0
	for ; n < 10 && p.State() == PlayerAttack; n++ {
		p.Update(0.1, Intent{})
	}
	assert.Equal(t, 5, n)
	assert.False(t, p.Attacking)
	assert.Equal(t, 0.8, p.AttackCooldown)

	p.Update(0.1, Intent{Attack: true})
	assert.Equal(t, PlayerIdle, p.State(), "still cooling down")
}

func TestPlayerDash(t *testing.T) {
	h := newHarness(t)
	p := h.player(t, 100, 100)

	p.Update(0.1, Intent{Dash: true, MoveX: 1})
	require.Equal(t, PlayerDash, p.State())
	assert.True(t, p.IsDashing())
	assert.Equal(t, 1.0, p.DashCooldown)
	assert.Contains(t, h.sfx.names, "dash")

	p.Update(0.1, Intent{})
	p.Update(0.1, Intent{})
	assert.InDelta(t, 160.0, p.Pos.X, 1e-9)
	assert.Equal(t, PlayerIdle, p.State())
	assert.False(t, p.IsDashing())
}

func TestPlayerDashUsesFacing(t *testing.T) {
	h := newHarness(t)
	p := h.player(t, 100, 100)

	p.Update(0.1, Intent{Dash: true})
	p.Update(0.1, Intent{})
	assert.InDelta(t, 130.0, p.Pos.Y, 1e-9)
	assert.Equal(t, 100.0, p.Pos.X)
}

func TestPlayerDashStopsAtWall(t *testing.T) {
	h := newHarness(t)
	h.env.Level = wallOracle{X: 120}
	p := h.player(t, 100, 100)

	p.Update(0.1, Intent{Dash: true, MoveX: 1})
	p.Update(0.1, Intent{})
	assert.Equal(t, PlayerIdle, p.State())
	assert.Equal(t, 100.0, p.Pos.X)
	assert.False(t, p.Dashing)
}

func TestPlayerParryWindowAndWhiff(t *testing.T) {
	h := newHarness(t)
	p := h.player(t, 100, 100)

	p.Update(0.05, Intent{Parry: true})
	require.Equal(t, PlayerParry, p.State())
	assert.True(t, p.IsInParryWindow())

	p.Update(0.1, Intent{})
	assert.True(t, p.IsInParryWindow())
	p.Update(0.1, Intent{})
	assert.False(t, p.IsInParryWindow())
	assert.True(t, p.Parrying)

	p.Update(0.1, Intent{})
	assert.Equal(t, PlayerIdle, p.State())
	assert.InDelta(t, 0.7, p.ParryCooldown, 1e-9, "cooldown runs from the start of the parry")
	assert.Equal(t, []string{"sword-swing"}, h.sfx.names)
}

func TestPlayerParryWindowIncludesEdge(t *testing.T) {
	h := newHarness(t)
	p := h.player(t, 100, 100)
	p.Update(0.05, Intent{Parry: true})
	require.Equal(t, PlayerParry, p.State())

	p.ParryTimer = 0.15
	assert.True(t, p.IsInParryWindow())
	p.ParryTimer = 0.16
	assert.False(t, p.IsInParryWindow())
}

func TestPlayerParryCooldownStartsOnEnter(t *testing.T) {
	h := newHarness(t)
	p := h.player(t, 100, 100)
	p.Update(0.05, Intent{Parry: true})
	assert.Equal(t, 1.0, p.ParryCooldown)

	p.Update(0.1, Intent{})
	p.SuccessfulParry()
	assert.InDelta(t, 0.9, p.ParryCooldown, 1e-9)

	p.Update(0.1, Intent{Parry: true})
	assert.Equal(t, PlayerIdle, p.State(), "an early success does not refund the cooldown")
}

func TestPlayerParryWhiffSilentWhileEnemyStunned(t *testing.T) {
	h := newHarness(t)
	h.env.AnyStunned = func() bool { return true }
	p := h.player(t, 100, 100)

	p.Update(0.05, Intent{Parry: true})
	for i := 0; i < 5; i++ {
		p.Update(0.1, Intent{})
	}
	assert.Equal(t, PlayerIdle, p.State())
	assert.Empty(t, h.sfx.names)
}

func TestPlayerSuccessfulParry(t *testing.T) {
	h := newHarness(t)
	p := h.player(t, 100, 100)
	p.Update(0.05, Intent{Parry: true})

	p.SuccessfulParry()
	assert.Equal(t, PlayerIdle, p.State())
	assert.False(t, p.Parrying)
	require.Equal(t, 1, h.count(component.EventCameraShake))
	assert.Equal(t, 10.0, h.events[len(h.events)-1].ShakeMagnitude)
}

func TestPlayerDodgeText(t *testing.T) {
	h := newHarness(t)
	p := h.player(t, 100, 100)
	p.ShowDodgeText()
	require.Equal(t, 1, h.count(component.EventDodged))
	assert.Equal(t, "DODGED!", h.events[0].Text)
}

func TestPlayerParriesRealDemon(t *testing.T) {
	h := newHarness(t)
	p := h.player(t, 125, 100)
	e := h.enemy(t, "demon", 100, 100, 1)
	e.LastAttackTime = 5

	driveTo(t, e, p, StateAttack, 0.05)
	// the demon swings at 0.3s, so parry at 0.2s keeps the window open
	for i := 0; i < 4; i++ {
		p.Update(0.05, Intent{})
		e.Update(0.05, p)
	}
	p.Update(0.05, Intent{Parry: true})
	for i := 0; i < 4 && !e.Stunned; i++ {
		e.Update(0.05, p)
		p.Update(0.05, Intent{})
	}
	assert.True(t, e.Stunned)
	assert.Equal(t, p.Health.Max, p.Health.Current)
	assert.Equal(t, PlayerIdle, p.State())
}
