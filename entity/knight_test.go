package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/emberfall/common"
	"github.com/milk9111/emberfall/component"
)

func TestKnightBlocksAndNegates(t *testing.T) {
	h := newHarness(t)
	h.rnd.floats = []float64{0}
	k := h.enemy(t, "knight", 0, 0, 3)
	require.Equal(t, 175.0, k.Health.Current)

	assert.False(t, k.TakeDamage(20, component.ElementFire, false))
	assert.Equal(t, 175.0, k.Health.Current)
	assert.False(t, k.Status.Burn.Active, "blocked hits apply no element")
	assert.Equal(t, StateBlock, k.State())
	assert.True(t, k.Blocking)
	assert.Contains(t, h.sfx.names, "knightblock")
	require.Equal(t, 1, h.count(component.EventBlocked))
	assert.Equal(t, "ATTACK BLOCKED!", h.events[len(h.events)-1].Text)

	// already blocking: the second hit lands
	assert.False(t, k.TakeDamage(20, component.ElementNone, false))
	assert.Equal(t, 155.0, k.Health.Current)
}

func TestKnightBlockExpires(t *testing.T) {
	h := newHarness(t)
	h.rnd.floats = []float64{0}
	k := h.enemy(t, "knight", 0, 0, 3)
	k.TakeDamage(20, component.ElementNone, false)
	require.Equal(t, StateBlock, k.State())

	k.Update(0.5, nil)
	assert.Equal(t, StateBlock, k.State())
	k.Update(0.5, nil)
	assert.Equal(t, StatePatrol, k.State())
	assert.False(t, k.Blocking)

	h.rnd.floats = []float64{0}
	k.TakeDamage(20, component.ElementNone, false)
	k.Update(1.0, &fakeTarget{pos: common.Vec2{X: 100}})
	assert.Equal(t, StateChase, k.State())
}

func TestKnightTakesHitWhenRollFails(t *testing.T) {
	h := newHarness(t)
	h.rnd.floats = []float64{0.9}
	k := h.enemy(t, "knight", 0, 0, 3)

	assert.False(t, k.TakeDamage(20, component.ElementNone, false))
	assert.Equal(t, 155.0, k.Health.Current)
	assert.Equal(t, StateHurt, k.State())
}

func TestKnightParriedHitIsAmplified(t *testing.T) {
	h := newHarness(t)
	h.rnd.floats = []float64{0}
	k := h.enemy(t, "knight", 0, 0, 3)

	assert.False(t, k.TakeDamage(20, component.ElementNone, true))
	assert.Equal(t, 145.0, k.Health.Current)
	assert.Equal(t, StateHurt, k.State())
	assert.Zero(t, h.count(component.EventBlocked))
}

func TestStunnedKnightCanStillBlock(t *testing.T) {
	h := newHarness(t)
	h.rnd.floats = []float64{0}
	k := h.enemy(t, "knight", 0, 0, 3)
	k.Stun()
	assert.Equal(t, "defend", k.Anim.Current)

	assert.False(t, k.TakeDamage(20, component.ElementNone, false))
	assert.Equal(t, 175.0, k.Health.Current)
	assert.Equal(t, StateBlock, k.State())
	assert.True(t, k.Blocking)
	assert.False(t, k.Stunned)
}

func TestKnightIceSlows(t *testing.T) {
	h := newHarness(t)
	h.rnd.floats = []float64{0.9}
	k := h.enemy(t, "knight", 0, 0, 3)

	k.TakeDamage(5, component.ElementIce, false)
	assert.True(t, k.Status.Slow.Active)
	assert.False(t, k.Status.Freeze.Active)
	assert.Equal(t, 25.0, k.EffectiveSpeed())
}

func TestKnightPatrolsWithoutResting(t *testing.T) {
	h := newHarness(t)
	k := h.enemy(t, "knight", 100, 100, 3)
	require.Equal(t, StatePatrol, k.State())
	require.Equal(t, "walk", k.Anim.Current)

	for i := 0; i < 50; i++ {
		k.Update(0.1, nil)
	}
	assert.Equal(t, StatePatrol, k.State())
	assert.NotEqual(t, common.Vec2{X: 100, Y: 100}, k.Pos)
}

func TestKnightPicksAttackVariant(t *testing.T) {
	h := newHarness(t)
	h.rnd.ints = []int{0, 2}
	k := h.enemy(t, "knight", 0, 0, 3)
	k.LastAttackTime = 5
	target := &fakeTarget{pos: common.Vec2{X: 25}}

	driveTo(t, k, target, StateAttack, 0.05)
	assert.Equal(t, "attack3", k.AttackTag)
	assert.Equal(t, "attack3", k.Anim.Current)
	assert.Contains(t, h.sfx.names, "sword-swing")
}

func TestKnightGenerousDodge(t *testing.T) {
	h := newHarness(t)
	k := h.enemy(t, "knight", 0, 0, 3)
	k.LastAttackTime = 5
	target := &fakeTarget{pos: common.Vec2{X: 25}}
	driveTo(t, k, target, StateAttack, 0.05)

	// outside melee range but inside 1.5x while dashing
	target.pos = common.Vec2{X: 55}
	target.dashing = true
	for i := 0; i < 8; i++ {
		k.Update(0.05, target)
	}
	assert.Equal(t, 1, target.dodged)
	assert.Empty(t, target.damage)
}

func TestKnightDamageScalesWithLevel(t *testing.T) {
	h := newHarness(t)
	k := h.enemy(t, "knight", 0, 0, 3)
	k.LastAttackTime = 5
	target := &fakeTarget{pos: common.Vec2{X: 25}}
	driveTo(t, k, target, StateAttack, 0.05)
	for i := 0; i < 10; i++ {
		k.Update(0.05, target)
	}
	assert.Equal(t, []float64{29}, target.damage)
}
