package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/emberfall/common"
	"github.com/milk9111/emberfall/component"
	"github.com/milk9111/emberfall/entity"
	"github.com/milk9111/emberfall/prefabs"
	"github.com/milk9111/emberfall/progression"
)

func TestNewWorldArena(t *testing.T) {
	w, err := NewWorld("arena", "")
	require.NoError(t, err)

	assert.Equal(t, common.Vec2{X: 160, Y: 160}, w.Player().Pos)
	assert.Len(t, w.Enemies(), 4)
	assert.Equal(t, "normal", w.Progress.ModeName)
	assert.Equal(t, 15.0, w.Player().AttackDamage)
	assert.False(t, w.GameOver())
}

func TestNewWorldHardMode(t *testing.T) {
	w, err := NewWorld("arena", "hard")
	require.NoError(t, err)
	assert.Equal(t, 1.4, w.Player().DamageMultiplier)

	_, err = NewWorld("arena", "nightmare")
	require.ErrorIs(t, err, progression.ErrUnknownMode)

	_, err = NewWorld("nowhere", "")
	assert.Error(t, err)
}

func TestWorldReapsAfterDeathClip(t *testing.T) {
	w := newTestWorld(t, "normal")
	e := addEnemy(t, w, "demon", 900, 900)
	require.True(t, e.TakeDamage(1000, component.ElementNone, false))

	w.Step(0.1, entity.Intent{})
	assert.Len(t, w.Enemies(), 1, "corpse stays while the clip plays")

	for i := 0; i < 10; i++ {
		w.Step(0.1, entity.Intent{})
	}
	assert.Empty(t, w.Enemies())
}

func TestWorldStepRunsCombatAfterPlayer(t *testing.T) {
	w := newTestWorld(t, "normal")
	e := addEnemy(t, w, "demon", 430, 400)

	w.Step(0.1, entity.Intent{Attack: true})
	w.Step(0.1, entity.Intent{})
	w.Step(0.1, entity.Intent{})
	assert.Equal(t, 75.0, e.Health.Current, "window is open only after 0.2s")

	// the player's timer reaches 0.25 inside this Step and combat sees it
	w.Step(0.05, entity.Intent{})
	assert.Equal(t, 60.0, e.Health.Current)
	assert.True(t, w.Player().HasDealtDamage)
}

func TestWorldAnyStunned(t *testing.T) {
	w := newTestWorld(t, "normal")
	e := addEnemy(t, w, "demon", 900, 900)
	assert.False(t, w.AnyStunned())

	e.Stun()
	assert.True(t, w.AnyStunned())
	assert.True(t, w.Env.AnyStunned())

	e.TakeDamage(1000, component.ElementNone, false)
	assert.False(t, w.AnyStunned())
}

func TestWorldSFXQueue(t *testing.T) {
	w := newTestWorld(t, "normal")
	w.Step(0.1, entity.Intent{Dash: true, MoveX: 1})

	got := w.DrainSFX()
	require.Len(t, got, 1)
	assert.Equal(t, SFXEvent{Name: "dash", Volume: 0.5}, got[0])
	assert.Empty(t, w.DrainSFX())
}

func TestWorldMilestoneBringsReinforcements(t *testing.T) {
	w, err := NewWorld("arena", "normal")
	require.NoError(t, err)
	require.Len(t, w.Enemies(), 4)

	for w.Progress.Level < 5 {
		w.Progress.GainXP(w.Progress.XPToNext)
	}
	assert.Len(t, w.Enemies(), 5)
	assert.Equal(t, entity.KindKnight, w.Enemies()[4].Kind)
}

func TestWorldOpenChest(t *testing.T) {
	w := newTestWorld(t, "normal")
	w.OpenChest(component.ElementWater)
	assert.Equal(t, component.ElementWater, w.Progress.Element)
	assert.Equal(t, 2, w.Progress.Level)
}

func TestWorldRestart(t *testing.T) {
	w, err := NewWorld("arena", "normal")
	require.NoError(t, err)
	w.Progress.GainXP(500)
	w.Progress.SelectElement(component.ElementIce)
	w.Combat.Kills = 7
	require.Greater(t, w.Progress.Level, 1)
	w.Player().TakeDamage(1000)
	require.True(t, w.GameOver())

	w.Restart()
	assert.False(t, w.GameOver())
	assert.Equal(t, common.Vec2{X: 160, Y: 160}, w.Player().Pos)
	assert.Len(t, w.Enemies(), 4)

	assert.Equal(t, 1, w.Progress.Level)
	assert.Zero(t, w.Progress.XP)
	assert.Equal(t, component.ElementNone, w.Progress.Element)
	assert.Equal(t, "normal", w.Progress.ModeName)
	assert.Zero(t, w.Combat.Kills)
	assert.Same(t, w.Progress, w.Combat.progress)
	assert.Equal(t, 15.0, w.Player().AttackDamage)
	assert.Equal(t, 100.0, w.Player().Health.Current)
	assert.False(t, w.ChestPending())
}

func TestWorldLevelUpHookSurvivesRestart(t *testing.T) {
	w := newTestWorld(t, "normal")
	var gained []int
	w.OnLevelUp = func(level int) { gained = append(gained, level) }

	w.Progress.GainXP(50)
	w.Player().TakeDamage(1000)
	w.Restart()
	w.Progress.GainXP(50)
	assert.Equal(t, []int{2, 2}, gained)
}

func TestWorldVictory(t *testing.T) {
	w := newTestWorld(t, "normal")
	assert.False(t, w.Victory(), "the chest shows up on the first tick")

	e := addEnemy(t, w, "demon", 900, 700)
	w.Step(0.01, entity.Intent{})
	assert.True(t, w.ChestPending())
	assert.False(t, w.Victory())

	e.TakeDamage(1000, component.ElementNone, false)
	for i := 0; i < 20; i++ {
		w.Step(0.1, entity.Intent{})
	}
	require.Empty(t, w.Enemies())
	assert.True(t, w.Victory())

	w.OpenChest(component.ElementFire)
	assert.False(t, w.ChestPending())
	assert.True(t, w.Victory())

	w.Player().TakeDamage(1000)
	assert.False(t, w.Victory())
}

func TestWorldRemoveEnemy(t *testing.T) {
	w := newTestWorld(t, "normal")
	a := addEnemy(t, w, "demon", 900, 700)
	b := addEnemy(t, w, "demon", 700, 700)
	w.RemoveEnemy(a)
	assert.Equal(t, []*entity.Enemy{b}, w.Enemies())
	assert.False(t, a.Dead())
}

func TestWorldHandleChanges(t *testing.T) {
	w, err := NewWorld("arena", "normal")
	require.NoError(t, err)
	require.NoError(t, w.HandleChanges([]prefabs.Change{{Path: "prefabs/enemies.yaml", Kind: prefabs.ChangeTuning}}))

	useScriptDir(t, "allow := false\nignore_collisions := false\n")
	require.NoError(t, w.HandleChanges([]prefabs.Change{{Path: "prefabs/scripts/spawn_rules.tengo", Kind: prefabs.ChangeScript}}))
	w.Restart()
	assert.Empty(t, w.Enemies())
}
