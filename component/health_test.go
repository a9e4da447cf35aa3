package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthClampAndSingleDeath(t *testing.T) {
	h := NewHealth(75)

	assert.False(t, h.ApplyDamage(50))
	assert.True(t, h.ApplyDamage(50))
	assert.Equal(t, 0.0, h.Current)
	assert.True(t, h.Dead)
	assert.False(t, h.ApplyDamage(10), "damage after death is a no-op")
	assert.False(t, h.IsAlive())
}

func TestHealthHealAndMax(t *testing.T) {
	h := NewHealth(100)
	h.ApplyDamage(30)
	h.Heal(50)
	assert.Equal(t, 100.0, h.Current)

	h.SetMaxHP(60)
	assert.Equal(t, 60.0, h.Current)
	assert.InDelta(t, 1.0, h.Ratio(), 1e-9)

	h.ApplyDamage(0)
	h.ApplyDamage(-5)
	assert.Equal(t, 60.0, h.Current)

	h.ApplyDamage(100)
	h.Heal(10)
	assert.Equal(t, 0.0, h.Current, "dead entities do not heal")
	h.Revive()
	assert.True(t, h.IsAlive())
	assert.Equal(t, 60.0, h.Current)
}
