package entity

import (
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/emberfall/component"
	"github.com/milk9111/emberfall/logger"
	"github.com/milk9111/emberfall/prefabs"
)

// CollisionOracle answers whether a world position is solid.
type CollisionOracle interface {
	IsPositionCollidable(x, y float64) bool
}

// SFXPlayer triggers a named one-shot sound.
type SFXPlayer interface {
	PlaySFX(name string, volume float64)
}

// Rand is the subset of *rand.Rand used by AI decisions.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// Env carries the collaborators every entity and state reaches for. One Env
// is shared by the player and the whole roster.
type Env struct {
	Level  CollisionOracle
	SFX    SFXPlayer
	Events *component.CombatEventEmitter
	Rand   Rand
	Log    *logrus.Entry

	// AnyStunned reports whether some enemy is currently stunned.
	AnyStunned func() bool
}

// NewEnv returns an Env with a time-seeded RNG, an empty event emitter and
// the package logger. Nil collaborators are tolerated.
func NewEnv(level CollisionOracle, sfx SFXPlayer) *Env {
	seed := uint64(time.Now().UnixNano())
	return &Env{
		Level:  level,
		SFX:    sfx,
		Events: &component.CombatEventEmitter{},
		Rand:   rand.New(rand.NewPCG(seed, seed>>1|1)),
		Log:    logger.For("entity"),
	}
}

func (env *Env) play(a prefabs.AudioSpec) {
	if env == nil || env.SFX == nil || a.Name == "" {
		return
	}
	env.SFX.PlaySFX(a.Name, a.Volume)
}

func (env *Env) emit(evt component.CombatEvent) {
	if env == nil {
		return
	}
	env.Events.Emit(evt)
}

func (env *Env) blocked(x, y float64) bool {
	if env == nil || env.Level == nil {
		return false
	}
	return env.Level.IsPositionCollidable(x, y)
}

func (env *Env) float64() float64 {
	if env == nil || env.Rand == nil {
		return rand.Float64()
	}
	return env.Rand.Float64()
}

func (env *Env) intN(n int) int {
	if n <= 1 {
		return 0
	}
	if env == nil || env.Rand == nil {
		return rand.IntN(n)
	}
	return env.Rand.IntN(n)
}

func (env *Env) log() *logrus.Entry {
	if env == nil || env.Log == nil {
		return logger.For("entity")
	}
	return env.Log
}

func (env *Env) anyStunned() bool {
	return env != nil && env.AnyStunned != nil && env.AnyStunned()
}
