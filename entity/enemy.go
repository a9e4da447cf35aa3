package entity

import (
	"errors"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/emberfall/common"
	"github.com/milk9111/emberfall/component"
	"github.com/milk9111/emberfall/fsm"
	"github.com/milk9111/emberfall/prefabs"
)

// ErrUnknownEnemyType is returned by the factory for an unmapped type tag.
var ErrUnknownEnemyType = errors.New("entity: unknown enemy type")

// Kind selects the behavior strategy of an enemy.
type Kind string

const (
	KindMelee  Kind = "melee"
	KindKnight Kind = "knight"
	KindWizard Kind = "wizard"
)

// EnemyStateName names a state of the enemy machine.
type EnemyStateName string

const (
	StateIdle   EnemyStateName = "idle"
	StatePatrol EnemyStateName = "patrol"
	StateChase  EnemyStateName = "chase"
	StateAttack EnemyStateName = "attack"
	StateBlock  EnemyStateName = "block"
	StateHurt   EnemyStateName = "hurt"
	StateDeath  EnemyStateName = "death"
)

// Behavior holds what differs between enemy kinds. States call into it at
// fixed points; everything else lives on Enemy.
type Behavior interface {
	Kind() Kind
	// Intercept runs before elemental effects. It may rescale the hit or
	// consume it entirely (negated=true).
	Intercept(e *Enemy, amount float64, parried bool) (scaled float64, negated bool)
	AttackDamage(e *Enemy) float64
	OnAttackStart(e *Enemy, target Target)
	// Update runs every tick before the state machine, even after death.
	Update(e *Enemy, dt float64, target Target)
}

// Enemy is one hostile in the arena. The state machine and the Behavior act
// on its fields.
type Enemy struct {
	ID    int
	Type  string
	Kind  Kind
	Level int

	Pos    common.Vec2
	Health *component.Health
	XPDrop float64

	Speed          float64
	ChaseSpeed     float64
	AttackRange    float64
	DetectionRange float64
	AttackDuration float64
	AttackCooldown float64

	// LastAttackTime is the time since the last attack instance started.
	LastAttackTime float64
	AttackTimer    float64
	HasDealtDamage bool
	AttackTag      string

	Status component.StatusEffects

	Stunned      bool
	StunTimer    float64
	StunDuration float64

	PatrolDirection float64
	PatrolTimer     float64
	PatrolDuration  float64

	Blocking         bool
	IgnoreCollisions bool

	Anim     *component.Animator
	Behavior Behavior

	spec     *prefabs.EnemySpec
	env      *Env
	fsm      *fsm.Machine[EnemyStateName, Target]
	baseline EnemyStateName
}

func (e *Enemy) change(name EnemyStateName, params any) {
	if err := e.fsm.Change(name, params); err != nil {
		e.logger().WithError(err).Error("enemy state change")
		panic(err)
	}
}

func (e *Enemy) logger() *logrus.Entry {
	return e.env.log().WithFields(logrus.Fields{"enemy": e.ID, "type": e.Type})
}

// Spec returns the tuning the enemy was built from.
func (e *Enemy) Spec() *prefabs.EnemySpec { return e.spec }

// State returns the current state name.
func (e *Enemy) State() EnemyStateName { return e.fsm.Current() }

func (e *Enemy) Dead() bool { return !e.Health.IsAlive() }

// ReadyForRemoval is true once the death clip shows its final frame.
func (e *Enemy) ReadyForRemoval() bool {
	return e.Dead() && e.fsm.Current() == StateDeath && e.Anim.Finished()
}

// EffectiveSpeed is the patrol speed after status effects.
func (e *Enemy) EffectiveSpeed() float64 { return e.Speed * e.Status.SpeedFactor() }

// EffectiveChaseSpeed is the chase speed after status effects.
func (e *Enemy) EffectiveChaseSpeed() float64 { return e.ChaseSpeed * e.Status.SpeedFactor() }

// StartPatrol puts a freshly spawned enemy into Patrol.
func (e *Enemy) StartPatrol() {
	if e.Dead() {
		return
	}
	e.change(StatePatrol, nil)
}

// Update advances animation, kind extras, status effects and the state
// machine, in that order.
func (e *Enemy) Update(dt float64, target Target) {
	e.Anim.Update(dt)
	e.Behavior.Update(e, dt, target)
	if e.Dead() {
		return
	}
	e.tickStatus(dt)
	if e.Dead() {
		return
	}
	e.fsm.Update(dt, target)
	e.LastAttackTime += dt
}

func (e *Enemy) tickStatus(dt float64) {
	tick := e.Status.Update(dt)
	if tick.Total() <= 0 {
		return
	}
	if tick.Burn > 0 {
		e.statusDamage(tick.Burn, component.ElementFire)
	}
	if tick.Frostbite > 0 && !e.Dead() {
		e.statusDamage(tick.Frostbite, component.ElementIce)
	}
}

func (e *Enemy) statusDamage(amount float64, el component.Element) {
	died := e.Health.ApplyDamage(amount)
	e.env.emit(component.CombatEvent{
		Type: component.EventDamageApplied, SourceID: e.ID, TargetID: e.ID,
		Damage: amount, Element: el, Pos: e.Pos,
	})
	if died {
		e.die()
	}
}

// TakeDamage applies a player hit. Returns true only on the killing hit;
// calls after death change nothing.
func (e *Enemy) TakeDamage(amount float64, el component.Element, parried bool) bool {
	if e.Dead() {
		return false
	}
	amount, negated := e.Behavior.Intercept(e, amount, parried)
	if negated {
		return false
	}

	crit := false
	els := e.spec.Elements
	switch el {
	case component.ElementFire:
		e.Status.ApplyBurn(els.BurnDPS, els.BurnDuration)
	case component.ElementIce:
		if els.IceSlows {
			if els.SlowMultiplier > 0 {
				e.Status.Slow.SpeedMultiplier = els.SlowMultiplier
			}
			e.Status.ApplySlow(els.SlowDuration)
		} else {
			e.Status.IceHit(els.FreezeDuration, els.FrostbiteDPS, els.FrostbiteDuration)
		}
	case component.ElementWater:
		amount = math.Floor(amount * els.WaterMultiplier)
		crit = true
	}

	died := e.Health.ApplyDamage(amount)
	e.env.emit(component.CombatEvent{
		Type: component.EventDamageApplied, SourceID: PlayerID, TargetID: e.ID,
		Damage: amount, Crit: crit, Element: el, Pos: e.Pos,
	})
	if died {
		e.die()
		return true
	}
	e.change(StateHurt, nil)
	return false
}

// Stun is the parry consequence: a long Hurt.
func (e *Enemy) Stun() {
	if e.Dead() {
		return
	}
	e.Stunned = true
	e.StunTimer = 0
	e.env.emit(component.CombatEvent{Type: component.EventParrySuccess, SourceID: PlayerID, TargetID: e.ID, Pos: e.Pos})
	e.env.emit(component.CombatEvent{Type: component.EventStunned, SourceID: PlayerID, TargetID: e.ID, Pos: e.Pos})
	e.logger().Debug("stunned")
	e.change(StateHurt, nil)
}

func (e *Enemy) die() {
	e.Stunned = false
	e.Blocking = false
	e.Status.Clear()
	e.env.emit(component.CombatEvent{Type: component.EventDeath, TargetID: e.ID, Pos: e.Pos})
	e.logger().Debug("died")
	e.change(StateDeath, nil)
}

func (e *Enemy) distanceTo(t Target) float64 {
	if t == nil || !t.Alive() {
		return math.Inf(1)
	}
	return common.Dist(e.Pos, t.Position())
}

func (e *Enemy) cooldownReady() bool { return e.LastAttackTime >= e.AttackCooldown }

// moveBy commits a displacement with or without collision checks and
// reports whether anything moved.
func (e *Enemy) moveBy(dx, dy float64) bool {
	if e.IgnoreCollisions {
		e.Pos.X += dx
		e.Pos.Y += dy
		return math.Abs(dx) > moveEpsilon || math.Abs(dy) > moveEpsilon
	}
	mx, my := stepAxes(e.env, &e.Pos, dx, dy)
	return mx || my
}

// routeAfter picks Chase when the target is within detection, otherwise the
// kind's resting state.
func (e *Enemy) routeAfter(t Target) {
	if e.distanceTo(t) <= e.DetectionRange {
		e.change(StateChase, nil)
		return
	}
	e.change(e.baseline, nil)
}
